package osmparser

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/mraditya/chmatrix/pkg"
	"github.com/mraditya/chmatrix/pkg/costfunction"
	"github.com/mraditya/chmatrix/pkg/datastructure"
	"github.com/mraditya/chmatrix/pkg/geo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

type nodeCoord struct {
	lat float64
	lon float64
}

type osmWay struct {
	nodes  []int64
	oneWay bool
	speed  float64 // km/h
}

// OsmParser reads an .osm.pbf extract and produces the routing graph:
// drivable highway ways become directed weighted edges, way
// intersections and endpoints become graph nodes.
type OsmParser struct {
	wayNodeCount map[int64]int
	nodeCoords   map[int64]nodeCoord
	nodeIDMap    map[int64]datastructure.NodeID
	ways         []osmWay
}

func NewOsmParser() *OsmParser {
	return &OsmParser{
		wayNodeCount: make(map[int64]int),
		nodeCoords:   make(map[int64]nodeCoord),
		nodeIDMap:    make(map[int64]datastructure.NodeID),
	}
}

// Parse scans the pbf file twice: the first pass collects accepted
// ways and marks their nodes, the second collects the coordinates of
// the marked nodes. must not run the scanner in parallel mode, the
// passes rely on order.
func (p *OsmParser) Parse(mapFile string, logger *zap.Logger) (*datastructure.Graph, error) {
	f, err := os.Open(mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := osmpbf.New(context.Background(), f, 0)
	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeWay {
			continue
		}
		way := o.(*osm.Way)
		if len(way.Nodes) < 2 || !acceptOsmWay(way) {
			continue
		}

		w := osmWay{
			nodes:  make([]int64, 0, len(way.Nodes)),
			oneWay: isOneWay(way),
			speed:  waySpeed(way),
		}
		for _, n := range way.Nodes {
			w.nodes = append(w.nodes, int64(n.ID))
			p.wayNodeCount[int64(n.ID)]++
		}
		p.ways = append(p.ways, w)
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, err
	}
	scanner.Close()

	logger.Info("scanned osm ways", zap.Int("accepted_ways", len(p.ways)))

	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}
	scanner = osmpbf.New(context.Background(), f, 0)
	defer scanner.Close()
	for scanner.Scan() {
		o := scanner.Object()
		if o.ObjectID().Type() != osm.TypeNode {
			continue
		}
		n := o.(*osm.Node)
		if _, used := p.wayNodeCount[int64(n.ID)]; used {
			p.nodeCoords[int64(n.ID)] = nodeCoord{lat: n.Lat, lon: n.Lon}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	logger.Info("collected way nodes", zap.Int("nodes", len(p.nodeCoords)))

	return p.buildGraph(logger)
}

// buildGraph compresses every way into edges between graph nodes and
// packs them. every way node becomes a graph node; geometry-only
// intermediate nodes are kept since the hierarchy contracts them away
// cheaply.
func (p *OsmParser) buildGraph(logger *zap.Logger) (*datastructure.Graph, error) {
	coords := make([]datastructure.Coordinate, 0, len(p.nodeCoords))
	costFn := costfunction.NewFastestCostFunction()

	getNodeID := func(osmID int64) (datastructure.NodeID, bool) {
		if id, ok := p.nodeIDMap[osmID]; ok {
			return id, true
		}
		c, ok := p.nodeCoords[osmID]
		if !ok {
			// way references a node missing from the extract
			return datastructure.INVALID_NODE_ID, false
		}
		id := datastructure.NodeID(len(coords))
		p.nodeIDMap[osmID] = id
		coords = append(coords, datastructure.Coordinate{Lat: c.lat, Lon: c.lon})
		return id, true
	}

	edges := make([]datastructure.Edge, 0)
	for _, w := range p.ways {
		for i := 0; i+1 < len(w.nodes); i++ {
			u, okU := getNodeID(w.nodes[i])
			v, okV := getNodeID(w.nodes[i+1])
			if !okU || !okV || u == v {
				continue
			}

			cu := p.nodeCoords[w.nodes[i]]
			cv := p.nodeCoords[w.nodes[i+1]]
			dist := geo.CalculateHaversineDistance(cu.lat, cu.lon, cv.lat, cv.lon) * 1000.0
			weight, duration := costFn.Cost(dist, w.speed)

			edges = append(edges, datastructure.NewEdge(u, v, weight, duration, dist))
			if !w.oneWay {
				edges = append(edges, datastructure.NewEdge(v, u, weight, duration, dist))
			}
		}
	}

	logger.Info("built routing graph",
		zap.Int("nodes", len(coords)),
		zap.Int("edges", len(edges)))

	return datastructure.NewGraph(coords, edges), nil
}

func acceptOsmWay(way *osm.Way) bool {
	highway := way.Tags.Find("highway")
	if highway == "" {
		return false
	}
	if pkg.GetHighwayType(highway) == pkg.UNKNOWN {
		return false
	}
	if way.Tags.Find("area") == "yes" {
		return false
	}
	switch way.Tags.Find("access") {
	case "no", "private":
		return false
	}
	return true
}

func isOneWay(way *osm.Way) bool {
	switch way.Tags.Find("oneway") {
	case "yes", "1", "true":
		return true
	}
	switch way.Tags.Find("highway") {
	case "motorway", "motorway_link":
		// implied oneway unless tagged otherwise
		return way.Tags.Find("oneway") != "no"
	}
	return way.Tags.Find("junction") == "roundabout"
}

// waySpeed returns the drive speed of a way in km/h, from its maxspeed
// tag when present and parseable, otherwise the highway-class default.
func waySpeed(way *osm.Way) float64 {
	if maxSpeed := way.Tags.Find("maxspeed"); maxSpeed != "" {
		if speed, ok := parseMaxSpeed(maxSpeed); ok {
			return speed
		}
	}
	return pkg.GetDefaultSpeed(pkg.GetHighwayType(way.Tags.Find("highway")))
}

func parseMaxSpeed(tag string) (float64, bool) {
	tag = strings.TrimSpace(tag)
	mph := false
	if strings.HasSuffix(tag, "mph") {
		mph = true
		tag = strings.TrimSpace(strings.TrimSuffix(tag, "mph"))
	}
	speed, err := strconv.ParseFloat(tag, 64)
	if err != nil || speed <= 0 {
		return 0, false
	}
	if mph {
		speed *= 1.609344
	}
	return speed, true
}
