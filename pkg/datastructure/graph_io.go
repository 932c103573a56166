package datastructure

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/mraditya/chmatrix/pkg/util"
)

// WriteCHGraph persists the contracted search graph together with the
// original network to a bzip2-compressed text file.
func (ch *CHGraph) WriteCHGraph(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	defer bz.Close()

	w := bufio.NewWriter(bz)
	defer w.Flush()

	g := ch.graph
	fmt.Fprintf(w, "%d %d %d\n", g.NumberOfNodes(), g.NumberOfEdges(), ch.NumberOfEdges())

	for v := 0; v < g.NumberOfNodes(); v++ {
		c := g.coords[v]
		latF := strconv.FormatFloat(c.Lat, 'f', -1, 64)
		lonF := strconv.FormatFloat(c.Lon, 'f', -1, 64)
		fmt.Fprintf(w, "%s %s\n", latF, lonF)
	}

	for u := NodeID(0); int(u) < g.NumberOfNodes(); u++ {
		for eid := g.firstOut[u]; eid < g.firstOut[u+1]; eid++ {
			e := &g.outEdges[eid]
			distF := strconv.FormatFloat(e.dist, 'f', -1, 64)
			fmt.Fprintf(w, "%d %d %d %d %s\n", u, e.head, e.weight, e.duration, distF)
		}
	}

	for from := NodeID(0); int(from) < g.NumberOfNodes(); from++ {
		for eid := ch.firstEdge[from]; eid < ch.firstEdge[from+1]; eid++ {
			data := &ch.edgeData[eid]
			fmt.Fprintf(w, "%d %d %d %d %t %t %t %d\n",
				from, ch.targets[eid], data.Weight, data.Duration,
				data.Forward, data.Backward, data.Shortcut, data.Via)
		}
	}

	return nil
}

// ReadCHGraph loads a search graph written by WriteCHGraph.
func ReadCHGraph(filename string) (*CHGraph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, &bzip2.ReaderConfig{})
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	scanner := bufio.NewScanner(bz)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)

	header, err := readFields(scanner, 3)
	if err != nil {
		return nil, err
	}
	numNodes, _ := strconv.Atoi(header[0])
	numEdges, _ := strconv.Atoi(header[1])
	numCHEdges, _ := strconv.Atoi(header[2])

	coords := make([]Coordinate, numNodes)
	for v := 0; v < numNodes; v++ {
		fields, err := readFields(scanner, 2)
		if err != nil {
			return nil, err
		}
		lat, _ := strconv.ParseFloat(fields[0], 64)
		lon, _ := strconv.ParseFloat(fields[1], 64)
		coords[v] = Coordinate{Lat: lat, Lon: lon}
	}

	edges := make([]Edge, numEdges)
	for i := 0; i < numEdges; i++ {
		fields, err := readFields(scanner, 5)
		if err != nil {
			return nil, err
		}
		tail, _ := strconv.ParseUint(fields[0], 10, 32)
		head, _ := strconv.ParseUint(fields[1], 10, 32)
		weight, _ := strconv.ParseInt(fields[2], 10, 32)
		duration, _ := strconv.ParseInt(fields[3], 10, 32)
		dist, _ := strconv.ParseFloat(fields[4], 64)
		edges[i] = NewEdge(NodeID(tail), NodeID(head),
			EdgeWeight(weight), EdgeDuration(duration), dist)
	}

	chEdges := make([]CHEdge, numCHEdges)
	for i := 0; i < numCHEdges; i++ {
		fields, err := readFields(scanner, 8)
		if err != nil {
			return nil, err
		}
		from, _ := strconv.ParseUint(fields[0], 10, 32)
		to, _ := strconv.ParseUint(fields[1], 10, 32)
		weight, _ := strconv.ParseInt(fields[2], 10, 32)
		duration, _ := strconv.ParseInt(fields[3], 10, 32)
		forward, _ := strconv.ParseBool(fields[4])
		backward, _ := strconv.ParseBool(fields[5])
		shortcut, _ := strconv.ParseBool(fields[6])
		via, _ := strconv.ParseUint(fields[7], 10, 32)
		chEdges[i] = CHEdge{
			From: NodeID(from),
			To:   NodeID(to),
			Data: CHEdgeData{
				Weight:   EdgeWeight(weight),
				Duration: EdgeDuration(duration),
				Forward:  forward,
				Backward: backward,
				Shortcut: shortcut,
				Via:      NodeID(via),
			},
		}
	}

	return NewCHGraph(NewGraph(coords, edges), chEdges), nil
}

func readFields(scanner *bufio.Scanner, want int) ([]string, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, util.WrapErrorf(nil, util.ErrInternalServerError,
			"unexpected end of graph file")
	}
	fields := strings.Fields(scanner.Text())
	if len(fields) != want {
		return nil, util.WrapErrorf(nil, util.ErrInternalServerError,
			"malformed graph file line %q, want %d fields", scanner.Text(), want)
	}
	return fields, nil
}
