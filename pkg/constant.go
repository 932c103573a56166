package pkg

// search direction of a contraction hierarchies query. the forward
// search traverses edges flagged usable-forward, the backward search
// traverses edges flagged usable-backward on the reverse graph.
type Direction uint8

const (
	FORWARD_DIRECTION Direction = iota
	REVERSE_DIRECTION
)

func (d Direction) Opposite() Direction {
	if d == FORWARD_DIRECTION {
		return REVERSE_DIRECTION
	}
	return FORWARD_DIRECTION
}

const (
	INF_WEIGHT float64 = 1e15

	// edge weights & durations are stored as integer centiseconds
	WEIGHT_PRECISION = 100.0
)

const (
	DEBUG = false
)

type OsmHighwayType uint8

// enum for osm highway classes used for routing: https://wiki.openstreetmap.org/wiki/OSM_tags_for_routing/Telenav
const (
	MOTORWAY       OsmHighwayType = 0
	TRUNK          OsmHighwayType = 1
	PRIMARY        OsmHighwayType = 2
	SECONDARY      OsmHighwayType = 3
	TERTIARY       OsmHighwayType = 4
	RESIDENTIAL    OsmHighwayType = 5
	SERVICE        OsmHighwayType = 6
	UNCLASSIFIED   OsmHighwayType = 7
	MOTORWAY_LINK  OsmHighwayType = 8
	TRUNK_LINK     OsmHighwayType = 9
	PRIMARY_LINK   OsmHighwayType = 10
	SECONDARY_LINK OsmHighwayType = 11
	TERTIARY_LINK  OsmHighwayType = 12
	LIVING_STREET  OsmHighwayType = 13
	ROAD           OsmHighwayType = 14
	TRACK          OsmHighwayType = 15
	MOTORROAD      OsmHighwayType = 16
	UNKNOWN        OsmHighwayType = 17
)

func GetHighwayType(roadType string) OsmHighwayType {
	switch roadType {
	case "motorway":
		return MOTORWAY
	case "trunk":
		return TRUNK
	case "primary":
		return PRIMARY
	case "secondary":
		return SECONDARY
	case "tertiary":
		return TERTIARY
	case "unclassified":
		return UNCLASSIFIED
	case "residential":
		return RESIDENTIAL
	case "service":
		return SERVICE
	case "motorway_link":
		return MOTORWAY_LINK
	case "trunk_link":
		return TRUNK_LINK
	case "primary_link":
		return PRIMARY_LINK
	case "secondary_link":
		return SECONDARY_LINK
	case "tertiary_link":
		return TERTIARY_LINK
	case "living_street":
		return LIVING_STREET
	case "road":
		return ROAD
	case "track":
		return TRACK
	case "motorroad":
		return MOTORROAD
	default:
		return UNKNOWN
	}
}

// default speed (km/h) per highway class when the way has no maxspeed tag
func GetDefaultSpeed(hwType OsmHighwayType) float64 {
	switch hwType {
	case MOTORWAY, MOTORROAD:
		return 90
	case TRUNK:
		return 85
	case PRIMARY:
		return 65
	case SECONDARY:
		return 60
	case TERTIARY:
		return 50
	case MOTORWAY_LINK, TRUNK_LINK:
		return 45
	case PRIMARY_LINK, SECONDARY_LINK, TERTIARY_LINK:
		return 40
	case UNCLASSIFIED, RESIDENTIAL, ROAD:
		return 30
	case LIVING_STREET, SERVICE:
		return 15
	case TRACK:
		return 10
	default:
		return 25
	}
}
