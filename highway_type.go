package osm2geo

// HighwayType is road class taken from `highway` tag. Zero value means unknown class
type HighwayType uint16

const (
	HIGHWAY_MOTORWAY = HighwayType(iota + 1)
	HIGHWAY_MOTORWAY_LINK
	HIGHWAY_TRUNK
	HIGHWAY_TRUNK_LINK
	HIGHWAY_PRIMARY
	HIGHWAY_PRIMARY_LINK
	HIGHWAY_SECONDARY
	HIGHWAY_SECONDARY_LINK
	HIGHWAY_TERTIARY
	HIGHWAY_TERTIARY_LINK
	HIGHWAY_UNCLASSIFIED
	HIGHWAY_RESIDENTIAL
	HIGHWAY_LIVING_STREET
	HIGHWAY_SERVICE
	HIGHWAY_CYCLEWAY
	HIGHWAY_FOOTWAY
	HIGHWAY_PEDESTRIAN
	HIGHWAY_STEPS
	HIGHWAY_TRACK
)

var highwayTypeNames = [...]string{
	"motorway", "motorway_link",
	"trunk", "trunk_link",
	"primary", "primary_link",
	"secondary", "secondary_link",
	"tertiary", "tertiary_link",
	"unclassified", "residential", "living_street", "service",
	"cycleway", "footway", "pedestrian", "steps", "track",
}

func (iotaIdx HighwayType) String() string {
	if iotaIdx == 0 || int(iotaIdx) > len(highwayTypeNames) {
		return "undefined"
	}
	return highwayTypeNames[iotaIdx-1]
}

// IsLink returns true for ramps connecting roads of the same class
func (iotaIdx HighwayType) IsLink() bool {
	switch iotaIdx {
	case HIGHWAY_MOTORWAY_LINK, HIGHWAY_TRUNK_LINK, HIGHWAY_PRIMARY_LINK, HIGHWAY_SECONDARY_LINK, HIGHWAY_TERTIARY_LINK:
		return true
	default:
		return false
	}
}

// IsStreet returns true when class is accepted by Streets filter
func (iotaIdx HighwayType) IsStreet() bool {
	_, ok := streetHighwayTags[iotaIdx.String()]
	return ok
}

var highwayTypeByName = func() map[string]HighwayType {
	result := make(map[string]HighwayType, len(highwayTypeNames))
	for i, name := range highwayTypeNames {
		result[name] = HighwayType(i + 1)
	}
	return result
}()

func getHighwayType(str string) HighwayType {
	return highwayTypeByName[str]
}

// Highway returns road class of the way or zero value if class is unknown
func (way *Way) Highway() HighwayType {
	return getHighwayType(way.Tags.Find("highway"))
}
