package transxchange

import "fmt"

// StopActivity is what a vehicle does at a stop usage.
type StopActivity string

const (
	StopActivityPickUpAndSetDown StopActivity = "pickUpAndSetDown"
	StopActivityPickUp           StopActivity = "pickUp"
	StopActivitySetDown          StopActivity = "setDown"
	StopActivityPass             StopActivity = "pass"
)

// ParseStopActivity refuses unknown values; an empty payload defaults to
// pickUpAndSetDown as the schema does.
func ParseStopActivity(value string) (StopActivity, error) {
	switch value {
	case "":
		return StopActivityPickUpAndSetDown, nil
	case "pickUpAndSetDown", "pickUp", "setDown", "pass":
		return StopActivity(value), nil
	default:
		return "", fmt.Errorf("unknown stop activity %q", value)
	}
}

type TimingStatus string

const (
	TimingStatusPrincipalPoint       TimingStatus = "principalPoint"
	TimingStatusTimeInfoPoint        TimingStatus = "timeInfoPoint"
	TimingStatusPrincipalTimingPoint TimingStatus = "principalTimingPoint"
	TimingStatusOtherPoint           TimingStatus = "otherPoint"
)

// timingStatusAliases carries the legacy abbreviations and the widely
// published mis-spellings, all normalised to the modern enum.
var timingStatusAliases = map[string]TimingStatus{
	"PPT": TimingStatusPrincipalPoint,
	"TIP": TimingStatusTimeInfoPoint,
	"PTP": TimingStatusPrincipalTimingPoint,
	"OTH": TimingStatusOtherPoint,

	"principlePoint":       TimingStatusPrincipalPoint,
	"principleTimingPoint": TimingStatusPrincipalTimingPoint,

	"principalPoint":       TimingStatusPrincipalPoint,
	"timeInfoPoint":        TimingStatusTimeInfoPoint,
	"principalTimingPoint": TimingStatusPrincipalTimingPoint,
	"otherPoint":           TimingStatusOtherPoint,
}

func ParseTimingStatus(value string) (TimingStatus, error) {
	if value == "" {
		return TimingStatusOtherPoint, nil
	}

	if status, ok := timingStatusAliases[value]; ok {
		return status, nil
	}

	return "", fmt.Errorf("unknown timing status %q", value)
}

type TransportMode string

const (
	TransportModeBus         TransportMode = "bus"
	TransportModeCoach       TransportMode = "coach"
	TransportModeFerry       TransportMode = "ferry"
	TransportModeMetro       TransportMode = "metro"
	TransportModeRail        TransportMode = "rail"
	TransportModeTram        TransportMode = "tram"
	TransportModeTrolleyBus  TransportMode = "trolleyBus"
	TransportModeAir         TransportMode = "air"
	TransportModeUnderground TransportMode = "underground"
)

func ParseTransportMode(value string) (TransportMode, error) {
	switch value {
	case "":
		return TransportModeBus, nil
	case "bus", "coach", "ferry", "metro", "rail", "tram", "trolleyBus", "air", "underground":
		return TransportMode(value), nil
	default:
		return "", fmt.Errorf("unknown transport mode %q", value)
	}
}

type BusStopType string

const (
	BusStopTypeMarked      BusStopType = "marked"
	BusStopTypeCustom      BusStopType = "custom"
	BusStopTypeHailAndRide BusStopType = "hailAndRide"
	BusStopTypeFlexible    BusStopType = "flexible"
)

var busStopTypeAliases = map[string]BusStopType{
	"MKD": BusStopTypeMarked,
	"CUS": BusStopTypeCustom,
	"HAR": BusStopTypeHailAndRide,
	"FLX": BusStopTypeFlexible,

	"marked":      BusStopTypeMarked,
	"custom":      BusStopTypeCustom,
	"hailAndRide": BusStopTypeHailAndRide,
	"flexible":    BusStopTypeFlexible,
}

func ParseBusStopType(value string) (BusStopType, error) {
	if value == "" {
		return BusStopTypeMarked, nil
	}

	if stopType, ok := busStopTypeAliases[value]; ok {
		return stopType, nil
	}

	return "", fmt.Errorf("unknown bus stop type %q", value)
}

type CompassPoint string

const (
	CompassPointNorth     CompassPoint = "N"
	CompassPointNorthEast CompassPoint = "NE"
	CompassPointEast      CompassPoint = "E"
	CompassPointSouthEast CompassPoint = "SE"
	CompassPointSouth     CompassPoint = "S"
	CompassPointSouthWest CompassPoint = "SW"
	CompassPointWest      CompassPoint = "W"
	CompassPointNorthWest CompassPoint = "NW"
)

func ParseCompassPoint(value string) (CompassPoint, error) {
	switch value {
	case "N", "NE", "E", "SE", "S", "SW", "W", "NW":
		return CompassPoint(value), nil
	default:
		return "", fmt.Errorf("unknown compass point %q", value)
	}
}
