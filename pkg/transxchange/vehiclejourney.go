package transxchange

import (
	"github.com/rs/zerolog/log"

	"github.com/transitflow/transitflow/pkg/pipelineerror"
)

type VehicleJourney struct {
	CreationDateTime     string `xml:",attr"`
	ModificationDateTime string `xml:",attr"`
	SequenceNumber       string `xml:",attr"`

	PrivateCode        string
	OperatorRef        string
	Direction          string
	GarageRef          string
	BlockNumber        string `xml:"Operational>Block>BlockNumber"`
	VehicleJourneyCode string
	ServiceRef         string
	LineRef            string

	JourneyPatternRef string
	VehicleJourneyRef string

	DepartureTime     string
	DepartureDayShift string

	Frequency *Frequency

	OperatingProfile OperatingProfile

	VehicleJourneyTimingLinks []VehicleJourneyTimingLink `xml:"VehicleJourneyTimingLink"`
}

// Validate enforces the pattern-or-journey reference exclusivity and the day
// shift range.
func (v *VehicleJourney) Validate() error {
	if v.VehicleJourneyCode == "" {
		return pipelineerror.Schemaf("VehicleJourney is missing VehicleJourneyCode")
	}
	if (v.JourneyPatternRef == "") == (v.VehicleJourneyRef == "") {
		return pipelineerror.Schemaf(
			"VehicleJourney %s must carry exactly one of JourneyPatternRef and VehicleJourneyRef",
			v.VehicleJourneyCode)
	}
	if v.DepartureTime == "" {
		return pipelineerror.Schemaf("VehicleJourney %s is missing DepartureTime", v.VehicleJourneyCode)
	}

	if _, err := v.DayShift(); err != nil {
		return err
	}

	return nil
}

// DayShift parses DepartureDayShift, constrained to the -1..+1 range. Absent
// means no shift.
func (v *VehicleJourney) DayShift() (int, error) {
	if v.DepartureDayShift == "" {
		return 0, nil
	}

	shift, ok := parseShift(v.DepartureDayShift)
	if !ok {
		return 0, pipelineerror.Schemaf(
			"VehicleJourney %s has DepartureDayShift %q outside -1..1",
			v.VehicleJourneyCode, v.DepartureDayShift)
	}

	return shift, nil
}

func parseShift(value string) (int, bool) {
	switch value {
	case "-1":
		return -1, true
	case "0":
		return 0, true
	case "1", "+1":
		return 1, true
	default:
		return 0, false
	}
}

func (v *VehicleJourney) GetVehicleJourneyTimingLinkByJourneyPatternTimingLinkRef(id string) *VehicleJourneyTimingLink {
	for i := range v.VehicleJourneyTimingLinks {
		if v.VehicleJourneyTimingLinks[i].JourneyPatternTimingLinkRef == id {
			return &v.VehicleJourneyTimingLinks[i]
		}
	}

	return nil
}

type VehicleJourneyTimingLink struct {
	ID string `xml:"id,attr"`

	JourneyPatternTimingLinkRef string
	RunTime                     string

	From VehicleJourneyTimingLinkPoint
	To   VehicleJourneyTimingLinkPoint
}

type VehicleJourneyTimingLinkPoint struct {
	WaitTime                  string
	Activity                  string
	DynamicDestinationDisplay string
}

type Frequency struct {
	EndTime  string
	Interval *FrequencyInterval
}

type FrequencyInterval struct {
	ScheduledFrequency string
}

// FlexibleVehicleJourney is the demand-responsive counterpart of a
// VehicleJourney; instead of a departure time it carries operation windows.
type FlexibleVehicleJourney struct {
	CreationDateTime     string `xml:",attr"`
	ModificationDateTime string `xml:",attr"`

	VehicleJourneyCode        string
	ServiceRef                string
	LineRef                   string
	FlexibleJourneyPatternRef string

	OperatingProfile OperatingProfile

	FlexibleServiceTimes []*FlexibleServiceTime `xml:"FlexibleServiceTimes>FlexibleServiceTime"`
}

func (v *FlexibleVehicleJourney) Validate() error {
	if v.VehicleJourneyCode == "" {
		return pipelineerror.Schemaf("FlexibleVehicleJourney is missing VehicleJourneyCode")
	}
	if len(v.OperationWindows()) == 0 {
		return pipelineerror.Schemaf(
			"FlexibleVehicleJourney %s has no usable FlexibleServiceTimes", v.VehicleJourneyCode)
	}

	return nil
}

// OperationWindows returns the valid service time entries in document order.
// Entries violating the all-day-or-period exclusivity are dropped with a
// diagnostic.
func (v *FlexibleVehicleJourney) OperationWindows() []*FlexibleServiceTime {
	var windows []*FlexibleServiceTime

	for _, entry := range v.FlexibleServiceTimes {
		if entry.AllDay() == (entry.ServicePeriod != nil) {
			log.Warn().
				Str("journey", v.VehicleJourneyCode).
				Msg("FlexibleServiceTime must be either AllDayService or a ServicePeriod, skipping entry")
			continue
		}

		windows = append(windows, entry)
	}

	return windows
}

type FlexibleServiceTime struct {
	AllDayService *struct{}
	ServicePeriod *ServicePeriod
}

func (t *FlexibleServiceTime) AllDay() bool {
	return t.AllDayService != nil
}

type ServicePeriod struct {
	StartTime string
	EndTime   string
}
