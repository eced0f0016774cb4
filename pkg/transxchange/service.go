package transxchange

import "github.com/transitflow/transitflow/pkg/pipelineerror"

type Service struct {
	CreationDateTime     string `xml:",attr"`
	ModificationDateTime string `xml:",attr"`
	RevisionNumber       string `xml:",attr"`

	ServiceCode              string
	TicketMachineServiceCode string
	RegisteredOperatorRef    string
	PublicUse                string
	Mode                     string

	StartDate string `xml:"OperatingPeriod>StartDate"`
	EndDate   string `xml:"OperatingPeriod>EndDate"`

	OperatingProfile OperatingProfile

	Lines []Line `xml:"Lines>Line"`

	StandardService *StandardService
	FlexibleService *FlexibleService
}

func (s *Service) Validate() error {
	if s.ServiceCode == "" {
		return pipelineerror.Schemaf("Service is missing ServiceCode")
	}
	if s.StartDate == "" {
		return pipelineerror.Schemaf("Service %s is missing OperatingPeriod StartDate", s.ServiceCode)
	}
	if len(s.Lines) == 0 {
		return pipelineerror.Schemaf("Service %s has no Lines", s.ServiceCode)
	}

	if (s.StandardService == nil) == (s.FlexibleService == nil) {
		return pipelineerror.Schemaf(
			"Service %s must carry exactly one of StandardService and FlexibleService", s.ServiceCode)
	}

	if _, err := ParseTransportMode(s.Mode); err != nil {
		return pipelineerror.Schemaf("Service %s: %s", s.ServiceCode, err)
	}

	return nil
}

// IsPublic defaults to true when PublicUse is absent.
func (s *Service) IsPublic() bool {
	return s.PublicUse != "false" && s.PublicUse != "0"
}

type Line struct {
	ID       string `xml:"id,attr"`
	LineName string

	OutboundOrigin      string `xml:"OutboundDescription>Origin"`
	OutboundDestination string `xml:"OutboundDescription>Destination"`
	OutboundDescription string `xml:"OutboundDescription>Description"`

	InboundOrigin      string `xml:"InboundDescription>Origin"`
	InboundDestination string `xml:"InboundDescription>Destination"`
	InboundDescription string `xml:"InboundDescription>Description"`
}

type StandardService struct {
	Origin      string
	Destination string
	Vias        []string `xml:"Vias>Via"`

	UseAllStopPoints string

	JourneyPatterns []*JourneyPattern `xml:"JourneyPattern"`
}

type FlexibleService struct {
	Origin      string
	Destination string

	FlexibleJourneyPatterns []*JourneyPattern `xml:"FlexibleJourneyPattern"`

	BookingArrangements *BookingArrangements
}

type BookingArrangements struct {
	Description      string
	Phone            string `xml:"Phone>TelNationalNumber"`
	Email            string
	WebAddress       string
	AllBookingsTaken string
}

type JourneyPattern struct {
	ID                   string `xml:"id,attr"`
	CreationDateTime     string `xml:",attr"`
	ModificationDateTime string `xml:",attr"`

	DestinationDisplay        string
	OperatorRef               string
	Direction                 string
	RouteRef                  string
	JourneyPatternSectionRefs []string `xml:"JourneyPatternSectionRefs"`

	OperatingProfile OperatingProfile

	// resolved against the document's journey pattern sections
	Sections []*JourneyPatternSection `xml:"-"`
}
