package transxchange

import "github.com/transitflow/transitflow/pkg/pipelineerror"

type JourneyPatternSection struct {
	ID string `xml:"id,attr"`

	JourneyPatternTimingLinks []JourneyPatternTimingLink `xml:"JourneyPatternTimingLink"`
}

type JourneyPatternTimingLink struct {
	ID string `xml:"id,attr"`

	RouteLinkRef string
	RunTime      string

	From JourneyPatternTimingLinkPoint
	To   JourneyPatternTimingLinkPoint
}

func (link *JourneyPatternTimingLink) Validate() error {
	if link.From.StopPointRef == "" || link.To.StopPointRef == "" {
		return pipelineerror.Schemaf("JourneyPatternTimingLink %s is missing a stop point ref", link.ID)
	}

	if _, err := ParseStopActivity(link.From.Activity); err != nil {
		return pipelineerror.Schemaf("JourneyPatternTimingLink %s: %s", link.ID, err)
	}
	if _, err := ParseStopActivity(link.To.Activity); err != nil {
		return pipelineerror.Schemaf("JourneyPatternTimingLink %s: %s", link.ID, err)
	}

	return nil
}

type JourneyPatternTimingLinkPoint struct {
	ID             string `xml:"id,attr"`
	SequenceNumber string `xml:",attr"`

	WaitTime                  string
	Activity                  string
	DynamicDestinationDisplay string
	StopPointRef              string
	TimingStatus              string
	FareStageNumber           string
}

// IsTimingPoint reports whether the usage is at a principal timing point.
func (p *JourneyPatternTimingLinkPoint) IsTimingPoint() bool {
	status, err := ParseTimingStatus(p.TimingStatus)
	if err != nil {
		return false
	}

	return status == TimingStatusPrincipalTimingPoint || status == TimingStatusPrincipalPoint
}
