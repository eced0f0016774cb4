package transxchange

import "github.com/transitflow/transitflow/pkg/pipelineerror"

type StopPoint struct {
	CreationDateTime     string `xml:",attr"`
	ModificationDateTime string `xml:",attr"`
	Status               string `xml:",attr"`

	AtcoCode   string
	NaptanCode string

	CommonName string `xml:"Descriptor>CommonName"`
	Street     string `xml:"Descriptor>Street"`
	Indicator  string `xml:"Descriptor>Indicator"`

	NptgLocalityRef       string    `xml:"Place>NptgLocalityRef"`
	AdministrativeAreaRef string    `xml:"AdministrativeAreaRef"`
	Location              *Location `xml:"Place>Location"`

	StopClassification StopClassification

	StopAreas []StopPointStopAreaRef `xml:"StopAreas>StopAreaRef"`
}

// Validate enforces the required leaf fields. A failing stop point is skipped
// by the parser, not fatal for the document.
func (s *StopPoint) Validate() error {
	if s.AtcoCode == "" {
		return pipelineerror.Schemaf("StopPoint is missing AtcoCode")
	}
	if s.CommonName == "" {
		return pipelineerror.Schemaf("StopPoint %s is missing Descriptor CommonName", s.AtcoCode)
	}

	return nil
}

type StopClassification struct {
	StopType string

	OnStreet struct {
		Bus *BusStopClassification
	}

	OffStreet struct {
		BusAndCoach *struct{ Bay *struct{} }
		Rail        *struct{ Entrance *struct{} }
		Ferry       *struct{ Entrance *struct{} }
		Metro       *struct{ Entrance *struct{} }
		Air         *struct{ Entrance *struct{} }
		Taxi        *struct{ Rank *struct{} }
	}
}

type BusStopClassification struct {
	BusStopType  string
	TimingStatus string

	MarkedPoint *struct {
		Bearing struct {
			CompassPoint string
		}
	}
	UnmarkedPoint *struct {
		Bearing struct {
			CompassPoint string
		}
	}
	FlexibleZone *FlexibleZone
}

type FlexibleZone struct {
	Locations []Location `xml:"Location"`
}

type StopPointStopAreaRef struct {
	CreationDateTime     string `xml:",attr"`
	ModificationDateTime string `xml:",attr"`
	Status               string `xml:",attr"`

	StopAreaCode string `xml:",chardata"`
}

// AnnotatedStopPointRef carries names for a stop defined elsewhere (normally
// NaPTAN) rather than inline.
type AnnotatedStopPointRef struct {
	StopPointRef string
	CommonName   string
	Indicator    string
	LocalityName string
}

func (s *AnnotatedStopPointRef) Validate() error {
	if s.StopPointRef == "" {
		return pipelineerror.Schemaf("AnnotatedStopPointRef is missing StopPointRef")
	}

	return nil
}
