package transxchange

import "github.com/transitflow/transitflow/pkg/pipelineerror"

type Operator struct {
	ID string `xml:"id,attr"`

	CreationDateTime     string `xml:",attr"`
	ModificationDateTime string `xml:",attr"`

	NationalOperatorCode  string
	OperatorCode          string
	OperatorShortName     string
	OperatorNameOnLicence string
	TradingName           string
	LicenceNumber         string
	PrimaryMode           string

	Garages []Garage `xml:"Garages>Garage"`
}

func (o *Operator) Validate() error {
	if o.NationalOperatorCode == "" && o.OperatorCode == "" {
		return pipelineerror.Schemaf("Operator %s has no operator code", o.ID)
	}
	if o.OperatorShortName == "" {
		return pipelineerror.Schemaf("Operator %s is missing OperatorShortName", o.ID)
	}

	return nil
}

// Mode returns the operator's primary transport mode, defaulting to bus.
func (o *Operator) Mode() (TransportMode, error) {
	return ParseTransportMode(o.PrimaryMode)
}

type Garage struct {
	GarageCode string
	GarageName string
	Location   Location
}
