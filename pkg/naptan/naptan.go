// Package naptan lowers NaPTAN stop registry documents into
// naptan_stoppoint rows.
package naptan

import (
	"github.com/rs/zerolog/log"

	"github.com/transitflow/transitflow/pkg/pipelineerror"
	"github.com/transitflow/transitflow/pkg/transmodel"
	"github.com/transitflow/transitflow/pkg/transxchange"
)

type Document struct {
	CreationDateTime     string `xml:",attr"`
	ModificationDateTime string `xml:",attr"`
	SchemaVersion        string `xml:",attr"`

	StopPoints []*StopPoint
}

func (doc *Document) Validate() error {
	if doc.SchemaVersion == "" {
		return pipelineerror.New(pipelineerror.CodeSchemaVersionMissing, nil)
	}

	return nil
}

type StopPoint struct {
	CreationDateTime     string `xml:",attr"`
	ModificationDateTime string `xml:",attr"`
	Status               string `xml:",attr"`

	AtcoCode              string
	NaptanCode            string
	AdministrativeAreaRef string

	CommonName string `xml:"Descriptor>CommonName"`
	Street     string `xml:"Descriptor>Street"`
	Indicator  string `xml:"Descriptor>Indicator"`

	NptgLocalityRef string   `xml:"Place>NptgLocalityRef"`
	Location        Location `xml:"Place>Location"`

	StopClassification StopClassification

	StopAreas []string `xml:"StopAreas>StopAreaRef"`
}

func (sp *StopPoint) Validate() error {
	if sp.AtcoCode == "" {
		return pipelineerror.Schemaf("StopPoint is missing AtcoCode")
	}
	if sp.CommonName == "" {
		return pipelineerror.Schemaf("StopPoint %s is missing CommonName", sp.AtcoCode)
	}

	for _, bus := range []*BusClassification{sp.StopClassification.OnStreetBus, sp.StopClassification.OffStreetBus} {
		if bus == nil {
			continue
		}
		if bus.Bearing != "" {
			if _, err := transxchange.ParseCompassPoint(bus.Bearing); err != nil {
				return pipelineerror.Schemaf("StopPoint %s: %s", sp.AtcoCode, err)
			}
		}
	}

	return nil
}

// Active is false for deleted or pending registry entries.
func (sp *StopPoint) Active() bool {
	return sp.Status == "" || sp.Status == "active"
}

type StopClassification struct {
	StopType string

	OnStreetBus  *BusClassification `xml:"OnStreet>Bus"`
	OffStreetBus *BusClassification `xml:"OffStreet>Bus"`
}

// BusStopType normalises the registry value, accepting the historical
// three-letter abbreviations. Unknown values are refused.
func (sc *StopClassification) BusStopType() string {
	var raw string
	if sc.OnStreetBus != nil {
		raw = sc.OnStreetBus.BusStopType
	} else if sc.OffStreetBus != nil {
		raw = sc.OffStreetBus.BusStopType
	}
	if raw == "" {
		return ""
	}

	stopType, err := transxchange.ParseBusStopType(raw)
	if err != nil {
		log.Warn().Err(err).Msg("Ignoring unknown bus stop type")
		return ""
	}

	return string(stopType)
}

type BusClassification struct {
	BusStopType string
	Bearing     string `xml:"MarkedPoint>Bearing>CompassPoint"`
}

// Row lowers the registry entry into its table twin.
func (sp *StopPoint) Row() *transmodel.NaptanStopPoint {
	row := &transmodel.NaptanStopPoint{
		AtcoCode:   sp.AtcoCode,
		CommonName: sp.CommonName,
		StopAreas:  sp.StopAreas,
	}

	if sp.NaptanCode != "" {
		naptanCode := sp.NaptanCode
		row.NaptanCode = &naptanCode
	}
	if sp.Street != "" {
		street := sp.Street
		row.Street = &street
	}
	if sp.Indicator != "" {
		indicator := sp.Indicator
		row.Indicator = &indicator
	}
	if sp.NptgLocalityRef != "" {
		locality := sp.NptgLocalityRef
		row.LocalityID = &locality
	}
	if sp.StopClassification.StopType != "" {
		stopType := sp.StopClassification.StopType
		row.StopType = &stopType
	}
	if busStopType := sp.StopClassification.BusStopType(); busStopType != "" {
		row.BusStopType = &busStopType
	}

	if latitude, longitude, ok := sp.Location.Coordinates(); ok {
		location := transmodel.PointWKT(longitude, latitude)
		row.Location = &location
	}

	return row
}
