package transxchange

import (
	"encoding/xml"
	"errors"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/transitflow/transitflow/pkg/xmlcursor"
)

// ParseXMLFile streams a TransXChange document into a typed tree. Top-level
// sections arrive in the schema's fixed order; missing sections leave their
// lists empty. Leaves with missing required fields are skipped with a
// warning; root-level problems fail the document.
func ParseXMLFile(reader io.Reader) (*TransXChange, error) {
	doc := &TransXChange{}
	cursor := xmlcursor.NewCursor(reader)

	seenRoot := false

	for {
		tok, err := cursor.Token()
		if tok == nil || errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}

		ty, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch ty.Name.Local {
		case "TransXChange":
			for _, attr := range ty.Attr {
				switch attr.Name.Local {
				case "CreationDateTime":
					doc.CreationDateTime = attr.Value
				case "ModificationDateTime":
					doc.ModificationDateTime = attr.Value
				case "SchemaVersion":
					doc.SchemaVersion = attr.Value
				}
			}

			if err := doc.Validate(); err != nil {
				return nil, err
			}
			seenRoot = true
		case "StopPoint":
			var stopPoint StopPoint
			if decodeLeaf(cursor, &ty, &stopPoint, stopPoint.Validate) {
				doc.StopPoints = append(doc.StopPoints, &stopPoint)
			}
		case "AnnotatedStopPointRef":
			var ref AnnotatedStopPointRef
			if decodeLeaf(cursor, &ty, &ref, ref.Validate) {
				doc.AnnotatedStopPointRefs = append(doc.AnnotatedStopPointRefs, &ref)
			}
		case "RouteSection":
			var routeSection RouteSection
			if decodeLeaf(cursor, &ty, &routeSection, nil) {
				doc.RouteSections = append(doc.RouteSections, &routeSection)
			}
		case "Route":
			var route Route
			if decodeLeaf(cursor, &ty, &route, nil) {
				doc.Routes = append(doc.Routes, &route)
			}
		case "JourneyPatternSection":
			var section JourneyPatternSection
			if decodeLeaf(cursor, &ty, &section, nil) {
				doc.JourneyPatternSections = append(doc.JourneyPatternSections, &section)
			}
		case "Operator", "LicensedOperator":
			var operator Operator
			if decodeLeaf(cursor, &ty, &operator, operator.Validate) {
				doc.Operators = append(doc.Operators, &operator)
			}
		case "Service":
			var service Service
			if decodeLeaf(cursor, &ty, &service, service.Validate) {
				doc.Services = append(doc.Services, &service)
			}
		case "VehicleJourney":
			var vehicleJourney VehicleJourney
			if decodeLeaf(cursor, &ty, &vehicleJourney, vehicleJourney.Validate) {
				doc.VehicleJourneys = append(doc.VehicleJourneys, &vehicleJourney)
			}
		case "FlexibleVehicleJourney":
			var vehicleJourney FlexibleVehicleJourney
			if decodeLeaf(cursor, &ty, &vehicleJourney, vehicleJourney.Validate) {
				doc.FlexibleVehicleJourneys = append(doc.FlexibleVehicleJourneys, &vehicleJourney)
			}
		case "ServicedOrganisation":
			var org ServicedOrganisation
			if decodeLeaf(cursor, &ty, &org, nil) {
				doc.ServicedOrganisations = append(doc.ServicedOrganisations, &org)
			}
		}
	}

	if !seenRoot {
		return nil, errors.New("document has no TransXChange root element")
	}

	doc.resolve()

	log.Debug().Msg("Successfully parsed document")
	log.Debug().Msgf(" - Last modified %s", doc.ModificationDateTime)
	log.Debug().Msgf(" - Contains %d stop points", len(doc.StopPoints))
	log.Debug().Msgf(" - Contains %d operators", len(doc.Operators))
	log.Debug().Msgf(" - Contains %d services", len(doc.Services))
	log.Debug().Msgf(" - Contains %d routes", len(doc.Routes))
	log.Debug().Msgf(" - Contains %d route sections", len(doc.RouteSections))
	log.Debug().Msgf(" - Contains %d vehicle journeys", len(doc.VehicleJourneys))
	log.Debug().Msgf(" - Contains %d flexible vehicle journeys", len(doc.FlexibleVehicleJourneys))

	return doc, nil
}

// decodeLeaf decodes one leaf element into value. The validate callback runs
// after decoding; a nil callback means the leaf has no required fields of its
// own. Returns false when the leaf should be dropped.
func decodeLeaf(cursor *xmlcursor.Cursor, start *xml.StartElement, value any, validate func() error) bool {
	if err := cursor.Decode(value, start); err != nil {
		log.Warn().Err(err).Str("element", start.Name.Local).Msg("Error decoding item")
		return false
	}

	if validate != nil {
		if err := validate(); err != nil {
			log.Warn().Err(err).Str("element", start.Name.Local).Msg("Skipping invalid item")
			return false
		}
	}

	return true
}
