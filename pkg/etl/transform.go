// Package etl lowers parsed documents into the relational row shapes ready
// for persistence.
package etl

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/transitflow/transitflow/pkg/parse"
	"github.com/transitflow/transitflow/pkg/tracks"
	"github.com/transitflow/transitflow/pkg/transmodel"
	"github.com/transitflow/transitflow/pkg/transxchange"
)

// Output is the lowered form of one TransXChange document. Rows carry no ids
// yet; the repository layer assigns them at insert and materialises the
// junction rows.
type Output struct {
	FileAttributes *transmodel.OrganisationTXCFileAttributes
	Services       []*ServiceOutput
	Tracks         []*transmodel.Track
}

// ServiceOutput groups a service with its lowered patterns.
type ServiceOutput struct {
	Service  *transmodel.Service
	Patterns []*PatternOutput
}

// PatternOutput groups a service pattern with its stops and journeys.
// Back-edges stay as indices into the parent until ids exist, keeping the
// lowered graph acyclic.
type PatternOutput struct {
	Pattern  *transmodel.ServicePattern
	Stops    []*transmodel.ServicePatternStop
	Journeys []*JourneyOutput
}

// JourneyOutput is one lowered vehicle journey and, for flexible journeys,
// its operation periods in document order.
type JourneyOutput struct {
	Journey          *transmodel.VehicleJourney
	OperationPeriods []*transmodel.FlexibleServiceOperationPeriod
}

// Transform lowers a parsed document. The filename is supplied by the
// caller; it is bookkeeping, not semantics.
func Transform(doc *transxchange.TransXChange, filename string) *Output {
	// frequency-based journeys become plain timed runs before any lowering
	doc.ExpandFrequencies()

	output := &Output{
		FileAttributes: fileAttributes(doc, filename),
		Tracks:         lowerTracks(doc),
	}

	for _, service := range doc.Services {
		output.Services = append(output.Services, lowerService(doc, service))
	}

	log.Debug().
		Str("filename", filename).
		Int("services", len(output.Services)).
		Int("tracks", len(output.Tracks)).
		Msg("Lowered TransXChange document")

	return output
}

func fileAttributes(doc *transxchange.TransXChange, filename string) *transmodel.OrganisationTXCFileAttributes {
	attributes := &transmodel.OrganisationTXCFileAttributes{
		SchemaVersion: doc.SchemaVersion,
		Filename:      filename,
	}

	if created, err := parse.DateTime(doc.CreationDateTime); err == nil {
		attributes.CreationDatetime = created
	}
	if modified, err := parse.DateTime(doc.ModificationDateTime); err == nil {
		attributes.ModificationDatetime = modified
	}

	if len(doc.Operators) > 0 {
		attributes.NationalOperatorCode = doc.Operators[0].NationalOperatorCode
		attributes.LicenceNumber = doc.Operators[0].LicenceNumber
	}

	if len(doc.Services) > 0 {
		service := doc.Services[0]
		attributes.ServiceCode = service.ServiceCode
		attributes.PublicUse = service.IsPublic()
		if revision, ok := parse.Int(service.RevisionNumber); ok {
			attributes.RevisionNumber = revision
		}
		if start, err := parse.Date(service.StartDate); err == nil {
			attributes.OperatingPeriodStartDate = &start
		}
		if end, err := parse.Date(service.EndDate); err == nil {
			attributes.OperatingPeriodEndDate = &end
		}
		for _, line := range service.Lines {
			attributes.LineNames = append(attributes.LineNames, line.LineName)
		}

		if standard := service.StandardService; standard != nil {
			attributes.Origin = standard.Origin
			attributes.Destination = standard.Destination
		} else if flexible := service.FlexibleService; flexible != nil {
			attributes.Origin = flexible.Origin
			attributes.Destination = flexible.Destination
		}
	}

	return attributes
}

func lowerService(doc *transxchange.TransXChange, service *transxchange.Service) *ServiceOutput {
	row := &transmodel.Service{
		ServiceCode: service.ServiceCode,
		ServiceType: "standard",
	}
	if len(service.Lines) > 0 {
		row.Name = service.Lines[0].LineName
	}
	if start, err := parse.Date(service.StartDate); err == nil {
		row.StartDate = start
	}
	if end, err := parse.Date(service.EndDate); err == nil {
		row.EndDate = &end
	}

	output := &ServiceOutput{Service: row}

	if service.StandardService != nil {
		for _, pattern := range service.StandardService.JourneyPatterns {
			lowered := lowerPattern(doc, service, pattern)
			if lowered != nil {
				output.Patterns = append(output.Patterns, lowered)
			}
		}
	}

	if service.FlexibleService != nil {
		row.ServiceType = "flexible"
		output.Patterns = append(output.Patterns, lowerFlexiblePatterns(doc, service)...)
	}

	return output
}

func lowerPattern(doc *transxchange.TransXChange, service *transxchange.Service, pattern *transxchange.JourneyPattern) *PatternOutput {
	sequence := pattern.StopSequence()
	if len(sequence) < 2 {
		log.Warn().
			Str("service", service.ServiceCode).
			Str("journeyPattern", pattern.ID).
			Msg("Journey pattern has no usable stop sequence, skipping")
		return nil
	}

	row := &transmodel.ServicePattern{
		ServicePatternID: fmt.Sprintf("%s-%s", service.ServiceCode, pattern.ID),
	}
	if len(service.Lines) > 0 {
		lineName := service.Lines[0].LineName
		row.LineName = &lineName
	}
	if standard := service.StandardService; standard != nil {
		row.Origin = standard.Origin
		row.Destination = standard.Destination
	}

	journeys := journeysForPattern(doc, pattern.ID)

	output := &PatternOutput{
		Pattern:  row,
		Stops:    lowerStops(sequence, firstDeparture(journeys)),
		Journeys: journeys,
	}

	return output
}

// journeysForPattern lowers the vehicle journeys bound to a pattern, either
// directly or through another journey of the same pattern.
func journeysForPattern(doc *transxchange.TransXChange, patternID string) []*JourneyOutput {
	byCode := make(map[string]*transxchange.VehicleJourney, len(doc.VehicleJourneys))
	for _, journey := range doc.VehicleJourneys {
		byCode[journey.VehicleJourneyCode] = journey
	}

	patternOf := func(journey *transxchange.VehicleJourney) string {
		if journey.JourneyPatternRef != "" {
			return journey.JourneyPatternRef
		}
		if referenced, ok := byCode[journey.VehicleJourneyRef]; ok {
			return referenced.JourneyPatternRef
		}

		log.Warn().
			Str("journey", journey.VehicleJourneyCode).
			Str("ref", journey.VehicleJourneyRef).
			Msg("VehicleJourneyRef does not resolve")
		return ""
	}

	var journeys []*JourneyOutput
	for _, journey := range doc.VehicleJourneys {
		if patternOf(journey) != patternID {
			continue
		}

		flagEmptyProfile(journey)

		shift, err := journey.DayShift()
		if err != nil {
			shift = 0
		}

		startTime := journey.DepartureTime
		direction := journey.Direction
		journeyCode := journey.VehicleJourneyCode
		lineRef := journey.LineRef
		row := &transmodel.VehicleJourney{
			StartTime:         &startTime,
			JourneyCode:       &journeyCode,
			DepartureDayShift: shift != 0,
		}
		if direction != "" {
			row.Direction = &direction
		}
		if lineRef != "" {
			row.LineRef = &lineRef
		}
		if journey.BlockNumber != "" {
			blockNumber := journey.BlockNumber
			row.BlockNumber = &blockNumber
		}

		journeys = append(journeys, &JourneyOutput{Journey: row})
	}

	return journeys
}

// flagEmptyProfile warns about a profile with no weekday flags at all. The
// TXC 2.1 schema read that as Monday through Sunday; the journey is kept with
// the literal reading. A journey operating only on named bank holidays is a
// legitimate empty week and stays silent.
func flagEmptyProfile(journey *transxchange.VehicleJourney) {
	profile := &journey.OperatingProfile
	if !profile.IsEmpty() {
		return
	}

	if operation := profile.BankHolidayOperation; operation != nil {
		if len(operation.DaysOfOperation.Flags()) > 0 {
			return
		}
	}

	log.Warn().
		Str("journey", journey.VehicleJourneyCode).
		Msg("Operating profile has no weekday flags")
}

func firstDeparture(journeys []*JourneyOutput) string {
	if len(journeys) == 0 || journeys[0].Journey.StartTime == nil {
		return ""
	}

	return *journeys[0].Journey.StartTime
}

// lowerStops renders the assembled stop sequence into rows. When a departure
// time and link run times are known, each stop's time is the cumulative
// offset from the journey start.
func lowerStops(sequence []transxchange.StopUsage, departure string) []*transmodel.ServicePatternStop {
	var elapsed int
	haveTime := departure != ""
	start, err := parse.TimeOfDay(departure)
	if err != nil {
		haveTime = false
	}

	stops := make([]*transmodel.ServicePatternStop, len(sequence))
	for i, usage := range sequence {
		stop := &transmodel.ServicePatternStop{
			SequenceNumber: i,
			AtcoCode:       usage.StopPointRef,
			IsTimingPoint:  usage.TimingStatus == transxchange.TimingStatusPrincipalTimingPoint || usage.TimingStatus == transxchange.TimingStatusPrincipalPoint,
		}

		if usage.Link != nil {
			if seconds, err := parse.DurationSeconds(usage.Link.RunTime); err == nil {
				elapsed += seconds
			}
		}
		if haveTime {
			at := start.Add(time.Duration(elapsed) * time.Second).Format("15:04:05")
			stop.DepartureTime = &at
		}

		stops[i] = stop
	}

	return stops
}

// lowerFlexiblePatterns builds one pattern per flexible journey pattern and
// attaches the flexible journeys with their operation periods, ordering
// preserved.
func lowerFlexiblePatterns(doc *transxchange.TransXChange, service *transxchange.Service) []*PatternOutput {
	var outputs []*PatternOutput

	for _, pattern := range service.FlexibleService.FlexibleJourneyPatterns {
		row := &transmodel.ServicePattern{
			ServicePatternID: fmt.Sprintf("%s-%s", service.ServiceCode, pattern.ID),
			Origin:           service.FlexibleService.Origin,
			Destination:      service.FlexibleService.Destination,
		}

		output := &PatternOutput{Pattern: row}
		for _, journey := range doc.FlexibleVehicleJourneys {
			if journey.FlexibleJourneyPatternRef != pattern.ID {
				continue
			}

			journeyCode := journey.VehicleJourneyCode
			lowered := &JourneyOutput{
				Journey: &transmodel.VehicleJourney{JourneyCode: &journeyCode},
			}

			for _, window := range journey.OperationWindows() {
				period := &transmodel.FlexibleServiceOperationPeriod{}
				if window.ServicePeriod != nil {
					startTime := window.ServicePeriod.StartTime
					endTime := window.ServicePeriod.EndTime
					period.StartTime = &startTime
					period.EndTime = &endTime
				}
				lowered.OperationPeriods = append(lowered.OperationPeriods, period)
			}

			output.Journeys = append(output.Journeys, lowered)
		}

		outputs = append(outputs, output)
	}

	return outputs
}

// lowerTracks renders every route link polyline into a track row. Links
// without a usable polyline still produce a row so journeys can reference
// the hop; they just carry no geometry. Links sharing a stop pair are all
// kept: the insert's conflict handling and the similarity engine decide
// which survives.
func lowerTracks(doc *transxchange.TransXChange) []*transmodel.Track {
	var rows []*transmodel.Track

	for _, section := range doc.RouteSections {
		for i := range section.RouteLinks {
			link := &section.RouteLinks[i]

			row := &transmodel.Track{
				FromAtcoCode: link.FromStop,
				ToAtcoCode:   link.ToStop,
			}

			points := link.TrackCoordinates()
			if len(points) >= 2 {
				geometry := transmodel.LineStringWKT(points)
				row.Geometry = &geometry
				distance := int(math.Round(tracks.LengthMetres(points)))
				row.Distance = &distance
			} else if link.Distance > 0 {
				distance := link.Distance
				row.Distance = &distance
			}

			rows = append(rows, row)
		}
	}

	return rows
}
