package etl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transitflow/transitflow/pkg/transxchange"
)

func timingLink(id, from, to, runTime, toStatus string) transxchange.JourneyPatternTimingLink {
	return transxchange.JourneyPatternTimingLink{
		ID:      id,
		RunTime: runTime,
		From: transxchange.JourneyPatternTimingLinkPoint{
			StopPointRef: from,
			TimingStatus: "PTP",
		},
		To: transxchange.JourneyPatternTimingLinkPoint{
			StopPointRef: to,
			TimingStatus: toStatus,
		},
	}
}

// standardDocument carries one standard service with two journey patterns of
// four stops each and a single vehicle journey on the first pattern.
func standardDocument() *transxchange.TransXChange {
	outbound := &transxchange.JourneyPatternSection{
		ID: "JPS1",
		JourneyPatternTimingLinks: []transxchange.JourneyPatternTimingLink{
			timingLink("JPTL1", "370010113", "370010114", "PT300S", "OTH"),
			timingLink("JPTL2", "370010114", "370010115", "PT120S", "OTH"),
			timingLink("JPTL3", "370010115", "370010116", "PT180S", "PTP"),
		},
	}
	inbound := &transxchange.JourneyPatternSection{
		ID: "JPS2",
		JourneyPatternTimingLinks: []transxchange.JourneyPatternTimingLink{
			timingLink("JPTL4", "370010116", "370010115", "PT180S", "OTH"),
			timingLink("JPTL5", "370010115", "370010114", "PT120S", "OTH"),
			timingLink("JPTL6", "370010114", "370010113", "PT300S", "PTP"),
		},
	}

	service := &transxchange.Service{
		ServiceCode:    "PB0002032:467",
		RevisionNumber: "5",
		StartDate:      "2022-01-01",
		Lines:          []transxchange.Line{{ID: "l1", LineName: "42"}},
		StandardService: &transxchange.StandardService{
			Origin:      "Sheffield",
			Destination: "Rotherham",
			JourneyPatterns: []*transxchange.JourneyPattern{
				{ID: "JP1", Sections: []*transxchange.JourneyPatternSection{outbound}},
				{ID: "JP2", Sections: []*transxchange.JourneyPatternSection{inbound}},
			},
		},
	}

	return &transxchange.TransXChange{
		CreationDateTime:     "2022-01-01T10:00:00",
		ModificationDateTime: "2022-06-01T10:00:00",
		SchemaVersion:        "2.4",
		Operators: []*transxchange.Operator{{
			ID:                   "O1",
			NationalOperatorCode: "FSYO",
			OperatorShortName:    "First South Yorkshire",
			LicenceNumber:        "PB0002032",
		}},
		Services: []*transxchange.Service{service},
		VehicleJourneys: []*transxchange.VehicleJourney{{
			VehicleJourneyCode: "VJ1",
			JourneyPatternRef:  "JP1",
			DepartureTime:      "08:00:00",
			Direction:          "outbound",
			LineRef:            "l1",
		}},
	}
}

func TestTransformStandardService(t *testing.T) {
	output := Transform(standardDocument(), "sheffield_42.xml")

	require.Len(t, output.Services, 1)
	service := output.Services[0]
	assert.Equal(t, "PB0002032:467", service.Service.ServiceCode)
	assert.Equal(t, "standard", service.Service.ServiceType)
	assert.Equal(t, "42", service.Service.Name)

	require.Len(t, service.Patterns, 2)
	for _, pattern := range service.Patterns {
		assert.Len(t, pattern.Stops, 4)
		for i, stop := range pattern.Stops {
			assert.Equal(t, i, stop.SequenceNumber)
		}
	}

	outbound := service.Patterns[0]
	assert.Equal(t, "PB0002032:467-JP1", outbound.Pattern.ServicePatternID)
	assert.Equal(t, "Sheffield", outbound.Pattern.Origin)
	assert.Equal(t, "Rotherham", outbound.Pattern.Destination)

	require.Len(t, outbound.Journeys, 1)
	journey := outbound.Journeys[0].Journey
	require.NotNil(t, journey.StartTime)
	assert.Equal(t, "08:00:00", *journey.StartTime)
	assert.False(t, journey.DepartureDayShift)
	require.NotNil(t, journey.JourneyCode)
	assert.Equal(t, "VJ1", *journey.JourneyCode)

	assert.Empty(t, service.Patterns[1].Journeys)
}

func TestTransformStopDepartureTimes(t *testing.T) {
	output := Transform(standardDocument(), "sheffield_42.xml")

	stops := output.Services[0].Patterns[0].Stops
	require.Len(t, stops, 4)

	// cumulative run times from the 08:00:00 departure
	expected := []string{"08:00:00", "08:05:00", "08:07:00", "08:10:00"}
	for i, stop := range stops {
		require.NotNil(t, stop.DepartureTime)
		assert.Equal(t, expected[i], *stop.DepartureTime)
	}

	assert.True(t, stops[0].IsTimingPoint)
	assert.False(t, stops[1].IsTimingPoint)
	assert.True(t, stops[3].IsTimingPoint)
}

func TestTransformFileAttributes(t *testing.T) {
	output := Transform(standardDocument(), "sheffield_42.xml")

	attributes := output.FileAttributes
	assert.Equal(t, "sheffield_42.xml", attributes.Filename)
	assert.Equal(t, "2.4", attributes.SchemaVersion)
	assert.Equal(t, 5, attributes.RevisionNumber)
	assert.Equal(t, "PB0002032:467", attributes.ServiceCode)
	assert.Equal(t, "FSYO", attributes.NationalOperatorCode)
	assert.Equal(t, "PB0002032", attributes.LicenceNumber)
	assert.Equal(t, "Sheffield", attributes.Origin)
	assert.Equal(t, "Rotherham", attributes.Destination)
	assert.Equal(t, []string{"42"}, attributes.LineNames)
	assert.True(t, attributes.PublicUse)
	require.NotNil(t, attributes.OperatingPeriodStartDate)
	assert.Equal(t, "2022-01-01", attributes.OperatingPeriodStartDate.Format("2006-01-02"))
}

func TestTransformFlexibleService(t *testing.T) {
	service := &transxchange.Service{
		ServiceCode: "PF0000508:11",
		StartDate:   "2022-01-01",
		Lines:       []transxchange.Line{{ID: "l1", LineName: "DRT1"}},
		FlexibleService: &transxchange.FlexibleService{
			Origin:      "Market Rasen",
			Destination: "Lincoln",
			FlexibleJourneyPatterns: []*transxchange.JourneyPattern{{ID: "FJP1"}},
		},
	}

	doc := &transxchange.TransXChange{
		CreationDateTime:     "2022-01-01T10:00:00",
		ModificationDateTime: "2022-01-01T10:00:00",
		SchemaVersion:        "2.4",
		Services:             []*transxchange.Service{service},
		FlexibleVehicleJourneys: []*transxchange.FlexibleVehicleJourney{{
			VehicleJourneyCode:        "FVJ1",
			FlexibleJourneyPatternRef: "FJP1",
			FlexibleServiceTimes: []*transxchange.FlexibleServiceTime{
				{ServicePeriod: &transxchange.ServicePeriod{StartTime: "09:00:00", EndTime: "17:00:00"}},
				{AllDayService: &struct{}{}},
			},
		}},
	}

	output := Transform(doc, "drt.xml")

	require.Len(t, output.Services, 1)
	assert.Equal(t, "flexible", output.Services[0].Service.ServiceType)

	require.Len(t, output.Services[0].Patterns, 1)
	pattern := output.Services[0].Patterns[0]
	assert.Equal(t, "PF0000508:11-FJP1", pattern.Pattern.ServicePatternID)

	require.Len(t, pattern.Journeys, 1)
	periods := pattern.Journeys[0].OperationPeriods
	require.Len(t, periods, 2)

	require.NotNil(t, periods[0].StartTime)
	assert.Equal(t, "09:00:00", *periods[0].StartTime)
	require.NotNil(t, periods[0].EndTime)
	assert.Equal(t, "17:00:00", *periods[0].EndTime)

	assert.Nil(t, periods[1].StartTime)
	assert.Nil(t, periods[1].EndTime)
}

func TestTransformJourneyThroughVehicleJourneyRef(t *testing.T) {
	doc := standardDocument()
	doc.VehicleJourneys = append(doc.VehicleJourneys, &transxchange.VehicleJourney{
		VehicleJourneyCode: "VJ2",
		VehicleJourneyRef:  "VJ1",
		DepartureTime:      "09:30:00",
		DepartureDayShift:  "1",
	})

	output := Transform(doc, "sheffield_42.xml")

	journeys := output.Services[0].Patterns[0].Journeys
	require.Len(t, journeys, 2)
	require.NotNil(t, journeys[1].Journey.StartTime)
	assert.Equal(t, "09:30:00", *journeys[1].Journey.StartTime)
	assert.True(t, journeys[1].Journey.DepartureDayShift)
}

func TestTransformSkipsShortPatterns(t *testing.T) {
	doc := standardDocument()
	doc.Services[0].StandardService.JourneyPatterns = append(
		doc.Services[0].StandardService.JourneyPatterns,
		&transxchange.JourneyPattern{ID: "JP3"},
	)

	output := Transform(doc, "sheffield_42.xml")

	assert.Len(t, output.Services[0].Patterns, 2)
}

func TestTransformTracks(t *testing.T) {
	doc := standardDocument()
	doc.RouteSections = []*transxchange.RouteSection{{
		ID: "RS1",
		RouteLinks: []transxchange.RouteLink{
			{
				ID:       "RL1",
				FromStop: "370010113",
				ToStop:   "370010114",
				Track: []transxchange.Location{
					{LocationInner: transxchange.LocationInner{Latitude: 53.3811, Longitude: -1.4701}},
					{LocationInner: transxchange.LocationInner{Latitude: 53.3840, Longitude: -1.4650}},
				},
			},
			// same stop pair again; both rows must survive lowering
			{
				ID:       "RL2",
				FromStop: "370010113",
				ToStop:   "370010114",
				Distance: 450,
			},
		},
	}}

	output := Transform(doc, "sheffield_42.xml")

	require.Len(t, output.Tracks, 2)

	first := output.Tracks[0]
	assert.Equal(t, "370010113", first.FromAtcoCode)
	assert.Equal(t, "370010114", first.ToAtcoCode)
	require.NotNil(t, first.Geometry)
	assert.Contains(t, *first.Geometry, "LINESTRING")
	require.NotNil(t, first.Distance)
	assert.Greater(t, *first.Distance, 0)

	second := output.Tracks[1]
	assert.Equal(t, "370010113", second.FromAtcoCode)
	assert.Nil(t, second.Geometry)
	require.NotNil(t, second.Distance)
	assert.Equal(t, 450, *second.Distance)
}

func TestTransformExpandsFrequencyJourneys(t *testing.T) {
	doc := standardDocument()
	doc.VehicleJourneys = append(doc.VehicleJourneys, &transxchange.VehicleJourney{
		VehicleJourneyCode: "VJ_F",
		JourneyPatternRef:  "JP1",
		DepartureTime:      "10:00:00",
		Frequency: &transxchange.Frequency{
			EndTime:  "11:00:00",
			Interval: &transxchange.FrequencyInterval{ScheduledFrequency: "PT30M"},
		},
	})

	output := Transform(doc, "sheffield_42.xml")

	// VJ1 plus the 10:00 run and its 10:30 and 11:00 repeats
	journeys := output.Services[0].Patterns[0].Journeys
	require.Len(t, journeys, 4)

	var starts []string
	for _, journey := range journeys {
		require.NotNil(t, journey.Journey.StartTime)
		starts = append(starts, *journey.Journey.StartTime)
	}
	assert.Equal(t, []string{"08:00:00", "10:00:00", "10:30:00", "11:00:00"}, starts)
}

func TestTransformKeepsEmptyProfileJourneys(t *testing.T) {
	doc := standardDocument()
	doc.VehicleJourneys[0].OperatingProfile = transxchange.OperatingProfile{
		RegularDayType: transxchange.RegularDayType{DaysOfWeek: &transxchange.DaysOfWeek{}},
	}

	output := Transform(doc, "sheffield_42.xml")

	// flagged, not rejected
	require.Len(t, output.Services[0].Patterns[0].Journeys, 1)
}
