package transxchange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVehicleJourneyRefExclusivity(t *testing.T) {
	journey := &VehicleJourney{
		VehicleJourneyCode: "VJ1",
		DepartureTime:      "08:00:00",
		JourneyPatternRef:  "JP1",
	}
	assert.NoError(t, journey.Validate())

	journey.VehicleJourneyRef = "VJ0"
	assert.Error(t, journey.Validate())

	journey.JourneyPatternRef = ""
	assert.NoError(t, journey.Validate())

	journey.VehicleJourneyRef = ""
	assert.Error(t, journey.Validate())
}

func TestVehicleJourneyDayShift(t *testing.T) {
	journey := &VehicleJourney{VehicleJourneyCode: "VJ1"}

	shift, err := journey.DayShift()
	require.NoError(t, err)
	assert.Equal(t, 0, shift)

	journey.DepartureDayShift = "-1"
	shift, err = journey.DayShift()
	require.NoError(t, err)
	assert.Equal(t, -1, shift)

	journey.DepartureDayShift = "+1"
	shift, err = journey.DayShift()
	require.NoError(t, err)
	assert.Equal(t, 1, shift)

	journey.DepartureDayShift = "2"
	_, err = journey.DayShift()
	assert.Error(t, err)
}

func TestFlexibleServiceTimesExclusivity(t *testing.T) {
	journey := &FlexibleVehicleJourney{
		VehicleJourneyCode: "FVJ1",
		FlexibleServiceTimes: []*FlexibleServiceTime{
			{ServicePeriod: &ServicePeriod{StartTime: "09:00:00", EndTime: "17:00:00"}},
			{AllDayService: &struct{}{}},
			// both set, dropped
			{AllDayService: &struct{}{}, ServicePeriod: &ServicePeriod{StartTime: "10:00:00"}},
			// neither set, dropped
			{},
		},
	}

	windows := journey.OperationWindows()
	require.Len(t, windows, 2)
	assert.False(t, windows[0].AllDay())
	assert.True(t, windows[1].AllDay())

	assert.NoError(t, journey.Validate())
}

func TestFlexibleVehicleJourneyRequiresEntries(t *testing.T) {
	journey := &FlexibleVehicleJourney{VehicleJourneyCode: "FVJ1"}
	assert.Error(t, journey.Validate())

	journey.FlexibleServiceTimes = []*FlexibleServiceTime{{}}
	assert.Error(t, journey.Validate())
}

func TestTimingLinkOverrideLookup(t *testing.T) {
	journey := &VehicleJourney{
		VehicleJourneyTimingLinks: []VehicleJourneyTimingLink{
			{ID: "VJTL1", JourneyPatternTimingLinkRef: "JPTL1", RunTime: "PT3M"},
		},
	}

	link := journey.GetVehicleJourneyTimingLinkByJourneyPatternTimingLinkRef("JPTL1")
	require.NotNil(t, link)
	assert.Equal(t, "PT3M", link.RunTime)

	assert.Nil(t, journey.GetVehicleJourneyTimingLinkByJourneyPatternTimingLinkRef("JPTL2"))
}
