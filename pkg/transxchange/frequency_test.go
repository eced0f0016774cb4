package transxchange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandFrequencies(t *testing.T) {
	doc := &TransXChange{
		VehicleJourneys: []*VehicleJourney{
			{
				VehicleJourneyCode: "VJ_F",
				JourneyPatternRef:  "JP1",
				DepartureTime:      "08:00:00",
				Frequency: &Frequency{
					EndTime:  "09:00:00",
					Interval: &FrequencyInterval{ScheduledFrequency: "PT20M"},
				},
			},
		},
	}

	doc.ExpandFrequencies()

	// 08:20, 08:40 and 09:00 runs added to the original one
	require.Len(t, doc.VehicleJourneys, 4)
	assert.Equal(t, "VJ_F-08:20:00", doc.VehicleJourneys[1].VehicleJourneyCode)
	assert.Equal(t, "08:20:00", doc.VehicleJourneys[1].DepartureTime)
	assert.Equal(t, "VJ_F-09:00:00", doc.VehicleJourneys[3].VehicleJourneyCode)

	for _, journey := range doc.VehicleJourneys {
		assert.Nil(t, journey.Frequency)
		assert.Equal(t, "JP1", journey.JourneyPatternRef)
	}
}

func TestExpandFrequenciesIgnoresPlainJourneys(t *testing.T) {
	doc := &TransXChange{
		VehicleJourneys: []*VehicleJourney{
			{VehicleJourneyCode: "VJ_1", DepartureTime: "08:00:00"},
		},
	}

	doc.ExpandFrequencies()
	assert.Len(t, doc.VehicleJourneys, 1)
}
