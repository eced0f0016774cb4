package transxchange

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	iso8601 "github.com/senseyeio/duration"

	"github.com/transitflow/transitflow/pkg/parse"
)

// ExpandFrequencies duplicates each frequency-based vehicle journey once per
// scheduled run, so downstream lowering only ever deals with plain departure
// times.
func (doc *TransXChange) ExpandFrequencies() {
	for _, journey := range doc.VehicleJourneys {
		if journey.Frequency == nil || journey.Frequency.Interval == nil {
			continue
		}

		departureTime, err := parse.TimeOfDay(journey.DepartureTime)
		if err != nil {
			log.Warn().Err(err).Str("journey", journey.VehicleJourneyCode).
				Msg("Frequency journey has unparseable departure time")
			continue
		}

		endTime, err := parse.TimeOfDay(journey.Frequency.EndTime)
		if err != nil {
			log.Warn().Err(err).Str("journey", journey.VehicleJourneyCode).
				Msg("Frequency journey has unparseable end time")
			continue
		}

		interval, err := iso8601.ParseISO8601(journey.Frequency.Interval.ScheduledFrequency)
		if err != nil {
			log.Warn().Err(err).Str("journey", journey.VehicleJourneyCode).
				Msg("Frequency journey has unparseable interval")
			continue
		}

		for next := interval.Shift(departureTime); !next.After(endTime); next = interval.Shift(next) {
			var copied VehicleJourney
			err := copier.CopyWithOption(&copied, *journey, copier.Option{IgnoreEmpty: true, DeepCopy: true})
			if err != nil {
				log.Error().Err(err).Str("journey", journey.VehicleJourneyCode).
					Msg("Failed to copy frequency journey")
				break
			}

			copied.Frequency = nil
			copied.DepartureTime = next.Format(parse.TimeOfDayFormat)
			copied.VehicleJourneyCode = fmt.Sprintf("%s-%s", journey.VehicleJourneyCode, copied.DepartureTime)

			doc.VehicleJourneys = append(doc.VehicleJourneys, &copied)
		}

		journey.Frequency = nil
	}
}
