package transxchange

import "github.com/rs/zerolog/log"

// StopUsage is one element of an assembled journey-pattern stop sequence.
type StopUsage struct {
	StopPointRef string
	Activity     StopActivity
	TimingStatus TimingStatus

	// link the stop was taken from, nil for the very first stop
	Link *JourneyPatternTimingLink
}

// StopSequence concatenates the timing links of the pattern's resolved
// sections into an ordered stop list. The first stop comes from the first
// link's From; every further stop from a link's To. Where adjacent sections
// meet, the duplicated junction stop is dropped exactly once; if the two
// sections disagree at the junction the later section wins and a warning is
// emitted.
func (jp *JourneyPattern) StopSequence() []StopUsage {
	var sequence []StopUsage

	for _, section := range jp.Sections {
		for i := range section.JourneyPatternTimingLinks {
			link := &section.JourneyPatternTimingLinks[i]

			if len(sequence) == 0 {
				sequence = append(sequence, usageFromPoint(&link.From, nil))
			} else if i == 0 {
				// junction between two sections
				previous := &sequence[len(sequence)-1]
				if previous.StopPointRef != link.From.StopPointRef {
					log.Warn().
						Str("journeyPattern", jp.ID).
						Str("previous", previous.StopPointRef).
						Str("next", link.From.StopPointRef).
						Msg("Adjacent journey pattern sections disagree at junction, taking later section")
					*previous = usageFromPoint(&link.From, previous.Link)
				}
			}

			sequence = append(sequence, usageFromPoint(&link.To, link))
		}
	}

	return sequence
}

// HasUsableSequence requires at least two pair-wise linked stops.
func (jp *JourneyPattern) HasUsableSequence() bool {
	return len(jp.StopSequence()) >= 2
}

func usageFromPoint(point *JourneyPatternTimingLinkPoint, link *JourneyPatternTimingLink) StopUsage {
	activity, err := ParseStopActivity(point.Activity)
	if err != nil {
		activity = StopActivityPickUpAndSetDown
	}

	status, err := ParseTimingStatus(point.TimingStatus)
	if err != nil {
		status = TimingStatusOtherPoint
	}

	return StopUsage{
		StopPointRef: point.StopPointRef,
		Activity:     activity,
		TimingStatus: status,
		Link:         link,
	}
}
