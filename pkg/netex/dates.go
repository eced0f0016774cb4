package netex

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/transitflow/transitflow/pkg/parse"
)

// IsMetadata reports whether a composite frame is the UK PI metadata frame,
// which carries publication bookkeeping rather than fare validity.
func (frame *CompositeFrame) IsMetadata() bool {
	return frame.TypeOfFrameRef != nil && strings.Contains(frame.TypeOfFrameRef.Ref, metadataMarker)
}

// ValidFrom returns the earliest FromDate across the non-metadata composite
// frames. The second return is false when no frame carries a parsable date.
func (doc *PublicationDelivery) ValidFrom() (time.Time, bool) {
	return doc.aggregateValidity(func(earliest, candidate time.Time) bool {
		return candidate.Before(earliest)
	}, func(v *ValidBetween) string { return v.FromDate })
}

// ValidTo returns the latest ToDate across the non-metadata composite frames.
func (doc *PublicationDelivery) ValidTo() (time.Time, bool) {
	return doc.aggregateValidity(func(latest, candidate time.Time) bool {
		return candidate.After(latest)
	}, func(v *ValidBetween) string { return v.ToDate })
}

func (doc *PublicationDelivery) aggregateValidity(better func(current, candidate time.Time) bool, pick func(*ValidBetween) string) (time.Time, bool) {
	var result time.Time
	found := false

	for _, frame := range doc.CompositeFrames {
		if frame.IsMetadata() || frame.ValidBetween == nil {
			continue
		}

		raw := pick(frame.ValidBetween)
		if raw == "" {
			continue
		}

		parsed, err := parse.DateTime(raw)
		if err != nil {
			log.Warn().Str("frame", frame.ID).Str("value", raw).Msg("Unparsable composite frame validity date")
			continue
		}

		if !found || better(result, parsed) {
			result = parsed
			found = true
		}
	}

	return result, found
}
