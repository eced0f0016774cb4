package transxchange

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionWithLinks(id string, stops ...string) *JourneyPatternSection {
	section := &JourneyPatternSection{ID: id}
	for i := 0; i+1 < len(stops); i++ {
		section.JourneyPatternTimingLinks = append(section.JourneyPatternTimingLinks, JourneyPatternTimingLink{
			ID:      id + "_" + stops[i],
			RunTime: "PT2M",
			From:    JourneyPatternTimingLinkPoint{StopPointRef: stops[i]},
			To:      JourneyPatternTimingLinkPoint{StopPointRef: stops[i+1]},
		})
	}

	return section
}

func stopsOf(sequence []StopUsage) []string {
	var stops []string
	for _, usage := range sequence {
		stops = append(stops, usage.StopPointRef)
	}
	return stops
}

func TestStopSequenceSingleSection(t *testing.T) {
	jp := &JourneyPattern{ID: "JP", Sections: []*JourneyPatternSection{
		sectionWithLinks("S1", "A", "B", "C", "D"),
	}}

	sequence := jp.StopSequence()
	assert.Equal(t, []string{"A", "B", "C", "D"}, stopsOf(sequence))
}

func TestStopSequenceJunctionAgrees(t *testing.T) {
	jp := &JourneyPattern{ID: "JP", Sections: []*JourneyPatternSection{
		sectionWithLinks("S1", "A", "B", "C"),
		sectionWithLinks("S2", "C", "D", "E"),
	}}

	sequence := jp.StopSequence()
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, stopsOf(sequence))

	// junction stop deduplicated exactly once
	totalLinks := 0
	for _, section := range jp.Sections {
		totalLinks += len(section.JourneyPatternTimingLinks)
	}
	assert.Len(t, sequence, 1+totalLinks)
}

func TestStopSequenceJunctionDisagrees(t *testing.T) {
	jp := &JourneyPattern{ID: "JP", Sections: []*JourneyPatternSection{
		sectionWithLinks("S1", "A", "B", "C"),
		sectionWithLinks("S2", "X", "D"),
	}}

	// the later section wins the junction
	sequence := jp.StopSequence()
	assert.Equal(t, []string{"A", "B", "X", "D"}, stopsOf(sequence))

	// the rewritten junction keeps the earlier section's link, so its run
	// time is not lost and the later section's first link counts once
	require.NotNil(t, sequence[2].Link)
	assert.Equal(t, "S1_B", sequence[2].Link.ID)
	require.NotNil(t, sequence[3].Link)
	assert.Equal(t, "S2_X", sequence[3].Link.ID)
}

func TestHasUsableSequence(t *testing.T) {
	jp := &JourneyPattern{ID: "JP"}
	assert.False(t, jp.HasUsableSequence())

	jp.Sections = []*JourneyPatternSection{sectionWithLinks("S1", "A", "B")}
	assert.True(t, jp.HasUsableSequence())
}

func TestStopSequenceLinksAreAttached(t *testing.T) {
	jp := &JourneyPattern{ID: "JP", Sections: []*JourneyPatternSection{
		sectionWithLinks("S1", "A", "B", "C"),
	}}

	sequence := jp.StopSequence()
	require.Len(t, sequence, 3)
	assert.Nil(t, sequence[0].Link)
	require.NotNil(t, sequence[1].Link)
	assert.Equal(t, "PT2M", sequence[1].Link.RunTime)
}
