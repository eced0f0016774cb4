package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt(t *testing.T) {
	value, ok := Int("42")
	assert.True(t, ok)
	assert.Equal(t, 42, value)

	value, ok = Int("-1")
	assert.True(t, ok)
	assert.Equal(t, -1, value)

	_, ok = Int("12a")
	assert.False(t, ok)

	_, ok = Int("")
	assert.False(t, ok)

	_, ok = Int("1.5")
	assert.False(t, ok)
}

func TestBool(t *testing.T) {
	value, ok := Bool("True")
	assert.True(t, ok)
	assert.True(t, value)

	value, ok = Bool("FALSE")
	assert.True(t, ok)
	assert.False(t, value)

	_, ok = Bool("yes")
	assert.False(t, ok)
}

func TestDateTimeNaiveSummer(t *testing.T) {
	// 2023-07-01 is inside British Summer Time
	parsed, err := DateTime("2023-07-01T12:00:00")
	require.NoError(t, err)

	_, offset := parsed.Zone()
	assert.Equal(t, 3600, offset)
	assert.Equal(t, "2023-07-01T11:00:00Z", parsed.UTC().Format("2006-01-02T15:04:05Z07:00"))
}

func TestDateTimeNaiveWinter(t *testing.T) {
	parsed, err := DateTime("2023-01-15T12:00:00")
	require.NoError(t, err)

	_, offset := parsed.Zone()
	assert.Equal(t, 0, offset)
}

func TestDateTimeExplicitZonePreserved(t *testing.T) {
	parsed, err := DateTime("2023-07-01T12:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, parsed.Location())

	parsed, err = DateTime("2023-07-01T12:00:00+02:00")
	require.NoError(t, err)
	_, offset := parsed.Zone()
	assert.Equal(t, 7200, offset)
}

func TestDurationSeconds(t *testing.T) {
	seconds, err := DurationSeconds("PT10M30S")
	require.NoError(t, err)
	assert.Equal(t, 630, seconds)

	seconds, err = DurationSeconds("P1DT2H")
	require.NoError(t, err)
	assert.Equal(t, 93600, seconds)

	_, err = DurationSeconds("P1M")
	assert.Error(t, err)

	_, err = DurationSeconds("ten minutes")
	assert.Error(t, err)
}

func TestNewVersionedRef(t *testing.T) {
	assert.Nil(t, NewVersionedRef("", "1.0", ""))

	ref := NewVersionedRef("Tariff@single", "", "1.0")
	require.NotNil(t, ref)
	assert.Equal(t, "1.0", ref.Version)
	assert.Equal(t, "Tariff@single", ref.Ref)
}

func TestSplitScheme(t *testing.T) {
	scheme, code := SplitScheme("atco:3290YYA00077")
	assert.Equal(t, "atco", scheme)
	assert.Equal(t, "3290YYA00077", code)

	scheme, code = SplitScheme("nakedcode")
	assert.Equal(t, "", scheme)
	assert.Equal(t, "nakedcode", code)
}
