package bitmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpan(t *testing.T) {
	cases := []struct {
		start, end string
		want       Span
	}{
		{"00:00:00", "00:30:00", Span{0, 1}},
		{"09:00:00", "12:00:00", Span{18, 24}},
		{"23:30:00", "24:00:00", Span{47, 48}},
		{"09:30:00", "10:00:00", Span{19, 20}},
	}

	for _, tc := range cases {
		span, err := ParseSpan(tc.start, tc.end)
		require.NoError(t, err, "%s-%s", tc.start, tc.end)
		assert.Equal(t, tc.want, span)
	}
}

func TestParseSpanRejects(t *testing.T) {
	cases := []struct {
		name       string
		start, end string
	}{
		{"inverted", "12:00:00", "09:00:00"},
		{"empty", "09:00:00", "09:00:00"},
		{"misaligned start", "09:15:00", "10:00:00"},
		{"misaligned end", "09:00:00", "10:10:00"},
		{"seconds", "09:00:30", "10:00:00"},
		{"sentinel as start", "24:00:00", "24:00:00"},
		{"bad format", "9am", "10:00:00"},
		{"hour out of range", "25:00:00", "26:00:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSpan(tc.start, tc.end)
			assert.Error(t, err)
		})
	}
}

func TestEndOfDaySentinelNormalizesToFinalSlot(t *testing.T) {
	span, err := ParseSpan("23:30:00", EndOfDay)
	require.NoError(t, err)
	assert.Equal(t, SlotsPerDay, span.End)

	bits, err := Encode([]Span{span})
	require.NoError(t, err)
	assert.True(t, bits.Contains(Span{47, 48}))
	assert.False(t, bits.Contains(Span{0, 1}), "sentinel must not wrap to the next day's first slot")
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatClock(0))
	assert.Equal(t, "09:30:00", FormatClock(19))
	assert.Equal(t, "23:30:00", FormatClock(47))
	assert.Equal(t, EndOfDay, FormatClock(SlotsPerDay))
}

func TestFormatParseInverse(t *testing.T) {
	for slot := 0; slot < SlotsPerDay; slot++ {
		parsed, err := ParseStart(FormatClock(slot))
		require.NoError(t, err)
		assert.Equal(t, slot, parsed)
	}
}
