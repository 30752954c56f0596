package bitmap

import (
	"fmt"
	"strconv"
	"strings"
)

// EndOfDay is the sentinel end value meaning "until midnight". It is only
// legal as a window end and maps to slot index 48, never to slot 0 of the
// following day.
const EndOfDay = "24:00:00"

// ParseStart converts a "HH:MM:SS" start value to its slot index.
func ParseStart(clock string) (int, error) {
	return parseClock(clock, false)
}

// ParseEnd converts a "HH:MM:SS" end value to its exclusive slot index,
// accepting the end-of-day sentinel.
func ParseEnd(clock string) (int, error) {
	return parseClock(clock, true)
}

// ParseSpan converts a (start, end) clock pair into a validated span.
func ParseSpan(start, end string) (Span, error) {
	s, err := ParseStart(start)
	if err != nil {
		return Span{}, err
	}
	e, err := ParseEnd(end)
	if err != nil {
		return Span{}, err
	}
	if e <= s {
		return Span{}, fmt.Errorf("bitmap: window %s-%s is inverted or empty", start, end)
	}
	return Span{Start: s, End: e}, nil
}

// FormatClock renders a slot boundary as "HH:MM:SS"; index 48 renders as the
// end-of-day sentinel.
func FormatClock(slot int) string {
	if slot == SlotsPerDay {
		return EndOfDay
	}
	h := slot * SlotMinutes / 60
	m := slot * SlotMinutes % 60
	return fmt.Sprintf("%02d:%02d:00", h, m)
}

func parseClock(clock string, allowEndOfDay bool) (int, error) {
	if clock == EndOfDay {
		if allowEndOfDay {
			return SlotsPerDay, nil
		}
		return 0, fmt.Errorf("bitmap: %s is only valid as a window end", EndOfDay)
	}

	parts := strings.Split(clock, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("bitmap: clock %q must be HH:MM:SS", clock)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("bitmap: clock %q has invalid hour", clock)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("bitmap: clock %q has invalid minute", clock)
	}
	s, err := strconv.Atoi(parts[2])
	if err != nil || s != 0 {
		return 0, fmt.Errorf("bitmap: clock %q must fall on a whole minute", clock)
	}
	if m%SlotMinutes != 0 {
		return 0, fmt.Errorf("bitmap: clock %q is not aligned to %d minutes", clock, SlotMinutes)
	}
	return h*2 + m/SlotMinutes, nil
}
