// Package bitmap implements the packed per-day availability vector.
//
// A day is 48 half-hour slots. Slot i covers [i*30min, (i+1)*30min) in the
// instructor's local time, so slot 0 is 00:00-00:30 and slot 47 is
// 23:30-24:00. Bits are stored LSB-first in a uint64: slot i is bit i.
// This ordering is the single source of truth shared by encode, decode,
// overlap checks and the hex persistence format (12 lowercase hex chars,
// most significant nibble first).
package bitmap

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

const (
	// SlotsPerDay is the number of half-hour slots in one day.
	SlotsPerDay = 48
	// SlotMinutes is the scheduling granularity.
	SlotMinutes = 30
	// HexLen is the length of the persisted hex payload.
	HexLen = SlotsPerDay / 4
)

// DayBits is one day's availability, one bit per half-hour slot.
type DayBits uint64

// FullMask has every slot of the day set.
const FullMask DayBits = (1 << SlotsPerDay) - 1

// Span is a half-open slot interval [Start, End) within a day.
type Span struct {
	Start int
	End   int
}

// Mask returns the bit pattern covering the span.
func (s Span) Mask() DayBits {
	if s.Start < 0 || s.End > SlotsPerDay || s.Start >= s.End {
		return 0
	}
	return ((1 << (s.End - s.Start)) - 1) << s.Start
}

// Overlaps reports whether the two vectors share any set slot.
func (b DayBits) Overlaps(o DayBits) bool {
	return b&o != 0
}

// Union merges two vectors.
func (b DayBits) Union(o DayBits) DayBits {
	return (b | o) & FullMask
}

// Clear removes the slots of o from b.
func (b DayBits) Clear(o DayBits) DayBits {
	return b &^ o
}

// IsEmpty reports whether no slot is set.
func (b DayBits) IsEmpty() bool {
	return b&FullMask == 0
}

// Count returns the number of set slots.
func (b DayBits) Count() int {
	return bits.OnesCount64(uint64(b & FullMask))
}

// Contains reports whether every slot of the span is set.
func (b DayBits) Contains(s Span) bool {
	mask := s.Mask()
	return mask != 0 && b&mask == mask
}

// Hex serialises the vector as 12 lowercase hex characters, zero padded.
func (b DayBits) Hex() string {
	return fmt.Sprintf("%012x", uint64(b&FullMask))
}

// FromHex parses the persisted hex payload. An empty string is an empty day.
func FromHex(raw string) (DayBits, error) {
	if raw == "" {
		return 0, nil
	}
	if len(raw) != HexLen {
		return 0, fmt.Errorf("bitmap: payload must be %d hex chars, got %d", HexLen, len(raw))
	}
	v, err := strconv.ParseUint(strings.ToLower(raw), 16, 64)
	if err != nil {
		return 0, fmt.Errorf("bitmap: invalid hex payload %q: %w", raw, err)
	}
	if DayBits(v) > FullMask {
		return 0, fmt.Errorf("bitmap: payload %q exceeds %d slots", raw, SlotsPerDay)
	}
	return DayBits(v), nil
}

// Encode packs the spans into a vector. Spans must be valid and mutually
// non-overlapping; the offending pair is reported otherwise.
func Encode(spans []Span) (DayBits, error) {
	var acc DayBits
	for i, s := range spans {
		if s.Start < 0 || s.End > SlotsPerDay {
			return 0, fmt.Errorf("bitmap: span %d out of range [%d,%d)", i, s.Start, s.End)
		}
		if s.End <= s.Start {
			return 0, fmt.Errorf("bitmap: span %d inverted [%d,%d)", i, s.Start, s.End)
		}
		mask := s.Mask()
		if acc&mask != 0 {
			return 0, fmt.Errorf("bitmap: span %d [%d,%d) overlaps an earlier span", i, s.Start, s.End)
		}
		acc |= mask
	}
	return acc, nil
}

// Decode unpacks the vector into the minimal ordered span list, coalescing
// contiguous slots. An empty vector decodes to nil.
func Decode(b DayBits) []Span {
	b &= FullMask
	if b == 0 {
		return nil
	}
	var spans []Span
	i := 0
	for i < SlotsPerDay {
		if b&(1<<i) == 0 {
			i++
			continue
		}
		start := i
		for i < SlotsPerDay && b&(1<<i) != 0 {
			i++
		}
		spans = append(spans, Span{Start: start, End: i})
	}
	return spans
}
