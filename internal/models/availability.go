package models

import (
	"time"

	"github.com/msaedi/instructly-sub007/internal/bitmap"
)

// DateLayout is the wire and persistence format for calendar dates.
const DateLayout = "2006-01-02"

// DayAvailability is one instructor-day row. The bits payload is the
// hex-serialised half-hour vector; absence of a row means fully unavailable.
type DayAvailability struct {
	ID           string    `db:"id" json:"id"`
	InstructorID string    `db:"instructor_id" json:"instructor_id"`
	Date         time.Time `db:"date" json:"date"`
	Bits         string    `db:"bits" json:"bits"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// DateKey returns the row's calendar date in wire format.
func (d DayAvailability) DateKey() string {
	return d.Date.Format(DateLayout)
}

// Window is an ephemeral half-open time window, half-hour aligned.
// "24:00:00" is accepted only as an end value and means end-of-day.
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Span converts the window to slot indices, validating alignment.
func (w Window) Span() (bitmap.Span, error) {
	return bitmap.ParseSpan(w.Start, w.End)
}

// String renders the window for conflict messages.
func (w Window) String() string {
	return w.Start + "-" + w.End
}

// WindowFromSpan renders a slot span back to wire form.
func WindowFromSpan(s bitmap.Span) Window {
	return Window{Start: bitmap.FormatClock(s.Start), End: bitmap.FormatClock(s.End)}
}

// WindowsFromBits decodes a day vector into its minimal window list.
func WindowsFromBits(b bitmap.DayBits) []Window {
	spans := bitmap.Decode(b)
	if len(spans) == 0 {
		return nil
	}
	windows := make([]Window, 0, len(spans))
	for _, s := range spans {
		windows = append(windows, WindowFromSpan(s))
	}
	return windows
}

// DayView is one decoded day inside a week view.
type DayView struct {
	Date    string   `json:"date"`
	Windows []Window `json:"windows"`
}

// WeekView is the decoded, human-readable shape of a week plus its
// concurrency token.
type WeekView struct {
	InstructorID string    `json:"instructor_id"`
	WeekStart    string    `json:"week_start"`
	Days         []DayView `json:"days"`
	Version      string    `json:"version"`
}

// SlotView is a single half-hour slot inside an expanded day view.
type SlotView struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}
