package schedule

import (
	"time"
)

// Upstream payload types

type timeslotsRequest struct {
	Date     string          `json:"date"`
	Trainers trainersRequest `json:"trainers"`
}

type trainersRequest struct {
	Type string `json:"type"`
}

type timeslotsResponse struct {
	ByTrainer map[string]trainerSlots `json:"byTrainer"`
}

type trainerSlots struct {
	Slots [][]RawSlot `json:"slots"`
}

// RawSlot is a single slot record as returned by the upstream API. Every
// field is optional on the wire; the normalizer decides what is usable.
type RawSlot struct {
	TimeFrom          string   `json:"timeFrom"`
	TimeTo            string   `json:"timeTo"`
	AvailableDuration string   `json:"availableDuration"`
	RoomName          string   `json:"roomName"`
	Price             RawPrice `json:"price"`
}

type RawPrice struct {
	From int64 `json:"from"`
}

// Slot processing types

// Slot is the canonical bookable interval. Start and End are in the
// reference zone; Date, Weekday and DedupKey are derived from Start there.
// Slots are never mutated after normalization.
type Slot struct {
	Start           time.Time
	End             time.Time
	Date            string // YYYY-MM-DD in the reference zone
	Weekday         int    // 0=Monday .. 6=Sunday
	DurationMinutes int
	Room            string
	Price           int64
	DedupKey        string
}

// VenueReport holds the filtered slots for one venue after a scan.
type VenueReport struct {
	Key   string
	Name  string
	Slots []Slot
	Count int
}

// AdmissionWindow is an allowed start/end range in minutes of day. A slot is
// admitted only when it lies fully inside the window.
type AdmissionWindow struct {
	FromMinutes int
	ToMinutes   int
}

// Configuration types

type VenueConfig struct {
	Key      string        // Derived from filename (without .yml extension)
	ID       string        `yaml:"id"`
	Name     string        `yaml:"name"`
	Settings VenueSettings `yaml:"settings"`
	Windows  VenueWindows  `yaml:"windows"`

	// Resolved from Windows during validation
	weekdayWindow AdmissionWindow
	weekendWindow AdmissionWindow
}

// WindowFor returns the admission window matching a Monday-based weekday
// index: 0-4 weekday, 5-6 weekend.
func (vc *VenueConfig) WindowFor(weekday int) AdmissionWindow {
	if weekday < 5 {
		return vc.weekdayWindow
	}
	return vc.weekendWindow
}

type VenueSettings struct {
	Enabled bool `yaml:"enabled"`
}

type VenueWindows struct {
	Weekday WindowBounds `yaml:"weekday"`
	Weekend WindowBounds `yaml:"weekend"`
}

// WindowBounds is the configured form of an admission window, "HH:MM" bounds.
type WindowBounds struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}
