package api

import (
	"github.com/ffcteam/slotwatch/app/schedule"
)

type Handler struct {
	venues    *schedule.VenueCache
	cache     *schedule.ReportCache
	formatter *schedule.Formatter
}

// ReportResponse is the payload handed to the chat transport: an ordered
// sequence of ready-to-send text blocks plus scan metadata.
type ReportResponse struct {
	Blocks      []string `json:"blocks"`
	TotalSlots  int      `json:"total_slots"`
	Venues      int      `json:"venues"`
	GeneratedAt string   `json:"generated_at"`
}
