package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ffcteam/slotwatch/app/schedule"
	"github.com/gin-gonic/gin"
)

func NewHandler(venues *schedule.VenueCache, cache *schedule.ReportCache,
	formatter *schedule.Formatter) *Handler {
	return &Handler{
		venues:    venues,
		cache:     cache,
		formatter: formatter,
	}
}

func (h *Handler) GetReport(c *gin.Context) {
	reports, computedAt := h.cache.Get(c.Request.Context())
	blocks := h.formatter.Run(reports)

	total := 0
	withSlots := 0
	for _, report := range reports {
		total += report.Count
		if report.Count > 0 {
			withSlots++
		}
	}

	c.Header("X-Report-Blocks", strconv.Itoa(len(blocks)))
	c.Header("X-Report-Slots", strconv.Itoa(total))

	c.JSON(http.StatusOK, ReportResponse{
		Blocks:      blocks,
		TotalSlots:  total,
		Venues:      withSlots,
		GeneratedAt: computedAt.Format(time.RFC3339),
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"venues":    h.venues.GetConfigCount(),
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) APIListVenues(c *gin.Context) {
	configs := h.venues.GetConfigs()

	venues := make([]map[string]interface{}, 0, len(configs))
	for _, venueConfig := range configs {
		venues = append(venues, map[string]interface{}{
			"key":     venueConfig.Key,
			"id":      venueConfig.ID,
			"name":    venueConfig.Name,
			"enabled": venueConfig.Settings.Enabled,
			"windows": map[string]string{
				"weekday": venueConfig.Windows.Weekday.From + "-" + venueConfig.Windows.Weekday.To,
				"weekend": venueConfig.Windows.Weekend.From + "-" + venueConfig.Windows.Weekend.To,
			},
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"venues": venues,
		"count":  len(venues),
	})
}

func (h *Handler) APIRefreshReport(c *gin.Context) {
	reports := h.cache.Refresh(c.Request.Context())

	total := 0
	for _, report := range reports {
		total += report.Count
	}

	c.JSON(http.StatusOK, gin.H{
		"refreshed": true,
		"venues":    len(reports),
		"slots":     total,
	})
}

func (h *Handler) APIReloadVenues(c *gin.Context) {
	if err := h.venues.Run(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reloaded": true,
		"venues":   h.venues.GetConfigCount(),
	})
}
