package schedule

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// noTrainerKey selects the unaccompanied-slot bucket of the upstream
// response; slots with personal trainers are not reported.
const noTrainerKey = "NO_TRAINER"

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	timeout    time.Duration
}

func NewClient(httpClient *http.Client, baseURL, userAgent string, timeout time.Duration) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

// FetchDay requests the free timeslots for one venue on one calendar date
// (YYYY-MM-DD). Every failure mode degrades to an empty result: a single bad
// day must never abort the scan of the remaining date range. No retries are
// performed here.
func (c *Client) FetchDay(ctx context.Context, venueID, date string) []RawSlot {
	raw, err := c.fetchDay(ctx, venueID, date)
	if err != nil {
		slog.Warn("Timeslot fetch failed", "venue_id", venueID, "date", date, "error", err)
		return nil
	}
	return raw
}

func (c *Client) fetchDay(ctx context.Context, venueID, date string) ([]RawSlot, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(timeslotsRequest{
		Date:     date,
		Trainers: trainersRequest{Type: noTrainerKey},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/products/master-services/%s/timeslots", c.baseURL, venueID)
	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch timeslots: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	var decoded timeslotsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	// Absent nesting resolves to zero slots, not an error.
	groups := decoded.ByTrainer[noTrainerKey].Slots

	var slots []RawSlot
	for _, group := range groups {
		slots = append(slots, group...)
	}

	return slots, nil
}
