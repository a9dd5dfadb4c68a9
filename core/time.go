package core

import (
	"time"
)

// NewTime creates a new time service
func NewTime(cfg TimeConfiguration) *Time {
	interval := time.Duration(cfg.EventPollDelay) * time.Millisecond
	if interval <= 0 {
		interval = time.Nanosecond
	}

	return &Time{
		eventPollDelay: cfg.EventPollDelay,
		eventTicker:    time.NewTicker(interval),
	}
}

// Time contains the tickers pacing the application loop
type Time struct {
	eventPollDelay int
	eventTicker    *time.Ticker
}

// EventPollDelay gets the configured delay in milliseconds
func (t *Time) EventPollDelay() int {
	return t.eventPollDelay
}

// EventTicker gets the initialized event ticker for the event loop
func (t *Time) EventTicker() *time.Ticker {
	return t.eventTicker
}

// Destroy stops the tickers
func (t *Time) Destroy() {
	t.eventTicker.Stop()
}
