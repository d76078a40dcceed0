package config

import "fmt"

// PublishConfig controls plan announcements over the broker configured in
// the mqtt section.
type PublishConfig struct {
	Enabled bool `json:"enabled"`
	// AckTimeoutSeconds bounds the wait for a consumer acknowledgment after
	// each publish. Zero publishes without waiting.
	AckTimeoutSeconds int `json:"ack_timeout_seconds"`
}

// Validate checks ranges.
func (c PublishConfig) Validate() error {
	if c.AckTimeoutSeconds < 0 {
		return fmt.Errorf("ack_timeout_seconds must be non-negative")
	}
	return nil
}
