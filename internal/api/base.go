package api

import "time"

// DefaultBaseURL is the API root used when none is configured.
const DefaultBaseURL = "http://localhost:8000"

// DefaultEndpoint is the item listing path used when none is configured.
const DefaultEndpoint = "/api/items"

// NewDefaultClient builds a client pointed at DefaultBaseURL.
func NewDefaultClient(apiKey string, timeout ...time.Duration) *Client {
	return NewClient(DefaultBaseURL, apiKey, timeout...)
}
