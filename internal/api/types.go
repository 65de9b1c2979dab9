package api

import "encoding/json"

// --- API Response Envelope ---

type apiResponse[T any] struct {
	Data  T       `json:"data"`
	Error *apiErr `json:"error,omitempty"`
}

type apiErr struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSONMap is one flat item record. Some backends send records as JSON-encoded strings.
type JSONMap map[string]any

func (j *JSONMap) UnmarshalJSON(data []byte) error {
	// Try as object first
	var m map[string]any
	if err := json.Unmarshal(data, &m); err == nil {
		*j = m
		return nil
	}
	// Try as string containing JSON
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" || s == "null" {
			*j = make(map[string]any)
			return nil
		}
		return json.Unmarshal([]byte(s), (*map[string]any)(j))
	}
	*j = make(map[string]any)
	return nil
}

// QueryParams is a map of URL query parameters.
type QueryParams map[string]string
