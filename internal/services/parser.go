package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors for payloads that cannot become a reading.
var (
	ErrEmptyBody   = errors.New("no data received")
	ErrInvalidJSON = errors.New("invalid JSON")
	ErrInternal    = errors.New("internal error")
)

// SensorParser decodes raw device payloads.
type SensorParser struct{}

// NewSensorParser creates a new instance of SensorParser
func NewSensorParser() *SensorParser {
	return &SensorParser{}
}

// ParsePayload decodes a JSON object sent by the ESP8266. Numbers are kept as
// json.Number so the normalizer sees them without precision loss.
func (sp *SensorParser) ParsePayload(body []byte) (map[string]any, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, ErrEmptyBody
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after object", ErrInvalidJSON)
	}
	// null and {} carry nothing to analyze.
	if len(payload) == 0 {
		return nil, fmt.Errorf("%w: empty object", ErrInvalidJSON)
	}
	return payload, nil
}
