package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Payload keys accepted from devices, in lookup order.
var (
	temperatureKeys = []string{"temp", "temperature"}
	humidityKeys    = []string{"humidity"}
	moistureKeys    = []string{"soil_moisture", "moisture"}
	distanceKeys    = []string{"distance"}
	soilTypeKeys    = []string{"soil_type"}
)

// Normalize coerces an untrusted device payload into a Reading.
// Missing or unusable fields take their defaults; it never fails.
// The timestamp is left zero for the history store to stamp.
func Normalize(payload map[string]any) Reading {
	r := Reading{
		Temperature: numberField(payload, DefaultTemperature, temperatureKeys...),
		Humidity:    numberField(payload, DefaultHumidity, humidityKeys...),
		Moisture:    numberField(payload, DefaultMoisture, moistureKeys...),
		Distance:    numberField(payload, NoDistance, distanceKeys...),
		SoilType:    stringField(payload, DefaultSoilType, soilTypeKeys...),
		Raw:         payload,
	}

	if r.Moisture <= 0 {
		r.Moisture = DefaultMoisture
	}
	if r.Distance < 0 {
		r.Distance = NoDistance
	}
	return r
}

// lookup returns the first key holding a non-null value.
func lookup(payload map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := payload[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func numberField(payload map[string]any, def float64, keys ...string) float64 {
	v, ok := lookup(payload, keys...)
	if !ok {
		return def
	}
	return ParseFloat(v, def)
}

func stringField(payload map[string]any, def string, keys ...string) string {
	v, ok := lookup(payload, keys...)
	if !ok {
		return def
	}
	var s string
	switch t := v.(type) {
	case string:
		s = strings.TrimSpace(t)
	default:
		s = strings.TrimSpace(fmt.Sprint(t))
	}
	if s == "" {
		return def
	}
	return s
}

// ParseFloat converts a decoded JSON value to a finite float64, returning def
// for anything that is not a number or a numeric string.
func ParseFloat(v any, def float64) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		parsed, err := strconv.ParseFloat(t.String(), 64)
		if err != nil {
			return def
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return def
		}
		f = parsed
	default:
		return def
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}
