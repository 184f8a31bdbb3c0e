package models

import (
	"strings"
	"time"
)

// Sensor defaults applied when a field is absent or unusable.
const (
	DefaultTemperature = 25.0
	DefaultHumidity    = 50.0
	DefaultMoisture    = 0.1
	NoDistance         = -1.0
	DefaultSoilType    = "Loamy"
)

// SoilType is the coarse soil class the rules distinguish.
type SoilType string

const (
	SoilClay  SoilType = "clay"
	SoilSandy SoilType = "sandy"
	SoilLoamy SoilType = "loamy"
	// SoilOther covers any label the rules do not name. It votes like loamy.
	SoilOther SoilType = "other"
)

// ClassifySoil maps a free-form soil label onto a SoilType, ignoring case.
func ClassifySoil(label string) SoilType {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "clay":
		return SoilClay
	case "sandy":
		return SoilSandy
	case "loamy":
		return SoilLoamy
	default:
		return SoilOther
	}
}

// Reading is one normalized sample from the field device.
type Reading struct {
	Timestamp   time.Time      `json:"timestamp"`
	Temperature float64        `json:"temperature"`
	Humidity    float64        `json:"humidity"`
	Moisture    float64        `json:"moisture"`
	Distance    float64        `json:"distance"`
	SoilType    string         `json:"soil_type"`
	Raw         map[string]any `json:"raw_data,omitempty"`
}

// HasDistance reports whether the water-table sensor produced a value.
func (r Reading) HasDistance() bool {
	return r.Distance >= 0
}

// Soil returns the classified soil type of the reading.
func (r Reading) Soil() SoilType {
	return ClassifySoil(r.SoilType)
}

// WaterTableLevel is the depth band picked by the distance rules.
type WaterTableLevel string

const (
	WaterTableShallow  WaterTableLevel = "shallow"
	WaterTableModerate WaterTableLevel = "moderate"
	WaterTableDeep     WaterTableLevel = "deep"
	WaterTableVeryDeep WaterTableLevel = "very_deep"
	WaterTableUnknown  WaterTableLevel = "unknown"
)

// AnalysisResult is the outcome of running the rule engine on a reading.
type AnalysisResult struct {
	PredictedCrop      string          `json:"predicted_crop"`
	Confidence         string          `json:"confidence"`
	WaterStatus        string          `json:"water_status"`
	IrrigationAdvice   string          `json:"irrigation_needed"`
	WaterTableEstimate string          `json:"water_table_estimate"`
	WaterTableLevel    WaterTableLevel `json:"water_table_level"`
	FertilizerAdvice   string          `json:"fertilizer_recommendation"`
}

// HistoryEntry is a stored reading together with its analysis.
type HistoryEntry struct {
	ID  string `json:"id"`
	Seq uint64 `json:"seq"`
	Reading
	Analysis AnalysisResult `json:"analysis"`
}
