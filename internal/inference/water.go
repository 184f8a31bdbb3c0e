package inference

import (
	"fmt"

	"github.com/HACKWAVE2025/B30/internal/models"
)

// Water status labels.
const (
	StatusLow           = "Low"
	StatusBelowOptimal  = "Below Optimal"
	StatusOptimal       = "Optimal"
	StatusHigh          = "High"
	StatusNaturallyHigh = "Naturally High"
	StatusUnknown       = "Unknown"
)

const unknownDepth = "Unknown depth - sensor not available"

// WaterAssessment is the irrigation part of an analysis.
type WaterAssessment struct {
	Status     string
	Irrigation string
	Estimate   string
	Level      models.WaterTableLevel
}

// AnalyzeWater classifies soil moisture and refines it with the water table
// depth when the distance sensor reported one.
func AnalyzeWater(r models.Reading) WaterAssessment {
	var w WaterAssessment
	m := r.Moisture

	switch {
	case m < 20:
		w.Status, w.Irrigation = StatusLow, "Immediate irrigation required"
	case m < 40:
		w.Status, w.Irrigation = StatusBelowOptimal, "Light irrigation recommended"
	case m < 70:
		w.Status, w.Irrigation = StatusOptimal, "No irrigation needed"
	default:
		w.Status, w.Irrigation = StatusHigh, "Avoid watering - risk of waterlogging"
	}

	if !r.HasDistance() {
		w.Estimate, w.Level = unknownDepth, models.WaterTableUnknown
		return w
	}

	switch d := r.Distance; {
	case d < 10:
		w.Estimate = fmt.Sprintf("Shallow (%.1fcm) - High water table", d)
		w.Level = models.WaterTableShallow
		if m > 60 {
			w.Status, w.Irrigation = StatusNaturallyHigh, "No irrigation - natural water available"
		}
	case d < 25:
		w.Estimate = fmt.Sprintf("Moderate depth (%.1fcm) - Good water access", d)
		w.Level = models.WaterTableModerate
		if m < 30 {
			w.Irrigation = "Light irrigation sufficient - water table accessible"
		}
	case d < 50:
		w.Estimate = fmt.Sprintf("Deep (%.1fcm) - Limited natural water", d)
		w.Level = models.WaterTableDeep
		if m < 40 {
			w.Irrigation = "Regular irrigation needed - deep water table"
		}
	default:
		w.Estimate = fmt.Sprintf("Very deep (%.1fcm) - Rely on irrigation", d)
		w.Level = models.WaterTableVeryDeep
		w.Irrigation = "Frequent irrigation required - no natural water source"
	}
	return w
}

// unknownWater is reported when the water step could not complete.
func unknownWater() WaterAssessment {
	return WaterAssessment{
		Status:     StatusUnknown,
		Irrigation: "Check manually",
		Estimate:   "Sensor error",
		Level:      models.WaterTableUnknown,
	}
}
