// Package inference turns a normalized sensor reading into crop, irrigation
// and fertilizer advice using fixed threshold rules.
package inference

import "github.com/HACKWAVE2025/B30/internal/models"

// Rule steps reported to a FaultFunc.
const (
	StepCrop  = "crop"
	StepWater = "water"
)

const faultConfidence = "60%"

// FaultFunc is told when a rule step panicked and its fallback was used.
type FaultFunc func(step string, cause any)

// Engine runs the rule set. It holds no per-reading state and is safe for
// concurrent use.
type Engine struct {
	predict func(models.Reading) (string, string)
	water   func(models.Reading) WaterAssessment
	onFault FaultFunc
}

// New creates an Engine. onFault may be nil.
func New(onFault FaultFunc) *Engine {
	return &Engine{
		predict: PredictCrop,
		water:   AnalyzeWater,
		onFault: onFault,
	}
}

var defaultEngine = New(nil)

// Analyze runs the rules with no fault reporting.
func Analyze(r models.Reading) models.AnalysisResult {
	return defaultEngine.Analyze(r)
}

// Analyze derives the full analysis for r. It always returns a complete
// result; a failing step is replaced by its fallback.
func (e *Engine) Analyze(r models.Reading) models.AnalysisResult {
	crop, confidence := e.cropStep(r)
	w := e.waterStep(r)

	return models.AnalysisResult{
		PredictedCrop:      crop,
		Confidence:         confidence,
		WaterStatus:        w.Status,
		IrrigationAdvice:   w.Irrigation,
		WaterTableEstimate: w.Estimate,
		WaterTableLevel:    w.Level,
		FertilizerAdvice:   RecommendFertilizer(r.Soil()),
	}
}

func (e *Engine) cropStep(r models.Reading) (crop, confidence string) {
	defer func() {
		if cause := recover(); cause != nil {
			e.fault(StepCrop, cause)
			crop, confidence = MixedFarming, faultConfidence
		}
	}()
	return e.predict(r)
}

func (e *Engine) waterStep(r models.Reading) (w WaterAssessment) {
	defer func() {
		if cause := recover(); cause != nil {
			e.fault(StepWater, cause)
			w = unknownWater()
		}
	}()
	return e.water(r)
}

func (e *Engine) fault(step string, cause any) {
	if e.onFault != nil {
		e.onFault(step, cause)
	}
}
