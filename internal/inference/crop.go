package inference

import (
	"fmt"

	"github.com/HACKWAVE2025/B30/internal/models"
)

const (
	// MixedFarming is recommended when no rule casts a vote.
	MixedFarming = "Mixed Farming"

	emptyConfidence = "70%"
	maxConfidence   = 95
)

// Factor names a rule band that contributed votes.
type Factor string

const (
	FactorOptimalTemp     Factor = "optimal_temp"
	FactorGoodTemp        Factor = "good_temp"
	FactorHotClimate      Factor = "hot_climate"
	FactorDroughtTolerant Factor = "drought_tolerant"
	FactorModerateWater   Factor = "moderate_water"
	FactorHighWater       Factor = "high_water"
	FactorShallowTable    Factor = "shallow_water_table"
	FactorModerateAccess  Factor = "moderate_water_access"
	FactorDeepTable       Factor = "deep_water_table"
)

// ballot collects crop votes and remembers the order crops first appeared,
// which breaks ties.
type ballot struct {
	order   []string
	counts  map[string]int
	factors []Factor
}

func newBallot() *ballot {
	return &ballot{counts: make(map[string]int)}
}

func (b *ballot) vote(f Factor, crops ...string) {
	if f != "" {
		b.factors = append(b.factors, f)
	}
	for _, c := range crops {
		if _, seen := b.counts[c]; !seen {
			b.order = append(b.order, c)
		}
		b.counts[c]++
	}
}

// winner returns the crop with the strictly highest count, preferring the
// earliest inserted on ties.
func (b *ballot) winner() (string, int, bool) {
	best, top := "", 0
	for _, c := range b.order {
		if n := b.counts[c]; n > top {
			best, top = c, n
		}
	}
	return best, top, top > 0
}

func (b *ballot) confidence(top int) string {
	score := top*12 + len(b.factors)*8 + 40
	if score > maxConfidence {
		score = maxConfidence
	}
	return fmt.Sprintf("%d%%", score)
}

// castVotes applies every crop rule to the reading.
func castVotes(r models.Reading) *ballot {
	b := newBallot()
	t := r.Temperature

	// Temperature bands overlap between 20 and 25.
	if t >= 15 && t <= 25 {
		b.vote(FactorOptimalTemp, "Wheat", "Potato", "Barley")
	}
	if t >= 20 && t <= 30 {
		if r.Humidity > 60 {
			b.vote(FactorGoodTemp, "Rice", "Sugarcane")
		} else {
			b.vote(FactorGoodTemp, "Maize", "Cotton")
		}
	}
	if t > 30 {
		b.vote(FactorHotClimate, "Bajra", "Sorghum", "Groundnut")
	}

	switch m := r.Moisture; {
	case m < 30:
		b.vote(FactorDroughtTolerant, "Bajra", "Groundnut", "Sorghum")
	case m <= 70:
		b.vote(FactorModerateWater, "Wheat", "Maize", "Cotton")
	default:
		b.vote(FactorHighWater, "Rice", "Sugarcane")
	}

	if r.HasDistance() {
		switch d := r.Distance; {
		case d < 15:
			b.vote(FactorShallowTable, "Rice", "Sugarcane", "Jute")
		case d < 30:
			b.vote(FactorModerateAccess, "Wheat", "Maize", "Cotton")
		default:
			b.vote(FactorDeepTable, "Bajra", "Groundnut", "Millets")
		}
	}

	// Soil shifts the tally but is not counted as a factor.
	if r.Soil() == models.SoilSandy {
		b.vote("", "Groundnut", "Bajra", "Watermelon")
	} else {
		b.vote("", "Rice", "Wheat", "Cotton")
	}

	return b
}

// PredictCrop returns the recommended crop and its confidence percentage.
func PredictCrop(r models.Reading) (crop, confidence string) {
	return tally(castVotes(r))
}

func tally(b *ballot) (string, string) {
	best, top, ok := b.winner()
	if !ok {
		return MixedFarming, emptyConfidence
	}
	return best, b.confidence(top)
}
