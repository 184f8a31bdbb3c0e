// Package crops is a static knowledge base of growing details for the crops
// the inference rules can recommend.
package crops

import (
	"maps"
	"slices"
	"sort"
	"strings"
)

// CropDetails describes how and when to grow a crop.
type CropDetails struct {
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	OptimalConditions map[string]string `json:"optimal_conditions"`
	GrowingPeriod     string            `json:"growing_period,omitempty"`
	PlantingSeason    string            `json:"planting_season,omitempty"`
	Yield             string            `json:"yield,omitempty"`
	CareTips          []string          `json:"care_tips"`
	MarketValue       string            `json:"market_value,omitempty"`
	Nutrition         string            `json:"nutrition,omitempty"`
	Catalogued        bool              `json:"catalogued"`
}

var catalog = map[string]CropDetails{
	"rice": {
		Name:        "Rice (Oryza sativa)",
		Description: "Staple cereal grain crop, ideal for shallow water table areas",
		OptimalConditions: map[string]string{
			"temperature": "20-35°C",
			"humidity":    "70-80%",
			"moisture":    "80-90%",
			"soil":        "Clay, Loamy",
			"ph":          "5.5-6.5",
			"water_table": "Shallow (<20cm) - Benefits from high water table",
		},
		GrowingPeriod:  "120-150 days",
		PlantingSeason: "Kharif (June-July) or Rabi (Nov-Dec)",
		Yield:          "4-6 tons per hectare",
		CareTips: []string{
			"🌾 Maintain standing water 2-5cm deep",
			"💧 Apply nitrogen fertilizer in splits",
			"🌱 Control weeds in first 45 days",
			"⚠️ Watch for blast and brown spot diseases",
		},
		MarketValue: "₹20-25 per kg",
		Nutrition:   "Carbohydrates: 78g, Protein: 7g, Fiber: 1.3g per 100g",
	},
	"wheat": {
		Name:        "Wheat (Triticum aestivum)",
		Description: "Major cereal grain, primary ingredient for bread and flour",
		OptimalConditions: map[string]string{
			"temperature": "15-25°C",
			"humidity":    "50-70%",
			"moisture":    "40-60%",
			"soil":        "Loamy, Well-drained",
			"ph":          "6.0-7.5",
		},
		GrowingPeriod:  "120-150 days",
		PlantingSeason: "Rabi (Nov-Dec)",
		Yield:          "3-4 tons per hectare",
		CareTips: []string{
			"🌾 Sow after monsoon when soil moisture is adequate",
			"💧 Apply phosphorus at sowing time",
			"🚿 Three irrigations: crown root, tillering, flowering",
			"🌕 Harvest when grains are hard and golden",
		},
		MarketValue: "₹22-28 per kg",
		Nutrition:   "Carbohydrates: 71g, Protein: 13g, Fiber: 12.2g per 100g",
	},
	"bajra": {
		Name:        "Pearl Millet/Bajra (Pennisetum glaucum)",
		Description: "Drought-resistant cereal, perfect for deep water table areas",
		OptimalConditions: map[string]string{
			"temperature": "25-35°C",
			"humidity":    "40-70%",
			"moisture":    "25-50%",
			"soil":        "Sandy, Well-drained",
			"ph":          "6.5-7.5",
			"water_table": "Deep (>30cm) - Excellent for low water areas",
		},
		GrowingPeriod:  "70-110 days",
		PlantingSeason: "Kharif (June-July)",
		Yield:          "1-3 tons per hectare",
		CareTips: []string{
			"🌵 Highly drought tolerant - perfect for deep water table",
			"🌱 Minimal fertilizer requirements",
			"🏜️ Excellent for marginal and sandy lands",
			"💧 Requires minimal irrigation even with deep water sources",
			"🦅 Birds protection needed during maturity",
		},
		MarketValue: "₹25-35 per kg",
		Nutrition:   "Protein: 11g, Iron: 3mg, Calcium: 42mg per 100g",
	},
	"maize": {
		Name:        "Maize (Zea mays)",
		Description: "Versatile cereal for grain and fodder, suited to moderate moisture",
		OptimalConditions: map[string]string{
			"temperature": "21-30°C",
			"humidity":    "50-70%",
			"moisture":    "40-60%",
			"soil":        "Loamy, Well-drained",
			"ph":          "5.8-7.0",
			"water_table": "Moderate (15-30cm)",
		},
		GrowingPeriod:  "90-120 days",
		PlantingSeason: "Kharif (June-July) or Spring (Feb-Mar)",
		Yield:          "5-8 tons per hectare",
		CareTips: []string{
			"🌽 Sow in rows 60-75cm apart",
			"💧 Critical irrigation at tasseling and silking",
			"🌱 Side-dress nitrogen at knee height",
			"⚠️ Scout for fall armyworm",
		},
		MarketValue: "₹18-22 per kg",
		Nutrition:   "Carbohydrates: 74g, Protein: 9g, Fiber: 7.3g per 100g",
	},
	"cotton": {
		Name:        "Cotton (Gossypium hirsutum)",
		Description: "Fibre crop for warm climates with a long frost-free season",
		OptimalConditions: map[string]string{
			"temperature": "21-30°C",
			"humidity":    "50-60%",
			"moisture":    "40-60%",
			"soil":        "Black clay, Loamy",
			"ph":          "5.8-8.0",
		},
		GrowingPeriod:  "150-180 days",
		PlantingSeason: "Kharif (April-June)",
		Yield:          "1.5-2.5 tons lint per hectare",
		CareTips: []string{
			"🌱 Thin seedlings to one plant per hill",
			"💧 Avoid waterlogging during boll formation",
			"🐛 Monitor for bollworm weekly",
			"☀️ Pick bolls in dry weather",
		},
		MarketValue: "₹60-70 per kg lint",
	},
	"sugarcane": {
		Name:        "Sugarcane (Saccharum officinarum)",
		Description: "Long duration cash crop needing abundant water",
		OptimalConditions: map[string]string{
			"temperature": "20-35°C",
			"humidity":    "70-85%",
			"moisture":    "70-85%",
			"soil":        "Clay loam, Deep loamy",
			"ph":          "6.5-7.5",
			"water_table": "Shallow (<15cm) - High water demand",
		},
		GrowingPeriod:  "10-18 months",
		PlantingSeason: "Spring (Feb-Mar) or Autumn (Oct)",
		Yield:          "70-100 tons per hectare",
		CareTips: []string{
			"🎋 Plant disease-free setts",
			"💧 Irrigate every 7-10 days in summer",
			"🌱 Earth up at 90 and 120 days",
			"⚠️ Watch for red rot and borers",
		},
		MarketValue: "₹3-3.5 per kg",
	},
	"groundnut": {
		Name:        "Groundnut (Arachis hypogaea)",
		Description: "Oilseed legume that thrives in light sandy soils",
		OptimalConditions: map[string]string{
			"temperature": "25-30°C",
			"humidity":    "50-60%",
			"moisture":    "30-50%",
			"soil":        "Sandy loam, Well-drained",
			"ph":          "6.0-7.0",
			"water_table": "Deep (>30cm)",
		},
		GrowingPeriod:  "100-130 days",
		PlantingSeason: "Kharif (June-July) or Rabi (Nov)",
		Yield:          "1.5-2.5 tons per hectare",
		CareTips: []string{
			"🥜 Apply gypsum at flowering for pod fill",
			"💧 Keep soil moist during pegging",
			"🌱 Avoid disturbing soil after pegging",
			"⚠️ Watch for tikka leaf spot",
		},
		MarketValue: "₹50-60 per kg",
		Nutrition:   "Protein: 26g, Fat: 49g, Fiber: 8.5g per 100g",
	},
	"potato": {
		Name:        "Potato (Solanum tuberosum)",
		Description: "Cool season tuber crop with high yield per hectare",
		OptimalConditions: map[string]string{
			"temperature": "15-22°C",
			"humidity":    "60-80%",
			"moisture":    "60-80%",
			"soil":        "Sandy loam, Loamy",
			"ph":          "5.0-6.5",
		},
		GrowingPeriod:  "90-120 days",
		PlantingSeason: "Rabi (Oct-Nov)",
		Yield:          "20-30 tons per hectare",
		CareTips: []string{
			"🥔 Use certified seed tubers",
			"💧 Light frequent irrigation, never flood",
			"🌱 Earth up twice before canopy closes",
			"⚠️ Spray against late blight in humid weather",
		},
		MarketValue: "₹10-15 per kg",
		Nutrition:   "Carbohydrates: 17g, Protein: 2g, Potassium: 421mg per 100g",
	},
}

// Describe returns details for the named crop, ignoring case. Crops not in the
// catalogue get a generic placeholder carrying the given name.
func Describe(name string) CropDetails {
	if d, ok := catalog[key(name)]; ok {
		d.OptimalConditions = maps.Clone(d.OptimalConditions)
		d.CareTips = slices.Clone(d.CareTips)
		d.Catalogued = true
		return d
	}
	return CropDetails{
		Name:              name,
		Description:       "Recommended crop based on current conditions",
		OptimalConditions: map[string]string{"note": "Specific details not available"},
		CareTips: []string{
			"🌱 Monitor soil conditions",
			"💧 Provide adequate water",
			"🌾 Use appropriate fertilizers",
		},
	}
}

// Lookup reports whether the crop is catalogued.
func Lookup(name string) (CropDetails, bool) {
	d := Describe(name)
	return d, d.Catalogued
}

// Known lists the catalogued crop keys in alphabetical order, capitalized.
func Known() []string {
	names := make([]string, 0, len(catalog))
	for k := range catalog {
		names = append(names, strings.ToUpper(k[:1])+k[1:])
	}
	sort.Strings(names)
	return names
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
