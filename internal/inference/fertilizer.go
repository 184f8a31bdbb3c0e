package inference

import "github.com/HACKWAVE2025/B30/internal/models"

// RecommendFertilizer returns soil specific fertilizer advice.
func RecommendFertilizer(soil models.SoilType) string {
	switch soil {
	case models.SoilSandy:
		return "Use compost or organic manure to retain moisture."
	case models.SoilClay:
		return "Use gypsum and mix organic matter for better aeration."
	default:
		return "Balanced NPK fertilizer recommended."
	}
}
