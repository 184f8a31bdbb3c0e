package crops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe_Catalogued(t *testing.T) {
	d := Describe("Rice")

	assert.True(t, d.Catalogued)
	assert.Equal(t, "Rice (Oryza sativa)", d.Name)
	assert.Equal(t, "5.5-6.5", d.OptimalConditions["ph"])
	assert.Len(t, d.CareTips, 4)
}

func TestDescribe_CaseInsensitive(t *testing.T) {
	assert.Equal(t, Describe("Bajra").Name, Describe("  bAJRA ").Name)
}

func TestDescribe_Fallback(t *testing.T) {
	d := Describe("Jute")

	assert.False(t, d.Catalogued)
	assert.Equal(t, "Jute", d.Name)
	assert.Equal(t, "Recommended crop based on current conditions", d.Description)
	assert.Equal(t, map[string]string{"note": "Specific details not available"}, d.OptimalConditions)
	assert.Equal(t, []string{"🌱 Monitor soil conditions", "💧 Provide adequate water", "🌾 Use appropriate fertilizers"}, d.CareTips)
}

func TestLookup(t *testing.T) {
	_, ok := Lookup("wheat")
	assert.True(t, ok)

	_, ok = Lookup("Mixed Farming")
	assert.False(t, ok)
}

func TestKnown(t *testing.T) {
	names := Known()
	require.Len(t, names, 8)
	assert.Equal(t, "Bajra", names[0])
	assert.Contains(t, names, "Sugarcane")
	assert.IsIncreasing(t, names)
}

func TestDescribe_ReturnsIndependentTips(t *testing.T) {
	d := Describe("Wheat")
	d.CareTips[0] = "changed"
	assert.NotEqual(t, "changed", Describe("Wheat").CareTips[0])
}
