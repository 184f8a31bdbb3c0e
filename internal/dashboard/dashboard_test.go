package dashboard

import (
	"bytes"
	"testing"
	"time"

	"github.com/HACKWAVE2025/B30/internal/crops"
	"github.com/HACKWAVE2025/B30/internal/inference"
	"github.com/HACKWAVE2025/B30/internal/models"
	"github.com/HACKWAVE2025/B30/internal/store"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2025, 8, 9, 6, 45, 0, 0, time.UTC)

func seeded(t *testing.T, n int) *store.Store {
	t.Helper()
	s := store.NewStore(100, store.WithClock(clockwork.NewFakeClockAt(at)))
	for i := 0; i < n; i++ {
		r := models.Normalize(map[string]any{"temp": 28.0, "humidity": 75.0, "soil_moisture": 65.0, "distance": 8.5, "soil_type": "Clay"})
		s.Append(r, inference.Analyze(r))
	}
	return s
}

func TestBuild_Empty(t *testing.T) {
	b := NewBuilder(store.NewStore(10), nil, 10)
	b.now = func() time.Time { return at }

	v := b.Build()
	assert.Equal(t, 0, v.TotalReadings)
	assert.Nil(t, v.Latest)
	assert.Nil(t, v.Crop)
	assert.Empty(t, v.Recent)
	assert.Equal(t, "2025-08-09 06:45:00", v.CurrentTime)
	assert.Contains(t, v.KnownCrops, "Rice")
}

func TestBuild_WithHistory(t *testing.T) {
	v := NewBuilder(seeded(t, 12), nil, 10).Build()

	assert.Equal(t, 12, v.TotalReadings)
	require.NotNil(t, v.Latest)
	assert.Equal(t, uint64(12), v.Latest.Seq)
	assert.Len(t, v.Recent, 10)
	assert.Equal(t, uint64(3), v.Recent[0].Seq)
	require.NotNil(t, v.Crop)
	assert.Equal(t, "Rice (Oryza sativa)", v.Crop.Name)
}

func TestBuild_UsesLookup(t *testing.T) {
	var asked string
	lookup := func(name string) (d crops.CropDetails) {
		asked = name
		d.Name = "custom"
		return d
	}
	v := NewBuilder(seeded(t, 1), lookup, 10).Build()

	assert.Equal(t, "Rice", asked)
	assert.Equal(t, "custom", v.Crop.Name)
}

func TestRender_Empty(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, NewBuilder(store.NewStore(10), nil, 10).Build()))

	html := buf.String()
	assert.Contains(t, html, "Waiting for device data")
	assert.Contains(t, html, "No data received yet")
	assert.Contains(t, html, "Bajra • Cotton")
	assert.Contains(t, html, `content="30"`)
}

func TestRender_Latest(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, NewBuilder(seeded(t, 2), nil, 10).Build()))

	html := buf.String()
	assert.Contains(t, html, "Temperature: 28.0°C")
	assert.Contains(t, html, "Water Table Depth: 8.5cm")
	assert.Contains(t, html, `class="badge-good"`)
	assert.Contains(t, html, "Naturally High")
	assert.Contains(t, html, "Rice (Oryza sativa)")
	assert.Contains(t, html, "Maintain standing water")
	assert.Contains(t, html, "2025-08-09 06:45:00")
}

func TestRender_EscapesSoilType(t *testing.T) {
	s := store.NewStore(10)
	r := models.Normalize(map[string]any{"soil_type": "<script>x</script>"})
	s.Append(r, inference.Analyze(r))

	renderer, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderer.Render(&buf, NewBuilder(s, nil, 10).Build()))
	assert.NotContains(t, buf.String(), "<script>x</script>")
	assert.Contains(t, buf.String(), "n/a")
	assert.Contains(t, buf.String(), `class="badge-neutral"`)
}

func TestBadgeFor_Unknown(t *testing.T) {
	assert.Equal(t, "badge-neutral", badgeFor("weird").class)
	assert.Equal(t, "badge-danger", badgeFor(models.WaterTableVeryDeep).class)
}
