// Package dashboard builds the read model behind the HTML dashboard and
// renders it.
package dashboard

import (
	"time"

	"github.com/HACKWAVE2025/B30/internal/crops"
	"github.com/HACKWAVE2025/B30/internal/models"
	"github.com/HACKWAVE2025/B30/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

// CropLookup resolves a crop name to its details.
type CropLookup func(name string) crops.CropDetails

// View is everything the dashboard shows. Templates only format these
// fields.
type View struct {
	TotalReadings int                   `json:"total_readings"`
	CurrentTime   string                `json:"current_time"`
	Latest        *models.HistoryEntry  `json:"latest,omitempty"`
	Recent        []models.HistoryEntry `json:"recent"`
	Crop          *crops.CropDetails    `json:"crop,omitempty"`
	KnownCrops    []string              `json:"known_crops"`
	IngestPath    string                `json:"ingest_path"`
}

// Builder assembles Views from the history store.
type Builder struct {
	store       store.DataStore
	lookup      CropLookup
	recentLimit int
	now         func() time.Time
}

// NewBuilder creates a Builder showing up to recentLimit log entries.
func NewBuilder(dataStore store.DataStore, lookup CropLookup, recentLimit int) *Builder {
	if lookup == nil {
		lookup = crops.Describe
	}
	return &Builder{
		store:       dataStore,
		lookup:      lookup,
		recentLimit: recentLimit,
		now:         time.Now,
	}
}

// Build snapshots the current state.
func (b *Builder) Build() View {
	v := View{
		TotalReadings: b.store.Count(),
		CurrentTime:   b.now().Format(timeLayout),
		Recent:        b.store.Recent(b.recentLimit),
		KnownCrops:    crops.Known(),
		IngestPath:    "/data",
	}

	if latest, ok := b.store.Latest(); ok {
		v.Latest = &latest
		details := b.lookup(latest.Analysis.PredictedCrop)
		v.Crop = &details
	}
	return v
}
