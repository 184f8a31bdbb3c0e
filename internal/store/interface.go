package store

import "github.com/HACKWAVE2025/B30/internal/models"

// DataStore is the bounded reading history shared by ingestion and the
// read-side endpoints.
type DataStore interface {
	// Health check
	Ping() error

	Append(models.Reading, models.AnalysisResult) models.HistoryEntry
	Recent(n int) []models.HistoryEntry
	All() []models.HistoryEntry
	Latest() (models.HistoryEntry, bool)

	// Count is the number of entries currently held, Total the number of
	// appends since start.
	Count() int
	Total() uint64
	Capacity() int
}
