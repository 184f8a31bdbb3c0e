package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/HACKWAVE2025/B30/internal/crops"
	"github.com/HACKWAVE2025/B30/internal/dashboard"
	"github.com/HACKWAVE2025/B30/internal/export"
	"github.com/HACKWAVE2025/B30/internal/models"
	"github.com/HACKWAVE2025/B30/internal/services"
	"github.com/HACKWAVE2025/B30/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Handlers contains all HTTP request handlers
type Handlers struct {
	store         store.DataStore
	ingestor      *services.Ingestor
	dashboard     *dashboard.Builder
	renderer      *dashboard.Renderer
	exportService *export.ExportService
	logger        *slog.Logger
	recentLimit   int
	maxBodyBytes  int64
	now           func() time.Time
}

// Options tune request handling.
type Options struct {
	RecentLimit  int
	MaxBodyBytes int64
}

// NewHandlers creates a new handlers instance
func NewHandlers(dataStore store.DataStore, ingestor *services.Ingestor, renderer *dashboard.Renderer, logger *slog.Logger, opts Options) *Handlers {
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = 10
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20
	}
	return &Handlers{
		store:         dataStore,
		ingestor:      ingestor,
		dashboard:     dashboard.NewBuilder(dataStore, crops.Describe, opts.RecentLimit),
		renderer:      renderer,
		exportService: export.NewExportService(),
		logger:        logger,
		recentLimit:   opts.RecentLimit,
		maxBodyBytes:  opts.MaxBodyBytes,
		now:           time.Now,
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// LogsResponse is the body of GET /logs.
type LogsResponse struct {
	TotalReadings  int                   `json:"total_readings"`
	LatestReadings []models.HistoryEntry `json:"latest_readings"`
	AllReadings    []models.HistoryEntry `json:"all_readings"`
}

type historyQuery struct {
	Limit    int `validate:"gte=1,ltefield=Capacity"`
	Capacity int
}

// IngestSensorData accepts a reading from the field device. The device only
// understands 200, so every outcome is reported in the body.
func (h *Handlers) IngestSensorData(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		h.logger.Warn("reading request body failed", "error", err)
		writeJSON(w, http.StatusOK, services.NewErrorResponse(fmt.Errorf("%w: %v", services.ErrInvalidJSON, err), h.now()))
		return
	}

	writeJSON(w, http.StatusOK, h.ingestor.HandlePayload(r.Context(), services.TransportHTTP, body))
}

// GetLogs returns the recent and full history.
func (h *Handlers) GetLogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LogsResponse{
		TotalReadings:  h.store.Count(),
		LatestReadings: h.store.Recent(h.recentLimit),
		AllReadings:    h.store.All(),
	})
}

// GetHistory returns the newest entries, limit defaulting to the recent limit.
func (h *Handlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	q := historyQuery{Limit: h.recentLimit, Capacity: h.store.Capacity()}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			h.sendErrorResponse(w, "limit must be an integer", http.StatusBadRequest)
			return
		}
		q.Limit = limit
	}
	if err := validate.Struct(q); err != nil {
		h.sendErrorResponse(w, fmt.Sprintf("limit must be between 1 and %d", q.Capacity), http.StatusBadRequest)
		return
	}

	entries := h.store.Recent(q.Limit)
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: fmt.Sprintf("%d readings", len(entries)),
		Data:    entries,
	})
}

// GetDashboard returns the dashboard read model as JSON.
func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: h.dashboard.Build()})
}

// RenderDashboard serves the HTML dashboard.
func (h *Handlers) RenderDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, h.dashboard.Build()); err != nil {
		h.logger.Error("dashboard render failed", "error", err)
		http.Error(w, "dashboard unavailable", http.StatusInternalServerError)
	}
}

// ListCrops returns the catalogued crop names.
func (h *Handlers) ListCrops(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: crops.Known()})
}

// GetCrop returns details for one crop; unknown crops get the placeholder.
func (h *Handlers) GetCrop(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: crops.Describe(chi.URLParam(r, "name"))})
}

// ExportHistoryExcel downloads the history as an xlsx workbook.
func (h *Handlers) ExportHistoryExcel(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	f, err := h.exportService.GenerateExcel(export.ExportData{
		Entries: h.store.All(),
		ExportMetadata: export.ExportMetadata{
			GeneratedAt:   now,
			TotalReadings: h.store.Total(),
			Capacity:      h.store.Capacity(),
		},
	})
	if err != nil {
		h.logger.Error("excel export failed", "error", err)
		h.sendErrorResponse(w, "Failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("aquasense_history_%s.xlsx", now.Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))

	if err := f.Write(w); err != nil {
		h.logger.Error("writing excel export failed", "error", err)
	}
}

// ExportHistoryCSV downloads the history as CSV.
func (h *Handlers) ExportHistoryCSV(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("aquasense_history_%s.csv", h.now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))

	if err := h.exportService.WriteCSV(w, h.store.All()); err != nil {
		h.logger.Error("writing csv export failed", "error", err)
	}
}

// TestGet lets a device check connectivity.
func (h *Handlers) TestGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Test GET successful! ✅",
		"timestamp": h.now().Format(services.TimestampLayout),
	})
}

// TestPost echoes the JSON a device sent without storing it.
func (h *Handlers) TestPost(w http.ResponseWriter, r *http.Request) {
	timestamp := h.now().Format(services.TimestampLayout)
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err == nil && len(body) == 0 {
		body = []byte("{}")
	}

	var received any
	if err == nil {
		err = json.Unmarshal(body, &received)
	}
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"message":   "Test POST failed ❌",
			"error":     err.Error(),
			"timestamp": timestamp,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Test POST successful! ✅",
		"received":  received,
		"timestamp": timestamp,
	})
}

// Health reports liveness and history size.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "healthy",
		"total_readings": h.store.Count(),
	})
}

// sendErrorResponse sends a standardized error response
func (h *Handlers) sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, APIResponse{
		Success: false,
		Error:   message,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
