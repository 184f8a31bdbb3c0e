package services

import (
	"errors"
	"time"

	"github.com/HACKWAVE2025/B30/internal/models"
)

// TimestampLayout is the wall clock format devices and the dashboard display.
const TimestampLayout = "2006-01-02 15:04:05"

// Response status values and error kinds.
const (
	StatusSuccess = "success"
	StatusError   = "error"

	ErrorTypeEmptyBody   = "EmptyBody"
	ErrorTypeInvalidJSON = "InvalidJSON"
	ErrorTypeInternal    = "InternalError"

	successMessage = "Data received and analyzed successfully! ✅"
)

// ReceivedData echoes the normalized values back to the device.
type ReceivedData struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Moisture    float64 `json:"moisture"`
	Distance    float64 `json:"distance"`
	SoilType    string  `json:"soil_type"`
}

// DeviceResponse is the body returned for every ingestion attempt, over HTTP
// and MQTT alike. Failures are reported in Status and ErrorType, never in the
// transport status.
type DeviceResponse struct {
	Status        string                 `json:"status"`
	Message       string                 `json:"message"`
	Timestamp     string                 `json:"timestamp"`
	ID            string                 `json:"id,omitempty"`
	ReceivedData  *ReceivedData          `json:"received_data,omitempty"`
	Analysis      *models.AnalysisResult `json:"analysis,omitempty"`
	TotalReadings int                    `json:"total_readings,omitempty"`
	ErrorType     string                 `json:"error_type,omitempty"`
}

// NewSuccessResponse describes a stored entry.
func NewSuccessResponse(entry models.HistoryEntry, total int) DeviceResponse {
	analysis := entry.Analysis
	return DeviceResponse{
		Status:    StatusSuccess,
		Message:   successMessage,
		Timestamp: entry.Timestamp.Format(TimestampLayout),
		ID:        entry.ID,
		ReceivedData: &ReceivedData{
			Temperature: entry.Temperature,
			Humidity:    entry.Humidity,
			Moisture:    entry.Moisture,
			Distance:    entry.Distance,
			SoilType:    entry.SoilType,
		},
		Analysis:      &analysis,
		TotalReadings: total,
	}
}

// NewErrorResponse converts an ingestion error into the in-band error shape.
func NewErrorResponse(err error, now time.Time) DeviceResponse {
	resp := DeviceResponse{
		Status:    StatusError,
		Timestamp: now.Format(TimestampLayout),
	}

	switch {
	case errors.Is(err, ErrEmptyBody):
		resp.Message, resp.ErrorType = "No data received", ErrorTypeEmptyBody
	case errors.Is(err, ErrInvalidJSON):
		resp.Message, resp.ErrorType = "Invalid JSON", ErrorTypeInvalidJSON
	default:
		resp.Message, resp.ErrorType = err.Error(), ErrorTypeInternal
	}
	return resp
}
