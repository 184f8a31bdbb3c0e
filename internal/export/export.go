package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/HACKWAVE2025/B30/internal/models"
	"github.com/xuri/excelize/v2"
)

const timestampLayout = "2006-01-02 15:04:05"

// ExportService handles data export functionality
type ExportService struct{}

// NewExportService creates a new export service instance
func NewExportService() *ExportService {
	return &ExportService{}
}

// ExportData represents data to be exported
type ExportData struct {
	Entries        []models.HistoryEntry
	ExportMetadata ExportMetadata
}

// ExportMetadata contains information about the export
type ExportMetadata struct {
	GeneratedAt   time.Time `json:"generated_at"`
	TotalReadings uint64    `json:"total_readings"`
	Capacity      int       `json:"capacity"`
}

var (
	sensorHeaders   = []string{"Seq", "ID", "Timestamp", "Temperature (°C)", "Humidity (%)", "Soil Moisture (%)", "Water Table (cm)", "Soil Type"}
	analysisHeaders = []string{"Seq", "Timestamp", "Predicted Crop", "Confidence", "Water Status", "Irrigation", "Water Table", "Fertilizer"}
)

// GenerateExcel builds a workbook with a summary, the raw sensor values and
// the analysis of every entry. The caller must Close the returned file.
func (es *ExportService) GenerateExcel(data ExportData) (*excelize.File, error) {
	f := excelize.NewFile()

	f.SetDocProps(&excelize.DocProperties{
		Category:    "AquaSense Smart Agriculture",
		Created:     data.ExportMetadata.GeneratedAt.Format(time.RFC3339),
		Creator:     "AquaSense Backend",
		Description: "Field sensor history with crop and irrigation analysis",
		Subject:     "Sensor History",
		Title:       "AquaSense History Report",
		Version:     "1.0",
	})

	if err := es.createSummarySheet(f, data); err != nil {
		f.Close()
		return nil, err
	}
	if err := es.createSensorDataSheet(f, data.Entries); err != nil {
		f.Close()
		return nil, err
	}
	if err := es.createAnalysisSheet(f, data.Entries); err != nil {
		f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

func headerStyle(f *excelize.File, color string, size float64) (int, error) {
	font := &excelize.Font{Bold: true, Color: "FFFFFF"}
	if size > 0 {
		font.Size = size
	}
	return f.NewStyle(&excelize.Style{
		Font:      font,
		Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})
}

// createSummarySheet creates the summary overview sheet
func (es *ExportService) createSummarySheet(f *excelize.File, data ExportData) error {
	sheetName := "Summary"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}

	style, err := headerStyle(f, "4472C4", 14)
	if err != nil {
		return fmt.Errorf("summary style: %w", err)
	}

	f.SetCellValue(sheetName, "A1", "AquaSense Field Sensor Report")
	f.MergeCell(sheetName, "A1", "D1")
	f.SetCellStyle(sheetName, "A1", "D1", style)
	f.SetRowHeight(sheetName, 1, 25)

	f.SetCellValue(sheetName, "A3", "Generated At:")
	f.SetCellValue(sheetName, "B3", data.ExportMetadata.GeneratedAt.Format(timestampLayout))
	f.SetCellValue(sheetName, "A4", "Readings Exported:")
	f.SetCellValue(sheetName, "B4", len(data.Entries))
	f.SetCellValue(sheetName, "A5", "Readings Since Start:")
	f.SetCellValue(sheetName, "B5", data.ExportMetadata.TotalReadings)
	f.SetCellValue(sheetName, "A6", "History Capacity:")
	f.SetCellValue(sheetName, "B6", data.ExportMetadata.Capacity)

	f.SetCellValue(sheetName, "A8", "Crop Recommendations")
	f.SetCellStyle(sheetName, "A8", "A8", style)
	row := 9
	for _, c := range cropCounts(data.Entries) {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), c.crop)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), c.count)
		row++
	}

	f.SetColWidth(sheetName, "A", "A", 24)
	f.SetColWidth(sheetName, "B", "D", 18)
	return nil
}

// createSensorDataSheet creates the sensor readings sheet
func (es *ExportService) createSensorDataSheet(f *excelize.File, entries []models.HistoryEntry) error {
	sheetName := "Sensor Data"
	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("create sensor sheet: %w", err)
	}
	if err := writeHeaders(f, sheetName, sensorHeaders, "70AD47"); err != nil {
		return err
	}

	for i, e := range entries {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), e.Seq)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), e.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), e.Timestamp.Format(timestampLayout))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), e.Temperature)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), e.Humidity)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), e.Moisture)
		if e.HasDistance() {
			f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), e.Distance)
		} else {
			f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), "n/a")
		}
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), e.SoilType)
	}

	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 38)
	f.SetColWidth(sheetName, "C", "C", 20)
	f.SetColWidth(sheetName, "D", "H", 16)
	return nil
}

// createAnalysisSheet creates the crop and irrigation analysis sheet
func (es *ExportService) createAnalysisSheet(f *excelize.File, entries []models.HistoryEntry) error {
	sheetName := "Analysis"
	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("create analysis sheet: %w", err)
	}
	if err := writeHeaders(f, sheetName, analysisHeaders, "7030A0"); err != nil {
		return err
	}

	for i, e := range entries {
		row := i + 2
		a := e.Analysis
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), e.Seq)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), e.Timestamp.Format(timestampLayout))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), a.PredictedCrop)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), a.Confidence)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), a.WaterStatus)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), a.IrrigationAdvice)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), a.WaterTableEstimate)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), a.FertilizerAdvice)
	}

	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "E", 18)
	f.SetColWidth(sheetName, "F", "H", 40)
	return nil
}

func writeHeaders(f *excelize.File, sheetName string, headers []string, color string) error {
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	style, err := headerStyle(f, color, 0)
	if err != nil {
		return fmt.Errorf("%s header style: %w", sheetName, err)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	return f.SetCellStyle(sheetName, "A1", last, style)
}

type cropCount struct {
	crop  string
	count int
}

// cropCounts tallies predictions in first-seen order.
func cropCounts(entries []models.HistoryEntry) []cropCount {
	index := make(map[string]int)
	var out []cropCount
	for _, e := range entries {
		crop := e.Analysis.PredictedCrop
		if i, ok := index[crop]; ok {
			out[i].count++
			continue
		}
		index[crop] = len(out)
		out = append(out, cropCount{crop: crop, count: 1})
	}
	return out
}

// GenerateCSV flattens entries into CSV records with a header row.
func (es *ExportService) GenerateCSV(entries []models.HistoryEntry) [][]string {
	records := [][]string{
		{"seq", "id", "timestamp", "temperature", "humidity", "moisture", "distance", "soil_type",
			"predicted_crop", "confidence", "water_status", "irrigation_needed", "water_table_estimate", "fertilizer_recommendation"},
	}

	for _, e := range entries {
		a := e.Analysis
		records = append(records, []string{
			strconv.FormatUint(e.Seq, 10),
			e.ID,
			e.Timestamp.Format(timestampLayout),
			strconv.FormatFloat(e.Temperature, 'f', 1, 64),
			strconv.FormatFloat(e.Humidity, 'f', 1, 64),
			strconv.FormatFloat(e.Moisture, 'f', 1, 64),
			strconv.FormatFloat(e.Distance, 'f', 1, 64),
			e.SoilType,
			a.PredictedCrop,
			a.Confidence,
			a.WaterStatus,
			a.IrrigationAdvice,
			a.WaterTableEstimate,
			a.FertilizerAdvice,
		})
	}
	return records
}

// WriteCSV writes entries as CSV to w
func (es *ExportService) WriteCSV(w io.Writer, entries []models.HistoryEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(es.GenerateCSV(entries)); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
