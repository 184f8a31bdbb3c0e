package dashboard

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/HACKWAVE2025/B30/internal/models"
)

// Renderer executes the dashboard template.
type Renderer struct {
	tmpl *template.Template
}

// badges maps a water table band to its CSS class and caption.
var badges = map[models.WaterTableLevel]struct{ class, caption string }{
	models.WaterTableShallow:  {"badge-good", "✅ Shallow - Good water access"},
	models.WaterTableModerate: {"badge-good", "✅ Moderate - Good water access"},
	models.WaterTableDeep:     {"badge-warning", "⚠️ Deep - Some irrigation needed"},
	models.WaterTableVeryDeep: {"badge-danger", "🚨 Very deep - Frequent irrigation required"},
	models.WaterTableUnknown:  {"badge-neutral", "❔ Sensor not available"},
}

var funcs = template.FuncMap{
	"oneDecimal": func(f float64) string { return fmt.Sprintf("%.1f", f) },
	"stamp":      func(e models.HistoryEntry) string { return e.Timestamp.Format(timeLayout) },
	"badgeClass": func(l models.WaterTableLevel) string { return badgeFor(l).class },
	"badgeText":  func(l models.WaterTableLevel) string { return badgeFor(l).caption },
}

func badgeFor(l models.WaterTableLevel) struct{ class, caption string } {
	if b, ok := badges[l]; ok {
		return b
	}
	return badges[models.WaterTableUnknown]
}

// NewRenderer parses the embedded dashboard template.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("dashboard").Funcs(funcs).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse dashboard template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the page for v. Output is buffered so a template error never
// leaves a half written page.
func (r *Renderer) Render(w io.Writer, v View) error {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, v); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
