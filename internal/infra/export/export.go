// Package export renders task lists as JSON, YAML, CSV or PDF.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/tasklist/internal/domain"
)

// Format is an export file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// AllFormats returns the supported formats.
func AllFormats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatCSV, FormatPDF}
}

// ParseFormat parses a format name (case-insensitive, "yml" accepted).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatYAML, FormatCSV, FormatPDF:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, s)
	}
}

// record is the exported shape of a task.
// Fields are ordered to minimize memory padding.
type record struct {
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	Text      string    `json:"text" yaml:"text"`
	Priority  string    `json:"priority" yaml:"priority"`
	Category  string    `json:"category" yaml:"category"`
	DueDate   string    `json:"dueDate" yaml:"dueDate"`
	Due       string    `json:"due" yaml:"due"`
	ID        int64     `json:"id" yaml:"id"`
	Completed bool      `json:"completed" yaml:"completed"`
	Overdue   bool      `json:"overdue" yaml:"overdue"`
}

func toRecords(tasks []domain.Task, now time.Time) []record {
	records := make([]record, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		records = append(records, record{
			ID:        t.ID,
			Text:      t.Text,
			Priority:  string(t.Priority),
			Category:  t.Category,
			DueDate:   t.DueDate.String(),
			Due:       domain.FormatDue(t.DueDate, now),
			Completed: t.Completed,
			Overdue:   t.IsOverdue(now),
			CreatedAt: t.CreatedAt,
		})
	}
	return records
}

// Exporter writes task lists in one format.
type Exporter struct {
	clock  domain.Clock
	format Format
}

// New creates an Exporter for the given format.
func New(format Format, clock domain.Clock) *Exporter {
	return &Exporter{format: format, clock: clock}
}

// Export writes tasks to w in list order.
func (e *Exporter) Export(w io.Writer, tasks []domain.Task) error {
	now := e.clock.Now()
	switch e.format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(toRecords(tasks, now))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toRecords(tasks, now)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatCSV:
		return writeCSV(w, toRecords(tasks, now))
	case FormatPDF:
		return writePDF(w, tasks, now)
	default:
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, e.format)
	}
}

func writeCSV(w io.Writer, records []record) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "text", "priority", "category", "due_date", "completed", "overdue", "created_at"})
	for _, r := range records {
		_ = cw.Write([]string{
			strconv.FormatInt(r.ID, 10),
			r.Text,
			r.Priority,
			r.Category,
			r.DueDate,
			strconv.FormatBool(r.Completed),
			strconv.FormatBool(r.Overdue),
			r.CreatedAt.Format(time.RFC3339),
		})
	}
	cw.Flush()
	return cw.Error()
}

func writePDF(w io.Writer, tasks []domain.Task, now time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task List")
	pdf.Ln(12)

	stats := domain.ComputeStats(tasks)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Total %d  Pending %d  Completed %d  Completion %d%%",
		stats.Total, stats.Pending, stats.Completed, stats.CompletionRate))
	pdf.Ln(10)

	for i := range tasks {
		t := &tasks[i]
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		due := domain.FormatDue(t.DueDate, now)
		if t.IsOverdue(now) {
			due += " (overdue)"
		}
		line := fmt.Sprintf("%s %s  %s  %s  %s", mark, t.Text, t.Priority.Badge(), t.Category, due)
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
