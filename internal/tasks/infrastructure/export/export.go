// Package export renders a task collection as JSON, CSV or PDF.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/felixgeelhaar/taskflow/internal/tasks/domain/task"
	"github.com/jung-kurt/gofpdf"
)

// Format names an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat accepts a case-insensitive format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %s (supported: json, csv, pdf)", ErrUnknownFormat, s)
	}
}

// Export encodes tasks in the given format.
func Export(tasks []task.Task, format Format) ([]byte, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	switch format {
	case FormatJSON:
		return json.MarshalIndent(tasks, "", "  ")
	case FormatCSV:
		return exportCSV(tasks)
	case FormatPDF:
		return exportPDF(tasks)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

var csvHeader = []string{"id", "text", "priority", "completed", "created_at"}

func exportCSV(tasks []task.Task) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, t := range tasks {
		record := []string{
			t.ID,
			t.Text,
			string(t.Priority),
			strconv.FormatBool(t.Completed),
			t.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportPDF(tasks []task.Task) ([]byte, error) {
	counts := task.CountTasks(tasks)

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "TaskFlow")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(40, 6, fmt.Sprintf("%d tasks, %d active, %d completed", counts.Total, counts.Active, counts.Completed))
	pdf.Ln(10)

	for _, t := range task.SortByPriority(tasks) {
		marker := "[ ]"
		if t.Completed {
			marker = "[x]"
		}
		line := fmt.Sprintf("%s %s (%s) %s", marker, t.Text, t.Priority.Label(), t.CreatedAt.Format("2006-01-02"))
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
