package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/naka-gawa/triage-scan/internal/domain"
	"gopkg.in/yaml.v3"
)

// OutputFormat selects how a report is encoded.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// ParseOutputFormat validates a format name given on the command line.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want json or yaml)", s)
	}
}

// ReportWriter encodes reports for the downstream report consumer.
type ReportWriter struct {
	w      io.Writer
	format OutputFormat
}

// NewReportWriter creates a ReportWriter writing to w in the given format.
func NewReportWriter(w io.Writer, format OutputFormat) *ReportWriter {
	return &ReportWriter{w: w, format: format}
}

// Write encodes the report in memory first, so nothing reaches w when encoding fails.
func (rw *ReportWriter) Write(report *domain.Report) error {
	data, err := Encode(report, rw.format)
	if err != nil {
		return err
	}
	if _, err := rw.w.Write(data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Encode renders the report in the given format.
func Encode(report *domain.Report, format OutputFormat) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return nil, fmt.Errorf("failed to marshal report to JSON: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return nil, fmt.Errorf("failed to marshal report to YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to marshal report to YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	return buf.Bytes(), nil
}
