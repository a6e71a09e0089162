// Package view renders command results as a table, JSON or plain text.
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
)

type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatPlain Format = "plain"
)

// ValidFormats returns the accepted values of the --output flag.
func ValidFormats() []string {
	return []string{string(FormatTable), string(FormatJSON), string(FormatPlain)}
}

// ValidateFormat accepts an empty format, which renders as a table.
func ValidateFormat(format string) error {
	if format == "" || slices.Contains(ValidFormats(), format) {
		return nil
	}
	return fmt.Errorf("invalid output format %q, must be one of: %s", format, strings.Join(ValidFormats(), ", "))
}

// Renderer writes rows in one format.
type Renderer struct {
	format Format
	writer io.Writer
	header *color.Color
}

func NewRenderer(w io.Writer, format Format, noColor bool) *Renderer {
	header := color.New(color.Bold)
	if noColor {
		header.DisableColor()
	}
	if format == "" {
		format = FormatTable
	}
	return &Renderer{
		format: format,
		writer: w,
		header: header,
	}
}

func (r *Renderer) Format() Format {
	return r.format
}

// RenderTable renders rows under headers. JSON output is an array of objects
// keyed by the lower-cased headers; plain output is tab separated without a
// header line.
func (r *Renderer) RenderTable(headers []string, rows [][]string) error {
	switch r.format {
	case FormatJSON:
		return r.renderJSON(headers, rows)
	case FormatPlain:
		return r.renderPlain(rows)
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, val := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], len(val))
			}
		}
	}

	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(r.writer, "  ")
		}
		cell := h
		if i < len(headers)-1 {
			cell = pad(h, widths[i])
		}
		if _, err := r.header.Fprint(r.writer, cell); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(r.writer); err != nil {
		return err
	}

	for _, row := range rows {
		var b strings.Builder
		for i, val := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			if i < len(row)-1 && i < len(widths) {
				val = pad(val, widths[i])
			}
			b.WriteString(val)
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(r.writer, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderJSON(headers []string, rows [][]string) error {
	result := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		item := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(row) {
				item[strings.ToLower(header)] = row[i]
			}
		}
		result = append(result, item)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.writer, string(data))
	return err
}

func (r *Renderer) renderPlain(rows [][]string) error {
	for _, row := range rows {
		if _, err := fmt.Fprintln(r.writer, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}

// RenderText renders a line of text.
func (r *Renderer) RenderText(text string) {
	fmt.Fprintln(r.writer, text)
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// Truncate truncates a string to the specified length.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
