package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"gasnet/internal/diagram"
)

// Palette
var (
	Brand  = color.New(color.FgHiGreen, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

// overlayColor picks the terminal colour matching an overlay status
func overlayColor(s diagram.OverlayStatus) *color.Color {
	switch s {
	case diagram.OverlayOK:
		return Good
	case diagram.OverlayLow:
		return Bad
	default:
		return Warn
	}
}

// table prints an aligned table to w
func table(w io.Writer, headers []string, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	header := "  "
	sep := "  "
	for i, h := range headers {
		header += fmt.Sprintf("%-*s  ", widths[i], h)
		sep += strings.Repeat("─", widths[i]) + "  "
	}
	Subtle.Fprintln(w, strings.TrimRight(header, " "))
	Subtle.Fprintln(w, strings.TrimRight(sep, " "))

	for _, row := range rows {
		line := "  "
		for i, cell := range row {
			if i < len(widths) {
				line += fmt.Sprintf("%-*s  ", widths[i], cell)
			}
		}
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

func statusIcon(ok bool) string {
	if ok {
		return Good.Sprint("✓")
	}
	return Bad.Sprint("✗")
}
