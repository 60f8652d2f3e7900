// Package renderer turns computed portfolio reports into markdown. The
// strings it returns are meant for a terminal markdown renderer, but they
// are plain markdown and read fine raw.
package renderer

import (
	"strings"
	"unicode/utf8"
)

type alignment int

const (
	alignLeft alignment = iota
	alignRight
)

// table builds a markdown table with padded cells so the raw text stays
// readable without a renderer.
func table(headers []string, align []alignment, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && utf8.RuneCountInString(cell) > widths[i] {
				widths[i] = utf8.RuneCountInString(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteString("|")
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell))
			if i < len(align) && align[i] == alignRight {
				b.WriteString(" " + pad + cell + " |")
			} else {
				b.WriteString(" " + cell + pad + " |")
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers)
	b.WriteString("|")
	for i := range headers {
		rule := strings.Repeat("-", widths[i])
		if i < len(align) && align[i] == alignRight {
			b.WriteString(" " + rule + ": |")
		} else {
			b.WriteString(" " + rule + " |")
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}
	return b.String()
}
