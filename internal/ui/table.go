package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// cell is a table cell rendered with its own style
type cell struct {
	text  string
	style lipgloss.Style
}

// renderTable draws a box table. Column widths grow to fit the widest
// cell, but never below minWidths.
func renderTable(headers []string, minWidths []int, rows [][]cell) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
		if i < len(minWidths) && minWidths[i] > widths[i] {
			widths[i] = minWidths[i]
		}
	}
	for _, row := range rows {
		for i, c := range row {
			if w := runewidth.StringWidth(c.text); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder

	border := func(left, mid, right string) {
		sb.WriteString(BorderStyle.Render(left))
		for i, w := range widths {
			sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w+2)))
			if i < len(widths)-1 {
				sb.WriteString(BorderStyle.Render(mid))
			}
		}
		sb.WriteString(BorderStyle.Render(right))
		sb.WriteString("\n")
	}

	// Top border
	border(TopLeft, TopT, TopRight)

	// Header row
	sb.WriteString(BorderStyle.Render(Vertical))
	for i, h := range headers {
		sb.WriteString(HeaderStyle.Render(" " + padRight(h, widths[i]) + " "))
		sb.WriteString(BorderStyle.Render(Vertical))
	}
	sb.WriteString("\n")

	// Header separator
	border(LeftT, Cross, RightT)

	// Data rows
	for _, row := range rows {
		sb.WriteString(BorderStyle.Render(Vertical))
		for i, c := range row {
			sb.WriteString(c.style.Render(" " + padRight(c.text, widths[i]) + " "))
			sb.WriteString(BorderStyle.Render(Vertical))
		}
		sb.WriteString("\n")
	}

	// Bottom border
	border(BottomLeft, BottomT, BottomRight)

	return sb.String()
}

// detail is a label/value line in a details box
type detail struct {
	label string
	value string
}

// renderDetails draws a titled box of label/value lines
func renderDetails(title string, details []detail) string {
	var sb strings.Builder
	labelWidth := 20

	// Calculate width based on longest value (using display width)
	width := 60
	for _, d := range details {
		lineLen := 1 + labelWidth + runewidth.StringWidth(d.value) + 1
		if lineLen > width {
			width = lineLen
		}
	}

	// Top border
	sb.WriteString(BorderStyle.Render(TopLeft))
	sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, width)))
	sb.WriteString(BorderStyle.Render(TopRight))
	sb.WriteString("\n")

	// Title
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString(HeaderStyle.Render(padRight(" "+title, width)))
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")

	// Separator
	sb.WriteString(BorderStyle.Render(LeftT))
	sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, width)))
	sb.WriteString(BorderStyle.Render(RightT))
	sb.WriteString("\n")

	for _, d := range details {
		sb.WriteString(BorderStyle.Render(Vertical))
		line := " " + padRight(d.label, labelWidth) + d.value
		sb.WriteString(padToWidth(line, width))
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString("\n")
	}

	// Bottom border
	sb.WriteString(BorderStyle.Render(BottomLeft))
	sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, width)))
	sb.WriteString(BorderStyle.Render(BottomRight))
	sb.WriteString("\n")

	return sb.String()
}
