package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Box drawing characters
const (
	TopLeft     = "╭"
	TopRight    = "╮"
	BottomLeft  = "╰"
	BottomRight = "╯"
	Horizontal  = "─"
	Vertical    = "│"
	LeftT       = "├"
	RightT      = "┤"
	TopT        = "┬"
	BottomT     = "┴"
	Cross       = "┼"
)

// Color palette
const (
	ColorBorder  = "240"
	ColorHeader  = "252"
	ColorID      = "214"
	ColorName    = "81"
	ColorValue   = "252"
	ColorSuccess = "82"
	ColorFailed  = "196"
	ColorPending = "214"
	ColorMuted   = "240"
	ColorHint    = "245"
)

// Shared styles
var (
	BorderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder))
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorHeader))
	IDStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorID))
	NameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorName))
	ValueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorValue))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	FailedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorFailed))
	PendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPending))
	MutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	HintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHint))
)

// padRight pads a string to the specified display width using runewidth
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "...")
	}
	return s + strings.Repeat(" ", width-sw)
}

// padToWidth pads without truncating
func padToWidth(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func formatOptional(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
