package ui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/vietdv277/amirotate/pkg/types"
)

const (
	groupListHeight  = 8
	groupDetailWidth = 18
	minWidth         = 60
)

// GroupModel represents the bubbletea model for picking configured groups.
// Space toggles a group, Enter confirms the marked groups (or the one under
// the cursor if none are marked).
type GroupModel struct {
	groups       []types.GroupSpec
	filtered     []types.GroupSpec
	marked       map[string]bool
	cursor       int
	offset       int
	search       string
	selected     []types.GroupSpec
	quitting     bool
	cancelled    bool
	termWidth    int
	contentWidth int
	maxNameWidth int
}

// NewGroupModel creates a new group selector model
func NewGroupModel(groups []types.GroupSpec) GroupModel {
	maxNameWidth := 30 // minimum
	for _, g := range groups {
		if w := runewidth.StringWidth(g.Name); w > maxNameWidth {
			maxNameWidth = w
		}
	}

	m := GroupModel{
		groups:       groups,
		filtered:     groups,
		marked:       make(map[string]bool),
		termWidth:    80,
		maxNameWidth: maxNameWidth,
	}
	m.calculateWidths()
	return m
}

func (m *GroupModel) calculateWidths() {
	m.contentWidth = m.termWidth - 2
	if m.contentWidth < minWidth {
		m.contentWidth = minWidth
	}

	// cursor(3) + mark(4) + name
	if required := m.maxNameWidth + 7; m.contentWidth < required {
		m.contentWidth = required
	}
}

// Init implements tea.Model
func (m GroupModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model
func (m GroupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.calculateWidths()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			m.cancelled = true
			return m, tea.Quit

		case tea.KeyEnter:
			m.selected = m.collectSelection()
			if len(m.selected) > 0 {
				m.quitting = true
				return m, tea.Quit
			}

		case tea.KeySpace:
			if len(m.filtered) > 0 {
				name := m.filtered[m.cursor].Name
				m.marked[name] = !m.marked[name]
			}

		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}

		case tea.KeyDown:
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				if m.cursor >= m.offset+groupListHeight {
					m.offset = m.cursor - groupListHeight + 1
				}
			}

		case tea.KeyBackspace:
			if len(m.search) > 0 {
				m.search = m.search[:len(m.search)-1]
				m.filterGroups()
			}

		case tea.KeyRunes:
			m.search += string(msg.Runes)
			m.filterGroups()
		}
	}

	return m, nil
}

// collectSelection returns marked groups in config order
func (m GroupModel) collectSelection() []types.GroupSpec {
	var out []types.GroupSpec
	for _, g := range m.groups {
		if m.marked[g.Name] {
			out = append(out, g)
		}
	}
	if len(out) == 0 && len(m.filtered) > 0 {
		out = append(out, m.filtered[m.cursor])
	}
	return out
}

func (m *GroupModel) filterGroups() {
	if m.search == "" {
		m.filtered = m.groups
	} else {
		query := strings.ToLower(m.search)
		m.filtered = nil
		for _, g := range m.groups {
			if strings.Contains(strings.ToLower(g.Name), query) {
				m.filtered = append(m.filtered, g)
			}
		}
	}
	if m.cursor >= len(m.filtered) {
		if len(m.filtered) > 0 {
			m.cursor = len(m.filtered) - 1
		} else {
			m.cursor = 0
		}
	}
	m.offset = 0
}

// View implements tea.Model
func (m GroupModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	w := m.contentWidth

	blank := func() {
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString(strings.Repeat(" ", w))
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString("\n")
	}

	// Top border
	sb.WriteString(BorderStyle.Render(TopLeft))
	sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w)))
	sb.WriteString(BorderStyle.Render(TopRight))
	sb.WriteString("\n")

	// Search input
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString(NameStyle.Render(padToWidth(" > "+m.search, w)))
	sb.WriteString(BorderStyle.Render(Vertical))
	sb.WriteString("\n")
	blank()

	// Group list
	visibleEnd := m.offset + groupListHeight
	if visibleEnd > len(m.filtered) {
		visibleEnd = len(m.filtered)
	}
	for i := m.offset; i < visibleEnd; i++ {
		sb.WriteString(m.renderGroupRow(i))
	}
	for i := visibleEnd - m.offset; i < groupListHeight; i++ {
		blank()
	}
	blank()

	// Separator
	sb.WriteString(BorderStyle.Render(LeftT))
	sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w)))
	sb.WriteString(BorderStyle.Render(RightT))
	sb.WriteString("\n")

	// Details panel
	sb.WriteString(m.renderDetailsPanel())

	// Bottom border
	sb.WriteString(BorderStyle.Render(BottomLeft))
	sb.WriteString(BorderStyle.Render(strings.Repeat(Horizontal, w)))
	sb.WriteString(BorderStyle.Render(BottomRight))
	sb.WriteString("\n")

	// Status bar
	sb.WriteString(m.renderStatusBar())

	return sb.String()
}

func (m GroupModel) renderGroupRow(idx int) string {
	g := m.filtered[idx]
	w := m.contentWidth

	cursor := "   "
	if idx == m.cursor {
		cursor = " > "
	}
	mark := "[ ] "
	if m.marked[g.Name] {
		mark = "[x] "
	}

	plainWidth := 3 + 4 + m.maxNameWidth
	line := cursor + mark + NameStyle.Render(padRight(g.Name, m.maxNameWidth))
	if plainWidth < w {
		line += strings.Repeat(" ", w-plainWidth)
	}

	return BorderStyle.Render(Vertical) + line + BorderStyle.Render(Vertical) + "\n"
}

func (m GroupModel) renderDetailsPanel() string {
	var sb strings.Builder
	w := m.contentWidth

	line := func(s string) {
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString(s)
		sb.WriteString(BorderStyle.Render(Vertical))
		sb.WriteString("\n")
	}

	line(HeaderStyle.Render(padToWidth(" Group Details", w)))
	line(MutedStyle.Render(padToWidth(" "+strings.Repeat("─", 20), w)))

	if len(m.filtered) == 0 {
		line(MutedStyle.Render(padToWidth(" No groups found", w)))
	} else {
		for _, d := range groupDetails(m.filtered[m.cursor]) {
			plainWidth := 1 + groupDetailWidth + runewidth.StringWidth(d.value)
			text := MutedStyle.Render(" "+padRight(d.label, groupDetailWidth)) + NameStyle.Render(d.value)
			if plainWidth < w {
				text += strings.Repeat(" ", w-plainWidth)
			}
			line(text)
		}
	}

	line(strings.Repeat(" ", w))
	return sb.String()
}

func groupDetails(g types.GroupSpec) []detail {
	if g.ImageParameter != "" {
		return []detail{
			{"Name:", g.Name},
			{"Image Parameter:", g.ImageParameter},
		}
	}

	keys := make([]string, 0, len(g.Tags))
	for k := range g.Tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var tags []string
	for _, k := range keys {
		tags = append(tags, fmt.Sprintf("%s~%s", k, g.Tags[k]))
	}

	return []detail{
		{"Name:", g.Name},
		{"Tag Filters:", formatOptional(strings.Join(tags, ", "))},
	}
}

func (m GroupModel) renderStatusBar() string {
	w := m.contentWidth + 2

	countInfo := fmt.Sprintf("  %d/%d groups, %d marked", len(m.filtered), len(m.groups), m.markedCount())
	hintsPlain := "[Space:mark] [Enter:run] [Esc:cancel]"

	padding := w - runewidth.StringWidth(countInfo) - runewidth.StringWidth(hintsPlain)
	out := countInfo
	if padding > 0 {
		out += strings.Repeat(" ", padding)
	}
	return out + HintStyle.Render(hintsPlain) + "\n"
}

func (m GroupModel) markedCount() int {
	n := 0
	for _, v := range m.marked {
		if v {
			n++
		}
	}
	return n
}

// SelectGroups displays an interactive selector for configured groups
func SelectGroups(groups []types.GroupSpec) ([]types.GroupSpec, error) {
	if len(groups) == 0 {
		return nil, fmt.Errorf("no groups available")
	}

	finalModel, err := tea.NewProgram(NewGroupModel(groups)).Run()
	if err != nil {
		return nil, fmt.Errorf("error running selector: %w", err)
	}

	result := finalModel.(GroupModel)
	if result.cancelled {
		return nil, fmt.Errorf("selection cancelled")
	}

	return result.selected, nil
}
