package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// fieldLabelWidth is the width of the row label column.
const fieldLabelWidth = 20

// View renders the current view.
func (m *DashboardModel) View() string {
	if m.state == DashboardStateQuitting {
		return ""
	}
	return m.renderDashboard()
}

// renderDashboard renders the full dashboard: totals comparison, the
// editable rows, the share chart, and help.
func (m *DashboardModel) renderDashboard() string {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render("EmiMeter"))
	sb.WriteString("\n")
	sb.WriteString(SubtleStyle.Render("Annual CO2e emissions, baseline vs optimized"))
	sb.WriteString("\n\n")

	if m.report != nil {
		sb.WriteString(RenderComparisonChart(m.report, m.width))
		sb.WriteString("\n")
	}

	sb.WriteString(m.renderFieldRows())
	sb.WriteString("\n")

	if m.report != nil {
		sb.WriteString(RenderShareChart(m.report, m.width))
		sb.WriteString("\n")
	}

	if m.inputErr != nil {
		sb.WriteString(CriticalStyle.Render("Input error: " + m.inputErr.Error()))
		sb.WriteString("\n\n")
	}

	sb.WriteString(RenderDashboardHelp())

	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(sb.String())
	}
	return sb.String()
}

// renderFieldRows renders the editable rows grouped by section.
func (m *DashboardModel) renderFieldRows() string {
	var sb strings.Builder

	section := ""
	for i := range m.fields {
		if m.fields[i].section != section {
			if section != "" {
				sb.WriteString("\n")
			}
			section = m.fields[i].section
			sb.WriteString(HeaderStyle.Render(strings.ToUpper(section)))
			sb.WriteString("\n")
		}
		sb.WriteString(m.renderFieldRow(i))
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderFieldRow renders a single editable row with its focus indicator.
func (m *DashboardModel) renderFieldRow(i int) string {
	f := m.fields[i]
	focused := i == m.focusedRow

	var sb strings.Builder

	switch {
	case focused && m.editMode:
		sb.WriteString("> ")
	case focused:
		sb.WriteString(IconArrowRight + " ")
	default:
		sb.WriteString("  ")
	}

	sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s", fieldLabelWidth, f.label)))

	if focused && m.editMode {
		sb.WriteString(m.editInput.View())
	} else {
		style := ValueStyle
		if focused {
			style = lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
		}
		sb.WriteString(style.Render(fmt.Sprintf("%*s", editFieldWidth, formatFieldValue(f.get(m)))))
	}

	sb.WriteString(" ")
	sb.WriteString(InfoStyle.Render(f.unit))

	return sb.String()
}

// RenderDashboardHelp renders the keyboard shortcut help text.
func RenderDashboardHelp() string {
	helpStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	editKeys := []string{
		"↑/↓: Navigate",
		"←/→: Adjust lever",
		"Enter: Edit value",
		"Esc: Cancel edit",
	}
	stateKeys := []string{
		"s: Sample data",
		"r: Reset",
		"q: Quit",
	}

	return helpStyle.Render(strings.Join(editKeys, " | ")) + "\n" +
		helpStyle.Render(strings.Join(stateKeys, " | "))
}
