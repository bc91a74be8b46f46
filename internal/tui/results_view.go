package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/baghouse/internal/report"
	"github.com/rshade/baghouse/internal/session"
)

// Column widths for the results panel.
const (
	resultLabelWidth = 34
	minTruncateLen   = 3
	sectionGap       = 1
)

// RenderHeader renders the form title with design type and override state.
func RenderHeader(snap session.Snapshot) string {
	var sb strings.Builder

	title := "Baghouse EMC design"
	if snap.Name != "" {
		title += ": " + snap.Name
	}
	sb.WriteString(TitleStyle.Render(title))
	sb.WriteString("\n")

	sb.WriteString(LabelStyle.Render("Design: "))
	sb.WriteString(ValueStyle.Render(snap.Design.String()))
	sb.WriteString(LabelStyle.Render("   Rows: "))
	sb.WriteString(ValueStyle.Render(snap.RowType.String()))
	sb.WriteString(LabelStyle.Render("   Ceiling override: "))
	if snap.Override {
		sb.WriteString(WarningStyle.Render("on"))
	} else {
		sb.WriteString(ValueStyle.Render("off"))
	}
	return sb.String()
}

// RenderFlapStatus renders a one-line verdict for the current flap count.
func RenderFlapStatus(snap session.Snapshot) string {
	v := snap.Flaps
	switch {
	case v.Count == 0 && !v.Valid:
		hint := ""
		if snap.SuggestedFlaps > 0 {
			hint = fmt.Sprintf(" (suggested %d)", snap.SuggestedFlaps)
		}
		return MutedStyle.Render("Enter a flap count" + hint)
	case v.Valid && v.Overridden:
		return WarningStyle.Render(fmt.Sprintf("%d flaps accepted above the A/C ceiling", v.Count))
	case v.Valid:
		return OKStyle.Render(fmt.Sprintf("%d flaps OK", v.Count))
	default:
		msg := fmt.Sprintf("%d flaps: %s", v.Count, v.Reason())
		if v.AdjustedCount > 0 {
			msg += fmt.Sprintf("; try %d", v.AdjustedCount)
		}
		return ErrorStyle.Render(msg)
	}
}

// RenderResults renders the report sections side by side when width allows,
// stacked otherwise.
func RenderResults(r report.Report, width int) string {
	if len(r.Sections) == 0 {
		return MutedStyle.Render("No results")
	}

	blocks := make([]string, 0, len(r.Sections))
	for _, s := range r.Sections {
		blocks = append(blocks, renderSection(s))
	}

	var rows []string
	var line []string
	lineWidth := 0
	for _, b := range blocks {
		w := lipgloss.Width(b)
		if lineWidth > 0 && lineWidth+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
			line, lineWidth = nil, 0
		}
		line = append(line, b)
		lineWidth += w
	}
	if len(line) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderSection(s report.Section) string {
	var sb strings.Builder
	sb.WriteString(SectionStyle.Render(s.Title))
	for _, row := range s.Rows {
		sb.WriteString("\n")
		sb.WriteString(LabelStyle.Render(fmt.Sprintf("%-*s", resultLabelWidth, truncate(row.Label, resultLabelWidth))))
		if row.Warning {
			sb.WriteString(WarningStyle.Render(row.Value))
		} else {
			sb.WriteString(ValueStyle.Render(row.Value))
		}
	}
	return PanelStyle.MarginRight(sectionGap).Render(sb.String())
}

// RenderAdvisories renders the advisory list, or nothing when it is empty.
func RenderAdvisories(advisories []string) string {
	if len(advisories) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(WarningStyle.Bold(true).Render("Advisories"))
	for _, a := range advisories {
		sb.WriteString("\n")
		sb.WriteString(WarningStyle.Render("  ! " + a))
	}
	return sb.String()
}

// RenderHelp renders the key bindings for the current mode.
func RenderHelp(editing bool) string {
	if editing {
		return MutedStyle.Render("enter: apply  esc: cancel")
	}
	return MutedStyle.Render(
		"↑/↓: move  enter: edit  x: clear  tab: results  d: design  o: override  w: save  q: quit")
}

// truncate shortens s to maxLen runes with an ellipsis.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= minTruncateLen {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-minTruncateLen]) + "..."
}
