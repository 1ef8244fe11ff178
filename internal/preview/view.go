package preview

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/agiangrant/stretchy"
)

// Color constants used by the preview.
const (
	ColorGray  = lipgloss.Color("#888888")
	ColorGreen = lipgloss.Color("#28D223")
	ColorRed   = lipgloss.Color("#FF4444")
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(ColorGray)
	errorStyle   = lipgloss.NewStyle().Foreground(ColorRed)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder()).BorderForeground(ColorGray)
	activeStyle  = cellStyle.BorderForeground(ColorGreen).Bold(true)
	sectionStyle = lipgloss.NewStyle().Padding(1, 1, 0, 1)
)

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	h := m.session.View().Header()
	frame := h.Frame()

	title := titleStyle.Render("stretchy") + labelStyle.Render("  "+h.Gallery().State().String())
	if p := h.Pager(); p != nil {
		title += labelStyle.Render("  " + p.Text())
	}
	title += labelStyle.Render(fmt.Sprintf("  %d updates", m.session.Updates()))

	rows := []string{
		title,
		sectionStyle.Render(Filmstrip(h, frame)),
		sectionStyle.Render(ChannelTable(frame)),
	}
	if m.err != nil {
		rows = append(rows, errorStyle.Render(m.err.Error()))
	}
	rows = append(rows, sectionStyle.Render(m.help.View(m.keys)))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Filmstrip renders the gallery elements with the one nearest the current
// fractional index highlighted.
func Filmstrip(h *stretchy.Header, frame stretchy.HeaderFrame) string {
	strip := h.Strip()
	if strip == nil || len(strip.Children()) == 0 {
		return labelStyle.Render("(no background)")
	}

	nearest := int(math.Round(frame.Index))
	kids := strip.Children()
	cells := make([]string, 0, len(kids))
	for i, n := range kids {
		label := n.ImageSource()
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		}
		if i == nearest {
			cells = append(cells, activeStyle.Render(label))
		} else {
			cells = append(cells, cellStyle.Render(label))
		}
	}

	marker := strings.Repeat(" ", markerColumn(frame.Index, len(kids))) + "^"
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, cells...),
		labelStyle.Render(marker),
	)
}

// markerColumn places the index marker across a strip of count cells, each
// roughly cellWidth columns wide.
func markerColumn(index float64, count int) int {
	const cellWidth = 10
	col := int(math.Round(index*cellWidth)) + cellWidth/2
	return max(0, min(col, count*cellWidth-1))
}

// ChannelTable renders the derived header values.
func ChannelTable(f stretchy.HeaderFrame) string {
	rows := [][]string{
		{"scroll y", fmt.Sprintf("%.1f", f.ScrollY)},
		{"index", fmt.Sprintf("%.3f", f.Index)},
		{"opacity", fmt.Sprintf("%.3f", f.Opacity)},
		{"scale", fmt.Sprintf("%.3f", f.Scale)},
		{"translate x", fmt.Sprintf("%.1f", f.TranslateX)},
		{"translate y", fmt.Sprintf("%.1f", f.TranslateY)},
		{"overflow", string(f.Overflow)},
	}

	return table.New().
		Headers("CHANNEL", "VALUE").
		Rows(rows...).
		BorderTop(false).BorderBottom(false).BorderLeft(false).BorderRight(false).
		BorderColumn(false).BorderRow(false).BorderHeader(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Width(14)
			if col == 1 {
				style = style.Align(lipgloss.Right)
			}
			if row == table.HeaderRow {
				return style.Foreground(ColorGray).Bold(true)
			}
			if col == 0 {
				return style.Foreground(ColorGray)
			}
			return style
		}).
		Render()
}
