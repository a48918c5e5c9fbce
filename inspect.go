package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ByLCY/notecard/layout"
	svgrenderer "github.com/ByLCY/notecard/renderer/svg"
)

var (
	inspectTitle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	inspectMuted  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	inspectHeader = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	inspectCell   = lipgloss.NewStyle().Padding(0, 1)
	inspectBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// inspect 以表格形式展示布局结果，便于在终端核对坐标。
func inspect(name string, l *layout.Layout) string {
	if l == nil {
		return inspectMuted.Render(name + ": (empty)")
	}
	n := svgrenderer.FormatNumber
	mode := "plain"
	if l.Notepad {
		mode = "notepad"
	}
	summary := fmt.Sprintf("%s  %s×%s  %s  textStartX=%s",
		inspectTitle.Render(name), n(l.Width), n(l.Height), mode, n(l.TextStartX))

	rows := make([][]string, 0, len(l.Lines))
	for i, pl := range l.Lines {
		text := pl.Text
		if text == "" {
			text = inspectMuted.Render("(blank)")
		}
		rows = append(rows, []string{
			fmt.Sprint(i),
			n(pl.X),
			n(pl.Y),
			n(pl.DY),
			n(pl.FontSize),
			pl.FontWeight,
			pl.Anchor,
			n(pl.EstimatedWidth),
			text,
		})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(inspectBorder).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return inspectHeader
			}
			return inspectCell
		}).
		Headers("#", "x", "y", "dy", "size", "weight", "anchor", "width", "text").
		Rows(rows...)

	return strings.Join([]string{summary, t.Render()}, "\n")
}
