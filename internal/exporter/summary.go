package exporter

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/okian/hoopboard/internal/domain/prepared"
	"github.com/okian/hoopboard/internal/domain/stats"
)

var (
	primaryColor = lipgloss.AdaptiveColor{Light: "#1D428A", Dark: "#7AA2F7"}
	mutedColor   = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#9399B2"}

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	numberStyle = cellStyle.Align(lipgloss.Right)

	noteStyle = lipgloss.NewStyle().Foreground(mutedColor).Italic(true)
)

// Summary prints the team averages and the rating interval counts as text
// tables.
func Summary(w io.Writer, snap *prepared.Snapshot) error {
	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Team averages"),
		teamTable(snap.Teams()).Render(),
		titleStyle.Render("Rating intervals"),
		countTable("Interval", snap.Ratings()).Render(),
		noteStyle.Render(fmt.Sprintf("%d players, %d outside every interval", snap.Dataset().Len(), snap.Unbucketed())),
	))
	return err
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(mutedColor)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			default:
				return numberStyle
			}
		})
}

func teamTable(rows []stats.TeamRow) *table.Table {
	t := newTable("Team", "Height", "Weight", "Salary", "Rating", "BMI")
	for _, r := range rows {
		t.Row(r.Team, decimal(r.Height, 1), decimal(r.Weight, 1), decimal(r.Salary, 0), decimal(r.Rating, 1), decimal(r.BMI, 2))
	}
	return t
}

func countTable(label string, counts []stats.Count) *table.Table {
	t := newTable(label, "Players")
	for _, c := range counts {
		t.Row(c.Label, strconv.Itoa(c.N))
	}
	return t
}

func decimal(v float64, prec int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}
