// Package workbook exports the aggregate tables as an Excel workbook.
package workbook

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/okian/hoopboard/internal/domain/player"
	"github.com/okian/hoopboard/internal/domain/prepared"
	"github.com/okian/hoopboard/internal/domain/stats"
)

// Sheet names in workbook order.
const (
	SheetTeams     = "Team Averages"
	SheetRatings   = "Rating Intervals"
	SheetCountries = "Countries"
	SheetPositions = "Positions"
)

// ContentType is the MIME type of the written workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type sheet struct {
	name string
	rows [][]any
}

// Build lays the snapshot tables out in a new workbook. The caller closes it.
func Build(s *prepared.Snapshot) (*excelize.File, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil snapshot", ErrWorkbook)
	}
	sheets := []sheet{
		{SheetTeams, teamRows(s.Teams())},
		{SheetRatings, countRows("interval", s.Ratings())},
		{SheetCountries, countRows(player.ColCountry, s.Countries())},
		{SheetPositions, countRows(player.ColPosition, s.Positions())},
	}

	f := excelize.NewFile()
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %w", ErrWorkbook, err)
	}
	for i, sh := range sheets {
		if err := writeSheet(f, i, sh, header); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("%w: sheet %q: %w", ErrWorkbook, sh.name, err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

// Write builds the workbook and writes it to w.
func Write(w io.Writer, s *prepared.Snapshot) error {
	f, err := Build(s)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("%w: %w", ErrWorkbook, err)
	}
	return nil
}

func writeSheet(f *excelize.File, index int, sh sheet, headerStyle int) error {
	if index == 0 {
		if err := f.SetSheetName("Sheet1", sh.name); err != nil {
			return err
		}
	} else if _, err := f.NewSheet(sh.name); err != nil {
		return err
	}

	for r, row := range sh.rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
			return err
		}
	}

	last, err := excelize.CoordinatesToCellName(len(sh.rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sh.name, "A1", last, headerStyle); err != nil {
		return err
	}
	lastCol, _, err := excelize.SplitCellName(last)
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sh.name, "A", lastCol, 16); err != nil {
		return err
	}
	return f.SetPanes(sh.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func teamRows(teams []stats.TeamRow) [][]any {
	header := []any{player.ColTeam}
	for _, c := range player.NumericColumns {
		header = append(header, c)
	}
	rows := [][]any{header}
	for _, t := range teams {
		row := []any{t.Team}
		for _, c := range player.NumericColumns {
			row = append(row, cellValue(t.Value(c)))
		}
		rows = append(rows, row)
	}
	return rows
}

func countRows(label string, counts []stats.Count) [][]any {
	rows := [][]any{{label, "count"}}
	for _, c := range counts {
		rows = append(rows, []any{c.Label, c.N})
	}
	return rows
}

// cellValue leaves missing means as empty cells.
func cellValue(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
