package source

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/okian/hoopboard/internal/domain/player"
)

type xlsxLoader struct {
	path  string
	sheet string
}

func (l *xlsxLoader) Load(ctx context.Context) (*player.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	defer func() { _ = f.Close() }()

	sheet := l.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: %s has no sheets", ErrMalformed, l.path)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %s sheet %q: %w", ErrMalformed, l.path, sheet, err)
	}
	return fromRecords(l.path, padRows(rows))
}

// padRows widens every row to the header width; excelize drops trailing empty cells.
func padRows(rows [][]string) [][]string {
	if len(rows) == 0 {
		return rows
	}
	width := len(rows[0])
	out := rows[:0]
	for _, r := range rows {
		if len(r) == 0 {
			continue
		}
		for len(r) < width {
			r = append(r, "")
		}
		out = append(out, r[:width])
	}
	return out
}
