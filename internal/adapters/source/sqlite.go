package source

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	// registers the "sqlite" driver
	_ "github.com/glebarez/go-sqlite"

	"github.com/okian/hoopboard/internal/domain/player"
)

type sqliteLoader struct {
	path  string
	table string
}

func (l *sqliteLoader) Load(ctx context.Context) (*player.Dataset, error) {
	// the driver creates missing files; a missing input is an error here
	if _, err := os.Stat(l.path); err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	db, err := sql.Open("sqlite", l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(l.table))
	if err != nil {
		return nil, fmt.Errorf("%w: %s table %q: %w", ErrMalformed, l.path, l.table, err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, l.path, err)
	}
	records := [][]string{cols}
	for rows.Next() {
		cells := make([]sql.NullString, len(cols))
		dest := make([]any, len(cols))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, l.path, err)
		}
		rec := make([]string, len(cols))
		for i, c := range cells {
			rec[i] = c.String
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, l.path, err)
	}
	return fromRecords(l.path, records)
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
