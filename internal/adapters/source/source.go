// Package source loads the player table from CSV, Excel or SQLite files.
package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/okian/hoopboard/internal/domain/player"
)

// DefaultTable is the SQLite table read when no table is configured.
const DefaultTable = "players"

// Loader reads the whole table in one pass.
type Loader interface {
	Load(ctx context.Context) (*player.Dataset, error)
}

type options struct {
	sheet string
	table string
}

// Option configures a loader.
type Option func(*options)

// WithSheet selects the Excel sheet. The first sheet is used by default.
func WithSheet(name string) Option {
	return func(o *options) {
		o.sheet = name
	}
}

// WithTable selects the SQLite table.
func WithTable(name string) Option {
	return func(o *options) {
		if name != "" {
			o.table = name
		}
	}
}

// Open returns the loader for path, chosen by file extension.
func Open(path string, opts ...Option) (Loader, error) {
	o := options{table: DefaultTable}
	for _, opt := range opts {
		opt(&o)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return &csvLoader{path: path}, nil
	case ".xlsx":
		return &xlsxLoader{path: path, sheet: o.sheet}, nil
	case ".db", ".sqlite", ".sqlite3":
		return &sqliteLoader{path: path, table: o.table}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Load is a shorthand for Open followed by Loader.Load.
func Load(ctx context.Context, path string, opts ...Option) (*player.Dataset, error) {
	l, err := Open(path, opts...)
	if err != nil {
		return nil, err
	}
	return l.Load(ctx)
}
