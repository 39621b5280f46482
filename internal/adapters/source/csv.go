package source

import (
	"context"
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"

	"github.com/okian/hoopboard/internal/domain/player"
)

type csvLoader struct {
	path string
}

func (l *csvLoader) Load(ctx context.Context) (*player.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	defer func() { _ = f.Close() }()

	return fromFrame(l.path, dataframe.ReadCSV(f, loadOptions()...))
}
