package service

import (
	"fmt"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/hoopboard/internal/adapters/source"
	"github.com/okian/hoopboard/internal/domain/prepared"
)

func TestFailureReason(t *testing.T) {
	Convey("Given wrapped load errors", t, func() {
		cases := []struct {
			err  error
			want string
		}{
			{fmt.Errorf("%w: %w", ErrLoad, os.ErrNotExist), "not_found"},
			{fmt.Errorf("%w: %w", ErrLoad, source.ErrUnsupportedFormat), "unsupported_format"},
			{fmt.Errorf("%w: %w", ErrLoad, source.ErrMissingColumn), "missing_column"},
			{fmt.Errorf("%w: %w", ErrLoad, source.ErrEmptyDataset), "empty"},
			{fmt.Errorf("%w: %w", ErrLoad, source.ErrMalformed), "malformed"},
			{fmt.Errorf("%w: %w", ErrLoad, prepared.ErrPrepare), "prepare"},
			{ErrLoad, "other"},
		}

		Convey("Then each should map to its metric label", func() {
			for _, c := range cases {
				So(failureReason(c.err), ShouldEqual, c.want)
			}
		})
	})
}
