package service_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	service "github.com/okian/hoopboard/internal/app"
	"github.com/okian/hoopboard/internal/config"
	"github.com/okian/hoopboard/internal/domain/bucket"
	"github.com/okian/hoopboard/internal/domain/chart"
)

func TestOptionsFromConfig(t *testing.T) {
	Convey("Given the default configuration pointed at a CSV file", t, func() {
		cfg := config.New(context.Background())
		cfg.DataPath = writeCSV(t, players)
		cfg.GeoSizeMax = 10

		Convey("When building a service from it", func() {
			opts, err := service.OptionsFromConfig(cfg)
			So(err, ShouldBeNil)
			svc := service.New(opts...)
			defer svc.Stop()
			So(svc.Start(context.Background()), ShouldBeNil)

			Convey("Then the configured values should be applied", func() {
				So(svc.GetStats()["dataPath"], ShouldEqual, cfg.DataPath)
				spec, err := svc.Render(context.Background(), chart.IDCountryMap)
				So(err, ShouldBeNil)
				So(spec.SizeMax, ShouldEqual, 10)
				So(svc.Snapshot().Scheme(), ShouldResemble, bucket.Default)
			})
		})

		Convey("When the rating intervals are inconsistent", func() {
			cfg.BucketWidth = 6
			_, err := service.OptionsFromConfig(cfg)

			Convey("Then it should fail with ErrInvalidScheme", func() {
				So(errors.Is(err, bucket.ErrInvalidScheme), ShouldBeTrue)
			})
		})
	})
}
