package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/hoopboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8050")
				convey.So(cfg.DataPath, convey.ShouldEqual, "data.csv")
				convey.So(cfg.HistogramBins, convey.ShouldEqual, 20)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("HOOPBOARD_ADDR", ":8080")
			_ = os.Setenv("HOOPBOARD_DATA_PATH", "/srv/players.xlsx")
			_ = os.Setenv("HOOPBOARD_DEBUG", "true")
			_ = os.Setenv("HOOPBOARD_HISTOGRAM_BINS", "10")
			_ = os.Setenv("HOOPBOARD_GEO_SIZE_MAX", "25.5")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataPath, convey.ShouldEqual, "/srv/players.xlsx")
				convey.So(cfg.Debug, convey.ShouldBeTrue)
				convey.So(cfg.HistogramBins, convey.ShouldEqual, 10)
				convey.So(cfg.GeoSizeMax, convey.ShouldEqual, 25.5)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":9090"
data_path: "players.db"
data_table: "roster"
bucket_start: 60
bucket_end: 100
bucket_width: 10
page_title: "League Overview"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("HOOPBOARD_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DataPath, convey.ShouldEqual, "players.db")
				convey.So(cfg.DataTable, convey.ShouldEqual, "roster")
				convey.So(cfg.BucketStart, convey.ShouldEqual, 60)
				convey.So(cfg.BucketWidth, convey.ShouldEqual, 10)
				convey.So(cfg.PageTitle, convey.ShouldEqual, "League Overview")
				convey.So(cfg.HistogramBins, convey.ShouldEqual, 20) // From defaults
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			tmpFile := createTempConfigFile("addr: \":9090\"\nlog_level: warn\n")
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("HOOPBOARD_CONFIG", tmpFile)
			_ = os.Setenv("HOOPBOARD_ADDR", ":7070")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")    // Overridden by env
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn") // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("HOOPBOARD_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("HOOPBOARD_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("HOOPBOARD_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("HOOPBOARD_HISTOGRAM_BINS", "not_a_number")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an uneven bucket scheme", func() {
			_ = os.Setenv("HOOPBOARD_BUCKET_END", "99")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should reject the scheme", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"HOOPBOARD_CONFIG",
		"HOOPBOARD_ADDR",
		"HOOPBOARD_LOG_LEVEL",
		"HOOPBOARD_DEBUG",
		"HOOPBOARD_DATA_PATH",
		"HOOPBOARD_HISTOGRAM_BINS",
		"HOOPBOARD_GEO_SIZE_MAX",
		"HOOPBOARD_BUCKET_END",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "hoopboard-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}
	if err := tmpFile.Close(); err != nil {
		panic(err)
	}
	return tmpFile.Name()
}
