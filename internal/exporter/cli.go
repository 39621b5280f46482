// Package exporter renders dashboard charts and tables to files and the terminal.
package exporter

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	service "github.com/okian/hoopboard/internal/app"
	"github.com/okian/hoopboard/internal/config"
	"github.com/okian/hoopboard/internal/domain/stats"
	"github.com/okian/hoopboard/pkg/logger"
)

// AppName is the executable name shown in help output.
const AppName = "hoopboard-export"

const (
	dataFlagName     = "data"
	logLevelFlagName = "log-level"
)

func dataFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    dataFlagName,
		Aliases: []string{"d"},
		Usage:   "player table (.csv, .xlsx, .db/.sqlite); defaults to the configured data_path",
	}
}

// NewApp builds the export command line application.
func NewApp() *cli.App {
	return &cli.App{
		Name:  AppName,
		Usage: "export NBA dashboard charts and tables without starting the server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: logLevelFlagName, Value: "warn", Usage: "log verbosity: debug, info, warn, error"},
		},
		Before: func(cCtx *cli.Context) error {
			// stdout carries exports; logs go to stderr
			if err := logger.InitWithWriter(cCtx.App.ErrWriter); err != nil {
				return err
			}
			if err := logger.SetLevelString(cCtx.String(logLevelFlagName)); err != nil {
				return fmt.Errorf("%w: %w", ErrUsage, err)
			}
			return nil
		},
		Commands: []*cli.Command{
			chartsCommand(),
			workbookCommand(),
			summaryCommand(),
		},
	}
}

func chartsCommand() *cli.Command {
	return &cli.Command{
		Name:  "charts",
		Usage: "render every chart to <out>/<id>.png and/or .svg",
		Flags: []cli.Flag{
			dataFlag(),
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "charts", Usage: "output directory"},
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: FormatBoth, Usage: "png, svg or both"},
			&cli.IntFlag{Name: "workers", Usage: "parallel renders (default: number of CPUs)"},
			&cli.IntFlag{Name: "width", Usage: "image width in pixels"},
			&cli.IntFlag{Name: "height", Usage: "image height in pixels"},
		},
		Action: func(cCtx *cli.Context) error {
			formats, err := ParseFormats(cCtx.String("format"))
			if err != nil {
				return err
			}
			svc, err := load(cCtx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			paths, err := Charts(cCtx.Context, svc, ChartsConfig{
				OutDir:  cCtx.String("out"),
				Formats: formats,
				Workers: cCtx.Int("workers"),
				Width:   cCtx.Int("width"),
				Height:  cCtx.Int("height"),
			})
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cCtx.App.Writer, p)
			}
			return nil
		},
	}
}

func workbookCommand() *cli.Command {
	return &cli.Command{
		Name:  "workbook",
		Usage: "write the aggregate tables to an .xlsx workbook",
		Flags: []cli.Flag{
			dataFlag(),
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Value: "hoopboard.xlsx", Usage: "output file"},
		},
		Action: func(cCtx *cli.Context) error {
			svc, err := load(cCtx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			out := cCtx.String("out")
			if err := Workbook(svc.Snapshot(), out); err != nil {
				return err
			}
			fmt.Fprintln(cCtx.App.Writer, out)
			return nil
		},
	}
}

func summaryCommand() *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "print the team averages and rating interval counts",
		Flags: []cli.Flag{
			dataFlag(),
			&cli.BoolFlag{Name: "csv", Usage: "print the team averages as CSV instead"},
		},
		Action: func(cCtx *cli.Context) error {
			svc, err := load(cCtx)
			if err != nil {
				return err
			}
			defer svc.Stop()

			if cCtx.Bool("csv") {
				return stats.WriteTeamCSV(cCtx.App.Writer, svc.Snapshot().Teams())
			}
			return Summary(cCtx.App.Writer, svc.Snapshot())
		},
	}
}

// load reads the configuration, applies --data and prepares the dataset.
func load(cCtx *cli.Context) (*service.Service, error) {
	ctx := cCtx.Context
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	if data := cCtx.String(dataFlagName); data != "" {
		cfg.DataPath = data
	}

	opts, err := service.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	svc := service.New(append(opts, service.WithLogger(logger.Named("export")))...)
	if err := svc.Start(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}
