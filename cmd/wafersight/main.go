package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wafersight/adapters/excel"
	"wafersight/app"
	"wafersight/domain/fallout"
	"wafersight/domain/wafer"
	"wafersight/internal/config"
	"wafersight/internal/errlog"
	"wafersight/internal/errors"
	"wafersight/internal/logging"
	"wafersight/ports"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := logging.NewDefaultLogger()
	elog := errlog.New(cfg.Logs.Dir, cfg.Logs.RetentionDays)
	defer elog.Close()
	if err := elog.CleanupOldLogs(); err != nil {
		logger.Warn("log cleanup failed: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:   "wafersight",
		Short: "Yield fallout aggregation and wafermap rendering for per-die test data",
	}
	rootCmd.AddCommand(
		newConvertCmd(logger),
		newFalloutCmd(cfg, logger),
		newCheckCmd(cfg, logger),
		newWafermapCmd(cfg, logger),
		newRunCmd(cfg, logger),
	)

	if err := rootCmd.Execute(); err != nil {
		if logErr := elog.LogError(err.Error()); logErr != nil {
			logger.Warn("error log write failed: %v", logErr)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newConvertCmd(logger *logging.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <file.csv>",
		Short: "Convert a CSV file to an xlsx workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := excel.ConvertCSV(args[0])
			if err != nil {
				return err
			}
			logger.Info("conversion complete: %s", out)
			return nil
		},
	}
}

func newFalloutCmd(cfg *config.Config, logger *logging.Logger) *cobra.Command {
	var mark string
	cmd := &cobra.Command{
		Use:   "fallout [input]",
		Short: "Generate the fallout table for a classification mark",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ds, writer, err := openDataset(ctx, cfg, args)
			if err != nil {
				return err
			}
			defer writer.Close()
			forwardWarnings(logger, ds)

			svc := &app.FalloutService{Reporter: logger, Sink: writer}
			report, summary, err := svc.Compute(ds, mark)
			if err != nil {
				return err
			}
			if err := svc.Publish(ctx, report, summary); err != nil {
				return err
			}
			return writer.Flush(ctx)
		},
	}
	cmd.Flags().StringVar(&mark, "mark", "", "C1_MARK value to filter on")
	return cmd
}

func newCheckCmd(cfg *config.Config, logger *logging.Logger) *cobra.Command {
	var mark string
	cmd := &cobra.Command{
		Use:   "check [input] [end-test-no]",
		Short: "Check an End Test No. against the reference table",
		Long: `Check an End Test No. against the reference specification table embedded
in the dataset. Without an explicit code, the highest-fallout end test is
checked.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ds, writer, err := openDataset(ctx, cfg, args[:min(len(args), 1)])
			if err != nil {
				return err
			}
			defer writer.Close()
			forwardWarnings(logger, ds)

			code := ""
			if len(args) > 1 {
				code = args[1]
			} else {
				report := fallout.Aggregate(ds.Records, ds.Theoretical, ds.HasTheoretical, fallout.Options{Mark: mark})
				top, ok := report.Top()
				if !ok {
					return errors.InvalidInput("no end test codes present, nothing to check")
				}
				code = top
			}

			svc := &app.ReferenceService{Reporter: logger, Sink: writer}
			if _, _, err := svc.Check(ctx, ds, code); err != nil {
				return err
			}
			return writer.Flush(ctx)
		},
	}
	cmd.Flags().StringVar(&mark, "mark", "", "C1_MARK filter when deriving the top end test")
	return cmd
}

func newWafermapCmd(cfg *config.Config, logger *logging.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "wafermap [input]",
		Short: "Render the colorized wafermap grid",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ds, writer, err := openDataset(ctx, cfg, args)
			if err != nil {
				return err
			}
			defer writer.Close()
			forwardWarnings(logger, ds)

			svc := &app.WafermapService{Reporter: logger, Sink: writer}
			grid, err := svc.Compute(ds)
			if err != nil {
				return err
			}
			if err := svc.Publish(ctx, grid); err != nil {
				return err
			}
			return writer.Flush(ctx)
		},
	}
}

func newRunCmd(cfg *config.Config, logger *logging.Logger) *cobra.Command {
	var mark string
	cmd := &cobra.Command{
		Use:   "run [input]",
		Short: "Run the full workflow: fallout, reference check and wafermap",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path, err := resolveInput(cfg, args)
			if err != nil {
				return err
			}
			writer, err := excel.OpenWriter(path)
			if err != nil {
				return err
			}
			defer writer.Close()

			wf := &app.Workflow{
				Source:   excel.NewGridReader(path),
				Sink:     writer,
				Reporter: logger,
			}
			return wf.Run(ctx, mark)
		},
	}
	cmd.Flags().StringVar(&mark, "mark", "", "C1_MARK value to filter the fallout on")
	return cmd
}

// resolveInput picks the input path from args or config and converts CSV
// input to a workbook so the artifact writes have somewhere to land.
func resolveInput(cfg *config.Config, args []string) (string, error) {
	path := cfg.Paths.Input
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return "", errors.ConfigInvalid("no input file; pass one or set WAFERSIGHT_INPUT")
	}
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return excel.ConvertCSV(path)
	}
	return path, nil
}

func openDataset(ctx context.Context, cfg *config.Config, args []string) (*wafer.Dataset, *excel.Writer, error) {
	path, err := resolveInput(cfg, args)
	if err != nil {
		return nil, nil, err
	}
	grid, err := excel.NewGridReader(path).ReadGrid(ctx)
	if err != nil {
		return nil, nil, err
	}
	ds, err := wafer.ParseDataset(grid)
	if err != nil {
		return nil, nil, err
	}
	writer, err := excel.OpenWriter(path)
	if err != nil {
		return nil, nil, err
	}
	return ds, writer, nil
}

func forwardWarnings(r ports.Reporter, ds *wafer.Dataset) {
	for _, w := range ds.Warnings {
		ports.Warnf(r, "%s", w)
	}
}
