package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katiamach/temperature-chart/internal/views"
)

func newCollectCmd(confPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "collect",
		Short: "Fetch the hourly forecast and write it to the hourly CSV file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), *confPath)
			if err != nil {
				return err
			}
			defer a.close()

			n, err := a.service.Collect(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", n, a.cfg.HourlyPath())

			return nil
		},
	}
}

func newAggregateCmd(confPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "aggregate",
		Short: "Compute daily averages from the hourly CSV file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), *confPath)
			if err != nil {
				return err
			}
			defer a.close()

			ds, err := a.service.Aggregate(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d days to %s\n", len(ds), a.cfg.OutputPath())

			return nil
		},
	}
}

func newRefreshCmd(confPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Collect the forecast and aggregate it in one go",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), *confPath)
			if err != nil {
				return err
			}
			defer a.close()

			ds, err := a.service.Refresh(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d days to %s\n", len(ds), a.cfg.OutputPath())

			return nil
		},
	}
}

func newRenderCmd(confPath *string) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Load the daily averages and draw them as a PNG bar chart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), *confPath)
			if err != nil {
				return err
			}
			defer a.close()

			loader, err := a.newLoader()
			if err != nil {
				return err
			}

			img := views.NewImage(a.cfg.Loader.Target, a.renderer())
			if err := loader.LoadAndRender(cmd.Context(), img); err != nil {
				// the cause is already logged
				return errors.New(img.AlertMessage)
			}

			if err := os.WriteFile(out, img.Buffer.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote chart to %s\n", out)

			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "chart.png", "file the PNG chart is written to")

	return cmd
}
