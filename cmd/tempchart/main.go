// Package main implements the temperature-chart command.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, os.Interrupt)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var confPath string

	root := &cobra.Command{
		Use:           "tempchart",
		Short:         "Collect hourly forecasts and chart daily average temperatures",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&confPath, "config", "", "path to the config file")

	root.AddCommand(
		newServeCmd(&confPath),
		newCollectCmd(&confPath),
		newAggregateCmd(&confPath),
		newRefreshCmd(&confPath),
		newRenderCmd(&confPath),
	)

	return root
}
