package main

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/spf13/cobra"

	"github.com/katiamach/temperature-chart/internal/api"
	"github.com/katiamach/temperature-chart/internal/transport/rest/handler"
)

const refreshJobName = "temperature_refresh_job"

func newServeCmd(confPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the chart page, the chart image and the averages API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, *confPath)
			if err != nil {
				return err
			}
			defer a.close()

			loader, err := a.newLoader()
			if err != nil {
				return err
			}

			scheduler, err := a.startRefresh(ctx, a.cfg.Schedule.Refresh)
			if err != nil {
				return err
			}
			defer func() {
				if err := scheduler.Shutdown(); err != nil {
					a.log.WithError(err).Error("failed to shut down scheduler")
				}
			}()

			server := handler.NewTemperatureServer(a.service, loader, a.renderer(), handler.PageSettings{
				Lang:   a.cfg.Locale,
				Title:  a.pageTitle(),
				Target: a.cfg.Loader.Target,
			})

			a.log.WithField("version", version).WithField("commit", commit).Info("starting temperature chart service")
			if err := api.RunAPI(ctx, a.cfg, server, a.metrics); err != nil {
				return fmt.Errorf("failed to run temperature chart api: %w", err)
			}
			a.log.Info("shutting down temperature chart service")

			return nil
		},
	}
}

// startRefresh schedules the refresh pipeline every interval. A zero interval schedules
// nothing.
func (a *app) startRefresh(ctx context.Context, interval time.Duration) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	if interval > 0 {
		_, err = scheduler.NewJob(
			gocron.DurationJob(interval),
			gocron.NewTask(a.refresh),
			gocron.WithContext(ctx),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
			gocron.WithName(refreshJobName),
			gocron.WithStartAt(gocron.WithStartImmediately()),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", refreshJobName, err)
		}
		a.log.WithField("interval", interval.String()).Info("scheduled temperature refresh")
	}

	scheduler.Start()
	return scheduler, nil
}

func (a *app) refresh(ctx context.Context) {
	ds, err := a.service.Refresh(ctx)
	if err != nil {
		a.log.WithError(err).Error("failed to refresh temperature data")
		return
	}
	a.log.WithField("days", len(ds)).Info("refreshed temperature data")
}
