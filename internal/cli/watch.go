package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/ritual/internal/engine"
)

// WatchOptions holds flags for the watch command.
type WatchOptions struct {
	*RootOptions
	Interval    time.Duration
	MetricsAddr string
	Count       int
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the due routine and roll over at midnight",
		Long: `Print the due routine and its countdown on every refresh until
interrupted. Each refresh reloads state written by other ritual commands
and clears both routines' check marks once the calendar day changes.

With --metrics-addr (or metrics.addr in the config) the routine and streak
counters are served at /metrics.

Example:
  ritual watch
  ritual watch --interval 1m --metrics-addr 127.0.0.1:9464`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(opts, cmd)
		},
	}

	cmd.Flags().DurationVar(&opts.Interval, "interval", 0, "refresh interval (default from config, 30s)")
	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	cmd.Flags().IntVar(&opts.Count, "count", 0, "stop after this many refreshes (0 runs until interrupted)")

	return cmd
}

func runWatch(opts *WatchOptions, cmd *cobra.Command) error {
	s, err := openSession(cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer s.Close()

	interval := s.cfg.Watch.Interval
	if opts.Interval > 0 {
		interval = opts.Interval
	}
	addr := s.cfg.Metrics.Addr
	if opts.MetricsAddr != "" {
		addr = opts.MetricsAddr
	}

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if addr != "" {
		srv := &http.Server{
			Addr:              addr,
			Handler:           metricsHandler(s.registry),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			s.logger.Info("Serving metrics", zap.String("addr", addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("Metrics server failed", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	unsubscribe := s.engine.Subscribe(func(snap engine.Snapshot) {
		s.logger.Debug("State refreshed",
			zap.Int("morning_done", snap.Morning.CompletedCount()),
			zap.Int("night_done", snap.Night.CompletedCount()),
			zap.Int("current_streak", snap.Streak.CurrentStreak),
		)
	})
	defer unsubscribe()

	s.logger.Info("Watching routines", zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastDay := ""
	for n := 1; ; n++ {
		var view TickView
		view, lastDay, err = tick(ctx, s.engine, lastDay)
		if err != nil {
			return err
		}
		if err := s.out.Success(view); err != nil {
			return WrapExitError(ExitFailure, "failed to write output", err)
		}
		if opts.Count > 0 && n >= opts.Count {
			return nil
		}

		select {
		case <-ctx.Done():
			s.logger.Info("Watch stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// tick reloads state, rolls the day over if needed, and describes the due
// routine.
func tick(ctx context.Context, e *engine.Engine, lastDay string) (TickView, string, error) {
	if err := e.Load(ctx); err != nil {
		return TickView{}, lastDay, wrapEngineError("refresh failed", err)
	}
	day, rolled, err := e.Rollover(ctx, lastDay)
	if err != nil {
		return TickView{}, lastDay, wrapEngineError("rollover failed", err)
	}

	active, err := e.ActiveRoutineType()
	if err != nil {
		return TickView{}, day, wrapEngineError("active routine", err)
	}
	rv, err := routineView(e, active)
	if err != nil {
		return TickView{}, day, err
	}

	now := e.Now()
	return TickView{
		Time:    now.Format(time.RFC3339),
		Day:     day,
		Rolled:  rolled,
		Routine: rv,
		Streak:  e.Streak().CurrentStreak,
	}, day, nil
}

// TickView is one watch refresh.
type TickView struct {
	Time    string      `json:"time"`
	Day     string      `json:"day"`
	Rolled  bool        `json:"rolled"`
	Routine RoutineView `json:"routine"`
	Streak  int         `json:"currentStreak"`
}

func (v TickView) String() string {
	line := fmt.Sprintf("%s  %s %s  %d/%d  in %s  streak %d",
		v.Day, v.Routine.Type, v.Routine.State,
		v.Routine.Completed, v.Routine.Total, v.Routine.Countdown, v.Streak)
	if v.Rolled {
		line += "  (new day, habits reset)"
	}
	return line
}

func metricsHandler(reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	return mux
}
