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

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	httpserver "review_analyzer/internal/adapters/http_server"
	"review_analyzer/internal/adapters/observability"
	"review_analyzer/internal/app"
	"review_analyzer/internal/domain"
	"review_analyzer/internal/shared"
	"review_analyzer/internal/storage/memory"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the review API",
		Long:  "Seed the in-memory review store and serve GET / and POST / over HTTP.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := shared.Load()
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}

	cmd.Flags().IntVar(&port, "port", 8000, "port to listen on (overrides PORT)")

	return cmd
}

func runServe(ctx context.Context, cfg shared.Config) error {
	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()

	locs := domain.NewLocationRegistry(cfg.Locations...)
	if locs.Len() == 0 {
		return errors.New("no locations configured")
	}

	scorer, closeScorer, err := buildScorer(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeScorer()

	store := memory.New()
	src, closeSrc, err := seedSource(cfg)
	if err != nil {
		return err
	}
	defer closeSrc()
	if src != nil {
		rep, err := app.NewSeedService(store, locs).Seed(ctx, src)
		if err != nil {
			return fmt.Errorf("seed reviews: %w", err)
		}
		log.Info().Str("source", cfg.SeedSource).Int("loaded", rep.Loaded).Int("skipped", rep.Skipped).Msg("reviews seeded")
	}

	q := app.NewQueryService(store, scorer, locs,
		app.WithScoreWorkers(cfg.ScoreWorkers),
		app.WithEndOfDayInclusive(cfg.EndOfDayInclusive))
	s := app.NewSubmissionService(store, scorer, locs, clockwork.NewRealClock())

	h := &httpserver.Handlers{Q: q, S: s, Locations: locs}
	if cfg.SubmitRPS > 0 {
		h.SubmitLimiter = rate.NewLimiter(rate.Limit(cfg.SubmitRPS), max(cfg.SubmitBurst, 1))
	}

	srv := httpserver.New(cfg.RequestTimeout)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(h)

	// started last so a failed setup leaves no listener behind
	metricsSrv := observability.Serve(cfg.MetricsAddr, reg)

	addr := fmt.Sprintf(":%d", cfg.Port)
	httpSrv := &http.Server{Addr: addr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("API listening")
		errc <- httpSrv.ListenAndServe()
	}()

	var serveErr error
	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr = fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}
	return errors.Join(serveErr, shutdown(httpSrv, metricsSrv))
}

// shutdown drains every non-nil server within one shared deadline.
func shutdown(servers ...*http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	for _, s := range servers {
		if s == nil {
			continue
		}
		if err := s.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown %s: %w", s.Addr, err))
		}
	}
	return errors.Join(errs...)
}
