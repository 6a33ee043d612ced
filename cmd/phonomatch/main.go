// Command phonomatch builds a fuzzy phonetic matcher over a list of target
// phrases and answers queries from the command line or stdin.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"golang.org/x/sync/errgroup"

	"github.com/MrWong99/phonomatch/internal/config"
	"github.com/MrWong99/phonomatch/internal/observe"
	"github.com/MrWong99/phonomatch/pkg/match"
	"github.com/MrWong99/phonomatch/pkg/pronounce"
	"github.com/MrWong99/phonomatch/pkg/pronounce/dict"
	"github.com/MrWong99/phonomatch/pkg/pronounce/goruut"
	"github.com/MrWong99/phonomatch/pkg/pronounce/pgdict"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "phonomatch: %v\n", err)
		return 1
	}

	slog.SetDefault(newLogger(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Observability (optional).
	metrics := observe.DefaultMetrics()
	if cfg.MetricsAddr != "" {
		shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{})
		if err != nil {
			slog.Error("failed to initialise telemetry", "err", err)
			return 1
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				slog.Warn("telemetry shutdown", "err", err)
			}
		}()
		metrics, err = observe.NewMetrics(otel.GetMeterProvider())
		if err != nil {
			slog.Error("failed to create metrics", "err", err)
			return 1
		}
		go serveMetrics(ctx, cfg.MetricsAddr, metrics)
	}

	reg := config.NewRegistry()
	registerBuiltinPronouncers(reg)

	eng := &engine{reg: reg, metrics: metrics}
	if err := eng.rebuild(ctx, cfg); err != nil {
		slog.Error("failed to build matcher", "err", err)
		return 1
	}

	if queries := flag.Args(); len(queries) > 0 {
		ok := true
		for _, q := range queries {
			if !eng.query(ctx, q) {
				ok = false
			}
		}
		if !ok {
			return 1
		}
		return 0
	}

	// Interactive mode, one query per line. Config edits are picked up
	// without a restart: the log level in place, everything else through a
	// matcher rebuild.
	watcher, err := config.NewWatcher(*configPath, func(old, new *config.Config) {
		handleConfigChange(ctx, eng, old, new)
	})
	if err != nil {
		slog.Error("failed to watch config", "err", err)
		return 1
	}
	defer watcher.Stop()

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		if q := scanner.Text(); q != "" {
			eng.query(ctx, q)
		}
	}
	if err := scanner.Err(); err != nil {
		slog.Error("reading stdin", "err", err)
		return 1
	}
	return 0
}

// handleConfigChange applies a reloaded config. Rebuild failures keep the
// previous matcher serving.
func handleConfigChange(ctx context.Context, eng *engine, old, new *config.Config) {
	d := config.Diff(old, new)
	if d.LogLevelChanged {
		slog.SetDefault(newLogger(d.NewLogLevel))
		slog.Info("log level changed", "level", d.NewLogLevel)
	}
	if !d.RebuildRequired() {
		return
	}
	if err := eng.rebuild(ctx, new); err != nil {
		slog.Error("config reload: rebuild failed, keeping previous matcher", "err", err)
	}
}

// answerer ranks a query against the target list.
type answerer func(query string, k int, limit float64) ([]match.Match[string], error)

// engine holds the live matcher and the config it was built from. rebuild
// swaps both atomically so queries racing a config reload see a consistent
// pair.
type engine struct {
	reg     *config.Registry
	metrics *observe.Metrics

	mu      sync.Mutex
	cfg     *config.Config
	answer  answerer
	indexed int
}

// rebuild constructs the pronouncer and matcher for cfg and swaps them in.
// On error the engine keeps serving its previous state.
func (e *engine) rebuild(ctx context.Context, cfg *config.Config) error {
	pronouncer, err := e.reg.Create(ctx, cfg.Pronouncer)
	if err != nil {
		return fmt.Errorf("create pronouncer %q: %w", cfg.Pronouncer.Kind, err)
	}
	cached := pronounce.NewCached(pronouncer)

	targets, err := config.LoadTargets(cfg.TargetsFile)
	if err != nil {
		return err
	}
	if cfg.Matcher.Kind != config.MatcherString {
		if err := warmCache(ctx, cached, targets); err != nil {
			e.metrics.RecordPronounceError(ctx, "build")
			return fmt.Errorf("pronounce targets: %w", err)
		}
	}

	start := time.Now()
	answer, err := buildMatcher(cfg.Matcher, targets, cached)
	if err != nil {
		return err
	}
	e.metrics.BuildDuration.Record(ctx, time.Since(start).Seconds())

	e.mu.Lock()
	e.metrics.IndexSize.Add(ctx, int64(len(targets)-e.indexed))
	e.cfg = cfg
	e.answer = answer
	e.indexed = len(targets)
	e.mu.Unlock()

	slog.Info("matcher ready",
		"kind", cfg.Matcher.Kind,
		"targets", len(targets),
		"build_time", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// query runs one query against the current matcher and prints the matches.
// Returns false when the query could not be answered.
func (e *engine) query(ctx context.Context, query string) bool {
	e.mu.Lock()
	cfg, answer := e.cfg, e.answer
	e.mu.Unlock()

	start := time.Now()
	matches, err := answer(query, cfg.Matcher.MaxReturns, cfg.Matcher.FindThreshold)
	elapsed := time.Since(start)
	if err != nil {
		e.metrics.RecordQuery(ctx, string(cfg.Matcher.Kind), "error", elapsed.Seconds())
		slog.Error("query failed", "query", query, "err", err)
		return false
	}

	status := "match"
	if len(matches) == 0 {
		status = "no_match"
	}
	e.metrics.RecordQuery(ctx, string(cfg.Matcher.Kind), status, elapsed.Seconds())

	if len(matches) == 0 {
		fmt.Printf("%s: no match\n", query)
		return true
	}
	for _, m := range matches {
		fmt.Printf("%s: %s (distance %.4f)\n", query, m.Element, m.Distance)
	}
	return true
}

// buildMatcher constructs the configured matcher over the target phrases.
func buildMatcher(cfg config.MatcherConfig, targets []string, pronouncer pronounce.Pronouncer) (answerer, error) {
	identity := func(s string) string { return s }

	switch cfg.Kind {
	case config.MatcherString:
		m := match.NewString(targets, identity, cfg.Accelerated)
		return m.KNearestWithin, nil
	case config.MatcherPhonetic:
		m, err := match.NewPhonetic(targets, identity, pronouncer, cfg.Accelerated)
		if err != nil {
			return nil, err
		}
		return m.KNearestWithin, nil
	case config.MatcherHybrid:
		m, err := match.NewHybrid(targets, cfg.PhoneticWeight, identity, pronouncer, cfg.Accelerated)
		if err != nil {
			return nil, err
		}
		return m.KNearestWithin, nil
	}
	return nil, fmt.Errorf("unknown matcher kind %q", cfg.Kind)
}

// warmCache pronounces every target concurrently so the matcher build hits
// the cache instead of the backing pronouncer.
func warmCache(ctx context.Context, cached *pronounce.Cached, targets []string) error {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, target := range targets {
		target := target
		g.Go(func() error {
			_, err := cached.Pronounce(target)
			return err
		})
	}
	return g.Wait()
}

// registerBuiltinPronouncers wires the pronouncer implementations shipped
// with the tool into the registry.
func registerBuiltinPronouncers(reg *config.Registry) {
	reg.Register(config.PronouncerDict, func(_ context.Context, cfg config.PronouncerConfig) (pronounce.Pronouncer, error) {
		return dict.LoadFile(cfg.DictPath)
	})
	reg.Register(config.PronouncerGoruut, func(_ context.Context, cfg config.PronouncerConfig) (pronounce.Pronouncer, error) {
		language := cfg.Language
		if language == "" {
			language = "English"
		}
		return goruut.NewLanguage(language), nil
	})
	reg.Register(config.PronouncerPgDict, func(ctx context.Context, cfg config.PronouncerConfig) (pronounce.Pronouncer, error) {
		pool, err := pgdict.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return pgdict.New(pool).Pronouncer(ctx), nil
	})
}

// serveMetrics exposes the Prometheus scrape endpoint until ctx is done.
func serveMetrics(ctx context.Context, addr string, metrics *observe.Metrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", observe.Middleware(metrics)(promhttp.Handler()))
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("metrics endpoint listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("metrics server", "err", err)
	}
}

// newLogger builds the default text logger at the configured level.
func newLogger(level config.LogLevel) *slog.Logger {
	var l slog.Level
	switch level {
	case config.LogDebug:
		l = slog.LevelDebug
	case config.LogWarn:
		l = slog.LevelWarn
	case config.LogError:
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
