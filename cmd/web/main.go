// cmd/web/main.go
//
// HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load the jail-wide process env file, when present (APP_ENV, APP_ROOT,
//     APP_CONFIG_PATTERN, and CFG_ overrides may live there).
//
//  2. Install the bootstrap console logger so resolution is visible.
//
//  3. Resolve the config file from the pattern and load it once.  Any of
//     "no file", "bad YAML", or "wrong type" aborts startup here.
//
//  4. Swap in the rotating file logger configured by the `log` section.
//
//  5. Build the router (hello, docs, /metrics) and serve until SIGINT or
//     SIGTERM, then shut down gracefully.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yanizio/envconf/internal/config"
	"github.com/yanizio/envconf/internal/docs"
	"github.com/yanizio/envconf/internal/envpath"
	"github.com/yanizio/envconf/internal/logger"
	"github.com/yanizio/envconf/internal/server"
)

const (
	serverEnvPath   = "/usr/local/etc/envconf/global.env"
	envRoot         = "APP_ROOT"
	envPattern      = "APP_CONFIG_PATTERN"
	overlayPrefix   = "CFG_"
	shutdownTimeout = 30 * time.Second
)

// loadEnv loads the jail-wide env file when it exists.  Values already in
// the environment win.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
	}
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// rootDir resolves APP_ROOT or climbs from the cwd until a directory holds
// one of the pattern's candidates.  The fallback name takes no part in the
// climb, so a stray dotenv file in an ancestor is never picked as root.
// Falls back to the cwd, where the resolver reports every name it tried.
func rootDir(pattern []envpath.Segment) string {
	if r := os.Getenv(envRoot); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	names := envpath.Resolver{}.Candidates(pattern)
	for dir := wd; ; {
		for _, n := range names {
			if fi, err := os.Stat(filepath.Join(dir, n)); err == nil && !fi.IsDir() {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}
	return wd
}

func pattern() ([]envpath.Segment, error) {
	if p := os.Getenv(envPattern); p != "" {
		return envpath.ParsePattern(p)
	}
	return envpath.ParsePattern(envpath.DefaultPattern)
}

func init() { loadEnv() }

func main() {
	boot := logger.Bootstrap()

	//
	// ── 1.  Resolve + load config ───────────────────────────────────────
	//
	pat, err := pattern()
	if err != nil {
		boot.Fatalw("config pattern invalid", "err", err)
	}
	root := rootDir(pat)
	env := envpath.EnvName()

	store := config.NewStore(
		config.ResolvedLocator(root, pat, false),
		config.WithEnvOverlay(overlayPrefix),
	)
	cfg, err := config.Load(store, env)
	if err != nil {
		boot.Fatalw("config load failed", "root", root, "pattern", envpath.FormatPattern(pat), "err", err)
	}

	//
	// ── 2.  File logger ─────────────────────────────────────────────────
	//
	log, err := logger.New(root, cfg.Log, runningInTTY())
	if err != nil {
		boot.Fatalw("start logger", "err", err)
	}
	defer func() { _ = log.Sync() }()

	//
	// ── 3.  Router + server ─────────────────────────────────────────────
	//
	handler, err := server.Router(cfg, docs.NewRegistry())
	if err != nil {
		log.Fatalw("build router", "err", err)
	}
	srv := server.New(server.Addr(cfg), handler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infow("listening", "addr", srv.Addr, "env", cfg.Env, "app", cfg.App.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Infow("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		zap.S().Errorw("http server", "err", err)
		_ = log.Sync()
		os.Exit(1)
	}
}
