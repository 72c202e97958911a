package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/automaxprocs/maxprocs"

	wemark "github.com/alekzhu/wemark"
	"github.com/alekzhu/wemark/internal/auth"
	"github.com/alekzhu/wemark/internal/config"
	"github.com/alekzhu/wemark/internal/server"
	"github.com/alekzhu/wemark/internal/themestore"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	flags, err := parseFlags(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Configure GOMAXPROCS with conditional logging.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if flags.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(log.Printf))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	if err := run(flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(flags *serverFlags) error {
	logger := log.New(os.Stderr, "", log.LstdFlags)

	cfg, err := config.Load(flags.config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flags.listen != "" {
		cfg.ListenAddr = flags.listen
	}
	if flags.dataDir != "" {
		cfg.DataDir = flags.dataDir
	}
	if flags.apiKeys != "" {
		cfg.APIKeysFile = flags.apiKeys
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := themestore.New(filepath.Join(cfg.DataDir, "themes"))
	if err != nil {
		return fmt.Errorf("opening theme store: %w", err)
	}

	keys := auth.NewKeySet(cfg.APIKeysFile, logger)
	keys.Start(ctx, cfg.ReloadInterval())
	if cfg.APIKeysFile == "" {
		logger.Printf("[server] no API key file configured, accepting any key")
	}

	poolSize := resolvePoolSize(cfg.Workers)
	pool, err := NewRendererPool(poolSize,
		wemark.WithThemeLoader(server.NewThemeSource(store)),
		wemark.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("creating renderer pool: %w", err)
	}
	if flags.verbose {
		logger.Printf("[server] renderer pool size: %d", pool.Size())
	}

	mux := http.NewServeMux()
	srv := server.NewServer(pool, store, keys, logger)
	srv.Register(mux)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("[server] wemarkd %s listening on %s", Version, cfg.ListenAddr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Printf("[server] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
