// Package app wires configuration, logging, metrics, the store and the
// answer generator together and runs the interactive front end until the
// user exits or the process is signalled.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/docqa/internal/answer"
	"github.com/dmitrijs2005/docqa/internal/cli"
	"github.com/dmitrijs2005/docqa/internal/config"
	"github.com/dmitrijs2005/docqa/internal/logging"
	"github.com/dmitrijs2005/docqa/internal/metrics"
	"github.com/dmitrijs2005/docqa/internal/store"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	metrics *metrics.Metrics
	store   *store.Store
	answer  answer.Func
	in      io.Reader
	out     io.Writer
}

// NewApp opens the store described by c. Logs go to stderr so they do not
// interleave with the REPL on stdout.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(logging.Options{
		Level:  c.LogLevel,
		Format: c.LogFormat,
		Output: os.Stderr,
	})
	m := metrics.NewMetrics()

	s, err := store.Open(ctx, c, logger, m)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	generate := answer.Func(answer.Unavailable)
	if c.GenAIAPIKey != "" {
		g, err := answer.NewGenAI(ctx, c.GenAIAPIKey, c.GenAIModel, c.AnswerTimeout)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		generate = g.Answer
	} else {
		logger.Warn(ctx, "no GenAI API key configured, questions cannot be answered")
	}

	return &App{
		config:  c,
		logger:  logger,
		metrics: m,
		store:   s,
		answer:  generate,
		in:      os.Stdin,
		out:     os.Stdout,
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run blocks until the REPL ends or ctx is cancelled, then closes the store.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "backend", app.config.StorageBackend)
	app.initSignalHandler(ctx, cancelFunc)

	repl := cli.NewApp(app.store, app.answer, app.metrics, app.logger, app.config.HistoryLimit, app.in, app.out)

	done := make(chan struct{})
	go func() {
		defer close(done)
		repl.Run(ctx)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		app.logger.Info(ctx, "interrupted")
	}

	if err := app.store.Close(); err != nil {
		app.logger.Error(ctx, "store close failed", "error", err)
	}
}
