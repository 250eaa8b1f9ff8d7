package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/docqa/internal/answer"
	"github.com/dmitrijs2005/docqa/internal/logging"
	"github.com/dmitrijs2005/docqa/internal/metrics"
	"github.com/dmitrijs2005/docqa/internal/models"
	"github.com/dmitrijs2005/docqa/internal/store"
)

// Facade is the part of store.Store the REPL uses.
type Facade interface {
	Register(ctx context.Context, username, credential string, lang models.Language) (string, error)
	Authenticate(ctx context.Context, username, credential string) (string, models.Language, error)
	UpdateLanguage(ctx context.Context, username string, lang models.Language) error
	Upload(ctx context.Context, userID, name, text string) (models.Document, error)
	ListDocuments(userID string) []models.Document
	RecentHistory(userID string, n int) []models.InteractionRecord
	AskAndRecord(ctx context.Context, userID, question string, lang models.Language, generate answer.Func) (string, error)
	Stats() store.Stats
}

// App holds the REPL session.
type App struct {
	store        Facade
	answer       answer.Func
	metrics      *metrics.Metrics
	logger       logging.Logger
	historyLimit int

	reader *bufio.Reader
	out    io.Writer

	userID   string
	userName string
	lang     models.Language
}

// NewApp builds an App reading commands from in and writing to out.
func NewApp(s Facade, generate answer.Func, m *metrics.Metrics, logger logging.Logger, historyLimit int, in io.Reader, out io.Writer) *App {
	if generate == nil {
		generate = answer.Unavailable
	}
	return &App{
		store:        s,
		answer:       generate,
		metrics:      m,
		logger:       logger,
		historyLimit: historyLimit,
		reader:       bufio.NewReader(in),
		out:          out,
	}
}

// Run reads commands until EOF, "exit" or ctx is done.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "docqa - ask questions about your documents (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.userID != ""
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	return fmt.Sprintf("(%s %s)", a.userName, a.lang)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) requireLogin() bool {
	if !a.isLoggedIn() {
		a.println("Please login first.")
		return false
	}
	return true
}
