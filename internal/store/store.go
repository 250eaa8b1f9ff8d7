// Package store is the single entry point the application uses. It wires the
// account registry, the document ledger and the interaction log over one
// backend and enforces the rules that span them: documents and interactions
// belong to registered users, and a recorded answer references exactly the
// document versions it was generated from.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/docqa/internal/answer"
	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/dmitrijs2005/docqa/internal/config"
	"github.com/dmitrijs2005/docqa/internal/cryptox"
	"github.com/dmitrijs2005/docqa/internal/datastore"
	"github.com/dmitrijs2005/docqa/internal/logging"
	"github.com/dmitrijs2005/docqa/internal/metrics"
	"github.com/dmitrijs2005/docqa/internal/models"
	"github.com/dmitrijs2005/docqa/internal/services"
	"golang.org/x/sync/errgroup"
)

// Stats are the collection sizes.
type Stats struct {
	Users        int
	Documents    int
	Interactions int
}

// Store composes the three services. It holds no lock of its own.
type Store struct {
	data     *datastore.Store
	accounts *services.AccountRegistry
	docs     *services.DocumentLedger
	log      *services.InteractionLog
	logger   logging.Logger
	metrics  *metrics.Metrics
	maxChars int
}

// Open builds the configured backend and loads all datasets. Corrupt data in
// any dataset fails the open.
func Open(ctx context.Context, cfg *config.Config, logger logging.Logger, m *metrics.Metrics) (*Store, error) {
	scheme, err := cryptox.NewScheme(cfg.CredentialScheme)
	if err != nil {
		return nil, err
	}

	backend, err := datastore.NewBackend(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("storage backend: %w", err)
	}

	s, err := OpenWithBackend(ctx, backend, scheme, cfg.MaxCharsPerDoc, logger, m)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	return s, nil
}

// OpenWithBackend loads all datasets from backend.
func OpenWithBackend(ctx context.Context, backend datastore.Backend, scheme cryptox.Scheme, maxCharsPerDoc int, logger logging.Logger, m *metrics.Metrics) (*Store, error) {
	data := datastore.NewStore(backend, logger, m)

	users := datastore.NewDataset(data, common.DatasetUsers, func() models.Users { return models.Users{} })
	docs := datastore.NewDataset(data, common.DatasetDocuments, func() models.Documents { return models.Documents{} })
	chat := datastore.NewDataset(data, common.DatasetInteractions, func() models.Interactions { return models.Interactions{} })

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return users.Open(gctx) })
	g.Go(func() error { return docs.Open(gctx) })
	g.Go(func() error { return chat.Open(gctx) })
	if err := g.Wait(); err != nil {
		logger.Error(ctx, "store open failed", "error", err)
		return nil, err
	}

	s := &Store{
		data:     data,
		accounts: services.NewAccountRegistry(users, scheme, logger, m),
		docs:     services.NewDocumentLedger(docs, logger, m),
		log:      services.NewInteractionLog(chat, logger),
		logger:   logger,
		metrics:  m,
		maxChars: maxCharsPerDoc,
	}
	s.refreshCounts()

	st := s.Stats()
	logger.Info(ctx, "store opened", "credential_scheme", scheme.Name(), "users", st.Users, "documents", st.Documents, "interactions", st.Interactions)
	return s, nil
}

// Register creates an account and returns its id.
func (s *Store) Register(ctx context.Context, username, credential string, lang models.Language) (string, error) {
	id, err := s.accounts.Register(ctx, username, credential, lang)
	if err != nil {
		return "", err
	}
	s.refreshCounts()
	return id, nil
}

// Authenticate returns the id and preferred language of a matching account.
func (s *Store) Authenticate(ctx context.Context, username, credential string) (string, models.Language, error) {
	return s.accounts.Authenticate(ctx, username, credential)
}

// UpdateLanguage changes the preferred language of username.
func (s *Store) UpdateLanguage(ctx context.Context, username string, lang models.Language) error {
	return s.accounts.UpdateLanguage(ctx, username, lang)
}

// User returns the registered user with the given id.
func (s *Store) User(userID string) (models.User, bool) {
	return s.accounts.Lookup(userID)
}

// Upload stores text as the latest version of the user's document name.
func (s *Store) Upload(ctx context.Context, userID, name, text string) (models.Document, error) {
	if _, ok := s.accounts.Lookup(userID); !ok {
		return models.Document{}, common.ErrUnknownUser
	}

	doc, err := s.docs.Upsert(ctx, userID, name, text)
	if err != nil {
		return models.Document{}, err
	}
	s.refreshCounts()
	return doc, nil
}

// ListDocuments returns the user's documents, first uploaded first.
func (s *Store) ListDocuments(userID string) []models.Document {
	return s.docs.ListDocuments(userID)
}

// History returns the user's interactions, oldest first.
func (s *Store) History(userID string) []models.InteractionRecord {
	return s.log.History(userID)
}

// RecentHistory returns at most n records, newest first.
func (s *Store) RecentHistory(userID string, n int) []models.InteractionRecord {
	return s.log.Recent(userID, n)
}

// AskAndRecord answers question from the user's current documents and logs
// the exchange.
//
// ErrNoDocuments is returned before the generator is called. A generator
// failure is wrapped in ErrAnswerFailed and nothing is logged. If the answer
// was produced but could not be logged, the answer is returned together with
// the ErrIO error.
func (s *Store) AskAndRecord(ctx context.Context, userID, question string, lang models.Language, generate answer.Func) (string, error) {
	if _, ok := s.accounts.Lookup(userID); !ok {
		return "", common.ErrUnknownUser
	}
	if !lang.Valid() {
		return "", common.ErrUnsupportedLanguage
	}

	ref, err := s.docs.CombinedReference(userID, s.maxChars)
	if err != nil {
		return "", err
	}

	start := time.Now()
	text, err := generate(ctx, answer.Request{
		Question:      question,
		Reference:     ref.Text,
		DocumentNames: ref.DocumentNames,
		Version:       ref.Version,
		Language:      lang,
	})
	s.metrics.RecordAnswer(err, time.Since(start))
	if err != nil {
		s.logger.Warn(ctx, "answer generation failed", "user_id", userID, "error", err)
		return "", fmt.Errorf("%w: %w", common.ErrAnswerFailed, err)
	}

	err = s.log.Append(ctx, models.InteractionRecord{
		Owner:       userID,
		Question:    question,
		Answer:      text,
		DocumentRef: ref.DocumentNames,
		VersionRef:  ref.Version,
		Language:    lang,
	})
	if err != nil {
		s.logger.Error(ctx, "interaction not recorded", "user_id", userID, "error", err)
		return text, err
	}

	s.refreshCounts()
	return text, nil
}

// Stats returns the current collection sizes.
func (s *Store) Stats() Stats {
	return Stats{
		Users:        s.accounts.Count(),
		Documents:    s.docs.Count(),
		Interactions: s.log.Count(),
	}
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.data.Close()
}

func (s *Store) refreshCounts() {
	if s.metrics == nil {
		return
	}
	st := s.Stats()
	s.metrics.UpdateCounts(st.Users, st.Documents, st.Interactions)
}
