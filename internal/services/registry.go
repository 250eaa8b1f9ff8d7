// Package services contains the store's business rules. Each service owns one
// dataset and performs every mutation through datastore.Dataset.Update, so it
// needs no locking of its own; reads go to the dataset's published snapshot.
package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/dmitrijs2005/docqa/internal/cryptox"
	"github.com/dmitrijs2005/docqa/internal/datastore"
	"github.com/dmitrijs2005/docqa/internal/logging"
	"github.com/dmitrijs2005/docqa/internal/metrics"
	"github.com/dmitrijs2005/docqa/internal/models"
	"github.com/google/uuid"
)

// AccountRegistry registers and authenticates users.
type AccountRegistry struct {
	users   *datastore.Dataset[models.Users]
	scheme  cryptox.Scheme
	logger  logging.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewAccountRegistry constructs an AccountRegistry over the users dataset.
func NewAccountRegistry(users *datastore.Dataset[models.Users], scheme cryptox.Scheme, logger logging.Logger, m *metrics.Metrics) *AccountRegistry {
	return &AccountRegistry{
		users:   users,
		scheme:  scheme,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// Register creates a user and returns its new id. Usernames are compared
// exactly, so "Alice" and "alice" are different accounts.
func (r *AccountRegistry) Register(ctx context.Context, username, credential string, lang models.Language) (string, error) {
	if !lang.Valid() {
		return "", common.ErrUnsupportedLanguage
	}

	sealed, err := r.scheme.Seal(credential)
	if err != nil {
		return "", err
	}

	var id string
	err = r.users.Update(ctx, func(users *models.Users) error {
		if _, ok := (*users)[username]; ok {
			return common.ErrDuplicateUsername
		}
		id = uuid.NewString()
		(*users)[username] = &models.User{
			ID:                id,
			UserName:          username,
			Credential:        sealed,
			CreatedAt:         models.NewTimestamp(r.now()),
			PreferredLanguage: lang,
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	r.logger.Info(ctx, "user registered", "user_id", id, "language", lang)
	return id, nil
}

// Authenticate returns the id and preferred language of the matching user.
// An unknown username and a wrong credential both yield ErrInvalidCredentials.
func (r *AccountRegistry) Authenticate(ctx context.Context, username, credential string) (id string, lang models.Language, err error) {
	defer func() { r.metrics.RecordAuth(err) }()

	user, ok := r.users.Snapshot()[username]
	if !ok || !r.scheme.Match(user.Credential, credential) {
		r.logger.Warn(ctx, "authentication failed")
		return "", "", common.ErrInvalidCredentials
	}

	lang = user.PreferredLanguage
	if !lang.Valid() {
		lang = models.English
	}
	return user.ID, lang, nil
}

// UpdateLanguage sets the user's preferred language. Setting the current
// value again succeeds and still persists.
func (r *AccountRegistry) UpdateLanguage(ctx context.Context, username string, lang models.Language) error {
	if !lang.Valid() {
		return common.ErrUnsupportedLanguage
	}

	return r.users.Update(ctx, func(users *models.Users) error {
		user, ok := (*users)[username]
		if !ok {
			return common.ErrUnknownUser
		}
		user.PreferredLanguage = lang
		return nil
	})
}

// Lookup returns a copy of the user with the given id.
func (r *AccountRegistry) Lookup(id string) (models.User, bool) {
	user, ok := r.users.Snapshot().ByID(id)
	if !ok {
		return models.User{}, false
	}
	return *user, true
}

// Count returns the number of registered users.
func (r *AccountRegistry) Count() int {
	return len(r.users.Snapshot())
}
