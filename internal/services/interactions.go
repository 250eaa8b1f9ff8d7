package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/docqa/internal/datastore"
	"github.com/dmitrijs2005/docqa/internal/logging"
	"github.com/dmitrijs2005/docqa/internal/models"
)

// InteractionLog is the append-only record of answered questions.
type InteractionLog struct {
	log    *datastore.Dataset[models.Interactions]
	logger logging.Logger
	now    func() time.Time
}

// NewInteractionLog constructs an InteractionLog over the chat history dataset.
func NewInteractionLog(log *datastore.Dataset[models.Interactions], logger logging.Logger) *InteractionLog {
	return &InteractionLog{log: log, logger: logger, now: time.Now}
}

// Append adds rec to the end of the log. A zero timestamp is set to now.
func (l *InteractionLog) Append(ctx context.Context, rec models.InteractionRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = models.NewTimestamp(l.now())
	}

	err := l.log.Update(ctx, func(log *models.Interactions) error {
		*log = append(*log, rec)
		return nil
	})
	if err != nil {
		return err
	}

	l.logger.Debug(ctx, "interaction recorded", "user_id", rec.Owner, "document", rec.DocumentRef, "version", rec.VersionRef)
	return nil
}

// History returns the user's records in the order they were appended.
// A user without records gets an empty slice.
func (l *InteractionLog) History(userID string) []models.InteractionRecord {
	out := []models.InteractionRecord{}
	for _, rec := range l.log.Snapshot() {
		if rec.Owner == userID {
			out = append(out, rec)
		}
	}
	return out
}

// Recent returns at most n of the user's records, newest first.
// n <= 0 returns all of them.
func (l *InteractionLog) Recent(userID string, n int) []models.InteractionRecord {
	all := l.History(userID)
	if n > 0 && len(all) > n {
		all = all[len(all)-n:]
	}
	out := make([]models.InteractionRecord, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		out = append(out, all[i])
	}
	return out
}

// Count returns the number of records across all users.
func (l *InteractionLog) Count() int {
	return len(l.log.Snapshot())
}
