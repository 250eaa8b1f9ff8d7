package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/dmitrijs2005/docqa/internal/datastore"
	"github.com/dmitrijs2005/docqa/internal/logging"
	"github.com/dmitrijs2005/docqa/internal/metrics"
	"github.com/dmitrijs2005/docqa/internal/models"
)

// Reference is the combined text of a user's documents handed to the answer
// generator, together with what it was built from.
type Reference struct {
	Text string
	// DocumentNames lists the documents in insertion order, comma separated.
	DocumentNames string
	// Version is the highest version among the documents.
	Version int
}

// DocumentLedger keeps the latest text of each named document per user and
// counts its uploads.
type DocumentLedger struct {
	docs    *datastore.Dataset[models.Documents]
	logger  logging.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewDocumentLedger constructs a DocumentLedger over the documents dataset.
func NewDocumentLedger(docs *datastore.Dataset[models.Documents], logger logging.Logger, m *metrics.Metrics) *DocumentLedger {
	return &DocumentLedger{
		docs:    docs,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// Upsert stores text as the current content of the user's document name.
// A new name starts at version 1; a known name gets version+1 and its text
// replaced. Empty text is accepted.
func (l *DocumentLedger) Upsert(ctx context.Context, userID, name, text string) (models.Document, error) {
	var out models.Document
	err := l.docs.Update(ctx, func(docs *models.Documents) error {
		byName, ok := (*docs)[userID]
		if !ok {
			byName = map[string]*models.Document{}
			(*docs)[userID] = byName
		}

		now := models.NewTimestamp(l.now())
		doc, ok := byName[name]
		if !ok {
			doc = &models.Document{
				Owner:      userID,
				Name:       name,
				UploadedAt: now,
				Seq:        docs.NextSeq(userID),
			}
			byName[name] = doc
		}
		doc.Version++
		doc.Text = text
		doc.UpdatedAt = now

		out = *doc
		return nil
	})
	if err != nil {
		return models.Document{}, err
	}

	l.metrics.RecordUpload(out.Version)
	l.logger.Info(ctx, "document stored", "user_id", userID, "document", name, "version", out.Version, "chars", len([]rune(text)))
	return out, nil
}

// ListDocuments returns copies of the user's documents, first uploaded first.
func (l *DocumentLedger) ListDocuments(userID string) []models.Document {
	owned := l.docs.Snapshot().Owned(userID)
	out := make([]models.Document, 0, len(owned))
	for _, doc := range owned {
		out = append(out, *doc)
	}
	return out
}

// CombinedReference joins the user's documents into one reference text:
// each document contributes "<name> (v<version>):\n<text>..." with text cut
// to maxCharsPerDoc characters, and blocks are separated by a blank line.
// maxCharsPerDoc <= 0 disables the cut.
func (l *DocumentLedger) CombinedReference(userID string, maxCharsPerDoc int) (Reference, error) {
	owned := l.docs.Snapshot().Owned(userID)
	if len(owned) == 0 {
		return Reference{}, common.ErrNoDocuments
	}

	blocks := make([]string, 0, len(owned))
	names := make([]string, 0, len(owned))
	version := 0
	for _, doc := range owned {
		blocks = append(blocks, doc.Name+" (v"+strconv.Itoa(doc.Version)+"):\n"+truncate(doc.Text, maxCharsPerDoc)+"...")
		names = append(names, doc.Name)
		version = max(version, doc.Version)
	}

	return Reference{
		Text:          strings.Join(blocks, "\n\n"),
		DocumentNames: strings.Join(names, ", "),
		Version:       version,
	}, nil
}

// Count returns the number of documents across all users.
func (l *DocumentLedger) Count() int {
	n := 0
	for _, byName := range l.docs.Snapshot() {
		n += len(byName)
	}
	return n
}

func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
