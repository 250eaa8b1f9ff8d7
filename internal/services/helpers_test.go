package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/dmitrijs2005/docqa/internal/cryptox"
	"github.com/dmitrijs2005/docqa/internal/datastore"
	"github.com/dmitrijs2005/docqa/internal/logging"
	"github.com/dmitrijs2005/docqa/internal/models"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	dir      string
	store    *datastore.Store
	registry *AccountRegistry
	ledger   *DocumentLedger
	log      *InteractionLog
}

func newFixture(t *testing.T, dir string) *fixture {
	t.Helper()
	ctx := context.Background()

	backend, err := datastore.NewFileBackend(dir)
	require.NoError(t, err)
	store := datastore.NewStore(backend, logging.Nop(), nil)

	users := datastore.NewDataset(store, common.DatasetUsers, func() models.Users { return models.Users{} })
	docs := datastore.NewDataset(store, common.DatasetDocuments, func() models.Documents { return models.Documents{} })
	chat := datastore.NewDataset(store, common.DatasetInteractions, func() models.Interactions { return models.Interactions{} })
	require.NoError(t, users.Open(ctx))
	require.NoError(t, docs.Open(ctx))
	require.NoError(t, chat.Open(ctx))

	return &fixture{
		dir:      dir,
		store:    store,
		registry: NewAccountRegistry(users, cryptox.Plain{}, logging.Nop(), nil),
		ledger:   NewDocumentLedger(docs, logging.Nop(), nil),
		log:      NewInteractionLog(chat, logging.Nop()),
	}
}

// fixedClock returns successive instants one second apart.
func fixedClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(time.Second)
		return now
	}
}
