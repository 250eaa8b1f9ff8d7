package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/dmitrijs2005/docqa/internal/cryptox"
	"github.com/dmitrijs2005/docqa/internal/metrics"
	"github.com/dmitrijs2005/docqa/internal/models"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAuthenticate(t *testing.T) {
	f := newFixture(t, t.TempDir())
	ctx := context.Background()

	id, err := f.registry.Register(ctx, "alice", "s3cret", models.Spanish)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	gotID, lang, err := f.registry.Authenticate(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, id, gotID)
	assert.Equal(t, models.Spanish, lang)

	_, _, err = f.registry.Authenticate(ctx, "alice", "wrong")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, _, err = f.registry.Authenticate(ctx, "bob", "s3cret")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestRegister_DuplicateIsCaseSensitive(t *testing.T) {
	f := newFixture(t, t.TempDir())
	ctx := context.Background()

	_, err := f.registry.Register(ctx, "alice", "a", models.English)
	require.NoError(t, err)

	_, err = f.registry.Register(ctx, "alice", "b", models.French)
	require.ErrorIs(t, err, common.ErrDuplicateUsername)

	_, err = f.registry.Register(ctx, "Alice", "b", models.French)
	require.NoError(t, err)
	assert.Equal(t, 2, f.registry.Count())

	// the rejected registration left the original credential in place
	_, _, err = f.registry.Authenticate(ctx, "alice", "a")
	require.NoError(t, err)
}

func TestRegister_UnsupportedLanguage(t *testing.T) {
	f := newFixture(t, t.TempDir())

	_, err := f.registry.Register(context.Background(), "alice", "a", models.Language("Klingon"))
	require.ErrorIs(t, err, common.ErrUnsupportedLanguage)
	assert.Zero(t, f.registry.Count())
}

func TestRegister_PersistsBeforeReturning(t *testing.T) {
	dir := t.TempDir()
	f := newFixture(t, dir)
	f.registry.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }

	id, err := f.registry.Register(context.Background(), "alice", "s3cret", models.French)
	require.NoError(t, err)

	reopened := newFixture(t, dir)
	user, ok := reopened.registry.Lookup(id)
	require.True(t, ok)
	assert.Equal(t, "alice", user.UserName)
	assert.Equal(t, models.French, user.PreferredLanguage)
	assert.True(t, user.CreatedAt.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))
}

func TestUpdateLanguage(t *testing.T) {
	dir := t.TempDir()
	f := newFixture(t, dir)
	ctx := context.Background()

	_, err := f.registry.Register(ctx, "alice", "s3cret", models.English)
	require.NoError(t, err)

	require.NoError(t, f.registry.UpdateLanguage(ctx, "alice", models.French))
	require.NoError(t, f.registry.UpdateLanguage(ctx, "alice", models.French))

	require.ErrorIs(t, f.registry.UpdateLanguage(ctx, "bob", models.French), common.ErrUnknownUser)
	require.ErrorIs(t, f.registry.UpdateLanguage(ctx, "alice", "Latin"), common.ErrUnsupportedLanguage)

	_, lang, err := newFixture(t, dir).registry.Authenticate(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, models.French, lang)
}

func TestRegister_ConcurrentDistinctUsernames(t *testing.T) {
	dir := t.TempDir()
	f := newFixture(t, dir)
	ctx := context.Background()

	const n = 40
	var wg sync.WaitGroup
	ids := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i], errs[i] = f.registry.Register(ctx, fmt.Sprintf("user-%02d", i), "pw", models.English)
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		require.False(t, seen[ids[i]], "duplicate id %s", ids[i])
		seen[ids[i]] = true
	}

	reopened := newFixture(t, dir)
	assert.Equal(t, n, reopened.registry.Count())
}

func TestAuthenticate_Argon2idAndMetrics(t *testing.T) {
	f := newFixture(t, t.TempDir())
	m := metrics.NewMetrics()
	f.registry.scheme = cryptox.Argon2id{}
	f.registry.metrics = m
	ctx := context.Background()

	id, err := f.registry.Register(ctx, "alice", "s3cret", models.English)
	require.NoError(t, err)

	user, ok := f.registry.Lookup(id)
	require.True(t, ok)
	assert.NotEqual(t, "s3cret", user.Credential)

	gotID, _, err := f.registry.Authenticate(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, id, gotID)

	_, _, err = f.registry.Authenticate(ctx, "alice", "nope")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthAttemptsTotal.WithLabelValues(metrics.StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthAttemptsTotal.WithLabelValues(metrics.StatusError)))
}

func TestAccountRegistry_ReadsLegacyUsersFile(t *testing.T) {
	dir := t.TempDir()
	legacy := `{
  "maria": {
    "user_id": "0b6f6f0e-8d8b-4d43-9a55-8d1d2c1b8c11",
    "password": "clave",
    "created_at": "2024-03-02T09:15:00.123456",
    "preferred_language": "Spanish"
  }
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.json"), []byte(legacy), 0o600))

	f := newFixture(t, dir)
	id, lang, err := f.registry.Authenticate(context.Background(), "maria", "clave")
	require.NoError(t, err)
	assert.Equal(t, "0b6f6f0e-8d8b-4d43-9a55-8d1d2c1b8c11", id)
	assert.Equal(t, models.Spanish, lang)
}

func TestLookup_Unknown(t *testing.T) {
	f := newFixture(t, t.TempDir())

	_, ok := f.registry.Lookup("missing")
	assert.False(t, ok)
}
