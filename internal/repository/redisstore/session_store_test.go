package redisstore_test

import (
	"context"
	"testing"
	"time"

	"go-jobboard-gateway/internal/domain"
	"go-jobboard-gateway/internal/repository/redisstore"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (domain.SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Skipf("miniredis unavailable: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return redisstore.NewSessionStore(client, time.Hour), mr
}

func sampleSession() *domain.Session {
	return &domain.Session{
		ID:           "sess-1",
		AccessToken:  "at-1",
		RefreshToken: "rt-1",
		Role:         domain.RoleJobSeeker,
		User:         domain.User{ID: "u1", Email: "ada@example.com", Role: domain.RoleJobSeeker},
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

func TestSessionStoreRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSession()))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "at-1", got.AccessToken)
	assert.Equal(t, "rt-1", got.RefreshToken)
	assert.Equal(t, domain.RoleJobSeeker, got.Role)
	assert.Equal(t, "ada@example.com", got.User.Email)
}

func TestSessionStoreReplacesWholeRecord(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first := sampleSession()
	first.Profile = &domain.ProfileSnapshot{JobSeeker: &domain.JobSeekerProfile{ID: "p1"}}
	require.NoError(t, store.Save(ctx, first))

	// A token refresh rewrites the record without the caller re-attaching
	// the snapshot it does not know about.
	second := sampleSession()
	second.AccessToken = "at-2"
	second.RefreshToken = "rt-2"
	require.NoError(t, store.Save(ctx, second))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "at-2", got.AccessToken)
	assert.Equal(t, "rt-2", got.RefreshToken)
	assert.Nil(t, got.Profile, "a whole-record replace must not resurrect stale fields")
}

func TestSessionStoreMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStoreExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSession()))
	mr.FastForward(2 * time.Hour)

	_, err := store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStoreDeleteIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSession()))
	require.NoError(t, store.Delete(ctx, "sess-1"))
	assert.NoError(t, store.Delete(ctx, "sess-1"))

	_, err := store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStoreRejectsEmptyID(t *testing.T) {
	store, _ := newTestStore(t)
	assert.Error(t, store.Save(context.Background(), &domain.Session{}))
}
