package shared_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epic-events/epic-crm/internal/shared"
)

func newSessionManager(t *testing.T, ttl time.Duration) (*shared.SessionManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return shared.NewSessionManager(client, ttl), mr
}

func TestSessionRoundTrip(t *testing.T) {
	sm, _ := newSessionManager(t, time.Hour)
	ctx := context.Background()

	sess, err := sm.Create(ctx, shared.Caller{UserID: 7, Username: "alice", Role: shared.RoleCommercial})
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)

	loaded, err := sm.Load(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), loaded.UserID)
	assert.Equal(t, "alice", loaded.Username)
	assert.Equal(t, sess.ID, loaded.ID)
}

func TestSessionExpires(t *testing.T) {
	sm, mr := newSessionManager(t, time.Minute)
	ctx := context.Background()

	sess, err := sm.Create(ctx, shared.Caller{UserID: 1, Username: "admin"})
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	_, err = sm.Load(ctx, sess.ID)
	assert.ErrorIs(t, err, shared.ErrSessionExpired)
}

func TestSessionDestroy(t *testing.T) {
	sm, _ := newSessionManager(t, time.Hour)
	ctx := context.Background()

	sess, err := sm.Create(ctx, shared.Caller{UserID: 1, Username: "admin"})
	require.NoError(t, err)
	require.NoError(t, sm.Destroy(ctx, sess.ID))
	require.NoError(t, sm.Destroy(ctx, sess.ID))

	_, err = sm.Load(ctx, sess.ID)
	assert.ErrorIs(t, err, shared.ErrSessionExpired)
}

func TestSessionLoadEmptyID(t *testing.T) {
	sm, _ := newSessionManager(t, time.Hour)
	_, err := sm.Load(context.Background(), "")
	assert.ErrorIs(t, err, shared.ErrSessionExpired)
}
