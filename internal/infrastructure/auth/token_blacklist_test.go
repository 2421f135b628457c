package auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/printdesk/backend/internal/infrastructure/auth"
	"github.com/printdesk/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist_RevokeByJTI(t *testing.T) {
	list := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	for i := range 3 {
		require.NoError(t, list.Revoke(ctx, fmt.Sprintf("jti-%d", i), time.Hour))
	}

	for i := range 3 {
		revoked, err := list.IsRevoked(ctx, fmt.Sprintf("jti-%d", i))
		require.NoError(t, err)
		assert.True(t, revoked)
	}

	revoked, err := list.IsRevoked(ctx, "jti-other")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_EntriesExpire(t *testing.T) {
	list := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	require.NoError(t, list.Revoke(ctx, "short-lived", time.Millisecond))
	time.Sleep(10 * time.Millisecond)

	revoked, err := list.IsRevoked(ctx, "short-lived")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_RevokeUser(t *testing.T) {
	list := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()
	anHourAgo := time.Now().Add(-time.Hour)

	revoked, err := list.RevokedForUser(ctx, "user-1", anHourAgo)
	require.NoError(t, err)
	assert.False(t, revoked, "nothing revoked yet")

	require.NoError(t, list.RevokeUser(ctx, "user-1", time.Hour))

	tests := []struct {
		name     string
		userID   string
		issuedAt time.Time
		want     bool
	}{
		{"issued before", "user-1", anHourAgo, true},
		{"same second", "user-1", time.Unix(time.Now().Unix(), 0), false},
		{"issued after", "user-1", time.Now().Add(2 * time.Second), false},
		{"other user", "user-2", anHourAgo, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			revoked, err := list.RevokedForUser(ctx, tt.userID, tt.issuedAt)
			require.NoError(t, err)
			assert.Equal(t, tt.want, revoked)
		})
	}
}

func TestNewTokenBlacklist_RedisDisabled(t *testing.T) {
	list := auth.NewTokenBlacklist(config.RedisConfig{Enabled: false}, nil)
	assert.IsType(t, &auth.InMemoryTokenBlacklist{}, list)
}

func TestNewTokenBlacklist_FallsBackWhenRedisUnreachable(t *testing.T) {
	list := auth.NewTokenBlacklist(config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}, nil)
	require.IsType(t, &auth.InMemoryTokenBlacklist{}, list)

	ctx := context.Background()
	require.NoError(t, list.Revoke(ctx, "jti-1", time.Minute))
	revoked, err := list.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRedisTokenBlacklist_WrapsConnectionErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	list := auth.NewRedisTokenBlacklist(client)
	defer list.Close()
	ctx := context.Background()

	err := list.Revoke(ctx, "jti-1", time.Minute)
	assert.ErrorContains(t, err, "failed to revoke token")

	_, err = list.IsRevoked(ctx, "jti-1")
	assert.ErrorContains(t, err, "failed to check token revocation")

	_, err = list.RevokedForUser(ctx, "user-1", time.Now())
	assert.ErrorContains(t, err, "failed to check user revocation")
}
