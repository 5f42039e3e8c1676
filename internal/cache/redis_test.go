package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/config"
	"github.com/spiritualpurity/spiritual-purity-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setup(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewRedisCache(config.RedisConfig{Addr: mr.Addr(), TTL: time.Minute})
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestNewestMembersRoundTrip(t *testing.T) {
	c, mr := setup(t)
	ctx := context.Background()
	require.NoError(t, c.Ping(ctx))

	_, ok, err := c.GetNewestMembers(ctx, 8)
	require.NoError(t, err)
	assert.False(t, ok)

	members := []models.PublicProfile{
		{ID: primitive.NewObjectID(), FirstName: "Ruth", LastName: "Moab"},
		{ID: primitive.NewObjectID(), FirstName: "Boaz"},
	}
	require.NoError(t, c.SetNewestMembers(ctx, 8, members))
	assert.Equal(t, time.Minute, mr.TTL(c.KeyForNewestMembers(8)))

	got, ok, err := c.GetNewestMembers(ctx, 8)
	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, members[0].ID, got[0].ID)
	assert.Equal(t, "Boaz", got[1].FirstName)

	_, ok, err = c.GetNewestMembers(ctx, 4)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestInvalidateMembers(t *testing.T) {
	c, mr := setup(t)
	ctx := context.Background()

	require.NoError(t, c.SetNewestMembers(ctx, 4, []models.PublicProfile{}))
	require.NoError(t, c.SetNewestMembers(ctx, 8, []models.PublicProfile{}))
	require.NoError(t, mr.Set("unrelated", "x"))

	require.NoError(t, c.InvalidateMembers(ctx))
	assert.False(t, mr.Exists(c.KeyForNewestMembers(4)))
	assert.False(t, mr.Exists(c.KeyForNewestMembers(8)))
	assert.True(t, mr.Exists("unrelated"))

	require.NoError(t, c.InvalidateMembers(ctx))
}

func TestGetNewestMembersCorrupt(t *testing.T) {
	c, mr := setup(t)
	require.NoError(t, mr.Set(c.KeyForNewestMembers(8), "{not json"))

	_, _, err := c.GetNewestMembers(context.Background(), 8)
	assert.Error(t, err)
}
