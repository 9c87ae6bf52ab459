package notifications

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupNotifications(t *testing.T, limit int64) *Service {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return &Service{Rdb: rdb, Limit: limit}
}

func TestRecent_LastThree(t *testing.T) {
	s := setupNotifications(t, 0)
	ctx := context.Background()

	msgs, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	for i := 1; i <= 5; i++ {
		require.NoError(t, s.Push(ctx, fmt.Sprintf("event %d", i)))
	}
	msgs, err = s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"event 3", "event 4", "event 5"}, msgs)
}

func TestPush_TrimsToLimit(t *testing.T) {
	s := setupNotifications(t, 4)
	ctx := context.Background()
	for i := 1; i <= 10; i++ {
		require.NoError(t, s.Push(ctx, fmt.Sprintf("event %d", i)))
	}
	n, err := s.Rdb.LLen(ctx, KeyActivity).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)

	msgs, err := s.Recent(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"event 7", "event 8", "event 9", "event 10"}, msgs)
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "New food available: Catered Dinner from University Graduation Party", FoodPosted("Catered Dinner", "University Graduation Party"))
	assert.Equal(t, "Food claimed by City Food Bank", FoodClaimed("City Food Bank"))
	assert.Equal(t, "Food collected successfully", FoodCollected())
	assert.Equal(t, "Food expiring soon: Pizza from Hackathon", FoodExpiringSoon("Pizza", "Hackathon"))
}
