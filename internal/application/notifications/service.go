// Package notifications keeps the recent-activity log shown on the dashboard.
// Entries are plain strings; nothing is delivered anywhere.
package notifications

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	KeyActivity = "notifications:activity"

	DefaultRecent = 3
	defaultLimit  = 50
)

type Service struct {
	Rdb   *redis.Client
	Limit int64 // entries kept; older ones are trimmed
}

func (s *Service) limit() int64 {
	if s.Limit <= 0 {
		return defaultLimit
	}
	return s.Limit
}

// Push appends message to the activity log.
func (s *Service) Push(ctx context.Context, message string) error {
	pipe := s.Rdb.TxPipeline()
	pipe.RPush(ctx, KeyActivity, message)
	pipe.LTrim(ctx, KeyActivity, -s.limit(), -1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push notification: %w", err)
	}
	return nil
}

// Recent returns the last n messages, oldest first. n is clamped to [1, Limit].
func (s *Service) Recent(ctx context.Context, n int64) ([]string, error) {
	if n <= 0 {
		n = DefaultRecent
	}
	if n > s.limit() {
		n = s.limit()
	}
	msgs, err := s.Rdb.LRange(ctx, KeyActivity, -n, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read notifications: %w", err)
	}
	return msgs, nil
}

// Message builders for listing activity.

func FoodPosted(foodType, eventName string) string {
	return fmt.Sprintf("New food available: %s from %s", foodType, eventName)
}

func FoodClaimed(orgName string) string {
	return fmt.Sprintf("Food claimed by %s", orgName)
}

func FoodCollected() string {
	return "Food collected successfully"
}

func FoodExpiringSoon(foodType, eventName string) string {
	return fmt.Sprintf("Food expiring soon: %s from %s", foodType, eventName)
}
