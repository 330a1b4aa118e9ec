package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheService wraps Redis with JSON marshaling. Provider snapshots are
// cached briefly so bursts of requests do not hammer the fantasy API.
type CacheService struct {
	client *redis.Client
}

func NewCacheService(client *redis.Client) *CacheService {
	return &CacheService{
		client: client,
	}
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if err := s.client.Set(ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("key not found")
		}
		return fmt.Errorf("failed to get cache: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}

	return nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}

// Cache key generators
func StandingsCacheKey() string {
	return "league:standings"
}

func TeamsCacheKey() string {
	return "league:teams"
}

func TeamCacheKey(teamID int) string {
	return fmt.Sprintf("team:%d", teamID)
}

func ScoreboardCacheKey(week int) string {
	return fmt.Sprintf("league:scoreboard:%d", week)
}

func BoxScoresCacheKey(week int) string {
	return fmt.Sprintf("league:boxscores:%d", week)
}

func FreeAgentsCacheKey(position string, size int) string {
	return fmt.Sprintf("players:freeagents:%s:%d", position, size)
}
