package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"volunteer-hub/internal/domain"
	"volunteer-hub/internal/repository"
)

const (
	statsCacheKey = "platform:stats"
	statsCacheTTL = 5 * time.Minute
)

type Service interface {
	GetStats(ctx context.Context) (*domain.PlatformStats, error)
}

type service struct {
	requestRepo repository.RequestRepository
	redis       *redis.Client
}

func NewService(requestRepo repository.RequestRepository, redis *redis.Client) Service {
	return &service{
		requestRepo: requestRepo,
		redis:       redis,
	}
}

func (s *service) GetStats(ctx context.Context) (*domain.PlatformStats, error) {
	if s.redis != nil {
		cached, err := s.redis.Get(ctx, statsCacheKey).Result()
		if err == nil {
			var stats domain.PlatformStats
			if json.Unmarshal([]byte(cached), &stats) == nil {
				return &stats, nil
			}
		}
	}

	byStatus, err := s.requestRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	byCategory, err := s.requestRepo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}

	topCities, err := s.requestRepo.TopCities(ctx, 5)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, count := range byStatus {
		total += count
	}

	stats := &domain.PlatformStats{
		TotalRequests:  total,
		ByStatus:       byStatus,
		ByCategory:     byCategory,
		TopCities:      topCities,
		ActiveRequests: byStatus[domain.StatusActive],
	}

	if s.redis != nil {
		if payload, err := json.Marshal(stats); err == nil {
			_ = s.redis.Set(ctx, statsCacheKey, payload, statsCacheTTL).Err()
		}
	}

	return stats, nil
}
