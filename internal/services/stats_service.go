package services

import (
	"context"

	"github.com/vytor/dailydle/internal/logger"
	"github.com/vytor/dailydle/internal/models"
	"github.com/vytor/dailydle/internal/stats"
)

// StatsService handles statistics-related business logic
type StatsService interface {
	GetStats(ctx context.Context, player string) (models.StatsView, error)
}

type statsService struct {
	stats *stats.Store
}

// NewStatsService creates a new StatsService
func NewStatsService(statsStore *stats.Store) StatsService {
	return &statsService{stats: statsStore}
}

func (s *statsService) GetStats(ctx context.Context, player string) (models.StatsView, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting stats: player=%s", player)

	return stats.View(s.stats.Load(ctx, player)), nil
}
