package service

import (
	"context"
	"fmt"
	"time"
)

// CatalogStats is a snapshot of the catalog size.
type CatalogStats struct {
	Foods   int
	Recipes int
}

// CatalogCallback receives every snapshot taken by the monitor.
type CatalogCallback func(stats CatalogStats)

// Stats counts the stored foods and recipes.
func (s *Service) Stats(ctx context.Context) (CatalogStats, error) {
	foods, err := s.Foods.List(ctx)
	if err != nil {
		return CatalogStats{}, fmt.Errorf("failed to count foods: %w", err)
	}
	recipes, err := s.Recipes.List(ctx)
	if err != nil {
		return CatalogStats{}, fmt.Errorf("failed to count recipes: %w", err)
	}
	return CatalogStats{Foods: len(foods), Recipes: len(recipes)}, nil
}

// StartCatalogMonitor takes a catalog snapshot right away and then on every
// tick of interval, handing each one to callback. It blocks until the
// context is cancelled, so it should be launched in a separate goroutine.
func (s *Service) StartCatalogMonitor(ctx context.Context, interval time.Duration, callback CatalogCallback) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.WithField("interval", interval).Info("Catalog monitor started")

	s.refreshStats(ctx, callback)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Catalog monitor stopped")
			return
		case <-ticker.C:
			s.refreshStats(ctx, callback)
		}
	}
}

func (s *Service) refreshStats(ctx context.Context, callback CatalogCallback) {
	stats, err := s.Stats(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.WithError(err).Error("Failed to refresh catalog stats")
		}
		return
	}
	callback(stats)
}
