package service

import (
	"context"
	"fmt"
	"time"

	"mapup/internal/backend"
	"mapup/internal/cache"
	"mapup/internal/logging"
	"mapup/internal/model"
)

const stockCacheKey = "stock:file-data"

// StockService serves the uploaded stock dataset.
type StockService interface {
	// Records returns the dataset, from cache when possible.
	Records(ctx context.Context) ([]model.StockRecord, error)
	// Refresh drops the cached dataset and fetches it again.
	Refresh(ctx context.Context) ([]model.StockRecord, error)
}

type stockService struct {
	client backend.Client
	cache  *cache.Client
	ttl    time.Duration
	log    logging.Logger
}

// NewStockService builds a StockService. A nil cache disables caching.
func NewStockService(client backend.Client, cache *cache.Client, ttl time.Duration, log logging.Logger) StockService {
	return &stockService{client: client, cache: cache, ttl: ttl, log: log}
}

func (s *stockService) Records(ctx context.Context) ([]model.StockRecord, error) {
	var cached []model.StockRecord
	if s.cache.GetJSON(ctx, stockCacheKey, &cached) {
		return cached, nil
	}
	return s.fetch(ctx)
}

func (s *stockService) Refresh(ctx context.Context) ([]model.StockRecord, error) {
	_ = s.cache.Delete(ctx, stockCacheKey)
	return s.fetch(ctx)
}

func (s *stockService) fetch(ctx context.Context) ([]model.StockRecord, error) {
	records, err := s.client.FileData(ctx)
	if err != nil {
		s.log.Error(ctx, "fetch stock data", "error", err)
		return nil, fmt.Errorf("fetch stock data: %w", err)
	}
	if s.ttl > 0 {
		if err := s.cache.SetJSON(ctx, stockCacheKey, records, s.ttl); err != nil {
			s.log.Warn(ctx, "cache stock data", "error", err)
		}
	}
	return records, nil
}
