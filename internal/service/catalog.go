package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"kiosk-data/internal/domain"
	"kiosk-data/internal/repository"
	"kiosk-data/internal/store"
)

// CatalogSource which tier answered a catalog read.
type CatalogSource string

const (
	CatalogSourceCache    CatalogSource = "cache"
	CatalogSourceStore    CatalogSource = "store"
	CatalogSourceFallback CatalogSource = "fallback" // fixed demo catalog
)

const catalogCacheKey = "kiosk:programs:active"

// CatalogService serves the program catalog. Reads never fail: a store error
// logs and yields an empty list, and the cache is best-effort in both
// directions.
type CatalogService struct {
	repo     repository.ProgramsRepository
	kv       store.KV // nil disables caching
	ttl      time.Duration
	demoMode bool
	logger   *zap.Logger
}

func NewCatalogService(repo repository.ProgramsRepository, kv store.KV, ttl time.Duration, demoMode bool, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		repo:     repo,
		kv:       kv,
		ttl:      ttl,
		demoMode: demoMode,
		logger:   logger,
	}
}

// FetchPrograms returns the active catalog and the tier it came from. An
// empty list means "no programs available" whether the store is empty or
// unreachable; callers cannot tell the two apart.
func (s *CatalogService) FetchPrograms(ctx context.Context) ([]domain.Program, CatalogSource) {
	if s.demoMode {
		programs, _ := s.repo.ListActivePrograms(ctx)
		return programs, CatalogSourceFallback
	}

	if s.kv != nil {
		if cached, err := s.kv.Get(ctx, catalogCacheKey); err == nil {
			var programs []domain.Program
			decodeErr := json.Unmarshal([]byte(cached), &programs)
			if decodeErr == nil {
				return programs, CatalogSourceCache
			}
			s.logger.Warn("Dropping unreadable catalog cache entry", zap.Error(decodeErr))
			_ = s.kv.Del(ctx, catalogCacheKey)
		} else if err != store.ErrMiss {
			s.logger.Warn("Catalog cache read failed", zap.Error(err))
		}
	}

	programs, err := s.repo.ListActivePrograms(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch programs", zap.Error(err))
		return []domain.Program{}, CatalogSourceStore
	}

	if s.kv != nil && len(programs) > 0 {
		if encoded, err := json.Marshal(programs); err == nil {
			if err := s.kv.Set(ctx, catalogCacheKey, string(encoded), s.ttl); err != nil {
				s.logger.Warn("Catalog cache write failed", zap.Error(err))
			}
		}
	}

	return programs, CatalogSourceStore
}

// GroupByCategory groups a catalog for the selector UI, preserving the
// catalog's category order.
func GroupByCategory(programs []domain.Program) []domain.ProgramGroup {
	var groups []domain.ProgramGroup
	index := map[string]int{}
	for _, p := range programs {
		category := p.Category
		if category == "" {
			category = "Other"
		}
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, domain.ProgramGroup{Category: category})
		}
		groups[i].Programs = append(groups[i].Programs, p)
	}
	return groups
}
