package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/profitlens/backend-go/internal/cache"
	"github.com/profitlens/backend-go/internal/domain"
	"github.com/profitlens/backend-go/internal/metrics"
	"github.com/profitlens/backend-go/internal/repository"
)

const suggestionLimit = 5

// DashboardService runs the recompute pipeline: load the raw list, derive
// per-product metrics, filter, then aggregate. The whole pipeline re-runs
// on every read; the cache only absorbs repeated reads of an unchanged
// list and filter.
type DashboardService struct {
	repo       repository.ProductRepository
	settings   repository.SettingsRepository
	cache      cache.DashboardCache
	aggregator *metrics.Aggregator
}

func NewDashboardService(repo repository.ProductRepository, settings repository.SettingsRepository, cacheImpl cache.DashboardCache, aggregator *metrics.Aggregator) *DashboardService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	if aggregator == nil {
		aggregator = metrics.NewAggregator(nil)
	}
	return &DashboardService{
		repo:       repo,
		settings:   settings,
		cache:      cacheImpl,
		aggregator: aggregator,
	}
}

// Products returns the calculated product view, filtered.
func (s *DashboardService) Products(ctx context.Context, filter domain.ProductFilter) ([]domain.CalculatedProduct, error) {
	raw, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return metrics.Filter(metrics.CalculateAll(raw), filter.Search, filter.Category), nil
}

// Metrics returns the KPI aggregate for the filtered view, cache-aside.
// Trend points are synthesized per computation, so a cached snapshot also
// pins the trends until the next invalidation.
func (s *DashboardService) Metrics(ctx context.Context, filter domain.ProductFilter) (domain.DashboardMetrics, error) {
	if cached, ok, err := s.cache.Get(ctx, filter); err == nil && ok {
		return *cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("dashboard cache get failed")
	}

	products, err := s.Products(ctx, filter)
	if err != nil {
		return domain.DashboardMetrics{}, err
	}

	m := s.aggregator.Aggregate(products)
	if err := s.cache.Set(ctx, filter, &m); err != nil {
		log.Warn().Err(err).Msg("dashboard cache set failed")
	}
	return m, nil
}

// Categories returns both per-category rollups over the filtered view.
func (s *DashboardService) Categories(ctx context.Context, filter domain.ProductFilter) (domain.CategoryBreakdown, error) {
	products, err := s.Products(ctx, filter)
	if err != nil {
		return domain.CategoryBreakdown{}, err
	}
	return metrics.ByCategory(products), nil
}

// Suggestions returns up to five product names close to a search term that
// matched nothing.
func (s *DashboardService) Suggestions(ctx context.Context, term string) ([]string, error) {
	raw, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return metrics.Suggestions(metrics.CalculateAll(raw), term, suggestionLimit), nil
}

// WidgetConfig loads the persisted layout merged over the defaults. A
// missing or unreadable snapshot yields the factory layout.
func (s *DashboardService) WidgetConfig(ctx context.Context) (domain.WidgetConfig, error) {
	raw, ok, err := s.settings.Load(ctx, repository.SettingWidgetConfig)
	if err != nil {
		return nil, err
	}
	if !ok {
		return domain.DefaultWidgetConfig(), nil
	}

	var saved domain.WidgetConfig
	if err := json.Unmarshal(raw, &saved); err != nil {
		log.Warn().Err(err).Msg("stored widget config unreadable, using defaults")
		return domain.DefaultWidgetConfig(), nil
	}
	return domain.MergeWidgetConfig(saved), nil
}

// SaveWidgetConfig persists a layout snapshot, merged so the stored value
// always covers the full widget set.
func (s *DashboardService) SaveWidgetConfig(ctx context.Context, config domain.WidgetConfig) (domain.WidgetConfig, error) {
	merged := domain.MergeWidgetConfig(config)
	raw, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}
	if err := s.settings.Save(ctx, repository.SettingWidgetConfig, raw); err != nil {
		return nil, err
	}
	return merged, nil
}

// Layout resolves the current widget config against the requested slots,
// or the full widget set when none are named.
func (s *DashboardService) Layout(ctx context.Context, ids []domain.WidgetID) ([]domain.WidgetSlot, error) {
	config, err := s.WidgetConfig(ctx)
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		ids = domain.AllWidgetIDs
	}
	slots := make([]domain.WidgetSlot, len(ids))
	for i, id := range ids {
		slots[i] = domain.WidgetSlot{ID: id}
	}
	return metrics.ResolveLayout(config, slots), nil
}
