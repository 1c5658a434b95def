package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/profitlens/backend-go/internal/cache"
	"github.com/profitlens/backend-go/internal/domain"
	"github.com/profitlens/backend-go/internal/repository"
)

// ProductService owns the raw product list and the persisted preferences
// around it. Every mutation invalidates the dashboard cache so the next
// read recomputes from the new list.
type ProductService struct {
	repo              repository.ProductRepository
	settings          repository.SettingsRepository
	cache             cache.DashboardCache
	defaultProfitGoal float64
}

func NewProductService(repo repository.ProductRepository, settings repository.SettingsRepository, cacheImpl cache.DashboardCache, defaultProfitGoal float64) *ProductService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	return &ProductService{
		repo:              repo,
		settings:          settings,
		cache:             cacheImpl,
		defaultProfitGoal: defaultProfitGoal,
	}
}

// validateInput enforces the entry-point preconditions. Records that fail
// here never reach the compute layer, which assumes well-formed values.
func validateInput(in domain.ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidProduct)
	}
	if in.PurchasePrice <= 0 || in.SellingPrice <= 0 {
		return fmt.Errorf("%w: prices must be positive", domain.ErrInvalidProduct)
	}
	if in.SellingPrice < in.PurchasePrice {
		return fmt.Errorf("%w: selling price below purchase price", domain.ErrInvalidProduct)
	}
	if in.UnitsSoldWeek < 0 {
		return fmt.Errorf("%w: units sold cannot be negative", domain.ErrInvalidProduct)
	}
	if in.StockLevel != nil && *in.StockLevel < 0 {
		return fmt.Errorf("%w: stock level cannot be negative", domain.ErrInvalidProduct)
	}
	return nil
}

func fromInput(in domain.ProductInput, idOffset int) domain.Product {
	return domain.Product{
		ID:            domain.NewProductID(idOffset),
		Name:          strings.TrimSpace(in.Name),
		Category:      strings.TrimSpace(in.Category),
		Supplier:      strings.TrimSpace(in.Supplier),
		PurchasePrice: in.PurchasePrice,
		SellingPrice:  in.SellingPrice,
		UnitsSoldWeek: in.UnitsSoldWeek,
		StockLevel:    in.StockLevel,
	}
}

// List returns the raw product list in insertion order.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

// Create validates and stores a new product.
func (s *ProductService) Create(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	if err := validateInput(in); err != nil {
		return domain.Product{}, err
	}

	p := fromInput(in, 0)
	if err := s.repo.Create(ctx, p); err != nil {
		return domain.Product{}, err
	}

	s.invalidate(ctx)
	return p, nil
}

// Update validates and replaces an existing product's fields. The id and
// list position are immutable.
func (s *ProductService) Update(ctx context.Context, id int64, in domain.ProductInput) (domain.Product, error) {
	if err := validateInput(in); err != nil {
		return domain.Product{}, err
	}

	p := fromInput(in, 0)
	p.ID = id
	if err := s.repo.Update(ctx, p); err != nil {
		return domain.Product{}, err
	}

	s.invalidate(ctx)
	return p, nil
}

// Delete removes a product by id.
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

// Import replaces the whole product list with the given inputs, assigning
// fresh ids. Validation is all-or-nothing: one bad row rejects the batch.
func (s *ProductService) Import(ctx context.Context, inputs []domain.ProductInput) ([]domain.Product, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: import contained no products", domain.ErrInvalidProduct)
	}

	products := make([]domain.Product, len(inputs))
	for i, in := range inputs {
		if err := validateInput(in); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		products[i] = fromInput(in, i)
	}

	if err := s.repo.ReplaceAll(ctx, products); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return products, nil
}

// Reset restores the built-in demo catalog.
func (s *ProductService) Reset(ctx context.Context) ([]domain.Product, error) {
	products := domain.SeedProducts()
	if err := s.repo.ReplaceAll(ctx, products); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return products, nil
}

// ProfitGoal returns the persisted weekly profit goal, falling back to the
// configured default when none was saved.
func (s *ProductService) ProfitGoal(ctx context.Context) (float64, error) {
	raw, ok, err := s.settings.Load(ctx, repository.SettingProfitGoal)
	if err != nil {
		return 0, err
	}
	if !ok {
		return s.defaultProfitGoal, nil
	}

	var goal float64
	if err := json.Unmarshal(raw, &goal); err != nil {
		log.Warn().Err(err).Msg("stored profit goal unreadable, using default")
		return s.defaultProfitGoal, nil
	}
	return goal, nil
}

// SetProfitGoal persists a new weekly profit goal.
func (s *ProductService) SetProfitGoal(ctx context.Context, goal float64) error {
	if goal <= 0 {
		return fmt.Errorf("%w: profit goal must be positive", domain.ErrInvalidProduct)
	}

	raw, err := json.Marshal(goal)
	if err != nil {
		return err
	}
	return s.settings.Save(ctx, repository.SettingProfitGoal, raw)
}

// Theme returns the persisted UI theme, defaulting to light.
func (s *ProductService) Theme(ctx context.Context) (string, error) {
	raw, ok, err := s.settings.Load(ctx, repository.SettingTheme)
	if err != nil {
		return "", err
	}
	if !ok {
		return "light", nil
	}

	var theme string
	if err := json.Unmarshal(raw, &theme); err != nil {
		return "light", nil
	}
	return theme, nil
}

// SetTheme persists the UI theme.
func (s *ProductService) SetTheme(ctx context.Context, theme string) error {
	if theme != "light" && theme != "dark" {
		return fmt.Errorf("%w: unknown theme %q", domain.ErrInvalidProduct, theme)
	}

	raw, err := json.Marshal(theme)
	if err != nil {
		return err
	}
	return s.settings.Save(ctx, repository.SettingTheme, raw)
}

func (s *ProductService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("dashboard cache invalidation failed")
	}
}
