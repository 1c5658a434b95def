package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profitlens/backend-go/internal/domain"
	"github.com/profitlens/backend-go/internal/metrics"
)

// memProductRepo keeps products in a slice, preserving insertion order.
type memProductRepo struct {
	products []domain.Product
}

func (r *memProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *memProductRepo) Create(ctx context.Context, p domain.Product) error {
	r.products = append(r.products, p)
	return nil
}

func (r *memProductRepo) Update(ctx context.Context, p domain.Product) error {
	for i := range r.products {
		if r.products[i].ID == p.ID {
			r.products[i] = p
			return nil
		}
	}
	return domain.ErrProductNotFound
}

func (r *memProductRepo) Delete(ctx context.Context, id int64) error {
	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return domain.ErrProductNotFound
}

func (r *memProductRepo) ReplaceAll(ctx context.Context, products []domain.Product) error {
	r.products = append([]domain.Product(nil), products...)
	return nil
}

type memSettingsRepo struct {
	values map[string][]byte
}

func newMemSettingsRepo() *memSettingsRepo {
	return &memSettingsRepo{values: make(map[string][]byte)}
}

func (r *memSettingsRepo) Save(ctx context.Context, key string, value []byte) error {
	r.values[key] = value
	return nil
}

func (r *memSettingsRepo) Load(ctx context.Context, key string) ([]byte, bool, error) {
	value, ok := r.values[key]
	return value, ok, nil
}

func intPtr(v int) *int { return &v }

func validInput() domain.ProductInput {
	return domain.ProductInput{
		Name:          "Organic Milk",
		PurchasePrice: 2.5,
		SellingPrice:  4.5,
		UnitsSoldWeek: 100,
		Category:      "Dairy",
		StockLevel:    intPtr(40),
	}
}

func TestProductServiceCreate(t *testing.T) {
	repo := &memProductRepo{}
	svc := NewProductService(repo, newMemSettingsRepo(), nil, 1500)

	p, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, "Organic Milk", p.Name)
	assert.Len(t, repo.products, 1)
}

func TestProductServiceCreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.ProductInput)
	}{
		{"empty name", func(in *domain.ProductInput) { in.Name = "  " }},
		{"zero selling price", func(in *domain.ProductInput) { in.SellingPrice = 0 }},
		{"selling below purchase", func(in *domain.ProductInput) { in.SellingPrice = 1 }},
		{"negative units", func(in *domain.ProductInput) { in.UnitsSoldWeek = -1 }},
		{"negative stock", func(in *domain.ProductInput) { in.StockLevel = intPtr(-5) }},
	}

	svc := NewProductService(&memProductRepo{}, newMemSettingsRepo(), nil, 1500)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := svc.Create(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidProduct)
		})
	}
}

func TestProductServiceUpdateKeepsID(t *testing.T) {
	repo := &memProductRepo{}
	svc := NewProductService(repo, newMemSettingsRepo(), nil, 1500)

	p, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	in := validInput()
	in.Name = "Whole Milk"
	updated, err := svc.Update(context.Background(), p.ID, in)
	require.NoError(t, err)
	assert.Equal(t, p.ID, updated.ID)
	assert.Equal(t, "Whole Milk", repo.products[0].Name)
}

func TestProductServiceUpdateMissing(t *testing.T) {
	svc := NewProductService(&memProductRepo{}, newMemSettingsRepo(), nil, 1500)

	_, err := svc.Update(context.Background(), 42, validInput())
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductServiceImportReplacesList(t *testing.T) {
	repo := &memProductRepo{}
	svc := NewProductService(repo, newMemSettingsRepo(), nil, 1500)
	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	bread := validInput()
	bread.Name = "Bread"
	cheese := validInput()
	cheese.Name = "Cheese"

	products, err := svc.Import(context.Background(), []domain.ProductInput{bread, cheese})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.NotEqual(t, products[0].ID, products[1].ID, "bulk ids stay unique")

	names := []string{repo.products[0].Name, repo.products[1].Name}
	assert.Equal(t, []string{"Bread", "Cheese"}, names)
}

func TestProductServiceImportRejectsBatchOnBadRow(t *testing.T) {
	repo := &memProductRepo{}
	svc := NewProductService(repo, newMemSettingsRepo(), nil, 1500)
	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	bad := validInput()
	bad.Name = ""
	_, err = svc.Import(context.Background(), []domain.ProductInput{validInput(), bad})
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)
	assert.Len(t, repo.products, 1, "list untouched on rejected batch")
}

func TestProductServiceReset(t *testing.T) {
	repo := &memProductRepo{}
	svc := NewProductService(repo, newMemSettingsRepo(), nil, 1500)

	products, err := svc.Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SeedProducts(), products)
	assert.Len(t, repo.products, len(products))
}

func TestProfitGoalDefaultsAndRoundTrips(t *testing.T) {
	svc := NewProductService(&memProductRepo{}, newMemSettingsRepo(), nil, 1500)
	ctx := context.Background()

	goal, err := svc.ProfitGoal(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, goal)

	require.NoError(t, svc.SetProfitGoal(ctx, 2000))
	goal, err = svc.ProfitGoal(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, goal)

	assert.ErrorIs(t, svc.SetProfitGoal(ctx, -1), domain.ErrInvalidProduct)
}

func TestThemeDefaultsAndRoundTrips(t *testing.T) {
	svc := NewProductService(&memProductRepo{}, newMemSettingsRepo(), nil, 1500)
	ctx := context.Background()

	theme, err := svc.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, "light", theme)

	require.NoError(t, svc.SetTheme(ctx, "dark"))
	theme, err = svc.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)

	assert.ErrorIs(t, svc.SetTheme(ctx, "neon"), domain.ErrInvalidProduct)
}

func seededDashboard(t *testing.T) (*DashboardService, *memSettingsRepo) {
	t.Helper()
	repo := &memProductRepo{products: domain.SeedProducts()}
	settings := newMemSettingsRepo()
	// Fixed randomness keeps trend assertions stable.
	agg := metrics.NewAggregator(func() float64 { return 0.45 })
	return NewDashboardService(repo, settings, nil, agg), settings
}

func TestDashboardProductsFilter(t *testing.T) {
	svc, _ := seededDashboard(t)

	all, err := svc.Products(context.Background(), domain.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, len(domain.SeedProducts()))

	dairy := "Dairy"
	filtered, err := svc.Products(context.Background(), domain.ProductFilter{Search: "milk", Category: &dairy})
	require.NoError(t, err)
	require.NotEmpty(t, filtered)
	for _, p := range filtered {
		assert.Equal(t, "Dairy", p.Category)
	}
}

func TestDashboardMetricsMatchesPipeline(t *testing.T) {
	svc, _ := seededDashboard(t)

	m, err := svc.Metrics(context.Background(), domain.ProductFilter{})
	require.NoError(t, err)

	products := metrics.CalculateAll(domain.SeedProducts())
	var wantProfit float64
	for _, p := range products {
		wantProfit += p.WeeklyProfit
	}
	assert.InDelta(t, wantProfit, m.TotalWeeklyProfit, 1e-9)
	require.NotNil(t, m.TopProductByProfit)
	assert.Len(t, m.ProfitTrend, metrics.TrendPoints)
}

func TestDashboardCategories(t *testing.T) {
	svc, _ := seededDashboard(t)

	breakdown, err := svc.Categories(context.Background(), domain.ProductFilter{})
	require.NoError(t, err)
	assert.NotEmpty(t, breakdown.Revenue)
	assert.NotEmpty(t, breakdown.AvgMargin)
}

func TestDashboardSuggestions(t *testing.T) {
	svc, _ := seededDashboard(t)

	suggestions, err := svc.Suggestions(context.Background(), "milk")
	require.NoError(t, err)
	assert.NotEmpty(t, suggestions)
	assert.LessOrEqual(t, len(suggestions), suggestionLimit)
}

func TestWidgetConfigLoadSaveRoundTrip(t *testing.T) {
	svc, settings := seededDashboard(t)
	ctx := context.Background()

	config, err := svc.WidgetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultWidgetConfig(), config)

	config[domain.WidgetAIOverview] = domain.WidgetState{Order: 9, Visible: false}
	saved, err := svc.SaveWidgetConfig(ctx, config)
	require.NoError(t, err)
	assert.False(t, saved[domain.WidgetAIOverview].Visible)

	loaded, err := svc.WidgetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
	assert.Contains(t, settings.values, "widgetConfig")
}

func TestWidgetConfigUnreadableSnapshotFallsBack(t *testing.T) {
	svc, settings := seededDashboard(t)
	settings.values["widgetConfig"] = []byte("{not json")

	config, err := svc.WidgetConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultWidgetConfig(), config)
}

func TestLayoutHidesInvisibleWidgets(t *testing.T) {
	svc, _ := seededDashboard(t)
	ctx := context.Background()

	config := domain.DefaultWidgetConfig()
	config[domain.WidgetAIOverview] = domain.WidgetState{Order: 1, Visible: false}
	_, err := svc.SaveWidgetConfig(ctx, config)
	require.NoError(t, err)

	slots, err := svc.Layout(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, slots, len(domain.AllWidgetIDs)-1)
	for _, slot := range slots {
		assert.NotEqual(t, domain.WidgetAIOverview, slot.ID)
	}
}

func TestLayoutNamedSubset(t *testing.T) {
	svc, _ := seededDashboard(t)

	ids := []domain.WidgetID{domain.WidgetGoalTracker, domain.WidgetDataInput}
	slots, err := svc.Layout(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	for _, slot := range slots {
		assert.Contains(t, ids, slot.ID)
	}
}

func TestSaveWidgetConfigMergesPartialSnapshot(t *testing.T) {
	svc, settings := seededDashboard(t)

	partial := domain.WidgetConfig{domain.WidgetGoalTracker: {Order: 7, Visible: true}}
	saved, err := svc.SaveWidgetConfig(context.Background(), partial)
	require.NoError(t, err)
	assert.Len(t, saved, len(domain.AllWidgetIDs))

	var stored domain.WidgetConfig
	require.NoError(t, json.Unmarshal(settings.values["widgetConfig"], &stored))
	assert.Equal(t, 7, stored[domain.WidgetGoalTracker].Order)
}
