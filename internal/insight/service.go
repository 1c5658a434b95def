package insight

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/profitlens/backend-go/internal/domain"
	"github.com/profitlens/backend-go/internal/metrics"
)

// Service wraps the Generator with the dashboard's AI features. All pure
// post-processing (reorder policy, promo math) happens here so a single
// prompt/parse round trip stays the only non-deterministic step.
type Service struct {
	gen Generator

	mu           sync.Mutex
	cancelStream context.CancelFunc
	generation   uint64
}

// NewService builds the insight service.
func NewService(gen Generator) *Service {
	return &Service{gen: gen}
}

// ExtractProducts turns unstructured file text into product inputs. Parse
// failures surface as ErrBadExtraction; the caller decides whether to
// replace the list.
func (s *Service) ExtractProducts(ctx context.Context, fileContent string) ([]domain.ProductInput, error) {
	raw, err := s.gen.GenerateJSON(ctx, extractionPrompt(fileContent))
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}
	return parseExtraction(raw)
}

// Insight answers a free-form analyst question over the calculated view.
func (s *Service) Insight(ctx context.Context, products []domain.CalculatedProduct, question string) (string, error) {
	answer, err := s.gen.Generate(ctx, insightPrompt(products, question))
	if err != nil {
		return "", fmt.Errorf("insight request failed: %w", err)
	}
	return answer, nil
}

// StreamOverview starts the streamed business overview. Starting a new
// stream cancels the previous one, and chunks are tagged with a generation
// so a late chunk from a superseded stream can be discarded: last write
// wins.
func (s *Service) StreamOverview(ctx context.Context, m domain.DashboardMetrics, products []domain.CalculatedProduct) (<-chan OverviewChunk, uint64) {
	s.mu.Lock()
	if s.cancelStream != nil {
		s.cancelStream()
	}
	streamCtx, cancel := context.WithCancel(ctx)
	s.cancelStream = cancel
	s.generation++
	generation := s.generation
	s.mu.Unlock()

	out := make(chan OverviewChunk)
	chunks, errs := s.gen.Stream(streamCtx, overviewPrompt(m, products))

	go func() {
		defer close(out)
		for chunk := range chunks {
			select {
			case out <- OverviewChunk{Generation: generation, Text: chunk}:
			case <-streamCtx.Done():
				return
			}
		}
		if err := <-errs; err != nil {
			log.Warn().Err(err).Uint64("generation", generation).Msg("overview stream failed")
			select {
			case out <- OverviewChunk{Generation: generation, Err: err}:
			case <-streamCtx.Done():
			}
		}
	}()

	return out, generation
}

// CurrentGeneration reports the newest stream generation; chunks from older
// generations are stale.
func (s *Service) CurrentGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// OverviewChunk is one streamed fragment of the business overview.
type OverviewChunk struct {
	Generation uint64 `json:"generation"`
	Text       string `json:"text,omitempty"`
	Err        error  `json:"-"`
}

// ComplianceChecklist generates the structured checklist for a business
// profile.
func (s *Service) ComplianceChecklist(ctx context.Context, location, businessType string) ([]domain.ComplianceTask, error) {
	raw, err := s.gen.GenerateJSON(ctx, compliancePrompt(location, businessType))
	if err != nil {
		return nil, fmt.Errorf("checklist request failed: %w", err)
	}
	return parseChecklist(raw)
}

// Forecast asks for per-product 7-day sales forecasts and applies the
// reorder policy. Products the model skipped keep their current weekly
// sales as the forecast.
func (s *Service) Forecast(ctx context.Context, products []domain.CalculatedProduct) ([]domain.ForecastedProduct, error) {
	raw, err := s.gen.GenerateJSON(ctx, forecastPrompt(products))
	if err != nil {
		return nil, fmt.Errorf("forecast request failed: %w", err)
	}

	forecasts, err := parseForecasts(raw)
	if err != nil {
		return nil, err
	}

	return applyForecasts(products, forecasts), nil
}

// applyForecasts merges the forecast map into the product view and derives
// each reorder suggestion.
func applyForecasts(products []domain.CalculatedProduct, forecasts map[int64]int) []domain.ForecastedProduct {
	out := make([]domain.ForecastedProduct, len(products))
	for i, p := range products {
		forecast, ok := forecasts[p.ID]
		if !ok {
			forecast = p.UnitsSoldWeek
		}

		stock := p.Stock()
		reorder := math.Max(0, float64(forecast-stock))
		suggestion := fmt.Sprintf("Reorder %d", int(math.Ceil(reorder)))
		if reorder == 0 {
			suggestion = "Sufficient Stock"
		}
		if stock > forecast*2 {
			suggestion = "Potentially Overstocked"
		}

		out[i] = domain.ForecastedProduct{
			CalculatedProduct: p,
			ForecastedSales:   forecast,
			ReorderSuggestion: suggestion,
		}
	}
	return out
}

// MarketingAdvice runs the promo simulation and asks for a verdict on it.
func (s *Service) MarketingAdvice(ctx context.Context, p domain.Product, discountPercent, liftPercent float64) (domain.PromoSimulation, error) {
	sim := metrics.SimulatePromo(p, discountPercent, liftPercent)

	advice, err := s.gen.Generate(ctx, marketingPrompt(p, sim))
	if err != nil {
		return sim, fmt.Errorf("marketing advice request failed: %w", err)
	}
	sim.Advice = advice
	return sim, nil
}

// Report generates the structured executive report content for export.
func (s *Service) Report(ctx context.Context, m domain.DashboardMetrics, products []domain.CalculatedProduct) (*ReportContent, error) {
	raw, err := s.gen.GenerateJSON(ctx, reportPrompt(m, products))
	if err != nil {
		return nil, fmt.Errorf("report request failed: %w", err)
	}
	return parseReport(raw)
}
