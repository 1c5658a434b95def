package insight

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/profitlens/backend-go/internal/domain"
)

// ErrBadExtraction marks responses the model produced in a shape the import
// path cannot use. Handlers map it to a client-visible 422.
var ErrBadExtraction = errors.New("could not extract structured products from response")

// stripCodeFence removes a surrounding markdown code fence, which models
// emit even when told to answer with bare JSON.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

type extractionEnvelope struct {
	Products []domain.ProductInput `json:"products"`
}

// parseExtraction decodes the bulk-import response. An unparseable or
// empty answer is an ErrBadExtraction, not a silent empty import.
func parseExtraction(raw string) ([]domain.ProductInput, error) {
	var envelope extractionEnvelope
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadExtraction, err)
	}
	if len(envelope.Products) == 0 {
		return nil, fmt.Errorf("%w: response contained no products", ErrBadExtraction)
	}

	inputs := make([]domain.ProductInput, 0, len(envelope.Products))
	for _, p := range envelope.Products {
		if p.Name == "" {
			continue
		}
		inputs = append(inputs, p)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: every extracted row was unusable", ErrBadExtraction)
	}
	return inputs, nil
}

type checklistEnvelope struct {
	Checklist []domain.ComplianceTask `json:"checklist"`
}

func parseChecklist(raw string) ([]domain.ComplianceTask, error) {
	var envelope checklistEnvelope
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse checklist response: %w", err)
	}
	return envelope.Checklist, nil
}

type forecastEnvelope struct {
	Forecasts []struct {
		ID              int64   `json:"id"`
		ForecastedSales float64 `json:"forecastedSales"`
	} `json:"forecasts"`
}

// parseForecasts returns the per-product forecast map; products the model
// skipped simply have no entry.
func parseForecasts(raw string) (map[int64]int, error) {
	var envelope forecastEnvelope
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse forecast response: %w", err)
	}

	forecasts := make(map[int64]int, len(envelope.Forecasts))
	for _, f := range envelope.Forecasts {
		forecasts[f.ID] = int(f.ForecastedSales)
	}
	return forecasts, nil
}

// ReportContent is the structured executive report produced for PDF export;
// rendering it into a document is the client's concern.
type ReportContent struct {
	ExecutiveSummary         string   `json:"executiveSummary"`
	KPIAnalysis              string   `json:"kpiAnalysis"`
	PerformanceHighlights    []string `json:"performanceHighlights"`
	AreasForImprovement      []string `json:"areasForImprovement"`
	StrategicRecommendations []struct {
		Recommendation string `json:"recommendation"`
		Impact         string `json:"impact"`
		Risk           string `json:"risk"`
	} `json:"strategicRecommendations"`
}

func parseReport(raw string) (*ReportContent, error) {
	var content ReportContent
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &content); err != nil {
		return nil, fmt.Errorf("failed to parse report response: %w", err)
	}
	return &content, nil
}
