package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profitlens/backend-go/internal/domain"
)

func TestResolveLayoutOrdering(t *testing.T) {
	config := domain.WidgetConfig{
		domain.WidgetAIOverview:          {Order: 2, Visible: true},
		domain.WidgetComplianceChecklist: {Order: 1, Visible: true},
	}
	slots := []domain.WidgetSlot{
		{ID: domain.WidgetAIOverview},
		{ID: domain.WidgetComplianceChecklist},
	}

	got := ResolveLayout(config, slots)
	require.Len(t, got, 2)
	assert.Equal(t, domain.WidgetComplianceChecklist, got[0].ID)
	assert.Equal(t, domain.WidgetAIOverview, got[1].ID)
}

func TestResolveLayoutHidesInvisible(t *testing.T) {
	config := domain.WidgetConfig{
		domain.WidgetAIOverview:    {Order: 1, Visible: false},
		domain.WidgetGoalTracker:   {Order: 2, Visible: true},
	}
	slots := []domain.WidgetSlot{
		{ID: domain.WidgetAIOverview},
		{ID: domain.WidgetGoalTracker},
	}

	got := ResolveLayout(config, slots)
	require.Len(t, got, 1)
	assert.Equal(t, domain.WidgetGoalTracker, got[0].ID)
}

func TestResolveLayoutMissingConfigEntryIsHidden(t *testing.T) {
	config := domain.WidgetConfig{
		domain.WidgetGoalTracker: {Order: 1, Visible: true},
	}
	slots := []domain.WidgetSlot{
		{ID: domain.WidgetMarketingSimulator}, // no entry
		{ID: domain.WidgetGoalTracker},
	}

	got := ResolveLayout(config, slots)
	require.Len(t, got, 1)
	assert.Equal(t, domain.WidgetGoalTracker, got[0].ID)
}

func TestResolveLayoutStableOnEqualOrder(t *testing.T) {
	config := domain.WidgetConfig{
		domain.WidgetGeminiInsights:     {Order: 1, Visible: true},
		domain.WidgetMarketingSimulator: {Order: 1, Visible: true},
	}
	slots := []domain.WidgetSlot{
		{ID: domain.WidgetGeminiInsights},
		{ID: domain.WidgetMarketingSimulator},
	}

	got := ResolveLayout(config, slots)
	require.Len(t, got, 2)
	assert.Equal(t, domain.WidgetGeminiInsights, got[0].ID)
	assert.Equal(t, domain.WidgetMarketingSimulator, got[1].ID)
}
