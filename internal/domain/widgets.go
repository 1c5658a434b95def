package domain

// WidgetID identifies a dashboard widget slot. The set is closed: adding a
// widget means adding a constant here and a default entry below, so stale
// persisted snapshots pick the new widget up through MergeWidgetConfig.
type WidgetID string

const (
	WidgetAIOverview          WidgetID = "aiOverview"
	WidgetComplianceChecklist WidgetID = "complianceChecklist"
	WidgetSalesForecast       WidgetID = "salesForecast"
	WidgetProfitabilityCharts WidgetID = "profitabilityCharts"
	WidgetGeminiInsights      WidgetID = "geminiInsights"
	WidgetMarketingSimulator  WidgetID = "marketingSimulator"
	WidgetAIKnowledgeBase     WidgetID = "aiKnowledgeBase"
	WidgetDataInput           WidgetID = "dataInput"
	WidgetGoalTracker         WidgetID = "goalTracker"
)

// AllWidgetIDs lists every known widget in declaration order.
var AllWidgetIDs = []WidgetID{
	WidgetAIOverview,
	WidgetComplianceChecklist,
	WidgetSalesForecast,
	WidgetProfitabilityCharts,
	WidgetGeminiInsights,
	WidgetMarketingSimulator,
	WidgetAIKnowledgeBase,
	WidgetDataInput,
	WidgetGoalTracker,
}

// WidgetState is the user-customizable placement of a single widget.
type WidgetState struct {
	Order   int  `json:"order"`
	Visible bool `json:"visible"`
}

// WidgetConfig maps every widget to its placement. Persisted as a whole
// snapshot and merged against the defaults on load, so the layout resolver
// may assume a fully populated config.
type WidgetConfig map[WidgetID]WidgetState

// DefaultWidgetConfig returns the factory layout.
func DefaultWidgetConfig() WidgetConfig {
	return WidgetConfig{
		WidgetAIOverview:          {Order: 1, Visible: true},
		WidgetComplianceChecklist: {Order: 2, Visible: true},
		WidgetSalesForecast:       {Order: 3, Visible: true},
		WidgetProfitabilityCharts: {Order: 1, Visible: true},
		WidgetGeminiInsights:      {Order: 1, Visible: true},
		WidgetMarketingSimulator:  {Order: 2, Visible: true},
		WidgetAIKnowledgeBase:     {Order: 3, Visible: true},
		WidgetDataInput:           {Order: 1, Visible: true},
		WidgetGoalTracker:         {Order: 1, Visible: true},
	}
}

// MergeWidgetConfig overlays a persisted snapshot on the defaults. Unknown
// ids in the snapshot are dropped; ids missing from the snapshot keep their
// default placement. Runs once at load time, never inside the resolver.
func MergeWidgetConfig(saved WidgetConfig) WidgetConfig {
	merged := DefaultWidgetConfig()
	for id, state := range saved {
		if _, known := merged[id]; known {
			merged[id] = state
		}
	}
	return merged
}

// WidgetSlot is a named, positionable region of the dashboard; Content is
// opaque to the resolver.
type WidgetSlot struct {
	ID      WidgetID `json:"id"`
	Content string   `json:"content,omitempty"`
}
