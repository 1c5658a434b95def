package metrics

import (
	"sort"

	"github.com/profitlens/backend-go/internal/domain"
)

// ResolveLayout drops slots hidden by the config and orders the rest
// ascending by configured order; ties keep input order. A slot with no
// config entry is treated as hidden; callers load configs through
// domain.MergeWidgetConfig, so a miss only happens for ids outside the
// known set.
func ResolveLayout(config domain.WidgetConfig, slots []domain.WidgetSlot) []domain.WidgetSlot {
	visible := make([]domain.WidgetSlot, 0, len(slots))
	for _, slot := range slots {
		if state, ok := config[slot.ID]; ok && state.Visible {
			visible = append(visible, slot)
		}
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return config[visible[i].ID].Order < config[visible[j].ID].Order
	})
	return visible
}
