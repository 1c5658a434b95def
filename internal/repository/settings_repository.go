package repository

import "context"

// Settings keys. Each key stores a whole JSON snapshot; there are no
// partial updates.
const (
	SettingWidgetConfig = "widgetConfig"
	SettingProfitGoal   = "profitGoal"
	SettingTheme        = "theme"
)

// SettingsRepository is a whole-snapshot key/value store for dashboard
// preferences. Load reports absence through the ok flag rather than an
// error, mirroring a cache miss.
type SettingsRepository interface {
	Save(ctx context.Context, key string, value []byte) error
	Load(ctx context.Context, key string) (value []byte, ok bool, err error)
}
