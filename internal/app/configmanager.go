package app

import (
	"sync"
	"time"

	"github.com/spf13/cast"
	"github.com/talkincode/auctiontrack/internal/domain"
)

const configCacheTTL = 30 * time.Second

type cachedValue struct {
	value    string
	loadedAt time.Time
}

// ConfigManager reads sys_config values with a short-lived cache so hot
// paths do not hit the database per request.
type ConfigManager struct {
	app   *Application
	mu    sync.RWMutex
	cache map[string]cachedValue
}

func NewConfigManager(app *Application) *ConfigManager {
	return &ConfigManager{
		app:   app,
		cache: make(map[string]cachedValue),
	}
}

func (m *ConfigManager) lookup(category, name string) string {
	key := category + "." + name

	m.mu.RLock()
	cached, ok := m.cache[key]
	m.mu.RUnlock()
	if ok && time.Since(cached.loadedAt) < configCacheTTL {
		return cached.value
	}

	var cfg domain.SysConfig
	value := ""
	err := m.app.gormDB.
		Where("type = ? and name = ?", category, name).
		First(&cfg).Error
	if err == nil {
		value = cfg.Value
	}

	m.mu.Lock()
	m.cache[key] = cachedValue{value: value, loadedAt: time.Now()}
	m.mu.Unlock()
	return value
}

// SetValue updates a configuration entry and invalidates its cache slot.
func (m *ConfigManager) SetValue(category, name, value string) error {
	err := m.app.gormDB.Model(&domain.SysConfig{}).
		Where("type = ? and name = ?", category, name).
		Updates(map[string]interface{}{"value": value, "updated_at": time.Now()}).Error
	if err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.cache, category+"."+name)
	m.mu.Unlock()
	return nil
}

func (m *ConfigManager) GetString(category, name string) string {
	return m.lookup(category, name)
}

func (m *ConfigManager) GetInt(category, name string) int {
	return cast.ToInt(m.lookup(category, name))
}

func (m *ConfigManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(m.lookup(category, name))
}

func (m *ConfigManager) GetFloat64(category, name string) float64 {
	return cast.ToFloat64(m.lookup(category, name))
}

func (m *ConfigManager) GetBool(category, name string) bool {
	return cast.ToBool(m.lookup(category, name))
}
