package service

import (
	"context"
	"sync"

	"github.com/Spok95/molten-bot/internal/domain/glass"
)

// CatalogCache — явный кэш списка каталога. Не глобальный: создаётся
// в точке сборки приложения и передаётся тем, кому нужен. После любой
// мутации каталога владелец обязан позвать Invalidate (композер делает
// это сам для своих операций).
type CatalogCache struct {
	store GlassStore

	mu     sync.RWMutex
	items  []glass.Item
	loaded bool
}

func NewCatalogCache(store GlassStore) *CatalogCache {
	return &CatalogCache{store: store}
}

// Items отдаёт кэшированный список, загружая его при первом обращении
// или после Invalidate.
func (c *CatalogCache) Items(ctx context.Context) ([]glass.Item, error) {
	c.mu.RLock()
	if c.loaded {
		items := c.items
		c.mu.RUnlock()
		return items, nil
	}
	c.mu.RUnlock()
	return c.Reload(ctx)
}

// Reload перечитывает каталог из хранилища.
func (c *CatalogCache) Reload(ctx context.Context) ([]glass.Item, error) {
	items, err := c.store.List(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.items = items
	c.loaded = true
	c.mu.Unlock()
	return items, nil
}

func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	c.loaded = false
	c.items = nil
	c.mu.Unlock()
}
