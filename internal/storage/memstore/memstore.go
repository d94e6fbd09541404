// Package memstore — потокобезопасные реализации хранилищ в памяти.
// Используются тестами и сухим прогоном импорта каталога,
// интерфейсы те же, что у pgx-репозиториев.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Spok95/molten-bot/internal/domain/glass"
	"github.com/Spok95/molten-bot/internal/domain/inventory"
	"github.com/Spok95/molten-bot/internal/domain/tags"
	"github.com/Spok95/molten-bot/internal/service"
)

/* Glass */

type GlassStore struct {
	mu    sync.RWMutex
	items map[string]glass.Item
}

var _ service.GlassStore = (*GlassStore)(nil)

func NewGlassStore() *GlassStore {
	return &GlassStore{items: make(map[string]glass.Item)}
}

func (s *GlassStore) Create(_ context.Context, it glass.Item) (*glass.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[it.NaturalKey]; ok {
		return nil, fmt.Errorf("duplicate natural key: %s", it.NaturalKey)
	}
	now := time.Now()
	it.CreatedAt = now
	it.UpdatedAt = now
	s.items[it.NaturalKey] = it
	return &it, nil
}

func (s *GlassStore) GetByKey(_ context.Context, key string) (*glass.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[key]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (s *GlassStore) Update(_ context.Context, it glass.Item) (*glass.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.items[it.NaturalKey]
	if !ok {
		return nil, nil
	}
	it.CreatedAt = old.CreatedAt
	it.UpdatedAt = time.Now()
	s.items[it.NaturalKey] = it
	return &it, nil
}

func (s *GlassStore) List(_ context.Context) ([]glass.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]glass.Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Manufacturer != out[j].Manufacturer {
			return strings.ToLower(out[i].Manufacturer) < strings.ToLower(out[j].Manufacturer)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *GlassStore) ListKeys(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.items))
	for k := range s.items {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}

/* Inventory */

type InventoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	records []inventory.Record
}

var _ service.InventoryStore = (*InventoryStore)(nil)

func NewInventoryStore() *InventoryStore {
	return &InventoryStore{nextID: 1}
}

// Append атомарен на вызов, как и INSERT у боевого хранилища:
// конкурентные добавления не теряются.
func (s *InventoryStore) Append(_ context.Context, rec inventory.Record) (*inventory.Record, error) {
	if rec.Quantity < 0 {
		return nil, fmt.Errorf("quantity must be >= 0")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec.ID = s.nextID
	s.nextID++
	rec.CreatedAt = time.Now()
	s.records = append(s.records, rec)
	return &rec, nil
}

func (s *InventoryStore) ListByItem(_ context.Context, itemKey string) ([]inventory.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []inventory.Record
	for _, r := range s.records {
		if r.ItemKey == itemKey {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *InventoryStore) ListAll(_ context.Context) ([]inventory.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]inventory.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *InventoryStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return nil
}

/* Tags */

type taggedEntry struct {
	tag string
	src tags.Source
}

type TagStore struct {
	mu     sync.RWMutex
	byItem map[string][]taggedEntry
}

var _ service.TagStore = (*TagStore)(nil)

func NewTagStore() *TagStore {
	return &TagStore{byItem: make(map[string][]taggedEntry)}
}

func (s *TagStore) Add(_ context.Context, itemKey, tag string, src tags.Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byItem[itemKey] = append(s.byItem[itemKey], taggedEntry{tag: tag, src: src})
	return nil
}

// ListByItem: каталожные теги раньше пользовательских, внутри источника —
// порядок добавления. Совпадает с ORDER BY боевого репозитория.
func (s *TagStore) ListByItem(_ context.Context, itemKey string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for _, e := range s.byItem[itemKey] {
		if e.src == tags.SourceCatalog {
			out = append(out, e.tag)
		}
	}
	for _, e := range s.byItem[itemKey] {
		if e.src == tags.SourceUser {
			out = append(out, e.tag)
		}
	}
	return out, nil
}

func (s *TagStore) ListBySource(_ context.Context, itemKey string, src tags.Source) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	for _, e := range s.byItem[itemKey] {
		if e.src == src {
			out = append(out, e.tag)
		}
	}
	return out, nil
}

func (s *TagStore) Replace(_ context.Context, itemKey string, list []string, src tags.Source) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var kept []taggedEntry
	for _, e := range s.byItem[itemKey] {
		if e.src != src {
			kept = append(kept, e)
		}
	}
	for _, t := range list {
		kept = append(kept, taggedEntry{tag: t, src: src})
	}
	s.byItem[itemKey] = kept
	return nil
}
