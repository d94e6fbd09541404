package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/Spok95/molten-bot/internal/domain/glass"
	"github.com/Spok95/molten-bot/internal/domain/inventory"
	"github.com/Spok95/molten-bot/internal/domain/tags"
	"github.com/Spok95/molten-bot/internal/infra/metrics"
)

var (
	// ErrItemNotFound — операция ссылается на неизвестный ключ каталога.
	ErrItemNotFound = errors.New("item not found")
	// ErrValidation — некорректные данные (отрицательное количество и т.п.).
	ErrValidation = errors.New("validation failed")
)

// Composer собирает полные позиции поверх хранилищ. Сам состояния
// не держит, вся мутация уходит в хранилища; кэш каталога,
// если он подключён, сбрасывается после каждой мутации.
type Composer struct {
	glass     GlassStore
	inventory InventoryStore
	tags      TagStore
	cache     *CatalogCache
	log       *slog.Logger
}

func NewComposer(g GlassStore, inv InventoryStore, t TagStore, cache *CatalogCache, log *slog.Logger) *Composer {
	return &Composer{glass: g, inventory: inv, tags: t, cache: cache, log: log}
}

func (c *Composer) invalidate() {
	if c.cache != nil {
		c.cache.Invalidate()
	}
}

// AddInventory дописывает запись журнала. Запись всегда новая, даже если
// такая тройка (позиция, тип, место) уже есть: текущее количество —
// это всегда сумма по журналу, а не поле одной записи. Ноль допустим.
func (c *Composer) AddInventory(ctx context.Context, itemKey, typ string, quantity float64, location *string) (*inventory.Record, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("%w: negative quantity %v", ErrValidation, quantity)
	}
	item, err := c.glass.GetByKey(ctx, itemKey)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, itemKey)
	}

	rec, err := c.inventory.Append(ctx, inventory.Record{
		ItemKey:  itemKey,
		Type:     typ,
		Quantity: quantity,
		Location: location,
	})
	if err != nil {
		return nil, err
	}
	metrics.InventoryRecordsWritten.Inc()
	c.invalidate()
	return rec, nil
}

// DeleteInventory убирает запись журнала по явной просьбе пользователя.
func (c *Composer) DeleteInventory(ctx context.Context, id int64) error {
	if err := c.inventory.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate()
	return nil
}

// CreateCompleteItem сохраняет позицию, её стартовый журнал и теги.
// Теги дедуплицируются с сохранением первого вхождения, регистр значим.
func (c *Composer) CreateCompleteItem(ctx context.Context, item glass.Item, initial []inventory.Record, tagList []string) (*CompleteItem, error) {
	created, err := c.glass.Create(ctx, item)
	if err != nil {
		return nil, err
	}

	var stored []inventory.Record
	for _, rec := range initial {
		rec.ItemKey = created.NaturalKey
		out, err := c.inventory.Append(ctx, rec)
		if err != nil {
			return nil, err
		}
		metrics.InventoryRecordsWritten.Inc()
		stored = append(stored, *out)
	}

	deduped := tags.Dedup(tagList)
	for _, t := range deduped {
		if err := c.tags.Add(ctx, created.NaturalKey, t, tags.SourceUser); err != nil {
			return nil, err
		}
	}

	c.invalidate()
	ci := Compose(*created, stored, deduped)
	return &ci, nil
}

// UpdateCompleteItem заменяет каталожную запись целиком. updatedTags == nil
// оставляет теги как есть, не-nil (в том числе пустой) заменяет весь набор.
func (c *Composer) UpdateCompleteItem(ctx context.Context, itemKey string, updated glass.Item, updatedTags []string) (*CompleteItem, error) {
	existing, err := c.glass.GetByKey(ctx, itemKey)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, itemKey)
	}

	updated.NaturalKey = itemKey
	if _, err := c.glass.Update(ctx, updated); err != nil {
		return nil, err
	}

	if updatedTags != nil {
		if err := c.tags.Replace(ctx, itemKey, tags.Dedup(updatedTags), tags.SourceUser); err != nil {
			return nil, err
		}
	}

	c.invalidate()
	return c.GetCompleteItem(ctx, itemKey)
}

// GetCompleteItem возвращает nil без ошибки, если позиции нет:
// отсутствие — обычный исход, а не сбой.
func (c *Composer) GetCompleteItem(ctx context.Context, itemKey string) (*CompleteItem, error) {
	item, err := c.glass.GetByKey(ctx, itemKey)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	records, err := c.inventory.ListByItem(ctx, itemKey)
	if err != nil {
		return nil, err
	}
	tagList, err := c.tags.ListByItem(ctx, itemKey)
	if err != nil {
		return nil, err
	}

	metrics.CompleteItemReads.Inc()
	ci := Compose(*item, records, tagList)
	return &ci, nil
}

// ValidateItem проверяет журнал позиции против известных ключей каталога.
func (c *Composer) ValidateItem(ctx context.Context, itemKey string) (inventory.ValidationResult, error) {
	keys, err := c.glass.ListKeys(ctx)
	if err != nil {
		return inventory.ValidationResult{}, err
	}
	known := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		known[k] = struct{}{}
	}
	records, err := c.inventory.ListByItem(ctx, itemKey)
	if err != nil {
		return inventory.ValidationResult{}, err
	}
	return inventory.Validate(itemKey, records, known), nil
}

// LowStockEntry — позиция отчёта о низких остатках.
type LowStockEntry struct {
	Item  glass.Item
	Total float64
}

// LowStockReport — позиции с остатком не выше порога, по возрастанию
// остатка. Журнальные записи без позиции в каталоге игнорируются.
func (c *Composer) LowStockReport(ctx context.Context, threshold float64) ([]LowStockEntry, error) {
	items, err := c.glass.List(ctx)
	if err != nil {
		return nil, err
	}
	records, err := c.inventory.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	byItem := make(map[string][]inventory.Record, len(items))
	for _, it := range items {
		byItem[it.NaturalKey] = nil
	}
	for _, rec := range records {
		if _, ok := byItem[rec.ItemKey]; !ok {
			continue // осиротевшая запись
		}
		byItem[rec.ItemKey] = append(byItem[rec.ItemKey], rec)
	}

	report := inventory.LowStockReport(byItem, threshold)

	index := make(map[string]glass.Item, len(items))
	for _, it := range items {
		index[it.NaturalKey] = it
	}
	out := make([]LowStockEntry, 0, len(report))
	for _, row := range report {
		out = append(out, LowStockEntry{Item: index[row.ItemKey], Total: row.Total})
	}
	return out, nil
}

// ListComplete собирает полные позиции всего каталога, для поиска
// и выгрузок. Порядок — по производителю и имени.
func (c *Composer) ListComplete(ctx context.Context) ([]CompleteItem, error) {
	var items []glass.Item
	var err error
	if c.cache != nil {
		items, err = c.cache.Items(ctx)
	} else {
		items, err = c.glass.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	records, err := c.inventory.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	byItem := make(map[string][]inventory.Record)
	for _, rec := range records {
		byItem[rec.ItemKey] = append(byItem[rec.ItemKey], rec)
	}

	out := make([]CompleteItem, 0, len(items))
	for _, it := range items {
		tagList, err := c.tags.ListByItem(ctx, it.NaturalKey)
		if err != nil {
			return nil, err
		}
		out = append(out, Compose(it, byItem[it.NaturalKey], tagList))
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Item, out[j].Item
		if !strings.EqualFold(a.Manufacturer, b.Manufacturer) {
			return strings.ToLower(a.Manufacturer) < strings.ToLower(b.Manufacturer)
		}
		return a.Name < b.Name
	})
	return out, nil
}
