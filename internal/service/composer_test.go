package service_test

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/molten-bot/internal/domain/glass"
	"github.com/Spok95/molten-bot/internal/domain/inventory"
	"github.com/Spok95/molten-bot/internal/domain/tags"
	"github.com/Spok95/molten-bot/internal/service"
	"github.com/Spok95/molten-bot/internal/storage/memstore"
)

func newComposer(t *testing.T) (*service.Composer, *memstore.GlassStore, *memstore.InventoryStore) {
	t.Helper()
	g := memstore.NewGlassStore()
	inv := memstore.NewInventoryStore()
	tg := memstore.NewTagStore()
	cache := service.NewCatalogCache(g)
	return service.NewComposer(g, inv, tg, cache, slog.Default()), g, inv
}

func seedItem(t *testing.T, g *memstore.GlassStore, key string) {
	t.Helper()
	_, err := g.Create(context.Background(), glass.Item{
		NaturalKey:   key,
		Name:         "Dark Blue",
		Manufacturer: "Effetre",
		SKU:          "591006",
		Code:         glass.ConstructCode("Effetre", "591006"),
		COE:          104,
		Status:       glass.StatusAvailable,
	})
	require.NoError(t, err)
}

func strptr(s string) *string { return &s }

func TestAddInventoryUnknownItem(t *testing.T) {
	c, _, _ := newComposer(t)
	_, err := c.AddInventory(context.Background(), "nope", "rod", 5, nil)
	assert.ErrorIs(t, err, service.ErrItemNotFound)
}

func TestAddInventoryNegativeQuantity(t *testing.T) {
	c, g, _ := newComposer(t)
	seedItem(t, g, "effetre-591006-0")
	_, err := c.AddInventory(context.Background(), "effetre-591006-0", "rod", -1, nil)
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestAddInventoryZeroIsRecorded(t *testing.T) {
	c, g, inv := newComposer(t)
	seedItem(t, g, "effetre-591006-0")

	rec, err := c.AddInventory(context.Background(), "effetre-591006-0", "rod", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rec.Quantity)

	records, err := inv.ListByItem(context.Background(), "effetre-591006-0")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

// Повторные добавления одной тройки (позиция, тип, место) не схлопываются:
// всегда новая запись, текущее количество — сумма по журналу.
func TestAddInventoryAlwaysAppends(t *testing.T) {
	c, g, inv := newComposer(t)
	seedItem(t, g, "effetre-591006-0")
	ctx := context.Background()

	_, err := c.AddInventory(ctx, "effetre-591006-0", "rod", 5, nil)
	require.NoError(t, err)
	_, err = c.AddInventory(ctx, "effetre-591006-0", "rod", 3, nil)
	require.NoError(t, err)

	records, err := inv.ListByItem(ctx, "effetre-591006-0")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 8.0, inventory.QuantityByType(records)["rod"])
}

func TestDeleteInventoryRecord(t *testing.T) {
	c, g, inv := newComposer(t)
	seedItem(t, g, "effetre-591006-0")
	ctx := context.Background()

	rec, err := c.AddInventory(ctx, "effetre-591006-0", "rod", 5, nil)
	require.NoError(t, err)
	_, err = c.AddInventory(ctx, "effetre-591006-0", "frit", 2, nil)
	require.NoError(t, err)

	require.NoError(t, c.DeleteInventory(ctx, rec.ID))

	records, err := inv.ListByItem(ctx, "effetre-591006-0")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "frit", records[0].Type)

	ci, err := c.GetCompleteItem(ctx, "effetre-591006-0")
	require.NoError(t, err)
	assert.Equal(t, 2.0, ci.TotalQuantity())
}

func TestAddInventoryConcurrentAppends(t *testing.T) {
	c, g, inv := newComposer(t)
	seedItem(t, g, "effetre-591006-0")
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := c.AddInventory(ctx, "effetre-591006-0", "rod", 1, nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	records, err := inv.ListByItem(ctx, "effetre-591006-0")
	require.NoError(t, err)
	assert.Len(t, records, n)
	assert.Equal(t, float64(n), inventory.TotalQuantity(records))
}

func TestComposeScenario(t *testing.T) {
	item := glass.Item{NaturalKey: "effetre-591006-0", Name: "Dark Blue"}
	records := []inventory.Record{
		{ItemKey: item.NaturalKey, Type: "rod", Quantity: 5, Location: strptr("ShelfA")},
		{ItemKey: item.NaturalKey, Type: "rod", Quantity: 3, Location: strptr("ShelfB")},
		{ItemKey: item.NaturalKey, Type: "frit", Quantity: 2},
	}

	ci := service.Compose(item, records, []string{"blue"})
	assert.Equal(t, 10.0, ci.TotalQuantity())
	assert.Equal(t, 8.0, ci.QuantityByType()["rod"])
	assert.Equal(t, 5.0, ci.QuantityByLocation()["ShelfA"])
	assert.Equal(t, 3.0, ci.QuantityByLocation()["ShelfB"])
	assert.Equal(t, []string{"ShelfA", "ShelfB"}, ci.Locations)
}

func TestCreateCompleteItemDedupsTags(t *testing.T) {
	c, _, _ := newComposer(t)
	ctx := context.Background()

	ci, err := c.CreateCompleteItem(ctx, glass.Item{
		NaturalKey:   "cim-512-0",
		Name:         "Mermaid",
		Manufacturer: "CiM",
	}, []inventory.Record{
		{Type: "rod", Quantity: 4},
	}, []string{"test", "Test", "green", "test"})
	require.NoError(t, err)

	// регистр значим, повторы убраны, порядок первого вхождения
	assert.Equal(t, []string{"test", "Test", "green"}, ci.Tags)
	assert.Equal(t, 4.0, ci.TotalQuantity())
	require.Len(t, ci.Inventory, 1)
	assert.Equal(t, "cim-512-0", ci.Inventory[0].ItemKey)
}

func TestGetCompleteItemDedupsTagsAcrossSources(t *testing.T) {
	g := memstore.NewGlassStore()
	inv := memstore.NewInventoryStore()
	tg := memstore.NewTagStore()
	c := service.NewComposer(g, inv, tg, service.NewCatalogCache(g), slog.Default())
	seedItem(t, g, "effetre-591006-0")
	ctx := context.Background()

	// один и тот же тег из каталога и от пользователя — не дубль
	require.NoError(t, tg.Add(ctx, "effetre-591006-0", "blue", tags.SourceCatalog))
	require.NoError(t, tg.Add(ctx, "effetre-591006-0", "blue", tags.SourceUser))
	require.NoError(t, tg.Add(ctx, "effetre-591006-0", "opal", tags.SourceUser))

	ci, err := c.GetCompleteItem(ctx, "effetre-591006-0")
	require.NoError(t, err)
	assert.Equal(t, []string{"blue", "opal"}, ci.Tags)

	list, err := c.ListComplete(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"blue", "opal"}, list[0].Tags)
}

func TestUpdateCompleteItem(t *testing.T) {
	c, g, _ := newComposer(t)
	seedItem(t, g, "effetre-591006-0")
	ctx := context.Background()

	_, err := c.CreateCompleteItem(ctx, glass.Item{NaturalKey: "cim-512-0", Name: "Mermaid", Manufacturer: "CiM"},
		nil, []string{"green"})
	require.NoError(t, err)

	t.Run("nil оставляет теги", func(t *testing.T) {
		ci, err := c.UpdateCompleteItem(ctx, "cim-512-0", glass.Item{Name: "Mermaid Dark", Manufacturer: "CiM"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "Mermaid Dark", ci.Item.Name)
		assert.Equal(t, []string{"green"}, ci.Tags)
	})

	t.Run("непустой список заменяет", func(t *testing.T) {
		ci, err := c.UpdateCompleteItem(ctx, "cim-512-0", glass.Item{Name: "Mermaid Dark", Manufacturer: "CiM"},
			[]string{"teal", "opaque"})
		require.NoError(t, err)
		assert.Equal(t, []string{"teal", "opaque"}, ci.Tags)
	})

	t.Run("неизвестный ключ", func(t *testing.T) {
		_, err := c.UpdateCompleteItem(ctx, "nope", glass.Item{}, nil)
		assert.ErrorIs(t, err, service.ErrItemNotFound)
	})
}

func TestGetCompleteItemMissingIsNilNotError(t *testing.T) {
	c, _, _ := newComposer(t)
	ci, err := c.GetCompleteItem(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, ci)
}

func TestValidateItem(t *testing.T) {
	c, g, _ := newComposer(t)
	seedItem(t, g, "effetre-591006-0")
	ctx := context.Background()

	res, err := c.ValidateItem(ctx, "effetre-591006-0")
	require.NoError(t, err)
	assert.True(t, res.Valid)

	res, err = c.ValidateItem(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Errors[0], "not found")
}

func TestLowStockReportOrderAndThreshold(t *testing.T) {
	c, g, _ := newComposer(t)
	ctx := context.Background()

	for i, qty := range []float64{7, 1, 3, 100} {
		key := fmt.Sprintf("item-%d-0", i)
		seedKeyed(t, g, key, fmt.Sprintf("Glass %d", i))
		_, err := c.AddInventory(ctx, key, "rod", qty, nil)
		require.NoError(t, err)
	}
	// позиция вовсе без записей — остаток 0, тоже в отчёте
	seedKeyed(t, g, "item-empty-0", "Empty")

	report, err := c.LowStockReport(ctx, 10)
	require.NoError(t, err)
	require.Len(t, report, 4)

	assert.Equal(t, 0.0, report[0].Total)
	assert.Equal(t, "item-empty-0", report[0].Item.NaturalKey)
	for i := 0; i+1 < len(report); i++ {
		assert.LessOrEqual(t, report[i].Total, report[i+1].Total)
	}
}

func seedKeyed(t *testing.T, g *memstore.GlassStore, key, name string) {
	t.Helper()
	_, err := g.Create(context.Background(), glass.Item{
		NaturalKey: key, Name: name, Manufacturer: "Effetre", Status: glass.StatusAvailable,
	})
	require.NoError(t, err)
}

func TestCatalogCacheInvalidation(t *testing.T) {
	g := memstore.NewGlassStore()
	cache := service.NewCatalogCache(g)
	inv := memstore.NewInventoryStore()
	tg := memstore.NewTagStore()
	c := service.NewComposer(g, inv, tg, cache, slog.Default())
	ctx := context.Background()

	items, err := cache.Items(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	// мутация через композер сбрасывает кэш
	_, err = c.CreateCompleteItem(ctx, glass.Item{NaturalKey: "cim-512-0", Name: "Mermaid", Manufacturer: "CiM"}, nil, nil)
	require.NoError(t, err)

	items, err = cache.Items(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
