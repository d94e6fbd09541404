package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loc(s string) *string { return &s }

func TestTotalQuantity(t *testing.T) {
	assert.Equal(t, 0.0, TotalQuantity(nil))
	assert.Equal(t, 8.0, TotalQuantity([]Record{
		{Type: TypeRod, Quantity: 5},
		{Type: TypeRod, Quantity: 3},
	}))
	// ноль — валидное количество
	assert.Equal(t, 5.0, TotalQuantity([]Record{
		{Type: TypeRod, Quantity: 5},
		{Type: TypeFrit, Quantity: 0},
	}))
}

func TestQuantityByTypeSumsPerGroup(t *testing.T) {
	records := []Record{
		{Type: TypeRod, Quantity: 5},
		{Type: TypeRod, Quantity: 3},
		{Type: TypeFrit, Quantity: 2.5},
	}
	byType := QuantityByType(records)
	assert.Equal(t, 8.0, byType[TypeRod])
	assert.Equal(t, 2.5, byType[TypeFrit])

	// инвариант: сумма корзин равна общему количеству
	var sum float64
	for _, v := range byType {
		sum += v
	}
	assert.Equal(t, TotalQuantity(records), sum)
}

func TestQuantityByLocationSkipsNil(t *testing.T) {
	records := []Record{
		{Type: TypeRod, Quantity: 5, Location: loc("ShelfA")},
		{Type: TypeRod, Quantity: 3, Location: loc("ShelfB")},
		{Type: TypeRod, Quantity: 2}, // без места — ни в какую корзину
	}
	byLoc := QuantityByLocation(records)
	require.Len(t, byLoc, 2)
	assert.Equal(t, 5.0, byLoc["ShelfA"])
	assert.Equal(t, 3.0, byLoc["ShelfB"])
}

// Сценарий из постановки: rod 5 на ShelfA и rod 3 на ShelfB.
func TestScenarioTwoShelves(t *testing.T) {
	records := []Record{
		{Type: "rod", Quantity: 5, Location: loc("ShelfA")},
		{Type: "rod", Quantity: 3, Location: loc("ShelfB")},
	}
	assert.Equal(t, 8.0, QuantityByType(records)["rod"])
	assert.Equal(t, 5.0, QuantityByLocation(records)["ShelfA"])
	assert.Equal(t, 3.0, QuantityByLocation(records)["ShelfB"])
	assert.Equal(t, 8.0, TotalQuantity(records))
}

func TestLocations(t *testing.T) {
	records := []Record{
		{Location: loc("B")},
		{Location: loc("A")},
		{Location: nil},
		{Location: loc("A")},
	}
	assert.Equal(t, []string{"A", "B"}, Locations(records))
}

func TestIsLowStockInclusiveThreshold(t *testing.T) {
	records := []Record{{Quantity: 5}}
	assert.True(t, IsLowStock(records, 5)) // порог включительно
	assert.True(t, IsLowStock(records, 6))
	assert.False(t, IsLowStock(records, 4.9))
	assert.True(t, IsLowStock(nil, 0))
}

func TestLowStockReportSortedAscending(t *testing.T) {
	byItem := map[string][]Record{
		"c": {{Quantity: 3}},
		"a": {{Quantity: 7}},
		"b": {{Quantity: 1}},
		"d": {{Quantity: 100}}, // выше порога, не попадёт
	}
	report := LowStockReport(byItem, 10)
	require.Len(t, report, 3)
	for i := 0; i+1 < len(report); i++ {
		assert.LessOrEqual(t, report[i].Total, report[i+1].Total)
	}
	assert.Equal(t, "b", report[0].ItemKey)
	assert.Equal(t, "a", report[2].ItemKey)
}

func TestLowStockReportTiesBrokenByKey(t *testing.T) {
	byItem := map[string][]Record{
		"z": {{Quantity: 2}},
		"a": {{Quantity: 2}},
		"m": {{Quantity: 2}},
	}
	report := LowStockReport(byItem, 5)
	require.Len(t, report, 3)
	assert.Equal(t, "a", report[0].ItemKey)
	assert.Equal(t, "m", report[1].ItemKey)
	assert.Equal(t, "z", report[2].ItemKey)
}

func TestValidate(t *testing.T) {
	known := map[string]struct{}{"effetre-591006-0": {}}

	t.Run("неизвестный ключ", func(t *testing.T) {
		res := Validate("nope", []Record{{Quantity: 5}}, known)
		assert.False(t, res.Valid)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "not found")
	})

	t.Run("неизвестный ключ и пустые записи", func(t *testing.T) {
		res := Validate("nope", nil, known)
		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors[0], "not found")
	})

	t.Run("отрицательное количество", func(t *testing.T) {
		res := Validate("effetre-591006-0", []Record{{ID: 7, Quantity: -1}}, known)
		assert.False(t, res.Valid)
		require.Len(t, res.Errors, 1)
		assert.Contains(t, res.Errors[0], "negative")
	})

	t.Run("пустой набор валиден", func(t *testing.T) {
		res := Validate("effetre-591006-0", nil, known)
		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
	})

	t.Run("ноль валиден", func(t *testing.T) {
		res := Validate("effetre-591006-0", []Record{{Quantity: 0}}, known)
		assert.True(t, res.Valid)
	})
}
