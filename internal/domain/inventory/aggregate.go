package inventory

import (
	"fmt"
	"sort"
)

// Агрегация всегда считается заново по полному набору записей,
// кэшировать здесь нечего. Пустой набор — нулевые агрегаты, не ошибка.

// TotalQuantity — сумма количеств по всем записям.
func TotalQuantity(records []Record) float64 {
	var total float64
	for _, r := range records {
		total += r.Quantity
	}
	return total
}

// QuantityByType группирует по типу и суммирует количества.
func QuantityByType(records []Record) map[string]float64 {
	out := make(map[string]float64)
	for _, r := range records {
		out[r.Type] += r.Quantity
	}
	return out
}

// QuantityByLocation группирует по месту. Записи без места не попадают
// ни в какую корзину вообще, сентинела для них нет.
func QuantityByLocation(records []Record) map[string]float64 {
	out := make(map[string]float64)
	for _, r := range records {
		if r.Location == nil {
			continue
		}
		out[*r.Location] += r.Quantity
	}
	return out
}

// Locations — отсортированный список различных мест хранения.
func Locations(records []Record) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		if r.Location == nil {
			continue
		}
		seen[*r.Location] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for loc := range seen {
		out = append(out, loc)
	}
	sort.Strings(out)
	return out
}

// IsLowStock — порог включительно: остаток ровно на пороге уже мало.
func IsLowStock(records []Record, threshold float64) bool {
	return TotalQuantity(records) <= threshold
}

type LowStockItem struct {
	ItemKey string
	Total   float64
}

// LowStockReport отбирает позиции с остатком не выше порога и сортирует
// по возрастанию остатка — что докупать первым, стоит первым. Порядок
// полный и стабильный: при равных остатках решает ключ позиции.
func LowStockReport(byItem map[string][]Record, threshold float64) []LowStockItem {
	var out []LowStockItem
	for key, records := range byItem {
		total := TotalQuantity(records)
		if total <= threshold {
			out = append(out, LowStockItem{ItemKey: key, Total: total})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total < out[j].Total
		}
		return out[i].ItemKey < out[j].ItemKey
	})
	return out
}

type ValidationResult struct {
	Valid  bool
	Errors []string
}

// Validate проверяет согласованность набора записей одной позиции:
// ключ должен быть известен, количества неотрицательны.
// Пустой набор записей валиден.
func Validate(itemKey string, records []Record, knownKeys map[string]struct{}) ValidationResult {
	var errs []string
	if _, ok := knownKeys[itemKey]; !ok {
		errs = append(errs, fmt.Sprintf("item not found: %s", itemKey))
	}
	for _, r := range records {
		if r.Quantity < 0 {
			errs = append(errs, fmt.Sprintf("negative quantity %v in record %d", r.Quantity, r.ID))
		}
	}
	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}
