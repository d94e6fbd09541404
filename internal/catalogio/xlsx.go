package catalogio

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/molten-bot/internal/domain/shopping"
	"github.com/Spok95/molten-bot/internal/domain/tags"
	"github.com/Spok95/molten-bot/internal/service"
)

// BuildStockWorkbook — выгрузка текущих остатков по каталогу.
func BuildStockWorkbook(items []service.CompleteItem) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"natural_key",
		"name",
		"manufacturer",
		"code",
		"coe",
		"status",
		"total_quantity",
		"by_type",
		"locations",
		"tags",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	row := 2
	for _, ci := range items {
		byType := ci.QuantityByType()
		parts := make([]string, 0, len(byType))
		for _, typ := range sortedKeys(byType) {
			parts = append(parts, fmt.Sprintf("%s=%g", typ, byType[typ]))
		}

		excelRow := []interface{}{
			ci.Item.NaturalKey,
			ci.Item.Name,
			ci.Item.Manufacturer,
			ci.Item.Code,
			ci.Item.COE,
			string(ci.Item.Status),
			ci.TotalQuantity(),
			strings.Join(parts, "; "),
			strings.Join(ci.Locations, "; "),
			tags.Join(ci.Tags),
		}
		cell := fmt.Sprintf("A%d", row)
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, err
		}
		row++
	}
	return f, nil
}

// BuildShoppingWorkbook — выгрузка списка покупок.
func BuildShoppingWorkbook(entries []shopping.Entry) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{"name", "item_key", "quantity", "store", "done"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	row := 2
	for _, e := range entries {
		key := ""
		if e.ItemKey != nil {
			key = *e.ItemKey
		}
		excelRow := []interface{}{e.Name, key, e.Quantity, e.Store, e.Done}
		cell := fmt.Sprintf("A%d", row)
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, err
		}
		row++
	}
	return f, nil
}

func sortedKeys(m map[string]float64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
