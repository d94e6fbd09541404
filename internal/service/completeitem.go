package service

import (
	"github.com/Spok95/molten-bot/internal/domain/glass"
	"github.com/Spok95/molten-bot/internal/domain/inventory"
	"github.com/Spok95/molten-bot/internal/domain/tags"
)

// CompleteItem — денормализованное представление позиции: каталожная
// запись плюс её журнал, теги и места хранения. Нигде не хранится,
// собирается заново на каждое чтение.
type CompleteItem struct {
	Item      glass.Item
	Inventory []inventory.Record
	Tags      []string
	Locations []string
}

func (ci *CompleteItem) TotalQuantity() float64 {
	return inventory.TotalQuantity(ci.Inventory)
}

func (ci *CompleteItem) QuantityByType() map[string]float64 {
	return inventory.QuantityByType(ci.Inventory)
}

func (ci *CompleteItem) QuantityByLocation() map[string]float64 {
	return inventory.QuantityByLocation(ci.Inventory)
}

// SearchFields: к полям каталожной записи добавляются теги.
func (ci CompleteItem) SearchFields() []string {
	fields := ci.Item.SearchFields()
	return append(fields, tags.Join(ci.Tags))
}

// Compose — чистая сборка без побочных эффектов. Места хранения —
// различные непустые location из журнала. Теги дедуплицируются здесь:
// хранилище отдаёт каталожные и пользовательские вперемешку, и один
// тег может прийти из обоих источников.
func Compose(item glass.Item, records []inventory.Record, tagList []string) CompleteItem {
	return CompleteItem{
		Item:      item,
		Inventory: records,
		Tags:      tags.Dedup(tagList),
		Locations: inventory.Locations(records),
	}
}
