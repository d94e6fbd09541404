package inventory

import "time"

// Базовые типы записей. Поле Type свободное — помимо направления
// движения ("buy"/"sell"/"use") туда же пишут форму стекла
// ("rod"/"sheet"/"frit"), новые значения ничего не ломают.
const (
	TypeInventory = "inventory"
	TypeBuy       = "buy"
	TypeSell      = "sell"
	TypeUse       = "use"
	TypeRod       = "rod"
	TypeSheet     = "sheet"
	TypeFrit      = "frit"
)

// Record — одна запись журнала остатков. Журнал только пополняется:
// изменение количества это всегда новая запись, никогда не правка старой.
// ItemKey ссылается на glass_items.natural_key без внешнего ключа,
// осиротевшие ссылки допустимы и должны переживаться молча.
type Record struct {
	ID        int64
	ItemKey   string
	Type      string
	Quantity  float64 // неотрицательное, ноль допустим
	Location  *string // nil = место не указано, в разрез по местам не попадает
	CreatedAt time.Time
}
