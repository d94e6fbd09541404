package glass

import (
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusAvailable    Status = "available"
	StatusDiscontinued Status = "discontinued"
)

// Item — позиция каталога стекла. NaturalKey неизменяем после создания,
// обновление записи идёт полной заменой остальных полей.
type Item struct {
	NaturalKey   string
	Name         string
	SKU          string // сырой код производителя, без префикса
	Manufacturer string
	Code         string // полный код вида "MANUFACTURER-RAWCODE"
	COE          int
	Status       Status
	Notes        string
	URL          string
	ImagePath    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MakeNaturalKey собирает ключ вида "manufacturer-sku-sequence".
// sequence нужен для различения дублей одного артикула.
func MakeNaturalKey(manufacturer, sku string, sequence int) string {
	m := strings.ToLower(strings.TrimSpace(manufacturer))
	s := strings.ToLower(strings.TrimSpace(sku))
	return fmt.Sprintf("%s-%s-%d", m, s, sequence)
}

// SearchFields — текстовые поля, по которым работает поиск.
func (i Item) SearchFields() []string {
	return []string{i.Name, i.Code, i.Manufacturer, i.SKU, i.NaturalKey}
}
