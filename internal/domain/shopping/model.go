package shopping

import "time"

// Entry — позиция списка покупок. ItemKey заполняется, когда позиция
// привязана к каталогу; свободные покупки живут только с Name.
type Entry struct {
	ID        int64
	ItemKey   *string
	Name      string
	Quantity  float64
	Store     string // где покупать, свободный текст
	Done      bool
	CreatedAt time.Time
}
