package dialog

type State string

const (
	StateIdle State = "idle"

	// Поиск по каталогу
	StateSearchQuery State = "search_query" // ожидание строки запроса
	StateItemCard    State = "item_card"    // карточка позиции

	// Приход остатков
	StateAddPickItem State = "add_pick_item" // выбор позиции (строкой поиска)
	StateAddType     State = "add_type"      // форма/направление (rod, frit, buy...)
	StateAddQty      State = "add_qty"
	StateAddLocation State = "add_location" // место хранения, "-" = без места

	// Список покупок
	StateShopMenu    State = "shop_menu"
	StateShopAddName State = "shop_add_name"
	StateShopAddQty  State = "shop_add_qty"

	// Журнал работ
	StateProjTitle    State = "proj_title"
	StateProjNotes    State = "proj_notes"
	StateProjGlassKey State = "proj_glass_key" // ключ позиции или "готово"
	StateProjGlassQty State = "proj_glass_qty"
)

type Payload map[string]any

type Item struct {
	ChatID  int64
	State   State
	Payload Payload
}
