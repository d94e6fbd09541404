package bot

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/molten-bot/internal/dialog"
	"github.com/Spok95/molten-bot/internal/domain/shopping"
	"github.com/Spok95/molten-bot/internal/search"
)

/* Приход остатков */

func (b *Bot) onAddPickItem(ctx context.Context, chatID int64, text string) {
	// сначала пробуем как точный ключ
	ci, err := b.composer.GetCompleteItem(ctx, text)
	if err != nil {
		b.log.Error("item lookup failed", "err", err)
		b.reply(chatID, "Ошибка чтения каталога, попробуйте ещё раз.")
		return
	}
	if ci != nil {
		_ = b.states.Set(ctx, chatID, dialog.StateAddType, dialog.Payload{"item_key": ci.Item.NaturalKey})
		b.reply(chatID, fmt.Sprintf("%s\nТип записи? (rod, sheet, frit, buy, inventory...)", ci.Item.Name))
		return
	}

	// иначе — как поисковый запрос
	items, err := b.composer.ListComplete(ctx)
	if err != nil {
		b.log.Error("catalog list failed", "err", err)
		b.reply(chatID, "Ошибка чтения каталога, попробуйте ещё раз.")
		return
	}
	found := search.Filter(items, text)
	switch {
	case len(found) == 0:
		b.reply(chatID, "Ничего не нашлось, попробуйте другой запрос.")
	case len(found) == 1:
		key := found[0].Item.NaturalKey
		_ = b.states.Set(ctx, chatID, dialog.StateAddType, dialog.Payload{"item_key": key})
		b.reply(chatID, fmt.Sprintf("%s\nТип записи? (rod, sheet, frit, buy, inventory...)", found[0].Item.Name))
	default:
		var sb strings.Builder
		sb.WriteString("Нашлось несколько, пришлите точный ключ:\n")
		for i, ci := range found {
			if i == maxSearchResults {
				break
			}
			fmt.Fprintf(&sb, "%s — %s\n", ci.Item.NaturalKey, ci.Item.Name)
		}
		b.reply(chatID, sb.String())
	}
}

func (b *Bot) onAddType(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	typ := strings.ToLower(strings.TrimSpace(text))
	if typ == "" {
		b.reply(chatID, "Тип не может быть пустым.")
		return
	}
	st.Payload["type"] = typ
	_ = b.states.Set(ctx, chatID, dialog.StateAddQty, st.Payload)
	b.reply(chatID, "Количество? (0 допустим)")
}

func (b *Bot) onAddQty(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	qty, err := parseQty(text)
	if err != nil {
		b.reply(chatID, "Нужно неотрицательное число, например 12 или 3.5")
		return
	}
	st.Payload["qty"] = qty
	_ = b.states.Set(ctx, chatID, dialog.StateAddLocation, st.Payload)

	prompt := "Место хранения? («-» — без места)"
	if locs, err := b.inventory.ListLocations(ctx); err == nil && len(locs) > 0 {
		prompt += "\nУже есть: " + strings.Join(locs, ", ")
	}
	b.reply(chatID, prompt)
}

func (b *Bot) onAddLocation(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	itemKey, _ := dialog.GetString(st.Payload, "item_key")
	typ, _ := dialog.GetString(st.Payload, "type")
	qty, _ := dialog.GetFloat(st.Payload, "qty")

	var location *string
	if loc := strings.TrimSpace(text); loc != "" && loc != "-" {
		location = &loc
	}

	_ = b.states.Reset(ctx, chatID)

	if _, err := b.composer.AddInventory(ctx, itemKey, typ, qty, location); err != nil {
		b.log.Error("add inventory failed", "err", err, "key", itemKey)
		b.reply(chatID, "Не получилось записать приход: "+err.Error())
		return
	}

	// текущее количество показываем только пересчитав журнал заново
	ci, err := b.composer.GetCompleteItem(ctx, itemKey)
	if err != nil || ci == nil {
		b.reply(chatID, "Записано.")
		return
	}
	b.reply(chatID, fmt.Sprintf("Записано. Теперь «%s»: %.4g (%s: %.4g)",
		ci.Item.Name, ci.TotalQuantity(), typ, ci.QuantityByType()[typ]))
}

func parseQty(text string) (float64, error) {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	qty, err := strconv.ParseFloat(text, 64)
	// ParseFloat принимает "NaN" и "Inf", а NaN ещё и проходит qty < 0;
	// в журнале такому не место — NaN отравил бы все суммы.
	if err != nil || qty < 0 || math.IsNaN(qty) || math.IsInf(qty, 0) {
		return 0, fmt.Errorf("bad quantity %q", text)
	}
	return qty, nil
}

/* Журнал по позиции */

func (b *Bot) showRecords(ctx context.Context, chatID int64, key string) {
	if key == "" {
		b.reply(chatID, "Нужен ключ позиции: /records <ключ>")
		return
	}
	recs, err := b.inventory.ListByItem(ctx, key)
	if err != nil {
		b.log.Error("records list failed", "err", err, "key", key)
		b.reply(chatID, "Не получилось прочитать журнал.")
		return
	}
	if len(recs) == 0 {
		b.reply(chatID, "Журнал пуст.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Журнал «%s»:\n", key)
	for _, r := range recs {
		loc := "—"
		if r.Location != nil {
			loc = *r.Location
		}
		fmt.Fprintf(&sb, "#%d %s %.4g (%s)\n", r.ID, r.Type, r.Quantity, loc)
	}
	sb.WriteString("Удалить запись: /delrec <номер>")
	b.reply(chatID, sb.String())
}

func (b *Bot) deleteRecord(ctx context.Context, chatID int64, args string) {
	if !b.isAdmin(chatID) {
		b.reply(chatID, "Удалять записи может только админ.")
		return
	}
	id, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil {
		b.reply(chatID, "Нужен номер записи: /delrec <номер>")
		return
	}
	if err := b.composer.DeleteInventory(ctx, id); err != nil {
		b.log.Error("record delete failed", "err", err, "id", id)
		b.reply(chatID, "Не получилось удалить запись.")
		return
	}
	b.reply(chatID, fmt.Sprintf("Запись #%d удалена.", id))
}

/* Низкие остатки */

func (b *Bot) showLowStock(ctx context.Context, chatID int64) {
	report, err := b.composer.LowStockReport(ctx, b.lowStockThreshold)
	if err != nil {
		b.log.Error("low stock report failed", "err", err)
		b.reply(chatID, "Не получилось собрать отчёт.")
		return
	}
	if len(report) == 0 {
		b.reply(chatID, fmt.Sprintf("Всё в порядке, ниже %.4g ничего нет.", b.lowStockThreshold))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Заканчивается (порог %.4g):\n", b.lowStockThreshold)
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, e := range report {
		fmt.Fprintf(&sb, "%.4g — %s (%s)\n", e.Total, e.Item.Name, e.Item.NaturalKey)
		if i < 5 {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("В покупки: "+e.Item.Name, "restock:"+e.Item.NaturalKey),
			))
		}
	}

	msg := tgbotapi.NewMessage(chatID, sb.String())
	if len(rows) > 0 {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	}
	b.send(msg)
}

func (b *Bot) onRestock(ctx context.Context, cb *tgbotapi.CallbackQuery, chatID int64, itemKey string) {
	open, err := b.shopping.HasOpenForItem(ctx, itemKey)
	if err != nil {
		b.answerCallback(cb, "Ошибка списка покупок", true)
		return
	}
	if open {
		b.answerCallback(cb, "Уже в списке покупок", false)
		return
	}

	ci, err := b.composer.GetCompleteItem(ctx, itemKey)
	if err != nil || ci == nil {
		b.answerCallback(cb, "Позиция не найдена", true)
		return
	}
	if _, err := b.shopping.Create(ctx, shopping.Entry{
		ItemKey:  &itemKey,
		Name:     ci.Item.Name,
		Quantity: b.lowStockThreshold,
	}); err != nil {
		b.log.Error("shopping create failed", "err", err)
		b.answerCallback(cb, "Не получилось добавить", true)
		return
	}
	b.answerCallback(cb, "Добавлено в покупки", false)
}

func sortedFloatKeys(m map[string]float64) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
