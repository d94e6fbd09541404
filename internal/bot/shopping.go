package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/molten-bot/internal/dialog"
	"github.com/Spok95/molten-bot/internal/domain/shopping"
)

func (b *Bot) showShopping(ctx context.Context, chatID int64) {
	entries, err := b.shopping.List(ctx, false)
	if err != nil {
		b.log.Error("shopping list failed", "err", err)
		b.reply(chatID, "Не получилось прочитать список покупок.")
		return
	}

	var sb strings.Builder
	if len(entries) == 0 {
		sb.WriteString("Список покупок пуст.")
	} else {
		sb.WriteString("Список покупок:\n")
		for _, e := range entries {
			fmt.Fprintf(&sb, "• %s — %.4g", e.Name, e.Quantity)
			if e.Store != "" {
				fmt.Fprintf(&sb, " (%s)", e.Store)
			}
			sb.WriteString("\n")
		}
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for i, e := range entries {
		if i == 8 {
			break
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Куплено: "+e.Name, fmt.Sprintf("shop_done:%d", e.ID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Добавить", "shop_add"),
	))

	msg := tgbotapi.NewMessage(chatID, sb.String())
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	b.send(msg)
}

func (b *Bot) onShopDone(ctx context.Context, cb *tgbotapi.CallbackQuery, chatID int64, rawID string) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		b.answerCallback(cb, "", false)
		return
	}
	if err := b.shopping.SetDone(ctx, id, true); err != nil {
		b.log.Error("shopping set done failed", "err", err, "id", id)
		b.answerCallback(cb, "Не получилось отметить", true)
		return
	}
	b.answerCallback(cb, "Отмечено", false)
	b.showShopping(ctx, chatID)
}

func (b *Bot) onShopAddName(ctx context.Context, chatID int64, text string) {
	if text == "" {
		b.reply(chatID, "Название не может быть пустым.")
		return
	}
	_ = b.states.Set(ctx, chatID, dialog.StateShopAddQty, dialog.Payload{"name": text})
	b.reply(chatID, "Сколько?")
}

func (b *Bot) onShopAddQty(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	qty, err := parseQty(text)
	if err != nil {
		b.reply(chatID, "Нужно неотрицательное число.")
		return
	}
	name, _ := dialog.GetString(st.Payload, "name")
	_ = b.states.Reset(ctx, chatID)

	if _, err := b.shopping.Create(ctx, shopping.Entry{Name: name, Quantity: qty}); err != nil {
		b.log.Error("shopping create failed", "err", err)
		b.reply(chatID, "Не получилось добавить.")
		return
	}
	b.reply(chatID, fmt.Sprintf("Добавлено: %s — %.4g", name, qty))
}
