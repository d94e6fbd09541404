package bot

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/molten-bot/internal/dialog"
)

const helpText = `Команды:
/search <текст> — поиск по каталогу (фразы в "кавычках")
/item <ключ> — карточка позиции
/add — приход остатков
/records <ключ> — журнал по позиции
/delrec <номер> — удалить запись журнала (админ)
/lowstock — что заканчивается
/shopping — список покупок
/project — записать работу в журнал
/projects — последние работы
/export — остатки в Excel
/export_shopping — список покупок в Excel
/import — обновить каталог из файла (админ)
/cancel — прервать текущий диалог`

func (b *Bot) onMessage(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	if msg.IsCommand() {
		b.onCommand(ctx, chatID, msg.Command(), strings.TrimSpace(msg.CommandArguments()))
		return
	}

	st, err := b.states.Get(ctx, chatID)
	if err != nil {
		b.log.Error("dialog state read failed", "err", err, "chat", chatID)
		return
	}

	switch st.State {
	case dialog.StateSearchQuery:
		b.onSearchQuery(ctx, chatID, text)
	case dialog.StateAddPickItem:
		b.onAddPickItem(ctx, chatID, text)
	case dialog.StateAddType:
		b.onAddType(ctx, chatID, st, text)
	case dialog.StateAddQty:
		b.onAddQty(ctx, chatID, st, text)
	case dialog.StateAddLocation:
		b.onAddLocation(ctx, chatID, st, text)
	case dialog.StateShopAddName:
		b.onShopAddName(ctx, chatID, text)
	case dialog.StateShopAddQty:
		b.onShopAddQty(ctx, chatID, st, text)
	case dialog.StateProjTitle:
		b.onProjTitle(ctx, chatID, text)
	case dialog.StateProjNotes:
		b.onProjNotes(ctx, chatID, st, text)
	case dialog.StateProjGlassKey:
		b.onProjGlassKey(ctx, chatID, st, text)
	case dialog.StateProjGlassQty:
		b.onProjGlassQty(ctx, chatID, st, text)
	default:
		b.reply(chatID, helpText)
	}
}

func (b *Bot) onCommand(ctx context.Context, chatID int64, cmd, args string) {
	switch cmd {
	case "start", "help":
		b.reply(chatID, helpText)
	case "cancel":
		_ = b.states.Reset(ctx, chatID)
		b.reply(chatID, "Ок, диалог сброшен.")
	case "search":
		if args != "" {
			b.onSearchQuery(ctx, chatID, args)
			return
		}
		_ = b.states.Set(ctx, chatID, dialog.StateSearchQuery, dialog.Payload{})
		prompt := "Что ищем? Фразы можно брать в \"кавычки\"."
		if all, err := b.tags.All(ctx); err == nil && len(all) > 0 {
			if len(all) > 12 {
				all = all[:12]
			}
			prompt += "\nТеги: " + strings.Join(all, ", ")
		}
		b.reply(chatID, prompt)
	case "item":
		b.showItemCard(ctx, chatID, args)
	case "add":
		_ = b.states.Set(ctx, chatID, dialog.StateAddPickItem, dialog.Payload{})
		b.reply(chatID, "Приход: пришлите ключ позиции или строку поиска.")
	case "records":
		b.showRecords(ctx, chatID, args)
	case "delrec":
		b.deleteRecord(ctx, chatID, args)
	case "lowstock":
		b.showLowStock(ctx, chatID)
	case "shopping":
		b.showShopping(ctx, chatID)
	case "project":
		_ = b.states.Set(ctx, chatID, dialog.StateProjTitle, dialog.Payload{})
		b.reply(chatID, "Название работы?")
	case "projects":
		b.showProjects(ctx, chatID)
	case "export":
		b.exportStock(ctx, chatID)
	case "export_shopping":
		b.exportShopping(ctx, chatID)
	case "import":
		b.runImport(ctx, chatID)
	default:
		b.reply(chatID, "Не знаю такую команду. /help")
	}
}

func (b *Bot) onCallback(ctx context.Context, upd tgbotapi.Update) {
	cb := upd.CallbackQuery
	chatID := cb.Message.Chat.ID
	data := cb.Data

	switch {
	case strings.HasPrefix(data, "shop_done:"):
		b.onShopDone(ctx, cb, chatID, strings.TrimPrefix(data, "shop_done:"))
	case strings.HasPrefix(data, "restock:"):
		b.onRestock(ctx, cb, chatID, strings.TrimPrefix(data, "restock:"))
	case strings.HasPrefix(data, "shop_add"):
		b.answerCallback(cb, "", false)
		_ = b.states.Set(ctx, chatID, dialog.StateShopAddName, dialog.Payload{})
		b.reply(chatID, "Что купить?")
	default:
		b.answerCallback(cb, "", false)
	}
}
