package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/Spok95/molten-bot/internal/domain/tags"
	"github.com/Spok95/molten-bot/internal/search"
	"github.com/Spok95/molten-bot/internal/service"
)

const maxSearchResults = 10

func (b *Bot) onSearchQuery(ctx context.Context, chatID int64, query string) {
	_ = b.states.Reset(ctx, chatID)

	items, err := b.composer.ListComplete(ctx)
	if err != nil {
		b.log.Error("catalog list failed", "err", err)
		b.reply(chatID, "Не получилось прочитать каталог.")
		return
	}

	found := search.Filter(items, query)
	if len(found) == 0 {
		b.reply(chatID, "Ничего не нашлось.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Найдено: %d\n", len(found))
	for i, ci := range found {
		if i == maxSearchResults {
			fmt.Fprintf(&sb, "… и ещё %d. Уточните запрос.\n", len(found)-maxSearchResults)
			break
		}
		fmt.Fprintf(&sb, "%s — %s (%.4g)\n", ci.Item.NaturalKey, ci.Item.Name, ci.TotalQuantity())
	}
	sb.WriteString("\nКарточка: /item <ключ>")
	b.reply(chatID, sb.String())
}

func (b *Bot) showItemCard(ctx context.Context, chatID int64, key string) {
	key = strings.TrimSpace(key)
	if key == "" {
		b.reply(chatID, "Нужен ключ позиции: /item <ключ>")
		return
	}

	ci, err := b.composer.GetCompleteItem(ctx, key)
	if err != nil {
		b.log.Error("complete item read failed", "err", err, "key", key)
		b.reply(chatID, "Не получилось прочитать позицию.")
		return
	}
	if ci == nil {
		b.reply(chatID, "Позиция не найдена: "+key)
		return
	}

	card := renderCard(ci)
	if used, err := b.projects.UsageByItem(ctx, key); err == nil && used > 0 {
		card += fmt.Sprintf("\nИзрасходовано в работах: %.4g", used)
	}
	b.reply(chatID, card)
}

func renderCard(ci *service.CompleteItem) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n%s · %s · COE %d · %s\n", ci.Item.Name, ci.Item.Manufacturer, ci.Item.Code, ci.Item.COE, ci.Item.Status)
	if len(ci.Tags) > 0 {
		fmt.Fprintf(&sb, "Теги: %s\n", tags.Join(ci.Tags))
	}

	fmt.Fprintf(&sb, "\nОстаток: %.4g\n", ci.TotalQuantity())
	byType := ci.QuantityByType()
	for _, typ := range sortedFloatKeys(byType) {
		fmt.Fprintf(&sb, "  %s: %.4g\n", typ, byType[typ])
	}
	byLoc := ci.QuantityByLocation()
	if len(byLoc) > 0 {
		sb.WriteString("По местам:\n")
		for _, loc := range sortedFloatKeys(byLoc) {
			fmt.Fprintf(&sb, "  %s: %.4g\n", loc, byLoc[loc])
		}
	}
	if ci.Item.Notes != "" {
		fmt.Fprintf(&sb, "\n%s\n", ci.Item.Notes)
	}
	return sb.String()
}
