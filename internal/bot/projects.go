package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Spok95/molten-bot/internal/dialog"
	"github.com/Spok95/molten-bot/internal/domain/projects"
)

const maxProjectsListed = 10

func (b *Bot) showProjects(ctx context.Context, chatID int64) {
	entries, err := b.projects.ListRecent(ctx, maxProjectsListed)
	if err != nil {
		b.log.Error("projects list failed", "err", err)
		b.reply(chatID, "Не получилось прочитать журнал работ.")
		return
	}
	b.reply(chatID, formatProjects(entries))
}

func formatProjects(entries []projects.Entry) string {
	if len(entries) == 0 {
		return "Журнал работ пуст."
	}
	var sb strings.Builder
	sb.WriteString("Последние работы:\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "• %s — %s", e.Date.Format("02.01.2006"), e.Title)
		if len(e.Glass) > 0 {
			parts := make([]string, 0, len(e.Glass))
			for _, g := range e.Glass {
				parts = append(parts, fmt.Sprintf("%s %.4g", g.ItemKey, g.Quantity))
			}
			fmt.Fprintf(&sb, " (%s)", strings.Join(parts, ", "))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (b *Bot) onProjTitle(ctx context.Context, chatID int64, text string) {
	if text == "" {
		b.reply(chatID, "Название не может быть пустым.")
		return
	}
	_ = b.states.Set(ctx, chatID, dialog.StateProjNotes, dialog.Payload{"title": text})
	b.reply(chatID, "Заметки? («-» — без заметок)")
}

func (b *Bot) onProjNotes(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	if text == "-" {
		text = ""
	}
	st.Payload["notes"] = text
	st.Payload["glass"] = []any{}
	_ = b.states.Set(ctx, chatID, dialog.StateProjGlassKey, st.Payload)
	b.reply(chatID, "Какое стекло ушло? Пришлите ключ позиции, или «готово».")
}

func (b *Bot) onProjGlassKey(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	if strings.EqualFold(text, "готово") || strings.EqualFold(text, "done") {
		b.finishProject(ctx, chatID, st)
		return
	}

	ci, err := b.composer.GetCompleteItem(ctx, text)
	if err != nil {
		b.log.Error("item lookup failed", "err", err)
		b.reply(chatID, "Ошибка чтения каталога, попробуйте ещё раз.")
		return
	}
	if ci == nil {
		b.reply(chatID, "Нет такой позиции. Ключ или «готово».")
		return
	}
	st.Payload["cur_key"] = ci.Item.NaturalKey
	_ = b.states.Set(ctx, chatID, dialog.StateProjGlassQty, st.Payload)
	b.reply(chatID, fmt.Sprintf("Сколько ушло «%s»?", ci.Item.Name))
}

func (b *Bot) onProjGlassQty(ctx context.Context, chatID int64, st *dialog.Item, text string) {
	qty, err := parseQty(text)
	if err != nil {
		b.reply(chatID, "Нужно неотрицательное число.")
		return
	}
	key, _ := dialog.GetString(st.Payload, "cur_key")

	lines := b.glassLines(st.Payload["glass"])
	lines = append(lines, map[string]any{"key": key, "qty": qty})
	st.Payload["glass"] = lines
	delete(st.Payload, "cur_key")

	_ = b.states.Set(ctx, chatID, dialog.StateProjGlassKey, st.Payload)
	b.reply(chatID, "Записал. Ещё позиция или «готово».")
}

func (b *Bot) finishProject(ctx context.Context, chatID int64, st *dialog.Item) {
	title, _ := dialog.GetString(st.Payload, "title")
	notes, _ := dialog.GetString(st.Payload, "notes")

	entry := projects.Entry{Title: title, Notes: notes, Date: time.Now()}
	for _, line := range b.glassLines(st.Payload["glass"]) {
		key, _ := dialog.GetString(line, "key")
		qty, _ := dialog.GetFloat(line, "qty")
		if key == "" {
			continue
		}
		entry.Glass = append(entry.Glass, projects.GlassLine{ItemKey: key, Quantity: qty})
	}

	_ = b.states.Reset(ctx, chatID)

	created, err := b.projects.Create(ctx, entry)
	if err != nil {
		b.log.Error("project create failed", "err", err)
		b.reply(chatID, "Не получилось сохранить журнал.")
		return
	}
	b.reply(chatID, fmt.Sprintf("Записано в журнал: «%s», позиций стекла: %d", created.Title, len(created.Glass)))
}

// glassLines достаёт []map[string]any из payload["glass"]
func (b *Bot) glassLines(v any) []map[string]any {
	arr, ok := v.([]any)
	if !ok {
		if mm, ok2 := v.([]map[string]any); ok2 {
			return mm
		}
		return nil
	}
	out := make([]map[string]any, 0, len(arr))
	for _, e := range arr {
		if m, ok := e.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
