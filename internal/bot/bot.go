package bot

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/molten-bot/internal/catalogio"
	"github.com/Spok95/molten-bot/internal/dialog"
	"github.com/Spok95/molten-bot/internal/domain/inventory"
	"github.com/Spok95/molten-bot/internal/domain/projects"
	"github.com/Spok95/molten-bot/internal/domain/shopping"
	"github.com/Spok95/molten-bot/internal/domain/tags"
	"github.com/Spok95/molten-bot/internal/service"
)

type Bot struct {
	api       *tgbotapi.BotAPI
	log       *slog.Logger
	states    *dialog.Repo
	adminChat int64

	composer  *service.Composer
	inventory *inventory.Repo
	shopping  *shopping.Repo
	projects  *projects.Repo
	tags      *tags.Repo
	importer  *catalogio.Importer

	lowStockThreshold float64
	catalogPath       string
}

type Deps struct {
	API               *tgbotapi.BotAPI
	Log               *slog.Logger
	States            *dialog.Repo
	AdminChatID       int64
	Composer          *service.Composer
	Inventory         *inventory.Repo
	Shopping          *shopping.Repo
	Projects          *projects.Repo
	Tags              *tags.Repo
	Importer          *catalogio.Importer
	LowStockThreshold float64
	CatalogPath       string
}

func New(d Deps) *Bot {
	return &Bot{
		api:               d.API,
		log:               d.Log,
		states:            d.States,
		adminChat:         d.AdminChatID,
		composer:          d.Composer,
		inventory:         d.Inventory,
		shopping:          d.Shopping,
		projects:          d.Projects,
		tags:              d.Tags,
		importer:          d.Importer,
		lowStockThreshold: d.LowStockThreshold,
		catalogPath:       d.CatalogPath,
	}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				b.onMessage(ctx, upd)
			} else if upd.CallbackQuery != nil {
				b.onCallback(ctx, upd)
			}
		}
	}
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string, alert bool) {
	resp := tgbotapi.NewCallback(cb.ID, text)
	resp.ShowAlert = alert
	if _, err := b.api.Request(resp); err != nil {
		b.log.Error("callback answer failed", "err", err)
	}
}

func (b *Bot) isAdmin(chatID int64) bool {
	return chatID == b.adminChat
}
