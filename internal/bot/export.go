package bot

import (
	"context"
	"fmt"
	"os"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/molten-bot/internal/catalogio"
)

func (b *Bot) exportStock(ctx context.Context, chatID int64) {
	items, err := b.composer.ListComplete(ctx)
	if err != nil {
		b.log.Error("catalog list failed", "err", err)
		b.reply(chatID, "Не получилось собрать остатки.")
		return
	}

	f, err := catalogio.BuildStockWorkbook(items)
	if err != nil {
		b.log.Error("stock workbook failed", "err", err)
		b.reply(chatID, "Ошибка формирования файла.")
		return
	}
	defer func() { _ = f.Close() }()

	buf, err := f.WriteToBuffer()
	if err != nil {
		b.log.Error("stock workbook write failed", "err", err)
		b.reply(chatID, "Ошибка формирования файла.")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: "stock.xlsx", Bytes: buf.Bytes()})
	doc.Caption = fmt.Sprintf("Остатки, позиций: %d", len(items))
	b.send(doc)
}

func (b *Bot) exportShopping(ctx context.Context, chatID int64) {
	entries, err := b.shopping.List(ctx, true)
	if err != nil {
		b.log.Error("shopping list failed", "err", err)
		b.reply(chatID, "Не получилось прочитать список покупок.")
		return
	}

	f, err := catalogio.BuildShoppingWorkbook(entries)
	if err != nil {
		b.log.Error("shopping workbook failed", "err", err)
		b.reply(chatID, "Ошибка формирования файла.")
		return
	}
	defer func() { _ = f.Close() }()

	buf, err := f.WriteToBuffer()
	if err != nil {
		b.log.Error("shopping workbook write failed", "err", err)
		b.reply(chatID, "Ошибка формирования файла.")
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: "shopping.xlsx", Bytes: buf.Bytes()})
	b.send(doc)
}

// runImport обновляет каталог из файла скрейпера. Только для админа —
// импорт переписывает каталожные записи.
func (b *Bot) runImport(ctx context.Context, chatID int64) {
	if !b.isAdmin(chatID) {
		b.reply(chatID, "Импорт доступен только администратору.")
		return
	}
	if b.catalogPath == "" {
		b.reply(chatID, "Путь к файлу каталога не настроен (catalog.path).")
		return
	}

	file, err := os.Open(b.catalogPath)
	if err != nil {
		b.log.Error("catalog file open failed", "err", err, "path", b.catalogPath)
		b.reply(chatID, "Не получилось открыть файл каталога.")
		return
	}
	defer func() { _ = file.Close() }()

	db, err := catalogio.Load(file)
	if err != nil {
		b.log.Error("catalog decode failed", "err", err)
		b.reply(chatID, "Файл каталога не читается: "+err.Error())
		return
	}

	stats, err := b.importer.Run(ctx, db)
	if err != nil {
		b.log.Error("catalog import failed", "err", err)
		b.reply(chatID, "Импорт прерван: "+err.Error())
		return
	}
	b.reply(chatID, fmt.Sprintf(
		"Импорт завершён.\nНовых: %d\nОбновлено: %d\nБез изменений: %d\nСнято с производства: %d",
		stats.New, stats.Updated, stats.Unchanged, stats.Discontinued))
}
