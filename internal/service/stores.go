package service

import (
	"context"

	"github.com/Spok95/molten-bot/internal/domain/glass"
	"github.com/Spok95/molten-bot/internal/domain/inventory"
	"github.com/Spok95/molten-bot/internal/domain/tags"
)

// Интерфейсы хранилищ, от которых зависит сборка полной позиции.
// Боевые реализации — pgx-репозитории доменных пакетов,
// тестовые — memstore. Сервису всё равно.

type GlassStore interface {
	Create(ctx context.Context, it glass.Item) (*glass.Item, error)
	GetByKey(ctx context.Context, key string) (*glass.Item, error)
	Update(ctx context.Context, it glass.Item) (*glass.Item, error)
	List(ctx context.Context) ([]glass.Item, error)
	ListKeys(ctx context.Context) ([]string, error)
}

type InventoryStore interface {
	Append(ctx context.Context, rec inventory.Record) (*inventory.Record, error)
	ListByItem(ctx context.Context, itemKey string) ([]inventory.Record, error)
	ListAll(ctx context.Context) ([]inventory.Record, error)
	Delete(ctx context.Context, id int64) error
}

type TagStore interface {
	Add(ctx context.Context, itemKey, tag string, src tags.Source) error
	ListByItem(ctx context.Context, itemKey string) ([]string, error)
	ListBySource(ctx context.Context, itemKey string, src tags.Source) ([]string, error)
	Replace(ctx context.Context, itemKey string, list []string, src tags.Source) error
}
