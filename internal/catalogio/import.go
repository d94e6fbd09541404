// Package catalogio — импорт каталога из glass_database.json и выгрузки
// в Excel. Схема JSON принадлежит скраперам, тут только читаем её.
package catalogio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/Spok95/molten-bot/internal/domain/glass"
	"github.com/Spok95/molten-bot/internal/domain/tags"
	"github.com/Spok95/molten-bot/internal/infra/metrics"
	"github.com/Spok95/molten-bot/internal/service"
)

// Database — файл, который ведёт скрейпер: products по ключу "MFR:CODE".
type Database struct {
	Version  string             `json:"version"`
	Products map[string]Product `json:"products"`
}

type Product struct {
	Manufacturer string `json:"manufacturer"`
	Code         string `json:"code"`
	Name         string `json:"name"`
	COE          string `json:"coe"`
	Tags         string `json:"tags"` // через запятую
	URL          string `json:"manufacturer_url"`
	Description  string `json:"manufacturer_description"`
	ImagePath    string `json:"image_path"`
	Status       string `json:"status"`
	StableID     string `json:"stable_id"`
}

func Load(r io.Reader) (*Database, error) {
	var db Database
	if err := json.NewDecoder(r).Decode(&db); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return &db, nil
}

type Stats struct {
	New          int
	Updated      int
	Unchanged    int
	Discontinued int
}

// Importer сводит файл каталога с хранилищем: новое создаёт, изменённое
// заменяет, исчезнувшее помечает discontinued — исторические данные
// никогда не удаляются.
type Importer struct {
	glass service.GlassStore
	tags  service.TagStore
	cache *service.CatalogCache
	log   *slog.Logger
}

func NewImporter(g service.GlassStore, t service.TagStore, cache *service.CatalogCache, log *slog.Logger) *Importer {
	return &Importer{glass: g, tags: t, cache: cache, log: log}
}

func (im *Importer) Run(ctx context.Context, db *Database) (Stats, error) {
	var stats Stats

	keys := make([]string, 0, len(db.Products))
	for k := range db.Products {
		keys = append(keys, k)
	}
	sort.Strings(keys) // детерминированный порядок, как у скрейпера

	// sequence различает дубли одного артикула внутри файла
	seq := make(map[string]int)
	imported := make(map[string]struct{})
	feedManufacturers := make(map[string]struct{})

	for _, k := range keys {
		p := db.Products[k]
		feedManufacturers[strings.ToLower(p.Manufacturer)] = struct{}{}

		dupKey := strings.ToLower(p.Manufacturer) + ":" + strings.ToLower(p.Code)
		n := seq[dupKey]
		seq[dupKey] = n + 1

		item := productToItem(p, n)
		imported[item.NaturalKey] = struct{}{}
		tagList := tags.Split(p.Tags)

		existing, err := im.glass.GetByKey(ctx, item.NaturalKey)
		if err != nil {
			return stats, err
		}
		if existing == nil {
			if _, err := im.glass.Create(ctx, item); err != nil {
				return stats, err
			}
			if err := im.tags.Replace(ctx, item.NaturalKey, tagList, tags.SourceCatalog); err != nil {
				return stats, err
			}
			metrics.CatalogItemsImported.Inc()
			stats.New++
			continue
		}

		// сравниваем только каталожные теги: пользовательские фид не трогает
		existingTags, err := im.tags.ListBySource(ctx, item.NaturalKey, tags.SourceCatalog)
		if err != nil {
			return stats, err
		}
		if !glass.HasChanges(existing, &item, existingTags, tagList) && existing.Status == item.Status {
			stats.Unchanged++
			continue
		}
		if _, err := im.glass.Update(ctx, item); err != nil {
			return stats, err
		}
		if err := im.tags.Replace(ctx, item.NaturalKey, tagList, tags.SourceCatalog); err != nil {
			return stats, err
		}
		metrics.CatalogItemsImported.Inc()
		stats.Updated++
	}

	// Пометить discontinued пропавшие позиции — но только у производителей,
	// которые вообще были в файле: отсутствие производителя целиком
	// значит, что его не скрейпили, а не что всё снято с производства.
	all, err := im.glass.List(ctx)
	if err != nil {
		return stats, err
	}
	for _, it := range all {
		if _, ok := imported[it.NaturalKey]; ok {
			continue
		}
		if _, ok := feedManufacturers[strings.ToLower(it.Manufacturer)]; !ok {
			continue
		}
		if it.Status == glass.StatusDiscontinued {
			continue
		}
		it.Status = glass.StatusDiscontinued
		if _, err := im.glass.Update(ctx, it); err != nil {
			return stats, err
		}
		stats.Discontinued++
	}

	if im.cache != nil {
		im.cache.Invalidate()
	}
	im.log.Info("catalog import finished",
		"new", stats.New, "updated", stats.Updated,
		"unchanged", stats.Unchanged, "discontinued", stats.Discontinued)
	return stats, nil
}

func productToItem(p Product, sequence int) glass.Item {
	status := glass.Status(p.Status)
	if status == "" {
		status = glass.StatusAvailable
	}
	coe, _ := strconv.Atoi(strings.TrimSpace(p.COE))
	raw := glass.ExtractRawCode(p.Code, p.Manufacturer)
	return glass.Item{
		NaturalKey:   glass.MakeNaturalKey(p.Manufacturer, raw, sequence),
		Name:         p.Name,
		SKU:          raw,
		Manufacturer: p.Manufacturer,
		Code:         glass.ConstructCode(p.Manufacturer, p.Code),
		COE:          coe,
		Status:       status,
		Notes:        p.Description,
		URL:          p.URL,
		ImagePath:    p.ImagePath,
	}
}
