package glass

import "slices"

// HasChanges решает, нужно ли сохранять обновлённую позицию.
// Сравниваются логические поля: имя, производитель, теги (порядок значим)
// и сырой код без префикса — два одинаковых по смыслу кода, собранные
// разными путями, изменением не считаются. ID и единицы не сравниваются.
func HasChanges(existing, updated *Item, existingTags, updatedTags []string) bool {
	if existing.Name != updated.Name {
		return true
	}
	if existing.Manufacturer != updated.Manufacturer {
		return true
	}
	if !slices.Equal(existingTags, updatedTags) {
		return true
	}
	oldRaw := ExtractRawCode(existing.Code, existing.Manufacturer)
	newRaw := ExtractRawCode(updated.Code, updated.Manufacturer)
	return oldRaw != newRaw
}
