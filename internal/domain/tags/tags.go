package tags

import "strings"

// Теги храним и передаём как список, наружу (экспорт, карточка)
// отдаём строку через запятую. Порядок всегда исходный, не сортируем.

// Join обрезает пробелы, выкидывает пустые теги и склеивает через запятую.
func Join(list []string) string {
	out := make([]string, 0, len(list))
	for _, t := range list {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return strings.Join(out, ",")
}

// Split — обратная операция. Строка из одних пробелов даёт пустой список.
// Для тегов без запятых и пустот Split(Join(tags)) == tags.
func Split(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// Dedup убирает повторы с сохранением первого вхождения.
// Регистр значим: "test" и "Test" — разные теги.
func Dedup(list []string) []string {
	seen := make(map[string]struct{}, len(list))
	var out []string
	for _, t := range list {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
