// Package search — разбор поисковой строки и фильтрация по текстовым полям.
package search

import (
	"strings"
	"unicode"
)

// Searchable отдаёт текстовые поля, по которым ищем.
// Состав и порядок полей определяет сам тип.
type Searchable interface {
	SearchFields() []string
}

// ParseTerms разбивает запрос на термы. Кусок в двойных кавычках —
// один терм целиком, с пробелами внутри; вне кавычек делим по пробелам.
// Незакрытая кавычка: весь хвост строки становится одним термом.
// Пустые кавычки ("") терма не дают.
func ParseTerms(query string) []string {
	var terms []string
	var cur strings.Builder
	inQuote := false

	flush := func() {
		if cur.Len() > 0 {
			terms = append(terms, cur.String())
			cur.Reset()
		}
	}

	for _, r := range query {
		switch {
		case r == '"':
			flush()
			inQuote = !inQuote
		case !inQuote && unicode.IsSpace(r):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return terms
}

// Filter оставляет элементы, у которых хотя бы один терм входит
// подстрокой (без учёта регистра) хотя бы в одно поле — ИЛИ по термам,
// ИЛИ по полям. Пустой запрос ничего не фильтрует.
func Filter[T Searchable](items []T, query string) []T {
	if strings.TrimSpace(query) == "" {
		return items
	}
	terms := ParseTerms(query)
	if len(terms) == 0 {
		return items
	}
	for i := range terms {
		terms[i] = strings.ToLower(terms[i])
	}

	var out []T
	for _, it := range items {
		if matches(it.SearchFields(), terms) {
			out = append(out, it)
		}
	}
	return out
}

func matches(fields, terms []string) bool {
	for _, f := range fields {
		f = strings.ToLower(f)
		for _, t := range terms {
			if strings.Contains(f, t) {
				return true
			}
		}
	}
	return false
}
