package glass

import (
	"strings"
	"unicode/utf8"
)

// ConstructCode собирает полный код каталога "MANUFACTURER-RAWCODE".
// Если rawCode уже начинается с префикса этого производителя (без учёта
// регистра), возвращаем его как есть — импорт иногда отдаёт коды
// уже с префиксом. Совпадение строго по имени этого производителя:
// "BULLSEYE GLASS-001" у производителя "Bullseye" префиксом не считается.
func ConstructCode(manufacturer, rawCode string) string {
	mfr := strings.ToUpper(manufacturer)
	if strings.HasPrefix(strings.ToUpper(rawCode), mfr+"-") {
		return rawCode
	}
	return mfr + "-" + rawCode
}

// ExtractRawCode — обратная операция: снимает префикс производителя,
// если он есть. Нужна для сравнения логических кодов, а не строк.
// Граница префикса считается по рунам исходной строки: смена регистра
// может менять длину в байтах (ſ→S), резать по ней нельзя.
func ExtractRawCode(fullCode, manufacturer string) string {
	n := utf8.RuneCountInString(manufacturer)
	i := 0
	for ; n > 0 && i < len(fullCode); n-- {
		_, size := utf8.DecodeRuneInString(fullCode[i:])
		i += size
	}
	if n == 0 && strings.EqualFold(fullCode[:i], manufacturer) && strings.HasPrefix(fullCode[i:], "-") {
		return fullCode[i+1:]
	}
	return fullCode
}
