package glass

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructCode(t *testing.T) {
	tests := []struct {
		name         string
		manufacturer string
		rawCode      string
		want         string
	}{
		{"обычный код", "Test Corp", "TGR-001", "TEST CORP-TGR-001"},
		{"уже с префиксом", "Effetre", "EFFETRE-BLU-002", "EFFETRE-BLU-002"},
		{"префикс в другом регистре", "effetre", "Effetre-591006", "Effetre-591006"},
		{"пустой сырой код", "CiM", "", "CIM-"},
		{"похожий, но чужой префикс", "Bullseye", "BULLSEYE GLASS-001", "BULLSEYE-BULLSEYE GLASS-001"},
		{"дефис внутри кода", "DH", "Aurae-2", "DH-Aurae-2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConstructCode(tt.manufacturer, tt.rawCode))
		})
	}
}

func TestExtractRawCode(t *testing.T) {
	tests := []struct {
		name         string
		fullCode     string
		manufacturer string
		want         string
	}{
		{"снимает префикс", "EFFETRE-591006", "Effetre", "591006"},
		{"префикс в другом регистре", "Effetre-591006", "EFFETRE", "591006"},
		{"без префикса — как есть", "591006", "Effetre", "591006"},
		{"чужой префикс не трогаем", "CIM-512", "Effetre", "CIM-512"},
		{"пустой хвост", "CIM-", "CiM", ""},
		{"многобайтная руна в префиксе", "Glaſs-001", "GLASS", "001"},
		{"код короче имени производителя", "EF", "Effetre", "EF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractRawCode(tt.fullCode, tt.manufacturer))
		})
	}
}

func TestConstructExtractRoundTrip(t *testing.T) {
	raw := "TGR-001"
	full := ConstructCode("Test Corp", raw)
	assert.Equal(t, raw, ExtractRawCode(full, "Test Corp"))
}

func TestMakeNaturalKey(t *testing.T) {
	assert.Equal(t, "effetre-591006-0", MakeNaturalKey("Effetre", "591006", 0))
	assert.Equal(t, "cim-512-2", MakeNaturalKey(" CiM ", " 512 ", 2))
}
