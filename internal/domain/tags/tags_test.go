package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoin(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want string
	}{
		{"обычный список", []string{"blue", "transparent"}, "blue,transparent"},
		{"пробелы обрезаются", []string{" blue ", "transparent "}, "blue,transparent"},
		{"пустые выкидываются", []string{"blue", "", "  ", "rod"}, "blue,rod"},
		{"порядок сохраняется", []string{"z", "a", "m"}, "z,a,m"},
		{"пустой список", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Join(tt.in))
		})
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"обычная строка", "blue,transparent", []string{"blue", "transparent"}},
		{"пробелы вокруг запятых", " blue , transparent ", []string{"blue", "transparent"}},
		{"пустые куски", "blue,,rod,", []string{"blue", "rod"}},
		{"только пробелы", "   ", nil},
		{"пустая строка", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.in))
		})
	}
}

func TestSplitJoinRoundTrip(t *testing.T) {
	// закон для тегов без пустот и запятых
	cases := [][]string{
		{"blue"},
		{"blue", "transparent", "rod"},
		{"Blue", "blue"}, // регистр значим
		{"тёмный", "прозрачный"},
	}
	for _, tags := range cases {
		assert.Equal(t, tags, Split(Join(tags)))
	}
}

func TestDedup(t *testing.T) {
	assert.Equal(t, []string{"test", "Test", "rod"}, Dedup([]string{"test", "Test", "rod", "test"}))
	assert.Nil(t, Dedup(nil))
}
