package glass

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasChangesComparesLogicalCode(t *testing.T) {
	// одинаковый производитель и сырой код, но код собран разными путями
	legacy := &Item{Name: "Blue", Manufacturer: "Effetre", Code: "591006"}
	modern := &Item{Name: "Blue", Manufacturer: "Effetre", Code: ConstructCode("Effetre", "591006")}

	assert.False(t, HasChanges(legacy, modern, nil, nil))
}

func TestHasChangesFields(t *testing.T) {
	base := Item{Name: "Blue", Manufacturer: "Effetre", Code: "EFFETRE-591006"}

	t.Run("имя", func(t *testing.T) {
		changed := base
		changed.Name = "Dark Blue"
		assert.True(t, HasChanges(&base, &changed, nil, nil))
	})

	t.Run("производитель", func(t *testing.T) {
		changed := base
		changed.Manufacturer = "Vetrofond"
		assert.True(t, HasChanges(&base, &changed, nil, nil))
	})

	t.Run("сырой код", func(t *testing.T) {
		changed := base
		changed.Code = "EFFETRE-591007"
		assert.True(t, HasChanges(&base, &changed, nil, nil))
	})

	t.Run("COE и статус не сравниваются", func(t *testing.T) {
		changed := base
		changed.COE = 104
		changed.Status = StatusDiscontinued
		assert.False(t, HasChanges(&base, &changed, nil, nil))
	})
}

func TestHasChangesTagOrder(t *testing.T) {
	a := &Item{Name: "Blue", Manufacturer: "Effetre", Code: "EFFETRE-591006"}
	b := &Item{Name: "Blue", Manufacturer: "Effetre", Code: "EFFETRE-591006"}

	// одинаковые множества, разный порядок — это изменение
	assert.True(t, HasChanges(a, b, []string{"blue", "transparent"}, []string{"transparent", "blue"}))
	assert.False(t, HasChanges(a, b, []string{"blue", "transparent"}, []string{"blue", "transparent"}))
}
