package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type widget struct {
	ID   int64
	Name string
}

func widgetTable() Table[*widget] {
	return Table[*widget]{
		Name:     "widgets",
		IDColumn: "id",
		Columns:  []string{"name", "size"},
		Scan: func(row Scanner) (*widget, error) {
			w := &widget{}
			return w, row.Scan(&w.ID, &w.Name)
		},
		Values: func(w *widget) []any {
			return []any{w.Name, 0}
		},
	}
}

func TestBuildQuery(t *testing.T) {
	base := NewBase(widgetTable())

	assert.Equal(t, "SELECT id, name, size FROM widgets", base.BuildQuery("", ""))
	assert.Equal(t, "SELECT id, name, size FROM widgets WHERE name = $1", base.BuildQuery("name = $1", ""))
	assert.Equal(t,
		"SELECT id, name, size FROM widgets WHERE name = $1 ORDER BY id",
		base.BuildQuery("name = $1", "id"))
}

func TestPlaceholders(t *testing.T) {
	base := NewBase(widgetTable())

	assert.Equal(t, "$1, $2", base.placeholders(2, 0))
	assert.Equal(t, "$3, $4", base.placeholders(2, 2))
}
