package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"dukkan/internal/core/entity"
	"dukkan/internal/core/id"
)

type mockProduct struct {
	entity.Base
	Code  string `db:"code" json:"code"`
	Name  string `db:"name" json:"name"`
	Parts []int  `db:"-" json:"parts"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockProduct]()

	for _, expected := range []string{"id", "created_at", "updated_at", "code", "name"} {
		assert.Contains(t, cols, expected)
	}
	assert.NotContains(t, cols, "-")
}

func TestStructToMap(t *testing.T) {
	now := time.Now().UTC()
	p := mockProduct{
		Base: entity.Base{
			ID:        id.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Code:  "URN-2026-00001",
		Name:  "Test Product",
		Parts: []int{1, 2},
	}

	m := StructToMap(p)

	assert.Equal(t, p.ID, m["id"])
	assert.Equal(t, now, m["created_at"])
	assert.Equal(t, "URN-2026-00001", m["code"])
	assert.Equal(t, "Test Product", m["name"])
	assert.NotContains(t, m, "-")
}
