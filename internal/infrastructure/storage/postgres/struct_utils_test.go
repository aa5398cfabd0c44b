package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"quotify/internal/core/id"
)

type mockAudit struct {
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type mockRecord struct {
	mockAudit
	ID       id.ID  `db:"id" json:"id"`
	Code     string `db:"code" json:"code"`
	Name     string `db:"name" json:"name"`
	Internal string `db:"-" json:"-"`
	Untagged string
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockRecord]()

	expected := []string{"created_at", "updated_at", "id", "code", "name"}
	assert.Equal(t, expected, cols)

	assert.NotContains(t, cols, "-")
	assert.NotContains(t, cols, "Internal")
	assert.NotContains(t, cols, "Untagged")
}

func TestStructToMap(t *testing.T) {
	now := time.Now().UTC()
	rec := mockRecord{
		mockAudit: mockAudit{CreatedAt: now, UpdatedAt: now},
		ID:        id.New(),
		Code:      "CLT-000001",
		Name:      "Acme Corp",
		Internal:  "hidden",
		Untagged:  "hidden",
	}

	m := StructToMap(rec)

	assert.Equal(t, rec.ID, m["id"])
	assert.Equal(t, "CLT-000001", m["code"])
	assert.Equal(t, "Acme Corp", m["name"])
	assert.Equal(t, now, m["created_at"])
	assert.Equal(t, now, m["updated_at"])
	assert.Len(t, m, 5)
}

func TestStructToMap_PointerAndNonStruct(t *testing.T) {
	rec := &mockRecord{Code: "X"}

	m := StructToMap(rec)
	assert.Equal(t, "X", m["code"])

	assert.Nil(t, StructToMap(42))
}
