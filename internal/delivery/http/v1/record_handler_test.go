package v1

import (
	"testing"

	"go-jobtracker-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestSplitColumns(t *testing.T) {
	t.Run("Should split and trim, dropping empties", func(t *testing.T) {
		assert.Equal(t, []string{"company", "status"}, splitColumns("company, status"))
		assert.Equal(t, []string{"company"}, splitColumns(",company,,"))
		assert.Nil(t, splitColumns(""))
	})
}

func TestPaginate(t *testing.T) {
	rows := []domain.ApplicationRecord{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	t.Run("Should slice the loaded set without mutating it", func(t *testing.T) {
		result := paginate(rows, 2, 2)
		assert.Equal(t, int64(3), result.Total)
		assert.Equal(t, 2, result.TotalPages)
		assert.Len(t, result.Data, 1)
		assert.Equal(t, "c", result.Data[0].ID)
	})

	t.Run("Should clamp out-of-range pages to an empty slice", func(t *testing.T) {
		result := paginate(rows, 9, 2)
		assert.Empty(t, result.Data)
		assert.Equal(t, int64(3), result.Total)
	})

	t.Run("Should default bad page arguments", func(t *testing.T) {
		result := paginate(rows, 0, 0)
		assert.Equal(t, 1, result.Page)
		assert.Equal(t, 20, result.PageSize)
		assert.Len(t, result.Data, 3)
	})
}
