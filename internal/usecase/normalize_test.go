package usecase_test

import (
	"testing"
	"time"

	"go-jobtracker-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFields(t *testing.T) {
	t.Run("Should map empty date strings to nil", func(t *testing.T) {
		out := usecase.NormalizeFields(map[string]any{
			"application_date": "",
			"deadline":         "",
		})
		assert.Nil(t, out["application_date"])
		assert.Nil(t, out["deadline"])
	})

	t.Run("Should parse plain date strings", func(t *testing.T) {
		out := usecase.NormalizeFields(map[string]any{"deadline": "2025-04-30"})
		d, ok := out["deadline"].(*time.Time)
		assert.True(t, ok)
		assert.Equal(t, "2025-04-30", d.Format("2006-01-02"))
	})

	t.Run("Should pass unparseable dates through for the store to reject", func(t *testing.T) {
		out := usecase.NormalizeFields(map[string]any{"deadline": "not a date"})
		assert.Equal(t, "not a date", out["deadline"])
	})

	t.Run("Should leave non-date fields untouched", func(t *testing.T) {
		out := usecase.NormalizeFields(map[string]any{
			"company": "",
			"status":  "Bogus",
			"notes":   "keep",
		})
		assert.Equal(t, "", out["company"])
		assert.Equal(t, "Bogus", out["status"])
		assert.Equal(t, "keep", out["notes"])
	})
}
