package extract_test

import (
	"testing"

	"go-jobtracker-backend/internal/extract"

	"github.com/stretchr/testify/assert"
)

func TestParseText(t *testing.T) {
	t.Run("Should read explicit label lines", func(t *testing.T) {
		fields := extract.ParseText("Job Title: Backend Engineer\nCompany: Acme Corp\nLocation: Berlin\nApply by: 2030-06-15")
		assert.Equal(t, "Acme Corp", fields.Company)
		assert.Equal(t, "Backend Engineer", fields.Position)
		assert.Equal(t, "Berlin", fields.Location)
		assert.Equal(t, "2030-06-15", fields.Deadline)
	})

	t.Run("Should fall back to the first short line for the position", func(t *testing.T) {
		fields := extract.ParseText("Senior Go Developer\n\nWe are looking for someone to join our team...")
		assert.Equal(t, "Senior Go Developer", fields.Position)
	})

	t.Run("Should not treat a long opening paragraph as the position", func(t *testing.T) {
		long := "We are a fast growing company operating across several markets and we are now expanding our engineering organisation significantly."
		fields := extract.ParseText(long)
		assert.Equal(t, "", fields.Position)
	})

	t.Run("Should accept Deadline as a label too", func(t *testing.T) {
		fields := extract.ParseText("Deadline: 2031-01-31\nGreat role.")
		assert.Equal(t, "2031-01-31", fields.Deadline)
	})

	t.Run("Should return an unparseable deadline verbatim for review", func(t *testing.T) {
		fields := extract.ParseText("Apply by: end of the quarter")
		assert.Equal(t, "end of the quarter", fields.Deadline)
	})

	t.Run("Should leave everything empty for unlabeled prose", func(t *testing.T) {
		fields := extract.ParseText("")
		assert.Equal(t, "", fields.Company)
		assert.Equal(t, "", fields.Position)
		assert.Equal(t, "", fields.Location)
		assert.Equal(t, "", fields.Deadline)
	})
}
