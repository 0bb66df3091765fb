package usecase_test

import (
	"context"
	"strings"
	"testing"

	"go-jobtracker-backend/internal/domain"
	"go-jobtracker-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestExport(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewExportUsecase()

	rows := []domain.ApplicationRecord{
		{ID: "a", Company: "Acme", Position: "Engineer", Status: "Applied", ApplicationDate: date("2024-03-01")},
		{ID: "b", Company: "Globex, Inc", Position: "Analyst", Status: "Wishlist"},
	}

	t.Run("Should render selected columns as CSV in snapshot order", func(t *testing.T) {
		data, filename, err := uc.Export(ctx, rows, usecase.ExportRequest{
			Format:  "csv",
			Columns: []string{"company", "position", "application_date"},
		})
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(filename, "applications_"))
		assert.True(t, strings.HasSuffix(filename, ".csv"))

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		assert.Len(t, lines, 3)
		assert.Equal(t, "company,position,application_date", lines[0])
		assert.Equal(t, "Acme,Engineer,2024-03-01", lines[1])
		// Values containing commas come back quoted, undated cells empty.
		assert.Equal(t, `"Globex, Inc",Analyst,`, lines[2])
	})

	t.Run("Should default to xlsx with every column", func(t *testing.T) {
		data, filename, err := uc.Export(ctx, rows, usecase.ExportRequest{})
		assert.NoError(t, err)
		assert.True(t, strings.HasSuffix(filename, ".xlsx"))
		assert.NotEmpty(t, data)
	})

	t.Run("Should reject unknown columns", func(t *testing.T) {
		_, _, err := uc.Export(ctx, rows, usecase.ExportRequest{Columns: []string{"user_id"}})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid export column")
	})

	t.Run("Should reject unknown formats", func(t *testing.T) {
		_, _, err := uc.Export(ctx, rows, usecase.ExportRequest{Format: "pdf"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported export format")
	})

	t.Run("Should produce only a header for an empty snapshot", func(t *testing.T) {
		data, _, err := uc.Export(ctx, nil, usecase.ExportRequest{Format: "csv", Columns: []string{"company"}})
		assert.NoError(t, err)
		assert.Equal(t, "company", strings.TrimSpace(string(data)))
	})
}
