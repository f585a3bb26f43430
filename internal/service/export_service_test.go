package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/byiitians/portal-api/internal/models"
	appErrors "github.com/byiitians/portal-api/pkg/errors"
)

type mockExportContentRepo struct {
	items []models.ContentItem
}

func (m *mockExportContentRepo) ListAll(ctx context.Context) ([]models.ContentItem, error) {
	return m.items, nil
}

type mockExportSectionRepo struct {
	sections []models.Section
}

func (m *mockExportSectionRepo) ListAll(ctx context.Context) ([]models.Section, error) {
	return m.sections, nil
}

func TestExportServiceContentInventoryCSV(t *testing.T) {
	contents := &mockExportContentRepo{items: []models.ContentItem{
		{
			ID:          "c1",
			SectionID:   "s1",
			Title:       "Kinematics Notes",
			ContentType: models.ContentTypeLink,
			ContentData: models.ContentData{Category: "NEET", Subject: "Physics"},
			IsActive:    true,
		},
	}}
	sections := &mockExportSectionRepo{sections: []models.Section{{ID: "s1", Title: "Study Material"}}}
	svc := NewExportService(contents, sections, zap.NewNop())

	result, err := svc.ContentInventory(context.Background(), ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "content-inventory.csv", result.Filename)

	body := string(result.Data)
	assert.True(t, strings.HasPrefix(body, "Section,Title,Type,Category,Class,Subject,Order,Active"))
	assert.Contains(t, body, "Study Material,Kinematics Notes,link,NEET,,Physics,0,true")
}

func TestExportServiceContentInventoryPDF(t *testing.T) {
	svc := NewExportService(&mockExportContentRepo{}, &mockExportSectionRepo{}, zap.NewNop())

	result, err := svc.ContentInventory(context.Background(), ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.NotEmpty(t, result.Data)
}

func TestExportServiceUnsupportedFormat(t *testing.T) {
	svc := NewExportService(&mockExportContentRepo{}, &mockExportSectionRepo{}, zap.NewNop())

	_, err := svc.ContentInventory(context.Background(), ExportFormat("xml"))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}
