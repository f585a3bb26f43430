package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/byiitians/portal-api/internal/models"
	appErrors "github.com/byiitians/portal-api/pkg/errors"
	"github.com/byiitians/portal-api/pkg/export"
)

type exportContentRepository interface {
	ListAll(ctx context.Context) ([]models.ContentItem, error)
}

type exportSectionRepository interface {
	ListAll(ctx context.Context) ([]models.Section, error)
}

// ExportFormat selects the rendered output type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportResult carries rendered bytes plus response metadata.
type ExportResult struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ExportService renders the full content inventory for admin download.
type ExportService struct {
	contents exportContentRepository
	sections exportSectionRepository
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewExportService creates a new export service.
func NewExportService(contents exportContentRepository, sections exportSectionRepository, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		contents: contents,
		sections: sections,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

// ContentInventory renders every content item with its section title.
func (s *ExportService) ContentInventory(ctx context.Context, format ExportFormat) (*ExportResult, error) {
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}

	sections, err := s.sections.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sections")
	}
	items, err := s.contents.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list content")
	}

	titles := make(map[string]string, len(sections))
	for _, section := range sections {
		titles[section.ID] = section.Title
	}

	dataset := export.Dataset{
		Headers: []string{"Section", "Title", "Type", "Category", "Class", "Subject", "Order", "Active"},
	}
	for _, item := range items {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Section":  titles[item.SectionID],
			"Title":    item.Title,
			"Type":     string(item.ContentType),
			"Category": item.ContentData.Category,
			"Class":    item.ContentData.Class,
			"Subject":  item.ContentData.Subject,
			"Order":    strconv.Itoa(item.DisplayOrder),
			"Active":   strconv.FormatBool(item.IsActive),
		})
	}

	switch format {
	case ExportFormatPDF:
		data, err := s.pdf.Render(dataset, "Content Inventory")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{Data: data, ContentType: "application/pdf", Filename: "content-inventory.pdf"}, nil
	default:
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{Data: data, ContentType: "text/csv", Filename: "content-inventory.csv"}, nil
	}
}
