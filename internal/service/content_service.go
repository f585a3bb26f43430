package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/byiitians/portal-api/internal/models"
	appErrors "github.com/byiitians/portal-api/pkg/errors"
)

type contentRepository interface {
	ListBySection(ctx context.Context, sectionID string, activeOnly bool) ([]models.ContentItem, error)
	FindByID(ctx context.Context, id string) (*models.ContentItem, error)
	CountBySection(ctx context.Context, sectionID string) (int, error)
	Create(ctx context.Context, item *models.ContentItem) error
	Delete(ctx context.Context, id string) error
}

type contentSectionRepository interface {
	FindByID(ctx context.Context, id string) (*models.Section, error)
}

// catalogNotifier is informed after content mutations so cached navigation
// can be rebuilt out of band.
type catalogNotifier interface {
	ContentChanged(sectionID string)
}

// CreateContentRequest captures the admin form fields for a new content item.
type CreateContentRequest struct {
	SectionID   string `json:"section_id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	ContentType string `json:"content_type" validate:"required,oneof=text link"`
	Text        string `json:"text"`
	URL         string `json:"url"`
	Category    string `json:"category"`
	Class       string `json:"class"`
	Subject     string `json:"subject"`
}

// ContentService handles admin content curation workflows.
type ContentService struct {
	repo      contentRepository
	sections  contentSectionRepository
	notifier  catalogNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewContentService creates a new content service. The notifier may be nil.
func NewContentService(repo contentRepository, sections contentSectionRepository, notifier catalogNotifier, validate *validator.Validate, logger *zap.Logger) *ContentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContentService{repo: repo, sections: sections, notifier: notifier, validator: validate, logger: logger}
}

// ListBySection returns every item of a section, hidden ones included, for
// the admin dashboard.
func (s *ContentService) ListBySection(ctx context.Context, sectionID string) ([]models.ContentItem, error) {
	if _, err := s.findSection(ctx, sectionID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListBySection(ctx, sectionID, false)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list section content")
	}
	if items == nil {
		items = []models.ContentItem{}
	}
	return items, nil
}

// Create validates the form against the section's classification policy and
// appends the item. No store call is made on any validation failure.
func (s *ContentService) Create(ctx context.Context, req CreateContentRequest) (*models.ContentItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid content payload")
	}

	section, err := s.findSection(ctx, req.SectionID)
	if err != nil {
		return nil, err
	}

	data, err := buildContentData(section, req)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountBySection(ctx, section.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count section content")
	}

	item := &models.ContentItem{
		SectionID:    section.ID,
		Title:        strings.TrimSpace(req.Title),
		Description:  req.Description,
		ContentType:  models.ContentType(req.ContentType),
		ContentData:  data,
		DisplayOrder: count + 1,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create content item")
	}

	s.notifyChange(section.ID)
	return item, nil
}

// Delete removes a single item by id. A missing row is a NotFound failure,
// never a silent success, so clients keep their list until confirmed.
func (s *ContentService) Delete(ctx context.Context, id string) error {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "content item not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load content item")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "content item not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete content item")
	}

	s.notifyChange(item.SectionID)
	return nil
}

func (s *ContentService) findSection(ctx context.Context, id string) (*models.Section, error) {
	section, err := s.sections.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load section")
	}
	return section, nil
}

func (s *ContentService) notifyChange(sectionID string) {
	if s.notifier == nil {
		return
	}
	s.notifier.ContentChanged(sectionID)
}

// buildContentData applies the conditional field policy: study-material
// sections require a category; the class-range category additionally requires
// class and subject; other categories require subject only. The content type
// decides whether text or url carries the payload.
func buildContentData(section *models.Section, req CreateContentRequest) (models.ContentData, error) {
	data := models.ContentData{}

	if section.Kind == models.SectionKindStudyMaterial {
		category := strings.TrimSpace(req.Category)
		if category == "" {
			return data, validationError("category is required for study material content")
		}
		if !models.IsKnownCategory(category) {
			return data, validationError("unknown category")
		}
		data.Category = category

		if category == models.CategoryClassRange {
			if req.Class == "" || req.Subject == "" {
				return data, validationError("class and subject are required for " + models.CategoryClassRange)
			}
			if !models.IsKnownClass(req.Class) {
				return data, validationError("unknown class")
			}
			data.Class = req.Class
		} else if req.Subject == "" {
			return data, validationError("subject is required for study material content")
		}

		if !models.IsKnownSubject(req.Subject) {
			return data, validationError("unknown subject")
		}
		data.Subject = req.Subject
	}

	switch models.ContentType(req.ContentType) {
	case models.ContentTypeText:
		if strings.TrimSpace(req.Text) == "" {
			return data, validationError("content text is required")
		}
		data.Text = req.Text
	case models.ContentTypeLink:
		if strings.TrimSpace(req.URL) == "" {
			return data, validationError("content url is required")
		}
		data.URL = req.URL
	}

	return data, nil
}

func validationError(message string) *appErrors.Error {
	return appErrors.Clone(appErrors.ErrValidation, message)
}
