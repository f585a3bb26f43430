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

type sectionRepository interface {
	ListAll(ctx context.Context) ([]models.Section, error)
	FindByID(ctx context.Context, id string) (*models.Section, error)
	Create(ctx context.Context, section *models.Section) error
	Update(ctx context.Context, section *models.Section) error
}

// CreateSectionRequest captures fields for creating sections.
type CreateSectionRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	Icon         string `json:"icon"`
	DisplayOrder int    `json:"display_order" validate:"min=0"`
	IsActive     *bool  `json:"is_active"`
}

// UpdateSectionRequest modifies section fields.
type UpdateSectionRequest struct {
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description"`
	Icon         string `json:"icon"`
	DisplayOrder int    `json:"display_order" validate:"min=0"`
	IsActive     *bool  `json:"is_active"`
}

// SectionService handles admin section management.
type SectionService struct {
	repo      sectionRepository
	notifier  catalogNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSectionService creates a new section service.
func NewSectionService(repo sectionRepository, notifier catalogNotifier, validate *validator.Validate, logger *zap.Logger) *SectionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SectionService{repo: repo, notifier: notifier, validator: validate, logger: logger}
}

// ListAll returns every section, hidden ones included.
func (s *SectionService) ListAll(ctx context.Context) ([]models.Section, error) {
	sections, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sections")
	}
	if sections == nil {
		sections = []models.Section{}
	}
	return sections, nil
}

// Create adds a new section. The navigation kind is derived from the title
// once here, never re-inferred at read time.
func (s *SectionService) Create(ctx context.Context, req CreateSectionRequest) (*models.Section, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid section payload")
	}

	title := strings.TrimSpace(req.Title)
	order := req.DisplayOrder
	if order == 0 {
		existing, err := s.repo.ListAll(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sections")
		}
		order = len(existing) + 1
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	section := &models.Section{
		Title:        title,
		Description:  req.Description,
		Icon:         req.Icon,
		Kind:         models.DeriveSectionKind(title),
		DisplayOrder: order,
		IsActive:     active,
	}

	if err := s.repo.Create(ctx, section); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create section")
	}
	return section, nil
}

// Update modifies an existing section, re-deriving the kind from the title.
func (s *SectionService) Update(ctx context.Context, id string, req UpdateSectionRequest) (*models.Section, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid section payload")
	}

	section, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load section")
	}

	title := strings.TrimSpace(req.Title)
	section.Title = title
	section.Description = req.Description
	section.Icon = req.Icon
	section.Kind = models.DeriveSectionKind(title)
	if req.DisplayOrder > 0 {
		section.DisplayOrder = req.DisplayOrder
	}
	if req.IsActive != nil {
		section.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, section); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update section")
	}

	if s.notifier != nil {
		s.notifier.ContentChanged(section.ID)
	}
	return section, nil
}
