package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/byiitians/portal-api/internal/models"
	appErrors "github.com/byiitians/portal-api/pkg/errors"
)

type catalogSectionRepository interface {
	ListActive(ctx context.Context) ([]models.Section, error)
	FindByID(ctx context.Context, id string) (*models.Section, error)
}

type catalogContentRepository interface {
	ListBySection(ctx context.Context, sectionID string, activeOnly bool) ([]models.ContentItem, error)
}

// CatalogCache abstracts the snapshot store so wiring can pass nil when
// caching is disabled.
type CatalogCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// StudyMaterialOverview is the first picker level: classes for the direct
// class path and categories for the exam-category path.
type StudyMaterialOverview struct {
	Section    models.Section `json:"section"`
	Classes    []string       `json:"classes"`
	Categories []string       `json:"categories"`
}

// CategoryNavigation is the picker level below a fixed category. Exactly one
// of Classes/Subjects is populated depending on the category.
type CategoryNavigation struct {
	Section      models.Section `json:"section"`
	Category     string         `json:"category"`
	IsClassRange bool           `json:"is_class_range"`
	Classes      []string       `json:"classes,omitempty"`
	Subjects     []string       `json:"subjects,omitempty"`
}

type cacheLookupObserver interface {
	ObserveCacheLookup(hit bool)
}

// CatalogService derives the public navigation tree from stored sections and
// content items.
type CatalogService struct {
	sections catalogSectionRepository
	contents catalogContentRepository
	cache    CatalogCache
	cacheTTL time.Duration
	metrics  cacheLookupObserver
	logger   *zap.Logger
}

// NewCatalogService constructs a catalog service. Cache and metrics may be nil.
func NewCatalogService(sections catalogSectionRepository, contents catalogContentRepository, cache CatalogCache, cacheTTL time.Duration, metrics cacheLookupObserver, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &CatalogService{sections: sections, contents: contents, cache: cache, cacheTTL: cacheTTL, metrics: metrics, logger: logger}
}

// ListSections returns visible sections for the home dashboard.
func (s *CatalogService) ListSections(ctx context.Context) ([]models.Section, error) {
	sections, err := s.sections.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sections")
	}
	if sections == nil {
		sections = []models.Section{}
	}
	return sections, nil
}

// GetSection returns a section by id, mapping missing rows to NotFound.
func (s *CatalogService) GetSection(ctx context.Context, id string) (*models.Section, error) {
	section, err := s.sections.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load section")
	}
	return section, nil
}

// FlatContents returns a flat section's active items in display order. The
// kind dispatch (redirecting study-material sections) happens at the route.
func (s *CatalogService) FlatContents(ctx context.Context, id string) (*models.Section, []models.ContentItem, error) {
	section, err := s.GetSection(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.activeItems(ctx, section.ID)
	if err != nil {
		return nil, nil, err
	}
	return section, items, nil
}

// Overview resolves the study-material root: available classes for the bare
// class path plus the categories present in the section.
func (s *CatalogService) Overview(ctx context.Context, id string) (*StudyMaterialOverview, error) {
	section, items, err := s.studySection(ctx, id)
	if err != nil {
		return nil, err
	}
	return &StudyMaterialOverview{
		Section:    *section,
		Classes:    AvailableValues(items, Dimensions{}, DimensionClass),
		Categories: AvailableValues(items, Dimensions{}, DimensionCategory),
	}, nil
}

// ClassSubjects lists the subjects available for a fixed class.
func (s *CatalogService) ClassSubjects(ctx context.Context, id, class string) (*models.Section, []string, error) {
	section, items, err := s.studySection(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return section, AvailableValues(items, Dimensions{Class: class}, DimensionSubject), nil
}

// ClassContents returns the terminal item list for a fixed class and subject.
func (s *CatalogService) ClassContents(ctx context.Context, id, class, subject string) (*models.Section, []models.ContentItem, error) {
	section, items, err := s.studySection(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return section, FilterItems(items, Dimensions{Class: class, Subject: subject}), nil
}

// CategoryOverview resolves the picker below a fixed category: classes for
// the "Class 8 to 12" category, subjects for every other category.
func (s *CatalogService) CategoryOverview(ctx context.Context, id, category string) (*CategoryNavigation, error) {
	section, items, err := s.studySection(ctx, id)
	if err != nil {
		return nil, err
	}

	nav := &CategoryNavigation{
		Section:      *section,
		Category:     category,
		IsClassRange: category == models.CategoryClassRange,
	}
	if nav.IsClassRange {
		nav.Classes = AvailableValues(items, Dimensions{Category: category}, DimensionClass)
	} else {
		nav.Subjects = AvailableValues(items, Dimensions{Category: category}, DimensionSubject)
	}
	return nav, nil
}

// CategoryClassSubjects lists subjects for a class within the class-range category.
func (s *CatalogService) CategoryClassSubjects(ctx context.Context, id, category, class string) (*models.Section, []string, error) {
	section, items, err := s.studySection(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return section, AvailableValues(items, Dimensions{Category: category, Class: class}, DimensionSubject), nil
}

// CategoryContents returns the terminal item list under a fixed category,
// optionally further fixed by class.
func (s *CatalogService) CategoryContents(ctx context.Context, id, category, class, subject string) (*models.Section, []models.ContentItem, error) {
	section, items, err := s.studySection(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return section, FilterItems(items, Dimensions{Category: category, Class: class, Subject: subject}), nil
}

// RefreshSection recomputes and caches a section's active item snapshot.
// Called by the background refresh job after admin mutations.
func (s *CatalogService) RefreshSection(ctx context.Context, sectionID string) error {
	items, err := s.contents.ListBySection(ctx, sectionID, true)
	if err != nil {
		return fmt.Errorf("refresh section %s: %w", sectionID, err)
	}
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Set(ctx, itemsCacheKey(sectionID), items, s.cacheTTL); err != nil {
		return fmt.Errorf("refresh section %s: %w", sectionID, err)
	}
	return nil
}

// InvalidateSection drops any cached snapshot for the section.
func (s *CatalogService) InvalidateSection(ctx context.Context, sectionID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.DeleteByPattern(ctx, itemsCacheKey(sectionID))
}

func (s *CatalogService) studySection(ctx context.Context, id string) (*models.Section, []models.ContentItem, error) {
	section, err := s.GetSection(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if section.Kind != models.SectionKindStudyMaterial {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "section has no study material navigation")
	}
	items, err := s.activeItems(ctx, section.ID)
	if err != nil {
		return nil, nil, err
	}
	return section, items, nil
}

func (s *CatalogService) activeItems(ctx context.Context, sectionID string) ([]models.ContentItem, error) {
	key := itemsCacheKey(sectionID)
	if s.cache != nil {
		var cached []models.ContentItem
		err := s.cache.Get(ctx, key, &cached)
		if err == nil {
			s.observeLookup(true)
			return cached, nil
		}
		s.observeLookup(false)
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("catalog cache read failed", zap.String("section_id", sectionID), zap.Error(err))
		}
	}

	items, err := s.contents.ListBySection(ctx, sectionID, true)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load section content")
	}
	if items == nil {
		items = []models.ContentItem{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, items, s.cacheTTL); err != nil {
			s.logger.Warn("catalog cache write failed", zap.String("section_id", sectionID), zap.Error(err))
		}
	}
	return items, nil
}

func (s *CatalogService) observeLookup(hit bool) {
	if s.metrics != nil {
		s.metrics.ObserveCacheLookup(hit)
	}
}

func itemsCacheKey(sectionID string) string {
	return fmt.Sprintf("catalog:items:%s", sectionID)
}
