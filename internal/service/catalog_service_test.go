package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/byiitians/portal-api/internal/models"
	appErrors "github.com/byiitians/portal-api/pkg/errors"
)

type mockCatalogSectionRepo struct {
	sections map[string]*models.Section
	active   []models.Section
}

func (m *mockCatalogSectionRepo) ListActive(ctx context.Context) ([]models.Section, error) {
	return m.active, nil
}

func (m *mockCatalogSectionRepo) FindByID(ctx context.Context, id string) (*models.Section, error) {
	section, ok := m.sections[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return section, nil
}

type mockCatalogContentRepo struct {
	items []models.ContentItem
	calls int
}

func (m *mockCatalogContentRepo) ListBySection(ctx context.Context, sectionID string, activeOnly bool) ([]models.ContentItem, error) {
	m.calls++
	return m.items, nil
}

type memoryCache struct {
	entries map[string][]byte
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := c.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	c.deleted = append(c.deleted, pattern)
	delete(c.entries, pattern)
	return nil
}

func studyItem(id, category, class, subject string) models.ContentItem {
	return models.ContentItem{
		ID:          id,
		SectionID:   "sec-study",
		Title:       "Item " + id,
		ContentType: models.ContentTypeLink,
		ContentData: models.ContentData{Category: category, Class: class, Subject: subject, URL: "https://example.com/" + id},
		IsActive:    true,
	}
}

func newStudySection() *models.Section {
	return &models.Section{ID: "sec-study", Title: "Study Material", Kind: models.SectionKindStudyMaterial, IsActive: true}
}

func newFlatSection() *models.Section {
	return &models.Section{ID: "sec-flat", Title: "Announcements", Kind: models.SectionKindFlat, IsActive: true}
}

func TestCatalogServiceGetSectionNotFound(t *testing.T) {
	sections := &mockCatalogSectionRepo{sections: map[string]*models.Section{}}
	svc := NewCatalogService(sections, &mockCatalogContentRepo{}, nil, time.Minute, nil, zap.NewNop())

	_, err := svc.GetSection(context.Background(), "missing")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestCatalogServiceListSectionsNeverNil(t *testing.T) {
	svc := NewCatalogService(&mockCatalogSectionRepo{}, &mockCatalogContentRepo{}, nil, time.Minute, nil, zap.NewNop())

	sections, err := svc.ListSections(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, sections)
	assert.Empty(t, sections)
}

func TestCatalogServiceOverviewRejectsFlatSection(t *testing.T) {
	sections := &mockCatalogSectionRepo{sections: map[string]*models.Section{"sec-flat": newFlatSection()}}
	svc := NewCatalogService(sections, &mockCatalogContentRepo{}, nil, time.Minute, nil, zap.NewNop())

	_, err := svc.Overview(context.Background(), "sec-flat")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestCatalogServiceOverview(t *testing.T) {
	sections := &mockCatalogSectionRepo{sections: map[string]*models.Section{"sec-study": newStudySection()}}
	contents := &mockCatalogContentRepo{items: []models.ContentItem{
		studyItem("a", "IIT", "", "Math"),
		studyItem("b", "Class 8 to 12", "9", "Physics"),
		studyItem("c", "Class 8 to 12", "10", "Math"),
	}}
	svc := NewCatalogService(sections, contents, nil, time.Minute, nil, zap.NewNop())

	overview, err := svc.Overview(context.Background(), "sec-study")
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "9"}, overview.Classes)
	assert.Equal(t, []string{"Class 8 to 12", "IIT"}, overview.Categories)
}

func TestCatalogServiceCategoryOverviewClassRange(t *testing.T) {
	sections := &mockCatalogSectionRepo{sections: map[string]*models.Section{"sec-study": newStudySection()}}
	contents := &mockCatalogContentRepo{items: []models.ContentItem{
		studyItem("a", "Class 8 to 12", "9", "Physics"),
		studyItem("b", "Class 8 to 12", "12", "Math"),
		studyItem("c", "NEET", "", "Biology"),
	}}
	svc := NewCatalogService(sections, contents, nil, time.Minute, nil, zap.NewNop())

	nav, err := svc.CategoryOverview(context.Background(), "sec-study", models.CategoryClassRange)
	require.NoError(t, err)
	assert.True(t, nav.IsClassRange)
	assert.Equal(t, []string{"12", "9"}, nav.Classes)
	assert.Empty(t, nav.Subjects)
}

func TestCatalogServiceCategoryOverviewExamCategory(t *testing.T) {
	sections := &mockCatalogSectionRepo{sections: map[string]*models.Section{"sec-study": newStudySection()}}
	contents := &mockCatalogContentRepo{items: []models.ContentItem{
		studyItem("a", "NEET", "", "Biology"),
		studyItem("b", "NEET", "", "Chemistry"),
		studyItem("c", "IIT", "", "Math"),
	}}
	svc := NewCatalogService(sections, contents, nil, time.Minute, nil, zap.NewNop())

	nav, err := svc.CategoryOverview(context.Background(), "sec-study", "NEET")
	require.NoError(t, err)
	assert.False(t, nav.IsClassRange)
	assert.Equal(t, []string{"Biology", "Chemistry"}, nav.Subjects)
	assert.Empty(t, nav.Classes)
}

func TestCatalogServiceClassContentsKeepsOrder(t *testing.T) {
	sections := &mockCatalogSectionRepo{sections: map[string]*models.Section{"sec-study": newStudySection()}}
	contents := &mockCatalogContentRepo{items: []models.ContentItem{
		studyItem("first", "Class 8 to 12", "9", "Math"),
		studyItem("skip", "Class 8 to 12", "10", "Math"),
		studyItem("second", "Class 8 to 12", "9", "Math"),
	}}
	svc := NewCatalogService(sections, contents, nil, time.Minute, nil, zap.NewNop())

	_, items, err := svc.ClassContents(context.Background(), "sec-study", "9", "Math")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "first", items[0].ID)
	assert.Equal(t, "second", items[1].ID)
}

func TestCatalogServiceCachesActiveItems(t *testing.T) {
	sections := &mockCatalogSectionRepo{sections: map[string]*models.Section{"sec-study": newStudySection()}}
	contents := &mockCatalogContentRepo{items: []models.ContentItem{studyItem("a", "IIT", "", "Math")}}
	cache := newMemoryCache()
	svc := NewCatalogService(sections, contents, cache, time.Minute, nil, zap.NewNop())

	_, err := svc.Overview(context.Background(), "sec-study")
	require.NoError(t, err)
	assert.Equal(t, 1, contents.calls)

	_, err = svc.Overview(context.Background(), "sec-study")
	require.NoError(t, err)
	assert.Equal(t, 1, contents.calls, "second read should be served from cache")
}

func TestCatalogServiceRefreshAndInvalidate(t *testing.T) {
	sections := &mockCatalogSectionRepo{sections: map[string]*models.Section{"sec-study": newStudySection()}}
	contents := &mockCatalogContentRepo{items: []models.ContentItem{studyItem("a", "IIT", "", "Math")}}
	cache := newMemoryCache()
	svc := NewCatalogService(sections, contents, cache, time.Minute, nil, zap.NewNop())

	require.NoError(t, svc.RefreshSection(context.Background(), "sec-study"))
	assert.Contains(t, cache.entries, "catalog:items:sec-study")

	require.NoError(t, svc.InvalidateSection(context.Background(), "sec-study"))
	assert.NotContains(t, cache.entries, "catalog:items:sec-study")
}
