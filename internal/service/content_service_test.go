package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/byiitians/portal-api/internal/models"
	appErrors "github.com/byiitians/portal-api/pkg/errors"
)

type mockContentRepo struct {
	items       map[string]*models.ContentItem
	count       int
	created     []*models.ContentItem
	deleted     []string
	createCalls int
}

func (m *mockContentRepo) ListBySection(ctx context.Context, sectionID string, activeOnly bool) ([]models.ContentItem, error) {
	var out []models.ContentItem
	for _, item := range m.items {
		if item.SectionID == sectionID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (m *mockContentRepo) FindByID(ctx context.Context, id string) (*models.ContentItem, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return item, nil
}

func (m *mockContentRepo) CountBySection(ctx context.Context, sectionID string) (int, error) {
	return m.count, nil
}

func (m *mockContentRepo) Create(ctx context.Context, item *models.ContentItem) error {
	m.createCalls++
	m.created = append(m.created, item)
	return nil
}

func (m *mockContentRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockSectionLookup struct {
	sections map[string]*models.Section
}

func (m *mockSectionLookup) FindByID(ctx context.Context, id string) (*models.Section, error) {
	section, ok := m.sections[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return section, nil
}

type recordingNotifier struct {
	changed []string
}

func (n *recordingNotifier) ContentChanged(sectionID string) {
	n.changed = append(n.changed, sectionID)
}

func newContentServiceFixture(section *models.Section) (*ContentService, *mockContentRepo, *recordingNotifier) {
	repo := &mockContentRepo{items: map[string]*models.ContentItem{}}
	sections := &mockSectionLookup{sections: map[string]*models.Section{}}
	if section != nil {
		sections.sections[section.ID] = section
	}
	notifier := &recordingNotifier{}
	svc := NewContentService(repo, sections, notifier, validator.New(), zap.NewNop())
	return svc, repo, notifier
}

func TestContentServiceCreateFlatText(t *testing.T) {
	svc, repo, notifier := newContentServiceFixture(newFlatSection())
	repo.count = 4

	item, err := svc.Create(context.Background(), CreateContentRequest{
		SectionID:   "sec-flat",
		Title:       "  Notice  ",
		ContentType: "text",
		Text:        "Holiday on Friday",
	})
	require.NoError(t, err)
	assert.Equal(t, "Notice", item.Title)
	assert.Equal(t, 5, item.DisplayOrder)
	assert.True(t, item.IsActive)
	assert.Equal(t, "Holiday on Friday", item.ContentData.Text)
	assert.Equal(t, []string{"sec-flat"}, notifier.changed)
}

func TestContentServiceCreateEmptyTextRejected(t *testing.T) {
	svc, repo, notifier := newContentServiceFixture(newFlatSection())

	_, err := svc.Create(context.Background(), CreateContentRequest{
		SectionID:   "sec-flat",
		Title:       "Notice",
		ContentType: "text",
		Text:        "   ",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Zero(t, repo.createCalls, "store must not be touched on validation failure")
	assert.Empty(t, notifier.changed)
}

func TestContentServiceCreateLinkRequiresURL(t *testing.T) {
	svc, repo, _ := newContentServiceFixture(newFlatSection())

	_, err := svc.Create(context.Background(), CreateContentRequest{
		SectionID:   "sec-flat",
		Title:       "Syllabus",
		ContentType: "link",
	})
	require.Error(t, err)
	assert.Zero(t, repo.createCalls)
}

func TestContentServiceCreateUnknownSection(t *testing.T) {
	svc, _, _ := newContentServiceFixture(nil)

	_, err := svc.Create(context.Background(), CreateContentRequest{
		SectionID:   "ghost",
		Title:       "Notice",
		ContentType: "text",
		Text:        "hello",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestContentServiceCreateStudyMaterialRequiresCategory(t *testing.T) {
	svc, repo, _ := newContentServiceFixture(newStudySection())

	_, err := svc.Create(context.Background(), CreateContentRequest{
		SectionID:   "sec-study",
		Title:       "Kinematics Notes",
		ContentType: "link",
		URL:         "https://example.com/notes.pdf",
		Subject:     "Physics",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Zero(t, repo.createCalls)
}

func TestContentServiceCreateClassRangeRequiresClassAndSubject(t *testing.T) {
	svc, repo, _ := newContentServiceFixture(newStudySection())

	_, err := svc.Create(context.Background(), CreateContentRequest{
		SectionID:   "sec-study",
		Title:       "Algebra Notes",
		ContentType: "link",
		URL:         "https://example.com/algebra.pdf",
		Category:    models.CategoryClassRange,
		Subject:     "Math",
	})
	require.Error(t, err)
	assert.Zero(t, repo.createCalls)
}

func TestContentServiceCreateExamCategory(t *testing.T) {
	svc, repo, notifier := newContentServiceFixture(newStudySection())

	item, err := svc.Create(context.Background(), CreateContentRequest{
		SectionID:   "sec-study",
		Title:       "Organic Chemistry",
		ContentType: "link",
		URL:         "https://example.com/organic.pdf",
		Category:    "NEET",
		Subject:     "Chemistry",
	})
	require.NoError(t, err)
	assert.Equal(t, "NEET", item.ContentData.Category)
	assert.Equal(t, "Chemistry", item.ContentData.Subject)
	assert.Empty(t, item.ContentData.Class)
	assert.Equal(t, 1, repo.createCalls)
	assert.Equal(t, []string{"sec-study"}, notifier.changed)
}

func TestContentServiceCreateClassRange(t *testing.T) {
	svc, _, _ := newContentServiceFixture(newStudySection())

	item, err := svc.Create(context.Background(), CreateContentRequest{
		SectionID:   "sec-study",
		Title:       "Class 10 Science",
		ContentType: "link",
		URL:         "https://example.com/science.pdf",
		Category:    models.CategoryClassRange,
		Class:       "10",
		Subject:     "Physics",
	})
	require.NoError(t, err)
	assert.Equal(t, "10", item.ContentData.Class)
	assert.Equal(t, "Physics", item.ContentData.Subject)
}

func TestContentServiceCreateUnknownCategory(t *testing.T) {
	svc, repo, _ := newContentServiceFixture(newStudySection())

	_, err := svc.Create(context.Background(), CreateContentRequest{
		SectionID:   "sec-study",
		Title:       "Notes",
		ContentType: "link",
		URL:         "https://example.com/notes.pdf",
		Category:    "Olympiad",
		Subject:     "Math",
	})
	require.Error(t, err)
	assert.Zero(t, repo.createCalls)
}

func TestContentServiceDeleteMissing(t *testing.T) {
	svc, _, notifier := newContentServiceFixture(newFlatSection())

	err := svc.Delete(context.Background(), "ghost")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Empty(t, notifier.changed)
}

func TestContentServiceDelete(t *testing.T) {
	svc, repo, notifier := newContentServiceFixture(newFlatSection())
	repo.items["c1"] = &models.ContentItem{ID: "c1", SectionID: "sec-flat", Title: "Notice"}

	err := svc.Delete(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, repo.deleted)
	assert.Equal(t, []string{"sec-flat"}, notifier.changed)
}
