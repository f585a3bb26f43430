package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/byiitians/portal-api/internal/models"
	"github.com/byiitians/portal-api/internal/service"
)

type fakeSectionRepo struct {
	sections map[string]*models.Section
	active   []models.Section
}

func (f *fakeSectionRepo) ListActive(ctx context.Context) ([]models.Section, error) {
	return f.active, nil
}

func (f *fakeSectionRepo) ListAll(ctx context.Context) ([]models.Section, error) {
	return f.active, nil
}

func (f *fakeSectionRepo) FindByID(ctx context.Context, id string) (*models.Section, error) {
	section, ok := f.sections[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return section, nil
}

func (f *fakeSectionRepo) Create(ctx context.Context, section *models.Section) error {
	return nil
}

func (f *fakeSectionRepo) Update(ctx context.Context, section *models.Section) error {
	return nil
}

type fakeContentRepo struct {
	items []models.ContentItem
}

func (f *fakeContentRepo) ListBySection(ctx context.Context, sectionID string, activeOnly bool) ([]models.ContentItem, error) {
	return f.items, nil
}

type envelope struct {
	Data  map[string]json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
	Meta map[string]interface{} `json:"meta"`
}

func newCatalogFixture(sections *fakeSectionRepo, contents *fakeContentRepo) *service.CatalogService {
	return service.NewCatalogService(sections, contents, nil, time.Minute, nil, zap.NewNop())
}

func TestSectionHandlerContentsRedirectsStudyMaterial(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sections := &fakeSectionRepo{sections: map[string]*models.Section{
		"sec-1": {ID: "sec-1", Title: "Study Material", Kind: models.SectionKindStudyMaterial, IsActive: true},
	}}
	catalog := newCatalogFixture(sections, &fakeContentRepo{})
	h := NewSectionHandler(catalog, nil, "/api/v1")

	r := gin.New()
	r.GET("/api/v1/sections/:id/contents", h.Contents)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sections/sec-1/contents", nil))

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/api/v1/study-material/sec-1", rec.Header().Get("Location"))
}

func TestSectionHandlerContentsFlatSection(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sections := &fakeSectionRepo{sections: map[string]*models.Section{
		"sec-2": {ID: "sec-2", Title: "Announcements", Kind: models.SectionKindFlat, IsActive: true},
	}}
	contents := &fakeContentRepo{items: []models.ContentItem{
		{ID: "c1", SectionID: "sec-2", Title: "Notice", ContentType: models.ContentTypeText, IsActive: true},
	}}
	h := NewSectionHandler(newCatalogFixture(sections, contents), nil, "/api/v1")

	r := gin.New()
	r.GET("/api/v1/sections/:id/contents", h.Contents)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sections/sec-2/contents", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Data, "section")
	assert.Contains(t, body.Data, "contents")
}

func TestSectionHandlerGetMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewSectionHandler(newCatalogFixture(&fakeSectionRepo{sections: map[string]*models.Section{}}, &fakeContentRepo{}), nil, "")

	r := gin.New()
	r.GET("/sections/:id", h.Get)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sections/ghost", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSectionHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sections := &fakeSectionRepo{active: []models.Section{{ID: "sec-1", Title: "Announcements", Kind: models.SectionKindFlat}}}
	h := NewSectionHandler(newCatalogFixture(sections, &fakeContentRepo{}), nil, "")

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/sections", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Announcements")
}
