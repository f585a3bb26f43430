package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byiitians/portal-api/internal/models"
)

func studyFixtures() (*fakeSectionRepo, *fakeContentRepo) {
	sections := &fakeSectionRepo{sections: map[string]*models.Section{
		"sec-1": {ID: "sec-1", Title: "Study Material", Kind: models.SectionKindStudyMaterial, IsActive: true},
	}}
	contents := &fakeContentRepo{items: []models.ContentItem{
		{
			ID: "c1", SectionID: "sec-1", Title: "Kinematics", ContentType: models.ContentTypeLink,
			ContentData: models.ContentData{Category: "NEET", Subject: "Physics", URL: "https://example.com/1"},
			IsActive:    true,
		},
		{
			ID: "c2", SectionID: "sec-1", Title: "Algebra", ContentType: models.ContentTypeLink,
			ContentData: models.ContentData{Category: "Class 8 to 12", Class: "9", Subject: "Math", URL: "https://example.com/2"},
			IsActive:    true,
		},
	}}
	return sections, contents
}

func TestStudyMaterialOverview(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sections, contents := studyFixtures()
	h := NewStudyMaterialHandler(newCatalogFixture(sections, contents))

	r := gin.New()
	r.GET("/study-material/:id", h.Overview)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/study-material/sec-1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	var categories []string
	require.NoError(t, json.Unmarshal(body.Data["categories"], &categories))
	assert.Equal(t, []string{"Class 8 to 12", "NEET"}, categories)

	var classes []string
	require.NoError(t, json.Unmarshal(body.Data["classes"], &classes))
	assert.Equal(t, []string{"9"}, classes)
}

func TestStudyMaterialOverviewFlatSection(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sections := &fakeSectionRepo{sections: map[string]*models.Section{
		"flat": {ID: "flat", Title: "Announcements", Kind: models.SectionKindFlat, IsActive: true},
	}}
	h := NewStudyMaterialHandler(newCatalogFixture(sections, &fakeContentRepo{}))

	r := gin.New()
	r.GET("/study-material/:id", h.Overview)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/study-material/flat", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStudyMaterialClassContentsPlaceholder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sections, contents := studyFixtures()
	h := NewStudyMaterialHandler(newCatalogFixture(sections, contents))

	r := gin.New()
	r.GET("/study-material/:id/classes/:class/subjects/:subject", h.ClassContents)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/study-material/sec-1/classes/11/subjects/Biology", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body.Meta["placeholder"])
}

func TestStudyMaterialCategoryContents(t *testing.T) {
	gin.SetMode(gin.TestMode)
	sections, contents := studyFixtures()
	h := NewStudyMaterialHandler(newCatalogFixture(sections, contents))

	r := gin.New()
	r.GET("/study-material/:id/categories/:category/subjects/:subject", h.CategorySubjectContents)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/study-material/sec-1/categories/NEET/subjects/Physics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	var items []models.ContentItem
	require.NoError(t, json.Unmarshal(body.Data["contents"], &items))
	require.Len(t, items, 1)
	assert.Equal(t, "c1", items[0].ID)
	assert.Nil(t, body.Meta)
}
