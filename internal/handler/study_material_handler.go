package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/byiitians/portal-api/internal/models"
	"github.com/byiitians/portal-api/internal/service"
	"github.com/byiitians/portal-api/pkg/response"
)

// StudyMaterialHandler exposes the classified navigation tree of a
// study-material section.
type StudyMaterialHandler struct {
	catalog *service.CatalogService
}

// NewStudyMaterialHandler constructs a study material handler.
func NewStudyMaterialHandler(catalog *service.CatalogService) *StudyMaterialHandler {
	return &StudyMaterialHandler{catalog: catalog}
}

// Overview godoc
// @Summary Study material navigation root
// @Description Lists the classes and categories available in the section.
// @Tags StudyMaterial
// @Produce json
// @Param id path string true "Section ID"
// @Success 200 {object} response.Envelope
// @Router /study-material/{id} [get]
func (h *StudyMaterialHandler) Overview(c *gin.Context) {
	overview, err := h.catalog.Overview(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview, nil)
}

// ClassSubjects godoc
// @Summary Subjects available for a class
// @Tags StudyMaterial
// @Produce json
// @Param id path string true "Section ID"
// @Param class path string true "Class"
// @Success 200 {object} response.Envelope
// @Router /study-material/{id}/classes/{class} [get]
func (h *StudyMaterialHandler) ClassSubjects(c *gin.Context) {
	section, subjects, err := h.catalog.ClassSubjects(c.Request.Context(), c.Param("id"), c.Param("class"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"section":  section,
		"class":    c.Param("class"),
		"subjects": subjects,
	}, nil)
}

// ClassContents godoc
// @Summary Content items for a class and subject
// @Tags StudyMaterial
// @Produce json
// @Param id path string true "Section ID"
// @Param class path string true "Class"
// @Param subject path string true "Subject"
// @Success 200 {object} response.Envelope
// @Router /study-material/{id}/classes/{class}/subjects/{subject} [get]
func (h *StudyMaterialHandler) ClassContents(c *gin.Context) {
	section, items, err := h.catalog.ClassContents(c.Request.Context(), c.Param("id"), c.Param("class"), c.Param("subject"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"section":  section,
		"class":    c.Param("class"),
		"subject":  c.Param("subject"),
		"contents": items,
	}, nil, contentsMeta(items))
}

// CategoryOverview godoc
// @Summary Picker below a category
// @Description Classes for the class-range category, subjects otherwise.
// @Tags StudyMaterial
// @Produce json
// @Param id path string true "Section ID"
// @Param category path string true "Category"
// @Success 200 {object} response.Envelope
// @Router /study-material/{id}/categories/{category} [get]
func (h *StudyMaterialHandler) CategoryOverview(c *gin.Context) {
	nav, err := h.catalog.CategoryOverview(c.Request.Context(), c.Param("id"), c.Param("category"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, nav, nil)
}

// CategoryClassSubjects godoc
// @Summary Subjects for a class within the class-range category
// @Tags StudyMaterial
// @Produce json
// @Param id path string true "Section ID"
// @Param category path string true "Category"
// @Param class path string true "Class"
// @Success 200 {object} response.Envelope
// @Router /study-material/{id}/categories/{category}/classes/{class} [get]
func (h *StudyMaterialHandler) CategoryClassSubjects(c *gin.Context) {
	section, subjects, err := h.catalog.CategoryClassSubjects(c.Request.Context(), c.Param("id"), c.Param("category"), c.Param("class"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"section":  section,
		"category": c.Param("category"),
		"class":    c.Param("class"),
		"subjects": subjects,
	}, nil)
}

// CategorySubjectContents godoc
// @Summary Content items for a category and subject
// @Tags StudyMaterial
// @Produce json
// @Param id path string true "Section ID"
// @Param category path string true "Category"
// @Param subject path string true "Subject"
// @Success 200 {object} response.Envelope
// @Router /study-material/{id}/categories/{category}/subjects/{subject} [get]
func (h *StudyMaterialHandler) CategorySubjectContents(c *gin.Context) {
	section, items, err := h.catalog.CategoryContents(c.Request.Context(), c.Param("id"), c.Param("category"), "", c.Param("subject"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"section":  section,
		"category": c.Param("category"),
		"subject":  c.Param("subject"),
		"contents": items,
	}, nil, contentsMeta(items))
}

// CategoryClassContents godoc
// @Summary Content items for a class-range category, class and subject
// @Tags StudyMaterial
// @Produce json
// @Param id path string true "Section ID"
// @Param category path string true "Category"
// @Param class path string true "Class"
// @Param subject path string true "Subject"
// @Success 200 {object} response.Envelope
// @Router /study-material/{id}/categories/{category}/classes/{class}/subjects/{subject} [get]
func (h *StudyMaterialHandler) CategoryClassContents(c *gin.Context) {
	section, items, err := h.catalog.CategoryContents(c.Request.Context(), c.Param("id"), c.Param("category"), c.Param("class"), c.Param("subject"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"section":  section,
		"category": c.Param("category"),
		"class":    c.Param("class"),
		"subject":  c.Param("subject"),
		"contents": items,
	}, nil, contentsMeta(items))
}

// contentsMeta marks empty terminal lists so clients can render a coming-soon
// placeholder instead of an error state.
func contentsMeta(items []models.ContentItem) map[string]interface{} {
	if len(items) > 0 {
		return nil
	}
	return map[string]interface{}{
		"placeholder": true,
		"message":     "Content will be available soon",
	}
}
