package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/byiitians/portal-api/internal/models"
	"github.com/byiitians/portal-api/internal/service"
	appErrors "github.com/byiitians/portal-api/pkg/errors"
	"github.com/byiitians/portal-api/pkg/response"
)

// SectionHandler exposes the public section surface and admin section management.
type SectionHandler struct {
	catalog  *service.CatalogService
	sections *service.SectionService
	basePath string
}

// NewSectionHandler constructs a section handler. The base path prefixes the
// redirect target for study-material sections.
func NewSectionHandler(catalog *service.CatalogService, sections *service.SectionService, basePath string) *SectionHandler {
	return &SectionHandler{catalog: catalog, sections: sections, basePath: basePath}
}

// List godoc
// @Summary List visible sections
// @Tags Sections
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /sections [get]
func (h *SectionHandler) List(c *gin.Context) {
	sections, err := h.catalog.ListSections(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sections, nil)
}

// Get godoc
// @Summary Get section detail
// @Tags Sections
// @Produce json
// @Param id path string true "Section ID"
// @Success 200 {object} response.Envelope
// @Router /sections/{id} [get]
func (h *SectionHandler) Get(c *gin.Context) {
	section, err := h.catalog.GetSection(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, section, nil)
}

// Contents godoc
// @Summary List a flat section's content
// @Description Study material sections are redirected to their navigation root.
// @Tags Sections
// @Produce json
// @Param id path string true "Section ID"
// @Success 200 {object} response.Envelope
// @Success 307
// @Router /sections/{id}/contents [get]
func (h *SectionHandler) Contents(c *gin.Context) {
	section, err := h.catalog.GetSection(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	// Kind dispatch happens here at the route, not inside the fetch path.
	if section.Kind == models.SectionKindStudyMaterial {
		c.Redirect(http.StatusTemporaryRedirect, h.basePath+"/study-material/"+section.ID)
		return
	}

	_, items, err := h.catalog.FlatContents(c.Request.Context(), section.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"section": section, "contents": items}, nil)
}

// ListAll godoc
// @Summary List every section including hidden ones
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/sections [get]
func (h *SectionHandler) ListAll(c *gin.Context) {
	sections, err := h.sections.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sections, nil)
}

// Create godoc
// @Summary Create section
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body service.CreateSectionRequest true "Section payload"
// @Success 201 {object} response.Envelope
// @Router /admin/sections [post]
func (h *SectionHandler) Create(c *gin.Context) {
	var req service.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	section, err := h.sections.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, section)
}

// Update godoc
// @Summary Update section
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Section ID"
// @Param payload body service.UpdateSectionRequest true "Section payload"
// @Success 200 {object} response.Envelope
// @Router /admin/sections/{id} [put]
func (h *SectionHandler) Update(c *gin.Context) {
	var req service.UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	section, err := h.sections.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, section, nil)
}
