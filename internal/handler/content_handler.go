package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/byiitians/portal-api/internal/service"
	appErrors "github.com/byiitians/portal-api/pkg/errors"
	"github.com/byiitians/portal-api/pkg/response"
)

// ContentHandler exposes admin content curation endpoints.
type ContentHandler struct {
	service *service.ContentService
}

// NewContentHandler constructs a content handler.
func NewContentHandler(svc *service.ContentService) *ContentHandler {
	return &ContentHandler{service: svc}
}

// ListBySection godoc
// @Summary List a section's content items, hidden ones included
// @Tags Admin
// @Produce json
// @Param id path string true "Section ID"
// @Success 200 {object} response.Envelope
// @Router /admin/sections/{id}/contents [get]
func (h *ContentHandler) ListBySection(c *gin.Context) {
	items, err := h.service.ListBySection(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Create godoc
// @Summary Create a content item
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body service.CreateContentRequest true "Content payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/contents [post]
func (h *ContentHandler) Create(c *gin.Context) {
	var req service.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Delete godoc
// @Summary Delete a content item
// @Tags Admin
// @Produce json
// @Param id path string true "Content ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /admin/contents/{id} [delete]
func (h *ContentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
