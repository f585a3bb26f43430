package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/byiitians/portal-api/internal/service"
	"github.com/byiitians/portal-api/pkg/response"
)

// ExportHandler serves admin data exports.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler constructs an export handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// ContentInventory godoc
// @Summary Download the content inventory
// @Tags Admin
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "Export format (csv or pdf)" default(csv)
// @Success 200
// @Failure 400 {object} response.Envelope
// @Router /admin/exports/contents [get]
func (h *ExportHandler) ContentInventory(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))

	result, err := h.service.ContentInventory(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
