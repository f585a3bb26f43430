package handler

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	appErrors "github.com/byiitians/portal-api/pkg/errors"
	"github.com/byiitians/portal-api/pkg/response"
	"github.com/byiitians/portal-api/pkg/storage"
)

const testSeriesAssetID = "test-series"

// AssetHandler issues signed download links for institute assets and serves
// the referenced files.
type AssetHandler struct {
	storage        *storage.LocalStorage
	signer         *storage.SignedURLSigner
	testSeriesFile string
	basePath       string
}

// NewAssetHandler constructs an asset handler. The base path prefixes issued
// download URLs.
func NewAssetHandler(store *storage.LocalStorage, signer *storage.SignedURLSigner, testSeriesFile, basePath string) *AssetHandler {
	if testSeriesFile == "" {
		testSeriesFile = "test-series-brochure.pdf"
	}
	return &AssetHandler{storage: store, signer: signer, testSeriesFile: testSeriesFile, basePath: basePath}
}

// TestSeriesBrochure godoc
// @Summary Issue a signed link for the test series brochure
// @Tags Assets
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /assets/brochures/test-series [get]
func (h *AssetHandler) TestSeriesBrochure(c *gin.Context) {
	if !h.storage.Exists(h.testSeriesFile) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "brochure is not available"))
		return
	}

	token, expiresAt, err := h.signer.Generate(testSeriesAssetID, h.testSeriesFile)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download link"))
		return
	}

	response.JSON(c, http.StatusOK, gin.H{
		"url":        h.basePath + "/assets/download?token=" + token,
		"expires_at": expiresAt,
	}, nil)
}

// Download godoc
// @Summary Download an asset referenced by a signed token
// @Tags Assets
// @Produce application/octet-stream
// @Param token query string true "Signed download token"
// @Success 200
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /assets/download [get]
func (h *AssetHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}

	_, relPath, _, err := h.signer.Parse(token, false)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid download token"))
		return
	}

	if !h.storage.Exists(relPath) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "asset not found"))
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filepath.Base(relPath))
	c.File(h.storage.Path(relPath))
}
