package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	appportfolio "github.com/aqari/backend/internal/application/portfolio"
	csvimport "github.com/aqari/backend/internal/infrastructure/import"
	"github.com/aqari/backend/internal/interfaces/http/dto"
)

// maxImportFileSize caps CSV uploads at 8 MiB
const maxImportFileSize = 8 << 20

// ImportHandler handles bulk CSV import endpoints
type ImportHandler struct {
	BaseHandler
	importService *appportfolio.ImportService
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(importService *appportfolio.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// openUpload pulls the "file" part out of the multipart form
func (h *ImportHandler) openUpload(c *gin.Context) (multipart.File, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing 'file' upload")
		return nil, false
	}
	if fileHeader.Size > maxImportFileSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeBadRequest, "Upload exceeds the maximum file size")
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Could not read upload")
		return nil, false
	}
	return file, true
}

// respondWithReport returns 200 when every row passed and 422 when the file
// was readable but some rows failed validation
func (h *ImportHandler) respondWithReport(c *gin.Context, report *csvimport.Report) {
	if report.OK() {
		h.Success(c, report)
		return
	}
	c.JSON(http.StatusUnprocessableEntity, dto.NewSuccessResponse(report))
}

// ImportTenants bulk-loads tenant records from a CSV upload. Pass
// ?dry_run=true to validate the file without writing anything.
func (h *ImportHandler) ImportTenants(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	file, ok := h.openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	dryRun := c.Query("dry_run") == "true"
	report, err := h.importService.ImportTenants(c.Request.Context(), ownerID, file, dryRun)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.respondWithReport(c, report)
}

// ImportUnits bulk-loads units under one property from a CSV upload
func (h *ImportHandler) ImportUnits(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	propertyID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid property ID")
		return
	}

	file, ok := h.openUpload(c)
	if !ok {
		return
	}
	defer file.Close()

	dryRun := c.Query("dry_run") == "true"
	report, err := h.importService.ImportUnits(c.Request.Context(), ownerID, propertyID, file, dryRun)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.respondWithReport(c, report)
}
