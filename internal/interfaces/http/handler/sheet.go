package handler

import (
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	salesapp "github.com/salesreport/backend/internal/application/sales"
	"github.com/salesreport/backend/internal/interfaces/http/dto"
	"github.com/salesreport/backend/internal/interfaces/http/middleware"
)

// UploadLimits bounds accepted sheet files
type UploadLimits struct {
	MaxSize           int64
	AllowedExtensions []string
}

// SheetHandler handles spreadsheet uploads and their history
type SheetHandler struct {
	BaseHandler
	sheets SheetManager
	limits UploadLimits
}

// NewSheetHandler creates a new sheet handler
func NewSheetHandler(sheets SheetManager, limits UploadLimits) *SheetHandler {
	return &SheetHandler{sheets: sheets, limits: limits}
}

// RegisterRoutes mounts /sheets. The upload route gets its own body limit
// because sheets are larger than JSON bodies.
func (h *SheetHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/sheets")
	g.POST("/upload", middleware.BodyLimit(h.limits.MaxSize+multipartOverhead), h.Upload)
	g.GET("", h.List)
	g.GET("/history", h.History)
	g.DELETE("/:id", h.Remove)
}

// multipartOverhead leaves room for boundaries and the name field
const multipartOverhead = 64 << 10

// Upload godoc
// @Summary      Upload a sales sheet
// @Description  Ingest an .xlsx or .csv file; rows with an invalid date or number are skipped
// @Tags         sheets
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "Spreadsheet"
// @Param        name formData string false "Display name"
// @Success      201 {object} dto.Response{data=salesapp.UploadResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sheets/upload [post]
func (h *SheetHandler) Upload(c *gin.Context) {
	var form dto.UploadSheetForm
	if err := c.ShouldBind(&form); err != nil {
		h.Validation(c, err)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		h.ErrorWithCode(c, dto.ErrCodeInvalidInput, "A spreadsheet file is required")
		return
	}
	if h.limits.MaxSize > 0 && header.Size > h.limits.MaxSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "File exceeds the maximum upload size")
		return
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if len(h.limits.AllowedExtensions) > 0 && !slices.Contains(h.limits.AllowedExtensions, ext) {
		h.ErrorWithCode(c, dto.ErrCodeInvalidInput,
			"Unsupported file type, expected one of "+strings.Join(h.limits.AllowedExtensions, ", "))
		return
	}

	file, err := header.Open()
	if err != nil {
		h.BadRequest(c, "Could not read the uploaded file")
		return
	}
	defer file.Close()

	name := strings.TrimSpace(form.Name)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(header.Filename), filepath.Ext(header.Filename))
	}

	result, err := h.sheets.Upload(c.Request.Context(), salesapp.UploadSheetRequest{
		Name:       name,
		FileName:   filepath.Base(header.Filename),
		Content:    file,
		UploadedBy: middleware.GetJWTUsername(c),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List godoc
// @Summary      List uploaded sheets
// @Tags         sheets
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]salesapp.SheetResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sheets [get]
func (h *SheetHandler) List(c *gin.Context) {
	sheets, err := h.sheets.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sheets)
}

// Remove godoc
// @Summary      Remove a sheet
// @Description  Delete an upload batch together with its sales records
// @Tags         sheets
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Sheet ID" format(uuid)
// @Success      200 {object} dto.Response{data=salesapp.SheetResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sheets/{id} [delete]
func (h *SheetHandler) Remove(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.Validation(c, err)
		return
	}
	id := uuid.MustParse(req.ID)

	removed, err := h.sheets.Remove(c.Request.Context(), id, middleware.GetJWTUsername(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, removed)
}

// History godoc
// @Summary      Upload history
// @Description  Add and remove events, newest first
// @Tags         sheets
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]salesapp.HistoryResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /sheets/history [get]
func (h *SheetHandler) History(c *gin.Context) {
	history, err := h.sheets.History(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, history)
}
