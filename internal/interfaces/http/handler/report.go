package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/salesreport/backend/internal/infrastructure/logger"
	"github.com/salesreport/backend/internal/interfaces/http/dto"
	"github.com/salesreport/backend/internal/interfaces/http/middleware"
)

// ReportHandler serves generated PDF reports
type ReportHandler struct {
	BaseHandler
	reports ReportGenerator
}

// NewReportHandler creates a new report handler
func NewReportHandler(reports ReportGenerator) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// RegisterRoutes mounts /reports
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reports/generate", h.Generate)
}

// Generate renders a report for the posted filters and streams it back as
// an attachment. The stored copy is removed once the response is written.
//
// @Summary      Generate a PDF report
// @Description  Aggregates the filtered sales by distributor, agency and product
// @Tags         reports
// @Accept       json
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        request body dto.GenerateReportRequest true "Report filters"
// @Success      200 {file} binary
// @Header       200 {integer} X-Report-Pages "Page count"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /reports/generate [post]
func (h *ReportHandler) Generate(c *gin.Context) {
	var req dto.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Validation(c, err)
		return
	}
	svcReq, err := req.ToServiceRequest(middleware.GetJWTUsername(c))
	if err != nil {
		h.ErrorWithCode(c, dto.ErrCodeInvalidInput, "Invalid date")
		return
	}

	ctx := c.Request.Context()
	generated, err := h.reports.Generate(ctx, svcReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	// the stored file goes away even when the client hangs up mid-download
	defer func() {
		if err := h.reports.Remove(context.WithoutCancel(ctx), generated.Path); err != nil {
			logger.GetGinLogger(c).Warn("report cleanup failed",
				zap.String("path", generated.Path), zap.Error(err))
		}
	}()

	body, err := h.reports.Open(ctx, generated.Path)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer body.Close()

	c.DataFromReader(http.StatusOK, generated.Size, "application/pdf", body, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, generated.Name),
		"X-Report-Pages":      fmt.Sprintf("%d", generated.Pages),
	})
}
