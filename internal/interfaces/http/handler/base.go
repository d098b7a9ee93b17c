package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/salesreport/backend/internal/domain/report"
	"github.com/salesreport/backend/internal/domain/shared"
	"github.com/salesreport/backend/internal/infrastructure/logger"
	"github.com/salesreport/backend/internal/infrastructure/printing"
	"github.com/salesreport/backend/internal/interfaces/http/dto"
	"github.com/salesreport/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with an explicit status
func (h *BaseHandler) Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, middleware.GetRequestID(c)))
}

// ErrorWithCode derives the status from the error code
func (h *BaseHandler) ErrorWithCode(c *gin.Context, code, message string) {
	h.Error(c, dto.GetHTTPStatus(code), code, message)
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// InternalError sends a 500 response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError maps service errors onto the response envelope. Unknown
// errors are logged and hidden behind a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.ErrorWithCode(c, dto.NormalizeErrorCode(domainErr.Code), domainErr.Message)
		return
	}

	var renderErr *printing.RenderError
	if errors.As(err, &renderErr) && renderErr.Code == printing.ErrCodeNotFound {
		h.ErrorWithCode(c, dto.ErrCodeNotFound, "Report not found")
		return
	}

	log := logger.GetGinLogger(c)
	_ = c.Error(err)

	var sinkErr *report.SinkWriteError
	if errors.As(err, &sinkErr) {
		log.Error("report storage failed", zap.String("path", sinkErr.Path), zap.Error(err))
		h.ErrorWithCode(c, dto.ErrCodeStorage, "Failed to store the report")
		return
	}

	log.Error("request failed", zap.Error(err))
	h.InternalError(c, "An unexpected error occurred")
}

// Validation writes a binding or validation failure
func (h *BaseHandler) Validation(c *gin.Context, err error) {
	middleware.HandleValidationError(c, err)
}
