package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/salesreport/backend/internal/domain/sales"
)

// LookupHandler serves the values offered as report filters
type LookupHandler struct {
	BaseHandler
	lookups LookupReader
}

// NewLookupHandler creates a new lookup handler
func NewLookupHandler(lookups LookupReader) *LookupHandler {
	return &LookupHandler{lookups: lookups}
}

// RegisterRoutes mounts one route per lookup under /lookups
func (h *LookupHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/lookups")
	for _, field := range sales.LookupFields {
		g.GET("/"+string(field), h.Values(field))
	}
	g.GET("/months", h.Months)
	g.GET("/years", h.Years)
}

// Values godoc
// @Summary      Distinct filter values
// @Description  Distinct values of one sales column, sorted
// @Tags         lookups
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]string}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /lookups/distributors [get]
// @Router       /lookups/agencies [get]
// @Router       /lookups/products [get]
// @Router       /lookups/sales-reps [get]
// @Router       /lookups/customers [get]
// @Router       /lookups/areas [get]
func (h *LookupHandler) Values(field sales.LookupField) gin.HandlerFunc {
	return func(c *gin.Context) {
		values, err := h.lookups.Values(c.Request.Context(), field)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, values)
	}
}

// Months godoc
// @Summary      Month names
// @Tags         lookups
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]object}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /lookups/months [get]
func (h *LookupHandler) Months(c *gin.Context) {
	months, err := h.lookups.Months(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, months)
}

// Years godoc
// @Summary      Years with data
// @Tags         lookups
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.Response{data=[]int}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /lookups/years [get]
func (h *LookupHandler) Years(c *gin.Context) {
	years, err := h.lookups.Years(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, years)
}
