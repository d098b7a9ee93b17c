package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/salesreport/backend/internal/application/identity"
	"github.com/salesreport/backend/internal/interfaces/http/dto"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	BaseHandler
	auth       Authenticator
	loginGuard []gin.HandlerFunc
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth Authenticator) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// WithLoginGuard runs mw in front of the login route, typically a rate limiter
func (h *AuthHandler) WithLoginGuard(mw gin.HandlerFunc) *AuthHandler {
	h.loginGuard = append(h.loginGuard, mw)
	return h
}

// RegisterRoutes mounts /auth
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/auth")
	g.POST("/register", h.Register)
	g.POST("/login", append(h.loginGuard, h.Login)...)
}

// Register godoc
// @Summary      Register a user
// @Description  Create an account with a unique username
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "Account"
// @Success      201 {object} dto.Response{data=identity.UserInfo}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Validation(c, err)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), identity.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// Login godoc
// @Summary      User login
// @Description  Exchange credentials for an access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Login credentials"
// @Success      200 {object} dto.Response{data=identity.LoginResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      429 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Validation(c, err)
		return
	}

	result, err := h.auth.Login(c.Request.Context(), identity.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
