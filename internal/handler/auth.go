package handler

import (
	"net/http"
	"time"

	"tablepos/internal/apierror"
	"tablepos/internal/dto"
	"tablepos/internal/middleware"
	"tablepos/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler issues and describes back-office tokens. The register routes
// never ask for one.
type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary Open a back-office session
// @Description Exchanges the configured admin credentials for a bearer token used by catalog, settings and inspector routes.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Admin credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Session godoc
// @Summary Describe the current back-office session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SessionResponse
// @Failure 401 {object} apierror.APIError
// @Router /v1/auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, apierror.New("authentication required"))
		return
	}
	resp := dto.SessionResponse{Username: claims.Username, Role: claims.Role}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time.UTC().Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, resp)
}
