package handler

import (
	"net/http"

	"tablepos/internal/dto"
	"tablepos/internal/service"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	svc       service.SettingsService
	inspector service.InspectorService
}

func NewSettingsHandler(svc service.SettingsService, inspector service.InspectorService) *SettingsHandler {
	return &SettingsHandler{svc: svc, inspector: inspector}
}

// Get godoc
// @Summary Register settings
// @Tags settings
// @Produce json
// @Success 200 {object} dto.SettingsResponse
// @Router /v1/settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Get(c.Request.Context()))
}

// Update godoc
// @Summary Update register settings
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.UpdateSettingsRequest true "Fields to change"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Inspect godoc
// @Summary Raw persisted bundles
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.InspectorResponse
// @Router /v1/inspector [get]
func (h *SettingsHandler) Inspect(c *gin.Context) {
	resp, err := h.inspector.Dump(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
