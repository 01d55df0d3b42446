package handler

import (
	"net/http"

	"tablepos/internal/dto"
	"tablepos/internal/service"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct{ svc service.CatalogService }

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// ── Menu ──────────────────────────────────────────────────────────────────────

// ListMenu godoc
// @Summary List menu items
// @Tags menu
// @Produce json
// @Param category       query string false "Exact category"
// @Param available_only query bool   false "Only orderable items"
// @Param q              query string false "Name search"
// @Success 200 {array} dto.MenuItemResponse
// @Router /v1/menu [get]
func (h *CatalogHandler) ListMenu(c *gin.Context) {
	var f dto.MenuFilter
	if !bindQuery(c, &f) {
		return
	}
	c.JSON(http.StatusOK, h.svc.ListMenu(c.Request.Context(), f))
}

// Categories godoc
// @Summary Distinct menu categories
// @Tags menu
// @Produce json
// @Success 200 {array} string
// @Router /v1/menu/categories [get]
func (h *CatalogHandler) Categories(c *gin.Context) {
	cats := h.svc.Categories(c.Request.Context())
	if cats == nil {
		cats = []string{}
	}
	c.JSON(http.StatusOK, cats)
}

// CreateMenuItem godoc
// @Summary Add a menu item
// @Tags menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateMenuItemRequest true "Item"
// @Success 201 {object} dto.MenuItemResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/menu [post]
func (h *CatalogHandler) CreateMenuItem(c *gin.Context) {
	var req dto.CreateMenuItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateMenuItem(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateMenuItem godoc
// @Summary Edit a menu item
// @Tags menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id   path string                    true "Item ID"
// @Param body body dto.UpdateMenuItemRequest true "Fields to change"
// @Success 200 {object} dto.MenuItemResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/menu/{id} [put]
func (h *CatalogHandler) UpdateMenuItem(c *gin.Context) {
	var req dto.UpdateMenuItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateMenuItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteMenuItem godoc
// @Summary Remove a menu item
// @Tags menu
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/menu/{id} [delete]
func (h *CatalogHandler) DeleteMenuItem(c *gin.Context) {
	if err := h.svc.DeleteMenuItem(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetAvailability godoc
// @Summary Show or hide an item for ordering
// @Tags menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id   path string                     true "Item ID"
// @Param body body dto.SetAvailabilityRequest true "Availability"
// @Success 200 {object} dto.MenuItemResponse
// @Router /v1/menu/{id}/availability [patch]
func (h *CatalogHandler) SetAvailability(c *gin.Context) {
	var req dto.SetAvailabilityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetAvailability(c.Request.Context(), c.Param("id"), *req.IsAvailable)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ── Discount rules ────────────────────────────────────────────────────────────

// ListDiscounts godoc
// @Summary List discount rules
// @Tags discounts
// @Produce json
// @Success 200 {array} dto.DiscountRuleResponse
// @Router /v1/discounts [get]
func (h *CatalogHandler) ListDiscounts(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ListDiscounts(c.Request.Context()))
}

// CreateDiscount godoc
// @Summary Add a discount rule
// @Description Percentage values are the share to pay (0.9 pays 90%); values above 1 are whole percents.
// @Tags discounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateDiscountRuleRequest true "Rule"
// @Success 201 {object} dto.DiscountRuleResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/discounts [post]
func (h *CatalogHandler) CreateDiscount(c *gin.Context) {
	var req dto.CreateDiscountRuleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateDiscount(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateDiscount godoc
// @Summary Edit a discount rule
// @Tags discounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id   path string                        true "Rule ID"
// @Param body body dto.UpdateDiscountRuleRequest true "Fields to change"
// @Success 200 {object} dto.DiscountRuleResponse
// @Router /v1/discounts/{id} [put]
func (h *CatalogHandler) UpdateDiscount(c *gin.Context) {
	var req dto.UpdateDiscountRuleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateDiscount(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteDiscount godoc
// @Summary Remove a discount rule
// @Tags discounts
// @Security BearerAuth
// @Param id path string true "Rule ID"
// @Success 204
// @Router /v1/discounts/{id} [delete]
func (h *CatalogHandler) DeleteDiscount(c *gin.Context) {
	if err := h.svc.DeleteDiscount(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
