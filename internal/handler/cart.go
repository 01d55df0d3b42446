package handler

import (
	"net/http"

	"tablepos/internal/dto"
	"tablepos/internal/service"

	"github.com/gin-gonic/gin"
)

type CartHandler struct{ svc service.CartService }

func NewCartHandler(svc service.CartService) *CartHandler { return &CartHandler{svc: svc} }

// Get godoc
// @Summary Current cart
// @Tags cart
// @Produce json
// @Success 200 {object} dto.CartResponse
// @Router /v1/cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Get(c.Request.Context()))
}

// AddItem godoc
// @Summary Add one unit of a menu item
// @Tags cart
// @Accept json
// @Produce json
// @Param body body dto.AddCartItemRequest true "Item"
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddItem(c.Request.Context(), req.ItemID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetQuantity godoc
// @Summary Set a line quantity (0 removes the line)
// @Tags cart
// @Accept json
// @Produce json
// @Param item_id path string                     true "Menu item ID"
// @Param body    body dto.SetCartQuantityRequest true "Quantity"
// @Success 200 {object} dto.CartResponse
// @Router /v1/cart/items/{item_id} [put]
func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req dto.SetCartQuantityRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SetQuantity(c.Request.Context(), c.Param("item_id"), *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Clear godoc
// @Summary Empty the cart
// @Tags cart
// @Produce json
// @Success 200 {object} dto.CartResponse
// @Router /v1/cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	resp, err := h.svc.Clear(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
