package handler

import (
	"net/http"

	"tablepos/internal/dto"
	"tablepos/internal/service"

	"github.com/gin-gonic/gin"
)

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler { return &OrdersHandler{svc: svc} }

// Quote godoc
// @Summary Preview a checkout or a settlement
// @Description Prices the cart, or a pending order when order_id is set. Nothing is saved.
// @Tags checkout
// @Accept json
// @Produce json
// @Param body body dto.QuoteRequest true "Payment decision"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/checkout/quote [post]
func (h *OrdersHandler) Quote(c *gin.Context) {
	var req dto.QuoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Quote(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Checkout godoc
// @Summary Confirm the cart as an order
// @Description Post-pay dine-in orders may omit payment_method and are created pending.
// @Tags checkout
// @Accept json
// @Produce json
// @Param body body dto.CheckoutRequest true "Order type and payment"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/checkout [post]
func (h *OrdersHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Checkout(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary List orders
// @Tags orders
// @Produce json
// @Param date           query string false "YYYY-MM-DD"
// @Param order_type     query string false "dineIn | takeOut"
// @Param payment_status query string false "pending | paid"
// @Param voided         query string false "only | hide"
// @Param include_closed query bool   false "Include closed orders"
// @Param q              query string false "Order number or item name"
// @Param page           query int    false "Page (omit to stay on the current page)"
// @Param limit          query int    false "Page size (default 20)"
// @Success 200 {object} dto.OrderListResponse
// @Router /v1/orders [get]
func (h *OrdersHandler) List(c *gin.Context) {
	var q dto.OrderListQuery
	if !bindQuery(c, &q) {
		return
	}
	c.JSON(http.StatusOK, h.svc.List(c.Request.Context(), q))
}

// Dashboard godoc
// @Summary Open business day overview
// @Tags orders
// @Produce json
// @Success 200 {object} dto.DashboardResponse
// @Router /v1/orders/dashboard [get]
func (h *OrdersHandler) Dashboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Dashboard(c.Request.Context()))
}

// Get godoc
// @Summary Order detail
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/orders/{id} [get]
func (h *OrdersHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Settle godoc
// @Summary Record payment for a pending order
// @Tags orders
// @Accept json
// @Produce json
// @Param id   path string            true "Order ID"
// @Param body body dto.SettleRequest true "Payment"
// @Success 200 {object} dto.OrderResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/orders/{id}/settle [post]
func (h *OrdersHandler) Settle(c *gin.Context) {
	var req dto.SettleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Settle(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Void godoc
// @Summary Void an order
// @Tags orders
// @Accept json
// @Produce json
// @Param id   path string          true "Order ID"
// @Param body body dto.VoidRequest true "Reason"
// @Success 200 {object} dto.OrderResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/orders/{id}/void [post]
func (h *OrdersHandler) Void(c *gin.Context) {
	var req dto.VoidRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Void(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
