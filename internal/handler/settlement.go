package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"tablepos/internal/dto"
	"tablepos/internal/service"

	"github.com/gin-gonic/gin"
)

type SettlementHandler struct{ svc service.SettlementService }

func NewSettlementHandler(svc service.SettlementService) *SettlementHandler {
	return &SettlementHandler{svc: svc}
}

// Close godoc
// @Summary Daily close
// @Description Folds every unclosed order into one summary per date. Refused while orders await payment.
// @Tags settlement
// @Produce json
// @Success 200 {object} dto.CloseResponse
// @Failure 409 {object} apierror.BlockedError
// @Router /v1/close [post]
func (h *SettlementHandler) Close(c *gin.Context) {
	resp, err := h.svc.Close(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary List daily summaries
// @Tags settlement
// @Produce json
// @Param from  query string false "First date, YYYY-MM-DD"
// @Param to    query string false "Last date, YYYY-MM-DD"
// @Param page  query int    false "Page"
// @Param limit query int    false "Page size"
// @Success 200 {object} dto.SummaryListResponse
// @Router /v1/summaries [get]
func (h *SettlementHandler) List(c *gin.Context) {
	var q dto.SummaryListQuery
	if !bindQuery(c, &q) {
		return
	}
	c.JSON(http.StatusOK, h.svc.ListSummaries(c.Request.Context(), q))
}

// Get godoc
// @Summary Daily summary detail
// @Tags settlement
// @Produce json
// @Param id path string true "Summary ID"
// @Success 200 {object} dto.SummaryResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/summaries/{id} [get]
func (h *SettlementHandler) Get(c *gin.Context) {
	resp, err := h.svc.GetSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PDF godoc
// @Summary Printable daily summary
// @Tags settlement
// @Produce application/pdf
// @Param id path string true "Summary ID"
// @Success 200 {file} binary
// @Failure 404 {object} apierror.APIError
// @Router /v1/summaries/{id}/pdf [get]
func (h *SettlementHandler) PDF(c *gin.Context) {
	id := c.Param("id")
	var buf bytes.Buffer
	if err := h.svc.WriteSummaryPDF(c.Request.Context(), id, &buf); err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="summary-%s.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
