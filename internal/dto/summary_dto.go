package dto

import "github.com/shopspring/decimal"

// SummaryListQuery is bound from the query string of GET /v1/summaries.
type SummaryListQuery struct {
	From  string `form:"from"`
	To    string `form:"to"`
	Page  int    `form:"page"             validate:"min=0"`
	Limit int    `form:"limit,default=20" validate:"min=1,max=200"`
}

type SummaryListItem struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Total       decimal.Decimal `json:"total"`
	OrderCount  int             `json:"order_count"`
	VoidedCount int             `json:"voided_count"`
	ClosedAt    string          `json:"closed_at"`
}

type SummaryResponse struct {
	SummaryListItem
	ItemSales     map[string]int  `json:"item_sales"`
	TypeCount     map[string]int  `json:"type_count"`
	RelatedOrders []OrderResponse `json:"related_orders"`
}

type SummaryListResponse struct {
	Data       []SummaryListItem `json:"data"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// CloseResponse reports one daily close. Closed is 0 and Summaries empty
// when there was nothing to close.
type CloseResponse struct {
	Closed    int               `json:"closed"`
	Summaries []SummaryResponse `json:"summaries"`
}
