package service

import (
	"context"
	"sync"

	"tablepos/internal/dto"
	"tablepos/internal/lifecycle"
	"tablepos/internal/model"
	"tablepos/internal/query"
	"tablepos/internal/state"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// OrderService runs checkout and the order state machine on top of the
// shared state, and serves the order views.
type OrderService interface {
	Quote(ctx context.Context, req dto.QuoteRequest) (*dto.QuoteResponse, error)
	Checkout(ctx context.Context, req dto.CheckoutRequest) (*dto.OrderResponse, error)
	Settle(ctx context.Context, id string, req dto.SettleRequest) (*dto.OrderResponse, error)
	Void(ctx context.Context, id string, reason string) (*dto.OrderResponse, error)
	Get(ctx context.Context, id string) (*dto.OrderResponse, error)
	List(ctx context.Context, q dto.OrderListQuery) *dto.OrderListResponse
	Dashboard(ctx context.Context) *dto.DashboardResponse
}

type orderService struct {
	store *state.Store
	now   Clock

	mu    sync.Mutex
	pager *query.Pager[query.OrderFilter]
}

func NewOrderService(store *state.Store, now Clock) OrderService {
	return &orderService{
		store: store,
		now:   now,
		pager: query.NewPager(query.OrderFilter{}, query.DefaultLimit),
	}
}

func paymentFrom(method, cash string, sel *dto.DiscountSelection, rules []model.DiscountRule) (lifecycle.Payment, error) {
	disc, err := resolveDiscount(rules, sel)
	if err != nil {
		return lifecycle.Payment{}, err
	}
	return lifecycle.Payment{
		Method:       model.PaymentMethod(method),
		CashReceived: cash,
		Discount:     disc,
	}, nil
}

// ── Quote ─────────────────────────────────────────────────────────────────────
// Prices the cart (or a pending order) without changing anything. Reasons
// that block confirmation come back in the response, not as errors.

func (s *orderService) Quote(_ context.Context, req dto.QuoteRequest) (*dto.QuoteResponse, error) {
	snap := s.store.Snapshot()

	subtotal := snap.Cart.Subtotal()
	if req.OrderID != "" {
		i := orderIndex(snap.Orders, req.OrderID)
		if i < 0 {
			return nil, ErrOrderNotFound
		}
		o := snap.Orders[i]
		if o.Status == model.OrderClosed {
			return nil, lifecycle.ErrOrderClosed
		}
		if !o.IsPending() {
			return nil, lifecycle.ErrNotPending
		}
		subtotal = o.Subtotal
	} else if len(snap.Cart) == 0 {
		return nil, lifecycle.ErrCartEmpty
	}

	p, err := paymentFrom(req.Method, req.CashReceived, req.Discount, snap.Discounts)
	if err != nil {
		return nil, err
	}

	if req.OrderID == "" && lifecycle.DefersPayment(model.OrderType(req.OrderType), p, snap.Settings) {
		return &dto.QuoteResponse{
			Subtotal:     subtotal,
			Discount:     decimal.Zero,
			Total:        subtotal,
			CashReceived: decimal.Zero,
			Change:       decimal.Zero,
			CanConfirm:   true,
		}, nil
	}

	r, qerr := lifecycle.Quote(subtotal, p, snap.Settings)
	resp := &dto.QuoteResponse{
		Subtotal:     r.Subtotal,
		Discount:     r.Discount,
		DiscountName: r.DiscountName,
		Total:        r.Total,
		CashReceived: r.CashReceived,
		Change:       r.Change,
		CanConfirm:   qerr == nil,
	}
	if qerr != nil {
		resp.Blocker = qerr.Error()
	}
	return resp, nil
}

// ── Checkout ──────────────────────────────────────────────────────────────────
// Turns the cart into an order and empties the cart, in one step.

func (s *orderService) Checkout(ctx context.Context, req dto.CheckoutRequest) (*dto.OrderResponse, error) {
	now := s.now()
	var created model.Order
	err := s.store.Mutate(ctx, func(st *state.Snapshot) error {
		p, err := paymentFrom(req.Method, req.CashReceived, req.Discount, st.Discounts)
		if err != nil {
			return err
		}
		o, err := lifecycle.Create(st.Cart, model.OrderType(req.OrderType), p, st.Orders, st.Settings, now)
		if err != nil {
			return err
		}
		st.Orders = append(st.Orders, o)
		st.Cart = nil
		created = o
		return nil
	}, state.BundleOrders)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("order_id", created.ID).
		Str("order_no", created.OrderNo).
		Str("payment_status", string(created.PaymentStatus)).
		Str("total", created.Total.String()).
		Msg("order created")
	resp := orderToResponse(created)
	return &resp, nil
}

// ── Settle ────────────────────────────────────────────────────────────────────

func (s *orderService) Settle(ctx context.Context, id string, req dto.SettleRequest) (*dto.OrderResponse, error) {
	now := s.now()
	var settled model.Order
	err := s.store.Mutate(ctx, func(st *state.Snapshot) error {
		i := orderIndex(st.Orders, id)
		if i < 0 {
			return ErrOrderNotFound
		}
		p, err := paymentFrom(req.Method, req.CashReceived, req.Discount, st.Discounts)
		if err != nil {
			return err
		}
		o, err := lifecycle.Settle(st.Orders[i], p, st.Settings, now)
		if err != nil {
			return err
		}
		st.Orders[i] = o
		settled = o
		return nil
	}, state.BundleOrders)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("order_id", settled.ID).
		Str("order_no", settled.OrderNo).
		Str("method", string(settled.PaymentMethod)).
		Str("total", settled.Total.String()).
		Msg("pending order settled")
	resp := orderToResponse(settled)
	return &resp, nil
}

// ── Void ──────────────────────────────────────────────────────────────────────

func (s *orderService) Void(ctx context.Context, id string, reason string) (*dto.OrderResponse, error) {
	now := s.now()
	var voided model.Order
	err := s.store.Mutate(ctx, func(st *state.Snapshot) error {
		i := orderIndex(st.Orders, id)
		if i < 0 {
			return ErrOrderNotFound
		}
		o, err := lifecycle.Void(st.Orders[i], reason, now)
		if err != nil {
			return err
		}
		st.Orders[i] = o
		voided = o
		return nil
	}, state.BundleOrders)
	if err != nil {
		return nil, err
	}

	log.Info().Str("order_id", voided.ID).Str("order_no", voided.OrderNo).Str("reason", voided.VoidReason).Msg("order voided")
	resp := orderToResponse(voided)
	return &resp, nil
}

// ── Views ─────────────────────────────────────────────────────────────────────

func (s *orderService) Get(_ context.Context, id string) (*dto.OrderResponse, error) {
	snap := s.store.Snapshot()
	i := orderIndex(snap.Orders, id)
	if i < 0 {
		return nil, ErrOrderNotFound
	}
	resp := orderToResponse(snap.Orders[i])
	return &resp, nil
}

// List filters and pages the orders. The register has one order view, so its
// position is kept here: a request without a page stays where the view was,
// and a new filter or page size starts over at page 1.
func (s *orderService) List(_ context.Context, q dto.OrderListQuery) *dto.OrderListResponse {
	f := query.OrderFilter{
		Date:          q.Date,
		OrderType:     model.OrderType(q.OrderType),
		PaymentStatus: model.PaymentStatus(q.PaymentStatus),
		VoidedOnly:    q.Voided == "only",
		HideVoided:    q.Voided == "hide",
		IncludeClosed: q.IncludeClosed,
		Search:        q.Search,
	}
	items := query.FilterOrders(s.store.Snapshot().Orders, f)

	s.mu.Lock()
	s.pager.SetFilter(f)
	s.pager.SetLimit(q.Limit)
	if q.Page > 0 {
		s.pager.SetPage(q.Page)
	}
	page := query.Paginate(items, s.pager.Page(), s.pager.Limit())
	s.pager.SetPage(page.Page)
	s.mu.Unlock()

	return &dto.OrderListResponse{
		Data:       ordersToResponse(page.Items),
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}
}

func (s *orderService) Dashboard(_ context.Context) *dto.DashboardResponse {
	orders := s.store.Snapshot().Orders
	pending, history := query.Split(orders)
	roll := query.Summarize(orders)

	pending = query.FilterOrders(pending, query.OrderFilter{})
	history = query.FilterOrders(history, query.OrderFilter{})

	byMethod := make(map[string]decimal.Decimal, len(roll.ByMethod))
	for m, v := range roll.ByMethod {
		byMethod[string(m)] = v
	}
	return &dto.DashboardResponse{
		Pending:      ordersToResponse(pending),
		History:      ordersToResponse(history),
		PendingTotal: roll.PendingTotal,
		PendingCount: roll.PendingCount,
		PaidTotal:    roll.PaidTotal,
		PaidCount:    roll.PaidCount,
		VoidedCount:  roll.VoidedCount,
		ByMethod:     byMethod,
	}
}

func orderIndex(orders []model.Order, id string) int {
	for i := range orders {
		if orders[i].ID == id {
			return i
		}
	}
	return -1
}
