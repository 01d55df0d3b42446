package service

import (
	"context"
	"io"
	"sync"
	"time"

	"tablepos/internal/dto"
	"tablepos/internal/infra"
	"tablepos/internal/model"
	"tablepos/internal/query"
	"tablepos/internal/settlement"
	"tablepos/internal/state"

	"github.com/rs/zerolog/log"
)

// SettlementService runs the daily close and serves the summary archive.
type SettlementService interface {
	Close(ctx context.Context) (*dto.CloseResponse, error)
	ListSummaries(ctx context.Context, q dto.SummaryListQuery) *dto.SummaryListResponse
	GetSummary(ctx context.Context, id string) (*dto.SummaryResponse, error)
	WriteSummaryPDF(ctx context.Context, id string, w io.Writer) error
}

type settlementService struct {
	store *state.Store
	now   Clock
	loc   *time.Location

	mu    sync.Mutex
	pager *query.Pager[query.SummaryFilter]
}

func NewSettlementService(store *state.Store, now Clock, loc *time.Location) SettlementService {
	return &settlementService{
		store: store,
		now:   now,
		loc:   loc,
		pager: query.NewPager(query.SummaryFilter{}, query.DefaultLimit),
	}
}

// ── Close ─────────────────────────────────────────────────────────────────────
// Reading the unclosed set, appending summaries and marking orders closed all
// happen inside one Mutate, so no other order change can land in between.

func (s *settlementService) Close(ctx context.Context) (*dto.CloseResponse, error) {
	closedAt := s.now()
	var res settlement.Result
	err := s.store.Mutate(ctx, func(st *state.Snapshot) error {
		r, err := settlement.Close(st.Orders, closedAt)
		if err != nil {
			return err
		}
		res = r
		if r.Closed > 0 {
			st.Orders = r.Orders
			st.Summaries = append(st.Summaries, r.Summaries...)
		}
		return nil
	}, state.BundleOrders, state.BundleSummaries)
	if err != nil {
		log.Warn().Err(err).Msg("daily close refused")
		return nil, err
	}

	dates := make([]string, len(res.Summaries))
	out := make([]dto.SummaryResponse, len(res.Summaries))
	for i, sum := range res.Summaries {
		dates[i] = sum.Date
		out[i] = summaryToResponse(sum)
	}
	if res.Closed == 0 {
		log.Info().Msg("daily close: nothing to close")
	} else {
		log.Info().Int("orders", res.Closed).Strs("summaries", dates).Msg("daily close completed")
	}
	return &dto.CloseResponse{Closed: res.Closed, Summaries: out}, nil
}

// ── Archive ───────────────────────────────────────────────────────────────────

func (s *settlementService) ListSummaries(_ context.Context, q dto.SummaryListQuery) *dto.SummaryListResponse {
	f := query.SummaryFilter{From: q.From, To: q.To}
	items := query.FilterSummaries(s.store.Snapshot().Summaries, f)

	s.mu.Lock()
	s.pager.SetFilter(f)
	s.pager.SetLimit(q.Limit)
	if q.Page > 0 {
		s.pager.SetPage(q.Page)
	}
	page := query.Paginate(items, s.pager.Page(), s.pager.Limit())
	s.pager.SetPage(page.Page)
	s.mu.Unlock()

	data := make([]dto.SummaryListItem, len(page.Items))
	for i, sum := range page.Items {
		data[i] = summaryToListItem(sum)
	}
	return &dto.SummaryListResponse{
		Data:       data,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}
}

func (s *settlementService) GetSummary(_ context.Context, id string) (*dto.SummaryResponse, error) {
	sum, _, err := s.find(id)
	if err != nil {
		return nil, err
	}
	resp := summaryToResponse(sum)
	return &resp, nil
}

// WriteSummaryPDF renders the printable close report of one summary.
func (s *settlementService) WriteSummaryPDF(_ context.Context, id string, w io.Writer) error {
	sum, settings, err := s.find(id)
	if err != nil {
		return err
	}
	return infra.WriteSummaryPDF(w, sum, settings.StoreName, s.loc)
}

func (s *settlementService) find(id string) (model.DailySummary, model.Settings, error) {
	snap := s.store.Snapshot()
	for _, sum := range snap.Summaries {
		if sum.ID == id {
			return sum, snap.Settings, nil
		}
	}
	return model.DailySummary{}, model.Settings{}, ErrSummaryNotFound
}
