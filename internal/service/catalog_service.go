package service

import (
	"context"
	"sort"
	"strings"

	"tablepos/internal/dto"
	"tablepos/internal/model"
	"tablepos/internal/state"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CatalogService manages the menu and the discount rules. Existing orders
// hold their own item snapshots, so edits here never rewrite history.
type CatalogService interface {
	ListMenu(ctx context.Context, filter dto.MenuFilter) []dto.MenuItemResponse
	Categories(ctx context.Context) []string
	CreateMenuItem(ctx context.Context, req dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error)
	UpdateMenuItem(ctx context.Context, id string, req dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error)
	DeleteMenuItem(ctx context.Context, id string) error
	SetAvailability(ctx context.Context, id string, available bool) (*dto.MenuItemResponse, error)

	ListDiscounts(ctx context.Context) []dto.DiscountRuleResponse
	CreateDiscount(ctx context.Context, req dto.CreateDiscountRuleRequest) (*dto.DiscountRuleResponse, error)
	UpdateDiscount(ctx context.Context, id string, req dto.UpdateDiscountRuleRequest) (*dto.DiscountRuleResponse, error)
	DeleteDiscount(ctx context.Context, id string) error
}

type catalogService struct {
	store *state.Store
}

func NewCatalogService(store *state.Store) CatalogService {
	return &catalogService{store: store}
}

// ── Menu ──────────────────────────────────────────────────────────────────────

func (s *catalogService) ListMenu(_ context.Context, filter dto.MenuFilter) []dto.MenuItemResponse {
	snap := s.store.Snapshot()
	q := strings.ToLower(strings.TrimSpace(filter.Search))
	out := make([]dto.MenuItemResponse, 0, len(snap.Menu))
	for _, m := range snap.Menu {
		if filter.Category != "" && m.Category != filter.Category {
			continue
		}
		if filter.AvailableOnly && !m.IsAvailable {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(m.Name), q) {
			continue
		}
		out = append(out, menuItemToResponse(m))
	}
	return out
}

// Categories lists distinct categories in first-seen menu order.
func (s *catalogService) Categories(_ context.Context) []string {
	snap := s.store.Snapshot()
	seen := make(map[string]bool)
	var out []string
	for _, m := range snap.Menu {
		if !seen[m.Category] {
			seen[m.Category] = true
			out = append(out, m.Category)
		}
	}
	return out
}

func (s *catalogService) CreateMenuItem(ctx context.Context, req dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error) {
	item := model.MenuItem{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price,
		Category:    strings.TrimSpace(req.Category),
		IsAvailable: req.IsAvailable == nil || *req.IsAvailable,
	}
	if err := validateMenuItem(item); err != nil {
		return nil, err
	}
	err := s.store.Mutate(ctx, func(st *state.Snapshot) error {
		st.Menu = append(st.Menu, item)
		return nil
	}, state.BundleMenu)
	if err != nil {
		return nil, err
	}
	log.Info().Str("item_id", item.ID).Str("name", item.Name).Msg("menu item created")
	resp := menuItemToResponse(item)
	return &resp, nil
}

func (s *catalogService) UpdateMenuItem(ctx context.Context, id string, req dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error) {
	var updated model.MenuItem
	err := s.store.Mutate(ctx, func(st *state.Snapshot) error {
		i := menuIndex(st.Menu, id)
		if i < 0 {
			return ErrMenuItemNotFound
		}
		item := st.Menu[i]
		if req.Name != nil {
			item.Name = strings.TrimSpace(*req.Name)
		}
		if req.Price != nil {
			item.Price = *req.Price
		}
		if req.Category != nil {
			item.Category = strings.TrimSpace(*req.Category)
		}
		if req.IsAvailable != nil {
			item.IsAvailable = *req.IsAvailable
		}
		if err := validateMenuItem(item); err != nil {
			return err
		}
		st.Menu[i] = item
		updated = item
		return nil
	}, state.BundleMenu)
	if err != nil {
		return nil, err
	}
	log.Info().Str("item_id", id).Msg("menu item updated")
	resp := menuItemToResponse(updated)
	return &resp, nil
}

func (s *catalogService) DeleteMenuItem(ctx context.Context, id string) error {
	err := s.store.Mutate(ctx, func(st *state.Snapshot) error {
		i := menuIndex(st.Menu, id)
		if i < 0 {
			return ErrMenuItemNotFound
		}
		st.Menu = append(st.Menu[:i], st.Menu[i+1:]...)
		return nil
	}, state.BundleMenu)
	if err != nil {
		return err
	}
	log.Info().Str("item_id", id).Msg("menu item deleted")
	return nil
}

// SetAvailability hides or shows an item for ordering. Lines already in the
// cart are left alone; only new adds are refused.
func (s *catalogService) SetAvailability(ctx context.Context, id string, available bool) (*dto.MenuItemResponse, error) {
	return s.UpdateMenuItem(ctx, id, dto.UpdateMenuItemRequest{IsAvailable: &available})
}

func menuIndex(menu []model.MenuItem, id string) int {
	for i := range menu {
		if menu[i].ID == id {
			return i
		}
	}
	return -1
}

func validateMenuItem(m model.MenuItem) error {
	if m.Name == "" || m.Category == "" {
		return ErrBlankField
	}
	if m.Price.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

// ── Discount rules ────────────────────────────────────────────────────────────

func (s *catalogService) ListDiscounts(_ context.Context) []dto.DiscountRuleResponse {
	snap := s.store.Snapshot()
	out := make([]dto.DiscountRuleResponse, len(snap.Discounts))
	for i, r := range snap.Discounts {
		out[i] = discountToResponse(r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (s *catalogService) CreateDiscount(ctx context.Context, req dto.CreateDiscountRuleRequest) (*dto.DiscountRuleResponse, error) {
	rule := model.DiscountRule{
		ID:    uuid.NewString(),
		Name:  strings.TrimSpace(req.Name),
		Type:  model.DiscountType(req.Type),
		Value: req.Value,
	}
	if err := validateDiscount(rule.Name, rule.Type, rule.Value); err != nil {
		return nil, err
	}
	err := s.store.Mutate(ctx, func(st *state.Snapshot) error {
		st.Discounts = append(st.Discounts, rule)
		return nil
	}, state.BundleDiscounts)
	if err != nil {
		return nil, err
	}
	log.Info().Str("rule_id", rule.ID).Str("type", string(rule.Type)).Msg("discount rule created")
	resp := discountToResponse(rule)
	return &resp, nil
}

func (s *catalogService) UpdateDiscount(ctx context.Context, id string, req dto.UpdateDiscountRuleRequest) (*dto.DiscountRuleResponse, error) {
	var updated model.DiscountRule
	err := s.store.Mutate(ctx, func(st *state.Snapshot) error {
		i := discountIndex(st.Discounts, id)
		if i < 0 {
			return ErrDiscountNotFound
		}
		rule := st.Discounts[i]
		if req.Name != nil {
			rule.Name = strings.TrimSpace(*req.Name)
		}
		if req.Type != nil {
			rule.Type = model.DiscountType(*req.Type)
		}
		if req.Value != nil {
			rule.Value = *req.Value
		}
		if err := validateDiscount(rule.Name, rule.Type, rule.Value); err != nil {
			return err
		}
		st.Discounts[i] = rule
		updated = rule
		return nil
	}, state.BundleDiscounts)
	if err != nil {
		return nil, err
	}
	log.Info().Str("rule_id", id).Msg("discount rule updated")
	resp := discountToResponse(updated)
	return &resp, nil
}

func (s *catalogService) DeleteDiscount(ctx context.Context, id string) error {
	err := s.store.Mutate(ctx, func(st *state.Snapshot) error {
		i := discountIndex(st.Discounts, id)
		if i < 0 {
			return ErrDiscountNotFound
		}
		st.Discounts = append(st.Discounts[:i], st.Discounts[i+1:]...)
		return nil
	}, state.BundleDiscounts)
	if err != nil {
		return err
	}
	log.Info().Str("rule_id", id).Msg("discount rule deleted")
	return nil
}

func discountIndex(rules []model.DiscountRule, id string) int {
	for i := range rules {
		if rules[i].ID == id {
			return i
		}
	}
	return -1
}

var hundred = decimal.NewFromInt(100)

// validateDiscount: percentage values are the share to pay, 0 < v <= 100
// (above 1 read as whole percent); amounts are non-negative.
func validateDiscount(name string, kind model.DiscountType, value decimal.Decimal) error {
	if name == "" {
		return ErrBlankField
	}
	switch kind {
	case model.DiscountPercentage:
		if !value.IsPositive() || value.GreaterThan(hundred) {
			return ErrInvalidDiscountValue
		}
	case model.DiscountAmount:
		if value.IsNegative() {
			return ErrInvalidDiscountValue
		}
	default:
		return ErrInvalidDiscountType
	}
	return nil
}
