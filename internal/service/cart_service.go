package service

import (
	"context"

	"tablepos/internal/dto"
	"tablepos/internal/pricing"
	"tablepos/internal/state"
)

// CartService edits the in-progress order at the register.
type CartService interface {
	Get(ctx context.Context) dto.CartResponse
	AddItem(ctx context.Context, itemID string) (dto.CartResponse, error)
	SetQuantity(ctx context.Context, itemID string, quantity int) (dto.CartResponse, error)
	Clear(ctx context.Context) (dto.CartResponse, error)
}

type cartService struct {
	store *state.Store
}

func NewCartService(store *state.Store) CartService {
	return &cartService{store: store}
}

func (s *cartService) Get(_ context.Context) dto.CartResponse {
	return cartToResponse(s.store.Snapshot().Cart)
}

func (s *cartService) AddItem(ctx context.Context, itemID string) (dto.CartResponse, error) {
	var resp dto.CartResponse
	err := s.store.Mutate(ctx, func(st *state.Snapshot) error {
		i := menuIndex(st.Menu, itemID)
		if i < 0 {
			return ErrMenuItemNotFound
		}
		if !st.Menu[i].IsAvailable {
			return ErrItemUnavailable
		}
		st.Cart = pricing.MergeCartLine(st.Cart, st.Menu[i])
		resp = cartToResponse(st.Cart)
		return nil
	})
	return resp, err
}

func (s *cartService) SetQuantity(ctx context.Context, itemID string, quantity int) (dto.CartResponse, error) {
	if quantity < 0 {
		return dto.CartResponse{}, ErrInvalidQuantity
	}
	var resp dto.CartResponse
	err := s.store.Mutate(ctx, func(st *state.Snapshot) error {
		cart, ok := pricing.SetLineQuantity(st.Cart, itemID, quantity)
		if !ok {
			return ErrCartLineNotFound
		}
		st.Cart = cart
		resp = cartToResponse(cart)
		return nil
	})
	return resp, err
}

func (s *cartService) Clear(ctx context.Context) (dto.CartResponse, error) {
	err := s.store.Mutate(ctx, func(st *state.Snapshot) error {
		st.Cart = nil
		return nil
	})
	if err != nil {
		return dto.CartResponse{}, err
	}
	return cartToResponse(nil), nil
}
