package service

import (
	"context"
	"strings"

	"tablepos/internal/dto"
	"tablepos/internal/model"
	"tablepos/internal/state"

	"github.com/rs/zerolog/log"
)

type SettingsService interface {
	Get(ctx context.Context) dto.SettingsResponse
	Update(ctx context.Context, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
}

type settingsService struct {
	store *state.Store
}

func NewSettingsService(store *state.Store) SettingsService {
	return &settingsService{store: store}
}

func (s *settingsService) Get(_ context.Context) dto.SettingsResponse {
	return settingsToResponse(s.store.Snapshot().Settings)
}

// Update applies a partial change. Switching to prePay leaves existing
// pending orders settleable.
func (s *settingsService) Update(ctx context.Context, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	var updated model.Settings
	err := s.store.Mutate(ctx, func(st *state.Snapshot) error {
		next := st.Settings
		if req.DineInMode != nil {
			next.DineInMode = model.DineInMode(*req.DineInMode)
			if !next.DineInMode.Valid() {
				return ErrInvalidDineInMode
			}
		}
		if req.StoreName != nil {
			next.StoreName = strings.TrimSpace(*req.StoreName)
			if next.StoreName == "" {
				return ErrBlankField
			}
		}
		if req.EnableCreditCard != nil {
			next.EnableCreditCard = *req.EnableCreditCard
		}
		if req.EnableMobilePayment != nil {
			next.EnableMobilePayment = *req.EnableMobilePayment
		}
		st.Settings = next
		updated = next
		return nil
	}, state.BundleSettings)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("dine_in_mode", string(updated.DineInMode)).
		Bool("credit", updated.EnableCreditCard).
		Bool("mobile", updated.EnableMobilePayment).
		Msg("settings updated")
	resp := settingsToResponse(updated)
	return &resp, nil
}
