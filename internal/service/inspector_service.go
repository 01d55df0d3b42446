package service

import (
	"context"
	"encoding/json"

	"tablepos/internal/dto"
	"tablepos/internal/repository"
	"tablepos/internal/state"
)

// InspectorService exposes the persisted bundles verbatim, for support.
type InspectorService interface {
	Dump(ctx context.Context) (*dto.InspectorResponse, error)
}

type inspectorService struct {
	bundles repository.BundleStore
	store   *state.Store
	storage string
}

func NewInspectorService(bundles repository.BundleStore, store *state.Store, storage string) InspectorService {
	return &inspectorService{bundles: bundles, store: store, storage: storage}
}

func (s *inspectorService) Dump(ctx context.Context) (*dto.InspectorResponse, error) {
	out := &dto.InspectorResponse{
		SchemaVersion: s.store.SchemaVersion(),
		Storage:       s.storage,
		Bundles:       make(map[string]json.RawMessage, len(state.Bundles)),
	}
	for _, b := range state.Bundles {
		var raw json.RawMessage
		found, err := s.bundles.Load(ctx, string(b), &raw)
		if err != nil {
			return nil, err
		}
		if !found {
			raw = nil
		}
		out.Bundles[string(b)] = raw
	}
	return out, nil
}
