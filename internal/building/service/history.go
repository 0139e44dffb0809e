package service

import (
	"context"

	"buildinghealth_backend/internal/building/domain"
	"buildinghealth_backend/internal/building/transport"
	"buildinghealth_backend/platform/apperr"
)

// History lists recent lookups of a building, newest first.
func (s *Service) History(ctx context.Context, bbl domain.BBL, limit int) (transport.HistoryResponse, error) {
	if s.history == nil {
		return transport.HistoryResponse{}, apperr.Unavailable(msgHistoryUnavailable).WithOp("building.History")
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	lookups, err := s.history.ListByBBL(ctx, bbl.String(), limit)
	if err != nil {
		return transport.HistoryResponse{}, apperr.Wrap(apperr.KindInternal, "failed to load lookup history", err).WithOp("building.History")
	}
	out := transport.HistoryResponse{BBL: bbl.String(), Lookups: make([]transport.HistoryEntry, 0, len(lookups))}
	for _, l := range lookups {
		out.Lookups = append(out.Lookups, transport.HistoryEntry{
			ID:         l.ID.String(),
			BBL:        l.BBL,
			Address:    l.Address,
			Score:      l.Score,
			Grade:      l.Grade,
			Label:      l.Label,
			RedFlags:   l.RedFlags,
			LookedUpAt: l.LookedUpAt,
		})
	}
	return out, nil
}
