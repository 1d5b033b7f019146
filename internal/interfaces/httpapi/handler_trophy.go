package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/stathub/internal/usecase"
)

type matchTrophyDTO struct {
	MatchID int64      `json:"match_id"`
	Trophy  *trophyDTO `json:"trophy"`
}

func (h *Handler) GetMatchTrophy(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchTrophy")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.trophyService.GetForMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match trophy failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if item == nil {
		writeError(ctx, w, fmt.Errorf("%w: no trophy awarded for match=%d", usecase.ErrNotFound, matchID))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, trophyToDTO(*item))
}

func (h *Handler) RecomputeMatchTrophy(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputeMatchTrophy")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.trophyService.RecomputeForMatch(ctx, matchID)
	if err != nil {
		h.logger.ErrorContext(ctx, "recompute match trophy failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, matchTrophyDTO{MatchID: matchID, Trophy: trophyPtrToDTO(item)})
}

func (h *Handler) ListPlayerTrophies(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerTrophies")
	defer span.End()

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.trophyService.ListByPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "list player trophies failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]trophyDTO, 0, len(items))
	for _, item := range items {
		out = append(out, trophyToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
