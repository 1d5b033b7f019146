package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/stathub/internal/domain/leaderboard"
	"github.com/riskibarqy/stathub/internal/usecase"
)

func parseModeQuery(r *http.Request) (leaderboard.Mode, error) {
	mode, err := leaderboard.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return mode, nil
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	mode, err := parseModeQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.leaderboardService.Rank(ctx, mode, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "get leaderboard failed", "mode", mode, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := leaderboardDTO{Mode: string(mode), Entries: make([]leaderboardEntryDTO, 0, len(entries))}
	for _, entry := range entries {
		out.Entries = append(out.Entries, leaderboardEntryToDTO(entry))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetPlayerRank(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerRank")
	defer span.End()

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	mode, err := parseModeQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entry, err := h.leaderboardService.PlayerRank(ctx, mode, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player rank failed", "mode", mode, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, leaderboardEntryToDTO(entry))
}
