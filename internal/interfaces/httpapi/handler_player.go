package httpapi

import "net/http"

func (h *Handler) GetPlayerXP(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerXP")
	defer span.End()

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.progressionService.Get(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player xp failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, xpToDTO(snapshot.PlayerID, snapshot.Progress))
}

func (h *Handler) RecomputePlayerXP(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecomputePlayerXP")
	defer span.End()

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.progressionService.Recompute(ctx, playerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "recompute player xp failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, xpToDTO(snapshot.PlayerID, snapshot.Progress))
}

func (h *Handler) GetPlayerDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerDashboard")
	defer span.End()

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dashboard, err := h.dashboardService.Get(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player dashboard failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, dashboardToDTO(dashboard))
}
