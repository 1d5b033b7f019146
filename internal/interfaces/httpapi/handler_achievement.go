package httpapi

import (
	"net/http"

	"github.com/riskibarqy/stathub/internal/domain/progression"
	"github.com/riskibarqy/stathub/internal/usecase"
)

type upsertAchievementRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Code        string `json:"code" validate:"omitempty,max=100"`
	Description string `json:"description" validate:"max=500"`
	Tier        string `json:"tier" validate:"omitempty,oneof=Beginner Advanced Expert"`
	Metric      string `json:"metric" validate:"required"`
	TargetValue int    `json:"target_value"`
	Points      int    `json:"points" validate:"gte=0"`
	MinSample   int    `json:"requires_min_sample" validate:"gte=0"`
}

func (h *Handler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListAchievements")
	defer span.End()

	items, err := h.catalogService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list achievements failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]achievementDTO, 0, len(items))
	for _, item := range items {
		out = append(out, achievementToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) UpsertAchievement(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertAchievement")
	defer span.End()

	var req upsertAchievementRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	saved, created, err := h.catalogService.Upsert(ctx, usecase.UpsertAchievementInput{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Tier:        req.Tier,
		Metric:      req.Metric,
		TargetValue: req.TargetValue,
		Points:      req.Points,
		MinSample:   req.MinSample,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "upsert achievement failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeSuccess(ctx, w, status, achievementToDTO(saved))
}

func (h *Handler) SeedAchievements(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SeedAchievements")
	defer span.End()

	backfill, err := queryBool(r, "backfill")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.catalogService.Seed(ctx, backfill)
	if err != nil {
		h.logger.ErrorContext(ctx, "seed achievements failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) ListPlayerAchievements(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerAchievements")
	defer span.End()

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.achievementService.ListForPlayer(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "list player achievements failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]playerAchievementDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerAchievementToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) EvaluatePlayerAchievements(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EvaluatePlayerAchievements")
	defer span.End()

	playerID, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	unlocked, err := h.achievementService.Evaluate(ctx, playerID, 0)
	if err != nil {
		h.logger.ErrorContext(ctx, "evaluate achievements failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"player_id":    playerID,
		"unlocked_any": unlocked,
	})
}

func (h *Handler) ListLevels(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLevels")
	defer span.End()

	levels := progression.Levels()
	out := make([]levelDTO, 0, len(levels))
	for _, level := range levels {
		out = append(out, levelToDTO(level))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) RunReconcile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunReconcile")
	defer span.End()

	result, err := h.reconcileService.Run(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "reconcile run failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, result)
}
