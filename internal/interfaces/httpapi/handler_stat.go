package httpapi

import (
	"net/http"

	"github.com/riskibarqy/stathub/internal/usecase"
)

type createStatRequest struct {
	MatchID  int64   `json:"match_id" validate:"required,gt=0"`
	PlayerID int64   `json:"player_id" validate:"required,gt=0"`
	Team     string  `json:"team" validate:"required,oneof=home away"`
	Goals    int     `json:"goals" validate:"gte=0"`
	Assists  int     `json:"assists" validate:"gte=0"`
	Rating   float64 `json:"rating" validate:"gte=0,lte=10"`
}

type updateStatRequest struct {
	Team    string  `json:"team" validate:"required,oneof=home away"`
	Goals   int     `json:"goals" validate:"gte=0"`
	Assists int     `json:"assists" validate:"gte=0"`
	Rating  float64 `json:"rating" validate:"gte=0,lte=10"`
}

func (h *Handler) CreateStat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateStat")
	defer span.End()

	var req createStatRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.statService.Record(ctx, usecase.RecordStatInput{
		MatchID:  req.MatchID,
		PlayerID: req.PlayerID,
		Team:     req.Team,
		Goals:    req.Goals,
		Assists:  req.Assists,
		Rating:   req.Rating,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record stat failed",
			"match_id", req.MatchID,
			"player_id", req.PlayerID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, statResultToDTO(result))
}

func (h *Handler) UpdateStat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateStat")
	defer span.End()

	statID, err := pathID(r, "statID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateStatRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.statService.Update(ctx, statID, usecase.UpdateStatInput{
		Team:    req.Team,
		Goals:   req.Goals,
		Assists: req.Assists,
		Rating:  req.Rating,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update stat failed", "stat_id", statID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, statResultToDTO(result))
}

func (h *Handler) DeleteStat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteStat")
	defer span.End()

	statID, err := pathID(r, "statID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.statService.Delete(ctx, statID)
	if err != nil {
		h.logger.WarnContext(ctx, "delete stat failed", "stat_id", statID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, statResultToDTO(result))
}

func (h *Handler) ListMatchStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchStats")
	defer span.End()

	matchID, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.statService.ListByMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match stats failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, statsToDTO(items))
}
