package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/achievements", handler.ListAchievements)
	mux.HandleFunc("GET /v1/levels", handler.ListLevels)

	mux.HandleFunc("POST /v1/stats", handler.CreateStat)
	mux.HandleFunc("PUT /v1/stats/{statID}", handler.UpdateStat)
	mux.HandleFunc("DELETE /v1/stats/{statID}", handler.DeleteStat)

	mux.HandleFunc("GET /v1/matches/{matchID}/stats", handler.ListMatchStats)
	mux.HandleFunc("GET /v1/matches/{matchID}/trophy", handler.GetMatchTrophy)
	mux.HandleFunc("POST /v1/matches/{matchID}/trophy/recompute", handler.RecomputeMatchTrophy)

	mux.HandleFunc("GET /v1/players/{playerID}/achievements", handler.ListPlayerAchievements)
	mux.HandleFunc("POST /v1/players/{playerID}/achievements/evaluate", handler.EvaluatePlayerAchievements)
	mux.HandleFunc("GET /v1/players/{playerID}/xp", handler.GetPlayerXP)
	mux.HandleFunc("POST /v1/players/{playerID}/xp/recompute", handler.RecomputePlayerXP)
	mux.HandleFunc("GET /v1/players/{playerID}/trophies", handler.ListPlayerTrophies)
	mux.HandleFunc("GET /v1/players/{playerID}/dashboard", handler.GetPlayerDashboard)

	mux.HandleFunc("GET /v1/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/leaderboard/players/{playerID}", handler.GetPlayerRank)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("POST /v1/admin/achievements", RequireAdminToken(adminToken, http.HandlerFunc(handler.UpsertAchievement)))
	mux.Handle("POST /v1/admin/achievements/seed", RequireAdminToken(adminToken, http.HandlerFunc(handler.SeedAchievements)))
	mux.Handle("POST /v1/admin/reconcile", RequireAdminToken(adminToken, http.HandlerFunc(handler.RunReconcile)))
}
