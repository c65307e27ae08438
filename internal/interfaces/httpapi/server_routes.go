package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerCompetitionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/competitions", handler.ListCompetitions)
	mux.HandleFunc("GET /v1/competitions/{code}/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/competitions/{code}/teams", handler.ListCompetitionTeams)
	mux.HandleFunc("GET /v1/competitions/{code}/scorers", handler.ListLeaderboard)
	mux.HandleFunc("GET /v1/competitions/{code}/clean-sheets", handler.ListCleanSheets)
	mux.HandleFunc("GET /v1/competitions/{code}/fixtures", handler.ListFixtures)
}

func registerTeamAndMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}/matches", handler.ListTeamMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/head-to-head", handler.GetHeadToHead)
}

func registerMediaRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/news", handler.ListNews)
	mux.HandleFunc("GET /v1/videos", handler.ListVideos)
}

func registerSessionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/sessions", handler.CreateSession)
	mux.HandleFunc("GET /v1/sessions/{sessionID}", handler.GetSession)
	mux.HandleFunc("PUT /v1/sessions/{sessionID}", handler.UpdateSession)
	mux.HandleFunc("GET /v1/sessions/{sessionID}/stream", handler.StreamSession)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/warmup", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunWarmupJob)))
}
