package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/matchcentre/internal/usecase"
)

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitions")
	defer span.End()

	items, err := h.competitionService.ListCompetitions(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list competitions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	code := strings.TrimSpace(r.PathValue("code"))
	tables, err := h.competitionService.GetStandings(ctx, code)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "competition", code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, tables)
}

func (h *Handler) ListCompetitionTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitionTeams")
	defer span.End()

	code := strings.TrimSpace(r.PathValue("code"))
	teams, err := h.competitionService.ListTeams(ctx, code)
	if err != nil {
		h.logger.WarnContext(ctx, "list competition teams failed", "competition", code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teams)
}

func (h *Handler) ListLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeaderboard")
	defer span.End()

	code := strings.TrimSpace(r.PathValue("code"))
	query := r.URL.Query()

	minValue, err := queryOptionalInt(query, "min")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	inclusive, err := queryBool(query, "inclusive")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	limit, err := queryInt(query, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req := leaderboardRequest{
		Field: queryString(query, "field"),
		Min:   minValue,
		Limit: limit,
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.competitionService.Leaderboard(ctx, usecase.LeaderboardInput{
		CompetitionCode: code,
		Field:           req.Field,
		Min:             req.Min,
		Inclusive:       inclusive,
		Limit:           req.Limit,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list leaderboard failed", "competition", code, "field", req.Field, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entries)
}

func (h *Handler) ListCleanSheets(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCleanSheets")
	defer span.End()

	code := strings.TrimSpace(r.PathValue("code"))
	entries, err := h.competitionService.CleanSheets(ctx, code)
	if err != nil {
		h.logger.WarnContext(ctx, "list clean sheets failed", "competition", code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entries)
}

func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtures")
	defer span.End()

	code := strings.TrimSpace(r.PathValue("code"))
	query := r.URL.Query()

	matchday, err := queryInt(query, "matchday")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req := fixturesRequest{
		Status:   queryString(query, "status"),
		DateFrom: queryString(query, "dateFrom"),
		DateTo:   queryString(query, "dateTo"),
		Matchday: matchday,
		Order:    strings.ToLower(queryString(query, "order")),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	groups, err := h.fixtureService.ListFixtures(ctx, usecase.FixtureQuery{
		CompetitionCode: code,
		Status:          req.Status,
		DateFrom:        req.DateFrom,
		DateTo:          req.DateTo,
		Matchday:        req.Matchday,
		Order:           req.Order,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures failed", "competition", code, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, groups)
}
