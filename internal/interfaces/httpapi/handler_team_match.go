package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/matchcentre/internal/usecase"
)

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID, err := pathInt64(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	detail, err := h.teamService.GetTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, detail)
}

func (h *Handler) ListTeamMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamMatches")
	defer span.End()

	teamID, err := pathInt64(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	query := r.URL.Query()
	limit, err := queryInt(query, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req := teamMatchesRequest{
		Status:   queryString(query, "status"),
		DateFrom: queryString(query, "dateFrom"),
		DateTo:   queryString(query, "dateTo"),
		Limit:    limit,
		Order:    strings.ToLower(queryString(query, "order")),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.teamService.ListMatches(ctx, usecase.TeamMatchesQuery{
		TeamID:   teamID,
		Status:   req.Status,
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
		Limit:    req.Limit,
		Order:    req.Order,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list team matches failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matches)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID, err := pathInt64(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	detail, err := h.matchService.GetMatchDetail(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, detail)
}

func (h *Handler) GetHeadToHead(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHeadToHead")
	defer span.End()

	query := r.URL.Query()
	home, err := queryInt64(query, "home")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	away, err := queryInt64(query, "away")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req := headToHeadRequest{Home: home, Away: away}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.headToHeadService.Compare(ctx, req.Home, req.Away)
	if err != nil {
		h.logger.WarnContext(ctx, "head to head failed", "home_team_id", home, "away_team_id", away, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}
