package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/matchcentre/internal/usecase"
)

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSession")
	defer span.End()

	state, err := h.sessionService.Create(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "create session failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Location", "/v1/sessions/"+state.SessionID)
	writeSuccess(ctx, w, http.StatusCreated, state)
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSession")
	defer span.End()

	sessionID := strings.TrimSpace(r.PathValue("sessionID"))
	state, err := h.sessionService.Get(ctx, sessionID)
	if err != nil {
		h.logger.WarnContext(ctx, "get session failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, state)
}

func (h *Handler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSession")
	defer span.End()

	sessionID := strings.TrimSpace(r.PathValue("sessionID"))

	var req updateSessionRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	state, err := h.sessionService.Update(ctx, sessionID, usecase.SessionUpdate{
		FavoriteTeamID:      req.FavoriteTeamID,
		FavoriteCompetition: req.FavoriteCompetition,
		FollowedTeamIDs:     req.FollowedTeamIDs,
		Timezone:            req.Timezone,
		Locale:              req.Locale,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update session failed", "session_id", sessionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, state)
}

// StreamSession upgrades to a websocket that receives the current session
// state and then every change written through the API.
func (h *Handler) StreamSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StreamSession")
	defer span.End()

	sessionID := strings.TrimSpace(r.PathValue("sessionID"))
	if _, err := h.sessionService.Get(ctx, sessionID); err != nil {
		writeError(ctx, w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(ctx, "session stream upgrade failed", "session_id", sessionID, "error", err)
		return
	}

	stream := newSessionStream(conn, h.logger)
	initial, unsubscribe, err := h.sessionService.Subscribe(ctx, sessionID, stream.push)
	if err != nil {
		h.logger.WarnContext(ctx, "session stream subscribe failed", "session_id", sessionID, "error", err)
		stream.fail(err)
		return
	}
	defer unsubscribe()

	stream.push(initial)
	stream.run(ctx)
	h.logger.InfoContext(ctx, "session stream closed", "session_id", sessionID)
}
