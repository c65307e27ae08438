package httpapi

import "net/http"

func (h *Handler) ListNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListNews")
	defer span.End()

	req := mediaSearchRequest{Query: queryString(r.URL.Query(), "q")}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	articles, err := h.mediaService.News(ctx, req.Query)
	if err != nil {
		h.logger.WarnContext(ctx, "list news failed", "query", req.Query, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, articles)
}

func (h *Handler) ListVideos(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListVideos")
	defer span.End()

	req := mediaSearchRequest{Query: queryString(r.URL.Query(), "team")}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	videos, err := h.mediaService.Videos(ctx, req.Query)
	if err != nil {
		h.logger.WarnContext(ctx, "list videos failed", "team", req.Query, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, videos)
}
