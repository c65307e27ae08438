package httpapi

import (
	"net/http"

	"github.com/riskibarqy/matchcentre/internal/platform/id"
	"github.com/riskibarqy/matchcentre/internal/platform/logging"
)

type RouterOptions struct {
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	InternalJobToken   string
	RequestIDs         id.Generator
}

func NewRouter(handler *Handler, logger *logging.Logger, opts RouterOptions) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	requestIDs := opts.RequestIDs
	if requestIDs == nil {
		requestIDs = id.NewUUIDGenerator()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, opts.SwaggerEnabled)
	registerCompetitionRoutes(mux, handler)
	registerTeamAndMatchRoutes(mux, handler)
	registerMediaRoutes(mux, handler)
	registerSessionRoutes(mux, handler)
	registerInternalJobRoutes(mux, handler, opts.InternalJobToken)

	return RequestTracing(
		RequestID(requestIDs,
			RequestLogging(logger,
				CORS(opts.CORSAllowedOrigins,
					recoverPanic(logger, mux)))))
}
