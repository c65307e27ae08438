package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"

	"github.com/riskibarqy/matchcentre/internal/platform/logging"
	"github.com/riskibarqy/matchcentre/internal/usecase"
)

// Services groups the usecases the handler serves.
type Services struct {
	Competitions *usecase.CompetitionService
	Fixtures     *usecase.FixtureService
	Teams        *usecase.TeamService
	Matches      *usecase.MatchService
	HeadToHead   *usecase.HeadToHeadService
	Media        *usecase.MediaService
	Sessions     *usecase.SessionService
	Warmup       *usecase.WarmupService
}

type Handler struct {
	competitionService *usecase.CompetitionService
	fixtureService     *usecase.FixtureService
	teamService        *usecase.TeamService
	matchService       *usecase.MatchService
	headToHeadService  *usecase.HeadToHeadService
	mediaService       *usecase.MediaService
	sessionService     *usecase.SessionService
	warmupService      *usecase.WarmupService
	logger             *logging.Logger
	validator          *validator.Validate
	upgrader           websocket.Upgrader
}

func NewHandler(services Services, logger *logging.Logger, allowedOrigins []string) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		competitionService: services.Competitions,
		fixtureService:     services.Fixtures,
		teamService:        services.Teams,
		matchService:       services.Matches,
		headToHeadService:  services.HeadToHead,
		mediaService:       services.Media,
		sessionService:     services.Sessions,
		warmupService:      services.Warmup,
		logger:             logger,
		validator:          validator.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// originChecker allows websocket upgrades from native clients (no Origin)
// and from the configured CORS origins.
func originChecker(allowedOrigins []string) func(*http.Request) bool {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "*" {
			allowAll = true
		}
		if origin != "" {
			allowed[origin] = struct{}{}
		}
	}

	return func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" || allowAll {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}
