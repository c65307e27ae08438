package observability

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/matchcentre/internal/config"
	"github.com/riskibarqy/matchcentre/internal/platform/logging"
)

// Runtime holds the process-wide telemetry started by Setup.
type Runtime struct {
	logger        *logging.Logger
	stopUptrace   func(context.Context) error
	stopPyroscope func() error
	pprof         *http.Server
}

// Setup starts tracing, log mirroring, profiling and the pprof server as
// configured. A partially started runtime is torn down on error.
func Setup(cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}

	rt := &Runtime{
		logger:        logger,
		stopUptrace:   noopShutdown,
		stopPyroscope: func() error { return nil },
	}

	stopUptrace, err := InitUptrace(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init uptrace: %w", err)
	}
	rt.stopUptrace = stopUptrace

	stopPyroscope, err := InitPyroscope(cfg, logger)
	if err != nil {
		_ = rt.Shutdown(context.Background())
		return nil, fmt.Errorf("init pyroscope: %w", err)
	}
	rt.stopPyroscope = stopPyroscope

	rt.pprof = StartPprofServer(cfg, logger)
	return rt, nil
}

// Shutdown stops every component in reverse start order and joins their
// errors.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r == nil {
		return nil
	}

	var errs []error
	if err := stopPprofServer(ctx, r.pprof); err != nil {
		errs = append(errs, fmt.Errorf("stop pprof: %w", err))
	}
	if err := r.stopPyroscope(); err != nil {
		errs = append(errs, fmt.Errorf("stop pyroscope: %w", err))
	}
	if err := r.stopUptrace(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown uptrace: %w", err))
	}

	r.logger.Info("observability stopped")
	return errors.Join(errs...)
}
