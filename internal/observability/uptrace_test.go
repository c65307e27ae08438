package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/matchcentre/internal/config"
	"github.com/riskibarqy/matchcentre/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "matchcentre-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestInitUptrace_EnabledWithoutDSNIsNoop(t *testing.T) {
	cfg := config.Config{UptraceEnabled: true, UptraceDSN: "  "}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestSetup_AllDisabled(t *testing.T) {
	rt, err := Setup(config.Config{ServiceName: "matchcentre-api", AppEnv: config.EnvDev}, logging.NewNop())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if rt.pprof != nil {
		t.Fatalf("pprof server must not start when disabled")
	}
	if err := rt.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestRuntimeShutdown_NilReceiver(t *testing.T) {
	var rt *Runtime
	if err := rt.Shutdown(context.Background()); err != nil {
		t.Fatalf("nil runtime shutdown: %v", err)
	}
}

func TestProfileTags(t *testing.T) {
	tags := profileTags(config.Config{AppEnv: config.EnvStage, ServiceName: "matchcentre-api", ServiceVersion: "1.2.0"})
	if tags["env"] != config.EnvStage || tags["service"] != "matchcentre-api" || tags["version"] != "1.2.0" {
		t.Fatalf("unexpected tags: %v", tags)
	}
}
