package observability

import (
	"errors"
	"testing"

	otellog "go.opentelemetry.io/otel/log"
	"go.uber.org/zap/zapcore"
)

func TestIsQuietRequestLog(t *testing.T) {
	cases := []struct {
		name string
		msg  string
		args []any
		want bool
	}{
		{name: "health check", msg: "http_request", args: []any{"http_path", "/healthz"}, want: true},
		{name: "openapi", msg: "http_request", args: []any{"http_method", "GET", "http_path", "/openapi.yaml"}, want: true},
		{name: "api request", msg: "http_request", args: []any{"http_path", "/v1/competitions/PL/standings"}, want: false},
		{name: "other event", msg: "upstream request failed", args: []any{"http_path", "/healthz"}, want: false},
		{name: "non string path", msg: "http_request", args: []any{"http_path", 42}, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := isQuietRequestLog(tc.msg, tc.args); got != tc.want {
				t.Fatalf("isQuietRequestLog=%v want %v", got, tc.want)
			}
		})
	}
}

func TestBuildOTelLogAttributes(t *testing.T) {
	attrs := buildOTelLogAttributes([]any{"competition", "PL", "attempt", 2, "payload"})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "competition" || attrs[0].Value.AsString() != "PL" {
		t.Fatalf("unexpected competition attribute")
	}
	if attrs[1].Key != "attempt" || attrs[1].Value.AsInt64() != 2 {
		t.Fatalf("unexpected attempt attribute")
	}
	if attrs[2].Key != "payload" || attrs[2].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected payload attribute")
	}
}

func TestToOTelLogValue(t *testing.T) {
	if v := toOTelLogValue(map[string]any{"goals": 11, "finished": true}, 0); v.Kind() != otellog.KindMap || len(v.AsMap()) != 2 {
		t.Fatalf("expected map value with 2 items, got %s", v.Kind())
	}
	if v := toOTelLogValue([]int64{57, 61}, 0); v.Kind() != otellog.KindSlice || len(v.AsSlice()) != 2 {
		t.Fatalf("expected slice value, got %s", v.Kind())
	}
	if v := toOTelLogValue(uint8(3), 0); v.AsInt64() != 3 {
		t.Fatalf("expected int64 value 3")
	}
	if v := toOTelLogValue(errors.New("boom"), 0); v.AsString() != "boom" {
		t.Fatalf("expected error string")
	}
	var missing *int
	if v := toOTelLogValue(missing, 0); v.Kind() != otellog.KindEmpty {
		t.Fatalf("expected empty value for nil pointer")
	}
}

func TestToOTelSeverity(t *testing.T) {
	if toOTelSeverity(zapcore.WarnLevel) != otellog.SeverityWarn {
		t.Fatalf("warn mapped incorrectly")
	}
	if toOTelSeverity(zapcore.ErrorLevel) != otellog.SeverityError {
		t.Fatalf("error mapped incorrectly")
	}
}
