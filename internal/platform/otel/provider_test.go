package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/weathertask/internal/platform/otel"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("WEATHERTASK_OTEL_ENDPOINT", "")
	t.Setenv("WEATHERTASK_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_NoopWhenExplicitlyDisabled(t *testing.T) {
	t.Setenv("WEATHERTASK_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("WEATHERTASK_OTEL_ENABLED", "false")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_CreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address so no export happens.
	t.Setenv("WEATHERTASK_OTEL_ENDPOINT", "http://192.0.2.1:4318")
	t.Setenv("WEATHERTASK_OTEL_ENABLED", "")
	t.Setenv("WEATHERTASK_OTEL_SAMPLE_RATIO", "0.5")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_RejectsInvalidSampleRatio(t *testing.T) {
	t.Setenv("WEATHERTASK_OTEL_SAMPLE_RATIO", "lots")

	if _, err := otel.Setup(context.Background(), "test-service"); err == nil {
		t.Fatal("expected invalid sample ratio to fail")
	}
}

func TestConfigActive(t *testing.T) {
	tests := []struct {
		name string
		cfg  otel.Config
		want bool
	}{
		{name: "empty endpoint", cfg: otel.Config{}, want: false},
		{name: "endpoint set", cfg: otel.Config{Endpoint: "http://collector:4318"}, want: true},
		{name: "disabled", cfg: otel.Config{Endpoint: "http://collector:4318", Enabled: "FALSE"}, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.Active(); got != tc.want {
				t.Fatalf("Active() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTracerReturnsUsableTracer(t *testing.T) {
	_, span := otel.Tracer("weathertask/test").Start(context.Background(), "op")
	span.End()
}
