package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/riskibarqy/match-predictor/internal/config"
	"github.com/riskibarqy/match-predictor/internal/platform/logging"
)

func TestStartPprof_DisabledIsNoop(t *testing.T) {
	shutdown, err := StartPprof(config.Config{PprofEnabled: false, PprofAddr: ":6060"}, logging.NewNop())
	if err != nil {
		t.Fatalf("start pprof: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown pprof: %v", err)
	}
}

func TestStartPprof_ServesAndStops(t *testing.T) {
	shutdown, err := StartPprof(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	if err != nil {
		t.Fatalf("start pprof: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown pprof: %v", err)
	}
}

func TestPprofMux_ServesIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	newPprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}
