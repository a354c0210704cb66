// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func healthy() Checker { return pingFunc(func(context.Context) error { return nil }) }

func TestReadiness(t *testing.T) {
	tests := []struct {
		name       string
		deps       []Dependency
		wantStatus string
		wantCode   int
	}{
		{
			name:       "all healthy",
			deps:       []Dependency{{Name: "database", Checker: healthy()}, {Name: "redis", Checker: healthy()}},
			wantStatus: StatusOK,
			wantCode:   http.StatusOK,
		},
		{
			name: "redis down",
			deps: []Dependency{
				{Name: "database", Checker: healthy()},
				{Name: "redis", Checker: pingFunc(func(context.Context) error { return errors.New("refused") })},
			},
			wantStatus: StatusDegraded,
			wantCode:   http.StatusServiceUnavailable,
		},
		{
			name:       "unconfigured checker",
			deps:       []Dependency{{Name: "database"}},
			wantStatus: StatusDegraded,
			wantCode:   http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler("1.0.0", tt.deps...)

			rr := httptest.NewRecorder()
			h.Readiness(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
			assert.Equal(t, tt.wantCode, rr.Code)

			var body ReadinessResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Status)
			require.Len(t, body.Checks, len(tt.deps))
			for i, dep := range tt.deps {
				assert.Equal(t, dep.Name, body.Checks[i].Name)
			}
		})
	}
}

func TestDrainSequence(t *testing.T) {
	h := NewHandler("1.0.0", Dependency{Name: "database", Checker: healthy()})

	h.SetReady(false)
	rr := httptest.NewRecorder()
	h.Readiness(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	rr = httptest.NewRecorder()
	h.Liveness(rr, httptest.NewRequest(http.MethodGet, "/livez", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	h.SetShutdown(true)
	rr = httptest.NewRecorder()
	h.Liveness(rr, httptest.NewRequest(http.MethodGet, "/livez", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), StatusShuttingDown)
}
