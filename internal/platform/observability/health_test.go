package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestServerHandler(t *testing.T) {
	logger := zerolog.Nop()

	app := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name     string
		ready    ReadinessCheck
		path     string
		wantCode int
	}{
		{name: "healthz", path: "/healthz", wantCode: http.StatusOK},
		{name: "readyz without check", path: "/readyz", wantCode: http.StatusOK},
		{
			name:     "readyz failing",
			ready:    func(context.Context) error { return errors.New("audio dir missing") },
			path:     "/readyz",
			wantCode: http.StatusServiceUnavailable,
		},
		{name: "metrics", path: "/metrics", wantCode: http.StatusOK},
		{name: "app fallthrough", path: "/api/classify-news/", wantCode: http.StatusTeapot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewServer(0, tt.ready, app, &logger)

			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestServerStartStopsOnCancel(t *testing.T) {
	logger := zerolog.Nop()
	srv := NewServer(0, nil, nil, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() { done <- srv.Start(ctx) }()

	cancel()

	assert.NoError(t, <-done)
}
