package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"setlist-api/internal/setlist/models"
	"setlist-api/internal/setlist/service"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type requestKey struct{}

// recordingService keeps the context of the last call it served.
type recordingService struct {
	seen context.Context
}

func (r *recordingService) ListSongs(ctx context.Context) ([]models.Song, error) {
	r.seen = ctx
	return nil, ctx.Err()
}

func (r *recordingService) Authorize(ctx context.Context, token string) (*models.Session, error) {
	r.seen = ctx
	return nil, service.ErrUnauthenticated
}

func (r *recordingService) Toggle(ctx context.Context, input *service.ToggleInput) (*service.ToggleOutput, error) {
	r.seen = ctx
	return &service.ToggleOutput{Title: input.Title}, ctx.Err()
}

func (r *recordingService) CreateSession(ctx context.Context, input *service.CreateSessionInput) (*service.CreateSessionOutput, error) {
	r.seen = ctx
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	session := models.NewSession("tok", models.RoleHost, time.Now())
	return &service.CreateSessionOutput{Session: &session, URL: "/"}, nil
}

func (r *recordingService) EnsureSeeded(ctx context.Context, catalog []models.Song) (*service.SeedOutput, error) {
	r.seen = ctx
	return &service.SeedOutput{}, nil
}

// recordingStore answers diagnostics and records the context it was given.
type recordingStore struct {
	seen context.Context
}

func (r *recordingStore) Driver() string { return "recording" }

func (r *recordingStore) Ping(ctx context.Context) error {
	r.seen = ctx
	return ctx.Err()
}

func (r *recordingStore) Collections(ctx context.Context) ([]string, error) {
	r.seen = ctx
	return nil, ctx.Err()
}

func newContextApp(svc *recordingService, store *recordingStore, requestCtx func() context.Context) *fiber.App {
	app := fiber.New()
	app.Use(func(c fiber.Ctx) error {
		c.SetContext(requestCtx())
		return c.Next()
	})
	NewSetlistHandler(svc, store, StoreInfo{}, time.Second, nil).Register(app)
	NewHealthHandler(store, time.Second).Register(app)
	return app
}

func TestHandlersUseRequestContext(t *testing.T) {
	svc := &recordingService{}
	store := &recordingStore{}
	app := newContextApp(svc, store, func() context.Context {
		return context.WithValue(context.Background(), requestKey{}, "req-1")
	})

	tests := []struct {
		name   string
		method string
		target string
		body   string
		seen   func() context.Context
	}{
		{"list songs", http.MethodGet, "/api/songs", "", func() context.Context { return svc.seen }},
		{"toggle", http.MethodPost, "/api/songs/toggle/Numbers", `{"token":"tok"}`, func() context.Context { return svc.seen }},
		{"create session", http.MethodPost, "/api/session/create", "", func() context.Context { return svc.seen }},
		{"diagnostics", http.MethodGet, "/test", "", func() context.Context { return store.seen }},
		{"readiness", http.MethodGet, "/health/ready", "", func() context.Context { return store.seen }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc.seen, store.seen = nil, nil

			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			} else {
				req = httptest.NewRequest(tt.method, tt.target, nil)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			seen := tt.seen()
			require.NotNil(t, seen)
			assert.Equal(t, "req-1", seen.Value(requestKey{}))

			_, hasDeadline := seen.Deadline()
			assert.True(t, hasDeadline)
		})
	}
}

func TestCancelledRequestReachesStore(t *testing.T) {
	svc := &recordingService{}
	store := &recordingStore{}
	app := newContextApp(svc, store, func() context.Context {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/api/session/create", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.NotNil(t, svc.seen)
	assert.ErrorIs(t, svc.seen.Err(), context.Canceled)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
