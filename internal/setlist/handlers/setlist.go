package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"setlist-api/internal/common/logging"
	"setlist-api/internal/setlist/models"
	"setlist-api/internal/setlist/repository"
	"setlist-api/internal/setlist/service"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
)

// RootMessage is the body of GET /.
const RootMessage = "Project One Setlist API running"

// DefaultRequestTimeout bounds each store round trip made by a handler.
const DefaultRequestTimeout = 5 * time.Second

// ============================================================
// Setlist Handler
// ============================================================

// StoreInfo describes how the store was configured, for GET /test.
type StoreInfo struct {
	URLSet  bool
	NameSet bool
}

type SetlistHandler struct {
	svc     service.Service
	diag    repository.Diagnostics
	info    StoreInfo
	timeout time.Duration
	logger  *log.Logger
}

func NewSetlistHandler(svc service.Service, diag repository.Diagnostics, info StoreInfo, timeout time.Duration, logger *log.Logger) *SetlistHandler {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &SetlistHandler{
		svc:     svc,
		diag:    diag,
		info:    info,
		timeout: timeout,
		logger:  logger,
	}
}

type toggleRequest struct {
	Token *string `json:"token"`
}

type sessionResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

// Register mounts the setlist routes on router.
func (h *SetlistHandler) Register(router fiber.Router) {
	router.Get("/", h.Root)
	router.Get("/api/songs", h.ListSongs)
	router.Post("/api/songs/toggle/:title", h.ToggleSong)
	router.Post("/api/session/create", h.CreateSession)
	router.Get("/test", h.TestDatabase)
}

func (h *SetlistHandler) Root(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": RootMessage})
}

// ListSongs returns the full catalog in store order.
func (h *SetlistHandler) ListSongs(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	songs, err := h.svc.ListSongs(ctx)
	if err != nil {
		return h.writeError(c, err)
	}
	if songs == nil {
		songs = []models.Song{}
	}
	return c.JSON(songs)
}

// ToggleSong flips the performed flag of the song named in the path. The
// body is optional; without a token the request is rejected as
// unauthenticated.
func (h *SetlistHandler) ToggleSong(c fiber.Ctx) error {
	var req toggleRequest
	if body := c.Body(); len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
		}
	}

	input := &service.ToggleInput{Title: pathTitle(c.Params("title"))}
	if req.Token != nil {
		input.Token = *req.Token
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	out, err := h.svc.Toggle(ctx, input)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(out)
}

// CreateSession issues a token for ?role= (host when omitted).
func (h *SetlistHandler) CreateSession(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	out, err := h.svc.CreateSession(ctx, &service.CreateSessionInput{Role: c.Query("role")})
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(sessionResponse{
		Token: out.Session.Token,
		URL:   out.URL,
	})
}

// pathTitle undoes percent-encoding in a title path segment. Titles that do
// not decode are looked up as given.
func pathTitle(raw string) string {
	title, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return title
}

// ============================================================
// Error Mapping
// ============================================================

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidRole):
		return http.StatusBadRequest
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *SetlistHandler) writeError(c fiber.Ctx, err error) error {
	status := statusFor(err)
	message := err.Error()

	switch status {
	case http.StatusUnauthorized:
		// Wrong and inactive tokens must read the same.
		message = service.ErrUnauthenticated.Error()
	case http.StatusInternalServerError:
		h.logger.Error("request failed", "method", c.Method(), "path", c.Path(), "err", err)
		if errors.Is(err, repository.ErrDuplicateToken) {
			message = repository.ErrDuplicateToken.Error()
		} else {
			message = repository.ErrStoreUnavailable.Error()
		}
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}
