package handlers

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// maxCollections caps the names reported by GET /test.
const maxCollections = 10

// Diagnostic status strings reported by GET /test.
const (
	backendRunning     = "Running"
	databaseMissing    = "Not Available"
	databaseAvailable  = "Available"
	databaseWorking    = "Connected & Working"
	connectedStatus    = "Connected"
	notConnectedStatus = "Not Connected"
	settingSet         = "Set"
	settingNotSet      = "Not Set"
)

// maxErrorDetail truncates backend errors echoed by GET /test.
const maxErrorDetail = 50

// diagnosticsResponse is the body of GET /test.
type diagnosticsResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      *string  `json:"database_url"`
	DatabaseName     *string  `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
	Driver           string   `json:"driver,omitempty"`
}

// TestDatabase reports store reachability. It always answers 200; failures
// are described in the body.
func (h *SetlistHandler) TestDatabase(c fiber.Ctx) error {
	resp := diagnosticsResponse{
		Backend:          backendRunning,
		Database:         databaseMissing,
		ConnectionStatus: notConnectedStatus,
		Collections:      []string{},
	}
	if h.diag == nil {
		return c.JSON(resp)
	}

	resp.Driver = h.diag.Driver()
	resp.DatabaseURL = setting(h.info.URLSet)
	resp.DatabaseName = setting(h.info.NameSet)

	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	if err := h.diag.Ping(ctx); err != nil {
		resp.Database = "Error: " + truncate(err.Error(), maxErrorDetail)
		return c.JSON(resp)
	}
	resp.Database = databaseAvailable
	resp.ConnectionStatus = connectedStatus

	names, err := h.diag.Collections(ctx)
	if err != nil {
		resp.Database = "Connected but Error: " + truncate(err.Error(), maxErrorDetail)
		return c.JSON(resp)
	}
	if len(names) > maxCollections {
		names = names[:maxCollections]
	}
	resp.Collections = append(resp.Collections, names...)
	resp.Database = databaseWorking
	return c.JSON(resp)
}

func setting(set bool) *string {
	v := settingNotSet
	if set {
		v = settingSet
	}
	return &v
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
