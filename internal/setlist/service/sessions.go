package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"setlist-api/internal/setlist/models"
)

// ============================================================
// Session Issuance
// ============================================================

// CreateSession mints a token and stores an active session for it. A token
// collision is returned as repository.ErrDuplicateToken, never retried.
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil {
		input = &CreateSessionInput{}
	}

	role, ok := models.ParseRole(input.Role, models.RoleHost)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, input.Role)
	}

	session := models.NewSession(s.tokens.Generate(), role, s.now())
	if err := s.sessions.Insert(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.logger.Info("session created", "role", session.Role)

	return &CreateSessionOutput{
		Session: &session,
		URL:     ShareURL(s.frontendURL, session.Token),
	}, nil
}

// ShareURL embeds token as a query parameter on base. Without a base the
// frontend root "/" is returned.
func ShareURL(base, token string) string {
	if base == "" {
		return "/"
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "token=" + url.QueryEscape(token)
}
