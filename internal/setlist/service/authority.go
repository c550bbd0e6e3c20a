package service

import (
	"context"
	"errors"
	"fmt"

	"setlist-api/internal/setlist/models"
	"setlist-api/internal/setlist/repository"
)

// ============================================================
// Session Authority
// ============================================================

// Authorize is the single place gated operations check credentials. Unknown
// and inactive tokens are reported identically. Roles are not consulted:
// host and guest sessions are authorized for the same operations.
func (s *service) Authorize(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	session, err := s.sessions.FindActiveByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("authorize: %w", err)
	}
	return session, nil
}
