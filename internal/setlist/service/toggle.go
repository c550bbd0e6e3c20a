package service

import (
	"context"
	"errors"
	"fmt"

	"setlist-api/internal/setlist/repository"
)

// ============================================================
// Toggle
// ============================================================

// Toggle negates the stored performed flag. By default the read and the
// write are separate store calls, so concurrent toggles of one song are
// last-writer-wins. With OptimisticToggle the write is a compare-and-set
// retried on conflict.
func (s *service) Toggle(ctx context.Context, input *ToggleInput) (*ToggleOutput, error) {
	if input == nil {
		input = &ToggleInput{}
	}

	session, err := s.Authorize(ctx, input.Token)
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		song, err := s.songs.FindByTitle(ctx, input.Title)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("song %q: %w", input.Title, repository.ErrNotFound)
			}
			return nil, fmt.Errorf("toggle: %w", err)
		}

		next := !song.Performed

		if s.optimistic {
			err = s.songs.CompareAndSetPerformed(ctx, input.Title, song.Performed, next)
			if errors.Is(err, repository.ErrConflict) && attempt < s.maxRetries {
				s.logger.Debug("toggle conflict, retrying", "title", input.Title, "attempt", attempt+1)
				continue
			}
		} else {
			err = s.songs.SetPerformed(ctx, input.Title, next)
		}
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("song %q: %w", input.Title, repository.ErrNotFound)
			}
			return nil, fmt.Errorf("toggle: %w", err)
		}

		s.logger.Debug("song toggled", "title", input.Title, "performed", next, "role", session.Role)
		return &ToggleOutput{
			Title:     input.Title,
			Performed: next,
		}, nil
	}
}
