package main

import (
	"context"
	"fmt"

	"setlist-api/internal/common/logging"
	"setlist-api/internal/setlist/models"
	"setlist-api/internal/setlist/service"

	"github.com/urfave/cli/v3"
)

// ============================================================
// HTTP Commands
// ============================================================

// Songs prints the setlist, one song per line with a check mark when
// performed.
func (r *Runner) Songs(ctx context.Context, cmd *cli.Command) error {
	songs, err := r.client(cmd).ListSongs(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, false)
	}

	for i, song := range songs {
		mark := " "
		if song.Performed {
			mark = "x"
		}
		if err := r.writePlain("%2d. [%s] %s - %s\n", i+1, mark, song.Title, song.Artist); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) Toggle(ctx context.Context, cmd *cli.Command) error {
	title := cmd.StringArg("title")
	if title == "" {
		return fmt.Errorf("%w: title", ErrMissingArgument)
	}

	result, err := r.client(cmd).Toggle(ctx, title, cmd.String("token"))
	if err != nil {
		return err
	}

	r.logger.Debug("toggled", "title", result.Title, "performed", result.Performed)
	return r.writePlain("%s: performed=%t\n", result.Title, result.Performed)
}

func (r *Runner) SessionCreate(ctx context.Context, cmd *cli.Command) error {
	session, err := r.client(cmd).CreateSession(ctx, cmd.String("role"))
	if err != nil {
		return err
	}
	return r.writeJSON(session, true)
}

func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	status, err := r.client(cmd).Status(ctx)
	if err != nil {
		return err
	}
	return r.writeJSON(status, true)
}

// ============================================================
// Admin Commands
// ============================================================

func (r *Runner) AdminSeed(ctx context.Context, cmd *cli.Command) error {
	store, release, err := r.openStore(ctx)
	if err != nil {
		return err
	}
	defer release()

	svc, err := service.New(&service.Config{
		Songs:    store,
		Sessions: store,
		Logger:   logging.Component(r.logger, "service"),
	})
	if err != nil {
		return err
	}

	out, err := svc.EnsureSeeded(ctx, service.DefaultCatalog())
	if err != nil {
		return err
	}
	return r.writePlain("inserted %d songs\n", out.Inserted)
}

func (r *Runner) AdminAddSong(ctx context.Context, cmd *cli.Command) error {
	title := cmd.StringArg("title")
	if title == "" {
		return fmt.Errorf("%w: title", ErrMissingArgument)
	}

	var year *int
	if y := int(cmd.Int("year")); y > 0 {
		year = models.YearPtr(y)
	}

	store, release, err := r.openStore(ctx)
	if err != nil {
		return err
	}
	defer release()

	if err := store.AddSong(ctx, models.NewSong(title, cmd.String("artist"), year)); err != nil {
		return err
	}
	r.logger.Info("song added", "title", title)
	return nil
}

func (r *Runner) AdminDeactivate(ctx context.Context, cmd *cli.Command) error {
	return r.setActive(ctx, cmd, false)
}

func (r *Runner) AdminActivate(ctx context.Context, cmd *cli.Command) error {
	return r.setActive(ctx, cmd, true)
}

func (r *Runner) setActive(ctx context.Context, cmd *cli.Command, active bool) error {
	token := cmd.StringArg("token")
	if token == "" {
		return fmt.Errorf("%w: token", ErrMissingArgument)
	}

	store, release, err := r.openStore(ctx)
	if err != nil {
		return err
	}
	defer release()

	if err := store.SetActive(ctx, token, active); err != nil {
		return err
	}
	r.logger.Info("session updated", "active", active)
	return nil
}
