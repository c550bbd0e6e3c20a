package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"setlist-api/internal/common/config"
	"setlist-api/internal/common/logging"
	"setlist-api/internal/setlist/models"
	"setlist-api/internal/setlist/repository"
	"setlist-api/pkg/client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(store repository.Store) (*Runner, *bytes.Buffer) {
	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Store:  store,
		Logger: logging.Discard(),
		Output: output,
		LoadConfig: func() (*config.Config, error) {
			return nil, errors.New("config must not be loaded when a store is injected")
		},
	})
	return runner, output
}

func run(t *testing.T, r *Runner, args ...string) error {
	t.Helper()
	return newApp(r).Run(context.Background(), append([]string{"setlistctl"}, args...))
}

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/api/songs":
			w.Write([]byte(`[{"title":"Numbers","artist":"Project One","performed":true,"year":2008},{"title":"Life Beyond Earth","artist":"Project One","performed":false,"year":2008}]`)) //nolint:errcheck
		case strings.HasPrefix(r.URL.Path, "/api/songs/toggle/"):
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body) //nolint:errcheck
			if body["token"] != "tok" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"missing, invalid or inactive token"}`)) //nolint:errcheck
				return
			}
			json.NewEncoder(w).Encode(client.ToggleResult{ //nolint:errcheck
				Title:     strings.TrimPrefix(r.URL.Path, "/api/songs/toggle/"),
				Performed: true,
			})
		case r.URL.Path == "/api/session/create":
			json.NewEncoder(w).Encode(client.Session{Token: r.URL.Query().Get("role") + "-tok", URL: "/"}) //nolint:errcheck
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewRunnerDefaults(t *testing.T) {
	runner := NewRunner(RunnerOpts{})

	assert.NotNil(t, runner.logger)
	assert.NotNil(t, runner.output)
	assert.NotNil(t, runner.loadConfig)
	assert.Nil(t, runner.store)
}

func TestSongs(t *testing.T) {
	srv := fakeAPI(t)
	runner, output := newTestRunner(nil)

	require.NoError(t, run(t, runner, "--url", srv.URL, "songs"))

	assert.Contains(t, output.String(), " 1. [x] Numbers - Project One")
	assert.Contains(t, output.String(), " 2. [ ] Life Beyond Earth - Project One")
}

func TestSongsJSON(t *testing.T) {
	srv := fakeAPI(t)
	runner, output := newTestRunner(nil)

	require.NoError(t, run(t, runner, "--url", srv.URL, "songs", "--json"))

	var songs []models.Song
	require.NoError(t, json.Unmarshal(output.Bytes(), &songs))
	assert.Len(t, songs, 2)
}

func TestToggle(t *testing.T) {
	srv := fakeAPI(t)
	runner, output := newTestRunner(nil)

	require.NoError(t, run(t, runner, "--url", srv.URL, "toggle", "--token", "tok", "Numbers"))
	assert.Equal(t, "Numbers: performed=true\n", output.String())

	err := run(t, runner, "--url", srv.URL, "toggle", "--token", "bad", "Numbers")
	assert.True(t, client.IsStatus(err, http.StatusUnauthorized), "got %v", err)

	err = run(t, runner, "--url", srv.URL, "toggle")
	assert.ErrorIs(t, err, ErrMissingArgument)
}

func TestSessionCreate(t *testing.T) {
	srv := fakeAPI(t)
	runner, output := newTestRunner(nil)

	require.NoError(t, run(t, runner, "--url", srv.URL, "session", "create", "--role", "guest"))

	var session client.Session
	require.NoError(t, json.Unmarshal(output.Bytes(), &session))
	assert.Equal(t, "guest-tok", session.Token)
}

func TestAdminSeed(t *testing.T) {
	store := repository.NewMemory()
	runner, output := newTestRunner(store)

	require.NoError(t, run(t, runner, "admin", "seed"))
	assert.Equal(t, "inserted 7 songs\n", output.String())

	output.Reset()
	require.NoError(t, run(t, runner, "admin", "seed"))
	assert.Equal(t, "inserted 0 songs\n", output.String())
}

func TestAdminAddSong(t *testing.T) {
	store := repository.NewMemory()
	runner, _ := newTestRunner(store)

	require.NoError(t, run(t, runner, "admin", "add-song", "--year", "2011", "Encore"))

	song, err := store.FindByTitle(context.Background(), "Encore")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultArtist, song.Artist)
	require.NotNil(t, song.Year)
	assert.Equal(t, 2011, *song.Year)

	err = run(t, runner, "admin", "add-song", "Encore")
	assert.ErrorIs(t, err, repository.ErrDuplicateSong)
}

func TestAdminDeactivateAndActivate(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemory()
	require.NoError(t, store.Insert(ctx, models.NewSession("tok", models.RoleGuest, time.Now())))
	runner, _ := newTestRunner(store)

	require.NoError(t, run(t, runner, "admin", "deactivate", "tok"))
	_, err := store.FindActiveByToken(ctx, "tok")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, run(t, runner, "admin", "activate", "tok"))
	_, err = store.FindActiveByToken(ctx, "tok")
	assert.NoError(t, err)

	err = run(t, runner, "admin", "deactivate", "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAdminUsesConfiguredStore(t *testing.T) {
	runner := NewRunner(RunnerOpts{
		Logger: logging.Discard(),
		Output: &bytes.Buffer{},
		LoadConfig: func() (*config.Config, error) {
			cfg := config.Default()
			cfg.Store.Driver = repository.DriverMemory
			return cfg, nil
		},
	})

	assert.NoError(t, run(t, runner, "admin", "seed"))
}
