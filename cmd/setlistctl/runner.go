package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"setlist-api/internal/common/config"
	"setlist-api/internal/common/logging"
	"setlist-api/internal/setlist/bootstrap"
	"setlist-api/internal/setlist/repository"
	"setlist-api/pkg/client"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// CLIError is the error kind for bad command usage.
type CLIError string

func (e CLIError) Error() string {
	return string(e)
}

const ErrMissingArgument CLIError = "missing argument"

// Runner holds the dependencies of every command action.
type Runner struct {
	httpClient *http.Client
	store      repository.Store
	loadConfig func() (*config.Config, error)
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts configures a Runner. A nil Store makes admin commands open the
// store described by the server configuration.
type RunnerOpts struct {
	HTTPClient *http.Client
	Store      repository.Store
	LoadConfig func() (*config.Config, error)
	Logger     *log.Logger
	Output     io.Writer
}

func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = logging.New(nil, "info")
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LoadConfig == nil {
		opts.LoadConfig = config.Load
	}

	return &Runner{
		httpClient: opts.HTTPClient,
		store:      opts.Store,
		loadConfig: opts.LoadConfig,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		songsCommand, toggleCommand, sessionCommand, statusCommand, adminCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) client(cmd *cli.Command) *client.Client {
	return client.New(cmd.String("url"), r.httpClient)
}

// openStore returns the injected store, or opens the configured one. The
// returned func releases whatever was opened here.
func (r *Runner) openStore(ctx context.Context) (repository.Store, func(), error) {
	if r.store != nil {
		return r.store, func() {}, nil
	}

	cfg, err := r.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	store, err := repository.Open(ctx, bootstrap.StoreOptions(cfg))
	if err != nil {
		return nil, nil, err
	}
	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, nil, err
	}
	return store, func() { store.Close() }, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
