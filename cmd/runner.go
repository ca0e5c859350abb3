package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/replay/internal/musickit"
	"github.com/desertthunder/replay/internal/services"
	"github.com/desertthunder/replay/internal/session"
	"github.com/desertthunder/replay/internal/shared"
	"github.com/desertthunder/replay/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	session    *session.Session
	adapter    musickit.Adapter
	catalog    services.Catalog
	engine     *tasks.ReplayEngine
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Session    *session.Session
	Adapter    musickit.Adapter
	Catalog    services.Catalog
	Engine     *tasks.ReplayEngine
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner, constructing the default session, adapter,
// catalog client and engine for any dependency not provided.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Session == nil {
		opts.Session = session.New()
	}
	if opts.Adapter == nil {
		opts.Adapter = musickit.NewBridgeAdapter(opts.Config.Credentials.MusicKit.BridgeURL, opts.HTTPClient)
	}
	if opts.Catalog == nil {
		catalog := services.NewAppleMusicService(opts.Config.Credentials.Catalog.BaseURL, opts.Session, opts.HTTPClient)
		catalog.SetRateLimit(opts.Config.Replay.RateLimit)
		opts.Catalog = catalog
	}
	if opts.Engine == nil {
		authorizer := musickit.NewAuthorizer(musickit.AuthorizerOpts{
			Adapter:       opts.Adapter,
			Session:       opts.Session,
			RecoveryDelay: time.Duration(opts.Config.Auth.RecoveryDelayMS) * time.Millisecond,
			RecoveryPolls: opts.Config.Auth.RecoveryPolls,
		})
		opts.Engine = tasks.NewReplayEngine(tasks.ReplayEngineOpts{
			Session:    opts.Session,
			Authorizer: authorizer,
			Catalog:    opts.Catalog,
			App: musickit.AppMetadata{
				Name:  opts.Config.Credentials.MusicKit.AppName,
				Build: opts.Config.Credentials.MusicKit.AppBuild,
			},
			PageSize: opts.Config.Replay.PageSize,
			MaxItems: opts.Config.Replay.MaxItems,
		})
	}

	return &Runner{
		config:     opts.Config,
		session:    opts.Session,
		adapter:    opts.Adapter,
		catalog:    opts.Catalog,
		engine:     opts.Engine,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger swaps the runner's logger (used by the TUI to log to a file).
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, replayCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// developerToken resolves the developer token from flag, then config.
func (r *Runner) developerToken(cmd *cli.Command) string {
	if token := cmd.String("developer-token"); token != "" {
		return token
	}
	return r.config.Credentials.MusicKit.DeveloperToken
}

// ensureAuthorized brings the session to the authorized state.
//
// A --user-token flag (or REPLAY_MUSIC_USER_TOKEN) bypasses the SDK consent
// exchange; otherwise the full configure → authorize flow runs against the bridge.
func (r *Runner) ensureAuthorized(ctx context.Context, cmd *cli.Command) error {
	if r.session.Observe().Authorized {
		return nil
	}

	devToken := r.developerToken(cmd)
	if devToken == "" {
		return fmt.Errorf("%w: set developer_token in config.toml or pass --developer-token", shared.ErrMissingDevToken)
	}

	userToken := cmd.String("user-token")
	if userToken == "" {
		userToken = os.Getenv("REPLAY_MUSIC_USER_TOKEN")
	}
	if userToken != "" {
		r.logger.Info("using externally supplied music user token")
		return r.engine.AdoptCredentials(devToken, userToken)
	}

	if err := r.engine.ConfigureMusicKit(ctx, nil, devToken); err != nil {
		return err
	}

	result, err := r.engine.Authorize(ctx, nil)
	if err != nil {
		return err
	}

	if result.Recovered {
		r.logger.Warn("authorize reported an error but a token was present; recovered via token read")
	}

	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
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

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
