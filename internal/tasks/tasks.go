package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/replay/internal/models"
	"github.com/desertthunder/replay/internal/musickit"
	"github.com/desertthunder/replay/internal/services"
	"github.com/desertthunder/replay/internal/session"
	"github.com/desertthunder/replay/internal/shared"
)

// Engine defines the operations exposed to the CLI and TUI layers.
type Engine interface {
	// ConfigureMusicKit loads and configures the SDK with the developer token.
	ConfigureMusicKit(ctx context.Context, progress chan<- ProgressUpdate, developerToken string) error

	// Authorize obtains a music user token, recovering via the side channel
	// when the SDK misreports a completed consent exchange.
	Authorize(ctx context.Context, progress chan<- ProgressUpdate) (musickit.AuthResult, error)

	// GetReplayData fetches and normalizes the replay summary and listening
	// history. Requires an authorized session.
	GetReplayData(ctx context.Context, progress chan<- ProgressUpdate) (*models.ReplaySummary, error)
}

// ReplayEngine implements [Engine] over the authorizer and catalog client.
type ReplayEngine struct {
	session  *session.Session
	auth     *musickit.Authorizer
	catalog  services.Catalog
	app      musickit.AppMetadata
	pageSize int
	maxItems int
}

// ReplayEngineOpts contains configuration options for creating a ReplayEngine.
type ReplayEngineOpts struct {
	Session    *session.Session
	Authorizer *musickit.Authorizer
	Catalog    services.Catalog
	App        musickit.AppMetadata
	PageSize   int
	MaxItems   int
}

// NewReplayEngine creates a ReplayEngine with the provided dependencies.
func NewReplayEngine(opts ReplayEngineOpts) *ReplayEngine {
	if opts.Session == nil {
		opts.Session = session.New()
	}

	return &ReplayEngine{
		session:  opts.Session,
		auth:     opts.Authorizer,
		catalog:  opts.Catalog,
		app:      opts.App,
		pageSize: opts.PageSize,
		maxItems: opts.MaxItems,
	}
}

// Snapshot exposes the current session state for status display.
func (e *ReplayEngine) Snapshot() session.Snapshot {
	return e.session.Observe()
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *ReplayEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// ConfigureMusicKit validates the developer token and configures the SDK.
//
// An empty token fails before the SDK is touched.
func (e *ReplayEngine) ConfigureMusicKit(ctx context.Context, progress chan<- ProgressUpdate, developerToken string) error {
	if e.auth == nil {
		return fmt.Errorf("%w: authorizer not initialized", shared.ErrServiceUnavailable)
	}
	if developerToken == "" {
		return fmt.Errorf("%w: developer token is empty", shared.ErrMissingDevToken)
	}

	e.sendProgress(progress, configureUpdate(1, 1))

	return e.auth.Configure(ctx, developerToken, e.app)
}

// Authorize runs the consent exchange against the configured SDK instance.
func (e *ReplayEngine) Authorize(ctx context.Context, progress chan<- ProgressUpdate) (musickit.AuthResult, error) {
	if e.auth == nil {
		return musickit.AuthResult{}, fmt.Errorf("%w: authorizer not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, authorizeUpdate(1, 1))

	result, err := e.auth.Authorize(ctx)
	if err != nil {
		return musickit.AuthResult{}, err
	}

	if result.Recovered {
		e.sendProgress(progress, recoveredUpdate(1, 1))
	}

	return result, nil
}

// AdoptCredentials commits tokens obtained out-of-band (consent callback,
// web player capture) to the session, bypassing the SDK.
func (e *ReplayEngine) AdoptCredentials(developerToken, userToken string) error {
	if e.auth == nil {
		return fmt.Errorf("%w: authorizer not initialized", shared.ErrServiceUnavailable)
	}
	return e.auth.AdoptCredentials(developerToken, userToken)
}

// GetReplayData fetches the summary and aggregated history, returning a
// fresh normalized dataset. The result replaces any prior data wholesale.
func (e *ReplayEngine) GetReplayData(ctx context.Context, progress chan<- ProgressUpdate) (*models.ReplaySummary, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog client not initialized", shared.ErrServiceUnavailable)
	}
	if !e.session.Observe().Authorized {
		return nil, fmt.Errorf("%w: authorize before fetching replay data", shared.ErrNotAuthorized)
	}

	e.sendProgress(progress, fetchSummaryUpdate(1, 3))

	summary, err := e.catalog.ReplaySummary(ctx)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, fetchHistoryUpdate(2, 3, 0))

	recent, err := e.catalog.FetchAllRecentTracks(ctx, e.pageSize, e.maxItems)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, normalizeUpdate(3, 3, len(recent)))

	return services.NormalizeSummary(summary, recent), nil
}
