package musickit

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/replay/internal/session"
	"github.com/desertthunder/replay/internal/shared"
)

const (
	defaultRecoveryDelay = 750 * time.Millisecond
	defaultRecoveryPolls = 2
)

// AuthResult is the outcome of a successful authorization.
type AuthResult struct {
	Token string

	// Recovered is true when the token came from the side channel after
	// the SDK reported an authorize error.
	Recovered bool
}

// AuthorizerOpts contains configuration options for creating an Authorizer.
type AuthorizerOpts struct {
	Adapter Adapter
	Session *session.Session

	// RecoveryDelay is the pause before each side-channel re-read after a
	// reported authorize failure. The SDK settles asynchronously, so the
	// correct bound is a tunable, not a contract.
	RecoveryDelay time.Duration
	RecoveryPolls int
}

// Authorizer drives the configure → authorize transition against an [Adapter],
// committing results to the session.
//
// One authorization in flight at a time; concurrent calls are a caller error.
type Authorizer struct {
	adapter       Adapter
	session       *session.Session
	recoveryDelay time.Duration
	recoveryPolls int
	handle        *Handle
}

// NewAuthorizer creates an Authorizer with the provided options.
func NewAuthorizer(opts AuthorizerOpts) *Authorizer {
	if opts.RecoveryDelay <= 0 {
		opts.RecoveryDelay = defaultRecoveryDelay
	}
	if opts.RecoveryPolls <= 0 {
		opts.RecoveryPolls = defaultRecoveryPolls
	}

	return &Authorizer{
		adapter:       opts.Adapter,
		session:       opts.Session,
		recoveryDelay: opts.RecoveryDelay,
		recoveryPolls: opts.RecoveryPolls,
	}
}

// Configure loads the SDK if needed and configures an instance with the
// developer token. On success the handle and token are committed to the
// session; on failure no partial state is committed.
func (a *Authorizer) Configure(ctx context.Context, developerToken string, app AppMetadata) error {
	if developerToken == "" {
		return fmt.Errorf("%w: developer token is empty", shared.ErrMissingDevToken)
	}

	if !a.session.Observe().SDKReady {
		if err := a.adapter.Load(ctx); err != nil {
			return err
		}
		a.session.MarkSDKReady()
	}

	handle, err := a.adapter.Configure(ctx, developerToken, app)
	if err != nil {
		return err
	}

	a.handle = handle
	a.session.MarkConfigured(developerToken, handle)
	return nil
}

// Authorize runs the consent exchange and commits the user token.
//
// Three outcomes are distinguished, checked in order:
//  1. Direct success: authorize returns a non-empty token, committed as is.
//  2. Apparent failure, latent success: authorize reports an error but the
//     side channel yields a token within the bounded recovery window. The
//     side-channel token is committed and the error is suppressed.
//  3. Genuine failure: the side channel stays empty. The error is returned
//     with its category intact and the session stays configured, so the
//     caller can retry without reconfiguring.
func (a *Authorizer) Authorize(ctx context.Context) (AuthResult, error) {
	snap := a.session.Observe()
	if !snap.Configured {
		return AuthResult{}, fmt.Errorf("%w: call Configure first", shared.ErrNotConfigured)
	}
	if snap.Authorized {
		return AuthResult{Token: snap.UserToken}, nil
	}

	handle := a.borrowHandle(snap)

	token, err := a.adapter.Authorize(ctx, handle)
	if err == nil && token != "" {
		a.session.MarkAuthorized(token)
		return AuthResult{Token: token}, nil
	}
	if err == nil {
		err = &AuthError{Category: CategoryUnknown, Detail: "authorize returned an empty token"}
	}

	if result, ok := a.recover(ctx, handle); ok {
		return result, nil
	}

	return AuthResult{}, err
}

// recover re-reads the side channel after a reported authorize failure.
//
// Each poll waits recoveryDelay first: the SDK writes the token after the
// error surfaces, never before.
func (a *Authorizer) recover(ctx context.Context, handle *Handle) (AuthResult, bool) {
	for i := 0; i < a.recoveryPolls; i++ {
		select {
		case <-ctx.Done():
			return AuthResult{}, false
		case <-time.After(a.recoveryDelay):
		}

		token, err := a.adapter.CurrentUserToken(ctx, handle)
		if err != nil || token == "" {
			continue
		}

		a.session.MarkAuthorized(token)
		return AuthResult{Token: token, Recovered: true}, true
	}

	return AuthResult{}, false
}

// AdoptCredentials commits tokens captured out-of-band (browser consent
// callback or a web player cURL capture) without touching the SDK.
func (a *Authorizer) AdoptCredentials(developerToken, userToken string) error {
	if developerToken == "" {
		return fmt.Errorf("%w: developer token is empty", shared.ErrMissingDevToken)
	}
	if userToken == "" {
		return fmt.Errorf("%w: user token is empty", shared.ErrNotAuthorized)
	}

	snap := a.session.Observe()
	if !snap.SDKReady {
		a.session.MarkSDKReady()
	}
	if !snap.Configured {
		a.session.MarkConfigured(developerToken, nil)
	}
	if !a.session.Observe().Authorized {
		a.session.MarkAuthorized(userToken)
	}

	return nil
}

// borrowHandle prefers the handle held from Configure, falling back to the
// one stored in the session snapshot.
func (a *Authorizer) borrowHandle(snap session.Snapshot) *Handle {
	if a.handle != nil {
		return a.handle
	}
	if h, ok := snap.Handle.(*Handle); ok {
		return h
	}
	return nil
}
