package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/desertthunder/replay/internal/musickit"
	"github.com/desertthunder/replay/internal/server"
	"github.com/desertthunder/replay/internal/shared"
	"github.com/urfave/cli/v3"
)

const consentTimeout = 5 * time.Minute

// AuthLogin runs the configure → authorize flow against the bridge and
// reports the resulting session stage.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureAuthorized(ctx, cmd); err != nil {
		var authErr *musickit.AuthError
		if errors.As(err, &authErr) {
			r.logger.Errorf("authorization failed (%s): %s", authErr.Category, authErr.Detail)
		}
		return err
	}

	return r.writePlainln("Authorized. %s", r.session.Describe())
}

// AuthBrowser runs the consent flow through the system browser.
//
// Starts a localhost callback server, opens the bridge's consent page
// pointed back at it, and adopts the delivered token.
func (r *Runner) AuthBrowser(ctx context.Context, cmd *cli.Command) error {
	devToken := r.developerToken(cmd)
	if devToken == "" {
		return fmt.Errorf("%w: set developer_token in config.toml or pass --developer-token", shared.ErrMissingDevToken)
	}

	state := shared.GenerateID()
	handler := server.NewTokenHandler(state)

	router := server.NewCallbackRouter()
	router.Handler(handler)

	addr := net.JoinHostPort(r.config.Auth.CallbackHost, fmt.Sprintf("%d", r.config.Auth.CallbackPort))
	srv := &http.Server{Addr: addr, Handler: router}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			handler.Send(server.TokenResult{})
			r.logger.Errorf("callback server error: %v", err)
		}
	}()
	defer srv.Shutdown(context.Background())

	consentURL := fmt.Sprintf(
		"%s/consent?developer_token=%s&state=%s&redirect_uri=%s",
		r.config.Credentials.MusicKit.BridgeURL,
		url.QueryEscape(devToken),
		url.QueryEscape(state),
		url.QueryEscape(fmt.Sprintf("http://%s/callback", addr)),
	)

	r.logger.Info("opening browser for Apple Music consent")
	if err := shared.OpenBrowser(consentURL); err != nil {
		r.logger.Warnf("could not open browser automatically: %v", err)
		if err := r.writePlainln("Open this URL to continue: %s", consentURL); err != nil {
			return err
		}
	}

	select {
	case result := <-handler.Result():
		if result.Error() != nil {
			return fmt.Errorf("%w: %v", shared.ErrAuthorization, result.Error())
		}
		if result.Token == "" {
			return fmt.Errorf("%w: callback delivered no token", shared.ErrAuthorization)
		}
		if err := r.engine.AdoptCredentials(devToken, result.Token); err != nil {
			return err
		}
	case <-time.After(consentTimeout):
		return fmt.Errorf("%w: no consent callback within %s", shared.ErrTimeout, consentTimeout)
	case <-ctx.Done():
		return ctx.Err()
	}

	return r.writePlainln("Authorized. %s", r.session.Describe())
}

// AuthImport extracts a music user token from a web player cURL command
// and adopts it alongside the developer token.
func (r *Runner) AuthImport(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("curl-file")
	if path == "" {
		return fmt.Errorf("%w: --curl-file is required", shared.ErrMissingArgument)
	}

	headers, err := shared.ParseCurlFile(path)
	if err != nil {
		return err
	}

	userToken := headers.MusicUserToken()
	if userToken == "" {
		return fmt.Errorf("%w: no media-user-token header found in %s", shared.ErrInvalidInput, path)
	}

	devToken := r.developerToken(cmd)
	if devToken == "" {
		return fmt.Errorf("%w: set developer_token in config.toml or pass --developer-token", shared.ErrMissingDevToken)
	}

	if err := r.engine.AdoptCredentials(devToken, userToken); err != nil {
		return err
	}

	r.logger.Info("imported music user token from cURL capture")
	return r.writePlainln("Authorized. %s", r.session.Describe())
}

// AuthStatus reports the session stage and whether the bridge responds.
func (r *Runner) AuthStatus(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	bridge := "reachable"
	if err := r.adapter.Load(probeCtx); err != nil {
		bridge = fmt.Sprintf("unreachable (%v)", err)
	}

	return r.writePlainln("%s\nbridge: %s", r.session.Describe(), bridge)
}
