package musickit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/desertthunder/replay/internal/shared"
)

const defaultBridgeURL = "http://localhost:8090"

// readyPollInterval is the pause between readiness probes while the bridge
// is still starting up.
const readyPollInterval = 250 * time.Millisecond

// BridgeAdapter implements [Adapter] over the bridge's HTTP surface.
type BridgeAdapter struct {
	baseURL    string
	httpClient *http.Client
}

// NewBridgeAdapter creates a bridge adapter for the given base URL.
func NewBridgeAdapter(baseURL string, client *http.Client) *BridgeAdapter {
	if baseURL == "" {
		baseURL = defaultBridgeURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &BridgeAdapter{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// bridgeError is the bridge's error response body.
type bridgeError struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

func (b *BridgeAdapter) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	apiURL := b.baseURL + endpoint

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp bridgeError
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Detail != "" {
			return &AuthError{Category: categoryFromCode(errResp.Code), Detail: errResp.Detail}
		}
		return &AuthError{Category: CategoryUnknown, Detail: fmt.Sprintf("status %d", resp.StatusCode)}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Load blocks until the bridge reports readiness or the context expires.
//
// Calls GET /ready, polling while the bridge is still starting.
func (b *BridgeAdapter) Load(ctx context.Context) error {
	for {
		err := b.doRequest(ctx, http.MethodGet, "/ready", nil, nil)
		if err == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", shared.ErrSDKNotReady, ctx.Err())
		case <-time.After(readyPollInterval):
		}
	}
}

// Configure initializes a MusicKit instance with the developer token.
//
// Calls POST /configure on the bridge.
func (b *BridgeAdapter) Configure(ctx context.Context, developerToken string, app AppMetadata) (*Handle, error) {
	payload := struct {
		DeveloperToken string      `json:"developer_token"`
		App            AppMetadata `json:"app"`
	}{developerToken, app}

	var resp struct {
		InstanceID string `json:"instance_id"`
	}

	if err := b.doRequest(ctx, http.MethodPost, "/configure", payload, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrConfiguration, err)
	}

	if resp.InstanceID == "" {
		return nil, fmt.Errorf("%w: bridge returned no instance id", shared.ErrConfiguration)
	}

	return &Handle{InstanceID: resp.InstanceID}, nil
}

// Authorize runs the user consent exchange for the configured instance.
//
// Calls POST /instances/{id}/authorize on the bridge. The bridge is known
// to sometimes report a storefront error after the consent exchange has
// already completed; callers must not treat an error here as final without
// consulting [BridgeAdapter.CurrentUserToken].
func (b *BridgeAdapter) Authorize(ctx context.Context, h *Handle) (string, error) {
	if h == nil {
		return "", fmt.Errorf("%w: nil handle", shared.ErrNotConfigured)
	}

	var resp struct {
		MusicUserToken string `json:"music_user_token"`
	}

	endpoint := fmt.Sprintf("/instances/%s/authorize", h.InstanceID)
	if err := b.doRequest(ctx, http.MethodPost, endpoint, nil, &resp); err != nil {
		return "", err
	}

	return resp.MusicUserToken, nil
}

// CurrentUserToken reads the instance's user token via the side channel.
//
// Calls GET /instances/{id}/token. An empty token is not an error.
func (b *BridgeAdapter) CurrentUserToken(ctx context.Context, h *Handle) (string, error) {
	if h == nil {
		return "", fmt.Errorf("%w: nil handle", shared.ErrNotConfigured)
	}

	var resp struct {
		MusicUserToken string `json:"music_user_token"`
	}

	endpoint := fmt.Sprintf("/instances/%s/token", h.InstanceID)
	if err := b.doRequest(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return "", err
	}

	return resp.MusicUserToken, nil
}
