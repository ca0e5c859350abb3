package server

import (
	"fmt"
	"net/http"
	"sync"
)

// TokenResult contains the result of a browser consent flow.
type TokenResult struct {
	Token string
	err   error
}

func (t *TokenResult) Error() error {
	return t.err
}

// TokenHandler handles the consent page's redirect carrying the music user token.
// Implements the Handler interface for registration with a Router.
type TokenHandler struct {
	state       string
	resultChan  chan TokenResult
	once        sync.Once
	callbackHit bool
	mu          sync.Mutex
}

// NewTokenHandler creates a new token handler with the given state token.
// The state token should be cryptographically random for CSRF protection.
func NewTokenHandler(state string) *TokenHandler {
	return &TokenHandler{
		state:      state,
		resultChan: make(chan TokenResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *TokenHandler) Routes() []string {
	return []string{"/callback"}
}

// ServeHTTP handles the consent callback request.
//
// Validates the state parameter, extracts the music user token, and sends
// the result through the result channel.
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Only handle callback once
	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	state := r.URL.Query().Get("state")
	if state != h.state {
		err := fmt.Errorf("invalid state parameter")
		h.Send(TokenResult{err: err})
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	token := r.URL.Query().Get("music_user_token")
	if token == "" {
		errParam := r.URL.Query().Get("error")
		errDesc := r.URL.Query().Get("error_description")
		err := fmt.Errorf("consent failed: %s - %s", errParam, errDesc)
		h.Send(TokenResult{err: err})
		http.Error(w, "Consent failed", http.StatusBadRequest)
		return
	}

	h.Send(TokenResult{Token: token})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `
<!DOCTYPE html>
<html>
<head>
    <title>Authorization Successful</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #FC3C44; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>&#10003; Authorization Successful</h1>
        <p>You can close this window and return to the terminal.</p>
    </div>
</body>
</html>
`)
}

// Send sends the token result through the channel (only once).
func (h *TokenHandler) Send(result TokenResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the result channel for receiving consent flow completion.
//
// Channel will receive exactly one result and then be closed.
func (h *TokenHandler) Result() <-chan TokenResult {
	return h.resultChan
}
