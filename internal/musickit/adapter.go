package musickit

import (
	"context"
	"fmt"

	"github.com/desertthunder/replay/internal/shared"
)

// AppMetadata identifies the application to the SDK during configuration.
type AppMetadata struct {
	Name  string `json:"name"`
	Build string `json:"build"`
}

// Handle is an opaque reference to a configured SDK instance.
type Handle struct {
	InstanceID string
}

// Adapter defines the capability set consumed from the MusicKit SDK.
//
// Implementations translate these calls to the underlying SDK primitives
// without interpreting errors or retrying.
type Adapter interface {
	// Load blocks until the SDK library reports readiness.
	Load(ctx context.Context) error

	// Configure initializes an SDK instance with the developer token.
	Configure(ctx context.Context, developerToken string, app AppMetadata) (*Handle, error)

	// Authorize runs the user consent exchange and returns the music user token.
	Authorize(ctx context.Context, h *Handle) (string, error)

	// CurrentUserToken reads the instance's user token outside the error
	// path. Returns an empty string when no consent has been granted.
	CurrentUserToken(ctx context.Context, h *Handle) (string, error)
}

// AuthCategory is the machine-checkable classification of an authorization failure.
type AuthCategory int

const (
	CategoryUnknown AuthCategory = iota
	CategoryAccessDenied
	CategoryInvalidDeveloperToken
)

func (c AuthCategory) String() string {
	switch c {
	case CategoryAccessDenied:
		return "access_denied"
	case CategoryInvalidDeveloperToken:
		return "invalid_developer_token"
	default:
		return "unknown"
	}
}

// AuthError is an authorization failure reported by the SDK, tagged with its category.
type AuthError struct {
	Category AuthCategory
	Detail   string
}

func (e *AuthError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%v (%s)", shared.ErrAuthorization, e.Category)
	}
	return fmt.Sprintf("%v (%s): %s", shared.ErrAuthorization, e.Category, e.Detail)
}

func (e *AuthError) Unwrap() error {
	return shared.ErrAuthorization
}

// categoryFromCode maps bridge error codes to categories.
func categoryFromCode(code string) AuthCategory {
	switch code {
	case "access_denied", "ACCESS_DENIED":
		return CategoryAccessDenied
	case "invalid_developer_token", "DEVELOPER_TOKEN_INVALID":
		return CategoryInvalidDeveloperToken
	default:
		return CategoryUnknown
	}
}
