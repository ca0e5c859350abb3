// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/replay/internal/musickit"
	"github.com/desertthunder/replay/internal/services"
)

// MockAdapter is a scriptable test double for [musickit.Adapter].
type MockAdapter struct {
	LoadErr      error
	ConfigureErr error
	Handle       *musickit.Handle

	AuthorizeToken string
	AuthorizeErr   error

	// SideChannelTokens is returned from CurrentUserToken in order; the
	// last entry repeats once exhausted.
	SideChannelTokens []string
	SideChannelErr    error

	LoadCalls        int
	ConfigureCalls   int
	AuthorizeCalls   int
	SideChannelCalls int
}

func (m *MockAdapter) Load(ctx context.Context) error {
	m.LoadCalls++
	return m.LoadErr
}

func (m *MockAdapter) Configure(ctx context.Context, developerToken string, app musickit.AppMetadata) (*musickit.Handle, error) {
	m.ConfigureCalls++
	if m.ConfigureErr != nil {
		return nil, m.ConfigureErr
	}
	if m.Handle == nil {
		m.Handle = &musickit.Handle{InstanceID: "mock-instance"}
	}
	return m.Handle, nil
}

func (m *MockAdapter) Authorize(ctx context.Context, h *musickit.Handle) (string, error) {
	m.AuthorizeCalls++
	return m.AuthorizeToken, m.AuthorizeErr
}

func (m *MockAdapter) CurrentUserToken(ctx context.Context, h *musickit.Handle) (string, error) {
	m.SideChannelCalls++
	if m.SideChannelErr != nil {
		return "", m.SideChannelErr
	}
	if len(m.SideChannelTokens) == 0 {
		return "", nil
	}
	idx := m.SideChannelCalls - 1
	if idx >= len(m.SideChannelTokens) {
		idx = len(m.SideChannelTokens) - 1
	}
	return m.SideChannelTokens[idx], nil
}

// MockCatalog is a test double for [services.Catalog].
type MockCatalog struct {
	Summary    *services.SummaryResponse
	SummaryErr error
	Tracks     []services.Resource
	TracksErr  error
}

func (m *MockCatalog) ReplaySummary(ctx context.Context) (*services.SummaryResponse, error) {
	return m.Summary, m.SummaryErr
}

func (m *MockCatalog) RecentTracks(ctx context.Context, limit, offset int) (*services.RecentTracksPage, error) {
	if m.TracksErr != nil {
		return nil, m.TracksErr
	}
	return &services.RecentTracksPage{Data: m.Tracks}, nil
}

func (m *MockCatalog) FetchAllRecentTracks(ctx context.Context, pageSize, maxItems int) ([]services.Resource, error) {
	return m.Tracks, m.TracksErr
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
