package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/desertthunder/replay/internal/session"
	"github.com/desertthunder/replay/internal/shared"
	"golang.org/x/time/rate"
)

const (
	appleMusicBaseURL = "https://api.music.apple.com"

	summaryEndpoint = "/v1/me/music-summaries?filter[year]=latest&views=top-artists,top-albums,top-songs"
	recentEndpoint  = "/v1/me/recent/played/tracks"

	defaultPageSize  = 10
	maxPageSize      = 30
	defaultMaxItems  = 100
	defaultRateLimit = 5.0

	// maxErrorBody bounds how much of an error response is carried into the error message.
	maxErrorBody = 2048
)

// AppleMusicService implements [Catalog] against the Apple Music API
// (https://developer.apple.com/documentation/applemusicapi).
//
// Every request carries the developer and user token read from the session
// at call time; an unauthorized session is a precondition failure.
type AppleMusicService struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Session
	limiter    *rate.Limiter
}

// NewAppleMusicService creates a catalog client bound to the given session.
func NewAppleMusicService(baseURL string, sess *session.Session, client *http.Client) *AppleMusicService {
	if baseURL == "" {
		baseURL = appleMusicBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &AppleMusicService{
		baseURL:    baseURL,
		httpClient: client,
		session:    sess,
		limiter:    rate.NewLimiter(rate.Limit(defaultRateLimit), 1),
	}
}

// SetRateLimit adjusts request pacing to the given requests per second.
func (s *AppleMusicService) SetRateLimit(perSecond float64) {
	if perSecond <= 0 {
		perSecond = defaultRateLimit
	}
	s.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
}

// doRequest performs an authenticated GET against the catalog API.
func (s *AppleMusicService) doRequest(ctx context.Context, endpoint string, result any) error {
	snap := s.session.Observe()
	if !snap.Authorized || snap.UserToken == "" {
		return fmt.Errorf("%w: authorize before calling the catalog API", shared.ErrNotAuthorized)
	}

	apiURL := s.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+snap.DeveloperToken)
	req.Header.Set("Music-User-Token", snap.UserToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: status %d: %s", shared.ErrFetch, resp.StatusCode, string(body))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// ReplaySummary retrieves the latest yearly summary with its top views.
func (s *AppleMusicService) ReplaySummary(ctx context.Context) (*SummaryResponse, error) {
	var response SummaryResponse
	if err := s.doRequest(ctx, summaryEndpoint, &response); err != nil {
		return nil, err
	}

	if len(response.Data) == 0 {
		return nil, fmt.Errorf("%w: empty music-summaries response", shared.ErrSummaryNotFound)
	}

	return &response, nil
}

// RecentTracks retrieves one page of recently played tracks.
func (s *AppleMusicService) RecentTracks(ctx context.Context, limit, offset int) (*RecentTracksPage, error) {
	limit = clampPageSize(limit)

	endpoint := fmt.Sprintf("%s?limit=%d&offset=%d", recentEndpoint, limit, offset)

	var page RecentTracksPage
	if err := s.doRequest(ctx, endpoint, &page); err != nil {
		return nil, err
	}

	return &page, nil
}

// FetchAllRecentTracks aggregates recently played tracks across pages.
//
// Pages are fetched strictly sequentially at offsets 0, pageSize, 2·pageSize...
// because the server-side cursor is stateful. Aggregation halts on a page
// shorter than pageSize (end of data) or once maxItems is reached. Any page
// failure aborts the whole aggregation: a partial dataset must not be
// presented as complete.
func (s *AppleMusicService) FetchAllRecentTracks(ctx context.Context, pageSize, maxItems int) ([]Resource, error) {
	pageSize = clampPageSize(pageSize)
	if maxItems <= 0 {
		maxItems = defaultMaxItems
	}

	items := []Resource{}
	for offset := 0; len(items) < maxItems; offset += pageSize {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrFetch, err)
		}

		page, err := s.RecentTracks(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}

		items = append(items, page.Data...)

		if !page.HasMore(pageSize) {
			break
		}
	}

	if len(items) > maxItems {
		items = items[:maxItems]
	}

	return items, nil
}

func clampPageSize(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}
