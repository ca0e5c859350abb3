package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/desertthunder/replay/internal/session"
	"github.com/desertthunder/replay/internal/shared"
)

func authorizedSession() *session.Session {
	sess := session.New()
	sess.MarkSDKReady()
	sess.MarkConfigured("dev-token", nil)
	sess.MarkAuthorized("user-token")
	return sess
}

// trackServer serves a fixed number of recently played tracks, honoring
// limit/offset, and records every request it sees.
func trackServer(t *testing.T, total int) (*httptest.Server, *[]string) {
	t.Helper()
	offsets := []string{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/me/recent/played/tracks" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer dev-token" {
			t.Errorf("expected developer token header, got %q", r.Header.Get("Authorization"))
		}
		if r.Header.Get("Music-User-Token") != "user-token" {
			t.Errorf("expected user token header, got %q", r.Header.Get("Music-User-Token"))
		}

		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		offsets = append(offsets, r.URL.Query().Get("offset"))

		page := RecentTracksPage{Data: []Resource{}}
		for i := offset; i < offset+limit && i < total; i++ {
			page.Data = append(page.Data, Resource{
				ID:         fmt.Sprintf("track-%d", i),
				Type:       "songs",
				Attributes: Attributes{Name: fmt.Sprintf("Song %d", i)},
			})
		}

		json.NewEncoder(w).Encode(page)
	}))

	return server, &offsets
}

func TestAppleMusicService(t *testing.T) {
	ctx := context.Background()

	t.Run("NewAppleMusicService", func(t *testing.T) {
		if svc := NewAppleMusicService("", nil, nil); svc.baseURL != appleMusicBaseURL {
			t.Errorf("expected default base URL, got %s", svc.baseURL)
		}
	})

	t.Run("requires an authorized session", func(t *testing.T) {
		svc := NewAppleMusicService("http://localhost:1", session.New(), nil)

		if _, err := svc.ReplaySummary(ctx); !errors.Is(err, shared.ErrNotAuthorized) {
			t.Errorf("expected ErrNotAuthorized, got %v", err)
		}
		if _, err := svc.RecentTracks(ctx, 10, 0); !errors.Is(err, shared.ErrNotAuthorized) {
			t.Errorf("expected ErrNotAuthorized, got %v", err)
		}
	})

	t.Run("ReplaySummary", func(t *testing.T) {
		t.Run("fetches the latest summary with top views", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/me/music-summaries" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if r.URL.Query().Get("filter[year]") != "latest" {
					t.Errorf("expected filter[year]=latest, got %q", r.URL.Query().Get("filter[year]"))
				}
				if r.URL.Query().Get("views") != "top-artists,top-albums,top-songs" {
					t.Errorf("unexpected views parameter %q", r.URL.Query().Get("views"))
				}

				w.Write([]byte(`{
					"data": [{
						"attributes": {"period": "year-2025"},
						"views": {
							"top-artists": {"data": [{"attributes": {"name": "Caroline Polachek"}}]},
							"top-albums": {"data": [{"attributes": {"name": "Desire", "artistName": "Caroline Polachek"}}]},
							"top-songs": {"data": [{"attributes": {"name": "Welcome To My Island"}}]}
						}
					}]
				}`))
			}))
			defer server.Close()

			svc := NewAppleMusicService(server.URL, authorizedSession(), nil)
			summary, err := svc.ReplaySummary(ctx)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if summary.Data[0].Attributes.Period != "year-2025" {
				t.Errorf("expected period year-2025, got %q", summary.Data[0].Attributes.Period)
			}
			if len(summary.Data[0].Views.TopArtists.Data) != 1 {
				t.Errorf("expected 1 top artist, got %d", len(summary.Data[0].Views.TopArtists.Data))
			}
		})

		t.Run("empty data is a not-found error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"data": []}`))
			}))
			defer server.Close()

			svc := NewAppleMusicService(server.URL, authorizedSession(), nil)
			if _, err := svc.ReplaySummary(ctx); !errors.Is(err, shared.ErrSummaryNotFound) {
				t.Errorf("expected ErrSummaryNotFound, got %v", err)
			}
		})

		t.Run("server errors carry the status", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"errors": [{"status": "429"}]}`))
			}))
			defer server.Close()

			svc := NewAppleMusicService(server.URL, authorizedSession(), nil)
			if _, err := svc.ReplaySummary(ctx); !errors.Is(err, shared.ErrFetch) {
				t.Errorf("expected ErrFetch, got %v", err)
			}
		})
	})

	t.Run("FetchAllRecentTracks", func(t *testing.T) {
		t.Run("walks sequential offsets until a short page", func(t *testing.T) {
			server, offsets := trackServer(t, 23)
			defer server.Close()

			svc := NewAppleMusicService(server.URL, authorizedSession(), nil)
			svc.SetRateLimit(1000)

			items, err := svc.FetchAllRecentTracks(ctx, 10, 100)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if len(items) != 23 {
				t.Fatalf("expected 23 items, got %d", len(items))
			}
			if want := []string{"0", "10", "20"}; len(*offsets) != len(want) {
				t.Fatalf("expected offsets %v, got %v", want, *offsets)
			} else {
				for i, offset := range want {
					if (*offsets)[i] != offset {
						t.Errorf("expected offset %s at request %d, got %s", offset, i, (*offsets)[i])
					}
				}
			}
			if items[0].ID != "track-0" || items[22].ID != "track-22" {
				t.Error("expected items in fetch order")
			}
		})

		t.Run("stops at maxItems and truncates", func(t *testing.T) {
			server, offsets := trackServer(t, 100)
			defer server.Close()

			svc := NewAppleMusicService(server.URL, authorizedSession(), nil)
			svc.SetRateLimit(1000)

			items, err := svc.FetchAllRecentTracks(ctx, 10, 25)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if len(items) != 25 {
				t.Errorf("expected 25 items, got %d", len(items))
			}
			if len(*offsets) != 3 {
				t.Errorf("expected 3 requests, got %d", len(*offsets))
			}
		})

		t.Run("maxItems at a page boundary issues no further requests", func(t *testing.T) {
			server, offsets := trackServer(t, 100)
			defer server.Close()

			svc := NewAppleMusicService(server.URL, authorizedSession(), nil)
			svc.SetRateLimit(1000)

			items, err := svc.FetchAllRecentTracks(ctx, 10, 20)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if len(items) != 20 {
				t.Errorf("expected 20 items, got %d", len(items))
			}
			if len(*offsets) != 2 {
				t.Errorf("expected exactly 2 requests, got %d", len(*offsets))
			}
		})

		t.Run("exact page boundary needs one extra probe", func(t *testing.T) {
			server, offsets := trackServer(t, 20)
			defer server.Close()

			svc := NewAppleMusicService(server.URL, authorizedSession(), nil)
			svc.SetRateLimit(1000)

			items, err := svc.FetchAllRecentTracks(ctx, 10, 100)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if len(items) != 20 {
				t.Errorf("expected 20 items, got %d", len(items))
			}
			// 0 and 10 are full pages; 20 comes back empty and ends the walk
			if len(*offsets) != 3 {
				t.Errorf("expected 3 requests, got %d", len(*offsets))
			}
		})

		t.Run("any page failure aborts without a partial result", func(t *testing.T) {
			requests := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				requests++
				if requests > 2 {
					w.WriteHeader(http.StatusInternalServerError)
					return
				}

				page := RecentTracksPage{Data: make([]Resource, 10)}
				json.NewEncoder(w).Encode(page)
			}))
			defer server.Close()

			svc := NewAppleMusicService(server.URL, authorizedSession(), nil)
			svc.SetRateLimit(1000)

			items, err := svc.FetchAllRecentTracks(ctx, 10, 100)
			if !errors.Is(err, shared.ErrFetch) {
				t.Errorf("expected ErrFetch, got %v", err)
			}
			if items != nil {
				t.Errorf("expected no partial result, got %d items", len(items))
			}
		})

		t.Run("cancelled context stops the walk", func(t *testing.T) {
			server, _ := trackServer(t, 100)
			defer server.Close()

			svc := NewAppleMusicService(server.URL, authorizedSession(), nil)
			svc.SetRateLimit(1000)

			cancelled, cancel := context.WithCancel(ctx)
			cancel()

			if _, err := svc.FetchAllRecentTracks(cancelled, 10, 100); err == nil {
				t.Error("expected error after cancellation")
			}
		})
	})

	t.Run("clampPageSize", func(t *testing.T) {
		cases := map[int]int{0: defaultPageSize, -5: defaultPageSize, 10: 10, 30: 30, 50: maxPageSize}
		for input, want := range cases {
			if got := clampPageSize(input); got != want {
				t.Errorf("clampPageSize(%d) = %d, want %d", input, got, want)
			}
		}
	})
}
