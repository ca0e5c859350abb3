package services

import (
	"context"
)

// Catalog defines the operations consumed from the Apple Music API.
type Catalog interface {
	// ReplaySummary retrieves the latest yearly listening summary with its
	// top-artists, top-albums and top-songs views.
	ReplaySummary(ctx context.Context) (*SummaryResponse, error)

	// RecentTracks retrieves one page of recently played tracks.
	RecentTracks(ctx context.Context, limit, offset int) (*RecentTracksPage, error)

	// FetchAllRecentTracks aggregates recently played tracks across
	// sequential pages, stopping on a short page or at maxItems.
	FetchAllRecentTracks(ctx context.Context, pageSize, maxItems int) ([]Resource, error)
}

// Resource is a raw catalog item. Every attribute is optional; the
// normalizer substitutes sentinels for whatever is absent.
type Resource struct {
	ID         string     `json:"id"`
	Type       string     `json:"type"`
	Attributes Attributes `json:"attributes"`
}

// Attributes holds the display fields the catalog may or may not return
// for a resource.
type Attributes struct {
	Name       string `json:"name"`
	ArtistName string `json:"artistName"`
	AlbumName  string `json:"albumName"`
}

// RecentTracksPage is one page of the recently played tracks resource.
type RecentTracksPage struct {
	Data []Resource `json:"data"`
	Next string     `json:"next"`
}

// HasMore reports whether another page may follow, derived from the page
// size rather than the API's next link.
func (p *RecentTracksPage) HasMore(limit int) bool {
	return len(p.Data) >= limit
}

type summaryView struct {
	Data []Resource `json:"data"`
}

type summaryViews struct {
	TopArtists summaryView `json:"top-artists"`
	TopAlbums  summaryView `json:"top-albums"`
	TopSongs   summaryView `json:"top-songs"`
}

type summaryAttributes struct {
	Period string `json:"period"`
}

type summaryData struct {
	Attributes summaryAttributes `json:"attributes"`
	Views      summaryViews      `json:"views"`
}

// SummaryResponse is the raw music-summaries response.
type SummaryResponse struct {
	Data []summaryData `json:"data"`
}
