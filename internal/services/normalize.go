package services

import (
	"github.com/desertthunder/replay/internal/models"
)

// NormalizeSummary flattens a raw summary response and aggregated recent
// tracks into a [models.ReplaySummary].
//
// Pure function: rank follows input order (the API already returns views in
// descending preference order), recent tracks keep fetch order, and every
// input item yields exactly one record.
func NormalizeSummary(resp *SummaryResponse, recent []Resource) *models.ReplaySummary {
	summary := &models.ReplaySummary{
		Year:         models.Unknown,
		Artists:      []models.Artist{},
		Albums:       []models.Album{},
		Songs:        []models.Song{},
		RecentTracks: NormalizeRecentTracks(recent),
	}

	if resp == nil || len(resp.Data) == 0 {
		return summary
	}

	data := resp.Data[0]
	if data.Attributes.Period != "" {
		summary.Year = data.Attributes.Period
	}

	summary.Artists = NormalizeArtists(data.Views.TopArtists.Data)
	summary.Albums = NormalizeAlbums(data.Views.TopAlbums.Data)
	summary.Songs = NormalizeSongs(data.Views.TopSongs.Data)

	return summary
}

// NormalizeArtists maps raw artist resources to ranked records.
func NormalizeArtists(items []Resource) []models.Artist {
	artists := make([]models.Artist, len(items))
	for i, item := range items {
		artists[i] = models.Artist{
			Rank: i + 1,
			Name: orUnknown(item.Attributes.Name),
		}
	}
	return artists
}

// NormalizeAlbums maps raw album resources to ranked records.
func NormalizeAlbums(items []Resource) []models.Album {
	albums := make([]models.Album, len(items))
	for i, item := range items {
		albums[i] = models.Album{
			Rank:   i + 1,
			Title:  orUnknown(item.Attributes.Name),
			Artist: orUnknown(item.Attributes.ArtistName),
		}
	}
	return albums
}

// NormalizeSongs maps raw song resources to ranked records.
func NormalizeSongs(items []Resource) []models.Song {
	songs := make([]models.Song, len(items))
	for i, item := range items {
		songs[i] = models.Song{
			Rank:   i + 1,
			Title:  orUnknown(item.Attributes.Name),
			Artist: orUnknown(item.Attributes.ArtistName),
			Album:  orUnknown(item.Attributes.AlbumName),
		}
	}
	return songs
}

// NormalizeRecentTracks maps raw track resources to positioned records,
// preserving chronological order as returned.
func NormalizeRecentTracks(items []Resource) []models.RecentTrack {
	tracks := make([]models.RecentTrack, len(items))
	for i, item := range items {
		tracks[i] = models.RecentTrack{
			Position: i + 1,
			Title:    orUnknown(item.Attributes.Name),
			Artist:   orUnknown(item.Attributes.ArtistName),
			Album:    orUnknown(item.Attributes.AlbumName),
		}
	}
	return tracks
}

func orUnknown(s string) string {
	if s == "" {
		return models.Unknown
	}
	return s
}
