package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/replay/internal/models"
)

var (
	_ list.Item = artistItem{}
	_ list.Item = albumItem{}
	_ list.Item = songItem{}
	_ list.Item = recentItem{}
)

// artistItem wraps [models.Artist] to implement [list.Item].
type artistItem struct {
	artist models.Artist
}

func (i artistItem) FilterValue() string { return i.artist.Name }
func (i artistItem) Title() string       { return fmt.Sprintf("%d. %s", i.artist.Rank, i.artist.Name) }
func (i artistItem) Description() string { return fmt.Sprintf("rank %d", i.artist.Rank) }

// albumItem wraps [models.Album] to implement [list.Item].
type albumItem struct {
	album models.Album
}

func (i albumItem) FilterValue() string { return i.album.Title }
func (i albumItem) Title() string       { return fmt.Sprintf("%d. %s", i.album.Rank, i.album.Title) }
func (i albumItem) Description() string { return i.album.Artist }

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song models.Song
}

func (i songItem) FilterValue() string { return i.song.Title }
func (i songItem) Title() string       { return fmt.Sprintf("%d. %s", i.song.Rank, i.song.Title) }
func (i songItem) Description() string {
	desc := i.song.Artist
	if i.song.Album != models.Unknown {
		desc = fmt.Sprintf("%s • %s", desc, i.song.Album)
	}
	return desc
}

// recentItem wraps [models.RecentTrack] to implement [list.Item].
type recentItem struct {
	track models.RecentTrack
}

func (i recentItem) FilterValue() string { return i.track.Title }
func (i recentItem) Title() string       { return i.track.Title }
func (i recentItem) Description() string {
	desc := i.track.Artist
	if i.track.Album != models.Unknown {
		desc = fmt.Sprintf("%s • %s", desc, i.track.Album)
	}
	return desc
}
