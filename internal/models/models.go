package models

// Unknown is the sentinel substituted for absent display fields.
const Unknown = "Unknown"

// Artist is a ranked top-artist record for the replay year.
type Artist struct {
	Rank int    `json:"rank"` // 1-based, assigned by API order
	Name string `json:"name"`
}

// Album is a ranked top-album record for the replay year.
type Album struct {
	Rank   int    `json:"rank"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// Song is a ranked top-song record for the replay year.
type Song struct {
	Rank   int    `json:"rank"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
}

// RecentTrack is a recently played track in reverse-chronological order.
type RecentTrack struct {
	Position int    `json:"position"` // 1-based fetch order
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
}

// ReplaySummary aggregates the normalized replay data for presentation.
//
// Replaced wholesale on each fetch; never merged incrementally.
type ReplaySummary struct {
	Year         string        `json:"year"`
	Artists      []Artist      `json:"artists"`
	Albums       []Album       `json:"albums"`
	Songs        []Song        `json:"songs"`
	RecentTracks []RecentTrack `json:"recent_tracks"`
}
