// package formatter provides functions to export replay data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/desertthunder/replay/internal/models"
)

func newJSONEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc
}

// ExportToCSV converts a ReplaySummary to CSV format with columns: Section, Rank, Title, Artist, Album
func ExportToCSV(summary *models.ReplaySummary) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Section", "Rank", "Title", "Artist", "Album"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, artist := range summary.Artists {
		record := []string{"artist", strconv.Itoa(artist.Rank), "", artist.Name, ""}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	for _, album := range summary.Albums {
		record := []string{"album", strconv.Itoa(album.Rank), album.Title, album.Artist, ""}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	for _, song := range summary.Songs {
		record := []string{"song", strconv.Itoa(song.Rank), song.Title, song.Artist, song.Album}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	for _, track := range summary.RecentTracks {
		record := []string{"recent", strconv.Itoa(track.Position), track.Title, track.Artist, track.Album}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a ReplaySummary to Markdown format
func ExportToMarkdown(summary *models.ReplaySummary) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Apple Music Replay — %s\n\n", summary.Year))

	buf.WriteString("## Top Artists\n\n")
	for _, artist := range summary.Artists {
		buf.WriteString(fmt.Sprintf("%d. %s\n", artist.Rank, artist.Name))
	}

	buf.WriteString("\n## Top Albums\n\n")
	for _, album := range summary.Albums {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", album.Rank, album.Artist, album.Title))
	}

	buf.WriteString("\n## Top Songs\n\n")
	for _, song := range summary.Songs {
		albumPart := ""
		if song.Album != models.Unknown {
			albumPart = fmt.Sprintf(" (%s)", song.Album)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s\n", song.Rank, song.Artist, song.Title, albumPart))
	}

	if len(summary.RecentTracks) > 0 {
		buf.WriteString(fmt.Sprintf("\n## Recently Played (%d tracks)\n\n", len(summary.RecentTracks)))
		for _, track := range summary.RecentTracks {
			buf.WriteString(fmt.Sprintf("%d. %s - %s\n", track.Position, track.Artist, track.Title))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a ReplaySummary to plain text format
func ExportToText(summary *models.ReplaySummary) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Replay: %s\n", summary.Year))
	buf.WriteString(fmt.Sprintf("Artists: %d  Albums: %d  Songs: %d  Recent: %d\n\n",
		len(summary.Artists), len(summary.Albums), len(summary.Songs), len(summary.RecentTracks)))

	buf.WriteString("Top Artists\n")
	for _, artist := range summary.Artists {
		buf.WriteString(fmt.Sprintf("%d. %s\n", artist.Rank, artist.Name))
	}

	buf.WriteString("\nTop Songs\n")
	for _, song := range summary.Songs {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", song.Rank, song.Artist, song.Title))
	}

	return buf.Bytes(), nil
}

// WriteExport renders the summary in the requested format and writes it to path.
//
// Format is one of csv, markdown, txt; anything else falls back to indented JSON.
func WriteExport(summary *models.ReplaySummary, format, path string) error {
	var data []byte
	var err error

	switch format {
	case "csv":
		data, err = ExportToCSV(summary)
	case "markdown", "md":
		data, err = ExportToMarkdown(summary)
	case "txt", "text":
		data, err = ExportToText(summary)
	default:
		var buf bytes.Buffer
		enc := newJSONEncoder(&buf)
		err = enc.Encode(summary)
		data = buf.Bytes()
	}

	if err != nil {
		return fmt.Errorf("failed to render %s export: %w", format, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	return nil
}
