package formatter

import (
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/replay/internal/models"
	tu "github.com/desertthunder/replay/internal/testing"
)

func testSummary() *models.ReplaySummary {
	return &models.ReplaySummary{
		Year: "year-2025",
		Artists: []models.Artist{
			{Rank: 1, Name: "Mitski"},
			{Rank: 2, Name: "Japanese Breakfast"},
		},
		Albums: []models.Album{
			{Rank: 1, Title: "Laurel Hell", Artist: "Mitski"},
		},
		Songs: []models.Song{
			{Rank: 1, Title: "Working for the Knife", Artist: "Mitski", Album: "Laurel Hell"},
			{Rank: 2, Title: "Be Sweet", Artist: "Japanese Breakfast", Album: models.Unknown},
		},
		RecentTracks: []models.RecentTrack{
			{Position: 1, Title: "Paprika", Artist: "Japanese Breakfast", Album: "Jubilee"},
		},
	}
}

func TestExportToCSV(t *testing.T) {
	data, err := ExportToCSV(testSummary())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV: %v", err)
	}

	// header + 2 artists + 1 album + 2 songs + 1 recent
	if len(records) != 7 {
		t.Fatalf("expected 7 records, got %d", len(records))
	}
	if records[0][0] != "Section" {
		t.Errorf("expected header row, got %v", records[0])
	}
	if records[1][0] != "artist" || records[1][3] != "Mitski" {
		t.Errorf("unexpected artist row %v", records[1])
	}
	if records[4][0] != "song" || records[4][4] != "Laurel Hell" {
		t.Errorf("unexpected song row %v", records[4])
	}
	if records[6][0] != "recent" || records[6][1] != "1" {
		t.Errorf("unexpected recent row %v", records[6])
	}
}

func TestExportToMarkdown(t *testing.T) {
	data, err := ExportToMarkdown(testSummary())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	output := string(data)

	for _, want := range []string{
		"# Apple Music Replay — year-2025",
		"## Top Artists",
		"1. Mitski",
		"## Top Albums",
		"1. Mitski - Laurel Hell",
		"1. Mitski - Working for the Knife (Laurel Hell)",
		"## Recently Played (1 tracks)",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}

	// Unknown album is omitted rather than printed as a sentinel
	if strings.Contains(output, "(Unknown)") {
		t.Error("expected unknown album to be omitted")
	}
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText(testSummary())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	output := string(data)

	if !strings.Contains(output, "Replay: year-2025") {
		t.Errorf("expected year line, got %q", output)
	}
	if !strings.Contains(output, "Artists: 2  Albums: 1  Songs: 2  Recent: 1") {
		t.Errorf("expected counts line, got %q", output)
	}
}

func TestWriteExport(t *testing.T) {
	t.Run("writes the requested format", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "replay.csv")

		if err := WriteExport(testSummary(), "csv", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tu.AssertFileExists(t, path)
		if content := tu.MustReadFile(t, path); !strings.HasPrefix(content, "Section,Rank,Title,Artist,Album") {
			t.Errorf("expected CSV content, got %q", content)
		}
	})

	t.Run("unknown format falls back to JSON", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "replay.out")

		if err := WriteExport(testSummary(), "yaml", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var decoded models.ReplaySummary
		if err := json.Unmarshal([]byte(tu.MustReadFile(t, path)), &decoded); err != nil {
			t.Fatalf("expected valid JSON fallback, got %v", err)
		}
		if decoded.Year != "year-2025" {
			t.Errorf("expected year-2025, got %q", decoded.Year)
		}
	})
}
