package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/replay/internal/formatter"
	"github.com/desertthunder/replay/internal/services"
	"github.com/desertthunder/replay/internal/shared"
	"github.com/urfave/cli/v3"
)

// ReplaySummary fetches and renders the full replay dataset.
func (r *Runner) ReplaySummary(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureAuthorized(ctx, cmd); err != nil {
		return err
	}

	summary, err := r.engine.GetReplayData(ctx, nil)
	if err != nil {
		return err
	}

	if path := cmd.String("output"); path != "" {
		format := cmd.String("format")
		if format == "" {
			format = "json"
		}
		if err := formatter.WriteExport(summary, format, path); err != nil {
			return err
		}
		return r.writePlainln("Wrote %s export to %s", format, path)
	}

	if cmd.Bool("json") {
		return r.writeJSON(summary, cmd.Bool("pretty"))
	}

	switch format := cmd.String("format"); format {
	case "", "text":
		text, err := formatter.ExportToText(summary)
		if err != nil {
			return err
		}
		return r.writePlain("%s", text)
	case "csv":
		data, err := formatter.ExportToCSV(summary)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	case "markdown", "md":
		data, err := formatter.ExportToMarkdown(summary)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	case "json":
		return r.writeJSON(summary, cmd.Bool("pretty"))
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// ReplayHistory fetches only the recently played tracks.
func (r *Runner) ReplayHistory(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureAuthorized(ctx, cmd); err != nil {
		return err
	}

	maxItems := r.config.Replay.MaxItems
	if limit := cmd.Int("limit"); limit > 0 {
		maxItems = limit
	}

	resources, err := r.catalog.FetchAllRecentTracks(ctx, r.config.Replay.PageSize, maxItems)
	if err != nil {
		return err
	}

	tracks := services.NormalizeRecentTracks(resources)

	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}

	if err := r.writePlainln("Recently Played (%d tracks)", len(tracks)); err != nil {
		return err
	}
	for _, track := range tracks {
		if err := r.writePlain("%3d. %s — %s (%s)\n", track.Position, track.Title, track.Artist, track.Album); err != nil {
			return err
		}
	}

	return nil
}
