package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	LoadSDK Phase = iota
	Configure
	Authorize
	RecoverToken
	FetchSummary
	FetchHistory
	Normalize
)

func (p Phase) String() string {
	switch p {
	case LoadSDK:
		return "load_sdk"
	case Configure:
		return "configure"
	case Authorize:
		return "authorize"
	case RecoverToken:
		return "recover_token"
	case FetchSummary:
		return "fetch_summary"
	case FetchHistory:
		return "fetch_history"
	case Normalize:
		return "normalize"
	default:
		return ""
	}
}

func configureUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Configure,
		Step:    step,
		Total:   total,
		Message: "Configuring MusicKit...",
	}
}

func authorizeUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Authorize,
		Step:    step,
		Total:   total,
		Message: "Requesting user authorization...",
	}
}

func recoveredUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RecoverToken,
		Step:    step,
		Total:   total,
		Message: "Authorization recovered via token read",
	}
}

func fetchSummaryUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSummary,
		Step:    step,
		Total:   total,
		Message: "Fetching replay summary...",
	}
}

func fetchHistoryUpdate(step, total, fetched int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchHistory,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching listening history (%d tracks)...", fetched),
	}
}

func normalizeUpdate(step, total, items int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Normalize,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Normalizing %d records...", items),
	}
}
