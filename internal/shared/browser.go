package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

var osName = func() string { return runtime.GOOS }

// OpenBrowser launches the default browser at the given URL, used to
// present the Apple Music consent page.
//
// The command is started, not waited on; consent completion is observed
// through the callback server, never the browser process.
func OpenBrowser(url string) error {
	var name string
	var args []string

	switch os := osName(); os {
	case "darwin":
		name = "open"
		args = []string{url}
	case "linux":
		name = "xdg-open"
		args = []string{url}
	case "windows":
		name = "cmd"
		args = []string{"/c", "start", url}
	default:
		return fmt.Errorf("%w: cannot open a browser on %s", ErrNotImplemented, os)
	}

	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	return nil
}
