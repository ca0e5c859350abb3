package main

import "github.com/desertthunder/replay/internal/shared"

// SetupConfig creates a config file at the given path.
func (r *Runner) SetupConfig(path string) error {
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Infof("created config file at %s", path)
	return r.writePlainln("Created %s. Add your MusicKit developer token under [credentials.musickit].", path)
}
