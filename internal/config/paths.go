package config

import (
	"os"
	"path/filepath"
)

// HomeEnv overrides the default ~/.textframe directory.
const HomeEnv = "TEXTFRAME_HOME"

// Paths holds all the file system paths used by the application
type Paths struct {
	Home       string // ~/.textframe
	ConfigPath string // ~/.textframe/config.json
	LogDir     string // ~/.textframe/logs
}

// DefaultPaths returns the default paths configuration
func DefaultPaths() (*Paths, error) {
	home := os.Getenv(HomeEnv)
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		home = filepath.Join(userHome, ".textframe")
	}
	return PathsAt(home), nil
}

// PathsAt lays out the application paths under home.
func PathsAt(home string) *Paths {
	return &Paths{
		Home:       home,
		ConfigPath: filepath.Join(home, "config.json"),
		LogDir:     filepath.Join(home, "logs"),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.Home,
		p.LogDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return nil
}
