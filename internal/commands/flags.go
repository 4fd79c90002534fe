package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/flare/internal/core/config"
	"github.com/colonyops/flare/internal/core/logging"
	"github.com/colonyops/flare/pkg/logutils"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	logCloser func()
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "flare", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/flare/flare.log
// On Linux: $XDG_STATE_HOME/flare/flare.log (defaults to ~/.local/state/flare/flare.log)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "flare", "flare.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "flare", "flare.log")
	}

	return filepath.Join(home, ".local", "state", "flare", "flare.log")
}

// SetupLogger installs the global logger. Without --log-file logs go to
// stderr.
func (f *Flags) SetupLogger() error {
	return f.setupLogger(f.LogFile)
}

// LogToFile moves logging off the terminal for commands that take over the
// screen. An explicit --log-file is kept.
func (f *Flags) LogToFile() error {
	if f.LogFile != "" {
		return nil
	}
	return f.setupLogger(DefaultLogFile())
}

func (f *Flags) setupLogger(file string) error {
	logger, closer, err := logutils.New(f.LogLevel, file)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}

	f.CloseLog()
	log.Logger = logging.WithContextFields(logger)
	f.logCloser = closer
	return nil
}

// CloseLog releases the log file, if any.
func (f *Flags) CloseLog() {
	if f.logCloser != nil {
		f.logCloser()
		f.logCloser = nil
	}
}
