// Package cli implements the canvasrand command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasrand/pkg/buildinfo"
	"github.com/matzehuels/canvasrand/pkg/cache"
	"github.com/matzehuels/canvasrand/pkg/settings"
	"github.com/matzehuels/canvasrand/pkg/vault"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "canvasrand"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// settingsPath overrides the settings file location (tests, --config).
	settingsPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Drop random notes from a vault onto a canvas",
		Long: `canvasrand picks notes at random from a markdown vault and places them
on a JSON Canvas document as a grid of file cards.`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.settingsPath, "config", "", "settings file (default $XDG_CONFIG_HOME/canvasrand/settings.toml)")

	root.AddCommand(c.addCommand())
	root.AddCommand(c.notesCommand())
	root.AddCommand(c.settingsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Factories
// =============================================================================

// newScanner creates a vault scanner for CLI use.
func (c *CLI) newScanner(noCache bool) (*vault.Scanner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return vault.NewScanner(cache, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// loadSettings reads the settings file, falling back to defaults when it
// does not exist.
func (c *CLI) loadSettings() (settings.Settings, string, error) {
	path, err := c.resolveSettingsPath()
	if err != nil {
		return settings.Settings{}, "", err
	}
	s, err := settings.Load(path)
	return s, path, err
}

func (c *CLI) resolveSettingsPath() (string, error) {
	if c.settingsPath != "" {
		return c.settingsPath, nil
	}
	return settings.Path()
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/canvasrand/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// findVaultRoot walks up from dir looking for an .obsidian directory and
// returns dir itself when there is none.
func findVaultRoot(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	for d := abs; ; {
		if fi, err := os.Stat(filepath.Join(d, ".obsidian")); err == nil && fi.IsDir() {
			return d
		}
		parent := filepath.Dir(d)
		if parent == d {
			return abs
		}
		d = parent
	}
}
