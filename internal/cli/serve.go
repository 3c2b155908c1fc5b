package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasrand/internal/server"
	"github.com/matzehuels/canvasrand/pkg/vault"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		vaultDir string
		debounce time.Duration
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the vault over HTTP for editor integrations",
		Long: `Serve notes and canvas population over a local HTTP API.

Routes:
  GET  /healthz
  GET  /api/notes?q=&tag=
  POST /api/canvas/populate

The note index follows changes to the vault until the server stops.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, _, err := c.loadSettings()
			if err != nil {
				return err
			}
			root := vaultDir
			if root == "" {
				root = s.Vault
			}
			if root == "" {
				root = findVaultRoot(".")
			}

			cache, err := newCache(noCache)
			if err != nil {
				return err
			}
			defer cache.Close()

			srv, err := server.New(ctx, server.Config{
				Addr:     addr,
				Vault:    expandHome(root),
				Settings: s,
				Cache:    cache,
				Logger:   loggerFromContext(ctx),
				Debounce: debounce,
			})
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}

	f := cmd.Flags()
	f.StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	f.StringVar(&vaultDir, "vault", "", "vault directory")
	f.DurationVar(&debounce, "debounce", vault.DefaultDebounce, "wait this long after file changes before reindexing")
	f.BoolVar(&noCache, "no-cache", false, "do not use the metadata cache")

	return cmd
}
