package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasrand/pkg/vault"
)

// notesCommand creates the notes command, which lists candidate notes.
func (c *CLI) notesCommand() *cobra.Command {
	var (
		vaultDir string
		query    string
		tags     []string
		asJSON   bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "notes",
		Short: "List the notes add would choose from",
		Example: `  canvasrand notes --vault ~/notes
  canvasrand notes -q meeting --tag project/active`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			notes, err := c.scanVault(cmd.Context(), expandHome(root), noCache)
			if err != nil {
				return err
			}
			notes = vault.Filter{Query: query, Tags: tags}.Apply(notes)

			switch {
			case asJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(notes)
			case !isTerminal(os.Stdout):
				for _, n := range notes {
					fmt.Fprintln(cmd.OutOrStdout(), n.Path)
				}
				return nil
			case len(notes) == 0:
				printInfo("No notes found")
				return nil
			default:
				fmt.Println(renderNotes(notes))
				printDetail("%d %s", len(notes), plural(len(notes), "note", "notes"))
				return nil
			}
		},
	}

	f := cmd.Flags()
	f.StringVar(&vaultDir, "vault", "", "vault directory")
	f.StringVarP(&query, "query", "q", "", "only notes matching this search")
	f.StringArrayVar(&tags, "tag", nil, "only notes with this tag (repeatable)")
	f.BoolVar(&asJSON, "json", false, "print notes as JSON")
	f.BoolVar(&noCache, "no-cache", false, "do not use the metadata cache")

	return cmd
}
