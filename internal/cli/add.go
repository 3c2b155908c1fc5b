package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasrand/pkg/errors"
	"github.com/matzehuels/canvasrand/pkg/populate"
	"github.com/matzehuels/canvasrand/pkg/settings"
	"github.com/matzehuels/canvasrand/pkg/vault"
)

// User-facing notices, worded as in the insert modal they replace.
const (
	msgNoFiles         = "No files available."
	msgNoSearchResults = "No search results available"
	msgSearchShortfall = "Not enough search results available. Using all available options."
)

// addOptions holds the flags of the add command.
type addOptions struct {
	vault        string
	count        int
	perRow       int
	width        int
	height       int
	margin       int
	x, y         int
	below        bool
	color        string
	query        string
	tags         []string
	seed         uint64
	skipExisting bool
	dryRun       bool
	yes          bool
	noCache      bool
}

// addCommand creates the add command.
func (c *CLI) addCommand() *cobra.Command {
	var opts addOptions

	cmd := &cobra.Command{
		Use:   "add <file.canvas>",
		Short: "Add random notes to a canvas",
		Long: `Add randomly chosen notes from the vault to a canvas, laid out in a grid.

Notes come from the whole vault, or from a search when --query or --tag is
given (or when the source setting is "search"). Flags override settings.`,
		Example: `  canvasrand add Ideas.canvas
  canvasrand add Ideas.canvas -n 6 --per-row 2 --below
  canvasrand add Ideas.canvas -q meeting --tag project -y
  canvasrand add Ideas.canvas --seed 8121 --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAdd(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.vault, "vault", "", "vault directory (default: setting, then the canvas's vault)")
	f.IntVarP(&opts.count, "count", "n", 0, "number of notes to add")
	f.IntVar(&opts.perRow, "per-row", 0, "notes per row")
	f.IntVar(&opts.width, "width", 0, "note width")
	f.IntVar(&opts.height, "height", 0, "note height")
	f.IntVar(&opts.margin, "margin", 0, "space between notes")
	f.IntVar(&opts.x, "x", 0, "x of the first note")
	f.IntVar(&opts.y, "y", 0, "y of the first note")
	f.BoolVar(&opts.below, "below", false, "place the grid under the existing nodes")
	f.StringVar(&opts.color, "color", "", "node color: 1-6 or #rrggbb")
	f.StringVarP(&opts.query, "query", "q", "", "only notes matching this search")
	f.StringArrayVar(&opts.tags, "tag", nil, "only notes with this tag (repeatable)")
	f.Uint64Var(&opts.seed, "seed", 0, "random seed, to replay a selection")
	f.BoolVar(&opts.skipExisting, "skip-existing", false, "skip notes already on the canvas")
	f.BoolVar(&opts.dryRun, "dry-run", false, "show the placement without writing")
	f.BoolVarP(&opts.yes, "yes", "y", false, "do not ask for confirmation")
	f.BoolVar(&opts.noCache, "no-cache", false, "do not use the metadata cache")

	return cmd
}

// applyAddFlags overrides settings with the flags the user set.
func applyAddFlags(cmd *cobra.Command, s settings.Settings, opts addOptions) (settings.Settings, error) {
	changed := cmd.Flags().Changed
	set := func(name string, dst *int, v int) {
		if changed(name) {
			*dst = v
		}
	}
	set("count", &s.NumNotes, opts.count)
	set("per-row", &s.NotesPerRow, opts.perRow)
	set("width", &s.Width, opts.width)
	set("height", &s.Height, opts.height)
	set("margin", &s.Margin, opts.margin)
	set("x", &s.XAnchor, opts.x)
	set("y", &s.YAnchor, opts.y)
	if changed("color") {
		s.Color = opts.color
	}
	if changed("vault") {
		s.Vault = opts.vault
	}
	if opts.query != "" || len(opts.tags) > 0 {
		s.Source = settings.SourceSearch
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// candidates selects the pool for the configured source. An empty pool is
// not an error: the caller reports it the way the modal did.
func candidates(notes []vault.Note, s settings.Settings, filter vault.Filter) ([]string, error) {
	if s.Source != settings.SourceSearch {
		return vault.Paths(notes), nil
	}
	if filter.IsZero() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "source is search but no --query or --tag was given")
	}
	return vault.Paths(filter.Apply(notes)), nil
}

// poolNotice returns the warning to show for a pool, or "".
func poolNotice(source settings.Source, available, requested int) string {
	switch {
	case available == 0 && source == settings.SourceSearch:
		return msgNoSearchResults
	case available == 0:
		return msgNoFiles
	case available < requested && source == settings.SourceSearch:
		return msgSearchShortfall
	}
	return ""
}

// applyInsertModel copies the counts confirmed in the modal onto s.
func applyInsertModel(s settings.Settings, m InsertModel) settings.Settings {
	s.NumNotes, s.NotesPerRow = m.Count, m.PerRow
	return s
}

func describeSource(s settings.Settings, filter vault.Filter, n int) string {
	if s.Source != settings.SourceSearch {
		return fmt.Sprintf("vault (%d notes)", n)
	}
	var terms []string
	if q := strings.TrimSpace(filter.Query); q != "" {
		terms = append(terms, fmt.Sprintf("%q", q))
	}
	for _, t := range filter.Tags {
		terms = append(terms, "#"+strings.TrimPrefix(t, "#"))
	}
	return fmt.Sprintf("search %s (%d results)", strings.Join(terms, " "), n)
}

func (c *CLI) runAdd(cmd *cobra.Command, canvasPath string, opts addOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	if err := errors.ValidateCanvasName(canvasPath); err != nil {
		return err
	}
	base, _, err := c.loadSettings()
	if err != nil {
		return err
	}
	s, err := applyAddFlags(cmd, base, opts)
	if err != nil {
		return err
	}

	root := s.Vault
	if root == "" {
		root = findVaultRoot(filepath.Dir(canvasPath))
	}
	root = expandHome(root)

	notes, err := c.scanVault(ctx, root, opts.noCache)
	if err != nil {
		return err
	}

	filter := vault.Filter{Query: opts.query, Tags: opts.tags}
	pool, err := candidates(notes, s, filter)
	if err != nil {
		return err
	}
	if len(pool) == 0 {
		printWarning("%s", poolNotice(s.Source, 0, s.NumNotes))
		return nil
	}

	if !opts.yes && !opts.dryRun {
		if !interactive() {
			return errors.New(errors.ErrCodeInvalidInput, "not a terminal: pass --yes to add notes without confirmation")
		}
		m, err := runInsertModal(NewInsertModel(canvasPath, describeSource(s, filter, len(pool)), s.NumNotes, s.NotesPerRow))
		if err != nil {
			return err
		}
		if !m.Confirmed {
			printInfo("Cancelled")
			return nil
		}
		s = applyInsertModel(s, m)
	}

	// The count is final only after the modal.
	if msg := poolNotice(s.Source, len(pool), s.NumNotes); msg != "" {
		printWarning("%s", msg)
	}

	anchor := populate.AnchorOrigin
	if opts.below {
		anchor = populate.AnchorBelow
	}

	runner := populate.NewRunner(logger)
	runner.Confirm = func(_ context.Context, p populate.Plan) (bool, error) {
		if len(p.Selected) > 0 {
			fmt.Println(renderPlan(p))
		}
		return true, nil
	}

	res, err := runner.RunFile(ctx, canvasPath, populate.Request{
		Pool:         pool,
		Spec:         s.Spec(),
		Seed:         opts.seed,
		Color:        s.Color,
		SkipExisting: opts.skipExisting,
		Anchor:       anchor,
		DryRun:       opts.dryRun,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	reportAdd(canvasPath, res, opts.dryRun)
	return nil
}

// scanVault scans root, with a spinner when attached to a terminal.
func (c *CLI) scanVault(ctx context.Context, root string, noCache bool) ([]vault.Note, error) {
	scanner, err := c.newScanner(noCache)
	if err != nil {
		return nil, err
	}
	defer scanner.Cache.Close()

	prog := newProgress(loggerFromContext(ctx))
	var spin *Spinner
	if isTerminal(os.Stderr) {
		spin = newSpinner(ctx, os.Stderr, "Scanning "+root)
		spin.Start()
	}
	notes, err := scanner.Scan(ctx, root)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Scanned %d notes in %s", len(notes), root))
	return notes, nil
}

func reportAdd(canvasPath string, res *populate.Result, dryRun bool) {
	n := len(res.Added)
	switch {
	case dryRun:
		printInfo("Dry run: would add %d %s", n, plural(n, "note", "notes"))
	case n == 0:
		printInfo("Nothing to add")
		return
	default:
		printSuccess("Added %d %s", n, plural(n, "note", "notes"))
		printFile(canvasPath)
	}
	printNextStep("Replay this selection", fmt.Sprintf("%s add %s --seed %d", appName, canvasPath, res.Seed()))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// expandHome replaces a leading "~/" with the home directory.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
