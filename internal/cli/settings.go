package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/canvasrand/pkg/settings"
)

// settingsCommand creates the settings command.
func (c *CLI) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change default settings",
	}

	cmd.AddCommand(c.settingsShowCommand())
	cmd.AddCommand(c.settingsSetCommand())
	cmd.AddCommand(c.settingsPathCommand())
	cmd.AddCommand(c.settingsResetCommand())

	return cmd
}

func (c *CLI) settingsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, path, err := c.loadSettings()
			if err != nil {
				return err
			}
			for _, key := range settings.Keys() {
				v, _ := s.Get(key)
				if v == "" {
					v = StyleDim.Render("(unset)")
				}
				printKeyValue(key, v)
			}
			printDetail("File: %s", path)
			return nil
		},
	}
}

func (c *CLI) settingsSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Example: `  canvasrand settings set num_notes 8
  canvasrand settings set source search
  canvasrand settings set vault ~/notes`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: settings.Keys(),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, path, err := c.loadSettings()
			if err != nil {
				return err
			}
			if err := s.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := settings.Save(path, s); err != nil {
				return fmt.Errorf("save settings: %w", err)
			}
			v, _ := s.Get(args[0])
			printSuccess("%s = %s", args[0], v)
			return nil
		},
	}
}

func (c *CLI) settingsPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the settings file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.resolveSettingsPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func (c *CLI) settingsResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.resolveSettingsPath()
			if err != nil {
				return err
			}
			if err := settings.Save(path, settings.Default()); err != nil {
				return fmt.Errorf("save settings: %w", err)
			}
			printSuccess("Settings reset")
			printFile(path)
			return nil
		},
	}
}
