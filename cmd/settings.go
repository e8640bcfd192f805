package cmd

import (
	"fmt"
	"os"

	"github.com/grovetools/core/cli"
	"github.com/grovetools/iniedit/pkg/settings"
	"github.com/spf13/cobra"
)

func newSettingsCmd() *cobra.Command {
	cmd := cli.NewStandardCommand("settings", "Manage the editor settings file")
	cmd.AddCommand(newSettingsInitCmd())
	cmd.AddCommand(newSettingsSchemaCmd())
	return cmd
}

func newSettingsInitCmd() *cobra.Command {
	var force bool

	cmd := cli.NewStandardCommand("init", "Write a settings file with the default values")
	cmd.Long = `Writes the default settings to the --settings path, or to the given path.
The format follows the extension: .toml, .yml or .yaml.`
	cmd.Args = cobra.MaximumNArgs(1)
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing settings file")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		path := settingsPath
		if len(args) > 0 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := settings.Default().Save(path); err != nil {
			return err
		}
		cli.GetLogger(cmd).WithField("path", path).Debug("Settings written")
		fmt.Println(render(successStyle, "Wrote "+path))
		return nil
	}

	return cmd
}

func newSettingsSchemaCmd() *cobra.Command {
	var output string

	cmd := cli.NewStandardCommand("schema", "Print the JSON schema of the settings file")
	cmd.Args = cobra.NoArgs
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the schema to a file instead of stdout")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		data, err := settings.SchemaJSON()
		if err != nil {
			return err
		}
		if output == "" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("failed to write schema %s: %w", output, err)
		}
		fmt.Println(render(successStyle, "Wrote "+output))
		return nil
	}

	return cmd
}
