package cmd

import (
	"fmt"

	"github.com/grovetools/core/cli"
	"github.com/grovetools/iniedit/pkg/editor"
	"github.com/grovetools/iniedit/pkg/inifile"
	"github.com/grovetools/iniedit/pkg/settings"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootCmd = cli.NewStandardCommand("iniedit", "Edit INI files through a typed field set")

var (
	settingsPath string
	scannerFlag  = inifile.ScanTyped
	sniffFlag    bool
	backupDir    string
	dryRunFlag   bool
	readOnlyFlag bool
)

func init() {
	rootCmd.Long = `Reads an INI file into an ordered tree, exposes every property as a
self-describing form field and writes edited submissions back with a
backup of the previous content.`

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&settingsPath, "settings", "iniedit.toml", "Settings file (.toml, .yml or .yaml)")
	flags.Var(&scannerFlag, "scanner", "Value scanning mode: typed, normal or raw")
	flags.BoolVar(&sniffFlag, "sniff", false, "Treat 1/0 text values as checkboxes")
	flags.StringVar(&backupDir, "backup-dir", "", "Directory receiving a copy before every save")
	flags.BoolVar(&dryRunFlag, "dry-run", false, "Show what would be written without touching the disk")
	flags.BoolVar(&readOnlyFlag, "read-only", false, "Disable saving")

	rootCmd.AddCommand(newFieldsCmd())
	rootCmd.AddCommand(newApplyCmd())
	rootCmd.AddCommand(newNormalizeCmd())
	rootCmd.AddCommand(newBackupsCmd())
	rootCmd.AddCommand(newDocCmd())
	rootCmd.AddCommand(newSettingsCmd())
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// resolveOptions loads the settings file and applies the command line on
// top of it. A file argument overrides the settings' file.
func resolveOptions(cmd *cobra.Command, args []string) (editor.Options, error) {
	s, err := settings.Load(settingsPath, cli.GetLogger(cmd))
	if err != nil {
		return editor.Options{}, err
	}
	file := ""
	if len(args) > 0 {
		file = args[0]
	}
	return mergeOptions(s, file, cmd.Flags())
}

func mergeOptions(s *settings.Settings, file string, flags *pflag.FlagSet) (editor.Options, error) {
	opts, err := s.Options()
	if err != nil {
		return opts, fmt.Errorf("invalid settings: %w", err)
	}

	if file != "" {
		opts.File = file
	}
	if opts.File == "" {
		return opts, fmt.Errorf("no INI file given: pass one as argument or set 'file' in %s", settingsPath)
	}

	if flags.Changed("scanner") {
		opts.Scanner = scannerFlag
	}
	if flags.Changed("sniff") {
		opts.Sniff = sniffFlag
	}
	if flags.Changed("backup-dir") {
		opts.BackupDir = backupDir
	}
	if flags.Changed("dry-run") {
		opts.DryRun = dryRunFlag
	}
	if flags.Changed("read-only") && readOnlyFlag {
		opts.EnableEdit = false
	}
	return opts, nil
}

func newEditor(cmd *cobra.Command, args []string) (*editor.Editor, error) {
	opts, err := resolveOptions(cmd, args)
	if err != nil {
		return nil, err
	}
	return editor.New(opts, cli.GetLogger(cmd)), nil
}
