package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/grovetools/core/cli"
	"github.com/grovetools/iniedit/pkg/editor"
	"github.com/spf13/cobra"
)

func newBackupsCmd() *cobra.Command {
	cmd := cli.NewStandardCommand("backups", "List backups of an INI file")
	cmd.Args = cobra.MaximumNArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		e, err := newEditor(cmd, args)
		if err != nil {
			return err
		}
		backups, err := e.Backups()
		if err != nil {
			return err
		}

		if cli.GetOptions(cmd).JSONOutput {
			jsonData, err := json.MarshalIndent(backups, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		}

		if len(backups) == 0 {
			fmt.Printf("No backups of %s in %s\n", e.Options().File, e.Options().BackupDir)
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tPATH")
		fmt.Fprintln(w, "----\t----")
		for _, b := range backups {
			fmt.Fprintf(w, "%s\t%s\n", b.Time.Format(time.DateTime), b.Path)
		}
		return w.Flush()
	}

	return cmd
}

func newDocCmd() *cobra.Command {
	cmd := cli.NewStandardCommand("doc", "Show the documentation file configured for the editor")
	cmd.Args = cobra.MaximumNArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		e, err := newEditor(cmd, args)
		if err != nil {
			return err
		}
		lines, err := e.Documentation()
		if err != nil {
			return err
		}
		if lines == nil {
			fmt.Println(render(faintStyle, "No documentation configured (set doc_path in the settings file)"))
			return nil
		}

		for _, l := range lines {
			switch l.Kind {
			case editor.DocComment:
				fmt.Println(render(commentStyle, l.Text))
			case editor.DocSection:
				fmt.Println(render(sectionStyle, l.Text))
			case editor.DocProperty:
				fmt.Println(render(keyStyle, l.Text))
			default:
				fmt.Println(l.Text)
			}
		}
		return nil
	}

	return cmd
}
