package cmd

import (
	"fmt"

	"github.com/grovetools/core/cli"
	"github.com/grovetools/iniedit/pkg/editor"
	"github.com/grovetools/iniedit/pkg/fieldset"
	"github.com/grovetools/iniedit/pkg/submission"
	"github.com/spf13/cobra"
)

func newApplyCmd() *cobra.Command {
	var submissionPath string

	cmd := cli.NewStandardCommand("apply", "Write a submission back to an INI file")
	cmd.Long = `Serializes a submission and replaces the INI file with the result. The
previous content is copied into the backup directory first.

The submission is either form encoded (as posted by a browser) or a YAML
list of {name, value} pairs as printed by 'iniedit fields --yaml'.`
	cmd.Example = `  iniedit apply app.ini --submission edit.yml
  iniedit apply app.ini --submission post.txt --dry-run`
	cmd.Args = cobra.MaximumNArgs(1)
	cmd.Flags().StringVarP(&submissionPath, "submission", "s", "", "Submission file (.yml/.yaml or form encoded)")
	_ = cmd.MarkFlagRequired("submission")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		e, err := newEditor(cmd, args)
		if err != nil {
			return err
		}
		sub, err := submission.LoadFile(submissionPath)
		if err != nil {
			return err
		}
		return save(e, sub)
	}

	return cmd
}

func newNormalizeCmd() *cobra.Command {
	cmd := cli.NewStandardCommand("normalize", "Rewrite an INI file in canonical form")
	cmd.Long = `Loads the INI file and saves it unedited. Values are re-quoted, lists are
gathered and a blank line separates properties. The parsed content does
not change.`
	cmd.Args = cobra.MaximumNArgs(1)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		e, err := newEditor(cmd, args)
		if err != nil {
			return err
		}
		view, err := e.Load()
		if err != nil {
			return fmt.Errorf("%s: %w", e.Status(err), err)
		}
		return save(e, fieldset.Submission(view.Fields))
	}

	return cmd
}

func save(e *editor.Editor, sub submission.Submission) error {
	res, err := e.Save(sub)
	if err != nil {
		fmt.Println(render(errorStyle, e.Status(err)))
		return err
	}

	if res.DryRun {
		fmt.Println(render(headerStyle, "[dry-run] "+res.File))
		fmt.Print(res.Content)
		for _, a := range e.Actions() {
			fmt.Println(render(faintStyle, fmt.Sprintf("  would %s: %s", a.Type, a.Path)))
		}
		return nil
	}

	fmt.Println(render(successStyle, e.Status(nil)))
	fmt.Println(render(faintStyle, "Backup: "+res.Backup))
	return nil
}
