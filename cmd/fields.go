package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/grovetools/core/cli"
	"github.com/grovetools/iniedit/pkg/fieldset"
	"github.com/spf13/cobra"
)

type fieldInfo struct {
	Section  string `json:"section"`
	Property string `json:"property"`
	Kind     string `json:"kind"`
	List     bool   `json:"list"`
	Key      string `json:"key,omitempty"`
	Name     string `json:"name"`
	Value    string `json:"value"`
}

func newFieldsCmd() *cobra.Command {
	var asYAML bool

	cmd := cli.NewStandardCommand("fields", "Show the form fields of an INI file")
	cmd.Long = `Parses the INI file and prints one field per scalar property and per
list entry, with the encoded field name a form would post.

With --yaml the unedited submission is printed instead. Edit its values
and pass it to 'iniedit apply --submission'.`
	cmd.Example = `  # Table of fields
  iniedit fields app.ini

  # Editable submission
  iniedit fields app.ini --yaml > edit.yml`
	cmd.Args = cobra.MaximumNArgs(1)
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the unedited submission as YAML")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		e, err := newEditor(cmd, args)
		if err != nil {
			return err
		}
		view, err := e.Load()
		if err != nil {
			return fmt.Errorf("%s: %w", e.Status(err), err)
		}

		if asYAML {
			data, err := fieldset.Submission(view.Fields).YAML()
			if err != nil {
				return err
			}
			fmt.Print(string(data))
			return nil
		}

		infos := make([]fieldInfo, 0, len(view.Fields))
		for _, f := range view.Fields {
			infos = append(infos, fieldInfo{
				Section:  f.Identity.Section,
				Property: f.Identity.Property,
				Kind:     f.Identity.Kind.String(),
				List:     f.Identity.List,
				Key:      f.Identity.ArrayKey,
				Name:     f.Name,
				Value:    f.Display,
			})
		}

		if cli.GetOptions(cmd).JSONOutput {
			jsonData, err := json.MarshalIndent(infos, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Println(string(jsonData))
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SECTION\tPROPERTY\tKIND\tVALUE\tNAME")
		fmt.Fprintln(w, "-------\t--------\t----\t-----\t----")
		for _, info := range infos {
			property := info.Property
			if info.List {
				property += "[" + info.Key + "]"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", info.Section, property, info.Kind, info.Value, info.Name)
		}
		w.Flush()

		if !view.Writable {
			fmt.Println(render(warningStyle, "\nFile is not writable"))
		}
		return nil
	}

	return cmd
}
