package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/slabcut/internal/importer"
	"github.com/piwi3910/slabcut/internal/model"
	"github.com/piwi3910/slabcut/internal/project"
)

func newMaterialsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "materials",
		Short: "Manage the material library",
	}
	cmd.AddCommand(newMaterialsListCmd(a), newMaterialsImportCmd(a), newMaterialsRemoveCmd(a))
	return cmd
}

func newMaterialsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the materials of the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := a.library()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tDISPLAY NAME\tTYPE\tL+\tW+\tT+\tSTD THICKNESSES")
			for _, m := range lib.Materials {
				attrs := m.Attributes
				fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%g\t%g\t%s\n",
					m.Name, m.DisplayName, attrs.Type, attrs.LengthIncrease, attrs.WidthIncrease, attrs.ThicknessIncrease,
					thicknessList(attrs.StdThicknesses))
			}
			return tw.Flush()
		},
	}
}

func newMaterialsImportCmd(a *app) *cobra.Command {
	var replace bool
	cmd := &cobra.Command{
		Use:   "import <file.(csv|xlsx|json)>",
		Short: "Import stock tables into the material library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := a.library()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			path := args[0]

			var imported model.MaterialLibrary
			if strings.EqualFold(filepath.Ext(path), ".json") {
				imported, err = project.LoadMaterialLibrary(path)
				if err != nil {
					return err
				}
			} else {
				result := importer.ImportFile(path)
				for _, w := range result.Warnings {
					fmt.Fprintln(out, "warning:", w)
				}
				for _, e := range result.Errors {
					fmt.Fprintln(out, "error:", e)
				}
				if len(result.Materials) == 0 {
					return fmt.Errorf("no materials imported from %s", path)
				}
				imported = result.Library()
			}

			var changed int
			if replace {
				for _, m := range imported.Materials {
					lib.Upsert(m)
				}
				changed = len(imported.Materials)
			} else {
				changed = lib.Merge(imported)
			}
			if err := project.SaveMaterialLibrary(a.materialsPath, lib); err != nil {
				return err
			}
			a.logger.Info("imported materials", zap.String("file", path), zap.Int("changed", changed))
			fmt.Fprintf(out, "%d materials imported, library has %d\n", changed, len(lib.Materials))
			return nil
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "replace library entries with the same name")
	return cmd
}

func newMaterialsRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a material from the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := a.library()
			if err != nil {
				return err
			}
			if !lib.Remove(args[0]) {
				return fmt.Errorf("material %q not found", args[0])
			}
			return project.SaveMaterialLibrary(a.materialsPath, lib)
		},
	}
}

func thicknessList(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return strings.Join(parts, " ")
}
