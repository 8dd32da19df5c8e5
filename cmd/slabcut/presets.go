package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/slabcut/internal/model"
	"github.com/piwi3910/slabcut/internal/project"
)

func newPresetsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Manage generation presets",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List built-in and custom presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := a.presets()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tKIND\tDESCRIPTION")
			for _, p := range presets {
				kind := "custom"
				if p.IsBuiltIn {
					kind = "built-in"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, kind, p.Description)
			}
			return tw.Flush()
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export <name> <file.json>",
		Short: "Write a preset to a file for sharing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets, err := a.presets()
			if err != nil {
				return err
			}
			p, ok := model.FindPreset(presets, args[0])
			if !ok {
				return fmt.Errorf("unknown preset: %s", args[0])
			}
			return project.ExportPreset(args[1], p)
		},
	}

	importCmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Add a preset from a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.ImportPreset(args[0])
			if err != nil {
				return err
			}
			if _, builtIn := model.FindPreset(model.BuiltInPresets(), p.Name); builtIn {
				return fmt.Errorf("preset %q is built in", p.Name)
			}
			custom, err := project.LoadCustomPresets(a.presetsPath)
			if err != nil {
				return err
			}
			replaced := false
			for i := range custom {
				if custom[i].Name == p.Name {
					custom[i] = p
					replaced = true
				}
			}
			if !replaced {
				custom = append(custom, p)
			}
			return project.SaveCustomPresets(a.presetsPath, custom)
		},
	}

	cmd.AddCommand(list, exportCmd, importCmd)
	return cmd
}
