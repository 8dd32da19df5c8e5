package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/slabcut/internal/project"
)

func newBackupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or restore config, materials and presets",
	}

	exportCmd := &cobra.Command{
		Use:   "export <file.json>",
		Short: "Write config, material library and custom presets to one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := a.library()
			if err != nil {
				return err
			}
			presets, err := a.presets()
			if err != nil {
				return err
			}
			return project.ExportAllData(args[0], a.config, lib, presets)
		},
	}

	importCmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Restore a backup, replacing the current files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if err := project.SaveAppConfig(a.configPath, data.Config); err != nil {
				return err
			}
			if err := project.SaveMaterialLibrary(a.materialsPath, data.Materials); err != nil {
				return err
			}
			if err := project.SaveCustomPresets(a.presetsPath, data.Presets); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored %d materials and %d presets\n", len(data.Materials.Materials), len(data.Presets))
			return nil
		},
	}

	cmd.AddCommand(exportCmd, importCmd)
	return cmd
}
