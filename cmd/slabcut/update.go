package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/slabcut/internal/engine"
	"github.com/piwi3910/slabcut/internal/model"
	"github.com/piwi3910/slabcut/internal/project"
	"github.com/piwi3910/slabcut/internal/scene"
)

func newUpdatePartCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "update-part <scene> <update.json>",
		Short: "Rename a part and repaint its instances",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var u model.PartUpdate
			if err := readJSON(args[1], &u); err != nil {
				return err
			}
			return a.update(cmd, args[0], out, func(e *engine.Engine, m *scene.Model) model.UpdateResult {
				return e.UpdatePart(m, u)
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the updated scene here instead of in place")
	return cmd
}

func newUpdateGroupCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "update-group <scene> <update.json>",
		Short: "Repaint every part of a group with one material",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var u model.GroupUpdate
			if err := readJSON(args[1], &u); err != nil {
				return err
			}
			return a.update(cmd, args[0], out, func(e *engine.Engine, m *scene.Model) model.UpdateResult {
				return e.UpdateGroup(m, u)
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the updated scene here instead of in place")
	return cmd
}

// update loads a scene, runs one command on it and writes it back when
// something changed.
func (a *app) update(cmd *cobra.Command, scenePath, out string, run func(*engine.Engine, *scene.Model) model.UpdateResult) error {
	m, err := project.LoadScene(scenePath)
	if err != nil {
		return err
	}

	result := run(engine.New(a.settings(), a.logger, a.metrics), m)

	if out == "" {
		out = scenePath
	}
	if result.Renamed || result.Updated > 0 || out != scenePath {
		if err := project.SaveScene(out, m); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}
