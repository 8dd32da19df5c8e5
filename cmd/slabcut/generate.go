package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/slabcut/internal/engine"
	"github.com/piwi3910/slabcut/internal/export"
	"github.com/piwi3910/slabcut/internal/model"
	"github.com/piwi3910/slabcut/internal/project"
)

type generateOptions struct {
	preset    string
	formats   string
	outDir    string
	noLibrary bool

	autoOrient    bool
	smartMaterial bool
	letters       bool
	byGroup       bool
	order         string
}

func newGenerateCmd(a *app) *cobra.Command {
	opts := &generateOptions{}
	defaults := model.DefaultSettings()

	cmd := &cobra.Command{
		Use:   "generate <scene.(json|yaml)>",
		Short: "Generate the cutlist of a scene and export it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := opts.resolveSettings(cmd, a)
			if err != nil {
				return err
			}
			return a.generate(cmd, args[0], settings, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.preset, "preset", "", "start from a named preset")
	f.StringVar(&opts.formats, "format", "", "comma separated formats: json, csv, xlsx, pdf, labels, dxf")
	f.StringVarP(&opts.outDir, "out", "o", "", "output directory (default: next to the scene)")
	f.BoolVar(&opts.noLibrary, "no-library", false, "ignore the material library")
	f.BoolVar(&opts.autoOrient, "auto-orient", defaults.AutoOrient, "sort part extents so length >= width >= thickness")
	f.BoolVar(&opts.smartMaterial, "smart-material", defaults.SmartMaterial, "resolve inherited and dominant child materials")
	f.BoolVar(&opts.letters, "letters", defaults.PartNumberWithLetters, "number parts A, B, C instead of 1, 2, 3")
	f.BoolVar(&opts.byGroup, "by-group", defaults.PartNumberSequenceByGroup, "restart part numbers in every group")
	f.StringVar(&opts.order, "order", defaults.PartOrderStrategy, "part order strategy, e.g. -thickness>-length>name")
	return cmd
}

// resolveSettings starts from the config defaults, then the preset, then
// the flags given on the command line.
func (o *generateOptions) resolveSettings(cmd *cobra.Command, a *app) (model.Settings, error) {
	settings := a.settings()
	if o.preset != "" {
		presets, err := a.presets()
		if err != nil {
			return settings, err
		}
		p, ok := model.FindPreset(presets, o.preset)
		if !ok {
			return settings, fmt.Errorf("unknown preset: %s", o.preset)
		}
		settings = p.Settings
	}

	f := cmd.Flags()
	if f.Changed("auto-orient") {
		settings.AutoOrient = o.autoOrient
	}
	if f.Changed("smart-material") {
		settings.SmartMaterial = o.smartMaterial
	}
	if f.Changed("letters") {
		settings.PartNumberWithLetters = o.letters
	}
	if f.Changed("by-group") {
		settings.PartNumberSequenceByGroup = o.byGroup
	}
	if f.Changed("order") {
		settings.PartOrderStrategy = o.order
	}
	return settings, nil
}

func (a *app) generate(cmd *cobra.Command, scenePath string, settings model.Settings, opts *generateOptions) error {
	formatList := opts.formats
	if formatList == "" {
		formatList = strings.Join(a.config.ExportFormats, ",")
	}
	formats, err := export.ParseFormats(formatList)
	if err != nil {
		return err
	}

	m, err := project.LoadScene(scenePath)
	if err != nil {
		return err
	}

	if !opts.noLibrary {
		lib, err := a.library()
		if err != nil {
			return err
		}
		if applied := project.ApplyMaterialLibrary(m, lib); len(applied) > 0 {
			a.logger.Info("applied material library", zap.Strings("materials", applied))
		}
	}

	report := engine.New(settings, a.logger, a.metrics).Generate(m)

	outDir := opts.outDir
	if outDir == "" {
		outDir = filepath.Dir(scenePath)
	}
	written, err := export.Write(outDir, export.BaseName(scenePath), report, formats)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, e := range report.Errors {
		fmt.Fprintln(out, "error:", e)
	}
	for _, w := range report.Warnings {
		fmt.Fprintln(out, "warning:", w)
	}
	fmt.Fprintf(out, "%d groups, %d parts\n", len(report.Groups), report.InstanceCount())
	for _, path := range written {
		fmt.Fprintln(out, "wrote", path)
	}

	if abs, err := filepath.Abs(scenePath); err == nil {
		a.config.AddRecentScene(abs, maxRecentScenes)
		if err := project.SaveAppConfig(a.configPath, a.config); err != nil {
			a.logger.Warn("failed to save recent scenes", zap.Error(err))
		}
	}
	return nil
}
