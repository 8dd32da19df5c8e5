package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/slabcut/internal/logging"
	"github.com/piwi3910/slabcut/internal/metrics"
	"github.com/piwi3910/slabcut/internal/model"
	"github.com/piwi3910/slabcut/internal/project"
)

// maxRecentScenes bounds the recent scene list kept in the config.
const maxRecentScenes = 10

// app holds what every command shares once the root command has run.
type app struct {
	configPath    string
	materialsPath string
	presetsPath   string
	logLevel      string
	logFormat     string

	config  model.AppConfig
	logger  *zap.Logger
	metrics *metrics.Recorder
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "slabcut",
		Short:         "Generate cutlists from 3D furniture models",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", project.DefaultConfigPath(), "path of the config file")
	flags.StringVar(&a.materialsPath, "materials", project.DefaultMaterialsPath(), "path of the material library")
	flags.StringVar(&a.presetsPath, "presets", project.DefaultPresetsPath(), "path of the custom presets")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&a.logFormat, "log-format", "", "log format (console, json)")

	root.AddCommand(
		newGenerateCmd(a),
		newUpdatePartCmd(a),
		newUpdateGroupCmd(a),
		newMaterialsCmd(a),
		newPresetsCmd(a),
		newBackupCmd(a),
		newServeCmd(a),
	)
	return root
}

// setup loads the config, applies the environment and flag overrides, and
// builds the logger.
func (a *app) setup() error {
	config, err := project.LoadAppConfig(a.configPath)
	if err != nil {
		return err
	}
	project.ApplyEnv(&config)
	if a.logLevel != "" {
		config.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		config.LogFormat = a.logFormat
	}
	a.config = config

	logger, err := logging.New(logging.Config{
		Level:      config.LogLevel,
		Format:     config.LogFormat,
		OutputPath: "stderr",
	})
	if err != nil {
		return err
	}
	a.logger = logger
	a.metrics = metrics.New()
	return nil
}

// settings returns the generation defaults from the config.
func (a *app) settings() model.Settings {
	s := model.DefaultSettings()
	a.config.ApplyToSettings(&s)
	return s
}

func (a *app) library() (model.MaterialLibrary, error) {
	return project.LoadMaterialLibrary(a.materialsPath)
}

func (a *app) presets() ([]model.Preset, error) {
	return project.AllPresets(a.presetsPath)
}
