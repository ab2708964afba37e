package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ha1tch/fsm-wordgen/internal/config"
	"github.com/ha1tch/fsm-wordgen/internal/logging"
	"github.com/ha1tch/fsm-wordgen/pkg/automaton"
	"github.com/ha1tch/fsm-wordgen/pkg/automatonfile"
	"github.com/ha1tch/fsm-wordgen/pkg/generator"
)

// app carries the settings shared by all subcommands.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "wordgen",
		Short: "Generate random words accepted by an automaton",
		Long: `wordgen samples words from the language of a finite-state automaton,
Mealy/Moore transducer or pushdown automaton by walking its transition graph
backwards from a final state to the initial state.

Automata are read from JSON, YAML or JFLAP (.jff) files.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default $HOME/.wordgen.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: text or json")

	root.AddCommand(
		newWordsCmd(a),
		newCheckCmd(a),
		newInfoCmd(a),
		newValidateCmd(a),
		newDotCmd(a),
		newRenderCmd(a),
		newConvertCmd(a),
		newExploreCmd(a),
		newServeCmd(a),
	)
	return root
}

// setup loads the config file and builds the logger. Flags override the file.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	path := a.configPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logging.NewWriter(cmd.ErrOrStderr(), level, cfg.Log.Format)
	return nil
}

// generatorOptions returns the configured generator options with the
// logger attached.
func (a *app) generatorOptions() generator.Options {
	o := a.cfg.Generate.Options()
	o.Logger = a.log
	return o
}

func loadAutomaton(path string) (automaton.Automaton, error) {
	m, err := automatonfile.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return m, nil
}

// showWord prints the empty word as lambda.
func showWord(w string) string {
	if w == "" {
		return automatonfile.Lambda
	}
	return w
}
