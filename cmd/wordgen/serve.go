package main

import (
	"github.com/spf13/cobra"

	"github.com/ha1tch/fsm-wordgen/internal/explore"
	"github.com/ha1tch/fsm-wordgen/internal/server"
	"github.com/ha1tch/fsm-wordgen/pkg/generator"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Serve word generation over HTTP:

  GET  /health
  POST /v1/words?n=N&seed=S&trace=BOOL   body: automaton JSON
  POST /v1/check                         body: {"automaton": ..., "words": [...]}
  GET  /metrics                          Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = a.cfg.Server.Addr
			}
			return server.New(a.generatorOptions(), a.log).ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	return cmd
}

func newExploreCmd(a *app) *cobra.Command {
	var (
		batch int
		seed  uint64
	)
	cmd := &cobra.Command{
		Use:   "explore FILE",
		Short: "Browse generated words and their paths interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadAutomaton(args[0])
			if err != nil {
				return err
			}
			opts := a.generatorOptions()
			if cmd.Flags().Changed("seed") {
				opts.Seed = seed
			}
			s, err := explore.NewSession(m, batch, generator.WithOptions(opts))
			if err != nil {
				return err
			}
			return explore.Run(cmd.Context(), s)
		},
	}
	cmd.Flags().IntVarP(&batch, "count", "m", 10, "words generated per batch")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	return cmd
}
