package main

import (
	"errors"
	"fmt"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/ha1tch/fsm-wordgen/pkg/automaton"
)

var errRejected = errors.New("some words were rejected")

func newCheckCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "check FILE WORD...",
		Short: "Check whether words are accepted",
		Long: `Simulate the automaton on each word. Transducers print the output they
produce. Pass "" for the empty word. Exits non-zero if any word is rejected.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadAutomaton(args[0])
			if err != nil {
				return err
			}

			out := termenv.NewOutput(cmd.OutOrStdout())
			accepted := out.String("accepted").Foreground(out.Color("2"))
			rejected := out.String("rejected").Foreground(out.Color("1")).Bold()

			failed := 0
			for _, w := range args[1:] {
				res, err := automaton.Run(m, w, limit)
				if err != nil {
					return fmt.Errorf("%s: %w", showWord(w), err)
				}
				if !res.Accepted {
					failed++
					fmt.Fprintf(out, "%s: %s\n", showWord(w), rejected)
					continue
				}
				if _, ok := m.(*automaton.Transducer); ok {
					fmt.Fprintf(out, "%s: %s -> %s\n", showWord(w), accepted, showWord(res.Output))
				} else {
					fmt.Fprintf(out, "%s: %s\n", showWord(w), accepted)
				}
			}
			a.log.Debug("Check finished", "words", len(args)-1, "rejected", failed)
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", errRejected, failed, len(args)-1)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", automaton.DefaultSearchLimit, "maximum configurations explored per word")
	return cmd
}
