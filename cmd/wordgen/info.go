package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ha1tch/fsm-wordgen/pkg/automaton"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Show automaton information",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadAutomaton(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			h := m.Base()

			fmt.Fprintf(out, "Type:        %s\n", m.Kind())
			if h.Name != "" {
				fmt.Fprintf(out, "Name:        %s\n", h.Name)
			}
			if h.Description != "" {
				fmt.Fprintf(out, "Description: %s\n", h.Description)
			}
			fmt.Fprintf(out, "States:      %d\n", len(h.States))
			fmt.Fprintf(out, "Transitions: %d\n", m.TransitionCount())
			fmt.Fprintf(out, "Initial:     %s\n", h.StateLabel(h.Initial))
			if acc := acceptingLabels(m); len(acc) > 0 {
				fmt.Fprintf(out, "Accepting:   %s\n", strings.Join(acc, ", "))
			}
			fmt.Fprintf(out, "Alphabet:    %s\n", strings.Join(automaton.Alphabet(m), " "))
			return nil
		},
	}
}

func acceptingLabels(m automaton.Automaton) []string {
	var ids []int
	switch v := m.(type) {
	case *automaton.FSA:
		ids = v.Accepting
	case *automaton.PDA:
		ids = v.Accepting
	}
	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = m.Base().StateLabel(id)
	}
	return labels
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate an automaton file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadAutomaton(args[0])
			if err != nil {
				return err
			}
			if err := m.Validate(); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid %s\n", args[0], automaton.Summary(m))
			return nil
		},
	}
}
