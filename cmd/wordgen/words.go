package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ha1tch/fsm-wordgen/pkg/automaton"
	"github.com/ha1tch/fsm-wordgen/pkg/generator"
)

type wordsFlags struct {
	count   int
	json    bool
	seed    uint64
	trace   bool
	verify  bool
	jobs    int
	timeout time.Duration
	pCont   float64
}

// fileReport is one entry of the JSON output.
type fileReport struct {
	File string `json:"file"`
	*generator.Report
}

func newWordsCmd(a *app) *cobra.Command {
	var f wordsFlags
	cmd := &cobra.Command{
		Use:   "words FILE...",
		Short: "Generate random accepted words",
		Long: `Generate up to -m distinct words accepted by each automaton. Fewer words
are printed when the language is small. The empty word is shown as λ.

Several files are processed in parallel; with --seed S the i-th file uses
seed S+i, so output is reproducible.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("count") {
				f.count = a.cfg.Generate.Count
			}
			if !cmd.Flags().Changed("seed") {
				f.seed = a.cfg.Generate.Seed
			}
			if !cmd.Flags().Changed("continue-probability") {
				f.pCont = a.cfg.Generate.ContinueProbability
			}
			return runWords(cmd.Context(), a, args, f, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&f.count, "count", "m", 1, "number of words to generate per file")
	cmd.Flags().BoolVarP(&f.json, "json", "j", false, "print a JSON report")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().BoolVar(&f.trace, "trace", false, "include the path of every word in the JSON report")
	cmd.Flags().BoolVar(&f.verify, "verify", false, "check every word by simulating the automaton")
	cmd.Flags().IntVar(&f.jobs, "jobs", runtime.NumCPU(), "files processed in parallel")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "stop generating after this long and print what was found")
	cmd.Flags().Float64Var(&f.pCont, "continue-probability", generator.DefaultContinueProbability,
		"chance a walk continues after reaching the initial state")
	return cmd
}

func runWords(ctx context.Context, a *app, files []string, f wordsFlags, out io.Writer) error {
	if f.count < 1 {
		return generator.ErrInvalidCount
	}

	machines := make([]automaton.Automaton, len(files))
	for i, path := range files {
		m, err := loadAutomaton(path)
		if err != nil {
			return err
		}
		machines[i] = m
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	base := f.seed
	if base == 0 {
		base = uint64(time.Now().UnixNano())
	}

	reports := make([]*generator.Report, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, f.jobs))
	for i := range files {
		g.Go(func() error {
			opts := a.generatorOptions()
			opts.Seed = base + uint64(i)
			opts.Trace = f.trace
			opts.ContinueProbability = f.pCont

			report, err := generator.New(generator.WithOptions(opts)).Generate(ctx, machines[i], f.count)
			if errors.Is(err, context.DeadlineExceeded) && report != nil {
				a.log.Warn("Timeout reached", "file", files[i], "generated", report.Generated)
				err = nil
			}
			if err != nil {
				return fmt.Errorf("%s: %w", files[i], err)
			}
			if f.verify {
				if err := verifyWords(machines[i], report.Words); err != nil {
					return fmt.Errorf("%s: %w", files[i], err)
				}
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if f.json {
		return writeReports(out, files, reports)
	}
	for i, r := range reports {
		if len(files) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "# %s\n", files[i])
		}
		for _, w := range r.Words {
			fmt.Fprintln(out, showWord(w))
		}
	}
	return nil
}

// verifyWords runs every word forward and fails on the first one rejected.
func verifyWords(m automaton.Automaton, words []string) error {
	for _, w := range words {
		ok, err := automaton.Accepts(m, w)
		if err != nil {
			return fmt.Errorf("verifying %q: %w", w, err)
		}
		if !ok {
			return fmt.Errorf("generated word %q is not accepted", w)
		}
	}
	return nil
}

func writeReports(out io.Writer, files []string, reports []*generator.Report) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if len(reports) == 1 {
		return enc.Encode(fileReport{File: files[0], Report: reports[0]})
	}
	all := make([]fileReport, len(reports))
	for i, r := range reports {
		all[i] = fileReport{File: files[i], Report: r}
	}
	return enc.Encode(all)
}
