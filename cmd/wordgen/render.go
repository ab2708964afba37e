package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ha1tch/fsm-wordgen/pkg/automaton"
	"github.com/ha1tch/fsm-wordgen/pkg/automatonfile"
	"github.com/ha1tch/fsm-wordgen/pkg/generator"
)

// sampleFlags select a generated word whose path is highlighted.
type sampleFlags struct {
	sample bool
	seed   uint64
}

func (f *sampleFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.sample, "sample", false, "generate one word and highlight its path")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed for --sample (0 picks one from the clock)")
}

// highlight generates a sample if requested and returns its transition
// indices together with the word.
func (f *sampleFlags) highlight(cmd *cobra.Command, a *app, m automaton.Automaton) (map[int]bool, string, error) {
	if !f.sample {
		return nil, "", nil
	}
	opts := a.generatorOptions()
	opts.Seed = f.seed
	opts.Trace = true
	report, err := generator.New(generator.WithOptions(opts)).Generate(cmd.Context(), m, 1)
	if err != nil {
		return nil, "", err
	}
	if len(report.Samples) == 0 {
		return nil, "", fmt.Errorf("no word found to highlight")
	}
	s := report.Samples[0]
	marked := make(map[int]bool, len(s.Path))
	for _, st := range s.Path {
		marked[st.Transition] = true
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "sample: %s (seed %d)\n", showWord(s.Word), report.Seed)
	return marked, s.Word, nil
}

// outputWriter returns the file named by path, or stdout when path is empty.
func outputWriter(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return file, file.Close, nil
}

func newDotCmd(a *app) *cobra.Command {
	var (
		output string
		title  string
		sf     sampleFlags
	)
	cmd := &cobra.Command{
		Use:   "dot FILE",
		Short: "Generate Graphviz DOT output",
		Example: `  wordgen dot parens.jff | dot -Tpng -o parens.png
  wordgen dot parens.jff --sample --seed 7 -o path.dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadAutomaton(args[0])
			if err != nil {
				return err
			}
			marked, word, err := sf.highlight(cmd, a, m)
			if err != nil {
				return err
			}
			if title == "" {
				title = m.Base().Name
			}
			if sf.sample {
				title = fmt.Sprintf("%s [%s]", title, showWord(word))
			}

			w, closeFn, err := outputWriter(cmd, output)
			if err != nil {
				return err
			}
			if _, err := io.WriteString(w, automatonfile.GenerateDOT(m, title, marked)); err != nil {
				closeFn()
				return err
			}
			return closeFn()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write DOT to a file instead of stdout")
	cmd.Flags().StringVarP(&title, "title", "t", "", "graph title (default: automaton name)")
	sf.register(cmd)
	return cmd
}

func newRenderCmd(a *app) *cobra.Command {
	var (
		output string
		title  string
		width  int
		height int
		layout string
		sf     sampleFlags
	)
	cmd := &cobra.Command{
		Use:   "render FILE -o OUT.png",
		Short: "Render the automaton as a PNG image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return fmt.Errorf("--output is required")
			}
			algorithm, err := automatonfile.ParseLayout(layout)
			if err != nil {
				return err
			}
			m, err := loadAutomaton(args[0])
			if err != nil {
				return err
			}
			marked, word, err := sf.highlight(cmd, a, m)
			if err != nil {
				return err
			}

			opts := automatonfile.DefaultPNGOptions()
			opts.Width, opts.Height = width, height
			opts.Title = title
			opts.Layout = algorithm
			if opts.Title == "" {
				opts.Title = m.Base().Name
			}
			if sf.sample {
				opts.Title = fmt.Sprintf("%s [%s]", opts.Title, showWord(word))
			}
			opts.Highlight = marked

			file, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := automatonfile.RenderPNG(m, file, opts); err != nil {
				file.Close()
				return err
			}
			if err := file.Close(); err != nil {
				return err
			}
			a.log.Info("Rendered", "file", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "PNG file to write")
	cmd.Flags().StringVarP(&title, "title", "t", "", "image title (default: automaton name)")
	cmd.Flags().IntVar(&width, "width", 800, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", 600, "image height in pixels")
	cmd.Flags().StringVar(&layout, "layout", "auto", "state placement: auto, layered, circular or saved")
	sf.register(cmd)
	return cmd
}

func newConvertCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "convert IN -o OUT",
		Short: "Convert between JSON, YAML and JFLAP formats",
		Long:  `Convert an automaton file. Formats are chosen by extension: .json, .yaml/.yml, .jff.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return fmt.Errorf("--output is required")
			}
			m, err := loadAutomaton(args[0])
			if err != nil {
				return err
			}
			if err := automatonfile.Save(output, m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	return cmd
}
