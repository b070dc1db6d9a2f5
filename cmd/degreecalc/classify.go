package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/degreecalc/degreecalc/pkg/classification"
	"github.com/degreecalc/degreecalc/pkg/marks"
	"github.com/degreecalc/degreecalc/pkg/surface"
)

func newClassifyCmd() *cobra.Command {
	var opts classifyOpts

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify one student's marks",
		Long: `Classifies a single record given either as flags or as a JSON/YAML file.

  degreecalc classify --l5 45,56,67,78,89,90 --l6 56,67,78,89 --fyp 68
  degreecalc classify --file student.yaml --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.fypSet = cmd.Flags().Changed("fyp")
			return runClassify(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.l5, "l5", "", "Comma-separated Level 5 module marks")
	cmd.Flags().StringVar(&opts.l6, "l6", "", "Comma-separated Level 6 module marks, excluding the project")
	cmd.Flags().Float64Var(&opts.fyp, "fyp", 0, "Final-year project mark")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read the record from a .json, .yaml or .yml file")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Reject marks outside 0-100")
	cmd.Flags().StringVarP(&opts.outputFmt, "output", "o", "", "Output format: text, json or markdown (default from config, else text)")
	cmd.MarkFlagsMutuallyExclusive("file", "l5")
	cmd.MarkFlagsMutuallyExclusive("file", "l6")
	cmd.MarkFlagsMutuallyExclusive("file", "fyp")

	return cmd
}

type classifyOpts struct {
	l5, l6    string
	fyp       float64
	fypSet    bool
	file      string
	strict    bool
	outputFmt string
}

func runClassify(cmd *cobra.Command, opts classifyOpts) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	rec, err := opts.record()
	if err != nil {
		return err
	}

	renderer, err := surface.ForFormat(firstNonEmpty(opts.outputFmt, cfg.Output.Format, "text"))
	if err != nil {
		return err
	}

	engine := newEngine(opts.strict || cfg.Classification.Strict)
	result, err := engine.Classify(*rec)
	if err != nil {
		return err
	}

	return renderer.Render(cmd.OutOrStdout(), result)
}

func (o classifyOpts) record() (*marks.Record, error) {
	if o.file != "" {
		return marks.LoadRecord(o.file)
	}
	if o.l5 == "" || o.l6 == "" || !o.fypSet {
		return nil, fmt.Errorf("either --file or all of --l5, --l6 and --fyp are required")
	}

	l5, err := marks.ParseMarkList(o.l5)
	if err != nil {
		return nil, fmt.Errorf("--l5: %w", err)
	}
	l6, err := marks.ParseMarkList(o.l6)
	if err != nil {
		return nil, fmt.Errorf("--l6: %w", err)
	}
	return &marks.Record{L5: l5, L6: l6, FYP: o.fyp}, nil
}

func newEngine(strict bool) *classification.Engine {
	if strict {
		return classification.NewEngine(classification.WithStrictRange())
	}
	return classification.NewEngine()
}
