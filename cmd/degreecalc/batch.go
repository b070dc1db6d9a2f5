package main

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/degreecalc/degreecalc/internal/archive"
	"github.com/degreecalc/degreecalc/internal/logger"
	"github.com/degreecalc/degreecalc/pkg/classification"
	"github.com/degreecalc/degreecalc/pkg/config"
	"github.com/degreecalc/degreecalc/pkg/marks"
	"github.com/degreecalc/degreecalc/pkg/surface"
)

func newBatchCmd() *cobra.Command {
	var (
		file      string
		outputFmt string
		strict    bool
		save      bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Classify a cohort of students from a file",
		Long: `Classifies every student in a cohort file and prints a summary by band.
Students whose marks cannot be classified are reported and do not stop the batch.
With --save the JSON report is written to the configured archive backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			cohort, err := marks.LoadCohort(file)
			if err != nil {
				return err
			}

			renderer, err := surface.ForFormat(firstNonEmpty(outputFmt, cfg.Output.Format, "text"))
			if err != nil {
				return err
			}

			engine := newEngine(strict || cfg.Classification.Strict)
			result := engine.ClassifyCohort(*cohort)

			log := logger.New(cmd.ErrOrStderr(), "warn", "pretty")
			if result.Summary.Errored > 0 {
				log.Warn().
					Int("errored", result.Summary.Errored).
					Int("total", result.Summary.Total).
					Msg("some students could not be classified")
			}

			if err := renderer.RenderCohort(cmd.OutOrStdout(), result); err != nil {
				return err
			}

			if save {
				runID, err := saveReport(cmd, cfg.Archive, result)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Report saved: %s (%s)\n", runID, cfg.Archive.Backend)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Cohort file (.json, .yaml or .yml)")
	cmd.Flags().StringVarP(&outputFmt, "output", "o", "", "Output format: text, json or markdown (default from config, else text)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Reject marks outside 0-100")
	cmd.Flags().BoolVar(&save, "save", false, "Save the JSON report to the archive backend")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func saveReport(cmd *cobra.Command, cfg config.ArchiveConfig, result *classification.CohortResult) (string, error) {
	store, err := archive.New(cmd.Context(), cfg)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := (&surface.JSONRenderer{}).RenderCohort(&buf, result); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}

	runID := uuid.NewString()
	if err := store.PutReport(cmd.Context(), runID, buf.Bytes()); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	return runID, nil
}
