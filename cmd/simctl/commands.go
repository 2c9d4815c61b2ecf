package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"finetune-sim/internal/core/domain"
	"finetune-sim/internal/sim/curves"
	"finetune-sim/internal/sim/stages"
	"finetune-sim/internal/sim/timeline"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var timelineStages = []string{"provisioning", "seed-upload", "generation", "training"}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "simctl",
		Short:         "Inspect fine-tuning simulations offline",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newCurvesCmd(), newTimelineCmd(), newSamplesCmd())
	return root
}

func newCurvesCmd() *cobra.Command {
	cfg := curves.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "curves",
		Short: "Print the dashboard chart series as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.WithField("seed", cfg.Seed).Debug("generating curves")
			return writeJSON(cmd.OutOrStdout(), curves.Generate(cfg))
		},
	}
	cmd.Flags().Uint32Var(&cfg.Seed, "seed", cfg.Seed, "noise seed")
	cmd.Flags().IntVar(&cfg.MaxStep, "max-step", cfg.MaxStep, "last training step")
	cmd.Flags().IntVar(&cfg.StepSize, "step-size", cfg.StepSize, "distance between steps")
	return cmd
}

func newTimelineCmd() *cobra.Command {
	var (
		rows int
		gen  = domain.GenerationRecord{Config: domain.DefaultGenerationConfig(), Seed: stages.DefaultGenerationSeed}
	)
	cmd := &cobra.Command{
		Use:       "timeline <stage>",
		Short:     "Print every frame of a stage timeline as JSON lines",
		Long:      "Stages: " + strings.Join(timelineStages, ", "),
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: timelineStages,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "provisioning":
				return writeFrames(out, stages.Provisioning())
			case "seed-upload":
				return writeFrames(out, stages.SeedUpload(rows))
			case "generation":
				if err := gen.Config.Validate(); err != nil {
					return err
				}
				return writeFrames(out, stages.Generation(gen.Params()))
			default:
				cfg := domain.DefaultTrainingConfig()
				logs := stages.TrainingLogs(domain.TrainingRunRecord{Config: cfg}.Params())
				return writeFrames(out, stages.Training(len(logs)))
			}
		},
	}
	cmd.Flags().IntVar(&rows, "rows", 25, "seed examples in the uploaded file")
	cmd.Flags().Uint32Var(&gen.Seed, "seed", gen.Seed, "generation seed")
	cmd.Flags().IntVar(&gen.Config.Samples, "samples", gen.Config.Samples, "target sample count")
	cmd.Flags().StringVar(&gen.Config.Diversity, "diversity", gen.Config.Diversity, "low, medium or high")
	cmd.Flags().Float64Var(&gen.Config.Quality, "quality", gen.Config.Quality, "quality threshold")
	return cmd
}

func newSamplesCmd() *cobra.Command {
	var (
		seed uint32
		n    int
	)
	cmd := &cobra.Command{
		Use:   "samples",
		Short: "Print synthetic conversation samples as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := csv.NewWriter(cmd.OutOrStdout())
			if err := w.Write(stages.SampleColumns); err != nil {
				return err
			}
			for _, row := range stages.SyntheticSamples(seed, n) {
				if err := w.Write(row.Record()); err != nil {
					return err
				}
			}
			w.Flush()
			return w.Error()
		},
	}
	cmd.Flags().Uint32Var(&seed, "seed", stages.DefaultGenerationSeed, "generation seed")
	cmd.Flags().IntVarP(&n, "count", "n", 10, "number of rows")
	return cmd
}

func writeFrames[S any](w io.Writer, tl *timeline.Timeline[S]) error {
	enc := json.NewEncoder(w)
	for _, f := range tl.Frames() {
		if err := enc.Encode(f); err != nil {
			return err
		}
	}
	log.WithFields(log.Fields{"frames": tl.Len(), "end": tl.End().Round(time.Millisecond)}).Debug("timeline written")
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
