package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/grailbio/base/log"

	"github.com/Lvmingjie/mikado/config"
	"github.com/Lvmingjie/mikado/evidence"
	"github.com/Lvmingjie/mikado/gff3"
	"github.com/Lvmingjie/mikado/output"
	"github.com/Lvmingjie/mikado/pipeline"
	"github.com/Lvmingjie/mikado/stats"
)

type pickFlags struct {
	configPath  string
	inputPath   string
	outputPath  string
	metricsPath string
	scoresPath  string
	statsPath   string
	parallelism int
}

func newPickCmd() *cobra.Command {
	f := &pickFlags{}
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Resolve a GFF3 annotation into picked loci",
		Example: "  mikado pick --config scoring.yaml --input transcripts.gff3 --output picked.gff3",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPick(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.configPath, "config", "", "scoring/run configuration (required)")
	flags.StringVar(&f.inputPath, "input", "", "input GFF3 annotation (required)")
	flags.StringVar(&f.outputPath, "output", "picked.gff3", "output GFF3 path")
	flags.StringVar(&f.metricsPath, "metrics-out", "", "optional per-transcript metrics TSV path")
	flags.StringVar(&f.scoresPath, "scores-out", "", "optional per-transcript scores TSV path")
	flags.StringVar(&f.statsPath, "stats-out", "", "optional summary statistics TSV path")
	flags.IntVar(&f.parallelism, "procs", runtime.NumCPU(), "number of superloci to reduce concurrently")
	cmd.MarkFlagRequired("config")
	cmd.MarkFlagRequired("input")

	return cmd
}

func runPick(cmd *cobra.Command, f *pickFlags) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	in, err := os.Open(f.inputPath)
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	transcripts, err := gff3.Read(in)
	if err != nil {
		return fmt.Errorf("reading %s: %w", f.inputPath, err)
	}
	log.Printf("mikado pick: loaded %d transcripts from %s", len(transcripts), f.inputPath)

	store := evidence.NewMemStore()
	store.Freeze()

	opts, err := cfg.CompileRunOptions(store)
	if err != nil {
		return fmt.Errorf("compiling run options: %w", err)
	}

	result, err := pipeline.Run(cmd.Context(), transcripts, opts, pipeline.Config{Parallelism: f.parallelism})
	if err != nil {
		return fmt.Errorf("running pipeline: %w", err)
	}
	log.Printf("mikado pick: resolved %d loci, excluded %d transcripts", len(result.Loci), len(result.Excluded))

	source := cfg.Source
	if source == "" {
		source = "mikado"
	}

	out, err := os.Create(f.outputPath)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()
	if err := output.WriteGFF3(out, result.Loci, source); err != nil {
		return fmt.Errorf("writing %s: %w", f.outputPath, err)
	}

	if f.metricsPath != "" {
		if err := writeReport(f.metricsPath, func(w *os.File) error {
			return output.WriteMetricsReport(w, result.Loci)
		}); err != nil {
			return err
		}
	}
	if f.scoresPath != "" {
		if err := writeReport(f.scoresPath, func(w *os.File) error {
			return output.WriteScoresReport(w, result.Loci)
		}); err != nil {
			return err
		}
	}
	if f.statsPath != "" {
		if err := writeReport(f.statsPath, func(w *os.File) error {
			return stats.Write(w, stats.Compute(result.Loci))
		}); err != nil {
			return err
		}
	}

	return nil
}

func writeReport(path string, fn func(*os.File) error) error {
	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer w.Close()
	if err := fn(w); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
