// Package pipeline implements the coarse-grained superlocus driver of
// §5: a producer groups finalized transcripts into superloci, a pool of
// workers reduces each superlocus to its loci independently, and the
// results are gathered into a single deterministically sorted output.
// Grounded on markduplicates.MarkDuplicates's shard-channel worker pool
// (github.com/grailbio/bio/markduplicates/mark_duplicates.go), adapted
// from BAM shards to superloci.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/grailbio/base/log"

	"github.com/Lvmingjie/mikado/locus"
	"github.com/Lvmingjie/mikado/transcript"
)

// Config controls the driver's concurrency.
type Config struct {
	// Parallelism is the number of superlocus workers. Values <= 0 are
	// treated as 1.
	Parallelism int
}

// Result aggregates the pipeline's output across every superlocus:
// finished loci in deterministic order, and every transcript routed to an
// Excluded sink along the way.
type Result struct {
	Loci     []*locus.Locus
	Excluded []*transcript.Transcript
}

// superlocusOutcome is one worker's result for a single superlocus,
// gathered by the main goroutine after all workers finish (the
// "sort-on-write sink" of §5).
type superlocusOutcome struct {
	sl  *locus.Superlocus
	err error
}

// Run partitions transcripts into superloci and reduces each to its final
// loci, in parallel across superloci and single-threaded within each
// (§5). A failure reducing one superlocus is logged and that superlocus's
// output is dropped; it never corrupts siblings. ctx cancellation is
// cooperative: workers check it between superloci.
func Run(ctx context.Context, transcripts []*transcript.Transcript, opts locus.RunOptions, cfg Config) (*Result, error) {
	superloci := locus.BuildSuperloci(transcripts, opts)

	parallelism := cfg.Parallelism
	if parallelism <= 0 {
		parallelism = 1
	}

	work := make(chan *locus.Superlocus, len(superloci))
	for _, sl := range superloci {
		work <- sl
	}
	close(work)

	outcomes := make(chan superlocusOutcome, len(superloci))
	var workers sync.WaitGroup
	for i := 0; i < parallelism; i++ {
		workers.Add(1)
		go func(worker int) {
			defer workers.Done()
			for sl := range work {
				select {
				case <-ctx.Done():
					return
				default:
				}
				err := reduceSuperlocus(sl)
				if err != nil {
					log.Error.Printf("worker %d: superlocus %s failed: %v", worker, sl.ID, err)
				}
				outcomes <- superlocusOutcome{sl: sl, err: err}
			}
		}(i)
	}
	workers.Wait()
	close(outcomes)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{}
	for o := range outcomes {
		if o.err != nil {
			continue
		}
		result.Loci = append(result.Loci, o.sl.Loci()...)
		result.Excluded = append(result.Excluded, o.sl.Excluded().Transcripts...)
	}

	sort.Slice(result.Loci, func(i, j int) bool {
		a, b := result.Loci[i], result.Loci[j]
		if a.Chrom != b.Chrom {
			return a.Chrom < b.Chrom
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		if a.Strand != b.Strand {
			return a.Strand < b.Strand
		}
		return a.Primary.ID < b.Primary.ID
	})
	return result, nil
}

// reduceSuperlocus runs one superlocus through load -> subloci ->
// monosubloci -> loci, all single-threaded (§5).
func reduceSuperlocus(sl *locus.Superlocus) error {
	if err := sl.LoadAllTranscriptData(); err != nil {
		return fmt.Errorf("loading transcript data: %w", err)
	}
	if err := sl.DefineLoci(); err != nil {
		return fmt.Errorf("defining loci: %w", err)
	}
	return nil
}
