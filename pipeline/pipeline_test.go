package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lvmingjie/mikado/interval"
	"github.com/Lvmingjie/mikado/locus"
	"github.com/Lvmingjie/mikado/scoring"
	"github.com/Lvmingjie/mikado/transcript"
)

func buildTranscript(t *testing.T, id, chrom string, start, end int) *transcript.Transcript {
	tr := transcript.New(id, chrom, transcript.StrandPlus)
	require.NoError(t, tr.AddExon(transcript.Record{
		Kind:     transcript.RecordExon,
		Interval: interval.New(interval.PosType(start), interval.PosType(end)),
	}))
	require.NoError(t, tr.Finalize())
	return tr
}

func TestRunProducesOneLocusPerSuperlocus(t *testing.T) {
	short := buildTranscript(t, "short", "chr1", 100, 150)
	long := buildTranscript(t, "long", "chr1", 100, 300)
	distant := buildTranscript(t, "distant", "chr2", 1000, 1100)

	scorer, err := scoring.NewScorer([]scoring.MetricConfig{
		{Metric: "cdna_length", Rescaling: scoring.RescaleMax, Multiplier: 1},
	})
	require.NoError(t, err)

	opts := locus.RunOptions{Stranded: true, Scorer: scorer, ASClassCodes: map[string]bool{}}
	result, err := Run(context.Background(), []*transcript.Transcript{short, long, distant}, opts, Config{Parallelism: 2})
	require.NoError(t, err)

	require.Len(t, result.Loci, 2)
	assert.Equal(t, "chr1", result.Loci[0].Chrom)
	assert.Equal(t, "long", result.Loci[0].Primary.ID)
	assert.Equal(t, "chr2", result.Loci[1].Chrom)
}

func TestRunRespectsContextCancellation(t *testing.T) {
	a := buildTranscript(t, "a", "chr1", 100, 150)
	scorer, err := scoring.NewScorer([]scoring.MetricConfig{
		{Metric: "cdna_length", Rescaling: scoring.RescaleMax, Multiplier: 1},
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := locus.RunOptions{Stranded: true, Scorer: scorer}
	_, err = Run(ctx, []*transcript.Transcript{a}, opts, Config{Parallelism: 1})
	assert.Error(t, err)
}
