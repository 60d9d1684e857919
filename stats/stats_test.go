package stats

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lvmingjie/mikado/interval"
	"github.com/Lvmingjie/mikado/locus"
	"github.com/Lvmingjie/mikado/transcript"
)

func buildStatsTranscript(t *testing.T, id string, exonLen int) *transcript.Transcript {
	tr := transcript.New(id, "chr1", transcript.StrandPlus)
	require.NoError(t, tr.AddExon(transcript.Record{Kind: transcript.RecordExon, Interval: interval.New(1, interval.PosType(exonLen))}))
	require.NoError(t, tr.Finalize())
	return tr
}

func TestComputeCountsLociAndTranscripts(t *testing.T) {
	primary := buildStatsTranscript(t, "primary", 200)
	l := locus.NewLocus("locus1", primary, locus.RunOptions{Stranded: true})

	report := Compute([]*locus.Locus{l})
	assert.Equal(t, 1, report.NumLoci)
	assert.Equal(t, 1, report.NumTranscripts)
	assert.Equal(t, 200.0, report.CDNALength.Max)
	assert.Equal(t, 200.0, report.CDNALength.Min)
}

func TestWriteEmitsHeaderAndCounts(t *testing.T) {
	primary := buildStatsTranscript(t, "primary", 150)
	l := locus.NewLocus("locus1", primary, locus.RunOptions{Stranded: true})
	report := Compute([]*locus.Locus{l})

	var buf strings.Builder
	require.NoError(t, Write(&buf, report))

	out := buf.String()
	assert.Contains(t, out, "num_loci\t1")
	assert.Contains(t, out, "num_transcripts\t1")
	assert.Contains(t, out, "cdna_length")
}
