package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lvmingjie/mikado/interval"
	"github.com/Lvmingjie/mikado/locus"
	"github.com/Lvmingjie/mikado/transcript"
)

func buildReportTranscript(t *testing.T, id string, score float64) *transcript.Transcript {
	tr := transcript.New(id, "chr1", transcript.StrandPlus)
	require.NoError(t, tr.AddExon(transcript.Record{Kind: transcript.RecordExon, Interval: interval.New(100, 200)}))
	require.NoError(t, tr.Finalize())
	tr.Score = score
	return tr
}

func TestWriteScoresReportOrdersDeterministically(t *testing.T) {
	primary1 := buildReportTranscript(t, "t1", 5)
	l1 := locus.NewLocus("locus1", primary1, locus.RunOptions{Stranded: true})

	primary2 := buildReportTranscript(t, "t2", 9)
	l2 := locus.NewLocus("locus2", primary2, locus.RunOptions{Stranded: true})

	var buf strings.Builder
	require.NoError(t, WriteScoresReport(&buf, []*locus.Locus{l1, l2}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "chrom\ttranscript_id\tlocus_id\tscore", lines[0])
	assert.Equal(t, "chr1\tt1\tlocus1\t5", lines[1])
	assert.Equal(t, "chr1\tt2\tlocus2\t9", lines[2])
}

func TestWriteMetricsReportIncludesASMembers(t *testing.T) {
	primary := buildReportTranscript(t, "primary", 9)
	l := locus.NewLocus("locus1", primary, locus.RunOptions{Stranded: true})
	l.AS = append(l.AS, buildReportTranscript(t, "as1", 3))

	var buf strings.Builder
	require.NoError(t, WriteMetricsReport(&buf, []*locus.Locus{l}))

	out := buf.String()
	assert.Contains(t, out, "primary")
	assert.Contains(t, out, "as1")
}
