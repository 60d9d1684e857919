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

func buildCodingTranscript(t *testing.T, id string) *transcript.Transcript {
	tr := transcript.New(id, "chr1", transcript.StrandPlus)
	require.NoError(t, tr.AddExon(transcript.Record{Kind: transcript.RecordExon, Interval: interval.New(100, 200)}))
	require.NoError(t, tr.AddExon(transcript.Record{Kind: transcript.RecordCDS, Interval: interval.New(120, 200)}))
	require.NoError(t, tr.AddExon(transcript.Record{Kind: transcript.RecordUTR, Interval: interval.New(100, 119)}))
	require.NoError(t, tr.Finalize())
	return tr
}

func TestWriteGFF3EmitsGeneAndTranscriptFeatures(t *testing.T) {
	primary := buildCodingTranscript(t, "t1")
	l := locus.NewLocus("locus1", primary, locus.RunOptions{Stranded: true})

	var buf strings.Builder
	require.NoError(t, WriteGFF3(&buf, []*locus.Locus{l}, "mikado"))

	out := buf.String()
	assert.Contains(t, out, "gene\t100\t200\t.\t+\t.\tID=mikado_locus1")
	assert.Contains(t, out, "mRNA\t100\t200\t.\t+\t.\tID=t1;Parent=mikado_locus1")
	assert.Contains(t, out, "CDS\t120\t200")
	assert.Contains(t, out, "UTR\t100\t119")
}
