package locus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lvmingjie/mikado/interval"
	"github.com/Lvmingjie/mikado/transcript"
)

func buildMultiExonChrom(t *testing.T, id, chrom string, exons [][2]int, strand transcript.Strand) *transcript.Transcript {
	tr := transcript.New(id, chrom, strand)
	for _, e := range exons {
		require.NoError(t, tr.AddExon(transcript.Record{
			Kind:     transcript.RecordExon,
			Interval: interval.New(interval.PosType(e[0]), interval.PosType(e[1])),
		}))
	}
	require.NoError(t, tr.Finalize())
	return tr
}

func TestBuildSuperlociPartitionsByChromosome(t *testing.T) {
	a := buildMultiExonChrom(t, "a", "chr1", [][2]int{{100, 200}}, transcript.StrandPlus)
	b := buildMultiExonChrom(t, "b", "chr2", [][2]int{{100, 200}}, transcript.StrandPlus)

	superloci := BuildSuperloci([]*transcript.Transcript{a, b}, RunOptions{Stranded: true})
	require.Len(t, superloci, 2)
	assert.Equal(t, "chr1", superloci[0].Chrom)
	assert.Equal(t, "chr2", superloci[1].Chrom)
}

func TestBuildSuperlociUnstrandedSplitsByStrand(t *testing.T) {
	plus := buildMultiExonChrom(t, "plus", "chr1", [][2]int{{100, 200}}, transcript.StrandPlus)
	minus := buildMultiExonChrom(t, "minus", "chr1", [][2]int{{150, 250}}, transcript.StrandMinus)

	superloci := BuildSuperloci([]*transcript.Transcript{plus, minus}, RunOptions{Stranded: false})
	require.Len(t, superloci, 2)
	for _, sl := range superloci {
		assert.Len(t, sl.Transcripts(), 1)
	}
}

func TestSuperlocusDefineLociPromotesBestPerFamily(t *testing.T) {
	short := buildMultiExonChrom(t, "short", "chr1", [][2]int{{100, 150}, {201, 250}}, transcript.StrandPlus)
	long := buildMultiExonChrom(t, "long", "chr1", [][2]int{{100, 150}, {201, 400}}, transcript.StrandPlus)

	opts := RunOptions{Stranded: true, Scorer: scorerByCDNALength(t), ASClassCodes: map[string]bool{}}
	sl := NewSuperlocus("superlocus1", short, opts)
	require.NoError(t, sl.AddTranscript(long))

	require.NoError(t, sl.DefineLoci())
	loci := sl.Loci()
	require.Len(t, loci, 1)
	assert.Equal(t, "long", loci[0].Primary.ID)
}

func TestSuperlocusDefineLociIsMemoized(t *testing.T) {
	a := buildMultiExonChrom(t, "a", "chr1", [][2]int{{100, 200}}, transcript.StrandPlus)
	opts := RunOptions{Stranded: true, Scorer: scorerByCDNALength(t), ASClassCodes: map[string]bool{}}
	sl := NewSuperlocus("superlocus1", a, opts)

	require.NoError(t, sl.DefineLoci())
	first := sl.Loci()
	require.NoError(t, sl.DefineLoci())
	assert.Same(t, &first[0], &sl.Loci()[0])
}

func TestLoadAllTranscriptDataTagsNonCoding(t *testing.T) {
	a := buildMultiExonChrom(t, "a", "chr1", [][2]int{{100, 200}}, transcript.StrandPlus)
	sl := NewSuperlocus("superlocus1", a, RunOptions{Stranded: true})

	require.NoError(t, sl.LoadAllTranscriptData())
	require.Len(t, sl.Transcripts(), 1)
	assert.Equal(t, "ncRNA", sl.Transcripts()[0].Feature)
}
