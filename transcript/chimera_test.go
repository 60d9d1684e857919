package transcript

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lvmingjie/mikado/interval"
)

func chimericTranscript(t *testing.T) *Transcript {
	tr := New("chim", "chr1", StrandPlus)
	require.NoError(t, tr.AddExon(Record{Kind: RecordExon, Interval: interval.New(1, 1000)}))
	require.NoError(t, tr.Finalize())
	a := CandidateORF{ThickStart: 1, ThickEnd: 300, Strand: StrandPlus, CDSLen: 300}
	b := CandidateORF{ThickStart: 700, ThickEnd: 900, Strand: StrandPlus, CDSLen: 201}
	require.NoError(t, ReconcileORFs(tr, []CandidateORF{a, b}, false, 50))
	require.Len(t, tr.InternalORFs, 2)
	return tr
}

func TestSplitByCDSDisabledReturnsOriginal(t *testing.T) {
	tr := chimericTranscript(t)
	out, err := SplitByCDS(tr, nil, ChimeraConfig{Execute: false})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Same(t, tr, out[0])
}

func TestSplitByCDSProducesOnePerORF(t *testing.T) {
	tr := chimericTranscript(t)
	out, err := SplitByCDS(tr, nil, ChimeraConfig{Execute: true})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "chim.orf1", out[0].ID)
	assert.Equal(t, "chim.orf2", out[1].ID)
	for _, child := range out {
		require.Len(t, child.InternalORFs, 1)
		assert.True(t, child.CombinedCDSLength() > 0)
	}
}

func TestSplitByCDSSuppressedWhenHitSpansBothORFs(t *testing.T) {
	tr := chimericTranscript(t)
	hits := []BlastHit{{QueryStart: 1, QueryEnd: 900, Target: "geneX"}}
	out, err := SplitByCDS(tr, hits, ChimeraConfig{Execute: true, BlastCheck: true})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Same(t, tr, out[0])
}

func TestSplitByCDSSuppressedByHSPCrossEvidence(t *testing.T) {
	tr := chimericTranscript(t)
	hits := []BlastHit{{
		Target: "geneX",
		HSPs: []HSP{
			{QueryHSPStart: 1, QueryHSPEnd: 300, HSPEvalue: 1e-20},
			{QueryHSPStart: 700, QueryHSPEnd: 900, HSPEvalue: 1e-20},
		},
	}}
	out, err := SplitByCDS(tr, hits, ChimeraConfig{
		Execute: true, BlastCheck: true, MinimalHSPOverlap: 0.5, MaximalHSPEvalue: 1e-10,
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
}

func TestSplitByCDSNotSuppressedWithoutCrossEvidence(t *testing.T) {
	tr := chimericTranscript(t)
	hits := []BlastHit{{
		Target: "geneX",
		HSPs: []HSP{
			{QueryHSPStart: 1, QueryHSPEnd: 300, HSPEvalue: 1e-20},
		},
	}}
	out, err := SplitByCDS(tr, hits, ChimeraConfig{
		Execute: true, BlastCheck: true, MinimalHSPOverlap: 0.5, MaximalHSPEvalue: 1e-10,
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
}
