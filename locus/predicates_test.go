package locus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lvmingjie/mikado/interval"
	"github.com/Lvmingjie/mikado/transcript"
)

func buildMultiExon(t *testing.T, id string, exons [][2]int, strand transcript.Strand) *transcript.Transcript {
	tr := transcript.New(id, "chr1", strand)
	for _, e := range exons {
		require.NoError(t, tr.AddExon(transcript.Record{
			Kind:     transcript.RecordExon,
			Interval: interval.New(interval.PosType(e[0]), interval.PosType(e[1])),
		}))
	}
	require.NoError(t, tr.Finalize())
	return tr
}

func TestSublocusPredicateSharedIntron(t *testing.T) {
	a := buildMultiExon(t, "a", [][2]int{{100, 200}, {301, 400}}, transcript.StrandPlus)
	b := buildMultiExon(t, "b", [][2]int{{90, 200}, {301, 450}}, transcript.StrandPlus)
	c := buildMultiExon(t, "c", [][2]int{{100, 190}, {401, 500}}, transcript.StrandPlus)

	pred := SublocusPredicate(PredicateConfig{Stranded: true})
	assert.True(t, pred(a, b), "a and b share the intron 201-300")
	assert.False(t, pred(a, c), "a and c have different intron boundaries")
}

func TestSublocusPredicateMonoVsMultiNeverIntersect(t *testing.T) {
	mono := buildMultiExon(t, "mono", [][2]int{{100, 400}}, transcript.StrandPlus)
	multi := buildMultiExon(t, "multi", [][2]int{{100, 200}, {301, 400}}, transcript.StrandPlus)

	pred := SublocusPredicate(PredicateConfig{Stranded: true})
	assert.False(t, pred(mono, multi))
}

func TestSublocusPredicateMonoexonicOverlap(t *testing.T) {
	a := buildMultiExon(t, "a", [][2]int{{100, 300}}, transcript.StrandPlus)
	b := buildMultiExon(t, "b", [][2]int{{250, 500}}, transcript.StrandPlus)
	c := buildMultiExon(t, "c", [][2]int{{600, 700}}, transcript.StrandPlus)

	pred := SublocusPredicate(PredicateConfig{Stranded: true})
	assert.True(t, pred(a, b))
	assert.False(t, pred(a, c))
}

func TestSuperlocusPredicateStrandedVsUnstranded(t *testing.T) {
	plus := buildMultiExon(t, "plus", [][2]int{{100, 200}}, transcript.StrandPlus)
	minus := buildMultiExon(t, "minus", [][2]int{{150, 250}}, transcript.StrandMinus)

	strandedPred := SuperlocusPredicate(PredicateConfig{Stranded: true})
	assert.False(t, strandedPred(plus, minus))

	unstrandedPred := SuperlocusPredicate(PredicateConfig{Stranded: false})
	assert.True(t, unstrandedPred(plus, minus))
}

func TestHolderPredicateMonoOverlapFraction(t *testing.T) {
	mono := buildMultiExon(t, "mono", [][2]int{{100, 199}}, transcript.StrandPlus) // len 100
	multi := buildMultiExon(t, "multi", [][2]int{{150, 199}, {300, 400}}, transcript.StrandPlus)

	// overlap is 50 bases out of mono's 100 -> fraction 0.5
	lenient := HolderPredicate(PredicateConfig{Stranded: true, MonoOverlapFraction: 0.4})
	assert.True(t, lenient(mono, multi))

	strict := HolderPredicate(PredicateConfig{Stranded: true, MonoOverlapFraction: 0.9})
	assert.False(t, strict(mono, multi))
}
