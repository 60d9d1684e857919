package locus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lvmingjie/mikado/transcript"
)

func TestComputeMetricsExonAndIntronFractions(t *testing.T) {
	a := buildMultiExon(t, "a", [][2]int{{100, 200}, {301, 400}}, transcript.StrandPlus)
	b := buildMultiExon(t, "b", [][2]int{{100, 200}, {301, 500}}, transcript.StrandPlus)

	container := NewAbstractLocus(a, true)
	require.NoError(t, container.AddTranscript(b))

	ComputeMetrics(container, []*transcript.Transcript{a, b})

	// b's exons cover the full union (100-200,301-500); a is a strict subset.
	assert.InDelta(t, float64(a.CDNALength())/float64(b.CDNALength()), a.ExonFraction, 1e-9)
	assert.Equal(t, 1.0, b.ExonFraction)

	// Both transcripts share the same single intron 201-300, so the union
	// intron length equals each transcript's own intron length.
	assert.Equal(t, 1.0, a.IntronFraction)
	assert.Equal(t, 1.0, b.IntronFraction)
}

func TestRetainedIntronsDetectsUnsplicedIntron(t *testing.T) {
	spliced := buildMultiExon(t, "spliced", [][2]int{{100, 200}, {301, 400}}, transcript.StrandPlus)
	retaining := buildMultiExon(t, "retaining", [][2]int{{100, 400}}, transcript.StrandPlus)

	container := NewAbstractLocus(spliced, true)
	require.NoError(t, container.AddTranscript(retaining))

	ComputeMetrics(container, []*transcript.Transcript{spliced, retaining})

	assert.Equal(t, 0.0, spliced.RetainedFraction)
	assert.Greater(t, retaining.RetainedFraction, 0.0)
	require.Len(t, retaining.RetainedIntrons, 1)
	assert.Equal(t, transcript.Intron{Start: 201, End: 300}, retaining.RetainedIntrons[0])
}
