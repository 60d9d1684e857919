package locus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lvmingjie/mikado/scoring"
	"github.com/Lvmingjie/mikado/transcript"
)

func scorerByCDNALength(t *testing.T) *scoring.Scorer {
	s, err := scoring.NewScorer([]scoring.MetricConfig{
		{Metric: "cdna_length", Rescaling: scoring.RescaleMax, Multiplier: 1},
	})
	require.NoError(t, err)
	return s
}

func TestSublocusDefineMonosubRockSplitsIntoTwoGroups(t *testing.T) {
	// Two disjoint intron-sharing families on the same chromosome/strand.
	a1 := buildMultiExon(t, "a1", [][2]int{{100, 200}, {301, 500}}, transcript.StrandPlus)
	a2 := buildMultiExon(t, "a2", [][2]int{{90, 200}, {301, 600}}, transcript.StrandPlus)
	b1 := buildMultiExon(t, "b1", [][2]int{{2000, 2100}, {2201, 2400}}, transcript.StrandPlus)

	opts := RunOptions{Stranded: true, Scorer: scorerByCDNALength(t)}
	sl, err := NewSublocus("superlocus1.sub1", []*transcript.Transcript{a1, a2, b1}, opts)
	require.NoError(t, err)

	monos, excluded, err := sl.DefineMonosubloci()
	require.NoError(t, err)
	assert.Empty(t, excluded)
	require.Len(t, monos, 2)

	// a2 is longer than a1 so it should win its family; b1 is alone.
	var winners []string
	for _, m := range monos {
		winners = append(winners, m.Transcript.ID)
	}
	assert.Contains(t, winners, "a2")
	assert.Contains(t, winners, "b1")
}

func TestSublocusRequirementsPurgeRoutesToExcluded(t *testing.T) {
	short := buildMultiExon(t, "short", [][2]int{{100, 150}, {201, 220}}, transcript.StrandPlus)
	long := buildMultiExon(t, "long", [][2]int{{100, 150}, {201, 400}}, transcript.StrandPlus)

	reqs, err := scoring.CompileRequirements("long_enough", map[string]scoring.Parameter{
		"long_enough": {Name: "cdna_length", Operator: scoring.OpGT, Value: 100},
	})
	require.NoError(t, err)

	opts := RunOptions{Stranded: true, Scorer: scorerByCDNALength(t), Requirements: reqs, Purge: true}
	sl, err := NewSublocus("superlocus1.sub1", []*transcript.Transcript{short, long}, opts)
	require.NoError(t, err)

	monos, excluded, err := sl.DefineMonosubloci()
	require.NoError(t, err)
	require.Len(t, excluded, 1)
	assert.Equal(t, "short", excluded[0].ID)
	require.Len(t, monos, 1)
	assert.Equal(t, "long", monos[0].Transcript.ID)
}

func TestMonosublocusIDDisambiguation(t *testing.T) {
	a := buildMultiExon(t, "a", [][2]int{{1, 100}}, transcript.StrandPlus)
	m0 := NewMonosublocus("sl1.sub1", a, 0)
	m2 := NewMonosublocus("sl1.sub1", a, 2)
	assert.Equal(t, "sl1.sub1.mono", m0.ID)
	assert.Equal(t, "sl1.sub1.mono.2", m2.ID)
}
