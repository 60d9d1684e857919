package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lvmingjie/mikado/interval"
	"github.com/Lvmingjie/mikado/transcript"
)

func mustTranscript(t *testing.T, id string, length int) *transcript.Transcript {
	tr := transcript.New(id, "chr1", transcript.StrandPlus)
	require.NoError(t, tr.AddExon(transcript.Record{Kind: transcript.RecordExon, Interval: interval.New(1, interval.PosType(length))}))
	require.NoError(t, tr.Finalize())
	return tr
}

func TestScorerRescaleMax(t *testing.T) {
	short := mustTranscript(t, "short", 100)
	long := mustTranscript(t, "long", 300)

	scorer, err := NewScorer([]MetricConfig{{Metric: "cdna_length", Rescaling: RescaleMax, Multiplier: 2}})
	require.NoError(t, err)
	require.NoError(t, scorer.Score([]*transcript.Transcript{short, long}))

	assert.Equal(t, 0.0, short.Score)
	assert.Equal(t, 2.0, long.Score)
}

func TestScorerRescaleMin(t *testing.T) {
	short := mustTranscript(t, "short", 100)
	long := mustTranscript(t, "long", 300)

	scorer, err := NewScorer([]MetricConfig{{Metric: "cdna_length", Rescaling: RescaleMin, Multiplier: 1}})
	require.NoError(t, err)
	require.NoError(t, scorer.Score([]*transcript.Transcript{short, long}))

	assert.Equal(t, 1.0, short.Score)
	assert.Equal(t, 0.0, long.Score)
}

func TestScorerZeroRangeTies(t *testing.T) {
	a := mustTranscript(t, "a", 200)
	b := mustTranscript(t, "b", 200)

	scorer, err := NewScorer([]MetricConfig{{Metric: "cdna_length", Rescaling: RescaleMax, Multiplier: 5}})
	require.NoError(t, err)
	require.NoError(t, scorer.Score([]*transcript.Transcript{a, b}))

	assert.Equal(t, 5.0, a.Score)
	assert.Equal(t, 5.0, b.Score)
}

func TestScorerZeroRangeTargetScoresZero(t *testing.T) {
	a := mustTranscript(t, "a", 200)
	b := mustTranscript(t, "b", 200)

	scorer, err := NewScorer([]MetricConfig{{Metric: "cdna_length", Rescaling: RescaleTarget, Target: 150, Multiplier: 5}})
	require.NoError(t, err)
	require.NoError(t, scorer.Score([]*transcript.Transcript{a, b}))

	assert.Equal(t, 0.0, a.Score)
	assert.Equal(t, 0.0, b.Score)
}

func TestScorerFilterZeroesMetric(t *testing.T) {
	short := mustTranscript(t, "short", 100)
	long := mustTranscript(t, "long", 300)

	scorer, err := NewScorer([]MetricConfig{{
		Metric:     "cdna_length",
		Rescaling:  RescaleMax,
		Multiplier: 1,
		Filter:     &Parameter{Name: "cdna_length", Operator: OpGT, Value: 250},
	}})
	require.NoError(t, err)
	require.NoError(t, scorer.Score([]*transcript.Transcript{short, long}))

	assert.Equal(t, 0.0, short.Score)
	assert.Equal(t, 1.0, long.Score)
}

func TestNewScorerRejectsUnknownMetric(t *testing.T) {
	_, err := NewScorer([]MetricConfig{{Metric: "nonexistent", Rescaling: RescaleMax}})
	assert.Error(t, err)
}

func TestNewScorerRejectsUnknownRescaler(t *testing.T) {
	_, err := NewScorer([]MetricConfig{{Metric: "cdna_length", Rescaling: "bogus"}})
	assert.Error(t, err)
}
