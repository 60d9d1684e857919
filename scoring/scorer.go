package scoring

import (
	"fmt"
	"math"

	"github.com/Lvmingjie/mikado/errs"
	"github.com/Lvmingjie/mikado/transcript"
)

// Rescaling selects how a metric's raw values are mapped onto [0, 1]
// (roughly) before weighting (§4.4 "Scoring").
type Rescaling string

const (
	RescaleMax    Rescaling = "max"
	RescaleMin    Rescaling = "min"
	RescaleTarget Rescaling = "target"
)

// MetricConfig is one entry of a scoring.parameters configuration block: a
// metric, how to rescale its raw values across the competing set, its
// weight, and an optional per-metric filter.
type MetricConfig struct {
	Metric     string
	Rescaling  Rescaling
	Target     float64 // only meaningful when Rescaling == RescaleTarget
	Multiplier float64
	Filter     *Parameter // optional; transcripts failing it score 0 on this metric
}

// Scorer computes Transcript.Score for a competing set of transcripts from
// a fixed list of metric configurations.
type Scorer struct {
	metrics []MetricConfig
}

// NewScorer validates and compiles a scorer from its metric configurations.
func NewScorer(metrics []MetricConfig) (*Scorer, error) {
	if len(metrics) == 0 {
		return nil, errs.New(errs.InvalidRequirements, "scoring configuration has no metrics")
	}
	for _, m := range metrics {
		if _, ok := Lookup(m.Metric); !ok {
			return nil, errs.New(errs.InvalidRequirements, fmt.Sprintf("unrecognized metric %q", m.Metric))
		}
		switch m.Rescaling {
		case RescaleMax, RescaleMin, RescaleTarget:
		default:
			return nil, errs.New(errs.UnrecognizedRescaler, fmt.Sprintf("metric %q: unrecognized rescaler %q", m.Metric, m.Rescaling))
		}
	}
	return &Scorer{metrics: metrics}, nil
}

// Score computes and writes Transcript.Score for every transcript in the
// competing set, rescaling each metric's raw values across the set before
// weighting and summing.
func (s *Scorer) Score(transcripts []*transcript.Transcript) error {
	if len(transcripts) == 0 {
		return nil
	}
	totals := make([]float64, len(transcripts))

	for _, mc := range s.metrics {
		fn, _ := Lookup(mc.Metric)
		raw := make([]float64, len(transcripts))
		min, max := math.Inf(1), math.Inf(-1)
		for i, t := range transcripts {
			v := fn(t)
			raw[i] = v
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}

		for i, t := range transcripts {
			rescaled := rescale(mc, raw[i], min, max)
			if mc.Filter != nil {
				metrics := Metrics(t)
				if !mc.Filter.Evaluate(metrics[mc.Filter.Name]) {
					rescaled = 0
				}
			}
			totals[i] += rescaled * mc.Multiplier
		}
	}

	for i, t := range transcripts {
		t.Score = totals[i]
	}
	return nil
}

// rescale applies the §4.4 rescaling formulas. When the group has zero
// range (min == max), every transcript is tied on this metric: a max/min
// rule treats the tie as sitting at its own extremum and assigns 1, while
// a target rule has no spread to measure distance against and assigns 0.
func rescale(mc MetricConfig, x, min, max float64) float64 {
	if min == max {
		if mc.Rescaling == RescaleTarget {
			return 0
		}
		return 1
	}
	switch mc.Rescaling {
	case RescaleMax:
		return (x - min) / (max - min)
	case RescaleMin:
		return (max - x) / (max - min)
	case RescaleTarget:
		denom := math.Max(math.Abs(min-mc.Target), math.Abs(max-mc.Target))
		denom = math.Max(denom, 1)
		return 1 - math.Abs(x-mc.Target)/denom
	default:
		return 0
	}
}
