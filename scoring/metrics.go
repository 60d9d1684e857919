// Package scoring implements the metric registry, requirements DSL, and
// scoring engine that drive transcript selection (§4.4).
package scoring

import (
	"github.com/Lvmingjie/mikado/interval"
	"github.com/Lvmingjie/mikado/transcript"
)

// MetricFunc computes one named numeric property of a transcript.
type MetricFunc func(t *transcript.Transcript) float64

// registry is the closed set of metrics the core knows how to compute. Each
// metric reads either a primary attribute of the transcript or a field
// written onto it earlier in the pipeline (the locus-relative fractions,
// which only make sense once a transcript is attached to a sublocus/
// holder).
var registry = map[string]MetricFunc{
	"cdna_length":                   func(t *transcript.Transcript) float64 { return float64(t.CDNALength()) },
	"combined_cds_length":           func(t *transcript.Transcript) float64 { return float64(t.CombinedCDSLength()) },
	"combined_utr_length":          func(t *transcript.Transcript) float64 { return float64(t.CombinedUTRLength()) },
	"exon_num":                      func(t *transcript.Transcript) float64 { return float64(t.ExonNum()) },
	"intron_num":                    func(t *transcript.Transcript) float64 { return float64(len(t.Introns)) },
	"selected_cds_fraction":         selectedCDSFraction,
	"retained_fraction":             func(t *transcript.Transcript) float64 { return t.RetainedFraction },
	"exon_fraction":                 func(t *transcript.Transcript) float64 { return t.ExonFraction },
	"intron_fraction":               func(t *transcript.Transcript) float64 { return t.IntronFraction },
	"cds_intron_fraction":           func(t *transcript.Transcript) float64 { return t.CDSIntronFraction },
	"selected_cds_intron_fraction":  func(t *transcript.Transcript) float64 { return t.SelectedCDSIntronFraction },
	"verified_introns_num":          func(t *transcript.Transcript) float64 { return float64(t.VerifiedIntronsNum) },
	"end_distance_from_junction":    endDistanceFromJunction,
	"has_start_codon":               func(t *transcript.Transcript) float64 { return boolToFloat(t.HasStartCodon) },
	"has_stop_codon":                func(t *transcript.Transcript) float64 { return boolToFloat(t.HasStopCodon) },
}

// MetricNames returns the closed set of recognized metric names, for
// validating configuration.
func MetricNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// Lookup returns the metric function for name, and whether it is
// recognized.
func Lookup(name string) (MetricFunc, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// Metrics computes every closed-set metric for t, keyed by metric name.
// Used by the requirements prefilter and by per-metric scoring filters,
// both of which may reference a metric other than the one currently being
// evaluated.
func Metrics(t *transcript.Transcript) map[string]float64 {
	snap := make(map[string]float64, len(registry))
	for name, fn := range registry {
		snap[name] = fn(t)
	}
	return snap
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func selectedCDSFraction(t *transcript.Transcript) float64 {
	cdna := t.CDNALength()
	if cdna == 0 {
		return 0
	}
	orf, ok := t.SelectedORF()
	if !ok {
		return 0
	}
	return float64(orf.CDSLength()) / float64(cdna)
}

// endDistanceFromJunction computes the number of exonic bases between the
// selected ORF's stop codon and the last splice junction downstream of it
// (used, among other things, to flag likely NMD targets). This resolves
// the forward/reverse-strand derivation left as an open question: for '+'
// strand transcripts the distance accumulates from the stop codon to the
// start of the last exon; for '-' strand transcripts it accumulates
// symmetrically from the stop codon back to the end of the first exon. A
// stop codon already in the last exon (relative to the direction of
// transcription) has distance zero, since there is no downstream junction.
func endDistanceFromJunction(t *transcript.Transcript) float64 {
	if len(t.Introns) == 0 {
		return 0
	}
	orf, ok := t.SelectedORF()
	if !ok {
		return 0
	}
	cds := orf.CDS()
	if len(cds) == 0 {
		return 0
	}
	var stopPos interval.PosType
	if t.Strand == transcript.StrandMinus {
		stopPos = cds[0].Start
	} else {
		stopPos = cds[len(cds)-1].End
	}

	idx := -1
	for i, e := range t.Exons {
		if stopPos >= e.Start && stopPos <= e.End {
			idx = i
			break
		}
	}
	if idx == -1 {
		return 0
	}

	if t.Strand == transcript.StrandMinus {
		if idx == 0 {
			return 0
		}
		dist := int(stopPos - t.Exons[idx].Start)
		for i := idx - 1; i > 0; i-- {
			dist += t.Exons[i].Len()
		}
		return float64(dist)
	}
	if idx == len(t.Exons)-1 {
		return 0
	}
	dist := int(t.Exons[idx].End - stopPos)
	for i := idx + 1; i < len(t.Exons)-1; i++ {
		dist += t.Exons[i].Len()
	}
	return float64(dist)
}
