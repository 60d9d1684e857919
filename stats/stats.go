// Package stats computes per-annotation summary statistics: counts,
// length distributions, and percentile tables over finalized loci,
// supplementing the distilled spec with the reporting
// Mikado/subprograms/util/stats.py performs on a finished annotation.
package stats

import (
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/Lvmingjie/mikado/locus"
	"github.com/Lvmingjie/mikado/transcript"
)

// Distribution summarizes one length population: count, total, mean, and
// the quartile/percentile table stats.py reports via weighted_percentile.
type Distribution struct {
	Count      int
	Total      int
	Mean       float64
	Min        float64
	Max        float64
	P25        float64
	P50        float64
	P75        float64
}

func newDistribution(values []int) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	floats := make([]float64, len(values))
	total := 0
	for i, v := range values {
		floats[i] = float64(v)
		total += v
	}
	sort.Float64s(floats)
	return Distribution{
		Count: len(values),
		Total: total,
		Mean:  float64(total) / float64(len(values)),
		Min:   floats[0],
		Max:   floats[len(floats)-1],
		P25:   stat.Quantile(0.25, stat.Empirical, floats, nil),
		P50:   stat.Quantile(0.50, stat.Empirical, floats, nil),
		P75:   stat.Quantile(0.75, stat.Empirical, floats, nil),
	}
}

// Report is the full set of distributions computed over one set of loci.
type Report struct {
	NumLoci        int
	NumTranscripts int
	NumGenesCoding int

	CDNALength       Distribution
	ExonLength       Distribution
	IntronLength     Distribution
	CDSLength        Distribution
	UTRLength        Distribution
	ExonsPerTranscript Distribution
}

// Compute gathers statistics across every primary and AS transcript of
// loci.
func Compute(loci []*locus.Locus) Report {
	var cdna, exonLens, intronLens, cdsLens, utrLens, exonsPer []int
	coding := 0
	nTranscripts := 0

	for _, t := range allTranscripts(loci) {
		nTranscripts++
		cdna = append(cdna, t.CDNALength())
		exonsPer = append(exonsPer, t.ExonNum())
		for _, e := range t.Exons {
			exonLens = append(exonLens, e.Len())
		}
		for _, in := range t.Introns {
			intronLens = append(intronLens, int(in.End-in.Start)+1)
		}
		if t.CombinedCDSLength() > 0 {
			coding++
			cdsLens = append(cdsLens, t.CombinedCDSLength())
		}
		if t.CombinedUTRLength() > 0 {
			utrLens = append(utrLens, t.CombinedUTRLength())
		}
	}

	return Report{
		NumLoci:            len(loci),
		NumTranscripts:     nTranscripts,
		NumGenesCoding:     coding,
		CDNALength:         newDistribution(cdna),
		ExonLength:         newDistribution(exonLens),
		IntronLength:       newDistribution(intronLens),
		CDSLength:          newDistribution(cdsLens),
		UTRLength:          newDistribution(utrLens),
		ExonsPerTranscript: newDistribution(exonsPer),
	}
}

// allTranscripts flattens every locus's primary and AS members.
func allTranscripts(loci []*locus.Locus) []*transcript.Transcript {
	var out []*transcript.Transcript
	for _, l := range loci {
		out = append(out, l.Primary)
		out = append(out, l.AS...)
	}
	return out
}

// Write renders the report as TSV: three two-column count rows (name,
// value), then a header row and one row per length distribution with its
// count, total, mean, min, p25, p50, p75 and max.
func Write(w io.Writer, r Report) error {
	rows := []struct {
		name string
		d    Distribution
	}{
		{"cdna_length", r.CDNALength},
		{"exon_length", r.ExonLength},
		{"intron_length", r.IntronLength},
		{"cds_length", r.CDSLength},
		{"utr_length", r.UTRLength},
		{"exons_per_transcript", r.ExonsPerTranscript},
	}
	if _, err := fmt.Fprintf(w, "num_loci\t%d\n", r.NumLoci); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "num_transcripts\t%d\n", r.NumTranscripts); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "num_coding\t%d\n", r.NumGenesCoding); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "metric\tcount\ttotal\tmean\tmin\tp25\tp50\tp75\tmax"); err != nil {
		return err
	}
	for _, row := range rows {
		d := row.d
		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%g\t%g\t%g\t%g\t%g\t%g\n",
			row.name, d.Count, d.Total, d.Mean, d.Min, d.P25, d.P50, d.P75, d.Max); err != nil {
			return err
		}
	}
	return nil
}
