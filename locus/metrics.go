package locus

import (
	"sort"

	"github.com/Lvmingjie/mikado/interval"
	"github.com/Lvmingjie/mikado/transcript"
)

// ComputeMetrics writes the locus-relative fraction metrics (§4.6) onto
// every member transcript: exon_fraction, intron_fraction,
// cds_intron_fraction, selected_cds_intron_fraction, retained_fraction and
// retained_introns. container supplies the union of splice sites/introns
// the fractions are computed against; its denominators differ between a
// Sublocus and a MonosublocusHolder call, per §4.8.
func ComputeMetrics(container *AbstractLocus, members []*transcript.Transcript) {
	unionExonLen := unionIntervalLen(collectExons(members))
	unionIntronLen := intronSetLen(container.Introns)
	unionCDSIntronLen := intronSliceLen(unionCDSIntrons(members, false))
	unionSelectedCDSIntronLen := intronSliceLen(unionSelectedCDSIntrons(members))

	for _, t := range members {
		t.ExonFraction = safeDiv(t.CDNALength(), unionExonLen)
		t.IntronFraction = safeDiv(intronSliceLen(t.Introns), unionIntronLen)
		t.CDSIntronFraction = safeDiv(intronSliceLen(transcriptIntrons(t, true)), unionCDSIntronLen)
		t.SelectedCDSIntronFraction = safeDiv(intronSliceLen(selectedCDSIntrons(t)), unionSelectedCDSIntronLen)

		retainedLen, retained := retainedIntrons(container, t)
		t.RetainedIntrons = retained
		t.RetainedFraction = safeDiv(retainedLen, t.CDNALength())
	}
}

func safeDiv(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func collectExons(members []*transcript.Transcript) []interval.Interval {
	var all []interval.Interval
	for _, t := range members {
		all = append(all, t.Exons...)
	}
	return all
}

func unionIntervalLen(ivs []interval.Interval) int {
	merged := mergeIntervals(ivs)
	total := 0
	for _, iv := range merged {
		total += iv.Len()
	}
	return total
}

func mergeIntervals(ivs []interval.Interval) []interval.Interval {
	if len(ivs) == 0 {
		return nil
	}
	sorted := append([]interval.Interval(nil), ivs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
	out := []interval.Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &out[len(out)-1]
		if iv.Start <= last.End+1 {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

func intronSetLen(set map[transcript.Intron]struct{}) int {
	total := 0
	for in := range set {
		total += int(in.End-in.Start) + 1
	}
	return total
}

func intronSliceLen(introns []transcript.Intron) int {
	total := 0
	for _, in := range introns {
		total += int(in.End-in.Start) + 1
	}
	return total
}

func unionCDSIntrons(members []*transcript.Transcript, _ bool) []transcript.Intron {
	seen := make(map[transcript.Intron]struct{})
	var out []transcript.Intron
	for _, t := range members {
		for _, in := range transcriptIntrons(t, true) {
			if _, ok := seen[in]; !ok {
				seen[in] = struct{}{}
				out = append(out, in)
			}
		}
	}
	return out
}

func unionSelectedCDSIntrons(members []*transcript.Transcript) []transcript.Intron {
	seen := make(map[transcript.Intron]struct{})
	var out []transcript.Intron
	for _, t := range members {
		for _, in := range selectedCDSIntrons(t) {
			if _, ok := seen[in]; !ok {
				seen[in] = struct{}{}
				out = append(out, in)
			}
		}
	}
	return out
}

// selectedCDSIntrons returns the introns whose flanking exon bases both
// fall inside the selected internal ORF's own CDS segments (as opposed to
// transcriptIntrons(t, true), which considers the transcript's combined
// CDS from every internal ORF).
func selectedCDSIntrons(t *transcript.Transcript) []transcript.Intron {
	orf, ok := t.SelectedORF()
	if !ok {
		return nil
	}
	cds := orf.CDS()
	inCDS := func(pos interval.PosType) bool {
		for _, c := range cds {
			if pos >= c.Start && pos <= c.End {
				return true
			}
		}
		return false
	}
	var out []transcript.Intron
	for i, in := range t.Introns {
		if inCDS(t.Exons[i].End) && inCDS(t.Exons[i+1].Start) {
			out = append(out, in)
		}
	}
	return out
}

// retainedIntrons returns the total exonic length contributed by exons of
// t that fully contain a locus intron (i.e. t does not itself splice out
// that intron), plus the distinct retained introns themselves (§4.6).
func retainedIntrons(container *AbstractLocus, t *transcript.Transcript) (int, []transcript.Intron) {
	var retained []transcript.Intron
	total := 0
	countedExon := make(map[int]bool)
	for in := range container.Introns {
		for i, exon := range t.Exons {
			if exon.Start <= in.Start && exon.End >= in.End {
				retained = append(retained, in)
				if !countedExon[i] {
					countedExon[i] = true
					total += exon.Len()
				}
				break
			}
		}
	}
	return total, retained
}
