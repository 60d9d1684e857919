package transcript

import (
	"sort"

	"github.com/Lvmingjie/mikado/errs"
	"github.com/Lvmingjie/mikado/interval"
)

// CandidateORF is one BED12-like ORF prediction for a transcript, as
// supplied by the external ORF-calling collaborator. ThickStart/ThickEnd
// are 1-based inclusive transcript coordinates.
type CandidateORF struct {
	ThickStart    int
	ThickEnd      int
	Strand        Strand
	HasStartCodon bool
	HasStopCodon  bool
	CDSLen        int
}

// ReconcileORFs replaces a transcript's CDS information with one or more
// ORFs supplied by an external predictor (§4.2), potentially producing
// multiple internal ORFs inside one transcript. candidates need not already
// be sorted; ReconcileORFs sorts a private copy by decreasing CDS length.
// When no candidate survives filtering, the transcript keeps its
// annotation-derived CDS (the fallback of re-running Finalize, which here
// is simply a no-op since Finalize already produced that ORF).
func ReconcileORFs(t *Transcript, candidates []CandidateORF, trustStrand bool, minSecondaryORFLen int) error {
	if !t.finalized {
		return errs.New(errs.InvalidTranscript, "cannot reconcile ORFs before Finalize")
	}
	mono := t.IsMonoexonic()
	cdnaLen := t.CDNALength()

	sorted := append([]CandidateORF(nil), candidates...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CDSLen > sorted[j].CDSLen })

	filtered := make([]CandidateORF, 0, len(sorted))
	for _, c := range sorted {
		if c.ThickStart < 1 || c.ThickEnd > cdnaLen || c.ThickStart > c.ThickEnd {
			continue // InvalidCDS edge case: skip out-of-range candidate
		}
		discardNegative := !mono || trustStrand
		if discardNegative && c.Strand == StrandMinus {
			continue
		}
		filtered = append(filtered, c)
	}
	if len(filtered) == 0 {
		return nil
	}

	g := interval.Build(len(filtered), func(i, j int) bool {
		return filtered[i].Strand == filtered[j].Strand &&
			interval.Overlap(
				interval.New(interval.PosType(filtered[i].ThickStart), interval.PosType(filtered[i].ThickEnd)),
				interval.New(interval.PosType(filtered[j].ThickStart), interval.PosType(filtered[j].ThickEnd)),
			) > 0
	})
	components := g.ConnectedComponents()

	representatives := make([]CandidateORF, 0, len(components))
	for _, comp := range components {
		best := comp[0]
		for _, idx := range comp[1:] {
			if filtered[idx].CDSLen > filtered[best].CDSLen {
				best = idx
			}
		}
		representatives = append(representatives, filtered[best])
	}
	sort.SliceStable(representatives, func(i, j int) bool {
		return representatives[i].CDSLen > representatives[j].CDSLen
	})

	primary := representatives[0]
	retained := []CandidateORF{primary}
	for _, rep := range representatives[1:] {
		if rep.CDSLen >= minSecondaryORFLen {
			retained = append(retained, rep)
		}
	}

	t.HasStartCodon = primary.HasStartCodon
	t.HasStopCodon = primary.HasStopCodon
	if mono {
		if t.Strand == StrandNone {
			t.Strand = primary.Strand
		} else if primary.Strand == StrandMinus && t.Strand != StrandMinus {
			t.Strand = StrandMinus
			kept := retained[:1]
			for _, orf := range retained[1:] {
				if orf.Strand == t.Strand {
					kept = append(kept, orf)
				}
			}
			retained = kept
		}
	}

	orfs := make([]InternalORF, 0, len(retained))
	for _, c := range retained {
		segs, err := projectORF(t, c)
		if err != nil {
			continue // InvalidCDS: drop this ORF, keep the others
		}
		orfs = append(orfs, InternalORF{
			Segments:      segs,
			Strand:        c.Strand,
			HasStartCodon: c.HasStartCodon,
			HasStopCodon:  c.HasStopCodon,
		})
	}
	if len(orfs) == 0 {
		return nil
	}

	t.InternalORFs = orfs
	t.SelectedInternalORFIndex = longestCDSIndex(orfs)

	if len(orfs) == 1 {
		t.CombinedCDS = orfs[0].CDS()
		t.CombinedUTR = orfs[0].UTR()
	} else {
		var allCDS []interval.Interval
		for _, orf := range orfs {
			allCDS = append(allCDS, orf.CDS()...)
		}
		t.CombinedCDS = mergeIntervals(allCDS)
		t.CombinedUTR = subtractIntervals(t.Exons, t.CombinedCDS)
	}
	if len(t.CombinedCDS) > 0 {
		t.Feature = "mRNA"
	} else {
		t.Feature = "ncRNA"
	}
	return nil
}

// longestCDSIndex returns the index of the ORF with the longest CDS,
// ties broken by the lower index.
func longestCDSIndex(orfs []InternalORF) int {
	best := 0
	for i := 1; i < len(orfs); i++ {
		if orfs[i].CDSLength() > orfs[best].CDSLength() {
			best = i
		}
	}
	return best
}

// exonSpan records one exon's genomic interval alongside the 1-based
// transcript-coordinate range it occupies, walking exons in transcriptomic
// (5'->3') order.
type exonSpan struct {
	exon           interval.Interval
	tStart, tEnd   int
}

func transcriptExonSpans(t *Transcript) []exonSpan {
	order := append([]interval.Interval(nil), t.Exons...)
	if t.Strand == StrandMinus {
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}
	spans := make([]exonSpan, 0, len(order))
	cum := 0
	for _, e := range order {
		l := e.Len()
		spans = append(spans, exonSpan{exon: e, tStart: cum + 1, tEnd: cum + l})
		cum += l
	}
	return spans
}

// genomicPos maps a 1-based transcript coordinate inside span back to its
// genomic position, walking forward on '+' and backward on '-'.
func genomicPos(span exonSpan, strand Strand, tPos int) interval.PosType {
	offset := tPos - span.tStart
	if strand == StrandMinus {
		return span.exon.End - interval.PosType(offset)
	}
	return span.exon.Start + interval.PosType(offset)
}

// projectORF walks the transcript's exons in transcriptomic order, emitting
// for each exon the UTR/CDS/UTR pieces implied by orf's ThickStart/ThickEnd,
// translated into genomic Segments.
func projectORF(t *Transcript, orf CandidateORF) ([]Segment, error) {
	cdnaLen := t.CDNALength()
	if orf.ThickStart < 1 || orf.ThickEnd > cdnaLen || orf.ThickStart > orf.ThickEnd {
		return nil, errs.New(errs.InvalidCDS, "ORF thickStart/thickEnd out of transcript range")
	}
	spans := transcriptExonSpans(t)
	var segs []Segment
	addPiece := func(span exonSpan, lo, hi int, kind FeatureKind) {
		if lo > hi {
			return
		}
		g1 := genomicPos(span, t.Strand, lo)
		g2 := genomicPos(span, t.Strand, hi)
		start, end := g1, g2
		if start > end {
			start, end = end, start
		}
		segs = append(segs, Segment{Interval: interval.New(start, end), Kind: kind})
	}
	for _, span := range spans {
		beforeEnd := min(span.tEnd, orf.ThickStart-1)
		addPiece(span, span.tStart, beforeEnd, KindUTR)

		cdsLo := max(span.tStart, orf.ThickStart)
		cdsHi := min(span.tEnd, orf.ThickEnd)
		addPiece(span, cdsLo, cdsHi, KindCDS)

		afterStart := max(span.tStart, orf.ThickEnd+1)
		addPiece(span, afterStart, span.tEnd, KindUTR)
	}
	sort.Slice(segs, func(i, j int) bool {
		if segs[i].Interval.Start != segs[j].Interval.Start {
			return segs[i].Interval.Start < segs[j].Interval.Start
		}
		if segs[i].Interval.End != segs[j].Interval.End {
			return segs[i].Interval.End < segs[j].Interval.End
		}
		return segs[i].Kind < segs[j].Kind
	})
	return segs, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// mergeIntervals collapses a set of (possibly overlapping or abutting)
// intervals into maximal disjoint intervals, sorted by start.
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

// subtractIntervals returns the maximal intervals covering positions in
// base that are not covered by any interval in remove. base is assumed to
// already be a disjoint, sorted set (e.g. a transcript's exons).
func subtractIntervals(base, remove []interval.Interval) []interval.Interval {
	remove = mergeIntervals(remove)
	var out []interval.Interval
	for _, b := range base {
		cursor := b.Start
		for _, r := range remove {
			if r.End < b.Start || r.Start > b.End {
				continue
			}
			rStart, rEnd := r.Start, r.End
			if rStart < b.Start {
				rStart = b.Start
			}
			if rEnd > b.End {
				rEnd = b.End
			}
			if cursor < rStart {
				out = append(out, interval.New(cursor, rStart-1))
			}
			if rEnd+1 > cursor {
				cursor = rEnd + 1
			}
		}
		if cursor <= b.End {
			out = append(out, interval.New(cursor, b.End))
		}
	}
	return out
}
