package transcript

import (
	"fmt"
	"sort"

	"github.com/Lvmingjie/mikado/interval"
)

// HSP is one high-scoring pair within a BLAST hit, in transcript (query)
// coordinates.
type HSP struct {
	QueryHSPStart int
	QueryHSPEnd   int
	HSPEvalue     float64
}

// BlastHit is one BLAST hit for a transcript, in transcript (query)
// coordinates.
type BlastHit struct {
	QueryStart int
	QueryEnd   int
	Evalue     float64
	Target     string
	HSPs       []HSP
}

// ChimeraConfig mirrors the chimera_split.* configuration keys of §3.
type ChimeraConfig struct {
	Execute             bool
	BlastCheck          bool
	MinimalHSPOverlap   float64
	MaximalHSPEvalue    float64
}

// SplitByCDS splits a finalized transcript with two or more internal ORFs
// into one transcript per ORF (§4.3). When cfg.Execute is false, or the
// transcript has fewer than two internal ORFs, it returns the transcript
// unchanged as a single-element slice. When cfg.BlastCheck is true, the
// split is suppressed (the original transcript is returned unsplit) if the
// supplied BLAST hits provide cross-evidence for the ORFs belonging
// together.
func SplitByCDS(t *Transcript, hits []BlastHit, cfg ChimeraConfig) ([]*Transcript, error) {
	if !cfg.Execute || len(t.InternalORFs) < 2 {
		return []*Transcript{t}, nil
	}
	spans := make([]orfSpan, len(t.InternalORFs))
	for i, orf := range t.InternalORFs {
		lo, hi, err := orfTranscriptSpan(t, orf)
		if err != nil {
			return []*Transcript{t}, nil
		}
		spans[i] = orfSpan{index: i, lo: lo, hi: hi}
	}
	if cfg.BlastCheck && blastSuppressesSplit(spans, hits, cfg) {
		return []*Transcript{t}, nil
	}

	order := append([]orfSpan(nil), spans...)
	sort.Slice(order, func(i, j int) bool { return order[i].lo < order[j].lo })

	cdnaLen := t.CDNALength()
	var children []*Transcript
	for rank, sp := range order {
		left := 1
		if rank > 0 {
			left = (order[rank-1].hi + sp.lo + 1) / 2
		}
		right := cdnaLen
		if rank < len(order)-1 {
			right = (sp.hi + order[rank+1].lo) / 2
		}
		child, err := buildChimeraChild(t, t.InternalORFs[sp.index], left, right, rank+1)
		if err != nil {
			continue // local recoverable: drop this child, keep the others
		}
		children = append(children, child)
	}
	if len(children) == 0 {
		return []*Transcript{t}, nil
	}
	return children, nil
}

type orfSpan struct {
	index  int
	lo, hi int // transcript coordinates
}

// orfTranscriptSpan returns the transcript-coordinate range spanned by an
// ORF's CDS, by mapping its genomic CDS interval endpoints back through the
// transcript's exon layout.
func orfTranscriptSpan(t *Transcript, orf InternalORF) (lo, hi int, err error) {
	cds := orf.CDS()
	if len(cds) == 0 {
		return 0, 0, fmt.Errorf("ORF has no CDS")
	}
	spans := transcriptExonSpans(t)
	lo, hi = -1, -1
	for _, c := range cds {
		for _, pos := range []interval.PosType{c.Start, c.End} {
			tp, ok := transcriptPosOf(spans, t.Strand, pos)
			if !ok {
				continue
			}
			if lo == -1 || tp < lo {
				lo = tp
			}
			if hi == -1 || tp > hi {
				hi = tp
			}
		}
	}
	if lo == -1 {
		return 0, 0, fmt.Errorf("ORF CDS does not map onto any exon")
	}
	return lo, hi, nil
}

// transcriptPosOf is the inverse of genomicPos: given a genomic position
// known to lie within one of spans' exons, returns its 1-based transcript
// coordinate.
func transcriptPosOf(spans []exonSpan, strand Strand, g interval.PosType) (int, bool) {
	for _, span := range spans {
		if g < span.exon.Start || g > span.exon.End {
			continue
		}
		if strand == StrandMinus {
			return span.tStart + int(span.exon.End-g), true
		}
		return span.tStart + int(g-span.exon.Start), true
	}
	return 0, false
}

// blastSuppressesSplit implements the two blast_check conditions of §4.3.
func blastSuppressesSplit(spans []orfSpan, hits []BlastHit, cfg ChimeraConfig) bool {
	if len(hits) == 0 {
		return false
	}
	minLo, maxHi := spans[0].lo, spans[0].hi
	for _, sp := range spans[1:] {
		if sp.lo < minLo {
			minLo = sp.lo
		}
		if sp.hi > maxHi {
			maxHi = sp.hi
		}
	}
	for _, h := range hits {
		if h.QueryStart <= minLo && h.QueryEnd >= maxHi {
			return true
		}
	}

	byTarget := make(map[string][]BlastHit)
	for _, h := range hits {
		byTarget[h.Target] = append(byTarget[h.Target], h)
	}
	for i := 0; i < len(spans); i++ {
		for j := i + 1; j < len(spans); j++ {
			for _, hs := range byTarget {
				if hspsCrossEvidence(hs, spans[i], cfg) && hspsCrossEvidence(hs, spans[j], cfg) {
					return true
				}
			}
		}
	}
	return false
}

func hspsCrossEvidence(hits []BlastHit, sp orfSpan, cfg ChimeraConfig) bool {
	cdsLen := float64(sp.hi-sp.lo) + 1
	for _, h := range hits {
		for _, hsp := range h.HSPs {
			if hsp.HSPEvalue > cfg.MaximalHSPEvalue {
				continue
			}
			ov := min(hsp.QueryHSPEnd, sp.hi) - max(hsp.QueryHSPStart, sp.lo) + 1
			if float64(ov) >= cfg.MinimalHSPOverlap*cdsLen {
				return true
			}
		}
	}
	return false
}

// buildChimeraChild constructs the transcript owned by one ORF of a split,
// whose ownership region in transcript coordinates is [left, right]:
// exons are retained whole when fully inside, clipped (with the clipped
// remainder becoming UTR) at the boundary, and dropped when entirely
// outside.
func buildChimeraChild(t *Transcript, orf InternalORF, left, right, rank int) (*Transcript, error) {
	spans := transcriptExonSpans(t)
	child := New(fmt.Sprintf("%s.orf%d", t.ID, rank), t.Chrom, t.Strand)
	child.Source = t.Source
	child.ParentID = t.ParentID
	for k, v := range t.Attributes {
		child.Attributes[k] = v
	}

	for _, span := range spans {
		lo := max(span.tStart, left)
		hi := min(span.tEnd, right)
		if lo > hi {
			continue // exon falls entirely outside this ORF's ownership region
		}
		g1 := genomicPos(span, t.Strand, lo)
		g2 := genomicPos(span, t.Strand, hi)
		start, end := g1, g2
		if start > end {
			start, end = end, start
		}
		clipped := interval.New(start, end)
		if err := child.AddExon(Record{Kind: RecordExon, Interval: clipped}); err != nil {
			return nil, err
		}
		// Split the clipped exon into CDS/UTR per the owning ORF's own
		// segmentation, so any remainder outside this ORF's CDS (e.g. a
		// flanking piece trimmed off a neighboring ORF's UTR) is still
		// accounted for.
		for _, seg := range orf.Segments {
			if seg.Kind == KindExon {
				continue
			}
			ov := interval.Overlap(clipped, seg.Interval)
			if ov < 0 {
				continue
			}
			segStart, segEnd := seg.Interval.Start, seg.Interval.End
			if segStart < clipped.Start {
				segStart = clipped.Start
			}
			if segEnd > clipped.End {
				segEnd = clipped.End
			}
			kind := RecordUTR
			if seg.Kind == KindCDS {
				kind = RecordCDS
			}
			if err := child.AddExon(Record{Kind: kind, Interval: interval.New(segStart, segEnd)}); err != nil {
				return nil, err
			}
		}
	}
	if err := child.Finalize(); err != nil {
		return nil, err
	}
	return child, nil
}
