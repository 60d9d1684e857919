package locus

import (
	"github.com/Lvmingjie/mikado/interval"
	"github.com/Lvmingjie/mikado/transcript"
)

// Predicate decides whether two transcripts intersect under one of the
// locus stages' clustering rules (§4.4). It must be symmetric.
type Predicate func(a, b *transcript.Transcript) bool

// PredicateConfig parameterizes the three stage predicates from the
// relevant run_options configuration keys.
type PredicateConfig struct {
	Stranded            bool
	CDSOnly             bool    // compare CDS introns only (sublocus: run_options.subloci_from_cds_only; holder: alternative_splicing.cds_only)
	MonoOverlapFraction float64 // holder-stage floor for monoexonic overlap admission
}

// SublocusPredicate implements the §4.4 "same-intron-chain family" rule:
// two multi-exonic transcripts intersect iff they share an intron (or CDS
// intron, in cds_only mode); two monoexonic transcripts intersect iff they
// abut or overlap; a mono/multi pair never intersects.
func SublocusPredicate(cfg PredicateConfig) Predicate {
	return func(a, b *transcript.Transcript) bool {
		if !sameChromStrand(a, b, cfg.Stranded) {
			return false
		}
		aMono, bMono := a.IsMonoexonic(), b.IsMonoexonic()
		if aMono != bMono {
			return false
		}
		if aMono {
			return monoexonicTouch(a, b)
		}
		return sharesIntron(transcriptIntrons(a, cfg.CDSOnly), transcriptIntrons(b, cfg.CDSOnly))
	}
}

// HolderPredicate implements the §4.4 MonosublocusHolder rule: cDNA
// overlap plus either a shared splice site (or CDS splice site) or, for a
// monoexonic participant, sufficient overlap fraction of its own length.
func HolderPredicate(cfg PredicateConfig) Predicate {
	return func(a, b *transcript.Transcript) bool {
		if !sameChromStrand(a, b, cfg.Stranded) {
			return false
		}
		if !cdnaOverlaps(a, b) {
			return false
		}
		if sharesSpliceSite(a, b, cfg.CDSOnly) {
			return true
		}
		if a.IsMonoexonic() && monoOverlapFraction(a, b) >= cfg.MonoOverlapFraction {
			return true
		}
		if b.IsMonoexonic() && monoOverlapFraction(b, a) >= cfg.MonoOverlapFraction {
			return true
		}
		return false
	}
}

// SuperlocusPredicate implements the §4.4 rule: any extent overlap on the
// same chromosome (and strand, when stranded).
func SuperlocusPredicate(cfg PredicateConfig) Predicate {
	return func(a, b *transcript.Transcript) bool {
		if !sameChromStrand(a, b, cfg.Stranded) {
			return false
		}
		return interval.Overlap(interval.New(a.Start, a.End), interval.New(b.Start, b.End)) >= 0
	}
}

func sameChromStrand(a, b *transcript.Transcript, stranded bool) bool {
	if a.Chrom != b.Chrom {
		return false
	}
	if stranded && a.Strand != b.Strand {
		return false
	}
	return true
}

func cdnaOverlaps(a, b *transcript.Transcript) bool {
	for _, ea := range a.Exons {
		for _, eb := range b.Exons {
			if ea.Overlaps(eb) {
				return true
			}
		}
	}
	return false
}

func monoexonicTouch(a, b *transcript.Transcript) bool {
	ea, eb := interval.New(a.Start, a.End), interval.New(b.Start, b.End)
	return ea.Overlaps(eb) || ea.Abuts(eb)
}

// monoOverlapFraction returns the fraction of mono's own exonic length
// covered by overlap with other.
func monoOverlapFraction(mono, other *transcript.Transcript) float64 {
	total := 0
	monoLen := mono.CDNALength()
	if monoLen == 0 {
		return 0
	}
	for _, em := range mono.Exons {
		for _, eo := range other.Exons {
			if o := interval.Overlap(em, eo); o >= 0 {
				total += o + 1
			}
		}
	}
	return float64(total) / float64(monoLen)
}

// transcriptIntrons returns t's full intron set, or (when cdsOnly) only
// the introns whose flanking exon bases both lie inside the combined CDS.
func transcriptIntrons(t *transcript.Transcript, cdsOnly bool) []transcript.Intron {
	if !cdsOnly {
		return t.Introns
	}
	var out []transcript.Intron
	for i, in := range t.Introns {
		upstreamExon := t.Exons[i]
		downstreamExon := t.Exons[i+1]
		if posInCDS(t, upstreamExon.End) && posInCDS(t, downstreamExon.Start) {
			out = append(out, in)
		}
	}
	return out
}

func posInCDS(t *transcript.Transcript, pos interval.PosType) bool {
	for _, c := range t.CombinedCDS {
		if pos >= c.Start && pos <= c.End {
			return true
		}
	}
	return false
}

func sharesIntron(a, b []transcript.Intron) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[transcript.Intron]struct{}, len(a))
	for _, in := range a {
		set[in] = struct{}{}
	}
	for _, in := range b {
		if _, ok := set[in]; ok {
			return true
		}
	}
	return false
}

func sharesSpliceSite(a, b *transcript.Transcript, cdsOnly bool) bool {
	aSites := spliceSitesOf(a, cdsOnly)
	bSites := spliceSitesOf(b, cdsOnly)
	if len(aSites) == 0 || len(bSites) == 0 {
		return false
	}
	for site := range aSites {
		if _, ok := bSites[site]; ok {
			return true
		}
	}
	return false
}

func spliceSitesOf(t *transcript.Transcript, cdsOnly bool) map[interval.PosType]struct{} {
	sites := make(map[interval.PosType]struct{})
	for _, in := range transcriptIntrons(t, cdsOnly) {
		sites[in.Start] = struct{}{}
		sites[in.End] = struct{}{}
	}
	return sites
}
