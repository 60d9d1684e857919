// Package locus implements the abstract-locus hierarchy (§4.4-§4.9):
// Superlocus, Sublocus, Monosublocus, MonosublocusHolder, Locus and its
// Excluded sink, built atop a shared interval-graph/scoring core.
package locus

import (
	"fmt"

	"github.com/Lvmingjie/mikado/errs"
	"github.com/Lvmingjie/mikado/interval"
	"github.com/Lvmingjie/mikado/transcript"
)

// AbstractLocus is the common container embedded by every stage type: it
// tracks the aggregate chromosome/strand/extent and the union of splice
// sites and introns over its member transcripts (§3 "Abstract Locus").
type AbstractLocus struct {
	Chrom    string
	Strand   transcript.Strand
	Stranded bool
	Start    interval.PosType
	End      interval.PosType

	SpliceSites map[interval.PosType]struct{}
	Introns     map[transcript.Intron]struct{}

	members []*transcript.Transcript
}

// NewAbstractLocus seeds a locus from its first transcript.
func NewAbstractLocus(seed *transcript.Transcript, stranded bool) *AbstractLocus {
	a := &AbstractLocus{
		Chrom:       seed.Chrom,
		Strand:      seed.Strand,
		Stranded:    stranded,
		Start:       seed.Start,
		End:         seed.End,
		SpliceSites: make(map[interval.PosType]struct{}),
		Introns:     make(map[transcript.Intron]struct{}),
	}
	a.absorb(seed)
	return a
}

// AddTranscript extends the locus's extent and merges in t's splice sites
// and introns. It fails with NotInLocus if t disagrees on chromosome, or
// on strand when the locus is stranded.
func (a *AbstractLocus) AddTranscript(t *transcript.Transcript) error {
	if t.Chrom != a.Chrom {
		return errs.New(errs.NotInLocus, fmt.Sprintf("transcript %s is on chromosome %s, locus is on %s", t.ID, t.Chrom, a.Chrom))
	}
	if a.Stranded && t.Strand != a.Strand {
		return errs.New(errs.NotInLocus, fmt.Sprintf("transcript %s strand %s disagrees with locus strand %s", t.ID, t.Strand, a.Strand))
	}
	a.absorb(t)
	return nil
}

func (a *AbstractLocus) absorb(t *transcript.Transcript) {
	if len(a.members) == 0 {
		a.Start, a.End = t.Start, t.End
	} else {
		if t.Start < a.Start {
			a.Start = t.Start
		}
		if t.End > a.End {
			a.End = t.End
		}
	}
	for _, s := range t.SpliceSites {
		a.SpliceSites[s] = struct{}{}
	}
	for _, in := range t.Introns {
		a.Introns[in] = struct{}{}
	}
	a.members = append(a.members, t)
}

// Members returns the locus's member transcripts, in insertion order.
func (a *AbstractLocus) Members() []*transcript.Transcript { return a.members }

// Len returns the number of member transcripts.
func (a *AbstractLocus) Len() int { return len(a.members) }
