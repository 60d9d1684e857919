package locus

import (
	"github.com/Lvmingjie/mikado/interval"
	"github.com/Lvmingjie/mikado/transcript"
)

// ClassCode classifies candidate against primary by intron-chain identity,
// shared junctions, and extent containment, mirroring the small,
// cufflinks-style alphabet the original comparison routine emits. It
// assumes the two transcripts already share chromosome and strand and
// intersect under some predicate.
//
// Recognized codes: "=" identical intron chain; "j" multi-exonic with at
// least one shared junction but not identical; "C" candidate is fully
// contained within primary's extent; "c" candidate fully contains
// primary's extent; "o" any other overlap.
func ClassCode(candidate, primary *transcript.Transcript) string {
	candExtent := interval.New(candidate.Start, candidate.End)
	primExtent := interval.New(primary.Start, primary.End)

	if candidate.IsMonoexonic() || primary.IsMonoexonic() {
		if candidate.IsMonoexonic() && primary.IsMonoexonic() && candExtent == primExtent {
			return "="
		}
	} else if sameIntronChain(candidate, primary) {
		return "="
	} else if sharesIntron(candidate.Introns, primary.Introns) {
		return "j"
	}

	if primExtent.Contains(candExtent) {
		return "C"
	}
	if candExtent.Contains(primExtent) {
		return "c"
	}
	return "o"
}

// sameIntronChain reports whether two multi-exonic transcripts splice
// identically. Only meaningful when both sides have at least one intron;
// callers must exclude the monoexonic case themselves.
func sameIntronChain(a, b *transcript.Transcript) bool {
	if len(a.Introns) == 0 || len(a.Introns) != len(b.Introns) {
		return false
	}
	for i := range a.Introns {
		if a.Introns[i] != b.Introns[i] {
			return false
		}
	}
	return true
}
