// Package evidence defines the read-only external-evidence views the
// locus-resolution core consults: verified splice junctions, candidate
// ORFs, and BLAST homology hits (§3, §6). The core never mutates any of
// these views; concrete implementations may be backed by an in-memory map
// (preferred, §5) or an external store.
package evidence

import (
	"fmt"

	"github.com/Lvmingjie/mikado/transcript"
)

// JunctionKey identifies a verified intron by chromosome, 1-based closed
// genomic coordinates, and strand, matching mikado_lib/serializers/
// junction.py's key tuple.
type JunctionKey struct {
	Chrom  string
	Start  int
	End    int
	Strand transcript.Strand
}

func (k JunctionKey) String() string {
	return fmt.Sprintf("%s:%d-%d(%s)", k.Chrom, k.Start, k.End, k.Strand)
}

// Junctions is a read-only view over the set of verified splice junctions.
type Junctions interface {
	// Verified reports whether the given intron is present in the junction
	// view.
	Verified(key JunctionKey) bool
}

// ORFs is a read-only view supplying candidate ORFs for a transcript, keyed
// by transcript identifier.
type ORFs interface {
	ORFsFor(transcriptID string) ([]transcript.CandidateORF, error)
}

// BlastHits is a read-only view supplying BLAST hits for a transcript,
// keyed by transcript identifier.
type BlastHits interface {
	HitsFor(transcriptID string) ([]transcript.BlastHit, error)
}

// Store bundles the three evidence views the core consumes.
type Store interface {
	Junctions
	ORFs
	BlastHits
}
