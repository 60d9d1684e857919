package locus

import (
	"sort"

	"github.com/Lvmingjie/mikado/errs"
	"github.com/Lvmingjie/mikado/transcript"
)

// MonosublocusHolder aggregates monosubloci under the holder predicate
// (§4.8): insertion is by genomic coordinate order, members are rescored
// with holder-level denominators, and the single top transcript is
// promoted to a Locus primary.
type MonosublocusHolder struct {
	*AbstractLocus
	ID          string
	Monosubloci []*Monosublocus
	opts        RunOptions
}

// NewMonosublocusHolder builds a holder from a set of monosubloci already
// known to be mutually connected under the holder predicate.
func NewMonosublocusHolder(id string, monos []*Monosublocus, opts RunOptions) (*MonosublocusHolder, error) {
	if len(monos) == 0 {
		return nil, errs.New(errs.InvalidTranscript, "monosublocus holder "+id+" has no members")
	}
	sorted := append([]*Monosublocus(nil), monos...)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i].Transcript, sorted[j].Transcript
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		return a.ID < b.ID
	})

	al := NewAbstractLocus(sorted[0].Transcript, opts.Stranded)
	for _, m := range sorted[1:] {
		if err := al.AddTranscript(m.Transcript); err != nil {
			return nil, err
		}
	}
	return &MonosublocusHolder{AbstractLocus: al, ID: id, Monosubloci: sorted, opts: opts}, nil
}

// Transcripts returns the holder's member transcripts, one per
// monosublocus, in insertion order.
func (h *MonosublocusHolder) Transcripts() []*transcript.Transcript {
	out := make([]*transcript.Transcript, len(h.Monosubloci))
	for i, m := range h.Monosubloci {
		out[i] = m.Transcript
	}
	return out
}

// PromotePrimary recomputes locus-relative metrics and scores at the
// holder's own denominators, then returns the single top-scoring member
// transcript to be promoted to a Locus's primary.
func (h *MonosublocusHolder) PromotePrimary() (*transcript.Transcript, error) {
	members := h.Transcripts()
	ComputeMetrics(h.AbstractLocus, members)
	if h.opts.Scorer != nil {
		if err := h.opts.Scorer.Score(members); err != nil {
			return nil, err
		}
	}
	return pickBest(members), nil
}
