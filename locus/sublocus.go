package locus

import (
	"github.com/Lvmingjie/mikado/errs"
	"github.com/Lvmingjie/mikado/scoring"
	"github.com/Lvmingjie/mikado/transcript"
)

// Sublocus is one connected component of the sublocus graph (§4.6): a
// "same-intron-chain family" of transcripts competing for the same
// genomic slot.
type Sublocus struct {
	*AbstractLocus
	ID   string
	opts RunOptions
	pool []*transcript.Transcript
}

// NewSublocus builds a Sublocus from one sublocus-predicate connected
// component.
func NewSublocus(id string, members []*transcript.Transcript, opts RunOptions) (*Sublocus, error) {
	if len(members) == 0 {
		return nil, errs.New(errs.InvalidTranscript, "sublocus "+id+" has no members")
	}
	al := NewAbstractLocus(members[0], opts.Stranded)
	for _, t := range members[1:] {
		if err := al.AddTranscript(t); err != nil {
			return nil, err
		}
	}
	return &Sublocus{
		AbstractLocus: al,
		ID:            id,
		opts:          opts,
		pool:          append([]*transcript.Transcript(nil), members...),
	}, nil
}

// DefineMonosubloci runs the §4.6 prefilter/score/greedy-select pipeline:
// it computes locus-relative metrics, applies the requirements prefilter
// (routing failing transcripts to the Excluded return value when purge is
// enabled), scores the survivors, then repeatedly emits the best-scoring
// remaining transcript as its own Monosublocus and discards everything
// that intersects it under the sublocus predicate.
func (s *Sublocus) DefineMonosubloci() (monos []*Monosublocus, excluded []*transcript.Transcript, err error) {
	ComputeMetrics(s.AbstractLocus, s.pool)

	failing := make(map[*transcript.Transcript]bool)
	if s.opts.Requirements != nil {
		for _, t := range s.pool {
			if !s.opts.Requirements.Evaluate(scoring.Metrics(t)) {
				failing[t] = true
			}
		}
	}

	var remaining, scoreable []*transcript.Transcript
	for _, t := range s.pool {
		if failing[t] {
			t.Score = 0
			if s.opts.Purge {
				excluded = append(excluded, t)
				continue
			}
			remaining = append(remaining, t)
			continue
		}
		remaining = append(remaining, t)
		scoreable = append(scoreable, t)
	}

	if s.opts.Scorer != nil && len(scoreable) > 0 {
		if err := s.opts.Scorer.Score(scoreable); err != nil {
			return nil, nil, err
		}
	}

	pred := s.opts.sublocusPredicate()
	counters := make(map[string]int)
	pool := remaining
	for len(pool) > 0 {
		best := pickBest(pool)

		kind := "multi"
		if best.IsMonoexonic() {
			kind = "mono"
		}
		n := counters[kind]
		counters[kind] = max(n+1, 2)
		mono := NewMonosublocus(s.ID, best, n)
		monos = append(monos, mono)

		var next []*transcript.Transcript
		for _, t := range pool {
			if t == best || pred(best, t) {
				continue
			}
			next = append(next, t)
		}
		pool = next
	}
	return monos, excluded, nil
}

// pickBest selects the transcript with the highest score, breaking ties by
// (cdna_length desc, transcript id asc) for determinism (§8 "Scoring
// determinism").
func pickBest(pool []*transcript.Transcript) *transcript.Transcript {
	best := pool[0]
	for _, t := range pool[1:] {
		if better(t, best) {
			best = t
		}
	}
	return best
}

func better(a, b *transcript.Transcript) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if la, lb := a.CDNALength(), b.CDNALength(); la != lb {
		return la > lb
	}
	return a.ID < b.ID
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
