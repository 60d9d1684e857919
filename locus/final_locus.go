package locus

import (
	"fmt"

	"github.com/Lvmingjie/mikado/errs"
	"github.com/Lvmingjie/mikado/interval"
	"github.com/Lvmingjie/mikado/transcript"
)

// Locus is a primary transcript plus its admitted alternative-splicing
// members (§4.9).
type Locus struct {
	*AbstractLocus
	ID      string
	Primary *transcript.Transcript
	AS      []*transcript.Transcript
	opts    RunOptions
}

// NewLocus seeds a Locus from its promoted primary transcript.
func NewLocus(id string, primary *transcript.Transcript, opts RunOptions) *Locus {
	return &Locus{
		AbstractLocus: NewAbstractLocus(primary, true),
		ID:            id,
		Primary:       primary,
		opts:          opts,
	}
}

// AddAlternative attempts to admit t as an alternative-splicing member,
// applying the five §4.9 gates in order. A rejection returns NotInLocus,
// which is recoverable at this stage (§7): the caller simply drops the
// candidate and continues.
func (l *Locus) AddAlternative(t *transcript.Transcript) error {
	if t.Chrom != l.Primary.Chrom {
		return errs.New(errs.NotInLocus, fmt.Sprintf("candidate %s is on a different chromosome than primary %s", t.ID, l.Primary.ID))
	}
	if t.Strand != l.Primary.Strand {
		return errs.New(errs.NotInLocus, fmt.Sprintf("candidate %s strand disagrees with primary %s", t.ID, l.Primary.ID))
	}
	pred := l.opts.holderPredicate()
	if !pred(t, l.Primary) {
		return errs.New(errs.NotInLocus, fmt.Sprintf("candidate %s does not intersect primary %s under the AS predicate", t.ID, l.Primary.ID))
	}
	code := ClassCode(t, l.Primary)
	if !l.opts.ASClassCodes[code] {
		return errs.New(errs.NotInLocus, fmt.Sprintf("candidate %s class code %q is not in the AS allow-list", t.ID, code))
	}
	if l.opts.MaxIsoforms > 0 && len(l.AS) >= l.opts.MaxIsoforms {
		return errs.New(errs.NotInLocus, fmt.Sprintf("locus %s is at its alternative-splicing cap", l.ID))
	}
	for _, admitted := range l.AS {
		if overlapFraction(t, admitted) > l.opts.ASMaxSimilarity {
			return errs.New(errs.NotInLocus, fmt.Sprintf("candidate %s is too similar to already-admitted %s", t.ID, admitted.ID))
		}
	}

	l.AS = append(l.AS, t)
	return l.AbstractLocus.AddTranscript(t)
}

// overlapFraction is the shared exonic bases between a and b divided by
// the shorter transcript's own cDNA length, used for the AS similarity
// cap (§4.9 step 5).
func overlapFraction(a, b *transcript.Transcript) float64 {
	shorter := a.CDNALength()
	if b.CDNALength() < shorter {
		shorter = b.CDNALength()
	}
	if shorter == 0 {
		return 0
	}
	total := 0
	for _, ea := range a.Exons {
		for _, eb := range b.Exons {
			if o := interval.Overlap(ea, eb); o >= 0 {
				total += o + 1
			}
		}
	}
	return float64(total) / float64(shorter)
}

// Excluded is the sink locus for transcripts routed out of the main
// progression: requirements-prefilter failures under purge (§4.4) and
// other recoverable rejections a driver chooses to record rather than
// silently drop.
type Excluded struct {
	ID          string
	Transcripts []*transcript.Transcript
}

// NewExcluded returns an empty Excluded sink.
func NewExcluded(id string) *Excluded {
	return &Excluded{ID: id}
}

// Add appends t to the sink.
func (e *Excluded) Add(t *transcript.Transcript) {
	e.Transcripts = append(e.Transcripts, t)
}
