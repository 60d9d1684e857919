package locus

import (
	"fmt"
	"sort"

	"github.com/Lvmingjie/mikado/errs"
	"github.com/Lvmingjie/mikado/evidence"
	"github.com/Lvmingjie/mikado/transcript"
)

// Superlocus is the top-level container: a maximal set of overlapping
// transcripts on a chromosome (and strand, when stranded). It owns the
// one-way define_subloci -> define_monosubloci -> define_loci progression
// (§4.5), single-threaded per §5.
type Superlocus struct {
	*AbstractLocus
	ID   string
	opts RunOptions

	transcripts []*transcript.Transcript

	subloci     []*Sublocus
	monosubloci []*Monosublocus
	holders     []*MonosublocusHolder
	loci        []*Locus
	excluded    *Excluded

	definedSubloci     bool
	definedMonosubloci bool
	definedLoci        bool
}

// NewSuperlocus seeds a superlocus from its first transcript.
func NewSuperlocus(id string, seed *transcript.Transcript, opts RunOptions) *Superlocus {
	return &Superlocus{
		AbstractLocus: NewAbstractLocus(seed, opts.Stranded),
		ID:            id,
		opts:          opts,
		transcripts:   []*transcript.Transcript{seed},
		excluded:      NewExcluded(id + ".excluded"),
	}
}

// AddTranscript extends the superlocus with one more transcript.
func (s *Superlocus) AddTranscript(t *transcript.Transcript) error {
	if err := s.AbstractLocus.AddTranscript(t); err != nil {
		return err
	}
	s.transcripts = append(s.transcripts, t)
	return nil
}

// Transcripts returns the superlocus's member transcripts.
func (s *Superlocus) Transcripts() []*transcript.Transcript { return s.transcripts }

// Excluded returns the superlocus's Excluded sink.
func (s *Superlocus) Excluded() *Excluded { return s.excluded }

// SplitStrands separates a mixed-strand superlocus into maximal
// same-strand runs (§4.5): transcripts are grouped by strand, sorted by
// genomic start, then broken into runs wherever two consecutive
// transcripts fail to overlap (an "overlap discontinuity"). Each run
// becomes its own Superlocus.
func (s *Superlocus) SplitStrands() []*Superlocus {
	byStrand := make(map[transcript.Strand][]*transcript.Transcript)
	for _, t := range s.transcripts {
		byStrand[t.Strand] = append(byStrand[t.Strand], t)
	}

	var out []*Superlocus
	runIdx := 0
	for _, group := range byStrand {
		sort.Slice(group, func(i, j int) bool {
			if group[i].Start != group[j].Start {
				return group[i].Start < group[j].Start
			}
			return group[i].ID < group[j].ID
		})
		var runs [][]*transcript.Transcript
		cur := []*transcript.Transcript{group[0]}
		curEnd := group[0].End
		for _, t := range group[1:] {
			if t.Start <= curEnd {
				cur = append(cur, t)
				if t.End > curEnd {
					curEnd = t.End
				}
				continue
			}
			runs = append(runs, cur)
			cur = []*transcript.Transcript{t}
			curEnd = t.End
		}
		runs = append(runs, cur)

		for _, run := range runs {
			runIdx++
			sl := NewSuperlocus(fmt.Sprintf("%s.%d", s.ID, runIdx), run[0], s.opts)
			for _, t := range run[1:] {
				sl.AddTranscript(t)
			}
			out = append(out, sl)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].End < out[j].End
	})
	return out
}

// LoadAllTranscriptData implements load_all_transcript_data (§4.5): it
// computes locus_verified_introns from the junction evidence view, then
// loads per-transcript ORF/chimera data, replacing split parents with
// their children. After loading, any transcript with no CDS is tagged
// ncRNA.
func (s *Superlocus) LoadAllTranscriptData() error {
	verified := make(map[transcript.Intron]struct{})
	for _, t := range s.transcripts {
		for _, in := range t.Introns {
			key := evidence.JunctionKey{Chrom: t.Chrom, Start: int(in.Start), End: int(in.End), Strand: t.Strand}
			if s.opts.Evidence != nil && s.opts.Evidence.Verified(key) {
				verified[in] = struct{}{}
			}
		}
	}
	for _, t := range s.transcripts {
		n := 0
		for _, in := range t.Introns {
			if _, ok := verified[in]; ok {
				n++
			}
		}
		t.VerifiedIntronsNum = n
	}

	var replaced []*transcript.Transcript
	for _, t := range s.transcripts {
		children, err := s.loadTranscriptData(t)
		if err != nil {
			return err
		}
		replaced = append(replaced, children...)
	}
	s.transcripts = replaced

	for _, t := range s.transcripts {
		if t.CombinedCDSLength() == 0 {
			t.Feature = "ncRNA"
		}
	}
	return nil
}

// loadTranscriptData loads candidate ORFs for t, reconciles them, and
// optionally splits the result into chimera children. IOError/
// EvidenceUnavailable from the evidence store is recoverable (§7): the
// transcript proceeds with empty evidence and is annotated.
func (s *Superlocus) loadTranscriptData(t *transcript.Transcript) ([]*transcript.Transcript, error) {
	if s.opts.Evidence == nil {
		return []*transcript.Transcript{t}, nil
	}
	orfs, err := s.opts.Evidence.ORFsFor(t.ID)
	if err != nil {
		t.Attributes["evidence_unavailable"] = "orfs"
		orfs = nil
	}
	if len(orfs) > 0 {
		if err := transcript.ReconcileORFs(t, orfs, s.opts.TrustStrand, s.opts.MinimalSecondaryORFLength); err != nil {
			if !errs.Is(errs.InvalidCDS, err) {
				return nil, err
			}
			t.Attributes["invalid_cds"] = "true"
		}
	}

	if !s.opts.Chimera.Execute || len(t.InternalORFs) < 2 {
		return []*transcript.Transcript{t}, nil
	}
	hits, err := s.opts.Evidence.HitsFor(t.ID)
	if err != nil {
		t.Attributes["evidence_unavailable"] = "hits"
		hits = nil
	}
	children, err := transcript.SplitByCDS(t, hits, s.opts.Chimera)
	if err != nil {
		return nil, err
	}
	return children, nil
}

// DefineSubloci partitions the superlocus's transcripts into sublocus
// connected components (§4.4/§4.5). Memoized: repeated calls are no-ops.
func (s *Superlocus) DefineSubloci() error {
	if s.definedSubloci {
		return nil
	}
	pred := s.opts.sublocusPredicate()
	groups := groupByPredicate(s.transcripts, pred)
	for i, group := range groups {
		sl, err := NewSublocus(fmt.Sprintf("%s.sublocus%d", s.ID, i+1), group, s.opts)
		if err != nil {
			return err
		}
		s.subloci = append(s.subloci, sl)
	}
	s.definedSubloci = true
	return nil
}

// DefineMonosubloci triggers DefineSubloci if needed, then runs each
// sublocus's greedy selection, collecting the resulting monosubloci and
// routing prefilter failures to the Excluded sink.
func (s *Superlocus) DefineMonosubloci() error {
	if s.definedMonosubloci {
		return nil
	}
	if err := s.DefineSubloci(); err != nil {
		return err
	}
	for _, sl := range s.subloci {
		monos, excluded, err := sl.DefineMonosubloci()
		if err != nil {
			return err
		}
		s.monosubloci = append(s.monosubloci, monos...)
		for _, t := range excluded {
			s.excluded.Add(t)
		}
	}
	s.definedMonosubloci = true
	return nil
}

// DefineLoci triggers DefineMonosubloci if needed, aggregates monosubloci
// into MonosublocusHolders under the holder predicate, promotes each
// holder's top transcript to a Locus, then elaborates alternative
// splicing when enabled, restricting AS candidacy to transcripts that
// appear in exactly one clique containing exactly one locus primary
// (§4.9).
func (s *Superlocus) DefineLoci() error {
	if s.definedLoci {
		return nil
	}
	if err := s.DefineMonosubloci(); err != nil {
		return err
	}

	monoTranscripts := make([]*transcript.Transcript, len(s.monosubloci))
	byTranscript := make(map[*transcript.Transcript]*Monosublocus, len(s.monosubloci))
	for i, m := range s.monosubloci {
		monoTranscripts[i] = m.Transcript
		byTranscript[m.Transcript] = m
	}
	pred := s.opts.holderPredicate()
	groups := groupByPredicate(monoTranscripts, pred)

	for i, group := range groups {
		var monos []*Monosublocus
		for _, t := range group {
			monos = append(monos, byTranscript[t])
		}
		holder, err := NewMonosublocusHolder(fmt.Sprintf("%s.holder%d", s.ID, i+1), monos, s.opts)
		if err != nil {
			return err
		}
		s.holders = append(s.holders, holder)

		primary, err := holder.PromotePrimary()
		if err != nil {
			return err
		}
		locus := NewLocus(fmt.Sprintf("%s.locus%d", s.ID, i+1), primary, s.opts)
		s.loci = append(s.loci, locus)
	}

	if s.opts.ASReport {
		s.elaborateAlternativeSplicing()
	}

	sort.Slice(s.loci, func(i, j int) bool {
		a, b := s.loci[i], s.loci[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.End != b.End {
			return a.End < b.End
		}
		if a.Strand != b.Strand {
			return a.Strand < b.Strand
		}
		return a.Primary.ID < b.Primary.ID
	})

	s.definedLoci = true
	return nil
}

// elaborateAlternativeSplicing restricts AS candidacy to transcripts
// appearing in exactly one maximal clique of the superlocus predicate
// graph that contains exactly one locus primary (§4.9's anti-chimera
// guard), then attempts AddAlternative for each such candidate against
// that locus.
func (s *Superlocus) elaborateAlternativeSplicing() {
	primaries := make(map[*transcript.Transcript]*Locus, len(s.loci))
	for _, l := range s.loci {
		primaries[l.Primary] = l
	}

	pred := s.opts.superlocusPredicate()
	g := buildGraph(s.transcripts, pred)
	cliques := g.MaximalCliques()

	membership := make(map[int]int) // transcript index -> number of cliques containing it
	cliqueLocus := make(map[int]*Locus)
	for ci, clique := range cliques {
		var found *Locus
		count := 0
		for _, idx := range clique {
			if l, ok := primaries[s.transcripts[idx]]; ok {
				found = l
				count++
			}
		}
		for _, idx := range clique {
			membership[idx]++
		}
		if count == 1 {
			cliqueLocus[ci] = found
		}
	}

	for ci, clique := range cliques {
		l := cliqueLocus[ci]
		if l == nil {
			continue
		}
		for _, idx := range clique {
			t := s.transcripts[idx]
			if t == l.Primary {
				continue
			}
			if membership[idx] != 1 {
				continue // ambiguous: appears in more than one clique
			}
			l.AddAlternative(t) // rejection is recoverable; candidate simply dropped
		}
	}
}

// Loci returns the superlocus's final loci, in deterministic output
// order (§5 "Ordering guarantees").
func (s *Superlocus) Loci() []*Locus { return s.loci }

// BuildSuperloci groups transcripts into superlocus connected components
// per-chromosome, under the superlocus predicate (§4.4/§4.5). When opts
// is not stranded, each resulting superlocus is immediately split into
// same-strand runs, since a downstream stage always needs a single
// strand to work with.
func BuildSuperloci(transcripts []*transcript.Transcript, opts RunOptions) []*Superlocus {
	byChrom := make(map[string][]*transcript.Transcript)
	for _, t := range transcripts {
		byChrom[t.Chrom] = append(byChrom[t.Chrom], t)
	}
	chroms := make([]string, 0, len(byChrom))
	for c := range byChrom {
		chroms = append(chroms, c)
	}
	sort.Strings(chroms)

	pred := opts.superlocusPredicate()
	var out []*Superlocus
	idx := 0
	for _, chrom := range chroms {
		group := byChrom[chrom]
		sort.Slice(group, func(i, j int) bool { return group[i].Start < group[j].Start })
		for _, comp := range groupByPredicate(group, pred) {
			idx++
			sl := NewSuperlocus(fmt.Sprintf("superlocus%d", idx), comp[0], opts)
			for _, t := range comp[1:] {
				sl.AddTranscript(t)
			}
			if opts.Stranded {
				out = append(out, sl)
			} else {
				out = append(out, sl.SplitStrands()...)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Chrom != out[j].Chrom {
			return out[i].Chrom < out[j].Chrom
		}
		return out[i].Start < out[j].Start
	})
	return out
}
