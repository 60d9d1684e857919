package locus

import (
	"github.com/Lvmingjie/mikado/evidence"
	"github.com/Lvmingjie/mikado/scoring"
	"github.com/Lvmingjie/mikado/transcript"
)

// RunOptions is the explicit context object threaded through every locus
// stage in place of the source's process-wide session and cached
// expressions (§9 "Global mutable state"): run-time flags, the compiled
// requirements/scorer, the chimera-split configuration, and the
// read-only evidence handle.
type RunOptions struct {
	Stranded bool
	CDSOnly  bool // run_options.subloci_from_cds_only
	Purge    bool // run_options.purge

	MonoOverlapFraction float64 // holder-stage floor (§4.4)

	MinimalSecondaryORFLength int
	TrustStrand               bool
	Chimera                   transcript.ChimeraConfig

	MaxIsoforms     int
	ASMaxSimilarity float64
	ASClassCodes    map[string]bool
	ASCDSOnly       bool
	ASReport        bool // alternative_splicing.report

	Requirements *scoring.Requirements // nil disables the prefilter
	Scorer       *scoring.Scorer

	Evidence evidence.Store
}

func (o RunOptions) sublocusPredicate() Predicate {
	return SublocusPredicate(PredicateConfig{Stranded: o.Stranded, CDSOnly: o.CDSOnly})
}

func (o RunOptions) holderPredicate() Predicate {
	return HolderPredicate(PredicateConfig{
		Stranded:            o.Stranded,
		CDSOnly:             o.ASCDSOnly,
		MonoOverlapFraction: o.MonoOverlapFraction,
	})
}

func (o RunOptions) superlocusPredicate() Predicate {
	return SuperlocusPredicate(PredicateConfig{Stranded: o.Stranded})
}
