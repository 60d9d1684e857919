// Package transcript implements the leaf stage of the locus-resolution
// pipeline: normalizing exons/CDS/UTR, reconciling candidate ORFs into one
// or more internal ORFs, and exposing the primary numeric attributes the
// scoring engine derives metrics from.
package transcript

import (
	"fmt"
	"sort"

	"github.com/Lvmingjie/mikado/errs"
	"github.com/Lvmingjie/mikado/interval"
)

// Strand is the genomic strand a transcript (or ORF) lies on.
type Strand int8

const (
	StrandNone Strand = iota
	StrandPlus
	StrandMinus
)

func (s Strand) String() string {
	switch s {
	case StrandPlus:
		return "+"
	case StrandMinus:
		return "-"
	default:
		return "."
	}
}

func (s Strand) Flip() Strand {
	switch s {
	case StrandPlus:
		return StrandMinus
	case StrandMinus:
		return StrandPlus
	default:
		return StrandNone
	}
}

// FeatureKind tags a segment of an internal ORF's typed segmentation.
type FeatureKind int8

const (
	KindExon FeatureKind = iota
	KindCDS
	KindUTR
)

func (k FeatureKind) String() string {
	switch k {
	case KindCDS:
		return "CDS"
	case KindUTR:
		return "UTR"
	default:
		return "exon"
	}
}

// RecordKind identifies the feature kind of a record passed to AddExon.
type RecordKind int8

const (
	RecordExon RecordKind = iota
	RecordCDS
	RecordUTR
	RecordStartCodon
	RecordStopCodon
)

// Record is one annotation line contributing to a transcript under
// construction (an exon, a combined-CDS or combined-UTR piece, or a
// start/stop codon marker).
type Record struct {
	Kind     RecordKind
	Interval interval.Interval
}

// Segment is one piece of an InternalORF's typed segmentation of the
// transcript's exonic span.
type Segment struct {
	Interval interval.Interval
	Kind     FeatureKind
}

// Intron is a 2-tuple of the genomic bases flanking a gap between two
// consecutive exons: (last base of upstream exon + 1, first base of
// downstream exon - 1).
type Intron struct {
	Start, End interval.PosType
}

// InternalORF is one distinct CDS layout inside a transcript: a partition
// of the transcript's exonic span into {exon, CDS, UTR} pieces, sorted by
// (start, end, kind).
type InternalORF struct {
	Segments      []Segment
	Strand        Strand
	HasStartCodon bool
	HasStopCodon  bool
}

// CDSLength returns the total length of this ORF's CDS segments.
func (orf InternalORF) CDSLength() int {
	total := 0
	for _, s := range orf.Segments {
		if s.Kind == KindCDS {
			total += s.Interval.Len()
		}
	}
	return total
}

// CDS returns the ORF's CDS intervals, in genomic order.
func (orf InternalORF) CDS() []interval.Interval {
	var out []interval.Interval
	for _, s := range orf.Segments {
		if s.Kind == KindCDS {
			out = append(out, s.Interval)
		}
	}
	return out
}

// UTR returns the ORF's UTR intervals, in genomic order.
func (orf InternalORF) UTR() []interval.Interval {
	var out []interval.Interval
	for _, s := range orf.Segments {
		if s.Kind == KindUTR {
			out = append(out, s.Interval)
		}
	}
	return out
}

// Transcript is a normalized RNA-Seq-derived transcript prediction: a
// finalized exon/CDS/UTR layout plus zero or more internal ORFs. It is
// mutated only via AddExon before Finalize is called; after a successful
// Finalize it is immutable except for the scorer-written fields at the
// bottom of the struct.
type Transcript struct {
	ID       string
	ParentID string
	Chrom    string
	Source   string
	Strand   Strand
	Start    interval.PosType
	End      interval.PosType
	Feature  string // "mRNA" or "ncRNA", set by Finalize

	Exons       []interval.Interval
	CombinedCDS []interval.Interval
	CombinedUTR []interval.Interval

	Introns     []Intron
	SpliceSites []interval.PosType

	InternalORFs             []InternalORF
	SelectedInternalORFIndex int

	HasStartCodon bool
	HasStopCodon  bool

	Attributes map[string]string

	finalized       bool
	explicitStart   bool
	explicitStop    bool

	// Scorer-written fields (§4.4, §4.6). Valid only after a scoring pass.
	Score                      float64
	ExonFraction               float64
	IntronFraction             float64
	CDSIntronFraction          float64
	SelectedCDSIntronFraction  float64
	RetainedFraction           float64
	RetainedIntrons            []Intron
	VerifiedIntronsNum         int
}

// New starts a transcript under construction.
func New(id, chrom string, strand Strand) *Transcript {
	return &Transcript{
		ID:         id,
		Chrom:      chrom,
		Strand:     strand,
		Attributes: make(map[string]string),
	}
}

// AddExon appends one annotation record to the transcript. It is an error
// to call AddExon after Finalize has succeeded.
func (t *Transcript) AddExon(rec Record) error {
	if t.finalized {
		return errs.New(errs.InvalidTranscript, "cannot add exon to a finalized transcript")
	}
	switch rec.Kind {
	case RecordExon:
		t.Exons = append(t.Exons, rec.Interval)
	case RecordCDS:
		t.CombinedCDS = append(t.CombinedCDS, rec.Interval)
	case RecordUTR:
		t.CombinedUTR = append(t.CombinedUTR, rec.Interval)
	case RecordStartCodon:
		t.HasStartCodon = true
		t.explicitStart = true
	case RecordStopCodon:
		t.HasStopCodon = true
		t.explicitStop = true
	default:
		return errs.New(errs.InvalidTranscript, fmt.Sprintf("unrecognized record kind %d", rec.Kind))
	}
	return nil
}

// CDNALength returns the sum of exon lengths.
func (t *Transcript) CDNALength() int {
	total := 0
	for _, e := range t.Exons {
		total += e.Len()
	}
	return total
}

// CombinedCDSLength returns the sum of combined-CDS interval lengths.
func (t *Transcript) CombinedCDSLength() int {
	total := 0
	for _, c := range t.CombinedCDS {
		total += c.Len()
	}
	return total
}

// CombinedUTRLength returns the sum of combined-UTR interval lengths.
func (t *Transcript) CombinedUTRLength() int {
	total := 0
	for _, u := range t.CombinedUTR {
		total += u.Len()
	}
	return total
}

// ExonNum returns the number of exons.
func (t *Transcript) ExonNum() int { return len(t.Exons) }

// IsMonoexonic reports whether the transcript has exactly one exon.
func (t *Transcript) IsMonoexonic() bool { return len(t.Exons) <= 1 }

// SelectedORF returns the primary internal ORF, or the zero value and false
// if there are none.
func (t *Transcript) SelectedORF() (InternalORF, bool) {
	if t.SelectedInternalORFIndex < 0 || t.SelectedInternalORFIndex >= len(t.InternalORFs) {
		return InternalORF{}, false
	}
	return t.InternalORFs[t.SelectedInternalORFIndex], true
}

// Finalize normalizes the transcript: sorts exons, derives introns and
// splice sites, sorts CDS/UTR, infers start/stop codon flags when not
// explicitly supplied, builds the annotation-derived internal ORF, and
// selects it as primary. It is idempotent: calling it twice on an already
// finalized transcript is a no-op that returns nil.
func (t *Transcript) Finalize() error {
	if t.finalized {
		return nil
	}
	if len(t.Exons) == 0 {
		return errs.New(errs.InvalidTranscript, fmt.Sprintf("transcript %s has no exons", t.ID))
	}
	sort.Slice(t.Exons, func(i, j int) bool { return t.Exons[i].Start < t.Exons[j].Start })
	for i := 1; i < len(t.Exons); i++ {
		if interval.Overlap(t.Exons[i-1], t.Exons[i]) >= 0 {
			return errs.New(errs.InvalidTranscript, fmt.Sprintf("transcript %s has overlapping exons", t.ID))
		}
	}
	if len(t.Exons) > 1 && t.Strand == StrandNone {
		return errs.New(errs.InvalidTranscript, fmt.Sprintf("multi-exon transcript %s has no strand", t.ID))
	}
	if len(t.CombinedUTR) > 0 && len(t.CombinedCDS) == 0 {
		return errs.New(errs.InvalidTranscript, fmt.Sprintf("transcript %s has UTR without CDS", t.ID))
	}

	t.Start = t.Exons[0].Start
	t.End = t.Exons[len(t.Exons)-1].End
	if t.Exons[0].Start != t.Start || t.Exons[len(t.Exons)-1].End != t.End {
		return errs.New(errs.InvalidTranscript, fmt.Sprintf("transcript %s extent disagrees with exons", t.ID))
	}

	t.Introns = t.Introns[:0]
	t.SpliceSites = t.SpliceSites[:0]
	for i := 1; i < len(t.Exons); i++ {
		in := Intron{Start: t.Exons[i-1].End + 1, End: t.Exons[i].Start - 1}
		t.Introns = append(t.Introns, in)
		t.SpliceSites = append(t.SpliceSites, in.Start, in.End)
	}

	sort.Slice(t.CombinedCDS, func(i, j int) bool { return t.CombinedCDS[i].Start < t.CombinedCDS[j].Start })
	sort.Slice(t.CombinedUTR, func(i, j int) bool { return t.CombinedUTR[i].Start < t.CombinedUTR[j].Start })

	if len(t.CombinedCDS) > 0 {
		cdnaLen := t.CDNALength()
		accounted := t.CombinedCDSLength() + t.CombinedUTRLength()
		if accounted != cdnaLen {
			return errs.New(errs.InvalidTranscript, fmt.Sprintf(
				"transcript %s length accounting mismatch: cdna=%d cds+utr=%d", t.ID, cdnaLen, accounted))
		}
		if !t.explicitStart {
			t.HasStartCodon = inferStartCodon(t)
		}
		if !t.explicitStop {
			t.HasStopCodon = inferStopCodon(t)
		}
		t.Feature = "mRNA"
	} else {
		t.Feature = "ncRNA"
	}

	orf := buildAnnotationORF(t)
	t.InternalORFs = []InternalORF{orf}
	t.SelectedInternalORFIndex = 0

	t.finalized = true
	return nil
}

// Finalized reports whether Finalize has succeeded on this transcript.
func (t *Transcript) Finalized() bool { return t.finalized }

// inferStartCodon reports whether the first CDS base is preceded by no UTR
// on the 5' side of the coding strand, i.e. the transcript begins in CDS
// (when the 5' UTR is empty we take that as evidence of a start codon
// exactly at the transcript edge, matching the annotation-derived
// convention the original source uses).
func inferStartCodon(t *Transcript) bool {
	if len(t.CombinedCDS) == 0 {
		return false
	}
	fivePrimeUTR, _ := splitUTRByCDS(t)
	if t.Strand == StrandMinus {
		return utrLen(fivePrimeUTR) == 0 && t.CombinedCDS[len(t.CombinedCDS)-1].End == t.End
	}
	return utrLen(fivePrimeUTR) == 0 && t.CombinedCDS[0].Start == t.Start
}

func inferStopCodon(t *Transcript) bool {
	if len(t.CombinedCDS) == 0 {
		return false
	}
	_, threePrimeUTR := splitUTRByCDS(t)
	if t.Strand == StrandMinus {
		return utrLen(threePrimeUTR) == 0 && t.CombinedCDS[0].Start == t.Start
	}
	return utrLen(threePrimeUTR) == 0 && t.CombinedCDS[len(t.CombinedCDS)-1].End == t.End
}

func utrLen(ivs []interval.Interval) int {
	n := 0
	for _, iv := range ivs {
		n += iv.Len()
	}
	return n
}

// splitUTRByCDS partitions CombinedUTR into the piece upstream of the first
// CDS base ("five prime" on the forward strand) and the piece downstream of
// the last CDS base.
func splitUTRByCDS(t *Transcript) (five, three []interval.Interval) {
	if len(t.CombinedCDS) == 0 {
		return nil, t.CombinedUTR
	}
	cdsStart := t.CombinedCDS[0].Start
	cdsEnd := t.CombinedCDS[len(t.CombinedCDS)-1].End
	for _, u := range t.CombinedUTR {
		if u.End < cdsStart {
			five = append(five, u)
		} else if u.Start > cdsEnd {
			three = append(three, u)
		}
	}
	return five, three
}

// buildAnnotationORF constructs the single internal ORF implied by the
// transcript's own exon/CDS/UTR layout (used by Finalize, and as the
// fallback when ORF reconciliation retains nothing, per §4.2).
func buildAnnotationORF(t *Transcript) InternalORF {
	var segs []Segment
	for _, e := range t.Exons {
		segs = append(segs, partitionExon(e, t.CombinedCDS)...)
	}
	sort.Slice(segs, func(i, j int) bool {
		if segs[i].Interval.Start != segs[j].Interval.Start {
			return segs[i].Interval.Start < segs[j].Interval.Start
		}
		if segs[i].Interval.End != segs[j].Interval.End {
			return segs[i].Interval.End < segs[j].Interval.End
		}
		return segs[i].Kind < segs[j].Kind
	})
	return InternalORF{
		Segments:      segs,
		Strand:        t.Strand,
		HasStartCodon: t.HasStartCodon,
		HasStopCodon:  t.HasStopCodon,
	}
}

// partitionExon splits one exon interval into CDS/UTR/exon pieces against
// the combined CDS set. A non-coding transcript's exon is emitted whole as
// an "exon" kind segment (no CDS present to partition against).
func partitionExon(exon interval.Interval, cds []interval.Interval) []Segment {
	if len(cds) == 0 {
		return []Segment{{Interval: exon, Kind: KindExon}}
	}
	var out []Segment
	cursor := exon.Start
	for _, c := range cds {
		if c.End < exon.Start || c.Start > exon.End {
			continue
		}
		cStart := c.Start
		if cStart < exon.Start {
			cStart = exon.Start
		}
		cEnd := c.End
		if cEnd > exon.End {
			cEnd = exon.End
		}
		if cursor < cStart {
			out = append(out, Segment{Interval: interval.New(cursor, cStart-1), Kind: KindUTR})
		}
		out = append(out, Segment{Interval: interval.New(cStart, cEnd), Kind: KindCDS})
		cursor = cEnd + 1
	}
	if cursor <= exon.End {
		out = append(out, Segment{Interval: interval.New(cursor, exon.End), Kind: KindUTR})
	}
	return out
}
