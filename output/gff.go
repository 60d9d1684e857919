// Package output renders final loci as GFF3 records and emits the
// metrics/scores tab-separated reports (§6 "Output").
package output

import (
	"fmt"
	"io"

	"github.com/Lvmingjie/mikado/interval"
	"github.com/Lvmingjie/mikado/locus"
	"github.com/Lvmingjie/mikado/transcript"
)

// WriteGFF3 writes one gene feature tree per locus to w: a gene feature
// with id "<source>_<locus_id>", and per-transcript mRNA/ncRNA features
// with exon/CDS/UTR sub-features for the primary and every admitted AS
// member.
func WriteGFF3(w io.Writer, loci []*locus.Locus, source string) error {
	for _, l := range loci {
		if err := writeLocus(w, l, source); err != nil {
			return err
		}
	}
	return nil
}

func writeLocus(w io.Writer, l *locus.Locus, source string) error {
	geneID := fmt.Sprintf("%s_%s", source, l.ID)
	strand := l.Strand.String()
	if _, err := fmt.Fprintf(w, "%s\t%s\tgene\t%d\t%d\t.\t%s\t.\tID=%s\n",
		l.Chrom, source, l.Start, l.End, strand, geneID); err != nil {
		return err
	}

	members := append([]*transcript.Transcript{l.Primary}, l.AS...)
	for _, t := range members {
		if err := writeTranscript(w, t, source, geneID); err != nil {
			return err
		}
	}
	return nil
}

func writeTranscript(w io.Writer, t *transcript.Transcript, source, geneID string) error {
	feature := t.Feature
	if feature == "" {
		feature = "mRNA"
	}
	strand := t.Strand.String()
	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t.\t%s\t.\tID=%s;Parent=%s\n",
		t.Chrom, source, feature, t.Start, t.End, strand, t.ID, geneID); err != nil {
		return err
	}

	for _, e := range t.Exons {
		if _, err := writeSubFeature(w, t, source, "exon", e); err != nil {
			return err
		}
	}
	for _, c := range t.CombinedCDS {
		if _, err := writeSubFeature(w, t, source, "CDS", c); err != nil {
			return err
		}
	}
	for _, u := range t.CombinedUTR {
		if _, err := writeSubFeature(w, t, source, "UTR", u); err != nil {
			return err
		}
	}
	return nil
}

func writeSubFeature(w io.Writer, t *transcript.Transcript, source, kind string, iv interval.Interval) (int, error) {
	return fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t.\t%s\t.\tParent=%s\n",
		t.Chrom, source, kind, iv.Start, iv.End, t.Strand.String(), t.ID)
}
