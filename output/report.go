package output

import (
	"fmt"
	"io"
	"sort"

	"github.com/Lvmingjie/mikado/locus"
	"github.com/Lvmingjie/mikado/scoring"
	"github.com/Lvmingjie/mikado/transcript"
)

// member pairs a transcript with the id of the locus containing it.
type member struct {
	locusID string
	t       *transcript.Transcript
}

// members walks every locus's primary and AS transcripts, in the loci's
// own (already deterministic) order.
func members(loci []*locus.Locus) []member {
	var out []member
	for _, l := range loci {
		out = append(out, member{l.ID, l.Primary})
		for _, t := range l.AS {
			out = append(out, member{l.ID, t})
		}
	}
	return out
}

// WriteMetricsReport writes one row per transcript across loci, columns =
// the closed metric registry plus (chrom, transcript_id, locus_id).
func WriteMetricsReport(w io.Writer, loci []*locus.Locus) error {
	names := scoring.MetricNames()
	sort.Strings(names)

	header := append([]string{"chrom", "transcript_id", "locus_id"}, names...)
	if _, err := fmt.Fprintln(w, joinTab(header)); err != nil {
		return err
	}

	for _, m := range members(loci) {
		snap := scoring.Metrics(m.t)
		row := []string{m.t.Chrom, m.t.ID, m.locusID}
		for _, name := range names {
			row = append(row, fmt.Sprintf("%g", snap[name]))
		}
		if _, err := fmt.Fprintln(w, joinTab(row)); err != nil {
			return err
		}
	}
	return nil
}

// WriteScoresReport writes one row per transcript: transcript identifiers
// plus the transcript's total score.
func WriteScoresReport(w io.Writer, loci []*locus.Locus) error {
	if _, err := fmt.Fprintln(w, joinTab([]string{"chrom", "transcript_id", "locus_id", "score"})); err != nil {
		return err
	}
	for _, m := range members(loci) {
		row := []string{m.t.Chrom, m.t.ID, m.locusID, fmt.Sprintf("%g", m.t.Score)}
		if _, err := fmt.Fprintln(w, joinTab(row)); err != nil {
			return err
		}
	}
	return nil
}

func joinTab(fields []string) string {
	out := fields[0]
	for _, f := range fields[1:] {
		out += "\t" + f
	}
	return out
}
