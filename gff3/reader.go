// Package gff3 provides a minimal GFF3 reader that builds finalized
// transcripts for the locus-resolution core. Full-fidelity GFF3/GTF/BED12/
// BAM ingestion is an external collaborator contract (§6); this reader
// covers the common case of a simple gene/mRNA/exon/CDS hierarchy, enough
// to drive the core end-to-end from the command line.
package gff3

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/Lvmingjie/mikado/interval"
	"github.com/Lvmingjie/mikado/transcript"
)

type rawRecord struct {
	chrom, feature, strand string
	start, end             interval.PosType
	attrs                  map[string]string
}

// Read parses r and returns one finalized Transcript per mRNA/transcript
// feature, with its child exon/CDS features attached.
func Read(r io.Reader) ([]*transcript.Transcript, error) {
	var records []rawRecord
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rec, ok, err := parseLine(line)
		if err != nil {
			return nil, err
		}
		if ok {
			records = append(records, rec)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	parents := make(map[string]*transcript.Transcript)
	var order []string
	for _, rec := range records {
		if rec.feature != "mRNA" && rec.feature != "transcript" && rec.feature != "ncRNA" {
			continue
		}
		id := rec.attrs["ID"]
		if id == "" {
			continue
		}
		strand := transcript.StrandNone
		switch rec.strand {
		case "+":
			strand = transcript.StrandPlus
		case "-":
			strand = transcript.StrandMinus
		}
		t := transcript.New(id, rec.chrom, strand)
		if parent := rec.attrs["Parent"]; parent != "" {
			t.ParentID = parent
		}
		for k, v := range rec.attrs {
			t.Attributes[k] = v
		}
		parents[id] = t
		order = append(order, id)
	}

	for _, rec := range records {
		var kind transcript.RecordKind
		switch rec.feature {
		case "exon":
			kind = transcript.RecordExon
		case "CDS":
			kind = transcript.RecordCDS
		case "five_prime_UTR", "three_prime_UTR", "UTR":
			kind = transcript.RecordUTR
		case "start_codon":
			kind = transcript.RecordStartCodon
		case "stop_codon":
			kind = transcript.RecordStopCodon
		default:
			continue
		}
		parentID := rec.attrs["Parent"]
		t, ok := parents[parentID]
		if !ok {
			continue
		}
		if err := t.AddExon(transcript.Record{Kind: kind, Interval: interval.New(rec.start, rec.end)}); err != nil {
			return nil, err
		}
	}

	out := make([]*transcript.Transcript, 0, len(order))
	for _, id := range order {
		t := parents[id]
		if err := t.Finalize(); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func parseLine(line string) (rawRecord, bool, error) {
	cols := strings.Split(line, "\t")
	if len(cols) < 9 {
		return rawRecord{}, false, nil
	}
	start, err := strconv.Atoi(cols[3])
	if err != nil {
		return rawRecord{}, false, fmt.Errorf("gff3: invalid start %q: %w", cols[3], err)
	}
	end, err := strconv.Atoi(cols[4])
	if err != nil {
		return rawRecord{}, false, fmt.Errorf("gff3: invalid end %q: %w", cols[4], err)
	}
	return rawRecord{
		chrom:   cols[0],
		feature: cols[2],
		start:   interval.PosType(start),
		end:     interval.PosType(end),
		strand:  cols[6],
		attrs:   parseAttributes(cols[8]),
	}, true, nil
}

func parseAttributes(field string) map[string]string {
	attrs := make(map[string]string)
	for _, part := range strings.Split(strings.TrimRight(field, "\n"), ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		attrs[kv[0]] = kv[1]
	}
	return attrs
}
