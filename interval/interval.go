package interval

import "fmt"

// PosType is the coordinate type used for genomic positions. int32 is wide
// enough for any chromosome; see grailbio-bio/interval for the precedent of
// using a narrow fixed-width type here rather than plain int.
type PosType int32

// Interval is a closed, 1-based [Start, End] span on a single chromosome.
// Start must be <= End; the zero value is not a valid Interval.
type Interval struct {
	Start PosType
	End   PosType
}

// New returns the Interval [start, end], panicking if start > end.
func New(start, end PosType) Interval {
	if start > end {
		panic(fmt.Sprintf("interval: invalid interval [%d, %d]", start, end))
	}
	return Interval{Start: start, End: end}
}

// Len returns the number of positions covered by the interval.
func (iv Interval) Len() int { return int(iv.End-iv.Start) + 1 }

// Overlap returns min(b,d) - max(a,c) for a=iv.Start, b=iv.End, c=other.Start,
// d=other.End. Since these are closed 1-based coordinates, a zero or
// positive value means the intervals share value+1 bases (zero: exactly one
// shared base); a negative value means they are disjoint (-1 for abutting
// intervals with no gap and no shared base).
func Overlap(iv, other Interval) int {
	return int(min(iv.End, other.End)) - int(max(iv.Start, other.Start))
}

// Overlaps reports whether iv and other share at least one base.
func (iv Interval) Overlaps(other Interval) bool {
	return Overlap(iv, other) >= 0
}

// Contains reports whether iv fully contains other.
func (iv Interval) Contains(other Interval) bool {
	return iv.Start <= other.Start && iv.End >= other.End
}

// Abuts reports whether iv and other share a boundary without overlapping,
// i.e. they are adjacent with no gap and no shared base.
func (iv Interval) Abuts(other Interval) bool {
	return iv.End+1 == other.Start || other.End+1 == iv.Start
}

func min(a, b PosType) PosType {
	if a < b {
		return a
	}
	return b
}

func max(a, b PosType) PosType {
	if a > b {
		return a
	}
	return b
}

// String renders the interval in 1-based closed notation, e.g. "[100,200]".
func (iv Interval) String() string {
	return fmt.Sprintf("[%d,%d]", iv.Start, iv.End)
}
