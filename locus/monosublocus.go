package locus

import (
	"fmt"

	"github.com/Lvmingjie/mikado/transcript"
)

// Monosublocus is a trivial container holding exactly one transcript,
// emitted by a Sublocus's greedy best-transcript selection (§4.7).
type Monosublocus struct {
	*AbstractLocus
	ID         string
	Transcript *transcript.Transcript
}

// NewMonosublocus builds the monosublocus for t, deriving its identifier
// from parentID and whether t is mono- or multi-exonic. counter
// disambiguates sibling collisions within the same parent: 0 means no
// suffix, N>0 appends ".N".
func NewMonosublocus(parentID string, t *transcript.Transcript, counter int) *Monosublocus {
	kind := "multi"
	if t.IsMonoexonic() {
		kind = "mono"
	}
	id := fmt.Sprintf("%s.%s", parentID, kind)
	if counter > 0 {
		id = fmt.Sprintf("%s.%d", id, counter)
	}
	return &Monosublocus{
		AbstractLocus: NewAbstractLocus(t, true),
		ID:            id,
		Transcript:    t,
	}
}
