package locus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Lvmingjie/mikado/transcript"
)

func TestClassCodeSharedJunctionButDifferentChain(t *testing.T) {
	primary := buildMultiExon(t, "primary", [][2]int{{100, 200}, {301, 400}, {501, 600}}, transcript.StrandPlus)
	candidate := buildMultiExon(t, "candidate", [][2]int{{50, 200}, {301, 450}}, transcript.StrandPlus)
	assert.Equal(t, "j", ClassCode(candidate, primary))
}

func TestClassCodeGenericOverlap(t *testing.T) {
	primary := buildMultiExon(t, "primary", [][2]int{{100, 300}}, transcript.StrandPlus)
	candidate := buildMultiExon(t, "candidate", [][2]int{{250, 500}}, transcript.StrandPlus)
	assert.Equal(t, "o", ClassCode(candidate, primary))
}
