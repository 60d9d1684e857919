package locus

import (
	"github.com/Lvmingjie/mikado/interval"
	"github.com/Lvmingjie/mikado/transcript"
)

// buildGraph constructs the interval.Graph over transcripts' indices using
// pred as the edge predicate (§4.4 "Graph construction").
func buildGraph(transcripts []*transcript.Transcript, pred Predicate) *interval.Graph {
	return interval.Build(len(transcripts), func(i, j int) bool {
		return pred(transcripts[i], transcripts[j])
	})
}

// groupByPredicate partitions transcripts into pred's connected
// components, preserving each component's original relative order.
func groupByPredicate(transcripts []*transcript.Transcript, pred Predicate) [][]*transcript.Transcript {
	if len(transcripts) == 0 {
		return nil
	}
	g := buildGraph(transcripts, pred)
	comps := g.ConnectedComponents()
	out := make([][]*transcript.Transcript, len(comps))
	for i, comp := range comps {
		group := make([]*transcript.Transcript, len(comp))
		for j, idx := range comp {
			group[j] = transcripts[idx]
		}
		out[i] = group
	}
	return out
}
