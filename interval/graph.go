package interval

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Predicate decides whether two transcripts, identified by their index into
// the caller's transcript slice, intersect under a particular locus stage's
// clustering rule (sublocus, holder, superlocus, ...). It must be symmetric:
// Predicate(i, j) == Predicate(j, i).
type Predicate func(i, j int) bool

// Graph is an undirected graph over transcript indices [0, n), built from a
// Predicate. Self-edges are never created.
type Graph struct {
	n int
	g *simple.UndirectedGraph
}

// Build constructs the graph over n vertices, connecting i and j whenever
// pred(i, j) holds for i != j.
func Build(n int, pred Predicate) *Graph {
	g := simple.NewUndirectedGraph()
	for i := 0; i < n; i++ {
		g.AddNode(simple.Node(int64(i)))
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if pred(i, j) {
				g.SetEdge(simple.Edge{F: simple.Node(int64(i)), T: simple.Node(int64(j))})
			}
		}
	}
	return &Graph{n: n, g: g}
}

// ConnectedComponents returns the graph's connected components as sorted
// slices of vertex indices. Isolated vertices form singleton components. The
// outer slice is sorted by each component's smallest member, giving a
// deterministic ordering across runs.
func (gr *Graph) ConnectedComponents() [][]int {
	if gr.n == 0 {
		return nil
	}
	comps := topo.ConnectedComponents(gr.g)
	return nodeComponentsToIndices(comps)
}

// MaximalCliques returns every maximal clique of the graph (the
// Bron-Kerbosch routine), as sorted slices of vertex indices.
func (gr *Graph) MaximalCliques() [][]int {
	if gr.n == 0 {
		return nil
	}
	cliques := topo.BronKerbosch(gr.g)
	return nodeComponentsToIndices(cliques)
}

// Neighbors returns the indices of the vertices adjacent to i.
func (gr *Graph) Neighbors(i int) []int {
	nodes := gr.g.From(int64(i))
	var out []int
	for nodes.Next() {
		out = append(out, int(nodes.Node().ID()))
	}
	sort.Ints(out)
	return out
}

func nodeComponentsToIndices(comps [][]graph.Node) [][]int {
	out := make([][]int, len(comps))
	for i, comp := range comps {
		ids := make([]int, len(comp))
		for j, node := range comp {
			ids[j] = int(node.ID())
		}
		sort.Ints(ids)
		out[i] = ids
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i][0] < out[j][0]
	})
	return out
}
