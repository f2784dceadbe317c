package fixpoint

import (
	"fmt"

	L "github.com/cs-au-dk/absdom/analysis/lattice"
	"github.com/cs-au-dk/absdom/utils/dot"
	"github.com/cs-au-dk/absdom/utils/graph"
)

// Result holds the solved states of a problem. The states are shared with the
// result and must not be modified.
type Result[N comparable, D L.Element[D]] struct {
	problem Problem[N, D]
	graph   graph.Graph[N]
	order   []N
	heads   []N
	in      map[N]D

	// Iterations is the number of node visits it took to solve the problem.
	Iterations int
}

// In returns the state before n. Unreachable nodes are ⊥.
func (r *Result[N, D]) In(n N) D {
	if d, found := r.in[n]; found {
		return d
	}
	return r.problem.Bot
}

// Out returns the state after n, with contradictions resolved.
func (r *Result[N, D]) Out(n N) D {
	in := normalize(r.In(n))
	if in.IsBot() {
		return in
	}
	return normalize(r.problem.Transfer(n, in))
}

// Nodes lists the nodes reachable from the entry in reverse postorder.
func (r *Result[N, D]) Nodes() []N {
	return r.order
}

// WideningPoints lists the loop heads where widening was applied.
func (r *Result[N, D]) WideningPoints() []N {
	return r.heads
}

// Visualize lays out the solved graph. Every node is labelled with its state
// on entry. Each cyclic strongly connected component is drawn as a cluster,
// widening points get a double border and back edges are dashed.
func (r *Result[N, D]) Visualize(title string) *dot.DotGraph {
	scc := r.graph.SCC([]N{r.problem.Entry})

	index := make(map[N]int, len(r.order))
	for i, n := range r.order {
		index[n] = i
	}
	isHead := make(map[N]bool, len(r.heads))
	for _, n := range r.heads {
		isHead[n] = true
	}

	dg := r.graph.ToDotGraph(r.order, &graph.VisualizationConfig[N]{
		NodeAttrs: func(n N) (string, dot.DotAttrs) {
			attrs := dot.DotAttrs{
				"label": fmt.Sprintf("%v\n%s", n, r.In(n)),
			}
			if isHead[n] {
				attrs["peripheries"] = "2"
			}
			return fmt.Sprintf("n%d", index[n]), attrs
		},
		EdgeAttrs: func(from, to N) dot.DotAttrs {
			if index[to] <= index[from] {
				return dot.DotAttrs{"style": "dashed"}
			}
			return nil
		},
		ClusterKey: func(n N) (any, bool) {
			c, ok := scc.ComponentOf(n)
			return c, ok && scc.IsCyclic(c)
		},
		ClusterAttrs: func(key any) (string, dot.DotAttrs) {
			return fmt.Sprintf("scc%d", key), dot.DotAttrs{
				"label": "loop",
				"style": "dashed",
			}
		},
	})

	if title == "" {
		title = r.problem.name()
	}
	dg.Title = title
	return dg
}
