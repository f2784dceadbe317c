package graph

// ReversePostorder lists the nodes reachable from the start nodes such that,
// ignoring back edges, every node precedes its successors.
// It also reports the targets of back edges, which are exactly the nodes
// where every cycle of the depth-first spanning tree is entered.
func (G Graph[T]) ReversePostorder(starts ...T) (order []T, loopHeads []T) {
	const (
		onStack = iota
		done
	)

	state := G.mapFactory()
	isHead := G.mapFactory()

	var rec func(T)
	rec = func(node T) {
		state.Set(node, onStack)
		for _, next := range G.Edges(node) {
			switch s, visited := state.Get(next); {
			case !visited:
				rec(next)
			case s == onStack:
				if _, found := isHead.Get(next); !found {
					isHead.Set(next, true)
					loopHeads = append(loopHeads, next)
				}
			}
		}
		state.Set(node, done)
		order = append(order, node)
	}

	for _, start := range starts {
		if _, visited := state.Get(start); !visited {
			rec(start)
		}
	}

	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return
}
