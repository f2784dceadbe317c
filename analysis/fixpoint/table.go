package fixpoint

import (
	"sync"

	L "github.com/cs-au-dk/absdom/analysis/lattice"
)

// Table accumulates states per node across several fixpoint computations.
// It is safe for concurrent use.
type Table[N comparable, D L.Element[D]] struct {
	mu     sync.Mutex
	bot    D
	states map[N]D
}

func NewTable[N comparable, D L.Element[D]](bot D) *Table[N, D] {
	return &Table[N, D]{
		bot:    bot,
		states: make(map[N]D),
	}
}

// Merge joins d into the state of n and reports whether the state grew.
// The table never retains d itself.
func (t *Table[N, D]) Merge(n N, d D) (changed bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	old, found := t.states[n]
	if !found {
		old = t.bot
	}
	if d.Leq(old) {
		return false
	}

	t.states[n] = old.Join(d)
	return true
}

// Get returns the state of n, or ⊥ if nothing was merged into it.
func (t *Table[N, D]) Get(n N) D {
	t.mu.Lock()
	defer t.mu.Unlock()

	if d, found := t.states[n]; found {
		return d
	}
	return t.bot
}

func (t *Table[N, D]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.states)
}
