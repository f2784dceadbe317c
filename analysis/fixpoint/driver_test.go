package fixpoint

import (
	"context"
	"errors"
	"reflect"
	"testing"

	L "github.com/cs-au-dk/absdom/analysis/lattice"
	"github.com/cs-au-dk/absdom/analysis/uninit"

	"github.com/sirupsen/logrus"
)

// loopProblem is the program
//
//	0: x = uninitialized; y = initialized
//	1: while (...) {
//	2:   x = y
//	   }
//	3: z = x + y
func loopProblem(lat *uninit.EnvLattice[V]) Problem[int, Env] {
	prog := program{
		0: func(e Env) {
			e.AssignUninitialized(x)
			e.AssignInitialized(y)
		},
		2: func(e Env) { e.Assign(x, y) },
		3: func(e Env) { e.AssignOp(z, x, y) },
	}

	return Problem[int, Env]{
		Name:  "loop",
		Entry: 0,
		Successors: succs(map[int][]int{
			0: {1},
			1: {2, 3},
			2: {1},
		}),
		Transfer: prog.transfer,
		Init:     lat.Top(),
		Bot:      lat.Bot(),
	}
}

func TestSolveLoop(t *testing.T) {
	for _, l := range envLattices {
		lat := l.lat
		t.Run(l.name, func(t *testing.T) {
			res, err := Solve(loopProblem(lat))
			if err != nil {
				t.Fatal(err)
			}

			head := res.In(1)
			if head.Get(x) != L.UninitTop || !head.IsInitialized(y) {
				t.Errorf("Unexpected state at the loop head: %s", head)
			}
			if body := res.In(2); !body.Eq(head) {
				t.Errorf("Unexpected state in the loop body: %s", body)
			}
			if out := res.Out(2); !out.IsInitialized(x) {
				t.Errorf("x is not initialized after x = y: %s", out)
			}
			if out := res.Out(3); out.Get(z) != L.UninitTop {
				t.Errorf("z = x + y yields %s, expected ⊤", out.Get(z))
			}

			if heads := res.WideningPoints(); !reflect.DeepEqual(heads, []int{1}) {
				t.Errorf("Expected the loop head as the only widening point, found %v", heads)
			}
			if nodes := res.Nodes(); len(nodes) != 4 || nodes[0] != 0 {
				t.Errorf("Unexpected node order %v", nodes)
			}
			if res.Iterations == 0 {
				t.Error("No iterations were recorded")
			}
		})
	}
}

// TestSolveContradiction checks that a branch whose assumption contradicts the
// state does not contribute to the join point.
//
//	0: x = uninitialized
//	1: assume x is initialized   2: x = initialized
//	3: (join)
func TestSolveContradiction(t *testing.T) {
	for _, l := range envLattices {
		lat := l.lat
		t.Run(l.name, func(t *testing.T) {
			prog := program{
				0: func(e Env) { e.AssignUninitialized(x) },
				1: func(e Env) { e.Refine(x, L.Initialized) },
				2: func(e Env) { e.AssignInitialized(x) },
			}

			res, err := Solve(Problem[int, Env]{
				Entry:      0,
				Successors: succs(map[int][]int{0: {1, 2}, 1: {3}, 2: {3}}),
				Transfer:   prog.transfer,
				Init:       lat.Top(),
				Bot:        lat.Bot(),
			})
			if err != nil {
				t.Fatal(err)
			}

			if !res.In(1).IsUninitialized(x) {
				t.Errorf("Unexpected state before the assumption: %s", res.In(1))
			}

			out := res.Out(1)
			out.Normalize()
			if !out.IsBot() {
				t.Errorf("Expected the assumption to be unsatisfiable, found %s", out)
			}

			if join := res.In(3); !join.IsInitialized(x) {
				t.Errorf("Expected x to be initialized at the join point, found %s", join)
			}
		})
	}
}

// TestSolvePendingContradiction checks that an unsatisfiable branch stays
// unreachable when later statements touch the contradictory variable, and that
// no transfer function ever sees a contradictory state.
//
//	0: x = uninitialized
//	1: assume x is initialized; forget x   2: x = initialized
//	3: (join)
func TestSolvePendingContradiction(t *testing.T) {
	for _, l := range envLattices {
		lat := l.lat
		t.Run(l.name, func(t *testing.T) {
			prog := program{
				0: func(e Env) { e.AssignUninitialized(x) },
				1: func(e Env) {
					e.Refine(x, L.Initialized)
					e.Forget(x)
				},
				2: func(e Env) { e.AssignInitialized(x) },
			}

			transfer := func(n int, in Env) Env {
				cp := in.Copy()
				cp.Normalize()
				if cp.IsBot() {
					t.Errorf("Transfer at %d applied to contradictory state %s", n, in)
				}
				return prog.transfer(n, in)
			}

			res, err := Solve(Problem[int, Env]{
				Entry:      0,
				Successors: succs(map[int][]int{0: {1, 2}, 1: {3}, 2: {3}}),
				Transfer:   transfer,
				Init:       lat.Top(),
				Bot:        lat.Bot(),
			})
			if err != nil {
				t.Fatal(err)
			}

			if out := res.Out(1); !out.IsBot() {
				t.Errorf("Expected the branch to be unreachable, found %s", out)
			}
			if join := res.In(3); !join.IsInitialized(x) || join.Len() != 1 {
				t.Errorf("Expected { x ↦ I } at the join point, found %s", join)
			}
		})
	}
}

func TestVerboseLogLevel(t *testing.T) {
	tests := []struct {
		options  string
		expected logrus.Level
	}{
		{"verbose: false\nlog-level: warning", logrus.WarnLevel},
		{"verbose: true\nlog-level: warning", logrus.DebugLevel},
		{"verbose: true\nlog-level: trace", logrus.TraceLevel},
		{"verbose: false\nlog-level: info", logrus.InfoLevel},
	}

	for _, test := range tests {
		withOptions(t, test.options)
		if lvl := logLevel(); lvl != test.expected {
			t.Errorf("With %q: log level is %v, expected %v", test.options, lvl, test.expected)
		}
	}
}

func TestSolveUnreachable(t *testing.T) {
	lat := uninit.MakeEnvLattice[V]()
	res, err := Solve(Problem[int, Env]{
		Entry:      0,
		Successors: succs(map[int][]int{0: {1}, 2: {1}}),
		Transfer:   program{}.transfer,
		Init:       lat.Top(),
		Bot:        lat.Bot(),
	})
	if err != nil {
		t.Fatal(err)
	}

	if !res.In(2).IsBot() {
		t.Errorf("Unreachable node has state %s", res.In(2))
	}
	if !res.Out(2).IsBot() {
		t.Errorf("Unreachable node has out state %s", res.Out(2))
	}
	if !res.In(1).IsTop() {
		t.Errorf("Expected ⊤ at node 1, found %s", res.In(1))
	}
}

// counterProblem is the program
//
//	0: i = 0; while (...) {
//	1:   assume i <= 10
//	2:   i++
//	   }
//	3: (exit)
func counterProblem() Problem[int, bound] {
	return Problem[int, bound]{
		Name:  "counter",
		Entry: 0,
		Successors: succs(map[int][]int{
			0: {1},
			1: {2, 3},
			2: {0},
		}),
		Transfer: func(n int, in bound) bound {
			switch n {
			case 1:
				return in.Meet(10)
			case 2:
				return in.inc()
			}
			return in
		},
		Init: 0,
		Bot:  botBound,
	}
}

func TestWideningAndNarrowing(t *testing.T) {
	tests := []struct {
		options       string
		head, exit    bound
		maxIterations int
	}{
		// Narrowing recovers the bound lost by widening.
		{"widening-delay: 0\nnarrowing-iterations: 1", 11, 10, 20},
		{"widening-delay: 2\nnarrowing-iterations: 1", 11, 10, 30},
		// Without narrowing the head stays widened.
		{"widening-delay: 0\nnarrowing-iterations: 0", topBound, 10, 20},
		// Delaying widening long enough finds the bound by plain iteration.
		{"widening-delay: 100\nnarrowing-iterations: 0", 11, 10, 100},
	}

	for _, test := range tests {
		withOptions(t, test.options)

		res, err := Solve(counterProblem())
		if err != nil {
			t.Fatal(err)
		}

		if head := res.In(0); head != test.head {
			t.Errorf("With %q: loop head is %s, expected %s", test.options, head, test.head)
		}
		if exit := res.In(3); exit != test.exit {
			t.Errorf("With %q: exit is %s, expected %s", test.options, exit, test.exit)
		}
		if res.Iterations > test.maxIterations {
			t.Errorf("With %q: took %d iterations", test.options, res.Iterations)
		} else {
			t.Logf("With %q: took %d iterations", test.options, res.Iterations)
		}
	}
}

func TestNoConvergence(t *testing.T) {
	withOptions(t, "max-iterations: 5\nwidening-delay: 1000")

	_, err := Solve(counterProblem())
	if !errors.Is(err, ErrNoConvergence) {
		t.Errorf("Expected ErrNoConvergence, found %v", err)
	}
}

func TestSolveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SolveContext(ctx, counterProblem())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, found %v", err)
	}
}
