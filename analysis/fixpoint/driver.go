// Package fixpoint solves forward dataflow problems over any abstract domain
// satisfying the lattice.Element contract.
//
// The solver processes nodes in reverse postorder with a priority worklist.
// States at loop heads are widened after a configurable number of plain joins,
// after which a bounded number of descending passes recover precision with
// the narrowing operator.
package fixpoint

import (
	"context"
	"errors"
	"fmt"

	L "github.com/cs-au-dk/absdom/analysis/lattice"
	"github.com/cs-au-dk/absdom/utils"
	"github.com/cs-au-dk/absdom/utils/graph"
	"github.com/cs-au-dk/absdom/utils/pq"

	"github.com/sirupsen/logrus"
)

var opts = utils.Opts()

var ErrNoConvergence = errors.New("fixpoint computation did not converge")

var log = logrus.New()

// Problem describes a forward dataflow problem on the graph reachable from Entry.
type Problem[N comparable, D L.Element[D]] struct {
	// Name identifies the problem in logs and visualizations.
	Name  string
	Entry N
	// Successors gives the outgoing edges of a node.
	Successors func(N) []N
	// Transfer computes the state after n from the state before it.
	// It must leave its argument untouched.
	Transfer func(n N, in D) D
	// Init is the state on entry.
	Init D
	// Bot is the state of nodes that are not (yet) reached.
	Bot D
}

func (p Problem[N, D]) name() string {
	if p.Name == "" {
		return "<anonymous>"
	}
	return p.Name
}

// solver holds the state of a single fixpoint computation.
type solver[N comparable, D L.Element[D]] struct {
	Problem[N, D]
	graph graph.Graph[N]
	log   *logrus.Entry

	order []N
	index map[N]int
	heads map[N]bool
	preds map[N][]N

	in     map[N]D
	joins  map[N]int
	visits int
}

// Solve computes a post-fixpoint of the given problem.
func Solve[N comparable, D L.Element[D]](p Problem[N, D]) (*Result[N, D], error) {
	return SolveContext(context.Background(), p)
}

// SolveContext is Solve, but stops with the context's error once it is done.
func SolveContext[N comparable, D L.Element[D]](ctx context.Context, p Problem[N, D]) (*Result[N, D], error) {
	log.SetLevel(logLevel())

	s := &solver[N, D]{
		Problem: p,
		graph:   graph.OfHashable(p.Successors),
		log:     log.WithField("problem", p.name()),
		index:   make(map[N]int),
		heads:   make(map[N]bool),
		preds:   make(map[N][]N),
		in:      map[N]D{p.Entry: normalize(p.Bot.Join(p.Init))},
		joins:   make(map[N]int),
	}

	var heads []N
	s.order, heads = s.graph.ReversePostorder(p.Entry)
	for i, n := range s.order {
		s.index[n] = i
		for _, m := range s.graph.Edges(n) {
			s.preds[m] = append(s.preds[m], n)
		}
	}
	for _, n := range heads {
		s.heads[n] = true
	}

	s.log.WithFields(logrus.Fields{
		"nodes":           len(s.order),
		"widening-points": len(heads),
	}).Debug("Starting fixpoint computation")

	if err := s.ascend(ctx); err != nil {
		return nil, err
	}
	if err := s.descend(ctx); err != nil {
		return nil, err
	}

	s.log.WithField("visits", s.visits).Debug("Fixpoint reached")

	return &Result[N, D]{
		problem:    p,
		graph:      s.graph,
		order:      s.order,
		heads:      heads,
		in:         s.in,
		Iterations: s.visits,
	}, nil
}

// logLevel is the configured log level, raised to debug in verbose mode.
func logLevel() logrus.Level {
	lvl := opts.LogLevel()
	if opts.Verbose() && lvl < logrus.DebugLevel {
		lvl = logrus.DebugLevel
	}
	return lvl
}

// normalizer is implemented by domains that defer contradiction detection.
type normalizer interface {
	Normalize()
}

// normalize resolves pending contradictions of d in place, after which
// IsBot can be trusted.
func normalize[D any](d D) D {
	if n, ok := any(d).(normalizer); ok {
		n.Normalize()
	}
	return d
}

// visit accounts for a node visit.
func (s *solver[N, D]) visit(ctx context.Context, n N) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.visits++
	if limit := opts.MaxIterations(); s.visits > limit {
		return fmt.Errorf("%w: %s exceeded %d iterations at %v", ErrNoConvergence, s.name(), limit, n)
	}
	return nil
}

func (s *solver[N, D]) get(n N) D {
	if d, found := s.in[n]; found {
		return d
	}
	return s.Bot
}

// propagate merges d into the state before m, widening at loop heads.
// It reports whether the state grew.
func (s *solver[N, D]) propagate(m N, d D) bool {
	old := s.get(m)
	if d.Leq(old) {
		return false
	}

	upd := old.Join(d)
	if s.heads[m] {
		if s.joins[m] >= opts.WideningDelay() {
			upd = old.Widen(upd)
		}
		s.joins[m]++
	}

	s.log.WithField("node", m).Tracef("%s ↑ %s", old, upd)
	s.in[m] = upd
	return true
}

// ascend iterates until the states are stable.
func (s *solver[N, D]) ascend(ctx context.Context) error {
	queue := pq.Empty(func(a, b N) bool {
		return s.index[a] < s.index[b]
	})
	queue.Add(s.Entry)

	for !queue.IsEmpty() {
		n := queue.GetNext()
		if err := s.visit(ctx, n); err != nil {
			return err
		}

		in := normalize(s.get(n))
		if in.IsBot() {
			continue
		}

		out := normalize(s.Transfer(n, in))
		for _, m := range s.graph.Edges(n) {
			if s.propagate(m, out) {
				queue.Add(m)
			}
		}
	}

	return nil
}

// descend performs the narrowing passes, each visiting every node once in
// reverse postorder.
func (s *solver[N, D]) descend(ctx context.Context) error {
	for i := 0; i < opts.NarrowingIterations(); i++ {
		changed := false

		for _, n := range s.order {
			if err := s.visit(ctx, n); err != nil {
				return err
			}

			upd := s.Bot
			if n == s.Entry {
				upd = s.Init
			}
			for _, pred := range s.preds[n] {
				if in := normalize(s.get(pred)); !in.IsBot() {
					upd = upd.Join(s.Transfer(pred, in))
				}
			}

			old := s.get(n)
			upd = normalize(old.Narrow(upd))
			if !upd.Eq(old) {
				s.log.WithField("node", n).Tracef("%s ↓ %s", old, upd)
				s.in[n] = upd
				changed = true
			}
		}

		if !changed {
			break
		}
	}

	return nil
}
