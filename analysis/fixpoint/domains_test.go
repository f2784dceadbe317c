package fixpoint

import (
	"math"
	"strconv"

	L "github.com/cs-au-dk/absdom/analysis/lattice"
	"github.com/cs-au-dk/absdom/analysis/uninit"
	"github.com/cs-au-dk/absdom/analysis/variable"
)

type (
	V   = variable.Named
	Env = *uninit.Env[V]
)

var x, y, z = variable.Var("x"), variable.Var("y"), variable.Var("z")

var envLattices = []struct {
	name string
	lat  *uninit.EnvLattice[V]
}{
	{"eager", uninit.MakeEnvLattice[V]()},
	{"deferred", uninit.MakeDeferredEnvLattice[V]()},
}

// program maps nodes to the statements they execute.
type program map[int]func(Env)

func (prog program) transfer(n int, in Env) Env {
	out := in.Copy()
	if stmt := prog[n]; stmt != nil {
		stmt(out)
	}
	return out
}

func succs(edges map[int][]int) func(int) []int {
	return func(n int) []int {
		return edges[n]
	}
}

// bound is an upper bound on a non-negative counter. The domain has infinite
// height, so loops only converge with widening.
type bound int

const (
	botBound bound = -1
	topBound bound = math.MaxInt32
)

func (b bound) IsBot() bool        { return b == botBound }
func (b bound) IsTop() bool        { return b == topBound }
func (b bound) Leq(o bound) bool   { return b <= o }
func (b bound) Eq(o bound) bool    { return b == o }
func (b bound) Join(o bound) bound { return bound(math.Max(float64(b), float64(o))) }
func (b bound) Meet(o bound) bound { return bound(math.Min(float64(b), float64(o))) }

func (b bound) Widen(o bound) bound {
	if o.Leq(b) {
		return b
	}
	return topBound
}

func (b bound) Narrow(o bound) bound {
	if b.IsTop() {
		return o
	}
	return b
}

func (b bound) String() string {
	switch b {
	case botBound:
		return "⊥"
	case topBound:
		return "⊤"
	}
	return strconv.Itoa(int(b))
}

func (b bound) inc() bound {
	if b.IsBot() || b.IsTop() {
		return b
	}
	return b + 1
}

var _ L.Element[bound] = bound(0)
