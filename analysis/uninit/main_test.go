package uninit_test

import (
	"flag"
	"os"
	"testing"

	L "github.com/cs-au-dk/absdom/analysis/lattice"
	"github.com/cs-au-dk/absdom/analysis/uninit"
	"github.com/cs-au-dk/absdom/analysis/variable"
)

func TestMain(m *testing.M) {
	flag.Set("no-colorize", "true")
	os.Exit(m.Run())
}

type (
	V   = variable.Named
	Env = *uninit.Env[V]
)

var (
	x, y, z, w = variable.Var("x"), variable.Var("y"), variable.Var("z"), variable.Var("w")

	bot, I, U, top = L.UninitBot, L.Initialized, L.Uninit, L.UninitTop
)

// lattices lists both flavours of contradiction detection.
// Every behavioural test runs against both.
var lattices = []struct {
	name string
	lat  *uninit.EnvLattice[V]
}{
	{"eager", uninit.MakeEnvLattice[V]()},
	{"deferred", uninit.MakeDeferredEnvLattice[V]()},
}

func forEachLattice(t *testing.T, do func(t *testing.T, lat *uninit.EnvLattice[V])) {
	for _, l := range lattices {
		l := l
		t.Run(l.name, func(t *testing.T) {
			do(t, l.lat)
		})
	}
}

// mkEnv creates an environment with the given bindings, applied in order with Set.
func mkEnv(lat *uninit.EnvLattice[V], bindings ...interface{}) Env {
	env := lat.Top()
	for i := 0; i+1 < len(bindings); i += 2 {
		env.Set(bindings[i].(V), bindings[i+1].(L.Uninitialized))
	}
	return env
}

// sampleEnvs enumerates every environment over {x, y} without ⊥ bindings, plus ⊥.
func sampleEnvs(lat *uninit.EnvLattice[V]) []Env {
	vals := []L.Uninitialized{I, U, top}
	res := []Env{lat.Bot()}
	for _, vx := range vals {
		for _, vy := range vals {
			res = append(res, mkEnv(lat, x, vx, y, vy))
		}
	}
	return res
}
