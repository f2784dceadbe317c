package uninit

import (
	"errors"
	"fmt"

	L "github.com/cs-au-dk/absdom/analysis/lattice"
	"github.com/cs-au-dk/absdom/analysis/variable"
	"github.com/cs-au-dk/absdom/utils"

	"github.com/benbjohnson/immutable"
	"github.com/fatih/color"
)

var colorize = struct {
	Lattice func(...interface{}) string
	Element func(...interface{}) string
}{
	Lattice: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiBlue).SprintFunc())(is...)
	},
	Element: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgCyan).SprintFunc())(is...)
	},
}

var errLatticeMismatch = errors.New("lattice mismatch")

// EnvLattice is the lattice of environments mapping variables of type V to
// members of the initialization lattice. Environments only ever combine with
// environments of the same lattice.
type EnvLattice[V variable.Ref[V]] struct {
	// deferred environments store ⊥ bindings instead of collapsing eagerly.
	deferred bool
}

// MakeEnvLattice creates an environment lattice whose members collapse to ⊥
// as soon as a variable is bound to ⊥.
func MakeEnvLattice[V variable.Ref[V]]() *EnvLattice[V] {
	return &EnvLattice[V]{}
}

// MakeDeferredEnvLattice creates an environment lattice whose members keep
// ⊥ bindings around until they are normalized.
func MakeDeferredEnvLattice[V variable.Ref[V]]() *EnvLattice[V] {
	return &EnvLattice[V]{deferred: true}
}

// Deferred reports whether contradiction detection is deferred to Normalize.
func (l *EnvLattice[V]) Deferred() bool {
	return l.deferred
}

func (l *EnvLattice[V]) emptyMap() *immutable.Map[V, L.Uninitialized] {
	return immutable.NewMap[V, L.Uninitialized](variable.Hasher[V]())
}

// Top creates an environment without any constraints.
func (l *EnvLattice[V]) Top() *Env[V] {
	return &Env[V]{lattice: l, mp: l.emptyMap()}
}

// Bot creates the unreachable environment.
func (l *EnvLattice[V]) Bot() *Env[V] {
	return &Env[V]{lattice: l, bot: true, mp: l.emptyMap()}
}

func (l *EnvLattice[V]) String() string {
	if l.deferred {
		return colorize.Lattice("Env(deferred)")
	}
	return colorize.Lattice("Env")
}

func checkLatticeMatch[V variable.Ref[V]](l1, l2 *EnvLattice[V], binop string) {
	if l1 != l2 {
		panic(fmt.Errorf("%w: invalid %s between %s and %s", errLatticeMismatch, binop, l1, l2))
	}
}

var _ L.Lattice[*Env[variable.Named]] = (*EnvLattice[variable.Named])(nil)
