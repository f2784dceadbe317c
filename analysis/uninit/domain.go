// Package uninit implements the abstract domain tracking which variables are
// definitely initialized, definitely uninitialized or possibly both.
package uninit

import (
	L "github.com/cs-au-dk/absdom/analysis/lattice"
	"github.com/cs-au-dk/absdom/analysis/variable"
)

// Domain is the interface of abstract domains that keep track of
// (un)initialized variables, identified by references of type V.
//
// Mutators update the receiver in place and leave a ⊥ receiver untouched.
// Queries never fail: on ⊥ both IsInitialized and IsUninitialized are false.
type Domain[V variable.Ref[V], D any] interface {
	L.Element[D]

	// AssignInitialized performs x = initialized.
	AssignInitialized(x V)
	// AssignUninitialized performs x = uninitialized.
	AssignUninitialized(x V)
	// Assign performs x = y.
	Assign(x, y V)
	// AssignOp performs x = f(operands...) for an uninterpreted operator f.
	// The result is uninitialized if any operand is, initialized if all
	// operands are, and ⊤ otherwise, including when there are no operands.
	AssignOp(x V, operands ...V)

	IsInitialized(x V) bool
	IsUninitialized(x V) bool

	// Set overwrites the value of x.
	Set(x V, v L.Uninitialized)
	// Refine meets the value of x with v.
	Refine(x V, v L.Uninitialized)
	// Forget resets x to ⊤.
	Forget(x V)
	// Get returns the value of x without modifying the receiver.
	Get(x V) L.Uninitialized

	// Normalize resolves any deferred contradiction, collapsing the receiver
	// to ⊥ if some variable is bound to ⊥. IsBot, Leq and Eq results on a
	// domain with deferred contradiction detection are only trustworthy
	// after normalization.
	Normalize()
}

var _ Domain[variable.Named, *Env[variable.Named]] = (*Env[variable.Named])(nil)
