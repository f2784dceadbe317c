package lattice

import (
	"errors"
	"fmt"

	"github.com/cs-au-dk/absdom/utils"
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

var errPatternMatch = func(v interface{}) error {
	return fmt.Errorf("%w: %v %T", errInvalidElement, v, v)
}

var errInvalidElement = errors.New("invalid lattice element")

// Element is implemented by every abstract domain element E. The operations are
// closed over E, which lets fixpoint code be written once against the contract
// while calls on a concrete domain stay statically dispatched.
type Element[E any] interface {
	// IsBot checks whether the element is ⊥, i. e. the unreachable state.
	IsBot() bool
	// IsTop checks whether the element is ⊤, i. e. no information.
	IsTop() bool

	Leq(E) bool
	Eq(E) bool
	Join(E) E
	Meet(E) E
	// Widen must over-approximate Join and guarantee that every
	// increasing chain e0, e0.Widen(e1), ... is eventually stable.
	Widen(E) E
	// Narrow must stay between Meet and the receiver.
	Narrow(E) E

	String() string
}

// Lattice is a factory for the extremal elements of a domain.
type Lattice[E Element[E]] interface {
	Top() E
	Bot() E
	String() string
}

// Geq computes a ⊒ b.
func Geq[E Element[E]](a, b E) bool {
	return b.Leq(a)
}

// JoinAll computes ⊔ es, starting from ⊥ of the given lattice.
func JoinAll[E Element[E]](lat Lattice[E], es ...E) E {
	res := lat.Bot()
	for _, e := range es {
		res = res.Join(e)
	}
	return res
}

// MeetAll computes ⊓ es, starting from ⊤ of the given lattice.
func MeetAll[E Element[E]](lat Lattice[E], es ...E) E {
	res := lat.Top()
	for _, e := range es {
		res = res.Meet(e)
	}
	return res
}
