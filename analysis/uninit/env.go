package uninit

import (
	"strings"

	L "github.com/cs-au-dk/absdom/analysis/lattice"
	"github.com/cs-au-dk/absdom/analysis/variable"

	"github.com/acarl005/stripansi"
	"github.com/benbjohnson/immutable"
	"github.com/mattn/go-runewidth"
	"golang.org/x/exp/slices"
)

// Env is a member of an environment lattice. It is a sparse map from variables
// to initialization facts, where absent variables are implicitly ⊤, together
// with a flag marking the unreachable environment.
//
// The map is persistent, so copies are cheap and never alias mutable state.
type Env[V variable.Ref[V]] struct {
	lattice *EnvLattice[V]
	// bot marks the unreachable environment. The map is empty whenever bot is set.
	bot bool
	// pending marks a deferred environment with some variable bound to ⊥.
	// It is logically unreachable, so mutators leave it untouched until Normalize.
	pending bool
	// mp never binds ⊤. It binds ⊥ only in deferred environments, exactly when pending is set.
	mp *immutable.Map[V, L.Uninitialized]
}

// Lattice returns the environment lattice e belongs to.
func (e *Env[V]) Lattice() *EnvLattice[V] {
	return e.lattice
}

// Copy returns an independent copy of the environment.
func (e *Env[V]) Copy() *Env[V] {
	c := *e
	return &c
}

// Len returns the number of variables bound to something other than ⊤.
func (e *Env[V]) Len() int {
	return e.mp.Len()
}

// ForEach calls do for every variable bound to something other than ⊤.
func (e *Env[V]) ForEach(do func(V, L.Uninitialized)) {
	for iter := e.mp.Iterator(); !iter.Done(); {
		x, v, _ := iter.Next()
		do(x, v)
	}
}

// IsBot checks the ⊥ flag in constant time. Deferred environments
// must be normalized first to catch pending contradictions.
func (e *Env[V]) IsBot() bool {
	return e.bot
}

func (e *Env[V]) IsTop() bool {
	return !e.bot && e.mp.Len() == 0
}

// SetToBot turns e into the unreachable environment.
func (e *Env[V]) SetToBot() {
	e.bot, e.pending = true, false
	e.mp = e.lattice.emptyMap()
}

// SetToTop removes every constraint from e.
func (e *Env[V]) SetToTop() {
	e.bot, e.pending = false, false
	e.mp = e.lattice.emptyMap()
}

// Get returns the value bound to x. Unbound variables are ⊤, and every
// variable is ⊥ in an unreachable environment, normalized or not.
func (e *Env[V]) Get(x V) L.Uninitialized {
	if e.unreachable() {
		return L.UninitBot
	}
	if v, found := e.mp.Get(x); found {
		return v
	}
	return L.UninitTop
}

// unreachable checks whether e is ⊥, possibly pending normalization.
func (e *Env[V]) unreachable() bool {
	return e.bot || e.pending
}

// set performs a strong update, maintaining the representation invariants.
func (e *Env[V]) set(x V, v L.Uninitialized) {
	switch {
	case e.unreachable():
	case v.IsTop():
		e.mp = e.mp.Delete(x)
	case v.IsBot() && !e.lattice.deferred:
		e.SetToBot()
	case v.IsBot():
		e.mp = e.mp.Set(x, v)
		e.pending = true
	default:
		e.mp = e.mp.Set(x, v)
	}
}

func (e *Env[V]) Set(x V, v L.Uninitialized) {
	e.set(x, v)
}

func (e *Env[V]) AssignInitialized(x V) {
	e.set(x, L.Initialized)
}

func (e *Env[V]) AssignUninitialized(x V) {
	e.set(x, L.Uninit)
}

func (e *Env[V]) Assign(x, y V) {
	if e.unreachable() || x.Equal(y) {
		return
	}
	e.set(x, e.Get(y))
}

func (e *Env[V]) AssignOp(x V, operands ...V) {
	if e.unreachable() {
		return
	}
	if len(operands) == 0 {
		e.set(x, L.UninitTop)
		return
	}

	res := L.Initialized
	for _, y := range operands {
		switch v := e.Get(y); {
		case v.IsUninitialized():
			res = L.Uninit
		case v.IsTop() && res != L.Uninit:
			res = L.UninitTop
		}
	}

	e.set(x, res)
}

func (e *Env[V]) IsInitialized(x V) bool {
	return e.Get(x).IsInitialized()
}

func (e *Env[V]) IsUninitialized(x V) bool {
	return e.Get(x).IsUninitialized()
}

func (e *Env[V]) Refine(x V, v L.Uninitialized) {
	if e.unreachable() {
		return
	}
	e.set(x, e.Get(x).Meet(v))
}

func (e *Env[V]) Forget(x V) {
	if e.unreachable() {
		return
	}
	e.mp = e.mp.Delete(x)
}

func (e *Env[V]) Normalize() {
	if e.pending {
		e.SetToBot()
	}
}

// normalized returns a view of e without pending contradictions. e is left untouched.
func (e *Env[V]) normalized() *Env[V] {
	if e.pending {
		return e.lattice.Bot()
	}
	return e
}

// Leq computes e ⊑ o pointwise.
func (e *Env[V]) Leq(o *Env[V]) bool {
	checkLatticeMatch(e.lattice, o.lattice, "⊑")
	e, o = e.normalized(), o.normalized()

	switch {
	case e.bot:
		return true
	case o.bot:
		return false
	case e.mp == o.mp:
		return true
	case e.mp.Len() < o.mp.Len():
		// Some binding of o is ⊤ in e.
		return false
	}

	// Variables absent from o are ⊤ there, so only o's bindings constrain e.
	for iter := o.mp.Iterator(); !iter.Done(); {
		x, w, _ := iter.Next()
		v, found := e.mp.Get(x)
		if !found || !v.Leq(w) {
			return false
		}
	}
	return true
}

// Eq computes e = o.
func (e *Env[V]) Eq(o *Env[V]) bool {
	checkLatticeMatch(e.lattice, o.lattice, "=")
	e, o = e.normalized(), o.normalized()

	switch {
	case e.bot || o.bot:
		return e.bot == o.bot
	case e.mp == o.mp:
		return true
	case e.mp.Len() != o.mp.Len():
		return false
	}

	for iter := e.mp.Iterator(); !iter.Done(); {
		x, v, _ := iter.Next()
		if w, found := o.mp.Get(x); !found || !v.Eq(w) {
			return false
		}
	}
	return true
}

// Join computes e ⊔ o pointwise. A variable bound in only one of the
// environments is ⊤ in the other, and therefore ⊤ in the result.
func (e *Env[V]) Join(o *Env[V]) *Env[V] {
	checkLatticeMatch(e.lattice, o.lattice, "⊔")
	e, o = e.normalized(), o.normalized()

	switch {
	case e.bot:
		return o.Copy()
	case o.bot, e.mp == o.mp:
		return e.Copy()
	}

	if e.mp.Len() > o.mp.Len() {
		e, o = o, e
	}

	res := e.lattice.Top()
	for iter := e.mp.Iterator(); !iter.Done(); {
		x, v, _ := iter.Next()
		if w, found := o.mp.Get(x); found {
			res.set(x, v.Join(w))
		}
	}
	return res
}

// Meet computes e ⊓ o pointwise. Variables that meet to ⊥ make the result
// ⊥, either immediately or upon normalization, depending on the lattice.
func (e *Env[V]) Meet(o *Env[V]) *Env[V] {
	checkLatticeMatch(e.lattice, o.lattice, "⊓")
	e, o = e.normalized(), o.normalized()

	switch {
	case e.bot || o.bot:
		return e.lattice.Bot()
	case e.mp == o.mp:
		return e.Copy()
	}

	if e.mp.Len() > o.mp.Len() {
		e, o = o, e
	}

	res := o.Copy()
	for iter := e.mp.Iterator(); !iter.Done() && !res.unreachable(); {
		x, v, _ := iter.Next()
		res.set(x, v.Meet(res.Get(x)))
	}
	return res
}

// Widen is Join. Every variable is bound in a lattice of finite height, and
// joining can only remove bindings, so ascending chains stabilize.
func (e *Env[V]) Widen(o *Env[V]) *Env[V] {
	return e.Join(o)
}

// Narrow is Meet.
func (e *Env[V]) Narrow(o *Env[V]) *Env[V] {
	return e.Meet(o)
}

func (e *Env[V]) String() string {
	switch {
	case e.bot:
		return colorize.Element("⊥")
	case e.mp.Len() == 0:
		return colorize.Element("⊤")
	}

	// Keys are measured and ordered without their colour codes.
	type binding struct {
		x, v, plain string
		width       int
	}
	bindings := make([]binding, 0, e.mp.Len())
	width := 0
	e.ForEach(func(x V, v L.Uninitialized) {
		str := x.String()
		plain := stripansi.Strip(str)
		b := binding{str, v.String(), plain, runewidth.StringWidth(plain)}
		if b.width > width {
			width = b.width
		}
		bindings = append(bindings, b)
	})
	slices.SortFunc(bindings, func(a, b binding) bool {
		return a.plain < b.plain
	})

	if len(bindings) == 1 {
		return "{ " + bindings[0].x + " ↦ " + bindings[0].v + " }"
	}

	var sb strings.Builder
	sb.WriteString("{\n")
	for _, b := range bindings {
		sb.WriteString("  " + b.x + strings.Repeat(" ", width-b.width) + " ↦ " + b.v + "\n")
	}
	sb.WriteString("}")
	return sb.String()
}
