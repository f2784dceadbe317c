package testutil

import (
	"testing"

	"github.com/cs-au-dk/absdom/analysis/lattice"
)

// CheckLatticeLaws checks the order-theoretic laws of ⊑, ⊔ and ⊓ on every
// pair and triple drawn from the given elements. Elements are compared with Eq.
func CheckLatticeLaws[E lattice.Element[E]](t *testing.T, lat lattice.Lattice[E], elems []E) {
	t.Helper()

	top, bot := lat.Top(), lat.Bot()
	if !top.IsTop() {
		t.Errorf("%s.IsTop() is false", top)
	}
	if !bot.IsBot() {
		t.Errorf("%s.IsBot() is false", bot)
	}

	for _, a := range elems {
		if !a.Leq(a) {
			t.Errorf("%s ⊑ %s does not hold", a, a)
		}
		if !a.Join(a).Eq(a) {
			t.Errorf("%s ⊔ %s = %s, expected %s", a, a, a.Join(a), a)
		}
		if !a.Meet(a).Eq(a) {
			t.Errorf("%s ⊓ %s = %s, expected %s", a, a, a.Meet(a), a)
		}
		if !a.Join(top).Eq(top) {
			t.Errorf("%s ⊔ ⊤ = %s, expected ⊤", a, a.Join(top))
		}
		if !a.Meet(bot).Eq(bot) {
			t.Errorf("%s ⊓ ⊥ = %s, expected ⊥", a, a.Meet(bot))
		}
		if !bot.Leq(a) || !a.Leq(top) {
			t.Errorf("%s is not within ⊥ and ⊤", a)
		}

		for _, b := range elems {
			ab, ba := a.Join(b), b.Join(a)
			if !ab.Eq(ba) {
				t.Errorf("%s ⊔ %s = %s, but %s ⊔ %s = %s", a, b, ab, b, a, ba)
			}
			if !a.Leq(ab) || !b.Leq(ab) {
				t.Errorf("%s ⊔ %s = %s is not an upper bound", a, b, ab)
			}

			mab, mba := a.Meet(b), b.Meet(a)
			if !mab.Eq(mba) {
				t.Errorf("%s ⊓ %s = %s, but %s ⊓ %s = %s", a, b, mab, b, a, mba)
			}
			if !mab.Leq(a) || !mab.Leq(b) {
				t.Errorf("%s ⊓ %s = %s is not a lower bound", a, b, mab)
			}

			if a.Leq(b) && b.Leq(a) && !a.Eq(b) {
				t.Errorf("⊑ is not antisymmetric for %s and %s", a, b)
			}
			if a.Leq(b) != ab.Eq(b) {
				t.Errorf("%s ⊑ %s = %v disagrees with %s ⊔ %s = %s", a, b, a.Leq(b), a, b, ab)
			}
			if !ab.Leq(a.Widen(b)) {
				t.Errorf("%s ∇ %s = %s does not cover %s", a, b, a.Widen(b), ab)
			}
			if nab := a.Narrow(b); !mab.Leq(nab) || !nab.Leq(a) {
				t.Errorf("%s Δ %s = %s is not between %s and %s", a, b, nab, mab, a)
			}

			for _, c := range elems {
				if l, r := a.Join(b).Join(c), a.Join(b.Join(c)); !l.Eq(r) {
					t.Errorf("⊔ is not associative for %s, %s, %s: %s vs. %s", a, b, c, l, r)
				}
				if l, r := a.Meet(b).Meet(c), a.Meet(b.Meet(c)); !l.Eq(r) {
					t.Errorf("⊓ is not associative for %s, %s, %s: %s vs. %s", a, b, c, l, r)
				}
				if a.Leq(b) && b.Leq(c) && !a.Leq(c) {
					t.Errorf("⊑ is not transitive for %s, %s, %s", a, b, c)
				}
			}
		}
	}
}
