package lattice_test

import (
	"testing"

	L "github.com/cs-au-dk/absdom/analysis/lattice"
	"github.com/cs-au-dk/absdom/testutil"
)

var (
	lat                = L.Create().Lattice().Uninitialized()
	bot, I, U, top     = L.UninitBot, L.Initialized, L.Uninit, L.UninitTop
	uninitElements     = lat.Elements()
	mkUninitialized    = L.Create().Element().Initialized
	uninitLatticeLabel = lat.String()
)

func TestUninitializedLaws(t *testing.T) {
	testutil.CheckLatticeLaws[L.Uninitialized](t, lat, uninitElements)
}

func TestUninitializedJoin(t *testing.T) {
	tests := []struct{ a, b, expected L.Uninitialized }{
		{bot, bot, bot},
		{bot, I, I},
		{U, bot, U},
		{I, I, I},
		{I, U, top},
		{U, I, top},
		{I, top, top},
		{top, U, top},
		{top, top, top},
	}

	for _, test := range tests {
		res := test.a.Join(test.b)
		if res != test.expected {
			t.Errorf("%s ⊔ %s = %s, expected %s\n", test.a, test.b, res, test.expected)
		} else {
			t.Logf("%s ⊔ %s = %s\n", test.a, test.b, res)
		}
	}
}

func TestUninitializedMeet(t *testing.T) {
	tests := []struct{ a, b, expected L.Uninitialized }{
		{bot, top, bot},
		{I, bot, bot},
		{I, I, I},
		{I, U, bot},
		{U, I, bot},
		{top, U, U},
		{I, top, I},
		{top, top, top},
	}

	for _, test := range tests {
		res := test.a.Meet(test.b)
		if res != test.expected {
			t.Errorf("%s ⊓ %s = %s, expected %s\n", test.a, test.b, res, test.expected)
		} else {
			t.Logf("%s ⊓ %s = %s\n", test.a, test.b, res)
		}
	}
}

func TestUninitializedLeq(t *testing.T) {
	tests := []struct {
		a, b     L.Uninitialized
		expected bool
	}{
		{bot, bot, true},
		{bot, I, true},
		{bot, top, true},
		{I, U, false},
		{U, I, false},
		{I, top, true},
		{U, top, true},
		{top, I, false},
		{top, bot, false},
		{U, bot, false},
	}

	for _, test := range tests {
		res := test.a.Leq(test.b)
		if res != test.expected {
			t.Errorf("%s ⊑ %s = %v, expected %v\n", test.a, test.b, res, test.expected)
		}
		if geq := test.b.Geq(test.a); geq != test.expected {
			t.Errorf("%s ⊒ %s = %v, expected %v\n", test.b, test.a, geq, test.expected)
		}
	}
}

func TestUninitializedWidenNarrow(t *testing.T) {
	for _, a := range uninitElements {
		for _, b := range uninitElements {
			if a.Widen(b) != a.Join(b) {
				t.Errorf("%s ∇ %s = %s, expected %s", a, b, a.Widen(b), a.Join(b))
			}
			if a.Narrow(b) != a.Meet(b) {
				t.Errorf("%s Δ %s = %s, expected %s", a, b, a.Narrow(b), a.Meet(b))
			}
		}
	}
}

func TestUninitializedQueries(t *testing.T) {
	tests := []struct {
		e                            L.Uninitialized
		isBot, isTop, isInit, isUnit bool
		height                       int
	}{
		{bot, true, false, false, false, 0},
		{I, false, false, true, false, 1},
		{U, false, false, false, true, 1},
		{top, false, true, false, false, 2},
	}

	for _, test := range tests {
		if test.e.IsBot() != test.isBot ||
			test.e.IsTop() != test.isTop ||
			test.e.IsInitialized() != test.isInit ||
			test.e.IsUninitialized() != test.isUnit {
			t.Errorf("Unexpected membership tests for %s", test.e)
		}
		if h := test.e.Height(); h != test.height {
			t.Errorf("Height(%s) = %d, expected %d", test.e, h, test.height)
		}
	}

	if mkUninitialized(true) != I || mkUninitialized(false) != U {
		t.Error("Element factory does not produce (un)initialized constants")
	}
	if lat.Top() != top || lat.Bot() != bot || top.Lattice() != lat {
		t.Errorf("Unexpected extremal elements of %s", uninitLatticeLabel)
	}
}

func TestUninitializedFolds(t *testing.T) {
	if res := L.JoinAll[L.Uninitialized](lat); res != bot {
		t.Errorf("Empty join = %s, expected ⊥", res)
	}
	if res := L.MeetAll[L.Uninitialized](lat); res != top {
		t.Errorf("Empty meet = %s, expected ⊤", res)
	}
	if res := L.JoinAll[L.Uninitialized](lat, I, bot, U); res != top {
		t.Errorf("⊔ {I, ⊥, U} = %s, expected ⊤", res)
	}
	if res := L.MeetAll[L.Uninitialized](lat, top, I); res != I {
		t.Errorf("⊓ {⊤, I} = %s, expected I", res)
	}
	if !L.Geq(top, I) || L.Geq(I, U) {
		t.Error("Geq disagrees with Leq")
	}
}

func TestUninitializedInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected a panic for an element outside of the lattice")
		}
	}()

	L.Uninitialized(42).Join(I)
}

func TestUninitializedString(t *testing.T) {
	expected := map[L.Uninitialized]string{bot: "⊥", I: "I", U: "U", top: "⊤"}
	for e, str := range expected {
		if e.String() != str {
			t.Errorf("String() = %q, expected %q", e.String(), str)
		}
	}
}
