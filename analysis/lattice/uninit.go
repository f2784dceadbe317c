package lattice

// Uninitialized is a member of the initialization lattice.
// The zero value is ⊥.
type Uninitialized uint8

const (
	// UninitBot is the unreachable initialization state.
	UninitBot Uninitialized = iota
	// Initialized means the variable is definitely initialized.
	Initialized
	// Uninit means the variable is definitely uninitialized.
	Uninit
	// UninitTop means the variable may or may not be initialized.
	UninitTop
)

// Initialized creates the member of the initialization lattice
// describing a definitely (un)initialized variable.
func (elementFactory) Initialized(b bool) Uninitialized {
	if b {
		return Initialized
	}
	return Uninit
}

func (u Uninitialized) check() Uninitialized {
	if u > UninitTop {
		panic(errPatternMatch(uint8(u)))
	}
	return u
}

// Lattice returns the initialization lattice.
func (Uninitialized) Lattice() *UninitializedLattice {
	return uninitializedLattice
}

func (u Uninitialized) IsBot() bool {
	return u.check() == UninitBot
}

func (u Uninitialized) IsTop() bool {
	return u.check() == UninitTop
}

// IsInitialized is true only for the definitely initialized element.
func (u Uninitialized) IsInitialized() bool {
	return u.check() == Initialized
}

// IsUninitialized is true only for the definitely uninitialized element.
func (u Uninitialized) IsUninitialized() bool {
	return u.check() == Uninit
}

// Leq computes u ⊑ o.
func (u Uninitialized) Leq(o Uninitialized) bool {
	u, o = u.check(), o.check()
	return u == o || u == UninitBot || o == UninitTop
}

// Geq computes u ⊒ o.
func (u Uninitialized) Geq(o Uninitialized) bool {
	return o.Leq(u)
}

// Eq computes u = o.
func (u Uninitialized) Eq(o Uninitialized) bool {
	return u.check() == o.check()
}

// Join computes u ⊔ o. I ⊔ U is ⊤.
func (u Uninitialized) Join(o Uninitialized) Uninitialized {
	u, o = u.check(), o.check()
	switch {
	case u == o, o == UninitBot:
		return u
	case u == UninitBot:
		return o
	default:
		return UninitTop
	}
}

// Meet computes u ⊓ o. I ⊓ U is ⊥.
func (u Uninitialized) Meet(o Uninitialized) Uninitialized {
	u, o = u.check(), o.check()
	switch {
	case u == o, o == UninitTop:
		return u
	case u == UninitTop:
		return o
	default:
		return UninitBot
	}
}

// Widen is Join, since the lattice has finite height.
func (u Uninitialized) Widen(o Uninitialized) Uninitialized {
	return u.Join(o)
}

// Narrow is Meet, since the lattice has finite height.
func (u Uninitialized) Narrow(o Uninitialized) Uninitialized {
	return u.Meet(o)
}

// Height encodes the distance from ⊥.
func (u Uninitialized) Height() int {
	switch u.check() {
	case UninitBot:
		return 0
	case UninitTop:
		return 2
	default:
		return 1
	}
}

func (u Uninitialized) String() string {
	switch u.check() {
	case UninitBot:
		return colorize.Element("⊥")
	case Initialized:
		return colorize.Element("I")
	case Uninit:
		return colorize.Element("U")
	default:
		return colorize.Element("⊤")
	}
}

var _ Element[Uninitialized] = UninitBot
