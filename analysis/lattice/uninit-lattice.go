package lattice

// UninitializedLattice represents the lattice of initialization facts about a single variable:
//
//	  ⊤
//	 / \
//	I   U
//	 \ /
//	  ⊥
type UninitializedLattice struct{}

// uninitializedLattice is a singleton instantiation of the initialization lattice.
var uninitializedLattice = &UninitializedLattice{}

// Uninitialized returns the initialization lattice.
func (latticeFactory) Uninitialized() *UninitializedLattice {
	return uninitializedLattice
}

// Top retrieves the ⊤ element of the initialization lattice.
func (*UninitializedLattice) Top() Uninitialized {
	return UninitTop
}

// Bot retrieves the ⊥ element of the initialization lattice.
func (*UninitializedLattice) Bot() Uninitialized {
	return UninitBot
}

// Elements lists all members of the lattice, bottom first.
func (*UninitializedLattice) Elements() []Uninitialized {
	return []Uninitialized{UninitBot, Initialized, Uninit, UninitTop}
}

func (*UninitializedLattice) String() string {
	return colorize.Lattice("Uninit")
}

var _ Lattice[Uninitialized] = uninitializedLattice
