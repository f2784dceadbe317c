package lattice

type (
	// factory a structure that implements methods from which to access
	// the lattice and lattice element factories.
	factory struct{}

	// latticeFactory is a structure that implements methods for creating lattices.
	latticeFactory struct{}

	// elementFactory is a structure that implements methods for creating lattice elements.
	elementFactory struct{}
)

// Lattice gives access to the lattice factory.
func (factory) Lattice() latticeFactory {
	return latticeFactory{}
}

// Element gives access to the element factory.
func (factory) Element() elementFactory {
	return elementFactory{}
}

// Create returns a factory for which the methods are used
// to create lattices or lattice elements.
func Create() factory {
	return factory{}
}
