package variable

import (
	"fmt"

	"github.com/benbjohnson/immutable"
)

var (
	nameHasher  = immutable.NewHasher("")
	scopeHasher = immutable.NewHasher(0)
)

// Named identifies a source-level variable by its name and the scope it was
// declared in. Scope 0 is the outermost scope of the analyzed unit, and
// disambiguates shadowed declarations of the same name.
type Named struct {
	Name  string
	Scope int
}

// Var creates a reference to a variable declared in the outermost scope.
func Var(name string) Named {
	return Named{Name: name}
}

// Vars creates references for several variables declared in the outermost scope.
func Vars(names ...string) []Named {
	res := make([]Named, 0, len(names))
	for _, name := range names {
		res = append(res, Var(name))
	}
	return res
}

func (n Named) Equal(o Named) bool {
	return n == o
}

func (n Named) Hash() uint32 {
	return hashCombine(
		nameHasher.Hash(n.Name),
		scopeHasher.Hash(n.Scope),
	)
}

func (n Named) String() string {
	if n.Scope == 0 {
		return colorize.Site(n.Name)
	}
	return colorize.Site(n.Name) + colorize.Scope(fmt.Sprintf("#%d", n.Scope))
}

var _ Ref[Named] = Named{}
