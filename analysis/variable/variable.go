// Package variable provides the references by which abstract domains identify
// program variables. Domains only hash and compare references; they never look inside.
package variable

import (
	"reflect"

	"github.com/cs-au-dk/absdom/utils"

	"github.com/benbjohnson/immutable"
	"github.com/fatih/color"
)

// colorize is used for pretty-printing.
var colorize = struct {
	Site  func(...interface{}) string
	Scope func(...interface{}) string
}{
	Site: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiGreen).SprintFunc())(is...)
	},
	Scope: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiBlue).SprintFunc())(is...)
	},
}

// Ref is the contract of variable reference types. Two references denote the
// same variable iff Equal holds, in which case their hashes must coincide.
type Ref[V any] interface {
	Hash() uint32
	Equal(V) bool
	String() string
}

// refHasher hashes references by delegating to their own methods.
type refHasher[V Ref[V]] struct{}

func (refHasher[V]) Hash(v V) uint32 { return v.Hash() }

func (refHasher[V]) Equal(a, b V) bool { return a.Equal(b) }

// Hasher is the hasher used for persistent maps keyed by variable references.
func Hasher[V Ref[V]]() immutable.Hasher[V] { return refHasher[V]{} }

// pointerHash computes a hash of a pointer-like value from its address.
func pointerHash(v any) uint32 {
	p := reflect.ValueOf(v).Pointer()
	return uint32(p ^ (p >> 32))
}

// hashCombine uses the C++ boost algorithm for combining multiple hash values.
func hashCombine(hs ...uint32) (seed uint32) {
	for _, v := range hs {
		seed = v + 0x9e3779b9 + (seed << 6) + (seed >> 2)
	}

	return
}
