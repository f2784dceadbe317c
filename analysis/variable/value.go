package variable

import "golang.org/x/tools/go/ssa"

// Value identifies an SSA register (a parameter, free variable, global or
// value-producing instruction) of a function built with golang.org/x/tools/go/ssa.
// References are equal iff they wrap the same SSA value.
type Value struct {
	ssa.Value
}

func (v Value) Equal(o Value) bool {
	return v.Value == o.Value
}

func (v Value) Hash() uint32 {
	if v.Value == nil {
		return 0
	}
	return pointerHash(v.Value)
}

func (v Value) String() string {
	if v.Value == nil {
		return colorize.Site("<nil>")
	}
	return colorize.Site(v.Name())
}

// Position returns the source position of the value, if known.
func (v Value) Position() string {
	if v.Value == nil {
		return ""
	}
	if fun := v.Parent(); fun != nil && v.Pos().IsValid() {
		return fun.Prog.Fset.Position(v.Pos()).String()
	}
	return ""
}

// ValuesOf collects references to the parameters, free variables and
// value-producing instructions of a function, in block and instruction order.
func ValuesOf(fun *ssa.Function) (res []Value) {
	for _, p := range fun.Params {
		res = append(res, Value{p})
	}
	for _, fv := range fun.FreeVars {
		res = append(res, Value{fv})
	}

	for _, block := range fun.Blocks {
		for _, insn := range block.Instrs {
			if val, ok := insn.(ssa.Value); ok {
				res = append(res, Value{val})
			}
		}
	}

	return
}

var _ Ref[Value] = Value{}
