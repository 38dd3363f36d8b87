package target

// NullIndex is stored for functions the target exposes without a stable
// table index. The engine resolves such calls by name at load time.
const NullIndex uint16 = 0xFFFF

// Parameter describes one parameter of an engine function.
type Parameter struct {
	// Type is the expected value type of the argument.
	Type ValueType

	// Many marks the final parameter as repeatable; the function accepts
	// any number of further arguments of the same type.
	Many bool

	// Optional marks the parameter as omittable. Optional parameters only
	// appear after all required ones.
	Optional bool

	// AllowUppercase suppresses the lowercasing warning for this argument.
	// Used for string parameters whose case the engine preserves.
	AllowUppercase bool
}

// Function describes one engine function as visible to the given compile
// target. Functions are immutable; a *Function may be shared freely.
type Function struct {
	// Name is the lowercase function name.
	Name string

	// ReturnType is the declared return type, possibly Passthrough.
	ReturnType ValueType

	// Parameters are the declared parameters in order.
	Parameters []Parameter

	// NumberPassthrough restricts the unified passthrough type to a
	// numeric type (real, short or long).
	NumberPassthrough bool

	// PassthroughLast makes the last argument, not the unified type,
	// determine the call's result type (begin, begin_random).
	PassthroughLast bool

	// Inequality relaxes the passthrough unification to also admit the
	// orderable enumerant types (game difficulty, team).
	Inequality bool

	// Index is the function's slot in the target's function table.
	Index uint16
}

// TotalParameterCount returns the number of declared parameters. Calls may
// pass more arguments when the last parameter is Many.
func (f *Function) TotalParameterCount() int {
	return len(f.Parameters)
}

// MinimumParameterCount returns how many arguments a call must pass. A
// trailing Many parameter still requires its first occurrence.
func (f *Function) MinimumParameterCount() int {
	n := 0
	for _, p := range f.Parameters {
		if !p.Optional {
			n++
		}
	}
	return n
}

// ParameterFor returns the parameter governing argument i, extending a
// trailing Many parameter over all further arguments. ok is false if the
// call passes more arguments than the function accepts.
func (f *Function) ParameterFor(i int) (Parameter, bool) {
	if len(f.Parameters) == 0 {
		return Parameter{}, false
	}
	if i < len(f.Parameters) {
		return f.Parameters[i], true
	}
	last := f.Parameters[len(f.Parameters)-1]
	if last.Many {
		return last, true
	}
	return Parameter{}, false
}

// Global describes one engine-provided global as visible to the target.
type Global struct {
	// Name is the lowercase global name.
	Name string

	// Type is the global's value type.
	Type ValueType
}
