package calc

// Func is a pure implementation of one operation.
type Func func(a, b float64) (float64, error)

// AddFunc, SubtractFunc and MultiplyFunc never fail; overflow yields ±Inf.
func AddFunc(a, b float64) (float64, error) { return a + b, nil }

func SubtractFunc(a, b float64) (float64, error) { return a - b, nil }

func MultiplyFunc(a, b float64) (float64, error) { return a * b, nil }

// DivideFunc fails only when b is exactly zero; NaN and infinite operands
// follow IEEE-754 rules.
func DivideFunc(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}

var builtin = map[Operation]Func{
	Add:      AddFunc,
	Subtract: SubtractFunc,
	Multiply: MultiplyFunc,
	Divide:   DivideFunc,
}

// Registry maps identifiers to implementations. It belongs to the caller and
// must not be mutated once handed to a Dispatcher, since dispatchers may be
// shared between goroutines.
type Registry map[Operation]Func

// DefaultRegistry returns a new registry holding every built-in operation.
func DefaultRegistry() Registry {
	return NewRegistry(all...)
}

// NewRegistry returns a registry with the built-in implementations of ops.
// OpNone and unknown identifiers are skipped.
func NewRegistry(ops ...Operation) Registry {
	r := make(Registry, len(ops))
	for _, op := range ops {
		if fn, ok := builtin[op]; ok {
			r[op] = fn
		}
	}
	return r
}
