// Package calc resolves operation identifiers against an injected registry
// and applies them, singly or as a left-to-right chain.
package calc

// Interceptor wraps a resolved implementation call. It must call next to
// obtain a result.
type Interceptor func(op Operation, a, b float64, next Func) (float64, error)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithInterceptor installs i around every resolved call. Interceptors added
// later wrap those added earlier.
func WithInterceptor(i Interceptor) Option {
	return func(d *Dispatcher) {
		d.interceptors = append(d.interceptors, i)
	}
}

// Dispatcher applies operations looked up in a read-only Registry.
type Dispatcher struct {
	registry     Registry
	interceptors []Interceptor
}

// NewDispatcher returns a dispatcher over registry. A nil or empty registry
// is valid; every calculation then fails with ErrUnsupportedOperation.
func NewDispatcher(registry Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{registry: registry}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// With returns a copy of d with opts applied. The copy shares the registry;
// d itself is left unchanged.
func (d *Dispatcher) With(opts ...Option) *Dispatcher {
	c := &Dispatcher{
		registry:     d.registry,
		interceptors: append([]Interceptor(nil), d.interceptors...),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate applies the implementation registered for op to (a, b).
// OpNone is never dispatched, even if a caller-built registry holds it.
// Errors from the implementation are returned unchanged.
func (d *Dispatcher) Calculate(op Operation, a, b float64) (float64, error) {
	fn, ok := d.registry[op]
	if op == OpNone || !ok || fn == nil {
		return 0, ErrUnsupportedOperation
	}

	for _, i := range d.interceptors {
		fn = intercept(i, op, fn)
	}

	return fn(a, b)
}

func intercept(i Interceptor, op Operation, next Func) Func {
	return func(a, b float64) (float64, error) {
		return i(op, a, b, next)
	}
}

// ChainOperations folds steps over an accumulator starting at initial. The
// first failing step aborts the chain and its error is returned as is.
func (d *Dispatcher) ChainOperations(initial float64, steps []Step) (float64, error) {
	acc := initial
	for _, step := range steps {
		next, err := d.Calculate(step.Op, acc, step.Operand)
		if err != nil {
			return 0, err
		}
		acc = next
	}
	return acc, nil
}

// Operations lists the registered identifiers in declaration order.
func (d *Dispatcher) Operations() []Operation {
	ops := make([]Operation, 0, len(d.registry))
	for _, op := range all {
		if fn, ok := d.registry[op]; ok && fn != nil {
			ops = append(ops, op)
		}
	}
	return ops
}
