package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var operands = []float64{0, 1, -1, 2.5, -7.25, 1e300, -1e-300, math.MaxFloat64, math.Inf(1), math.Inf(-1)}

func TestCalculateBasicOperations(t *testing.T) {
	d := NewDispatcher(DefaultRegistry())

	tests := []struct {
		name string
		op   Operation
		a, b float64
		want float64
	}{
		{name: "add", op: Add, a: 2, b: 3, want: 5},
		{name: "subtract", op: Subtract, a: 2, b: 3, want: -1},
		{name: "multiply", op: Multiply, a: 2, b: 3, want: 6},
		{name: "divide", op: Divide, a: 3, b: 7, want: 0.42857142857},
		{name: "divide zero numerator", op: Divide, a: 0, b: 5, want: 0},
		{name: "multiply negatives", op: Multiply, a: -3, b: -2, want: 6},
		{name: "divide negative numerator", op: Divide, a: -10, b: 2, want: -5},
		{name: "divide negative denominator", op: Divide, a: 10, b: -2, want: -5},
		{name: "large addition absorbed", op: Add, a: math.MaxFloat64, b: 1, want: math.MaxFloat64},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := d.Calculate(tc.op, tc.a, tc.b)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-8)
		})
	}
}

func TestCalculateIdentities(t *testing.T) {
	d := NewDispatcher(DefaultRegistry())

	for _, a := range operands {
		sum, err := d.Calculate(Add, a, 0)
		require.NoError(t, err)
		assert.Equal(t, a, sum, "a + 0")

		diff, err := d.Calculate(Subtract, a, 0)
		require.NoError(t, err)
		assert.Equal(t, a, diff, "a - 0")

		if !math.IsInf(a, 0) {
			prod, err := d.Calculate(Multiply, a, 0)
			require.NoError(t, err)
			assert.Zero(t, prod, "a * 0")
		}
	}
}

func TestCalculateCommutative(t *testing.T) {
	d := NewDispatcher(DefaultRegistry())

	for _, a := range operands {
		for _, b := range operands {
			for _, op := range []Operation{Add, Multiply} {
				ab, errAB := d.Calculate(op, a, b)
				ba, errBA := d.Calculate(op, b, a)
				require.NoError(t, errAB)
				require.NoError(t, errBA)
				if math.IsNaN(ab) {
					assert.True(t, math.IsNaN(ba), "%v(%g, %g)", op, a, b)
					continue
				}
				assert.Equal(t, ab, ba, "%v(%g, %g)", op, a, b)
			}
		}
	}
}

func TestCalculateDivide(t *testing.T) {
	d := NewDispatcher(DefaultRegistry())

	for _, a := range operands {
		for _, b := range operands {
			if b == 0 {
				continue
			}
			got, err := d.Calculate(Divide, a, b)
			require.NoError(t, err)
			want := a / b
			if math.IsNaN(want) {
				assert.True(t, math.IsNaN(got))
				continue
			}
			assert.Equal(t, want, got)
		}
	}
}

func TestCalculateDivisionByZero(t *testing.T) {
	d := NewDispatcher(DefaultRegistry())

	for _, a := range append(operands, math.NaN()) {
		for _, zero := range []float64{0, math.Copysign(0, -1)} {
			_, err := d.Calculate(Divide, a, zero)
			require.ErrorIs(t, err, ErrDivisionByZero)
			assert.EqualError(t, err, "Division by zero")
		}
	}
}

func TestCalculateSpecialValuesAreResults(t *testing.T) {
	d := NewDispatcher(DefaultRegistry())

	got, err := d.Calculate(Multiply, math.MaxFloat64, 2)
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))

	got, err = d.Calculate(Add, math.Inf(1), 1)
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, 1))

	got, err = d.Calculate(Subtract, math.Inf(1), math.Inf(1))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))

	got, err = d.Calculate(Divide, math.NaN(), 3)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))
}

func TestCalculateUnsupportedOperation(t *testing.T) {
	tests := []struct {
		name     string
		registry Registry
		op       Operation
	}{
		{name: "nil registry", registry: nil, op: Add},
		{name: "empty registry", registry: Registry{}, op: Divide},
		{name: "missing key", registry: NewRegistry(Add, Subtract), op: Multiply},
		{name: "absence sentinel", registry: DefaultRegistry(), op: OpNone},
		{name: "out of range", registry: DefaultRegistry(), op: Operation(42)},
		{name: "nil implementation", registry: Registry{Add: nil}, op: Add},
		{name: "sentinel key registered", registry: Registry{OpNone: AddFunc, Add: AddFunc}, op: OpNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDispatcher(tc.registry)
			for _, a := range []float64{0, 1, math.NaN()} {
				_, err := d.Calculate(tc.op, a, 2)
				require.ErrorIs(t, err, ErrUnsupportedOperation)
				assert.EqualError(t, err, "Operation not supported")
			}
		})
	}
}

func TestCalculatePassesOperandsInOrder(t *testing.T) {
	var gotA, gotB float64
	d := NewDispatcher(Registry{
		Subtract: func(a, b float64) (float64, error) {
			gotA, gotB = a, b
			return a - b, nil
		},
	})

	got, err := d.Calculate(Subtract, 10, 4)
	require.NoError(t, err)
	assert.Equal(t, 6.0, got)
	assert.Equal(t, 10.0, gotA)
	assert.Equal(t, 4.0, gotB)
}

func TestChainOperations(t *testing.T) {
	d := NewDispatcher(DefaultRegistry())

	tests := []struct {
		name    string
		initial float64
		steps   []Step
		want    float64
	}{
		{name: "empty", initial: 42.5, steps: nil, want: 42.5},
		{name: "add then multiply", initial: 5, steps: []Step{{Add, 3}, {Multiply, 2}}, want: 16},
		{name: "mixed signs", initial: 10, steps: []Step{{Subtract, 0}, {Add, -5}, {Multiply, -1}}, want: -5},
		{name: "divide", initial: 1, steps: []Step{{Divide, 4}, {Divide, 2}}, want: 0.125},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := d.ChainOperations(tc.initial, tc.steps)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestChainOperationsEmptyKeepsSpecialValues(t *testing.T) {
	d := NewDispatcher(nil)

	got, err := d.ChainOperations(math.NaN(), []Step{})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))
}

func TestChainOperationsAbortsOnFirstError(t *testing.T) {
	calls := 0
	d := NewDispatcher(DefaultRegistry(), WithInterceptor(func(op Operation, a, b float64, next Func) (float64, error) {
		calls++
		return next(a, b)
	}))

	_, err := d.ChainOperations(6, []Step{{Add, 1}, {Divide, 0}, {Multiply, 3}})
	require.ErrorIs(t, err, ErrDivisionByZero)
	assert.Equal(t, 2, calls)

	calls = 0
	_, err = d.ChainOperations(6, []Step{{OpNone, 1}, {Add, 3}})
	require.ErrorIs(t, err, ErrUnsupportedOperation)
	assert.Zero(t, calls)
}

func TestInterceptorOrderAndWith(t *testing.T) {
	var seen []string
	record := func(tag string) Interceptor {
		return func(op Operation, a, b float64, next Func) (float64, error) {
			seen = append(seen, tag+":"+op.String())
			return next(a, b)
		}
	}

	base := NewDispatcher(DefaultRegistry(), WithInterceptor(record("inner")))
	wrapped := base.With(WithInterceptor(record("outer")))

	got, err := wrapped.Calculate(Add, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)
	assert.Equal(t, []string{"outer:add", "inner:add"}, seen)

	seen = nil
	_, err = base.Calculate(Add, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"inner:add"}, seen)
}

func TestOperations(t *testing.T) {
	assert.Equal(t, []Operation{Add, Subtract, Multiply, Divide}, NewDispatcher(DefaultRegistry()).Operations())
	assert.Equal(t, []Operation{Subtract, Divide}, NewDispatcher(NewRegistry(Divide, OpNone, Subtract)).Operations())
	assert.Empty(t, NewDispatcher(nil).Operations())
	assert.Equal(t, []Operation{Add}, NewDispatcher(Registry{OpNone: AddFunc, Add: AddFunc}).Operations())
}
