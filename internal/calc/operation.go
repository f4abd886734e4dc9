package calc

import (
	"fmt"
	"strconv"
	"strings"
)

// Operation identifies one arithmetic behavior. The zero value, OpNone, is the
// absence sentinel and is never present in a registry.
type Operation int

// The closed set of operations. Divide is the only one that can fail.
const (
	OpNone Operation = iota
	Add
	Subtract
	Multiply
	Divide
)

// all lists the valid identifiers in declaration order.
var all = []Operation{Add, Subtract, Multiply, Divide}

var names = map[Operation]string{
	OpNone:   "none",
	Add:      "add",
	Subtract: "subtract",
	Multiply: "multiply",
	Divide:   "divide",
}

var symbols = map[string]Operation{
	"+": Add,
	"-": Subtract,
	"*": Multiply,
	"/": Divide,
}

func (o Operation) String() string {
	if name, ok := names[o]; ok {
		return name
	}
	return "Operation(" + strconv.Itoa(int(o)) + ")"
}

// ParseOperation maps a name ("add", "Divide") or symbol ("+") to its
// identifier. Unrecognised input yields OpNone.
func ParseOperation(name string) Operation {
	name = strings.ToLower(strings.TrimSpace(name))
	if op, ok := symbols[name]; ok {
		return op
	}
	for _, op := range all {
		if names[op] == name {
			return op
		}
	}
	return OpNone
}

// ParseOperations resolves a list of names, skipping blank entries. Unlike
// ParseOperation it rejects unknown names, which suits configuration input.
func ParseOperations(names []string) ([]Operation, error) {
	ops := make([]Operation, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		op := ParseOperation(name)
		if op == OpNone {
			return nil, fmt.Errorf("unknown operation %q", name)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// Step is one (identifier, operand) pair of a chained calculation.
type Step struct {
	Op      Operation
	Operand float64
}

// ParseStep parses the "op:value" form, e.g. "multiply:2" or "/:4".
func ParseStep(s string) (Step, error) {
	name, value, ok := strings.Cut(s, ":")
	if !ok {
		return Step{}, fmt.Errorf("step %q: expected op:value", s)
	}

	operand, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return Step{}, fmt.Errorf("step %q: %w", s, err)
	}

	return Step{Op: ParseOperation(name), Operand: operand}, nil
}
