// Command calc evaluates a single operation or a chain of operations.
//
//	calc -op divide -a 3 -b 7
//	calc -initial 5 add:3 multiply:2
//	calc -initial 5 -:3 /:4
//
// Any argument containing a colon is a chain step, so symbol steps such as
// "-:3" are never mistaken for flags. Arguments after "--" are always steps.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"flexible-calculator/internal/calc"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("calc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		opName  string
		a, b    float64
		initial float64
		only    string
	)
	fs.StringVar(&opName, "op", "", "single operation to apply to -a and -b")
	fs.Float64Var(&a, "a", 0, "first operand for -op")
	fs.Float64Var(&b, "b", 0, "second operand for -op")
	fs.Float64Var(&initial, "initial", 0, "starting value for a chain of op:value steps")
	fs.StringVar(&only, "operations", "", "comma-separated operations to enable (default: all)")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: calc -op NAME -a X -b Y | calc -initial X op:value...")
		fs.PrintDefaults()
	}

	flagArgs, stepArgs := splitArgs(args)
	if err := fs.Parse(flagArgs); err != nil {
		return 2
	}
	stepArgs = append(stepArgs, fs.Args()...)

	ops, err := calc.ParseOperations(strings.Split(only, ","))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	registry := calc.DefaultRegistry()
	if len(ops) > 0 {
		registry = calc.NewRegistry(ops...)
	}
	d := calc.NewDispatcher(registry)

	var result float64
	if opName != "" {
		if len(stepArgs) > 0 {
			fmt.Fprintln(stderr, "Error: -op does not take chain steps")
			return 2
		}
		result, err = d.Calculate(calc.ParseOperation(opName), a, b)
	} else {
		steps := make([]calc.Step, 0, len(stepArgs))
		for _, arg := range stepArgs {
			step, perr := calc.ParseStep(arg)
			if perr != nil {
				fmt.Fprintf(stderr, "Error: %v\n", perr)
				return 2
			}
			steps = append(steps, step)
		}
		result, err = d.ChainOperations(initial, steps)
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, strconv.FormatFloat(result, 'g', -1, 64))
	return 0
}

// splitArgs separates op:value steps from flags, keeping step order.
func splitArgs(args []string) (flags, steps []string) {
	for i, arg := range args {
		switch {
		case arg == "--":
			return flags, append(steps, args[i+1:]...)
		case strings.Contains(arg, ":"):
			steps = append(steps, arg)
		default:
			flags = append(flags, arg)
		}
	}
	return flags, steps
}
