// Command ppcat inspects a binary piecewise-polynomial (.pp) file: it
// prints the breakpoints, per-piece coefficients, and order, or
// evaluates the polynomial at caller-supplied points.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/kd9wcc/gnssiq/pp"
	"github.com/kd9wcc/gnssiq/ppio"
)

func main() {
	var (
		mmap = pflag.Bool("mmap", false, "Read the file via mmap instead of a buffered read.")
		evalAt = pflag.String("eval", "", "Comma-separated x values to evaluate, instead of dumping the table.")
	)
	pflag.Parse()

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: ppcat [--mmap] [--eval x1,x2,...] <file.pp>")
		os.Exit(2)
	}
	path := pflag.Arg(0)

	var (
		poly *pp.Poly
		err  error
	)
	if *mmap {
		poly, err = ppio.ReadMmap(path)
	} else {
		poly, err = ppio.ReadFile(path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ppcat: %v\n", err)
		os.Exit(1)
	}

	if *evalAt != "" {
		if err := runEval(poly, *evalAt); err != nil {
			fmt.Fprintf(os.Stderr, "ppcat: %v\n", err)
			os.Exit(1)
		}
		return
	}

	dump(poly)
}

func dump(poly *pp.Poly) {
	breaks := poly.Breaks()
	coefs := poly.Coefs()

	fmt.Printf("order=%d pieces=%d\n", poly.Order(), len(coefs))
	fmt.Printf("breaks: %v\n", breaks)
	for i, row := range coefs {
		fmt.Printf("piece %3d [%.6g, %.6g]: %v\n", i, breaks[i], breaks[i+1], row)
	}
}

func runEval(poly *pp.Poly, list string) error {
	for _, field := range strings.Split(list, ",") {
		x, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return fmt.Errorf("parsing %q: %w", field, err)
		}
		fmt.Printf("%.10g -> %.10g\n", x, poly.Eval(x))
	}
	return nil
}
