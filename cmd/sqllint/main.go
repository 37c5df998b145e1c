package main

import (
	"flag"
	"fmt"
	"os"

	"bytepantry/internal/tools/sqllint"
)

func main() {
	flag.Parse()

	violations, err := sqllint.Lint(flag.Args()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sqllint: %v\n", err)
		os.Exit(1)
	}
	if len(violations) > 0 {
		fmt.Fprintln(os.Stderr, "sqllint: SQL audit marker violations")
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "  %s:%d %s (%s)\n", v.File, v.Line, v.Message, v.Name)
		}
		os.Exit(1)
	}
}
