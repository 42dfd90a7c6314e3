package main

import (
	"fmt"
	"io"
	"strings"
)

// writeReport prints the compilation summary and returns the number of
// files that failed.
func writeReport(w io.Writer, results []Result, verbose bool) int {
	fmt.Fprintln(w, "\nCompilation results")
	fmt.Fprintln(w, strings.Repeat("=", 50))

	var total, compiled, failed int
	for _, res := range results {
		total += len(res.Compiled) + len(res.Failed)
		compiled += len(res.Compiled)
		failed += len(res.Failed)

		if len(res.Failed) == 0 {
			fmt.Fprintf(w, "ok   %s: %d %s compiled\n",
				res.Language.Name(), len(res.Compiled), plural(len(res.Compiled)))
			if verbose && res.Output != "" {
				writeIndented(w, res.Output)
			}
			continue
		}
		fmt.Fprintf(w, "FAIL %s: %d %s failed, %d compiled\n",
			res.Language.Name(), len(res.Failed), plural(len(res.Failed)), len(res.Compiled))
		if verbose {
			writeIndented(w, res.Errs)
		}
	}

	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintf(w, "Total: %d %s, %d compiled, %d failed\n", total, plural(total), compiled, failed)
	if failed == 0 {
		fmt.Fprintln(w, "All files compiled successfully.")
	} else {
		fmt.Fprintf(w, "%d %s failed to compile. See output above.\n", failed, plural(failed))
	}
	return failed
}

func writeIndented(w io.Writer, text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		fmt.Fprintf(w, "     %s\n", line)
	}
}

func plural(n int) string {
	if n == 1 {
		return "file"
	}
	return "files"
}
