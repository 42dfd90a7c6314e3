// Command greet is the native twin of testdata/mixed_project/helper.cpp:
// it emits the exact output a compiled run of that file produces, and
// the tests use it as the golden reference for that output. It takes no
// flags, ignores any arguments, and always exits 0.
package main

import (
	"fmt"
	"io"
	"os"
)

func run(w io.Writer) {
	fmt.Fprintln(w, "Hello from C++!")
	numbers := []int{1, 2, 3, 4, 5}
	for _, n := range numbers {
		fmt.Fprintf(w, "Number: %d\n", n)
	}
}

func main() {
	run(os.Stdout)
}
