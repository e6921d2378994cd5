// Command rtldemo runs a form of right-to-left decimal input fields in the
// terminal. Digits enter from the right, the way a calculator or point of
// sale display fills up.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
