package config

import (
	"fmt"
	"io"
	"os"
)

// Swapped in tests.
var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// Exitf prints the formatted message and terminates with status 1. Use it for
// failures before the server is listening, where there is no logger to fall
// back on.
func Exitf(format string, args ...any) {
	fmt.Fprintf(stderr, format+"\n", args...)
	exit(1)
}
