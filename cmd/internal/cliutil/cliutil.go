// Package cliutil provides shared helpers for the snmp command-line tool.
package cliutil

import (
	"fmt"
	"os"
)

// PrintError writes a formatted error message to stderr, prefixed with the
// program name.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "snmp: "+format+"\n", args...)
}

// Errorf prints the message and returns exit status 1, so command
// implementations can write "return cliutil.Errorf(...)".
func Errorf(format string, args ...any) int {
	PrintError(format, args...)
	return 1
}
