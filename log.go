//go:build !tinygo

package qliic

import (
	"fmt"
	"io"
	"os"
)

// logOutput is stderr so a serial console on stdio carries only device output
var logOutput io.Writer = os.Stderr

// Logf prints a diagnostic line
func Logf(format string, a ...any) {
	fmt.Fprintf(logOutput, format+"\r\n", a...)
}
