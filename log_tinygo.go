//go:build tinygo

package qliic

// Logf drops diagnostics.  Stdout is the UART the serial console runs on.
func Logf(format string, a ...any) {
}
