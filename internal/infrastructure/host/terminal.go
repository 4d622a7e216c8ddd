package host

import "os"

// IsTerminal reports whether f is a character device rather than a pipe
// or regular file.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// IsInteractive reports whether santest can prompt on stdin.
func IsInteractive() bool {
	return IsTerminal(os.Stdin)
}
