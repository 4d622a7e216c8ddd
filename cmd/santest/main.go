// Package main provides the santest CLI, which runs a Rust project's test
// suite under ThreadSanitizer or AddressSanitizer.
package main

import (
	"errors"
	"fmt"
	"os"

	apperrors "github.com/reglet-dev/santest/internal/application/errors"
)

func main() {
	err := Execute()
	if err != nil {
		var exitErr *apperrors.ExitStatusError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
	os.Exit(apperrors.ExitCode(err))
}
