package main

import (
	"errors"

	"github.com/syssam/modbench/bundle"
	"github.com/syssam/modbench/compiler/gen"
)

// Exit codes reported by modbench.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, I/O failure)
	ExitConfigError = 2 // Invalid configuration, nothing was written
	ExitToolError   = 3 // gen-bundle or rollup failed
)

// exitCode maps err to the process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, gen.ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, bundle.ErrToolFailed):
		return ExitToolError
	default:
		return ExitError
	}
}
