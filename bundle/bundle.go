// Package bundle adapts the external bundling tools used to fold a generated
// module tree into a single ES module and a packaged web bundle.
package bundle

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Output file names written next to the entry module.
const (
	BundleFile  = "bundled.mjs"
	ArchiveFile = "bundled.wbn"
)

// ErrToolFailed is returned when an external tool exits unsuccessfully.
var ErrToolFailed = errors.New("modbench: bundling tool failed")

// Output describes the artifacts produced by a Bundler, relative to the
// bundled directory.
type Output struct {
	// Bundle is the single combined module.
	Bundle string
	// Archive is the packaged web bundle.
	Archive string
}

// Bundler folds every module below dir, starting at entry, into a bundle and
// an archive. Failures are fatal to the run.
type Bundler interface {
	Bundle(ctx context.Context, dir, entry string) (*Output, error)
}

// The Func type is an adapter to allow the use of ordinary functions as Bundler.
type Func func(ctx context.Context, dir, entry string) (*Output, error)

// Bundle calls f(ctx, dir, entry).
func (f Func) Bundle(ctx context.Context, dir, entry string) (*Output, error) {
	return f(ctx, dir, entry)
}

// ToolError reports a failed external tool invocation.
type ToolError struct {
	Tool   string
	Args   []string
	Stderr string
	Cause  error
}

// Error implements the error interface.
func (e *ToolError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "modbench: %s failed", e.Tool)
	if len(e.Args) > 0 {
		fmt.Fprintf(&b, " (args: %s)", strings.Join(e.Args, " "))
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		b.WriteString(": ")
		b.WriteString(s)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *ToolError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches ErrToolFailed.
func (e *ToolError) Is(target error) bool {
	return target == ErrToolFailed
}

// IsToolError reports whether the error is a ToolError.
func IsToolError(err error) bool {
	var toolErr *ToolError
	return errors.As(err, &toolErr)
}
