package bundle

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// Environment variables overriding the tool binaries.
const (
	EnvGenBundle = "MODBENCH_GEN_BUNDLE"
	EnvNPX       = "MODBENCH_NPX"
)

// External runs gen-bundle and rollup (through npx) as subprocesses.
type External struct {
	// GenBundle is the gen-bundle binary.
	GenBundle string
	// NPX is the npx binary used to run rollup.
	NPX string
	// Stdout receives the tools' standard output. Nil discards it.
	Stdout io.Writer
}

// NewExternal returns an External using the binaries named by the
// environment, falling back to "gen-bundle" and "npx" on PATH.
func NewExternal() *External {
	e := &External{GenBundle: "gen-bundle", NPX: "npx"}
	if v := os.Getenv(EnvGenBundle); v != "" {
		e.GenBundle = v
	}
	if v := os.Getenv(EnvNPX); v != "" {
		e.NPX = v
	}
	return e
}

// Bundle packages dir into ArchiveFile, then bundles entry into BundleFile.
// The archive is built first so it only contains the unbundled modules.
func (e *External) Bundle(ctx context.Context, dir, entry string) (*Output, error) {
	archive := filepath.Join(dir, ArchiveFile)
	// gen-bundle prints every file name to stderr; only keep it for errors.
	if err := e.run(ctx, false, e.GenBundle, "--dir="+dir, "--o="+archive); err != nil {
		return nil, err
	}
	bundle := filepath.Join(dir, BundleFile)
	if err := e.run(ctx, true, e.NPX, "rollup", filepath.Join(dir, entry),
		"--format=esm", "--file="+bundle, "--name=A"); err != nil {
		return nil, err
	}
	return &Output{Bundle: BundleFile, Archive: ArchiveFile}, nil
}

func (e *External) run(ctx context.Context, passStderr bool, name string, args ...string) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = e.Stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if passStderr && stderr.Len() > 0 && e.Stdout != nil {
		_, _ = e.Stdout.Write(stderr.Bytes())
	}
	if err != nil {
		return &ToolError{
			Tool:   filepath.Base(name),
			Args:   args,
			Stderr: stderr.String(),
			Cause:  err,
		}
	}
	return nil
}
