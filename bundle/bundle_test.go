package bundle

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunc(t *testing.T) {
	var gotDir, gotEntry string
	b := Func(func(_ context.Context, dir, entry string) (*Output, error) {
		gotDir, gotEntry = dir, entry
		return &Output{Bundle: BundleFile, Archive: ArchiveFile}, nil
	})

	out, err := b.Bundle(context.Background(), "out", "A.mjs")
	require.NoError(t, err)
	assert.Equal(t, "out", gotDir)
	assert.Equal(t, "A.mjs", gotEntry)
	assert.Equal(t, "bundled.mjs", out.Bundle)
	assert.Equal(t, "bundled.wbn", out.Archive)
}

func TestToolError(t *testing.T) {
	t.Run("message", func(t *testing.T) {
		err := &ToolError{
			Tool:   "gen-bundle",
			Args:   []string{"--dir=out"},
			Stderr: "no such directory\n",
			Cause:  errors.New("exit status 1"),
		}
		assert.Equal(t, "modbench: gen-bundle failed (args: --dir=out): exit status 1: no such directory", err.Error())
	})

	t.Run("Is and Unwrap", func(t *testing.T) {
		cause := errors.New("exit status 2")
		var err error = &ToolError{Tool: "npx", Cause: cause}
		assert.True(t, errors.Is(err, ErrToolFailed))
		assert.True(t, errors.Is(err, cause))
		assert.True(t, IsToolError(err))
		assert.False(t, IsToolError(cause))
	})
}

func TestNewExternal(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv(EnvGenBundle, "")
		t.Setenv(EnvNPX, "")
		e := NewExternal()
		assert.Equal(t, "gen-bundle", e.GenBundle)
		assert.Equal(t, "npx", e.NPX)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv(EnvGenBundle, "/opt/bin/gen-bundle")
		t.Setenv(EnvNPX, "/opt/bin/npx")
		e := NewExternal()
		assert.Equal(t, "/opt/bin/gen-bundle", e.GenBundle)
		assert.Equal(t, "/opt/bin/npx", e.NPX)
	})
}

func TestExternalBundle(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses shell scripts")
	}

	script := func(t *testing.T, body string) string {
		t.Helper()
		p := filepath.Join(t.TempDir(), "tool")
		require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
		return p
	}

	t.Run("runs both tools", func(t *testing.T) {
		dir := t.TempDir()
		log := filepath.Join(t.TempDir(), "calls")
		e := &External{
			GenBundle: script(t, `echo "gen-bundle $@" >> `+log),
			NPX:       script(t, `echo "npx $@" >> `+log),
		}

		out, err := e.Bundle(context.Background(), dir, "A.mjs")
		require.NoError(t, err)
		assert.Equal(t, &Output{Bundle: BundleFile, Archive: ArchiveFile}, out)

		calls, err := os.ReadFile(log)
		require.NoError(t, err)
		assert.Equal(t,
			"gen-bundle --dir="+dir+" --o="+filepath.Join(dir, ArchiveFile)+"\n"+
				"npx rollup "+filepath.Join(dir, "A.mjs")+" --format=esm --file="+filepath.Join(dir, BundleFile)+" --name=A\n",
			string(calls))
	})

	t.Run("failure stops the run", func(t *testing.T) {
		log := filepath.Join(t.TempDir(), "calls")
		e := &External{
			GenBundle: script(t, `echo "broken archive" >&2; exit 3`),
			NPX:       script(t, `echo npx >> `+log),
		}

		_, err := e.Bundle(context.Background(), t.TempDir(), "A.mjs")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrToolFailed)
		assert.Contains(t, err.Error(), "broken archive")
		assert.NoFileExists(t, log)
	})
}
