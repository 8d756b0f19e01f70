package gen

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/modbench/graph"
)

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Depth", -1, "depth has to be >= 0")

		assert.Contains(t, err.Error(), "modbench: config error")
		assert.Contains(t, err.Error(), "Depth")
		assert.Contains(t, err.Error(), "-1")
		assert.Contains(t, err.Error(), "depth has to be >= 0")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Target", nil, "cannot be empty")

		assert.Contains(t, err.Error(), "Target")
		assert.Contains(t, err.Error(), "cannot be empty")
		assert.NotContains(t, err.Error(), "value:")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := graph.ErrInvalidGrammar
		err := WrapConfigError("Rules", "B:B", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, graph.ErrInvalidGrammar))
		assert.Contains(t, err.Error(), "invalid grammar")
	})

	t.Run("Is matches ErrInvalidConfig", func(t *testing.T) {
		err := NewConfigError("Target", nil, "missing")
		assert.True(t, err.Is(ErrInvalidConfig))
		assert.True(t, errors.Is(err, ErrInvalidConfig))
	})

	t.Run("IsConfigError helper", func(t *testing.T) {
		err := NewConfigError("Target", nil, "missing")
		assert.True(t, IsConfigError(err))
		assert.False(t, IsConfigError(errors.New("other")))
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := NewGenerationError("export", "A/A_A0.mjs", "write artifact", fs.ErrPermission)

		assert.Contains(t, err.Error(), "modbench: generation error")
		assert.Contains(t, err.Error(), "phase export")
		assert.Contains(t, err.Error(), "file: A/A_A0.mjs")
		assert.Contains(t, err.Error(), "write artifact")
		assert.Contains(t, err.Error(), "permission denied")
	})

	t.Run("Error message with phase only", func(t *testing.T) {
		err := &GenerationError{Phase: "pages"}
		assert.Equal(t, "modbench: generation error in phase pages", err.Error())
	})

	t.Run("Unwrap and Is", func(t *testing.T) {
		err := NewGenerationError("export", "", "", fs.ErrExist)
		assert.True(t, errors.Is(err, fs.ErrExist))
		assert.True(t, errors.Is(err, ErrGenerationFailed))
		assert.True(t, IsGenerationError(err))
		assert.False(t, IsGenerationError(NewConfigError("x", nil, "")))
	})
}
