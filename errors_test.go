package argcore

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	err := &Error{Op: "Reasoner.Run", Kind: KindConfiguration, Err: ErrUnknownTask}
	assert.Equal(t, "argcore: Reasoner.Run (configuration): unknown task", err.Error())

	bare := &Error{Op: "Config.Load", Kind: KindConfiguration}
	assert.Equal(t, "argcore: Config.Load: configuration", bare.Error())

	withCtx := err.WithContext(map[string]any{"task": "summarize"})
	assert.Contains(t, withCtx.Error(), "task:summarize")
}

func TestErrorUnwrapAndIs(t *testing.T) {
	err := NewConfigurationError("Reasoner.New", ErrInvalidOption)

	assert.ErrorIs(t, err, ErrInvalidOption)
	assert.Equal(t, ErrInvalidOption, errors.Unwrap(err))

	// kind-based matching
	assert.ErrorIs(t, err, &Error{Kind: KindConfiguration})
	assert.NotErrorIs(t, err, &Error{Kind: KindStructural})

	// op narrows the match
	assert.ErrorIs(t, err, &Error{Kind: KindConfiguration, Op: "Reasoner.New"})
	assert.NotErrorIs(t, err, &Error{Kind: KindConfiguration, Op: "Config.Load"})
}

func TestErrorWithContextDoesNotMutate(t *testing.T) {
	base := NewNotFoundError("Reasoner.SkepticalAcceptance", ErrModelRequired)
	derived := base.WithContext(map[string]any{"argument": "a"})

	assert.Nil(t, base.Context)
	assert.Equal(t, "a", derived.Context["argument"])
}

func TestErrorConstructorKinds(t *testing.T) {
	tests := []struct {
		err  *Error
		kind string
	}{
		{NewStructuralError("op", nil), KindStructural},
		{NewConfigurationError("op", nil), KindConfiguration},
		{NewNotFoundError("op", nil), KindNotFound},
		{NewInternalError("op", nil), KindInternal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, tt.err.Kind)
		assert.Equal(t, "op", tt.err.Op)
	}
}
