package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/trendkit/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{Resource: "column", ID: "Month"}
		assert.Equal(t, "column Month not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("sheet", "Economic")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("chunk_size", 0, "must be positive")
		assert.Equal(t, "validation failed for field chunk_size: must be positive", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "invalid layout"}
		assert.Equal(t, "validation failed: invalid layout", err.Error())
	})

	t.Run("wrap helper", func(t *testing.T) {
		assert.Nil(t, pkgerrors.WrapValidation("x", nil))
		err := pkgerrors.WrapValidation("batch_size", errors.New("too small"))
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestMergeOutcomeErrors(t *testing.T) {
	t.Run("empty result", func(t *testing.T) {
		err := pkgerrors.NewEmptyResultError("raw", 2)
		assert.Equal(t, "raw merge of 2 input(s) produced no rows", err.Error())
		assert.True(t, pkgerrors.IsEmptyResult(err))
		assert.False(t, pkgerrors.IsNoCommonAnchor(err))
	})

	t.Run("no common anchor", func(t *testing.T) {
		err := pkgerrors.NewNoCommonAnchorError([]string{"a.csv", "b.csv"})
		assert.Contains(t, err.Error(), "a.csv, b.csv")
		assert.True(t, pkgerrors.IsNoCommonAnchor(err))

		none := pkgerrors.NewNoCommonAnchorError(nil)
		assert.Equal(t, "no common anchor: no inputs", none.Error())
	})

	t.Run("anchor missing survives wrapping", func(t *testing.T) {
		err := fmt.Errorf("topic Economic: %w", pkgerrors.NewAnchorMissingError("email", "multiTimeline (2).csv"))
		assert.True(t, pkgerrors.IsAnchorMissing(err))

		var target *pkgerrors.AnchorMissingError
		require.True(t, errors.As(err, &target))
		assert.Equal(t, "email", target.Anchor)
	})
}

func TestParseError(t *testing.T) {
	t.Run("with line", func(t *testing.T) {
		err := &pkgerrors.ParseError{Format: "csv", File: "a.csv", Line: 3, Message: "bad quote"}
		assert.Equal(t, "parse error in csv at a.csv:3: bad quote", err.Error())
	})

	t.Run("file only", func(t *testing.T) {
		err := pkgerrors.NewParseError("yaml", "layout.yaml", "mapping expected", nil)
		assert.Equal(t, "parse error in yaml file layout.yaml: mapping expected", err.Error())
	})

	t.Run("wrap helper", func(t *testing.T) {
		base := errors.New("boom")
		err := pkgerrors.WrapParse("xlsx", "topics.xlsx", base)
		assert.ErrorIs(t, err, base)
		assert.Nil(t, pkgerrors.WrapParse("xlsx", "topics.xlsx", nil))
	})
}

func TestIOError(t *testing.T) {
	t.Run("unwrap", func(t *testing.T) {
		baseErr := errors.New("disk full")
		err := pkgerrors.NewIOError("write", "/data/out.csv", baseErr)
		assert.Equal(t, baseErr, err.Unwrap())
		assert.Contains(t, err.Error(), "/data/out.csv")
	})

	t.Run("wrap helper", func(t *testing.T) {
		err := pkgerrors.WrapIO("rename", "/data/out.csv", errors.New("exists"))
		ioErr, ok := err.(*pkgerrors.IOError)
		require.True(t, ok)
		assert.Equal(t, "rename", ioErr.Operation)
	})
}

func TestConfigError(t *testing.T) {
	base := errors.New("missing")
	err := pkgerrors.NewConfigError("queries", "workbook path required", base)
	assert.Equal(t, "configuration error in queries: workbook path required", err.Error())
	assert.ErrorIs(t, err, base)
}
