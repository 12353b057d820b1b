//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"courtbook/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark(t *testing.T) {
	sentinel := errs.New("sentinel")

	t.Run("marker is visible to errors.Is", func(t *testing.T) {
		cause := errs.New("underlying failure")
		err := errs.Mark(cause, sentinel)

		assert.True(t, errors.Is(err, sentinel))
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("marker survives further wrapping", func(t *testing.T) {
		err := errs.Wrap(errs.Mark(errs.New("boom"), sentinel), "while persisting")
		assert.True(t, errors.Is(err, sentinel))
	})

	t.Run("stacked marks all stay visible", func(t *testing.T) {
		outer := errs.New("outer sentinel")
		err := errs.Mark(errs.Mark(errs.New("boom"), sentinel), outer)

		assert.True(t, errors.Is(err, sentinel))
		assert.True(t, errors.Is(err, outer))
	})

	t.Run("message stays the cause's", func(t *testing.T) {
		err := errs.Mark(errs.New("boom"), sentinel)
		assert.Equal(t, "boom", err.Error())
	})

	t.Run("nil cause collapses to the marker", func(t *testing.T) {
		assert.Equal(t, sentinel, errs.Mark(nil, sentinel))
	})
}

func TestExtractStackLines(t *testing.T) {
	t.Run("marked errors keep the cause's verbose form", func(t *testing.T) {
		lines := errs.ExtractStackLines(errs.Mark(errs.New("boom"), errs.New("sentinel")), 4)
		require.NotEmpty(t, lines)
		assert.Equal(t, "boom", lines[0])
	})

	t.Run("nil yields nothing", func(t *testing.T) {
		assert.Nil(t, errs.ExtractStackLines(nil, 4))
	})
}
