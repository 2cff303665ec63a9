package outcome_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yonasBSD/Rocket/core/outcome"
)

type result = outcome.Outcome[string, int, []byte]

func TestOutcome_Variants(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		o := outcome.Success[string, int, []byte]("ok")
		assert.True(t, o.IsSuccess())
		assert.False(t, o.IsError())
		assert.False(t, o.IsForward())
		assert.Equal(t, outcome.KindSuccess, o.Kind())

		v, ok := o.SuccessValue()
		assert.True(t, ok)
		assert.Equal(t, "ok", v)

		_, ok = o.ErrorValue()
		assert.False(t, ok)
		_, ok = o.ForwardValue()
		assert.False(t, ok)
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()
		o := outcome.Error[string, int, []byte](404)
		assert.True(t, o.IsError())
		assert.Equal(t, outcome.KindError, o.Kind())

		v, ok := o.ErrorValue()
		assert.True(t, ok)
		assert.Equal(t, 404, v)
	})

	t.Run("forward keeps remaining input", func(t *testing.T) {
		t.Parallel()
		o := outcome.Forward[string, int]([]byte("rest"))
		assert.True(t, o.IsForward())

		v, ok := o.ForwardValue()
		assert.True(t, ok)
		assert.Equal(t, []byte("rest"), v)
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		t.Parallel()
		var o result
		assert.False(t, o.IsSuccess() || o.IsError() || o.IsForward())
		assert.Equal(t, "Outcome(invalid)", o.String())
		assert.Equal(t, "unknown", o.Kind().String())
	})
}

func TestOutcome_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Success(ok)", outcome.Success[string, int, []byte]("ok").String())
	assert.Equal(t, "Error(500)", outcome.Error[string, int, []byte](500).String())
	assert.Equal(t, "forward", outcome.KindForward.String())
}
