package dynamic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFrameValidates(t *testing.T) {
	f, err := NewFrame("count", TypeInt64, int64(1))
	require.NoError(t, err)
	assert.Equal(t, "count", f.Name())
	assert.Same(t, TypeInt64, f.Type())
	assert.Equal(t, int64(1), f.Read())

	_, err = NewFrame("count", TypeInt64, 1.5)
	var mismatch *TypeMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "count", mismatch.Name)
	assert.Equal(t, 1.5, mismatch.Value)
}

func TestFrameWrite(t *testing.T) {
	f, err := NewFrame("count", TypeInt64, int64(1))
	require.NoError(t, err)
	v, err := f.Write(int64(2))
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
	assert.Equal(t, int64(2), f.Read())

	_, err = f.Write("two")
	var mismatch *TypeMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, int64(2), f.Read())
}

func TestUntypedFrameAcceptsAnything(t *testing.T) {
	f, err := NewFrame("anything", nil, "start")
	require.NoError(t, err)
	for _, v := range []interface{}{int64(1), 2.5, true, nil} {
		got, err := f.Write(v)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}
