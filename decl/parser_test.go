package decl

import (
	"testing"
	"time"

	dynamic "github.com/dylan-lang/dynamic-binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBindings(t *testing.T) {
	bindings, err := ParseBindings(`count: int64 = 3, greeting = "hello, world", ratio = 0.5`)
	require.NoError(t, err)
	require.Len(t, bindings, 3)

	assert.Equal(t, "count", bindings[0].Name)
	assert.Same(t, dynamic.TypeInt64, bindings[0].Type)
	assert.Equal(t, int64(3), bindings[0].Value)

	assert.Equal(t, "greeting", bindings[1].Name)
	assert.Nil(t, bindings[1].Type)
	assert.Equal(t, "hello, world", bindings[1].Value)

	assert.Equal(t, "ratio", bindings[2].Name)
	assert.Equal(t, 0.5, bindings[2].Value)
}

func TestParseStarredNames(t *testing.T) {
	bindings, err := ParseBindings(`*indent* = 0, current-output = "stdout"`)
	require.NoError(t, err)
	require.Len(t, bindings, 2)
	assert.Equal(t, "*indent*", bindings[0].Name)
	assert.Equal(t, "current-output", bindings[1].Name)
}

func TestParseTimeAndDuration(t *testing.T) {
	bindings, err := ParseBindings(`deadline: time = "2021-04-29T12:00:00Z", patience: duration = 90s`)
	require.NoError(t, err)
	require.Len(t, bindings, 2)
	ts, ok := bindings[0].Value.(time.Time)
	require.True(t, ok)
	assert.Equal(t, 2021, ts.Year())
	assert.Equal(t, 90*time.Second, bindings[1].Value)
}

func TestParseBareTime(t *testing.T) {
	v, err := ParseLiteral("2021-04-29")
	require.NoError(t, err)
	_, ok := v.(time.Time)
	assert.True(t, ok)
}

func TestParseCoercion(t *testing.T) {
	bindings, err := ParseBindings(`ratio: float64 = 1`)
	require.NoError(t, err)
	assert.Equal(t, 1.0, bindings[0].Value)

	_, err = ParseBindings(`count: int64 = "one"`)
	assert.Error(t, err)
}

func TestParseLiteral(t *testing.T) {
	for _, c := range []struct {
		src  string
		want interface{}
	}{
		{`"quoted \"string\""`, `quoted "string"`},
		{"42", int64(42)},
		{"-1", int64(-1)},
		{"18446744073709551615", uint64(18446744073709551615)},
		{"2.5", 2.5},
		{"true", true},
		{"false", false},
		{"null", nil},
		{"250ms", 250 * time.Millisecond},
	} {
		v, err := ParseLiteral(c.src)
		require.NoError(t, err, "src: %s", c.src)
		assert.Equal(t, c.want, v, "src: %s", c.src)
	}
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{
		"",
		"x",
		"x =",
		"x: record = 1",
		`x = "unterminated`,
		"x = 1 y = 2",
		"x = 1,",
		"= 1",
		"x = @@",
	} {
		_, err := ParseBindings(src)
		assert.Error(t, err, "src: %s", src)
	}
}
