package dynamic

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLookupPrimitive(t *testing.T) {
	for _, typ := range []Type{
		TypeInt64, TypeUint64, TypeFloat64, TypeString, TypeBool,
		TypeTime, TypeDuration,
	} {
		assert.Same(t, typ, LookupPrimitive(typ.String()))
	}
	assert.Nil(t, LookupPrimitive("record"))
}

func TestAccepts(t *testing.T) {
	assert.True(t, TypeInt64.Accepts(int64(1)))
	assert.False(t, TypeInt64.Accepts(1))
	assert.False(t, TypeInt64.Accepts(uint64(1)))
	assert.True(t, TypeTime.Accepts(time.Unix(0, 0)))
	assert.False(t, TypeTime.Accepts("2021-01-01"))
	assert.True(t, TypeDuration.Accepts(5*time.Second))
}

func TestTypeOf(t *testing.T) {
	assert.Same(t, TypeString, TypeOf("s"))
	assert.Same(t, TypeDuration, TypeOf(time.Minute))
	assert.Nil(t, TypeOf(struct{}{}))
}
