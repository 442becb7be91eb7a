package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miniql/miniql/value"
)

func TestStringification(t *testing.T) {
	cases := []struct {
		name string
		v    value.Value
		want string
	}{
		{"int", value.NewInt(42), "42"},
		{"negative int", value.NewInt(-7), "-7"},
		{"double", value.NewDouble(3.5), "3.5"},
		{"double no fraction", value.NewDouble(4), "4"},
		{"bool true", value.NewBool(true), "1"},
		{"bool false", value.NewBool(false), "0"},
		{"str", value.NewStr("hello"), "hello"},
		{"bytes", value.NewBytes([]byte{0xde, 0xad}), "0xdead"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.v.String())
		})
	}
}

func TestNumericPromotion(t *testing.T) {
	eq, err := value.Equal(value.NewInt(3), value.NewDouble(3.0))
	require.NoError(t, err)
	assert.True(t, eq)

	cmp, err := value.Compare(value.NewInt(2), value.NewDouble(3.5))
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)
}

func TestAsIntPromotesDoubleByTruncation(t *testing.T) {
	n, err := value.NewDouble(3.9).AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestTypeMismatchErrors(t *testing.T) {
	_, err := value.Equal(value.NewBool(true), value.NewStr("true"))
	assert.Error(t, err)

	_, err = value.NewStr("x").AsInt()
	assert.Error(t, err)
}

func TestKindRoundTrip(t *testing.T) {
	for _, k := range []value.Kind{value.Int, value.Double, value.Bool, value.Str, value.Bytes} {
		parsed, err := value.ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	_, err := value.ParseKind("NOT_A_TYPE")
	assert.Error(t, err)
}
