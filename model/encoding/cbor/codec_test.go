package cbor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerd/recordcache/model/encoding/cbor"
)

func TestEncoder_Canonical(t *testing.T) {
	encoder := cbor.NewEncoder()

	t.Run("map keys are sorted", func(t *testing.T) {
		first := map[string]uint64{"b": 2, "a": 1, "c": 3}
		second := map[string]uint64{"c": 3, "a": 1, "b": 2}

		a, err := encoder.Encode(first)
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			b, err := encoder.Encode(second)
			require.NoError(t, err)
			assert.Equal(t, a, b)
		}
	})

	t.Run("shortest integer encoding", func(t *testing.T) {
		b, err := encoder.Encode(uint64(10))
		require.NoError(t, err)
		assert.Equal(t, []byte{0x0a}, b)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := encoder.Encode(make(chan int))
		assert.Error(t, err)
	})
}
