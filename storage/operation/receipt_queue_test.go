package operation

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerd/recordcache/model/ledger"
	"github.com/ledgerd/recordcache/module/irrecoverable"
	"github.com/ledgerd/recordcache/storage"
	"github.com/ledgerd/recordcache/utils/unittest"
)

// mapReaderWriter is a minimal storage.ReaderWriter over a Go map.
type mapReaderWriter map[string][]byte

func (m mapReaderWriter) Get(key []byte) ([]byte, io.Closer, error) {
	val, ok := m[string(key)]
	if !ok {
		return nil, nil, storage.ErrNotFound
	}
	return val, storage.NoopCloser{}, nil
}

func (m mapReaderWriter) Set(key, value []byte) error {
	m[string(key)] = value
	return nil
}

func (m mapReaderWriter) Delete(key []byte) error {
	delete(m, string(key))
	return nil
}

func TestRoundReceiptsQueue(t *testing.T) {
	rw := mapReaderWriter{}

	head, tail, err := RetrieveReceiptQueueBounds(rw)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), head)
	assert.Equal(t, uint64(0), tail)

	var round ledger.RoundReceipts
	assert.ErrorIs(t, PeekRoundReceipts(rw, &round), storage.ErrNotFound)
	assert.ErrorIs(t, PollRoundReceipts(rw, &round), storage.ErrNotFound)

	first := unittest.RoundReceiptsFixture(2, 1000)
	second := unittest.RoundReceiptsFixture(3, 1001)
	require.NoError(t, InsertRoundReceipts(rw, first))
	require.NoError(t, InsertRoundReceipts(rw, second))

	count, err := CountRoundReceipts(rw)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	require.NoError(t, PollRoundReceipts(rw, &round))
	assert.Equal(t, *first, round)
	_, ok := rw[string(roundReceiptsKey(0))]
	assert.False(t, ok, "polled round should be removed")

	head, tail, err = RetrieveReceiptQueueBounds(rw)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), head)
	assert.Equal(t, uint64(2), tail)

	var rounds []*ledger.RoundReceipts
	err = IterateRoundReceipts(rw, func(r *ledger.RoundReceipts) (bool, error) {
		rounds = append(rounds, r)
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []*ledger.RoundReceipts{second}, rounds)

	t.Run("stale round at tail is an exception", func(t *testing.T) {
		rw := mapReaderWriter{}
		require.NoError(t, UpsertByKey(rw, roundReceiptsKey(0), first))

		err := InsertRoundReceipts(rw, second)
		require.ErrorIs(t, err, storage.ErrAlreadyExists)
		assert.True(t, irrecoverable.IsException(err))
	})

	t.Run("missing round inside bounds is an exception", func(t *testing.T) {
		delete(rw, string(roundReceiptsKey(1)))
		err := PeekRoundReceipts(rw, &round)
		require.Error(t, err)
		assert.True(t, irrecoverable.IsException(err))
		assert.NotErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("corrupted bounds", func(t *testing.T) {
		require.NoError(t, upsertCounter(rw, receiptQueueHeadKey, 5))
		_, _, err := RetrieveReceiptQueueBounds(rw)
		assert.Error(t, err)
	})
}

func TestRoundReceiptsKeysOrder(t *testing.T) {
	// keys of later rounds sort after earlier ones, also across byte boundaries
	assert.Less(t, string(roundReceiptsKey(255)), string(roundReceiptsKey(256)))
	assert.Less(t, string(roundReceiptsKey(1)), string(roundReceiptsKey(1<<40)))
	assert.Equal(t, byte(codeRoundReceipts), roundReceiptsKey(7)[0])
}

func TestCodec(t *testing.T) {
	round := unittest.RoundReceiptsFixture(4, 1000)

	t.Run("compressed", func(t *testing.T) {
		val, err := encodeEntity(round)
		require.NoError(t, err)

		var decoded ledger.RoundReceipts
		require.NoError(t, decodeValue(val, &decoded))
		assert.Equal(t, *round, decoded)
	})

	t.Run("uncompressed value is rejected", func(t *testing.T) {
		err := decodeValue([]byte{0xff, 0xff, 0xff}, &ledger.RoundReceipts{})
		require.Error(t, err)
		assert.True(t, isErrUncompressedValue(err))
		assert.True(t, irrecoverable.IsException(err))
	})

	t.Run("counter", func(t *testing.T) {
		val, err := decodeCounter(encodeCounter(42))
		require.NoError(t, err)
		assert.Equal(t, uint64(42), val)

		_, err = decodeCounter([]byte{1})
		assert.Error(t, err)
	})
}

func TestCompressDisabled(t *testing.T) {
	defer func() { compressEnabled = true }()
	setCompressDisabled()

	rw := mapReaderWriter{}
	round := unittest.RoundReceiptsFixture(1, 1000)
	require.NoError(t, InsertRoundReceipts(rw, round))

	var peeked ledger.RoundReceipts
	require.NoError(t, PeekRoundReceipts(rw, &peeked))
	assert.Equal(t, *round, peeked)
}
