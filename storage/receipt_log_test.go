package storage_test

import (
	"errors"
	"testing"
	"time"

	pebbledb "github.com/cockroachdb/pebble"
	badgerdb "github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerd/recordcache/model/ledger"
	"github.com/ledgerd/recordcache/module/metrics"
	"github.com/ledgerd/recordcache/storage"
	"github.com/ledgerd/recordcache/storage/badger"
	"github.com/ledgerd/recordcache/storage/inmemory"
	"github.com/ledgerd/recordcache/storage/pebble"
	"github.com/ledgerd/recordcache/utils/unittest"
)

// runWithReceiptLogs runs f against an empty receipt log of every backend.
func runWithReceiptLogs(t *testing.T, f func(t *testing.T, log storage.ReceiptLog)) {
	t.Run("badger", func(t *testing.T) {
		unittest.RunWithBadgerDB(t, func(db *badgerdb.DB) {
			log, err := badger.NewReceiptLog(unittest.Logger(), metrics.NewNoopCollector(), db)
			require.NoError(t, err)
			f(t, log)
		})
	})
	t.Run("pebble", func(t *testing.T) {
		unittest.RunWithPebbleDB(t, func(db *pebbledb.DB) {
			log, err := pebble.NewReceiptLog(unittest.Logger(), metrics.NewNoopCollector(), db)
			require.NoError(t, err)
			f(t, log)
		})
	})
	t.Run("inmemory", func(t *testing.T) {
		f(t, inmemory.NewReceiptLog(metrics.NewNoopCollector()))
	})
}

func committedRounds(t *testing.T, log storage.ReceiptLog) []*ledger.RoundReceipts {
	var rounds []*ledger.RoundReceipts
	err := log.Iterate(func(round *ledger.RoundReceipts) (bool, error) {
		rounds = append(rounds, round)
		return true, nil
	})
	require.NoError(t, err)
	return rounds
}

func TestReceiptLog_EmptyQueue(t *testing.T) {
	runWithReceiptLogs(t, func(t *testing.T, log storage.ReceiptLog) {
		tx, err := log.Begin()
		require.NoError(t, err)
		defer tx.Discard()

		_, err = tx.Peek()
		assert.ErrorIs(t, err, storage.ErrNotFound)
		_, err = tx.Poll()
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.Empty(t, committedRounds(t, log))
	})
}

func TestReceiptLog_FIFO(t *testing.T) {
	runWithReceiptLogs(t, func(t *testing.T, log storage.ReceiptLog) {
		first := unittest.RoundReceiptsFixture(3, 1000)
		second := unittest.RoundReceiptsFixture(1, 1010)
		third := unittest.RoundReceiptsFixture(2, 1020)

		tx, err := log.Begin()
		require.NoError(t, err)
		require.NoError(t, tx.Add(first))
		require.NoError(t, tx.Add(second))
		require.NoError(t, tx.Add(third))

		// reads observe the transaction's own writes
		head, err := tx.Peek()
		require.NoError(t, err)
		assert.Equal(t, first, head)
		require.NoError(t, tx.Commit())

		assert.Equal(t, []*ledger.RoundReceipts{first, second, third}, committedRounds(t, log))

		tx, err = log.Begin()
		require.NoError(t, err)
		polled, err := tx.Poll()
		require.NoError(t, err)
		assert.Equal(t, first, polled)
		head, err = tx.Peek()
		require.NoError(t, err)
		assert.Equal(t, second, head)
		require.NoError(t, tx.Commit())

		assert.Equal(t, []*ledger.RoundReceipts{second, third}, committedRounds(t, log))
	})
}

func TestReceiptLog_Discard(t *testing.T) {
	runWithReceiptLogs(t, func(t *testing.T, log storage.ReceiptLog) {
		round := unittest.RoundReceiptsFixture(2, 1000)

		tx, err := log.Begin()
		require.NoError(t, err)
		require.NoError(t, tx.Add(round))
		tx.Discard()

		assert.Empty(t, committedRounds(t, log))

		t.Run("ended transaction is closed", func(t *testing.T) {
			assert.ErrorIs(t, tx.Add(round), storage.ErrClosed)
			_, err := tx.Peek()
			assert.ErrorIs(t, err, storage.ErrClosed)
			assert.ErrorIs(t, tx.Commit(), storage.ErrClosed)
			// discarding twice is a no-op
			tx.Discard()
		})

		t.Run("next transaction can begin", func(t *testing.T) {
			unittest.RequireReturnsBefore(t, func() {
				next, err := log.Begin()
				require.NoError(t, err)
				next.Discard()
			}, time.Second, "transaction lock was not released")
		})
	})
}

func TestReceiptLog_IterateStopsEarly(t *testing.T) {
	runWithReceiptLogs(t, func(t *testing.T, log storage.ReceiptLog) {
		tx, err := log.Begin()
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			require.NoError(t, tx.Add(unittest.RoundReceiptsFixture(1, int64(1000+i))))
		}
		require.NoError(t, tx.Commit())

		visited := 0
		err = log.Iterate(func(*ledger.RoundReceipts) (bool, error) {
			visited++
			return visited < 2, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 2, visited)

		errStop := errors.New("stop")
		err = log.Iterate(func(*ledger.RoundReceipts) (bool, error) {
			return true, errStop
		})
		assert.ErrorIs(t, err, errStop)
	})
}

func TestReceiptLog_Reopen(t *testing.T) {
	rounds := []*ledger.RoundReceipts{
		unittest.RoundReceiptsFixture(2, 1000),
		unittest.RoundReceiptsFixture(3, 1001),
	}

	t.Run("badger", func(t *testing.T) {
		unittest.RunWithTempDir(t, func(dir string) {
			log, closer, err := badger.Open(unittest.Logger(), metrics.NewNoopCollector(), dir)
			require.NoError(t, err)
			addRounds(t, log, rounds)
			require.NoError(t, closer())

			log, closer, err = badger.Open(unittest.Logger(), metrics.NewNoopCollector(), dir)
			require.NoError(t, err)
			defer closer()
			assert.Equal(t, rounds, committedRounds(t, log))
		})
	})

	t.Run("pebble", func(t *testing.T) {
		unittest.RunWithTempDir(t, func(dir string) {
			log, closer, err := pebble.Open(unittest.Logger(), metrics.NewNoopCollector(), dir)
			require.NoError(t, err)
			addRounds(t, log, rounds)
			require.NoError(t, closer())

			log, closer, err = pebble.Open(unittest.Logger(), metrics.NewNoopCollector(), dir)
			require.NoError(t, err)
			defer closer()
			assert.Equal(t, rounds, committedRounds(t, log))
		})
	})
}

func addRounds(t *testing.T, log storage.ReceiptLog, rounds []*ledger.RoundReceipts) {
	tx, err := log.Begin()
	require.NoError(t, err)
	for _, round := range rounds {
		require.NoError(t, tx.Add(round))
	}
	require.NoError(t, tx.Commit())
}
