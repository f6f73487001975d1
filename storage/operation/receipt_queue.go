package operation

import (
	"errors"
	"fmt"

	"github.com/ledgerd/recordcache/model/ledger"
	"github.com/ledgerd/recordcache/module/irrecoverable"
	"github.com/ledgerd/recordcache/storage"
)

// The receipt queue stores each round under codeRoundReceipts ++ index. The head key
// holds the index of the oldest round and the tail key the index the next round is
// appended at, so the queue is empty when both are equal. Missing bounds read as zero.

var (
	receiptQueueHeadKey = MakePrefix(codeReceiptQueueHead)
	receiptQueueTailKey = MakePrefix(codeReceiptQueueTail)
)

func roundReceiptsKey(index uint64) []byte {
	return MakePrefix(codeRoundReceipts, index)
}

// RetrieveReceiptQueueBounds returns the index of the oldest queued round and the index
// the next round will be appended at.
// No errors expected during normal operations.
func RetrieveReceiptQueueBounds(r storage.Reader) (head uint64, tail uint64, err error) {
	head, err = retrieveCounter(r, receiptQueueHeadKey)
	if err != nil {
		return 0, 0, fmt.Errorf("could not retrieve receipt queue head: %w", err)
	}
	tail, err = retrieveCounter(r, receiptQueueTailKey)
	if err != nil {
		return 0, 0, fmt.Errorf("could not retrieve receipt queue tail: %w", err)
	}
	if head > tail {
		return 0, 0, fmt.Errorf("corrupted receipt queue bounds: head %d > tail %d", head, tail)
	}
	return head, tail, nil
}

// CountRoundReceipts returns the number of queued rounds.
// No errors expected during normal operations.
func CountRoundReceipts(r storage.Reader) (uint64, error) {
	head, tail, err := RetrieveReceiptQueueBounds(r)
	if err != nil {
		return 0, err
	}
	return tail - head, nil
}

// InsertRoundReceipts appends the round at the tail of the queue.
// No errors expected during normal operations.
func InsertRoundReceipts(rw storage.ReaderWriter, round *ledger.RoundReceipts) error {
	_, tail, err := RetrieveReceiptQueueBounds(rw)
	if err != nil {
		return err
	}
	err = InsertByKey(rw, roundReceiptsKey(tail), round)
	if errors.Is(err, storage.ErrAlreadyExists) {
		// a round past the tail means the queue is corrupted
		return irrecoverable.NewExceptionf("stale round receipts at tail %d: %w", tail, err)
	}
	if err != nil {
		return fmt.Errorf("could not insert round receipts %d: %w", tail, err)
	}
	return upsertCounter(rw, receiptQueueTailKey, tail+1)
}

// PeekRoundReceipts reads the oldest queued round.
// Expected errors during normal operations:
//   - storage.ErrNotFound if the queue is empty
func PeekRoundReceipts(r storage.Reader, round *ledger.RoundReceipts) error {
	head, tail, err := RetrieveReceiptQueueBounds(r)
	if err != nil {
		return err
	}
	if head == tail {
		return storage.ErrNotFound
	}
	return retrieveRoundReceipts(r, head, round)
}

// PollRoundReceipts reads and removes the oldest queued round.
// Expected errors during normal operations:
//   - storage.ErrNotFound if the queue is empty
func PollRoundReceipts(rw storage.ReaderWriter, round *ledger.RoundReceipts) error {
	head, tail, err := RetrieveReceiptQueueBounds(rw)
	if err != nil {
		return err
	}
	if head == tail {
		return storage.ErrNotFound
	}
	err = retrieveRoundReceipts(rw, head, round)
	if err != nil {
		return err
	}
	err = RemoveByKey(rw, roundReceiptsKey(head))
	if err != nil {
		return fmt.Errorf("could not remove round receipts %d: %w", head, err)
	}
	return upsertCounter(rw, receiptQueueHeadKey, head+1)
}

// IterateRoundReceipts visits the queued rounds from oldest to newest until fn returns
// false or an error.
// No errors expected during normal operations, other than those returned by fn.
func IterateRoundReceipts(r storage.Reader, fn func(round *ledger.RoundReceipts) (bool, error)) error {
	head, tail, err := RetrieveReceiptQueueBounds(r)
	if err != nil {
		return err
	}
	for index := head; index < tail; index++ {
		var round ledger.RoundReceipts
		err = retrieveRoundReceipts(r, index, &round)
		if err != nil {
			return err
		}
		next, err := fn(&round)
		if err != nil {
			return err
		}
		if !next {
			return nil
		}
	}
	return nil
}

func retrieveRoundReceipts(r storage.Reader, index uint64, round *ledger.RoundReceipts) error {
	err := RetrieveByKey(r, roundReceiptsKey(index), round)
	if err != nil {
		// a missing round inside the bounds means the queue is corrupted
		return irrecoverable.NewExceptionf("could not retrieve round receipts %d: %v", index, err)
	}
	return nil
}
