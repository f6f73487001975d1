package recordcache

import (
	"fmt"
	"time"

	"github.com/ledgerd/recordcache/model/ledger"
)

// Rebuild replaces the deduplication cache, the history index and the payer index with
// the state replayed from the committed rounds of the receipt log, and starts a new
// round. Replaying the same log always yields the same state. If the log cannot be
// read, the cache keeps its previous state.
//
// Each history rebuilt from the log holds a single partial record source of synthetic
// records, which carry only the transaction id and status of the persisted entries.
func (c *RecordCache) Rebuild() error {
	start := time.Now()

	histories := make(map[ledger.TransactionID]*HistorySource)
	payers := make(map[ledger.AccountID]*transactionSet)
	var screened []ledger.TransactionID

	rounds, entries := 0, 0
	err := c.receiptLog.Iterate(func(round *ledger.RoundReceipts) (bool, error) {
		for _, entry := range round.Entries {
			replay(histories, payers, entry)
			screened = append(screened, entry.TransactionID.Base())
		}
		rounds++
		entries += len(round.Entries)
		return true, nil
	})
	if err != nil {
		return fmt.Errorf("could not replay receipt log: %w", err)
	}

	c.dedup.Clear()
	for _, id := range screened {
		c.dedup.Add(id)
	}

	c.mu.Lock()
	c.histories = histories
	c.payers = payers
	c.mu.Unlock()
	c.ResetRoundReceipts()

	duration := time.Since(start)
	c.log.Info().
		Int("rounds", rounds).
		Int("entries", entries).
		Int("histories", len(histories)).
		Int("payers", len(payers)).
		Dur("duration", duration).
		Msg("record cache rebuilt from receipt log")
	c.metrics.CacheRebuilt(rounds, entries, duration)
	c.metrics.CacheSize(len(histories), len(payers))
	return nil
}

// replay folds one persisted entry into the given indexes.
func replay(
	histories map[ledger.TransactionID]*HistorySource,
	payers map[ledger.AccountID]*transactionSet,
	entry ledger.TransactionReceiptEntry,
) {
	id := entry.TransactionID
	base := id.Base()

	history, ok := histories[base]
	if !ok {
		history = NewHistorySource()
		histories[base] = history
	}
	if !entry.Status.IsNodeFailure() {
		history.AddNodeID(entry.NodeID)
	}

	sources := history.RecordSources()
	var partial *PartialRecordSource
	if len(sources) == 0 {
		partial = NewPartialRecordSource()
		history.AddRecordSource(partial)
	} else {
		partial = sources[0].(*PartialRecordSource)
	}
	partial.Incorporate(&ledger.TransactionRecord{
		TransactionID: id,
		Receipt:       ledger.TransactionReceipt{Status: entry.Status},
	})

	set, ok := payers[id.Payer]
	if !ok {
		set = newTransactionSet()
		payers[id.Payer] = set
	}
	set.add(id)
}
