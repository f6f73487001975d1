package recordcache

import (
	"errors"
	"fmt"
	"time"

	"github.com/ledgerd/recordcache/model/ledger"
	"github.com/ledgerd/recordcache/storage"
)

// CommitRoundReceipts purges the rounds that left the deduplication window from the
// receipt log and from the indexes, appends the current round, and commits tx.
//
// A round is purged once its latest valid start precedes now minus the maximum
// transaction valid duration, so that every transaction of the round has expired. On
// error tx is left uncommitted and must be discarded by the caller; the indexes are
// then unchanged.
func (c *RecordCache) CommitRoundReceipts(tx storage.ReceiptTransaction, consensusNow time.Time) error {
	earliest := c.configs.EarliestValidStart(consensusNow)

	var expired []*ledger.RoundReceipts
	for {
		round, err := tx.Peek()
		if errors.Is(err, storage.ErrNotFound) {
			break
		}
		if err != nil {
			return fmt.Errorf("could not peek oldest round: %w", err)
		}
		if round.LatestValidStart().Seconds >= earliest {
			break
		}

		_, err = tx.Poll()
		if err != nil {
			return fmt.Errorf("could not poll oldest round: %w", err)
		}
		expired = append(expired, round)
	}

	if len(c.roundReceipts) > 0 {
		err := tx.Add(ledger.NewRoundReceipts(c.roundReceipts))
		if err != nil {
			return fmt.Errorf("could not add round receipts: %w", err)
		}
	}

	err := tx.Commit()
	if err != nil {
		return fmt.Errorf("could not commit round receipts: %w", err)
	}

	// the indexes follow the durable log, so expired rounds leave them only once the
	// removal is committed
	purgedRounds, purgedEntries := len(expired), 0
	for _, round := range expired {
		for _, entry := range round.Entries {
			c.purge(entry)
		}
		purgedEntries += len(round.Entries)
	}

	if purgedRounds > 0 {
		c.log.Debug().
			Int("rounds", purgedRounds).
			Int("entries", purgedEntries).
			Int64("earliest_valid_start", earliest).
			Msg("purged expired rounds")
		c.metrics.RoundsPurged(purgedRounds, purgedEntries)
	}
	c.metrics.RoundReceiptsCommitted(len(c.roundReceipts))
	c.reportSize()
	return nil
}

// purge removes an expired entry from the history and payer indexes. The entry is looked
// up under its payer first and then under the submitting node's account, where due
// diligence failures are indexed.
func (c *RecordCache) purge(entry ledger.TransactionReceiptEntry) {
	id := entry.TransactionID

	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.histories, id.Base())

	if c.removeFromPayerLocked(id.Payer, id) {
		return
	}
	account, ok := c.network.AccountIDOfNode(entry.NodeID)
	if ok && c.removeFromPayerLocked(account, id) {
		return
	}
	if entry.Status != ledger.StatusDuplicateTransaction {
		c.log.Warn().
			Str("tx_id", id.String()).
			Uint64("node_id", entry.NodeID).
			Str("status", entry.Status.String()).
			Msg("expired transaction missing from payer index")
	}
}

// removeFromPayerLocked removes id from the payer's set, dropping the set once empty.
// Caller must hold the write lock.
func (c *RecordCache) removeFromPayerLocked(payer ledger.AccountID, id ledger.TransactionID) bool {
	set, ok := c.payers[payer]
	if !ok {
		return false
	}
	removed, empty := set.remove(id)
	if empty {
		delete(c.payers, payer)
	}
	return removed
}
