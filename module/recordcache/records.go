package recordcache

import (
	"fmt"
	"sort"

	"github.com/ledgerd/recordcache/model/ledger"
)

// GetRecords returns records of the transactions indexed under the payer, at most the
// configured number of records, in ascending consensus order.
//
// The query is best effort: it never fails. Transactions whose records cannot be
// gathered, for example because translating their outputs panics, are skipped and the
// records gathered so far are returned.
func (c *RecordCache) GetRecords(payer ledger.AccountID) []*ledger.TransactionRecord {
	set, ok := c.payerSet(payer)
	if !ok {
		return nil
	}

	limit := c.configs.RecordsMaxQueryableByAccount()
	seen := make(map[*ledger.TransactionRecord]struct{})
	records := make([]*ledger.TransactionRecord, 0, limit)

	for _, id := range set.snapshot() {
		full, err := c.gatherRecords(id, &records, seen, limit)
		if err != nil {
			c.log.Debug().
				Err(err).
				Str("payer", payer.String()).
				Str("tx_id", id.String()).
				Int("gathered", len(records)).
				Msg("returning partial records")
			break
		}
		if full {
			c.metrics.RecordsQueryTruncated()
			break
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ConsensusTimestamp.Before(records[j].ConsensusTimestamp)
	})
	return records
}

// gatherRecords appends the records of the transaction's history not seen yet, up to
// limit, and reports whether the limit was reached with records left over.
func (c *RecordCache) gatherRecords(
	id ledger.TransactionID,
	records *[]*ledger.TransactionRecord,
	seen map[*ledger.TransactionRecord]struct{},
	limit int,
) (full bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("gathering records of %s panicked: %v", id, r)
		}
	}()

	history, ok := c.history(id.Base())
	if !ok {
		// purged after the payer snapshot was taken
		return false, nil
	}
	for _, record := range history.HistoryOf(id).OrderedRecords() {
		if _, ok := seen[record]; ok {
			continue
		}
		if len(*records) >= limit {
			return true, nil
		}
		seen[record] = struct{}{}
		*records = append(*records, record)
	}
	return false, nil
}
