package recordcache

import (
	"encoding/hex"
	"fmt"
	"sort"

	"golang.org/x/crypto/sha3"

	"github.com/ledgerd/recordcache/model/encoding"
	"github.com/ledgerd/recordcache/model/ledger"
)

// StateDigest fingerprints the consensus relevant state of a record cache.
type StateDigest [32]byte

func (d StateDigest) String() string {
	return hex.EncodeToString(d[:])
}

type digestReceipt struct {
	_             struct{} `cbor:",toarray"`
	TransactionID string
	Status        uint32
}

type digestHistory struct {
	_        struct{} `cbor:",toarray"`
	BaseID   string
	NodeIDs  []uint64
	Receipts []digestReceipt
}

// Digest returns a fingerprint of the history index: for every base transaction, the
// classifying nodes and the receipts recorded for the base transaction and its children
// in history order. Two caches holding the same history index have the same digest
// regardless of how it was built, so a live cache and one rebuilt from its receipt log
// agree. The payer index is not part of the digest.
func (c *RecordCache) Digest() (StateDigest, error) {
	c.mu.RLock()
	bases := make([]ledger.TransactionID, 0, len(c.histories))
	histories := make(map[ledger.TransactionID]*HistorySource, len(c.histories))
	for base, history := range c.histories {
		bases = append(bases, base)
		histories[base] = history
	}
	c.mu.RUnlock()

	sort.Slice(bases, func(i, j int) bool { return bases[i].Less(bases[j]) })

	entries := make([]digestHistory, 0, len(bases))
	for _, base := range bases {
		entries = append(entries, digestOf(base, histories[base]))
	}

	encoded, err := encoding.DefaultEncoder.Encode(entries)
	if err != nil {
		return StateDigest{}, fmt.Errorf("could not encode record cache state: %w", err)
	}

	tagged := append([]byte(encoding.RecordCacheDigestTag), encoded...)
	return StateDigest(sha3.Sum256(tagged)), nil
}

func digestOf(base ledger.TransactionID, history *HistorySource) digestHistory {
	entry := digestHistory{
		BaseID:   base.String(),
		NodeIDs:  history.NodeIDs(),
		Receipts: []digestReceipt{},
	}
	for _, source := range history.RecordSources() {
		for _, identified := range source.IdentifiedReceipts() {
			// a source also lists the receipts of other base transactions it produced
			if identified.TransactionID.Base() != base {
				continue
			}
			entry.Receipts = append(entry.Receipts, digestReceipt{
				TransactionID: identified.TransactionID.String(),
				Status:        uint32(identified.Receipt.Status),
			})
		}
	}
	return entry
}
