package recordcache

import (
	"sync"

	"github.com/ledgerd/recordcache/model/ledger"
)

// transactionSet is the set of transaction ids indexed under one payer.
type transactionSet struct {
	mu  sync.RWMutex
	ids map[ledger.TransactionID]struct{}
}

func newTransactionSet() *transactionSet {
	return &transactionSet{ids: make(map[ledger.TransactionID]struct{})}
}

func (s *transactionSet) add(id ledger.TransactionID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = struct{}{}
}

// remove deletes id and reports whether it was present and whether the set is now empty.
func (s *transactionSet) remove(id ledger.TransactionID) (removed bool, empty bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, removed = s.ids[id]
	delete(s.ids, id)
	return removed, len(s.ids) == 0
}

// snapshot returns the ids in unspecified order.
func (s *transactionSet) snapshot() []ledger.TransactionID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]ledger.TransactionID, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	return ids
}

func (s *transactionSet) size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}
