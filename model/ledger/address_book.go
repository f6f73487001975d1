package ledger

import (
	"fmt"
	"sort"
	"sync"
)

// AddressBook maps node ids to the accounts the nodes are paid through.
type AddressBook struct {
	mu    sync.RWMutex
	nodes map[uint64]AccountID
}

// NewAddressBook returns an address book holding a copy of nodes.
func NewAddressBook(nodes map[uint64]AccountID) *AddressBook {
	book := &AddressBook{nodes: make(map[uint64]AccountID, len(nodes))}
	for id, account := range nodes {
		book.nodes[id] = account
	}
	return book
}

// ParseAddressBook builds an address book from node id to "shard.realm.num" pairs.
func ParseAddressBook(entries map[uint64]string) (*AddressBook, error) {
	nodes := make(map[uint64]AccountID, len(entries))
	for id, s := range entries {
		account, err := ParseAccountID(s)
		if err != nil {
			return nil, fmt.Errorf("invalid account for node %d: %w", id, err)
		}
		nodes[id] = account
	}
	return NewAddressBook(nodes), nil
}

// AccountIDOfNode returns the account of the given node, if known.
func (b *AddressBook) AccountIDOfNode(nodeID uint64) (AccountID, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	account, ok := b.nodes[nodeID]
	return account, ok
}

// Set registers or replaces the account of a node.
func (b *AddressBook) Set(nodeID uint64, account AccountID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nodes[nodeID] = account
}

// NodeIDs returns the known node ids in ascending order.
func (b *AddressBook) NodeIDs() []uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ids := make([]uint64, 0, len(b.nodes))
	for id := range b.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
