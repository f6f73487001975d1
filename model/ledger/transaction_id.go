package ledger

import (
	"fmt"
	"strconv"
	"strings"
)

const scheduledSuffix = "?scheduled"

// TransactionID identifies a transaction by its payer and valid-start time. Transactions
// spawned while handling a user transaction share the user transaction's payer, valid
// start and scheduled flag and carry a nonce greater than zero.
type TransactionID struct {
	Payer      AccountID
	ValidStart Timestamp
	Nonce      uint32
	Scheduled  bool
}

// ParseTransactionID parses the representation produced by TransactionID.String.
func ParseTransactionID(s string) (TransactionID, error) {
	var id TransactionID
	rest := strings.TrimSpace(s)
	if strings.HasSuffix(rest, scheduledSuffix) {
		id.Scheduled = true
		rest = strings.TrimSuffix(rest, scheduledSuffix)
	}
	if i := strings.LastIndex(rest, "/"); i >= 0 {
		nonce, err := strconv.ParseUint(rest[i+1:], 10, 32)
		if err != nil {
			return TransactionID{}, fmt.Errorf("invalid nonce in transaction id %q: %w", s, err)
		}
		id.Nonce = uint32(nonce)
		rest = rest[:i]
	}
	payer, start, ok := strings.Cut(rest, "@")
	if !ok {
		return TransactionID{}, fmt.Errorf("invalid transaction id %q: missing '@'", s)
	}
	account, err := ParseAccountID(payer)
	if err != nil {
		return TransactionID{}, fmt.Errorf("invalid payer in transaction id %q: %w", s, err)
	}
	id.Payer = account

	secs, nanos, _ := strings.Cut(start, ".")
	id.ValidStart.Seconds, err = strconv.ParseInt(secs, 10, 64)
	if err != nil {
		return TransactionID{}, fmt.Errorf("invalid valid start in transaction id %q: %w", s, err)
	}
	if nanos != "" {
		n, err := strconv.ParseInt(nanos, 10, 32)
		if err != nil || n < 0 || n > 999_999_999 {
			return TransactionID{}, fmt.Errorf("invalid valid start nanos in transaction id %q", s)
		}
		id.ValidStart.Nanos = int32(n)
	}
	return id, nil
}

// String returns payer@seconds.nanos, followed by /nonce for child transactions and
// ?scheduled for scheduled transactions.
func (id TransactionID) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s@%s", id.Payer, id.ValidStart)
	if id.Nonce > 0 {
		fmt.Fprintf(&b, "/%d", id.Nonce)
	}
	if id.Scheduled {
		b.WriteString(scheduledSuffix)
	}
	return b.String()
}

// Base returns the identifier with its nonce set to zero.
func (id TransactionID) Base() TransactionID {
	id.Nonce = 0
	return id
}

// IsBase reports whether the identifier has a zero nonce.
func (id TransactionID) IsBase() bool {
	return id.Nonce == 0
}

// MatchesExceptNonce reports whether both identifiers share payer, valid start and
// scheduled flag.
func (id TransactionID) MatchesExceptNonce(other TransactionID) bool {
	return id.Payer == other.Payer &&
		id.ValidStart == other.ValidStart &&
		id.Scheduled == other.Scheduled
}

// IsChildOf reports whether id was spawned by the user transaction parent. Only base
// transactions have children.
func (id TransactionID) IsChildOf(parent TransactionID) bool {
	return id.Nonce > 0 && parent.Nonce == 0 && id.MatchesExceptNonce(parent)
}

// Compare orders identifiers by valid start, then payer, then scheduled flag (unscheduled
// first), then nonce.
func (id TransactionID) Compare(other TransactionID) int {
	if c := id.ValidStart.Compare(other.ValidStart); c != 0 {
		return c
	}
	if c := id.Payer.Compare(other.Payer); c != 0 {
		return c
	}
	if id.Scheduled != other.Scheduled {
		if other.Scheduled {
			return -1
		}
		return 1
	}
	return compareUint64(uint64(id.Nonce), uint64(other.Nonce))
}

// Less reports whether id sorts before other.
func (id TransactionID) Less(other TransactionID) bool {
	return id.Compare(other) < 0
}
