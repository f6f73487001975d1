package ledger

import (
	"fmt"
	"strconv"
	"strings"
)

// AccountID identifies an account by its shard, realm and number.
type AccountID struct {
	Shard uint64
	Realm uint64
	Num   uint64
}

// NewAccountID returns the account 0.0.num.
func NewAccountID(num uint64) AccountID {
	return AccountID{Num: num}
}

// ParseAccountID parses the "shard.realm.num" representation of an account.
func ParseAccountID(s string) (AccountID, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return AccountID{}, fmt.Errorf("invalid account id %q: expected shard.realm.num", s)
	}
	var values [3]uint64
	for i, part := range parts {
		v, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return AccountID{}, fmt.Errorf("invalid account id %q: %w", s, err)
		}
		values[i] = v
	}
	return AccountID{Shard: values[0], Realm: values[1], Num: values[2]}, nil
}

// String returns the "shard.realm.num" representation of the account.
func (a AccountID) String() string {
	return fmt.Sprintf("%d.%d.%d", a.Shard, a.Realm, a.Num)
}

// Compare orders accounts by shard, then realm, then number.
func (a AccountID) Compare(other AccountID) int {
	switch {
	case a.Shard != other.Shard:
		return compareUint64(a.Shard, other.Shard)
	case a.Realm != other.Realm:
		return compareUint64(a.Realm, other.Realm)
	default:
		return compareUint64(a.Num, other.Num)
	}
}

func compareUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
