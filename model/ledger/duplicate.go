package ledger

// DuplicateCheckResult classifies a submission against the transactions already handled.
type DuplicateCheckResult int

const (
	// NoDuplicate means no node has submitted the transaction without failing due diligence.
	NoDuplicate DuplicateCheckResult = iota
	// SameNode means the querying node already submitted the transaction.
	SameNode
	// OtherNode means only other nodes submitted the transaction.
	OtherNode
)

func (r DuplicateCheckResult) String() string {
	switch r {
	case NoDuplicate:
		return "NO_DUPLICATE"
	case SameNode:
		return "SAME_NODE"
	case OtherNode:
		return "OTHER_NODE"
	default:
		return "UNKNOWN_DUPLICATE_CHECK_RESULT"
	}
}
