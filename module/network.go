package module

import (
	"time"

	"github.com/ledgerd/recordcache/model/ledger"
)

// NetworkInfo resolves node ids to the accounts the nodes operate.
type NetworkInfo interface {
	// AccountIDOfNode returns the account of the node, or false when the node is unknown.
	AccountIDOfNode(nodeID uint64) (ledger.AccountID, bool)
}

// ConsensusClock provides the consensus time of the round being handled.
type ConsensusClock interface {
	CurrentConsensusTime() time.Time
}
