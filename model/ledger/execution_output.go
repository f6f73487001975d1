package ledger

// ExecutionOutput is the raw output of executing one transaction, before it is
// translated into a record.
type ExecutionOutput struct {
	TransactionID            TransactionID
	Status                   Status
	ConsensusTimestamp       Timestamp
	ParentConsensusTimestamp *Timestamp
	ChargedFee               uint64
	Memo                     string
	// Events holds the encoded events emitted while executing the transaction.
	Events [][]byte
}
