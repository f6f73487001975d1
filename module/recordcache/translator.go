package recordcache

import "github.com/ledgerd/recordcache/model/ledger"

// Translator turns the raw output of executing a transaction into its record.
// Implementations must be pure: the same output always yields an equal record.
type Translator interface {
	Translate(output ledger.ExecutionOutput) *ledger.TransactionRecord
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(output ledger.ExecutionOutput) *ledger.TransactionRecord

func (f TranslatorFunc) Translate(output ledger.ExecutionOutput) *ledger.TransactionRecord {
	return f(output)
}

// DefaultTranslator copies the execution output into a record, charging the executed fee.
var DefaultTranslator = TranslatorFunc(func(output ledger.ExecutionOutput) *ledger.TransactionRecord {
	record := &ledger.TransactionRecord{
		TransactionID:      output.TransactionID,
		Receipt:            ledger.TransactionReceipt{Status: output.Status},
		ConsensusTimestamp: output.ConsensusTimestamp,
		TransactionFee:     output.ChargedFee,
		Memo:               output.Memo,
	}
	if output.ParentConsensusTimestamp != nil {
		parent := *output.ParentConsensusTimestamp
		record.ParentConsensusTimestamp = &parent
	}
	return record
})
