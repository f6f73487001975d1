package ledger

import "fmt"

// Status is the response code recorded in a transaction receipt.
type Status uint32

const (
	StatusOK Status = iota
	StatusInvalidTransaction
	StatusPayerAccountNotFound
	StatusInvalidNodeAccount
	StatusTransactionExpired
	StatusInvalidTransactionStart
	StatusInvalidTransactionDuration
	StatusInvalidSignature
	StatusMemoTooLong
	StatusInsufficientTxFee
	StatusInsufficientPayerBalance
	StatusDuplicateTransaction
	StatusBusy
	StatusNotSupported
	StatusUnknown
	StatusSuccess
	StatusFailInvalid
	StatusInvalidPayerSignature
	StatusAccountIsImmutable
	StatusInvalidAccountID
	StatusAccountDeleted
)

var statusNames = map[Status]string{
	StatusOK:                         "OK",
	StatusInvalidTransaction:         "INVALID_TRANSACTION",
	StatusPayerAccountNotFound:       "PAYER_ACCOUNT_NOT_FOUND",
	StatusInvalidNodeAccount:         "INVALID_NODE_ACCOUNT",
	StatusTransactionExpired:         "TRANSACTION_EXPIRED",
	StatusInvalidTransactionStart:    "INVALID_TRANSACTION_START",
	StatusInvalidTransactionDuration: "INVALID_TRANSACTION_DURATION",
	StatusInvalidSignature:           "INVALID_SIGNATURE",
	StatusMemoTooLong:                "MEMO_TOO_LONG",
	StatusInsufficientTxFee:          "INSUFFICIENT_TX_FEE",
	StatusInsufficientPayerBalance:   "INSUFFICIENT_PAYER_BALANCE",
	StatusDuplicateTransaction:       "DUPLICATE_TRANSACTION",
	StatusBusy:                       "BUSY",
	StatusNotSupported:               "NOT_SUPPORTED",
	StatusUnknown:                    "UNKNOWN",
	StatusSuccess:                    "SUCCESS",
	StatusFailInvalid:                "FAIL_INVALID",
	StatusInvalidPayerSignature:      "INVALID_PAYER_SIGNATURE",
	StatusAccountIsImmutable:         "ACCOUNT_IS_IMMUTABLE",
	StatusInvalidAccountID:           "INVALID_ACCOUNT_ID",
	StatusAccountDeleted:             "ACCOUNT_DELETED",
}

// NodeFailures are the statuses attributable to the submitting node's due diligence
// rather than to the transaction itself.
var NodeFailures = map[Status]struct{}{
	StatusInvalidNodeAccount:    {},
	StatusInvalidPayerSignature: {},
}

// AllStatuses returns every known status in ascending order.
func AllStatuses() []Status {
	all := make([]Status, 0, len(statusNames))
	for s := StatusOK; s <= StatusAccountDeleted; s++ {
		all = append(all, s)
	}
	return all
}

// IsNodeFailure reports whether s is a node due-diligence failure.
func (s Status) IsNodeFailure() bool {
	_, ok := NodeFailures[s]
	return ok
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STATUS_%d", uint32(s))
}
