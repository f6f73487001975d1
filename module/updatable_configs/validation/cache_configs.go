package validation

import "fmt"

// MaxTransactionValidDurationUpperBound bounds the deduplication window, in seconds.
const MaxTransactionValidDurationUpperBound = 24 * 60 * 60

// ValidateMaxTransactionValidDuration validates that the window is positive and bounded.
func ValidateMaxTransactionValidDuration(seconds int64) error {
	if seconds <= 0 {
		return fmt.Errorf("max transaction valid duration must be greater than zero, got %d", seconds)
	}
	if seconds > MaxTransactionValidDurationUpperBound {
		return fmt.Errorf("max transaction valid duration (%d) exceeds upper bound (%d)", seconds, MaxTransactionValidDurationUpperBound)
	}
	return nil
}

// ValidateRecordsMaxQueryableByAccount validates that by-account queries return at least one record.
func ValidateRecordsMaxQueryableByAccount(max int) error {
	if max <= 0 {
		return fmt.Errorf("records max queryable by account must be greater than zero, got %d", max)
	}
	return nil
}
