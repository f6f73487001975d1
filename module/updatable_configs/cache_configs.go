package updatable_configs

import (
	"time"

	"go.uber.org/atomic"

	"github.com/ledgerd/recordcache/model/ledger"
	"github.com/ledgerd/recordcache/module/updatable_configs/validation"
)

const (
	DefaultMaxTransactionValidDuration  = 180
	DefaultRecordsMaxQueryableByAccount = 10
)

// CacheConfigs holds the record cache settings that may be updated while the node runs.
// Every getter returns the latest value so that updates take effect on the next call.
type CacheConfigs struct {
	maxTransactionValidDuration  *atomic.Int64
	recordsMaxQueryableByAccount *atomic.Int64
}

// NewCacheConfigs validates the initial values and returns the configs.
func NewCacheConfigs(maxTransactionValidDuration int64, recordsMaxQueryableByAccount int) (*CacheConfigs, error) {
	err := validation.ValidateMaxTransactionValidDuration(maxTransactionValidDuration)
	if err != nil {
		return nil, err
	}
	err = validation.ValidateRecordsMaxQueryableByAccount(recordsMaxQueryableByAccount)
	if err != nil {
		return nil, err
	}
	return &CacheConfigs{
		maxTransactionValidDuration:  atomic.NewInt64(maxTransactionValidDuration),
		recordsMaxQueryableByAccount: atomic.NewInt64(int64(recordsMaxQueryableByAccount)),
	}, nil
}

// DefaultCacheConfigs returns the configs holding the default values.
func DefaultCacheConfigs() *CacheConfigs {
	return &CacheConfigs{
		maxTransactionValidDuration:  atomic.NewInt64(DefaultMaxTransactionValidDuration),
		recordsMaxQueryableByAccount: atomic.NewInt64(DefaultRecordsMaxQueryableByAccount),
	}
}

// MaxTransactionValidDuration returns the deduplication window in seconds.
func (c *CacheConfigs) MaxTransactionValidDuration() int64 {
	return c.maxTransactionValidDuration.Load()
}

// SetMaxTransactionValidDuration updates the deduplication window.
func (c *CacheConfigs) SetMaxTransactionValidDuration(seconds int64) error {
	err := validation.ValidateMaxTransactionValidDuration(seconds)
	if err != nil {
		return err
	}
	c.maxTransactionValidDuration.Store(seconds)
	return nil
}

// RecordsMaxQueryableByAccount returns the maximum number of records returned per account query.
func (c *CacheConfigs) RecordsMaxQueryableByAccount() int {
	return int(c.recordsMaxQueryableByAccount.Load())
}

// SetRecordsMaxQueryableByAccount updates the maximum number of records returned per account query.
func (c *CacheConfigs) SetRecordsMaxQueryableByAccount(max int) error {
	err := validation.ValidateRecordsMaxQueryableByAccount(max)
	if err != nil {
		return err
	}
	c.recordsMaxQueryableByAccount.Store(int64(max))
	return nil
}

// EarliestValidStart returns the earliest valid-start second still inside the window
// ending at now.
func (c *CacheConfigs) EarliestValidStart(now time.Time) int64 {
	return EarliestValidStart(now, c.MaxTransactionValidDuration())
}

// EarliestValidStart returns now minus maxTransactionValidDuration, in whole seconds.
func EarliestValidStart(now time.Time, maxTransactionValidDuration int64) int64 {
	return now.Unix() - maxTransactionValidDuration
}

// IsExpired reports whether a transaction starting at validStart has left the window ending at now.
func (c *CacheConfigs) IsExpired(validStart ledger.Timestamp, now time.Time) bool {
	return validStart.Seconds < c.EarliestValidStart(now)
}
