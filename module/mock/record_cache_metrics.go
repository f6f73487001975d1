package mock

import (
	time "time"

	mock "github.com/stretchr/testify/mock"

	ledger "github.com/ledgerd/recordcache/model/ledger"
)

// RecordCacheMetrics is a mock type for the RecordCacheMetrics type
type RecordCacheMetrics struct {
	mock.Mock
}

// CacheRebuilt provides a mock function with given fields: rounds, entries, duration
func (_m *RecordCacheMetrics) CacheRebuilt(rounds int, entries int, duration time.Duration) {
	_m.Called(rounds, entries, duration)
}

// CacheSize provides a mock function with given fields: histories, payers
func (_m *RecordCacheMetrics) CacheSize(histories int, payers int) {
	_m.Called(histories, payers)
}

// DuplicateChecked provides a mock function with given fields: result
func (_m *RecordCacheMetrics) DuplicateChecked(result ledger.DuplicateCheckResult) {
	_m.Called(result)
}

// RecordSourceAdded provides a mock function with given fields: receipts
func (_m *RecordCacheMetrics) RecordSourceAdded(receipts int) {
	_m.Called(receipts)
}

// RecordsQueryTruncated provides a mock function with given fields:
func (_m *RecordCacheMetrics) RecordsQueryTruncated() {
	_m.Called()
}

// RoundReceiptsCommitted provides a mock function with given fields: entries
func (_m *RecordCacheMetrics) RoundReceiptsCommitted(entries int) {
	_m.Called(entries)
}

// RoundsPurged provides a mock function with given fields: rounds, entries
func (_m *RecordCacheMetrics) RoundsPurged(rounds int, entries int) {
	_m.Called(rounds, entries)
}

type mockConstructorTestingTNewRecordCacheMetrics interface {
	mock.TestingT
	Cleanup(func())
}

// NewRecordCacheMetrics creates a new instance of RecordCacheMetrics. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewRecordCacheMetrics(t mockConstructorTestingTNewRecordCacheMetrics) *RecordCacheMetrics {
	mock := &RecordCacheMetrics{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
