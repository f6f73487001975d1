package mock

import (
	mock "github.com/stretchr/testify/mock"

	ledger "github.com/ledgerd/recordcache/model/ledger"
)

// NetworkInfo is a mock type for the NetworkInfo type
type NetworkInfo struct {
	mock.Mock
}

// AccountIDOfNode provides a mock function with given fields: nodeID
func (_m *NetworkInfo) AccountIDOfNode(nodeID uint64) (ledger.AccountID, bool) {
	ret := _m.Called(nodeID)

	var r0 ledger.AccountID
	var r1 bool
	if rf, ok := ret.Get(0).(func(uint64) (ledger.AccountID, bool)); ok {
		return rf(nodeID)
	}
	if rf, ok := ret.Get(0).(func(uint64) ledger.AccountID); ok {
		r0 = rf(nodeID)
	} else {
		r0 = ret.Get(0).(ledger.AccountID)
	}

	if rf, ok := ret.Get(1).(func(uint64) bool); ok {
		r1 = rf(nodeID)
	} else {
		r1 = ret.Get(1).(bool)
	}

	return r0, r1
}

type mockConstructorTestingTNewNetworkInfo interface {
	mock.TestingT
	Cleanup(func())
}

// NewNetworkInfo creates a new instance of NetworkInfo. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewNetworkInfo(t mockConstructorTestingTNewNetworkInfo) *NetworkInfo {
	mock := &NetworkInfo{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
