package mocks

import (
	"context"

	"github.com/UnknownOlympus/hestia/internal/events"
	"github.com/stretchr/testify/mock"
)

// JournalRepoIface is a testify mock of repository.JournalRepoIface.
type JournalRepoIface struct {
	mock.Mock
}

// SaveEvent provides a mock function with given fields: ctx, event.
func (_m *JournalRepoIface) SaveEvent(ctx context.Context, event events.Event) error {
	ret := _m.Called(ctx, event)

	if len(ret) == 0 {
		panic("no return value specified for SaveEvent")
	}

	if rf, ok := ret.Get(0).(func(context.Context, events.Event) error); ok {
		return rf(ctx, event)
	}

	return ret.Error(0)
}

// NewJournalRepoIface creates a new instance of JournalRepoIface. It also registers a testing
// interface on the mock and a cleanup function to assert the mocks expectations.
func NewJournalRepoIface(t interface {
	mock.TestingT
	Cleanup(func())
}) *JournalRepoIface {
	m := &JournalRepoIface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
