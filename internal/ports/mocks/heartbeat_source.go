package mocks

import (
	"context"

	"github.com/bnema/wakasync/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockHeartbeatSource struct {
	mock.Mock
}

type mockConstructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}

func NewMockHeartbeatSource(t mockConstructorTestingT) *MockHeartbeatSource {
	m := &MockHeartbeatSource{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockHeartbeatSource) Heartbeats(ctx context.Context, timeRange domain.TimeRange) ([]domain.Heartbeat, error) {
	ret := m.Called(ctx, timeRange)

	var heartbeats []domain.Heartbeat
	if ret.Get(0) != nil {
		heartbeats = ret.Get(0).([]domain.Heartbeat)
	}

	return heartbeats, ret.Error(1)
}

func (m *MockHeartbeatSource) Projects(ctx context.Context, timeRange domain.TimeRange) ([]string, error) {
	ret := m.Called(ctx, timeRange)

	var projects []string
	if ret.Get(0) != nil {
		projects = ret.Get(0).([]string)
	}

	return projects, ret.Error(1)
}

func (m *MockHeartbeatSource) Close() error {
	return m.Called().Error(0)
}
