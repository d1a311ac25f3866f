package mocks

import (
	"context"

	"github.com/bnema/wakasync/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockRemoteQuery struct {
	mock.Mock
}

func NewMockRemoteQuery(t mockConstructorTestingT) *MockRemoteQuery {
	m := &MockRemoteQuery{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRemoteQuery) Projects(ctx context.Context) ([]domain.RemoteProject, error) {
	ret := m.Called(ctx)

	var projects []domain.RemoteProject
	if ret.Get(0) != nil {
		projects = ret.Get(0).([]domain.RemoteProject)
	}

	return projects, ret.Error(1)
}

func (m *MockRemoteQuery) Entries(ctx context.Context, timeRange domain.TimeRange) ([]domain.Session, error) {
	ret := m.Called(ctx, timeRange)

	var sessions []domain.Session
	if ret.Get(0) != nil {
		sessions = ret.Get(0).([]domain.Session)
	}

	return sessions, ret.Error(1)
}

type MockRemoteMutator struct {
	mock.Mock
}

func NewMockRemoteMutator(t mockConstructorTestingT) *MockRemoteMutator {
	m := &MockRemoteMutator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRemoteMutator) CreateProject(ctx context.Context, project domain.Project) (domain.RemoteProject, error) {
	ret := m.Called(ctx, project)

	var created domain.RemoteProject
	if ret.Get(0) != nil {
		created = ret.Get(0).(domain.RemoteProject)
	}

	return created, ret.Error(1)
}

func (m *MockRemoteMutator) CreateEntry(ctx context.Context, session domain.Session, projectID string) error {
	return m.Called(ctx, session, projectID).Error(0)
}
