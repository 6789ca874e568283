package service

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/yakoovad/buoy-notify/internal/mail"
	"github.com/yakoovad/buoy-notify/internal/repository"
)

type MockTransactor struct {
	mock.Mock
}

func (m *MockTransactor) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Get(ctx context.Context, userID string) (*repository.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.User), args.Error(1)
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *repository.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) Create(ctx context.Context, team *repository.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockTeamRepository) Get(ctx context.Context, teamID string) (*repository.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Team), args.Error(1)
}

func (m *MockTeamRepository) AddMember(ctx context.Context, teamID, userID string, confirmed bool) error {
	args := m.Called(ctx, teamID, userID, confirmed)
	return args.Error(0)
}

func (m *MockTeamRepository) GetConfirmedMembers(ctx context.Context, teamID string) ([]string, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockAlertRepository struct {
	mock.Mock
}

func (m *MockAlertRepository) Create(ctx context.Context, alert *repository.Alert, teamIDs []string) error {
	args := m.Called(ctx, alert, teamIDs)
	return args.Error(0)
}

func (m *MockAlertRepository) Get(ctx context.Context, alertID string) (*repository.Alert, error) {
	args := m.Called(ctx, alertID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Alert), args.Error(1)
}

func (m *MockAlertRepository) GetTeams(ctx context.Context, alertID string) ([]string, error) {
	args := m.Called(ctx, alertID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) LockTeam(ctx context.Context, teamID string) error {
	args := m.Called(ctx, teamID)
	return args.Error(0)
}

func (m *MockNotificationRepository) Add(ctx context.Context, teamID, recipient string) error {
	args := m.Called(ctx, teamID, recipient)
	return args.Error(0)
}

func (m *MockNotificationRepository) List(ctx context.Context, teamID string) ([]*repository.PendingNotification, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repository.PendingNotification), args.Error(1)
}

func (m *MockNotificationRepository) Delete(ctx context.Context, teamID, recipient string) (int64, error) {
	args := m.Called(ctx, teamID, recipient)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) DeleteUpTo(ctx context.Context, teamID string, recipients []string, maxID int64) (int64, error) {
	args := m.Called(ctx, teamID, recipients, maxID)
	return args.Get(0).(int64), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, msg *mail.Message) error {
	args := m.Called(ctx, msg)
	if fn, ok := args.Get(0).(func(context.Context, *mail.Message) error); ok {
		return fn(ctx, msg)
	}
	return args.Error(0)
}
