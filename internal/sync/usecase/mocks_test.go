package usecase_test

import (
	"context"
	"time"

	"hubsync/internal/sync/domain/model"

	"github.com/stretchr/testify/mock"
)

// Mock CRM client
type mockCRMClient struct {
	mock.Mock
}

func (m *mockCRMClient) SetAccessToken(token string) {
	m.Called(token)
}

func (m *mockCRMClient) SearchMeetings(ctx context.Context, req *model.SearchRequest) (*model.SearchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SearchResponse), args.Error(1)
}

func (m *mockCRMClient) ReadMeetingContactAssociations(ctx context.Context, meetingIDs []string) ([]model.Association, error) {
	args := m.Called(ctx, meetingIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Association), args.Error(1)
}

func (m *mockCRMClient) ReadContacts(ctx context.Context, contactIDs []string) ([]model.Contact, error) {
	args := m.Called(ctx, contactIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Contact), args.Error(1)
}

// Mock token refresher
type mockTokenRefresher struct {
	mock.Mock
}

func (m *mockTokenRefresher) RefreshAccessToken(ctx context.Context, hubID string) (time.Time, error) {
	args := m.Called(ctx, hubID)
	return args.Get(0).(time.Time), args.Error(1)
}

// Mock action queue
type mockActionQueue struct {
	mock.Mock
}

func (m *mockActionQueue) Push(ctx context.Context, hubID string, action *model.Action) error {
	args := m.Called(ctx, hubID, action)
	return args.Error(0)
}

// Mock account repository
type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) GetAccounts(ctx context.Context) ([]*model.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Account), args.Error(1)
}

func (m *mockAccountRepository) GetAccountByHubID(ctx context.Context, hubID string) (*model.Account, error) {
	args := m.Called(ctx, hubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *mockAccountRepository) UpdateLastPulledDate(ctx context.Context, hubID, objectType string, watermark time.Time) error {
	args := m.Called(ctx, hubID, objectType, watermark)
	return args.Error(0)
}

func (m *mockAccountRepository) UpdateCredentials(ctx context.Context, hubID, accessToken string, expiresAt time.Time) error {
	args := m.Called(ctx, hubID, accessToken, expiresAt)
	return args.Error(0)
}

// Mock sync run repository
type mockSyncRunRepository struct {
	mock.Mock
}

func (m *mockSyncRunRepository) Create(ctx context.Context, run *model.SyncRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *mockSyncRunRepository) Complete(ctx context.Context, runID string, result *model.SyncResult, runErr error) error {
	args := m.Called(ctx, runID, result, runErr)
	return args.Error(0)
}
