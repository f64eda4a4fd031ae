package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "hubsync/internal/shared/errors"
	"hubsync/internal/shared/logger"
	synchttp "hubsync/internal/sync/adapter/http"
	"hubsync/internal/sync/adapter/security"
	"hubsync/internal/sync/config"
	"hubsync/internal/sync/domain/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSyncService struct {
	mock.Mock
}

func (m *mockSyncService) StartMeetingSync(ctx context.Context, hubID string) (string, error) {
	args := m.Called(ctx, hubID)
	return args.String(0), args.Error(1)
}

func (m *mockSyncService) StartMeetingSyncAll(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

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

type routerFixture struct {
	app       *fiber.App
	service   *mockSyncService
	accounts  *mockAccountRepository
	validator *security.ServiceTokenValidator
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	validator, err := security.NewServiceTokenValidator(&config.AuthConfig{
		JWTSecretKey: "router-test-secret",
		JWTIssuer:    "hubsync",
		TokenTTL:     time.Hour,
	})
	require.NoError(t, err)

	service := &mockSyncService{}
	accounts := &mockAccountRepository{}
	handler := synchttp.NewSyncHTTPHandler(service, accounts, nil, nil, logger.NewLogger())

	app := fiber.New()
	handler.SetupRoutesWithMiddleware(app, synchttp.NewAuthMiddleware(validator))

	return &routerFixture{
		app:       app,
		service:   service,
		accounts:  accounts,
		validator: validator,
	}
}

func (f *routerFixture) serviceToken(t *testing.T) string {
	t.Helper()
	token, err := f.validator.GenerateToken("scheduler")
	require.NoError(t, err)
	return token
}

func decodeBody(t *testing.T, r io.Reader) map[string]interface{} {
	t.Helper()
	body := map[string]interface{}{}
	require.NoError(t, json.NewDecoder(r).Decode(&body))
	return body
}

func TestHealthIsPublic(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest("GET", "/healthz", nil)
	resp, err := f.app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestTriggerSyncRequiresToken(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest("POST", "/api/v1/sync/meetings/hub-1", nil)
	resp, err := f.app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	f.service.AssertNotCalled(t, "StartMeetingSync", mock.Anything, mock.Anything)
}

func TestTriggerSyncRejectsBadToken(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest("POST", "/api/v1/sync/meetings/hub-1", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	resp, err := f.app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestTriggerSyncAccepted(t *testing.T) {
	f := newRouterFixture(t)
	f.service.On("StartMeetingSync", mock.Anything, "hub-1").Return("run-123", nil).Once()

	req := httptest.NewRequest("POST", "/api/v1/sync/meetings/hub-1", nil)
	req.Header.Set("Authorization", "Bearer "+f.serviceToken(t))
	resp, err := f.app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, "run-123", body["runId"])
	assert.Equal(t, "hub-1", body["hubId"])

	f.service.AssertExpectations(t)
}

func TestTriggerSyncUnknownAccount(t *testing.T) {
	f := newRouterFixture(t)
	f.service.On("StartMeetingSync", mock.Anything, "ghost").
		Return("", apperrors.ErrAccountNotFound).Once()

	req := httptest.NewRequest("POST", "/api/v1/sync/meetings/ghost", nil)
	req.Header.Set("Authorization", "Bearer "+f.serviceToken(t))
	resp, err := f.app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestTriggerSyncAlreadyActive(t *testing.T) {
	f := newRouterFixture(t)
	f.service.On("StartMeetingSync", mock.Anything, "hub-1").
		Return("", apperrors.ErrSyncAlreadyActive).Once()

	req := httptest.NewRequest("POST", "/api/v1/sync/meetings/hub-1", nil)
	req.Header.Set("Authorization", "Bearer "+f.serviceToken(t))
	resp, err := f.app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestTriggerSyncAllAccepted(t *testing.T) {
	f := newRouterFixture(t)
	f.service.On("StartMeetingSyncAll", mock.Anything).
		Return(map[string]string{"hub-1": "run-1", "hub-2": "run-2"}, nil).Once()

	req := httptest.NewRequest("POST", "/api/v1/sync/meetings", nil)
	req.Header.Set("Authorization", "Bearer "+f.serviceToken(t))
	resp, err := f.app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	runs, ok := body["runs"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "run-1", runs["hub-1"])
	assert.Equal(t, "run-2", runs["hub-2"])

	f.service.AssertExpectations(t)
}

func TestTriggerSyncAllRequiresToken(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest("POST", "/api/v1/sync/meetings", nil)
	resp, err := f.app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	f.service.AssertNotCalled(t, "StartMeetingSyncAll", mock.Anything)
}

func TestGetWatermarks(t *testing.T) {
	f := newRouterFixture(t)
	f.accounts.On("GetAccountByHubID", mock.Anything, "hub-1").Return(&model.Account{
		HubID: "hub-1",
		LastPulledDates: model.LastPulledDates{
			Meetings: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}, nil).Once()

	req := httptest.NewRequest("GET", "/api/v1/accounts/hub-1/watermarks", nil)
	req.Header.Set("Authorization", "Bearer "+f.serviceToken(t))
	resp, err := f.app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, "hub-1", body["hubId"])
	assert.Contains(t, body, "lastPulledDates")
}
