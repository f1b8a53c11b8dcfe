package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pulseboard/pulseboard/pkg/core"
	"github.com/pulseboard/pulseboard/pkg/core/auth"
	"github.com/pulseboard/pulseboard/pkg/logger"
	"github.com/pulseboard/pulseboard/pkg/models"
	"github.com/pulseboard/pulseboard/pkg/store"
)

const testAPIKey = "test-api-key"

type testHarness struct {
	server *APIServer
	core   *MockCoreService
	auth   *auth.MockAuthService
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockCore := NewMockCoreService(ctrl)
	mockAuth := auth.NewMockAuthService(ctrl)

	server := NewAPIServer(models.CORSConfig{AllowedOrigins: []string{"*"}},
		WithCoreService(mockCore),
		WithAuthService(mockAuth),
		WithAPIKey(testAPIKey),
		WithLogger(logger.NewTestLogger()),
	)

	return &testHarness{server: server, core: mockCore, auth: mockAuth}
}

func (h *testHarness) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.server.Router().ServeHTTP(rec, req)

	return rec
}

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()

	payload, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewReader(payload)
}

func TestHandleHeartbeat(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		h := newTestHarness(t)

		now := time.Now().UTC()
		h.core.EXPECT().
			ProcessHeartbeat(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, req *models.HeartbeatRequest) (*core.HeartbeatResult, error) {
				assert.Equal(t, "svc-1", req.ServiceID)
				assert.Equal(t, "nominal", req.Status)

				return &core.HeartbeatResult{Timestamp: now, IsActive: true}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/api/heartbeat",
			jsonBody(t, models.HeartbeatRequest{ServiceID: "svc-1", Status: "nominal"}))
		req.Header.Set("X-API-Key", testAPIKey)

		rec := h.do(req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.HeartbeatResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.True(t, resp.IsActive)
		assert.Equal(t, now.Format(time.RFC3339), resp.Timestamp)
		assert.Empty(t, resp.Message)
	})

	t.Run("auto-registered notice", func(t *testing.T) {
		h := newTestHarness(t)

		h.core.EXPECT().
			ProcessHeartbeat(gomock.Any(), gomock.Any()).
			Return(&core.HeartbeatResult{Timestamp: time.Now().UTC(), IsActive: true, AutoRegistered: true}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/heartbeat",
			jsonBody(t, models.HeartbeatRequest{ServiceID: "svc-new"}))
		req.Header.Set("X-API-Key", testAPIKey)

		rec := h.do(req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.HeartbeatResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, autoRegisteredNotice, resp.Message)
	})

	t.Run("missing api key", func(t *testing.T) {
		h := newTestHarness(t)

		req := httptest.NewRequest(http.MethodPost, "/api/heartbeat",
			jsonBody(t, models.HeartbeatRequest{ServiceID: "svc-1"}))

		assert.Equal(t, http.StatusUnauthorized, h.do(req).Code)
	})

	t.Run("wrong api key", func(t *testing.T) {
		h := newTestHarness(t)

		req := httptest.NewRequest(http.MethodPost, "/api/heartbeat",
			jsonBody(t, models.HeartbeatRequest{ServiceID: "svc-1"}))
		req.Header.Set("X-API-Key", "not-the-key")

		assert.Equal(t, http.StatusUnauthorized, h.do(req).Code)
	})

	t.Run("api key via query parameter", func(t *testing.T) {
		h := newTestHarness(t)

		h.core.EXPECT().
			ProcessHeartbeat(gomock.Any(), gomock.Any()).
			Return(&core.HeartbeatResult{Timestamp: time.Now().UTC(), IsActive: true}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/heartbeat?api_key="+testAPIKey,
			jsonBody(t, models.HeartbeatRequest{ServiceID: "svc-1"}))

		assert.Equal(t, http.StatusOK, h.do(req).Code)
	})

	t.Run("missing service id", func(t *testing.T) {
		h := newTestHarness(t)

		h.core.EXPECT().
			ProcessHeartbeat(gomock.Any(), gomock.Any()).
			Return(nil, core.ErrEmptyServiceID)

		req := httptest.NewRequest(http.MethodPost, "/api/heartbeat",
			jsonBody(t, models.HeartbeatRequest{}))
		req.Header.Set("X-API-Key", testAPIKey)

		assert.Equal(t, http.StatusBadRequest, h.do(req).Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		h := newTestHarness(t)

		req := httptest.NewRequest(http.MethodPost, "/api/heartbeat", bytes.NewReader([]byte("{not json")))
		req.Header.Set("X-API-Key", testAPIKey)

		assert.Equal(t, http.StatusBadRequest, h.do(req).Code)
	})

	t.Run("engine failure", func(t *testing.T) {
		h := newTestHarness(t)

		h.core.EXPECT().
			ProcessHeartbeat(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("store unavailable"))

		req := httptest.NewRequest(http.MethodPost, "/api/heartbeat",
			jsonBody(t, models.HeartbeatRequest{ServiceID: "svc-1"}))
		req.Header.Set("X-API-Key", testAPIKey)

		assert.Equal(t, http.StatusInternalServerError, h.do(req).Code)
	})
}

func TestHandleServiceControl(t *testing.T) {
	adminUser := &models.User{ID: "u-1", Name: "admin", Provider: "local"}

	t.Run("disable with valid token", func(t *testing.T) {
		h := newTestHarness(t)

		h.auth.EXPECT().VerifyToken(gomock.Any(), "valid-token").Return(adminUser, nil)
		h.core.EXPECT().SetServiceActive(gomock.Any(), "svc-1", core.ActionDisable).Return(false, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/services/control",
			jsonBody(t, models.ControlRequest{ServiceID: "svc-1", Action: core.ActionDisable}))
		req.Header.Set("Authorization", "Bearer valid-token")

		rec := h.do(req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp models.ControlResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.False(t, resp.IsActive)
	})

	t.Run("missing token", func(t *testing.T) {
		h := newTestHarness(t)

		req := httptest.NewRequest(http.MethodPost, "/api/services/control",
			jsonBody(t, models.ControlRequest{ServiceID: "svc-1", Action: core.ActionEnable}))

		assert.Equal(t, http.StatusUnauthorized, h.do(req).Code)
	})

	t.Run("rejected token", func(t *testing.T) {
		h := newTestHarness(t)

		h.auth.EXPECT().VerifyToken(gomock.Any(), "bad-token").Return(nil, errors.New("invalid token"))

		req := httptest.NewRequest(http.MethodPost, "/api/services/control",
			jsonBody(t, models.ControlRequest{ServiceID: "svc-1", Action: core.ActionEnable}))
		req.Header.Set("Authorization", "Bearer bad-token")

		assert.Equal(t, http.StatusUnauthorized, h.do(req).Code)
	})

	t.Run("unknown service", func(t *testing.T) {
		h := newTestHarness(t)

		h.auth.EXPECT().VerifyToken(gomock.Any(), "valid-token").Return(adminUser, nil)
		h.core.EXPECT().
			SetServiceActive(gomock.Any(), "svc-missing", core.ActionEnable).
			Return(false, store.ErrServiceNotFound)

		req := httptest.NewRequest(http.MethodPost, "/api/services/control",
			jsonBody(t, models.ControlRequest{ServiceID: "svc-missing", Action: core.ActionEnable}))
		req.Header.Set("Authorization", "Bearer valid-token")

		assert.Equal(t, http.StatusNotFound, h.do(req).Code)
	})

	t.Run("unknown action", func(t *testing.T) {
		h := newTestHarness(t)

		h.auth.EXPECT().VerifyToken(gomock.Any(), "valid-token").Return(adminUser, nil)
		h.core.EXPECT().
			SetServiceActive(gomock.Any(), "svc-1", "restart").
			Return(false, core.ErrUnknownAction)

		req := httptest.NewRequest(http.MethodPost, "/api/services/control",
			jsonBody(t, models.ControlRequest{ServiceID: "svc-1", Action: "restart"}))
		req.Header.Set("Authorization", "Bearer valid-token")

		assert.Equal(t, http.StatusBadRequest, h.do(req).Code)
	})
}

func TestHandleListServices(t *testing.T) {
	adminUser := &models.User{ID: "u-1", Name: "admin", Provider: "local"}

	views := []models.ServiceView{
		{ID: "svc-1", Name: "Nightly Backup", ClientName: "Acme Corp", Status: models.HealthNominal, LastPing: "5m ago", IsActive: true},
	}

	t.Run("client filter needs no token", func(t *testing.T) {
		h := newTestHarness(t)

		h.core.EXPECT().ListServices(gomock.Any(), "Acme Corp").Return(views, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/services?client=Acme+Corp", http.NoBody)

		rec := h.do(req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got []models.ServiceView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "svc-1", got[0].ID)
		assert.Equal(t, models.HealthNominal, got[0].Status)
	})

	t.Run("unfiltered listing requires admin token", func(t *testing.T) {
		h := newTestHarness(t)

		req := httptest.NewRequest(http.MethodGet, "/api/services", http.NoBody)

		assert.Equal(t, http.StatusUnauthorized, h.do(req).Code)
	})

	t.Run("unfiltered listing with admin token", func(t *testing.T) {
		h := newTestHarness(t)

		h.auth.EXPECT().VerifyToken(gomock.Any(), "valid-token").Return(adminUser, nil)
		h.core.EXPECT().ListServices(gomock.Any(), "").Return(views, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/services", http.NoBody)
		req.Header.Set("Authorization", "Bearer valid-token")

		assert.Equal(t, http.StatusOK, h.do(req).Code)
	})

	t.Run("engine failure", func(t *testing.T) {
		h := newTestHarness(t)

		h.core.EXPECT().ListServices(gomock.Any(), "Acme Corp").Return(nil, errors.New("store unavailable"))

		req := httptest.NewRequest(http.MethodGet, "/api/services?client=Acme+Corp", http.NoBody)

		assert.Equal(t, http.StatusInternalServerError, h.do(req).Code)
	})
}

func TestHandleLocalLogin(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		h := newTestHarness(t)

		token := &models.Token{AccessToken: "signed-token", ExpiresAt: time.Now().Add(time.Hour)}
		h.auth.EXPECT().LoginLocal(gomock.Any(), "admin", "secret").Return(token, nil)

		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			jsonBody(t, models.LoginRequest{Username: "admin", Password: "secret"}))

		rec := h.do(req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got models.Token
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, "signed-token", got.AccessToken)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		h := newTestHarness(t)

		h.auth.EXPECT().
			LoginLocal(gomock.Any(), "admin", "wrong").
			Return(nil, errors.New("invalid credentials"))

		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			jsonBody(t, models.LoginRequest{Username: "admin", Password: "wrong"}))

		assert.Equal(t, http.StatusUnauthorized, h.do(req).Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		h := newTestHarness(t)

		req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte("{not json")))

		assert.Equal(t, http.StatusBadRequest, h.do(req).Code)
	})
}

func TestErrorResponsesAreJSON(t *testing.T) {
	h := newTestHarness(t)

	req := httptest.NewRequest(http.MethodPost, "/api/services/control",
		jsonBody(t, models.ControlRequest{ServiceID: "svc-1", Action: core.ActionEnable}))

	rec := h.do(req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusUnauthorized, resp.Status)
	assert.NotEmpty(t, resp.Message)
}

func TestCORSPreflight(t *testing.T) {
	h := newTestHarness(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/services", http.NoBody)

	rec := h.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "X-API-Key")
}
