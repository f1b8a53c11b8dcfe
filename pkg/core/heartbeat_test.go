package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pulseboard/pulseboard/pkg/core/alerts"
	"github.com/pulseboard/pulseboard/pkg/logger"
	"github.com/pulseboard/pulseboard/pkg/models"
	"github.com/pulseboard/pulseboard/pkg/store"
)

func newTestServer(t *testing.T, recordStore store.Store) *Server {
	t.Helper()

	return NewServer(&models.CoreConfig{}, recordStore, logger.NewTestLogger())
}

func knownRecord(id string, active bool) *models.ServiceRecord {
	ping := time.Now().UTC().Add(-time.Hour)

	return &models.ServiceRecord{
		ID:             id,
		Name:           "Nightly Backup",
		ClientName:     "Acme Corp",
		ReportedStatus: statusNominal,
		LastPing:       &ping,
		ScheduleHours:  24,
		IsActive:       active,
		CreatedAt:      time.Now().UTC().Add(-48 * time.Hour),
	}
}

func TestProcessHeartbeatKnownService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := store.NewMockStore(ctrl)
	server := newTestServer(t, mockStore)

	record := knownRecord("svc-1", true)
	mockStore.EXPECT().GetService(gomock.Any(), "svc-1").Return(record, nil)
	mockStore.EXPECT().
		UpdateHeartbeat(gomock.Any(), "svc-1", "nominal", gomock.Any(), "all good").
		Return(nil)

	result, err := server.ProcessHeartbeat(context.Background(), &models.HeartbeatRequest{
		ServiceID: "svc-1",
		Status:    "nominal",
		Message:   "all good",
	})

	require.NoError(t, err)
	assert.True(t, result.IsActive)
	assert.False(t, result.AutoRegistered)
	assert.WithinDuration(t, time.Now().UTC(), result.Timestamp, 5*time.Second)
}

func TestProcessHeartbeatDefaultsEmptyStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := store.NewMockStore(ctrl)
	server := newTestServer(t, mockStore)

	mockStore.EXPECT().GetService(gomock.Any(), "svc-1").Return(knownRecord("svc-1", true), nil)
	mockStore.EXPECT().
		UpdateHeartbeat(gomock.Any(), "svc-1", "nominal", gomock.Any(), "").
		Return(nil)

	_, err := server.ProcessHeartbeat(context.Background(), &models.HeartbeatRequest{ServiceID: "svc-1"})
	require.NoError(t, err)
}

func TestProcessHeartbeatEmptyServiceID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := store.NewMockStore(ctrl)
	server := newTestServer(t, mockStore)

	for _, id := range []string{"", "   "} {
		_, err := server.ProcessHeartbeat(context.Background(), &models.HeartbeatRequest{ServiceID: id})
		assert.ErrorIs(t, err, ErrEmptyServiceID)
	}
}

func TestProcessHeartbeatAutoRegisters(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := store.NewMockStore(ctrl)
	server := newTestServer(t, mockStore)

	mockStore.EXPECT().GetService(gomock.Any(), "svc-new").Return(nil, store.ErrServiceNotFound)

	var created *models.ServiceRecord

	mockStore.EXPECT().
		CreateService(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record *models.ServiceRecord) error {
			created = record
			return nil
		})

	result, err := server.ProcessHeartbeat(context.Background(), &models.HeartbeatRequest{
		ServiceID:   "svc-new",
		ServiceName: "Report Builder",
		ClientName:  "Acme Corp",
	})

	require.NoError(t, err)
	assert.True(t, result.AutoRegistered)
	assert.True(t, result.IsActive)

	require.NotNil(t, created)
	assert.Equal(t, "svc-new", created.ID)
	assert.Equal(t, "Report Builder", created.Name)
	assert.Equal(t, "Acme Corp", created.ClientName)
	assert.True(t, created.IsActive)
	assert.InDelta(t, float64(defaultScheduleHours), created.ScheduleHours, 0.001)
	require.NotNil(t, created.LastPing)
}

func TestProcessHeartbeatAutoRegisterDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := store.NewMockStore(ctrl)
	server := newTestServer(t, mockStore)

	mockStore.EXPECT().GetService(gomock.Any(), "svc-new").Return(nil, store.ErrServiceNotFound)

	var created *models.ServiceRecord

	mockStore.EXPECT().
		CreateService(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record *models.ServiceRecord) error {
			created = record
			return nil
		})

	_, err := server.ProcessHeartbeat(context.Background(), &models.HeartbeatRequest{ServiceID: "svc-new"})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, defaultServiceName, created.Name)
	assert.Equal(t, defaultClientName, created.ClientName)
	assert.Equal(t, autoRegisterMessage, created.Message)
}

func TestProcessHeartbeatAutoRegisterRace(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := store.NewMockStore(ctrl)
	server := newTestServer(t, mockStore)

	// First lookup misses, the conditional create loses to a concurrent
	// heartbeat, and the second lookup finds the winner's record.
	gomock.InOrder(
		mockStore.EXPECT().GetService(gomock.Any(), "svc-race").Return(nil, store.ErrServiceNotFound),
		mockStore.EXPECT().CreateService(gomock.Any(), gomock.Any()).Return(store.ErrServiceExists),
		mockStore.EXPECT().GetService(gomock.Any(), "svc-race").Return(knownRecord("svc-race", true), nil),
		mockStore.EXPECT().
			UpdateHeartbeat(gomock.Any(), "svc-race", "nominal", gomock.Any(), "").
			Return(nil),
	)

	result, err := server.ProcessHeartbeat(context.Background(), &models.HeartbeatRequest{ServiceID: "svc-race"})

	require.NoError(t, err)
	assert.False(t, result.AutoRegistered)
}

func TestProcessHeartbeatStoreErrors(t *testing.T) {
	errBroken := errors.New("store unavailable")

	t.Run("lookup failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStore := store.NewMockStore(ctrl)
		server := newTestServer(t, mockStore)

		mockStore.EXPECT().GetService(gomock.Any(), "svc-1").Return(nil, errBroken)

		_, err := server.ProcessHeartbeat(context.Background(), &models.HeartbeatRequest{ServiceID: "svc-1"})
		assert.ErrorIs(t, err, errBroken)
	})

	t.Run("update failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStore := store.NewMockStore(ctrl)
		server := newTestServer(t, mockStore)

		mockStore.EXPECT().GetService(gomock.Any(), "svc-1").Return(knownRecord("svc-1", true), nil)
		mockStore.EXPECT().
			UpdateHeartbeat(gomock.Any(), "svc-1", "nominal", gomock.Any(), "").
			Return(errBroken)

		_, err := server.ProcessHeartbeat(context.Background(), &models.HeartbeatRequest{ServiceID: "svc-1"})
		assert.ErrorIs(t, err, errBroken)
	})

	t.Run("create failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockStore := store.NewMockStore(ctrl)
		server := newTestServer(t, mockStore)

		mockStore.EXPECT().GetService(gomock.Any(), "svc-1").Return(nil, store.ErrServiceNotFound)
		mockStore.EXPECT().CreateService(gomock.Any(), gomock.Any()).Return(errBroken)

		_, err := server.ProcessHeartbeat(context.Background(), &models.HeartbeatRequest{ServiceID: "svc-1"})
		assert.ErrorIs(t, err, errBroken)
	})
}

func TestProcessHeartbeatEscalatesFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := store.NewMockStore(ctrl)
	server := newTestServer(t, mockStore)

	mockAlerter := alerts.NewMockAlertService(ctrl)
	server.webhooks = []alerts.AlertService{mockAlerter}

	mockStore.EXPECT().GetService(gomock.Any(), "svc-1").Return(knownRecord("svc-1", true), nil)
	mockStore.EXPECT().
		UpdateHeartbeat(gomock.Any(), "svc-1", "failure", gomock.Any(), "disk full").
		Return(nil)

	delivered := make(chan *alerts.WebhookAlert, 1)

	mockAlerter.EXPECT().
		Alert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, alert *alerts.WebhookAlert) error {
			delivered <- alert
			return nil
		}).
		Times(1)

	_, err := server.ProcessHeartbeat(context.Background(), &models.HeartbeatRequest{
		ServiceID: "svc-1",
		Status:    "failure",
		Message:   "disk full",
	})
	require.NoError(t, err)

	select {
	case alert := <-delivered:
		assert.Equal(t, alerts.Error, alert.Level)
		assert.Equal(t, "svc-1", alert.ServiceID)
		assert.Contains(t, alert.Title, "Nightly Backup")
		assert.Contains(t, alert.Message, "disk full")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for alert dispatch")
	}
}

func TestProcessHeartbeatNominalNeverEscalates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := store.NewMockStore(ctrl)
	server := newTestServer(t, mockStore)

	mockAlerter := alerts.NewMockAlertService(ctrl)
	server.webhooks = []alerts.AlertService{mockAlerter}

	mockStore.EXPECT().GetService(gomock.Any(), "svc-1").Return(knownRecord("svc-1", true), nil)
	mockStore.EXPECT().
		UpdateHeartbeat(gomock.Any(), "svc-1", "nominal", gomock.Any(), "").
		Return(nil)

	// No Alert expectation: any dispatch fails the controller.
	_, err := server.ProcessHeartbeat(context.Background(), &models.HeartbeatRequest{
		ServiceID: "svc-1",
		Status:    "nominal",
	})
	require.NoError(t, err)
}

func TestProcessHeartbeatInactiveNeverEscalates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := store.NewMockStore(ctrl)
	server := newTestServer(t, mockStore)

	mockAlerter := alerts.NewMockAlertService(ctrl)
	server.webhooks = []alerts.AlertService{mockAlerter}

	mockStore.EXPECT().GetService(gomock.Any(), "svc-1").Return(knownRecord("svc-1", false), nil)
	mockStore.EXPECT().
		UpdateHeartbeat(gomock.Any(), "svc-1", "failure", gomock.Any(), "broken").
		Return(nil)

	result, err := server.ProcessHeartbeat(context.Background(), &models.HeartbeatRequest{
		ServiceID: "svc-1",
		Status:    "failure",
		Message:   "broken",
	})

	require.NoError(t, err)
	assert.False(t, result.IsActive)
}

func TestProcessHeartbeatAlertFailureIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := store.NewMockStore(ctrl)
	server := newTestServer(t, mockStore)

	mockAlerter := alerts.NewMockAlertService(ctrl)
	server.webhooks = []alerts.AlertService{mockAlerter}

	mockStore.EXPECT().GetService(gomock.Any(), "svc-1").Return(knownRecord("svc-1", true), nil)
	mockStore.EXPECT().
		UpdateHeartbeat(gomock.Any(), "svc-1", "error", gomock.Any(), "").
		Return(nil)

	dispatched := make(chan struct{})

	mockAlerter.EXPECT().
		Alert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *alerts.WebhookAlert) error {
			close(dispatched)
			return errors.New("webhook returned 500")
		})

	result, err := server.ProcessHeartbeat(context.Background(), &models.HeartbeatRequest{
		ServiceID: "svc-1",
		Status:    "error",
	})

	require.NoError(t, err)
	assert.True(t, result.IsActive)

	select {
	case <-dispatched:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for alert dispatch")
	}
}
