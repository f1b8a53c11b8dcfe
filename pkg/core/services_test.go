package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/pulseboard/pulseboard/pkg/models"
	"github.com/pulseboard/pulseboard/pkg/store"
)

func TestListServices(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := store.NewMockStore(ctrl)
	server := newTestServer(t, mockStore)

	now := time.Now().UTC()
	fresh := now.Add(-time.Hour)
	stale := now.Add(-26 * time.Hour)

	records := []models.ServiceRecord{
		{ID: "svc-1", Name: "Nightly Backup", ClientName: "Acme Corp", ReportedStatus: "nominal", LastPing: &fresh, ScheduleHours: 24, IsActive: true},
		{ID: "svc-2", Name: "Invoice Sync", ClientName: "Globex", ReportedStatus: "nominal", LastPing: &stale, ScheduleHours: 24, IsActive: true},
		{ID: "svc-3", Name: "Lead Import", ClientName: "Acme Corp", ReportedStatus: "nominal", ScheduleHours: 24, IsActive: false},
	}

	mockStore.EXPECT().ListServices(gomock.Any()).Return(records, nil)

	views, err := server.ListServices(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, "svc-1", views[0].ID)
	assert.Equal(t, models.HealthNominal, views[0].Status)
	assert.Equal(t, "1h ago", views[0].LastPing)

	assert.Equal(t, models.HealthWarning, views[1].Status)
	assert.Equal(t, "1d ago", views[1].LastPing)

	assert.Equal(t, models.HealthOffline, views[2].Status)
	assert.Equal(t, "Never", views[2].LastPing)
	assert.False(t, views[2].IsActive)
}

func TestListServicesClientFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := store.NewMockStore(ctrl)
	server := newTestServer(t, mockStore)

	ping := time.Now().UTC().Add(-time.Minute)

	records := []models.ServiceRecord{
		{ID: "svc-1", ClientName: "Acme Corp", LastPing: &ping, ScheduleHours: 24},
		{ID: "svc-2", ClientName: "Globex", LastPing: &ping, ScheduleHours: 24},
		{ID: "svc-3", ClientName: "acme corp", LastPing: &ping, ScheduleHours: 24},
	}

	mockStore.EXPECT().ListServices(gomock.Any()).Return(records, nil).Times(2)

	t.Run("filter matches case-insensitively", func(t *testing.T) {
		views, err := server.ListServices(context.Background(), "ACME CORP")
		require.NoError(t, err)
		require.Len(t, views, 2)
		assert.Equal(t, "svc-1", views[0].ID)
		assert.Equal(t, "svc-3", views[1].ID)
	})

	t.Run("filter with no matches returns empty slice", func(t *testing.T) {
		views, err := server.ListServices(context.Background(), "Initech")
		require.NoError(t, err)
		assert.Empty(t, views)
		assert.NotNil(t, views)
	})
}

func TestListServicesStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := store.NewMockStore(ctrl)
	server := newTestServer(t, mockStore)

	errBroken := errors.New("store unavailable")
	mockStore.EXPECT().ListServices(gomock.Any()).Return(nil, errBroken)

	_, err := server.ListServices(context.Background(), "")
	assert.ErrorIs(t, err, errBroken)
}
