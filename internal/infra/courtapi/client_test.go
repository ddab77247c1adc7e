//go:build unit

package courtapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtside/internal/infra/courtapi"
	"courtside/internal/pkg/config"
)

func newTestClient(t *testing.T, handler http.Handler) *courtapi.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := courtapi.NewClient(config.BackendConfig{
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	}, nil)
	require.NoError(t, err)
	return client
}

func TestClient_GetAvailableSlots(t *testing.T) {
	venueID := uuid.New()
	scheduleID := uuid.New()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/court-schedules/available", r.URL.Path)
		assert.Equal(t, venueID.String(), r.URL.Query().Get("venueId"))
		assert.Equal(t, "2026-09-10", r.URL.Query().Get("startDate"))
		assert.Equal(t, "2026-09-12", r.URL.Query().Get("endDate"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{
			"scheduleId": "` + scheduleID.String() + `",
			"venueId": "` + venueID.String() + `",
			"date": "2026-09-10",
			"timeSlot": "18:00",
			"gameDuration": 90,
			"totalCourts": 2,
			"bookings": []
		}]`))
	}))

	slots, err := client.GetAvailableSlots(context.Background(), venueID, "2026-09-10", "2026-09-12")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, scheduleID, slots[0].ScheduleID)
	assert.Equal(t, "18:00", slots[0].TimeSlot)
	assert.Equal(t, 2, slots[0].TotalCourts)
}

func TestClient_GetAvailableSlots_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind courtapi.GatewayErrorKind
	}{
		{name: "backend failure", status: http.StatusBadGateway, wantKind: courtapi.KindTransient},
		{name: "not found", status: http.StatusNotFound, wantKind: courtapi.KindNotFound},
		{name: "client error", status: http.StatusBadRequest, wantKind: courtapi.KindRejected},
		{name: "malformed payload", status: http.StatusOK, body: `{"not": "an array"`, wantKind: courtapi.KindDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			_, err := client.GetAvailableSlots(context.Background(), uuid.New(), "2026-09-10", "2026-09-10")
			require.Error(t, err)
			assert.True(t, courtapi.IsKind(err, tt.wantKind), "got %v", err)
		})
	}
}

func TestClient_CreateBooking_ClassifiesConflicts(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantClass courtapi.ConflictClass
	}{
		{
			name:      "machine readable code",
			body:      `{"success": false, "code": "team_full", "message": "This team is full"}`,
			wantClass: courtapi.ConflictTeamFull,
		},
		{
			name:      "prose only duplicate day",
			body:      `{"success": false, "message": "You already have a booking on the same day"}`,
			wantClass: courtapi.ConflictDuplicateDay,
		},
		{
			name:      "prose only already on court",
			body:      `{"success": false, "message": "You are already booked for this court"}`,
			wantClass: courtapi.ConflictAlreadyOnCourt,
		},
		{
			name:      "unparseable conflict body",
			body:      `oops`,
			wantClass: courtapi.ConflictUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/court-bookings", r.URL.Path)
				w.WriteHeader(http.StatusConflict)
				_, _ = w.Write([]byte(tt.body))
			}))

			err := client.CreateBooking(context.Background(), courtapi.CreateBookingRequest{})
			require.Error(t, err)
			assert.True(t, courtapi.IsKind(err, courtapi.KindConflict))
			assert.Equal(t, tt.wantClass, courtapi.ConflictClassOf(err))
		})
	}
}

func TestClient_CreateBooking_Outcomes(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind courtapi.GatewayErrorKind
		wantOK   bool
	}{
		{name: "accepted", status: http.StatusCreated, body: `{"success": true}`, wantOK: true},
		{name: "backend failure", status: http.StatusInternalServerError, wantKind: courtapi.KindTransient},
		{name: "validation rejection", status: http.StatusBadRequest, wantKind: courtapi.KindRejected},
		{name: "soft rejection", status: http.StatusOK, body: `{"success": false, "message": "rejected"}`, wantKind: courtapi.KindRejected},
		{name: "malformed success body", status: http.StatusOK, body: `not json`, wantKind: courtapi.KindDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			err := client.CreateBooking(context.Background(), courtapi.CreateBookingRequest{})
			if tt.wantOK {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, courtapi.IsKind(err, tt.wantKind), "got %v", err)
		})
	}
}

func TestClient_CreateBooking_TimeoutIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	t.Cleanup(srv.Close)

	client, err := courtapi.NewClient(config.BackendConfig{
		BaseURL: srv.URL,
		Timeout: 20 * time.Millisecond,
	}, nil)
	require.NoError(t, err)

	err = client.CreateBooking(context.Background(), courtapi.CreateBookingRequest{})
	require.Error(t, err)
	assert.True(t, courtapi.IsKind(err, courtapi.KindTransient))
}

func TestClient_CancelBooking(t *testing.T) {
	bookingID := uuid.New()

	tests := []struct {
		name     string
		status   int
		body     string
		wantKind courtapi.GatewayErrorKind
		wantOK   bool
	}{
		{name: "cancelled", status: http.StatusOK, body: `{"success": true}`, wantOK: true},
		{name: "already gone", status: http.StatusNotFound, wantKind: courtapi.KindNotFound},
		{name: "backend failure", status: http.StatusServiceUnavailable, wantKind: courtapi.KindTransient},
		{name: "rejected with message", status: http.StatusForbidden, body: `{"success": false, "message": "not yours"}`, wantKind: courtapi.KindRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				assert.Equal(t, "/court-bookings/"+bookingID.String(), r.URL.Path)
				assert.Equal(t, "uid-player-1", r.URL.Query().Get("userId"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			err := client.CancelBooking(context.Background(), bookingID, "uid-player-1")
			if tt.wantOK {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, courtapi.IsKind(err, tt.wantKind), "got %v", err)
		})
	}
}

func TestClient_GetUser_BestNamePrecedence(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/uid-42", r.URL.Path)
		_, _ = w.Write([]byte(`{"first_name": "Maria", "last_name": "Santos", "username": "msantos"}`))
	}))

	profile, err := client.GetUser(context.Background(), "uid-42")
	require.NoError(t, err)
	assert.Equal(t, "Maria Santos", profile.BestName("fallback"))
}
