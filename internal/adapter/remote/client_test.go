package remote_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fixmate/internal/adapter/remote"
	"fixmate/internal/domain/ticket"
)

func TestFetchTicketsNormalizesBackendRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/tickets", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"ticket_id": "t-1",
				"category": "broken_streetlight",
				"severity": "High",
				"status": "In Progress",
				"description": "lamp out on Jalan Ampang",
				"latitude": 3.1579,
				"longitude": 101.7123,
				"created_at": "2025-06-10T08:30:00Z"
			},
			{
				"ticket_id": "t-2",
				"category": "garbage",
				"severity": "N/A",
				"status": "New"
			}
		]`))
	}))
	defer srv.Close()

	client := remote.NewClient(srv.URL, time.Second)
	got, err := client.FetchTickets(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "t-1", got[0].ID)
	assert.Equal(t, ticket.CategoryStreetlight, got[0].Category)
	assert.Equal(t, ticket.SeverityHigh, got[0].Severity)
	assert.Equal(t, ticket.StatusInProgress, got[0].Status)
	require.NotNil(t, got[0].Location)
	assert.Equal(t, 3.1579, got[0].Location.Lat)

	assert.Equal(t, ticket.CategoryTrash, got[1].Category)
	assert.Equal(t, ticket.SeverityLow, got[1].Severity)
	assert.Equal(t, ticket.StatusSubmitted, got[1].Status)
	assert.Nil(t, got[1].Location)
}

func TestFetchTicketsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := remote.NewClient(srv.URL, time.Second)
	_, err := client.FetchTickets(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ticket.ErrFetch)
}

func TestFetchTicketsMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "a list"`))
	}))
	defer srv.Close()

	client := remote.NewClient(srv.URL, time.Second)
	_, err := client.FetchTickets(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ticket.ErrMalformedResponse)
}

func TestFetchTicketsConnectionRefused(t *testing.T) {
	client := remote.NewClient("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := client.FetchTickets(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ticket.ErrFetch)
}

func TestUpdateStatusSendsBackendVocabulary(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{
			"ticket_id": "t-1",
			"category": "pothole",
			"severity": "High",
			"status": "In Progress"
		}`))
	}))
	defer srv.Close()

	client := remote.NewClient(srv.URL, time.Second)
	updated, err := client.UpdateStatus(context.Background(), "t-1", ticket.StatusInProgress)
	require.NoError(t, err)

	assert.Equal(t, "/api/tickets/t-1/status", gotPath)
	assert.Equal(t, map[string]string{"status": "In Progress"}, gotBody)

	require.NotNil(t, updated)
	assert.Equal(t, "t-1", updated.ID)
	assert.Equal(t, ticket.StatusInProgress, updated.Status)
}

func TestUpdateStatusEmptyBodyMeansLocalPatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := remote.NewClient(srv.URL, time.Second)
	updated, err := client.UpdateStatus(context.Background(), "t-1", ticket.StatusFixed)
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestUpdateStatusUndecodableBodyMeansLocalPatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`ok`))
	}))
	defer srv.Close()

	client := remote.NewClient(srv.URL, time.Second)
	updated, err := client.UpdateStatus(context.Background(), "t-1", ticket.StatusFixed)
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestUpdateStatusServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := remote.NewClient(srv.URL, time.Second)
	_, err := client.UpdateStatus(context.Background(), "t-1", ticket.StatusFixed)
	require.Error(t, err)
	assert.ErrorIs(t, err, ticket.ErrMutation)
}

func TestFetchStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ticket-stats", r.URL.Path)
		w.Write([]byte(`{"total": 7, "by_severity": {"High": 2, "Low": 5}}`))
	}))
	defer srv.Close()

	client := remote.NewClient(srv.URL, time.Second)
	stats, err := client.FetchStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, stats.Total)
	assert.Equal(t, 2, stats.BySeverity["High"])
}

func TestFetchLocationsPassesSeverityQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ticket-locations", r.URL.Path)
		assert.Equal(t, "high", r.URL.Query().Get("severity"))
		w.Write([]byte(`[{"lat": 3.1, "lng": 101.6}]`))
	}))
	defer srv.Close()

	client := remote.NewClient(srv.URL, time.Second)
	locations, err := client.FetchLocations(context.Background(), ticket.SeverityHigh)
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, 3.1, locations[0].Lat)
}
