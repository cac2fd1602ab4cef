package matcher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	c := NewClient(url, 5*time.Second)
	c.Retrier.Sleep = func(time.Duration) {}
	return c
}

func TestClientMatchSuccess(t *testing.T) {
	var gotReq matchRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(MatchResponse{
			Success: true,
			Matched: true,
			BestMatch: &BestMatch{
				ID:          "abc",
				OwnerID:     "owner-1",
				Label:       "right-thumb",
				StudentName: "Somchai",
				Score:       91.5,
				Confidence:  91.5,
			},
			TotalCompared: 12,
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.Match(context.Background(), []byte("query"), []DatabaseEntry{
		{ID: "abc", OwnerID: "owner-1", Label: "right-thumb", ImageData: []byte("img")},
	}, true)

	require.NoError(t, err)
	assert.True(t, resp.Matched)
	assert.Equal(t, 91.5, resp.BestMatch.Score)
	assert.True(t, gotReq.IsDuplicateCheck)
	assert.Len(t, gotReq.Database, 1)
}

func TestClientRetriesOn503(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(MatchResponse{Success: true, Matched: false, TotalCompared: 3})
	}))
	defer server.Close()

	var slept []time.Duration
	client := NewClient(server.URL, 5*time.Second)
	client.Retrier.Sleep = func(d time.Duration) { slept = append(slept, d) }

	resp, err := client.Match(context.Background(), []byte("q"), nil, false)
	require.NoError(t, err)
	assert.False(t, resp.Matched)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, slept)
}

func TestClientGivesUpAfterThree503s(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Match(context.Background(), []byte("q"), nil, false)

	assert.ErrorIs(t, err, ErrMatcherUnavailable)
	assert.Equal(t, 3, calls)
}

func TestClientDoesNotRetryOtherStatuses(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Match(context.Background(), []byte("q"), nil, false)

	var svcErr *Error
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.Status)
	assert.Equal(t, 1, calls)
}

func TestClientRejectsSchemaViolations(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"matched without bestMatch", `{"success":true,"matched":true,"totalCompared":5}`},
		{"score out of range", `{"success":true,"matched":true,"bestMatch":{"id":"a","ownerId":"b","score":250,"confidence":10},"totalCompared":5}`},
		{"service failure flag", `{"success":false,"error":"internal"}`},
		{"not json", `<html>gateway</html>`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := newTestClient(server.URL)
			_, err := client.Match(context.Background(), []byte("q"), nil, false)

			var svcErr *Error
			assert.ErrorAs(t, err, &svcErr)
		})
	}
}
