package orderclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"omareats/pkg/orderclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
}

func TestClient_PostJSON(t *testing.T) {
	var gotBody map[string]interface{}
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotContentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"orderId":"ORD-7"}`))
	}))
	defer server.Close()

	client := orderclient.NewClient(orderclient.Config{Endpoint: server.URL, Timeout: 5 * time.Second})
	assert.Equal(t, server.URL, client.Endpoint())

	var out result
	err := client.PostJSON(context.Background(), map[string]interface{}{"total": 17.0}, &out)
	require.NoError(t, err)

	assert.Equal(t, result{Success: true, OrderID: "ORD-7"}, out)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, 17.0, gotBody["total"])
}

func TestClient_PostJSONStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	client := orderclient.NewClient(orderclient.Config{Endpoint: server.URL})

	var out result
	err := client.PostJSON(context.Background(), map[string]string{}, &out)

	var statusErr *orderclient.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	assert.EqualError(t, err, "HTTP error! status: 500")
	assert.False(t, out.Success)
}

func TestClient_PostJSONMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>ok</html>`))
	}))
	defer server.Close()

	client := orderclient.NewClient(orderclient.Config{Endpoint: server.URL})

	var out result
	err := client.PostJSON(context.Background(), map[string]string{}, &out)
	assert.ErrorContains(t, err, "failed to decode order response")
}

func TestClient_PostJSONUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	endpoint := server.URL
	server.Close()

	client := orderclient.NewClient(orderclient.Config{Endpoint: endpoint, Timeout: time.Second})

	var out result
	err := client.PostJSON(context.Background(), map[string]string{}, &out)
	assert.ErrorContains(t, err, "failed to send order")
}

func TestClient_PostJSONCancelledContext(t *testing.T) {
	client := orderclient.NewClient(orderclient.Config{Endpoint: "http://127.0.0.1:1"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out result
	err := client.PostJSON(ctx, map[string]string{}, &out)
	assert.ErrorIs(t, err, context.Canceled)
}
