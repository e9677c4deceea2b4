package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeHandleGet(t *testing.T) {
	srv := newServer()
	ts := httptest.NewServer(srv.router())
	defer ts.Close()

	body, err := json.Marshal(getRequest{
		Value: map[string]interface{}{"name": "Tobie"},
		Path:  "name",
	})
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+"/get", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got getResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "Tobie", got.Result)
}

func TestServeMetricsEndpoint(t *testing.T) {
	srv := newServer()
	ts := httptest.NewServer(srv.router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
