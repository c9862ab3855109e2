package mailer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendPasswordReset(t *testing.T) {
	var gotAuth string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	m := New("Zoho-enczapikey test-token")
	m.Endpoint = srv.URL

	err := m.SendPasswordReset(context.Background(), "owner@example.com", "Pat", "64a1", "tok-123")
	require.NoError(t, err)

	assert.Equal(t, "Zoho-enczapikey test-token", gotAuth)

	var msg map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &msg))
	assert.Equal(t, "Reset Password for Inlet.Shop", msg["subject"])
	assert.Contains(t, msg["htmlbody"], "https://vendor.inlet.shop/password/64a1/tok-123")

	to := msg["to"].([]any)[0].(map[string]any)["email_address"].(map[string]any)
	assert.Equal(t, "owner@example.com", to["address"])
	assert.Equal(t, "Pat", to["name"])
}

func TestSendPasswordResetProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	m := New("bad-token")
	m.Endpoint = srv.URL

	err := m.SendPasswordReset(context.Background(), "owner@example.com", "Pat", "64a1", "tok-123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
