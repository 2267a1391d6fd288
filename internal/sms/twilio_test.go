package sms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"alcyxob/coaching-app/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSend(t *testing.T) {
	var gotPath, gotUser, gotPass string
	var gotForm map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUser, gotPass, _ = r.BasicAuth()
		_ = r.ParseForm()
		gotForm = map[string]string{
			"From": r.PostForm.Get("From"),
			"To":   r.PostForm.Get("To"),
			"Body": r.PostForm.Get("Body"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM1","status":"queued"}`))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		BaseURL:    srv.URL + "/",
		AccountSID: "AC123",
		AuthToken:  "secret",
		From:       "+15550000000",
	}, nil)

	err := client.Send(context.Background(), "+15551112222", "Coach shared a drill: Tee work")
	require.NoError(t, err)

	assert.Equal(t, "/2010-04-01/Accounts/AC123/Messages.json", gotPath)
	assert.Equal(t, "AC123", gotUser)
	assert.Equal(t, "secret", gotPass)
	assert.Equal(t, map[string]string{
		"From": "+15550000000",
		"To":   "+15551112222",
		"Body": "Coach shared a drill: Tee work",
	}, gotForm)
}

func TestClientSend_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":21211,"message":"The 'To' number is not a valid phone number.","status":400}`))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, AccountSID: "AC1", AuthToken: "t", From: "+1"}, nil)
	err := client.Send(context.Background(), "bogus", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "21211")
	assert.Contains(t, err.Error(), "not a valid phone number")
}

func TestClientSend_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, AccountSID: "AC1", AuthToken: "t", From: "+1"}, nil)
	err := client.Send(context.Background(), "+1555", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=502")
}

func TestNewGatewayFromConfig(t *testing.T) {
	assert.Nil(t, NewGatewayFromConfig(config.SMSConfig{AccountSID: "AC1", AuthToken: "t"}, nil))

	gw := NewGatewayFromConfig(config.SMSConfig{AccountSID: "AC1", AuthToken: "t", From: "+1"}, nil)
	require.NotNil(t, gw)
	assert.IsType(t, &Client{}, gw)
}
