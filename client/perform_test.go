package client_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/healthlink/fhir/client"
)

func TestPerform_Read(t *testing.T) {
	var seen *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r
		w.Header().Set("Content-Type", "application/fhir+json")
		_, _ = w.Write([]byte(`{"resourceType":"Patient","id":"example"}`))
	}))
	defer server.Close()

	session, err := client.New(server.URL + "/r4")
	assert.Nil(t, err)

	outcome := session.Perform(context.Background(), "Patient/example", client.NewReadHandler())
	assert.True(t, outcome.Succeeded())
	assert.Equal(t, http.StatusOK, outcome.Status)
	if assert.NotNil(t, seen) {
		assert.Equal(t, "/r4/Patient/example", seen.URL.Path)
		assert.Equal(t, "application/fhir+json", seen.Header.Get("Accept"))
	}
	if assert.NotNil(t, outcome.Resource) {
		assert.Equal(t, "example", outcome.Resource.ID())
	}
}

func TestPerform_Write(t *testing.T) {
	var method, contentType string
	var body []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		contentType = r.Header.Get("Content-Type")
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	session, err := client.New(server.URL)
	assert.Nil(t, err)

	payload := map[string]any{"resourceType": "Patient", "active": true}
	outcome := session.Perform(context.Background(), "Patient", client.NewWriteHandler(http.MethodPost, payload))
	assert.True(t, outcome.Succeeded())
	assert.Equal(t, http.StatusCreated, outcome.Status)
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "application/fhir+json", contentType)
	assert.JSONEq(t, `{"resourceType":"Patient","active":true}`, string(body))
}

func TestPerform_UnresolvablePath(t *testing.T) {
	session, err := client.New("https://fhir.example.com/r4")
	assert.Nil(t, err)

	outcome := session.Perform(context.Background(), "Patient/\x00", client.NewReadHandler())
	assert.False(t, outcome.Sent)
	assert.True(t, errors.Is(outcome.Error, client.ErrPathResolution))

	// nothing touched the transport
	assert.False(t, session.Session().Active())
}

func TestPerform_PreparationFailure(t *testing.T) {
	session, err := client.New("https://fhir.example.com/r4")
	assert.Nil(t, err)

	// a payload that cannot be serialized fails during preparation
	outcome := session.Perform(context.Background(), "Patient",
		client.NewWriteHandler(http.MethodPost, map[string]any{"bad": func() {}}))
	assert.False(t, outcome.Sent)
	assert.True(t, errors.Is(outcome.Error, client.ErrRequestPreparation))
	assert.False(t, session.Session().Active())
}

func TestPerform_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	session, err := client.New(server.URL)
	assert.Nil(t, err)

	outcome := session.Perform(context.Background(), "Patient/example", client.NewReadHandler())
	assert.True(t, outcome.Sent)
	assert.True(t, errors.Is(outcome.Error, client.ErrTransport))
}

func TestPerform_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	session, err := client.New(server.URL)
	assert.Nil(t, err)

	outcome := session.Perform(context.Background(), "Patient/example", client.NewReadHandler())
	assert.True(t, outcome.Sent)
	assert.Equal(t, http.StatusGone, outcome.Status)
	assert.NotNil(t, outcome.Error)
	assert.False(t, outcome.Succeeded())
}

func TestPerform_AbsoluteReference(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`{"resourceType":"Patient"}`))
	}))
	defer server.Close()

	session, err := client.New(server.URL + "/r4")
	assert.Nil(t, err)

	outcome := session.Perform(context.Background(), server.URL+"/other/Patient/1", client.NewReadHandler())
	assert.True(t, outcome.Succeeded())
	assert.Equal(t, "/other/Patient/1", path)
}
