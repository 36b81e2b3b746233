package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/healthlink/fhir/client"
)

func TestOperation_ResolvesAndCaches(t *testing.T) {
	smart, server := newMockSession(t)
	definitionFetches := 0
	smart.OperationHandler = func(w http.ResponseWriter, r *http.Request) {
		definitionFetches++
		w.Header().Set("Content-Type", "application/fhir+json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"resourceType": "OperationDefinition",
			"code":         "everything",
			"instance":     true,
			"resource":     []string{"Patient"},
		})
	}

	assert.Nil(t, server.Ready(context.Background()))

	definition, err := server.Operation(context.Background(), "everything")
	assert.Nil(t, err)
	if assert.NotNil(t, definition) {
		assert.Equal(t, "everything", definition.Code)
	}

	// the second lookup is served from the cache
	again, err := server.Operation(context.Background(), "everything")
	assert.Nil(t, err)
	assert.Same(t, definition, again)
	assert.Equal(t, 1, definitionFetches)
}

func TestOperation_UnknownName(t *testing.T) {
	_, server := newMockSession(t)
	assert.Nil(t, server.Ready(context.Background()))

	definition, err := server.Operation(context.Background(), "does-not-exist")
	assert.Nil(t, err)
	assert.Nil(t, definition)
}

func TestOperation_BeforeDiscovery(t *testing.T) {
	server, err := client.New("https://fhir.example.com/r4")
	assert.Nil(t, err)

	// without a cached capability the resolver does not trigger discovery
	definition, err := server.Operation(context.Background(), "everything")
	assert.Nil(t, err)
	assert.Nil(t, definition)
}

func TestPerformOperation(t *testing.T) {
	smart, server := newMockSession(t)
	var requested *http.Request
	smart.PatientHandler = func(w http.ResponseWriter, r *http.Request) {
		requested = r
		w.Header().Set("Content-Type", "application/fhir+json")
		_, _ = w.Write([]byte(`{"resourceType":"Bundle","type":"searchset"}`))
	}
	assert.Nil(t, server.Ready(context.Background()))

	outcome := server.PerformOperation(context.Background(), &client.OperationCall{
		Name:         "everything",
		ResourceType: "Patient",
		InstanceID:   "example",
		Parameters:   map[string]any{"_count": 10, "start": "2024-01-01"},
	})
	assert.True(t, outcome.Succeeded())
	assert.True(t, outcome.Sent)
	if assert.NotNil(t, outcome.Resource) {
		assert.Equal(t, "Bundle", outcome.Resource.Type())
	}
	if assert.NotNil(t, requested) {
		assert.True(t, strings.HasSuffix(requested.URL.Path, "/Patient/example/$everything"))
		assert.Equal(t, "10", requested.URL.Query().Get("_count"))
		assert.Equal(t, "2024-01-01", requested.URL.Query().Get("start"))
	}
}

func TestPerformOperation_Unsupported(t *testing.T) {
	_, server := newMockSession(t)
	assert.Nil(t, server.Ready(context.Background()))

	outcome := server.PerformOperation(context.Background(), &client.OperationCall{Name: "does-not-exist"})
	assert.False(t, outcome.Sent)
	assert.True(t, errors.Is(outcome.Error, client.ErrUnsupportedOperation))
}

func TestPerformOperation_Validation(t *testing.T) {
	_, server := newMockSession(t)
	assert.Nil(t, server.Ready(context.Background()))

	testCases := []struct {
		description string
		call        *client.OperationCall
	}{
		{
			description: "system level call to a type scoped operation",
			call:        &client.OperationCall{Name: "everything"},
		},
		{
			description: "wrong resource type",
			call:        &client.OperationCall{Name: "everything", ResourceType: "Observation"},
		},
		{
			description: "undeclared parameter",
			call: &client.OperationCall{
				Name: "everything", ResourceType: "Patient", InstanceID: "example",
				Parameters: map[string]any{"bogus": "x"},
			},
		},
		{
			description: "wrong parameter shape",
			call: &client.OperationCall{
				Name: "everything", ResourceType: "Patient", InstanceID: "example",
				Parameters: map[string]any{"_count": "many"},
			},
		},
	}

	for _, testCase := range testCases {
		outcome := server.PerformOperation(context.Background(), testCase.call)
		assert.False(t, outcome.Sent, testCase.description)
		assert.True(t, errors.Is(outcome.Error, client.ErrValidation), testCase.description)
	}
}
