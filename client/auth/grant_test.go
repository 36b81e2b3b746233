package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/oauth2"

	"github.com/healthlink/fhir/client/auth/flow"
	"github.com/healthlink/fhir/client/auth/mock"
	"github.com/healthlink/fhir/client/auth/store"
)

// fakeFlow is a canned AuthFlow for tests.
type fakeFlow struct {
	token *oauth2.Token
	err   error
	calls int
}

func (f *fakeFlow) Token(ctx context.Context, config *oauth2.Config, options ...flow.Option) (*oauth2.Token, error) {
	f.calls++
	return f.token, f.err
}

func grantSettings() *Settings {
	return &Settings{
		ClientID:     "demo",
		AuthorizeURI: "https://auth.example.com/authorize",
		TokenURI:     "https://auth.example.com/token",
		Scope:        "launch/patient",
	}
}

func TestCodeGrant_Authorize(t *testing.T) {
	token := (&oauth2.Token{
		AccessToken: "access",
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(time.Hour),
	}).WithExtra(map[string]any{"patient": "example"})

	authFlow := &fakeFlow{token: token}
	tokenStore := store.NewMemoryStore()
	codeGrant := NewCodeGrant(grantSettings(), Deps{Flow: authFlow, Store: tokenStore})

	result, err := codeGrant.Authorize(context.Background(), nil)
	assert.Nil(t, err)
	if assert.NotNil(t, result) {
		assert.Equal(t, "example", result.PatientID)
		assert.Equal(t, "access", result.Token.AccessToken)
	}
	assert.Equal(t, 1, authFlow.calls)

	// the acquired token signs subsequent requests
	req := newTestRequest(t)
	signed := codeGrant.SignRequest(req)
	assert.Equal(t, "Bearer access", signed.Header.Get("Authorization"))

	// a second authorize reuses the cached token without running the flow
	_, err = codeGrant.Authorize(context.Background(), nil)
	assert.Nil(t, err)
	assert.Equal(t, 1, authFlow.calls)
}

func TestCodeGrant_TokenSurvivesInstances(t *testing.T) {
	token := &oauth2.Token{AccessToken: "persisted", Expiry: time.Now().Add(time.Hour)}
	tokenStore := store.NewMemoryStore()

	first := NewCodeGrant(grantSettings(), Deps{Flow: &fakeFlow{token: token}, Store: tokenStore})
	_, err := first.Authorize(context.Background(), nil)
	assert.Nil(t, err)

	// a fresh grant sharing the store restores the token at construction
	second := NewCodeGrant(grantSettings(), Deps{Flow: &fakeFlow{}, Store: tokenStore})
	signed := second.SignRequest(newTestRequest(t))
	assert.Equal(t, "Bearer persisted", signed.Header.Get("Authorization"))
}

func TestCodeGrant_Reset(t *testing.T) {
	token := &oauth2.Token{AccessToken: "access", Expiry: time.Now().Add(time.Hour)}
	tokenStore := store.NewMemoryStore()
	codeGrant := NewCodeGrant(grantSettings(), Deps{Flow: &fakeFlow{token: token}, Store: tokenStore})

	_, err := codeGrant.Authorize(context.Background(), nil)
	assert.Nil(t, err)
	codeGrant.Reset()

	signed := codeGrant.SignRequest(newTestRequest(t))
	assert.Empty(t, signed.Header.Get("Authorization"))
	_, found := tokenStore.LookupToken(codeGrant.tokenKey())
	assert.False(t, found)
}

func TestCodeGrant_MissingEndpoints(t *testing.T) {
	codeGrant := NewCodeGrant(&Settings{ClientID: "demo"}, Deps{Flow: &fakeFlow{}})
	_, err := codeGrant.Authorize(context.Background(), nil)
	assert.NotNil(t, err)
}

func TestCodeGrant_OutOfBandAgainstMockServer(t *testing.T) {
	server, err := mock.NewHTTPTestSmartServer()
	if err != nil {
		t.Fatalf("failed to create mock server: %v", err)
	}
	defer server.Close()

	settings := &Settings{
		ClientID:     server.ClientID,
		ClientSecret: server.ClientSecret,
		AuthorizeURI: server.Issuer + "/authorize",
		TokenURI:     server.Issuer + "/token",
		RedirectURI:  "http://localhost/callback",
		Scope:        "launch/patient openid",
	}
	codeGrant := NewCodeGrant(settings, Deps{Flow: flow.NewOutOfBandFlow()})

	result, err := codeGrant.Authorize(context.Background(), nil)
	assert.Nil(t, err)
	if !assert.NotNil(t, result) {
		return
	}
	assert.Equal(t, server.PatientID, result.PatientID)
	assert.NotNil(t, result.IDTokenClaims)
	assert.NotEmpty(t, result.Token.AccessToken)
}

func TestPassword_AgainstMockServer(t *testing.T) {
	server, err := mock.NewHTTPTestSmartServer()
	if err != nil {
		t.Fatalf("failed to create mock server: %v", err)
	}
	defer server.Close()

	settings := &Settings{
		ClientID:     server.ClientID,
		ClientSecret: server.ClientSecret,
		TokenURI:     server.Issuer + "/token",
		Username:     "demo",
		Password:     "secret",
	}
	password := NewPassword(settings, Deps{})

	result, err := password.Authorize(context.Background(), nil)
	assert.Nil(t, err)
	if assert.NotNil(t, result) {
		assert.Equal(t, server.PatientID, result.PatientID)
	}
}

func TestNone_Strategy(t *testing.T) {
	none := NewNone()
	assert.Equal(t, TypeNone, none.Type())

	req := newTestRequest(t)
	assert.Empty(t, none.SignRequest(req).Header.Get("Authorization"))

	result, err := none.Authorize(context.Background(), nil)
	assert.Nil(t, err)
	assert.NotNil(t, result)
}
