// Package flow implements the interactive part of the authorization code
// grant: building the authorize URL, collecting the code and exchanging it
// for a token. Strategies drive a flow through the AuthFlow interface so
// tests can substitute a canned implementation.
package flow

import (
	"context"

	"golang.org/x/oauth2"
)

// AuthFlow obtains a token for the given OAuth2 client configuration.
type AuthFlow interface {
	Token(ctx context.Context, config *oauth2.Config, options ...Option) (*oauth2.Token, error)
}
