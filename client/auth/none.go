package auth

import (
	"context"
	"net/http"
)

// None is the open-server strategy: requests go out unsigned and authorize
// succeeds with an empty result. A server that advertises no security is
// treated as open, not as an error.
type None struct{}

func NewNone() *None { return &None{} }

func (n *None) Type() Type { return TypeNone }

func (n *None) SignRequest(req *http.Request) *http.Request { return req }

func (n *None) Authorize(ctx context.Context, props *Properties) (*Result, error) {
	return &Result{}, nil
}

func (n *None) Reset() {}

func (n *None) Abort() {}

func (n *None) ClientID() string { return "" }

func (n *None) ClientSecret() string { return "" }
