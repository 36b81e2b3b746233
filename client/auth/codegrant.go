package auth

import (
	"context"
	"fmt"
)

// CodeGrant implements the authorization code grant. The interactive part
// is delegated to the configured flow; tokens are cached and refreshed
// through the token store.
type CodeGrant struct {
	grant
}

func NewCodeGrant(settings *Settings, deps Deps) *CodeGrant {
	return &CodeGrant{grant: newGrant(settings, deps)}
}

func (c *CodeGrant) Type() Type { return TypeCodeGrant }

func (c *CodeGrant) Authorize(ctx context.Context, props *Properties) (*Result, error) {
	if token := c.cachedToken(ctx); token != nil {
		return c.result(token), nil
	}
	if c.settings.AuthorizeURI == "" || c.settings.TokenURI == "" {
		return nil, fmt.Errorf("authorization code grant requires authorize and token endpoints")
	}
	flowCtx := c.beginFlow(ctx)
	defer c.endFlow()
	token, err := c.deps.Flow.Token(flowCtx, c.config(), c.flowOptions(props)...)
	if err != nil {
		return nil, err
	}
	c.keepToken(token)
	return c.result(token), nil
}
