package auth

import (
	"context"
	"fmt"
)

// Password implements the resource owner password grant.
type Password struct {
	grant
}

func NewPassword(settings *Settings, deps Deps) *Password {
	return &Password{grant: newGrant(settings, deps)}
}

func (p *Password) Type() Type { return TypePassword }

func (p *Password) Authorize(ctx context.Context, props *Properties) (*Result, error) {
	if token := p.cachedToken(ctx); token != nil {
		return p.result(token), nil
	}
	if p.settings.TokenURI == "" {
		return nil, fmt.Errorf("password grant requires a token endpoint")
	}
	if p.settings.Username == "" {
		return nil, fmt.Errorf("password grant requires a username")
	}
	flowCtx := p.beginFlow(ctx)
	defer p.endFlow()
	token, err := p.config().PasswordCredentialsToken(flowCtx, p.settings.Username, p.settings.Password)
	if err != nil {
		return nil, err
	}
	p.keepToken(token)
	return p.result(token), nil
}
