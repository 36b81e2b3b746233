package auth

import (
	"context"
	"fmt"

	"github.com/healthlink/fhir/client/auth/flow"
)

// Implicit implements the implicit grant. The token arrives in the
// redirect fragment, which only the hosting application can observe, so
// the configured flow must be one able to capture it (the default browser
// flow handles code, not fragments).
type Implicit struct {
	grant
}

func NewImplicit(settings *Settings, deps Deps) *Implicit {
	return &Implicit{grant: newGrant(settings, deps)}
}

func (i *Implicit) Type() Type { return TypeImplicit }

func (i *Implicit) Authorize(ctx context.Context, props *Properties) (*Result, error) {
	if token := i.cachedToken(ctx); token != nil {
		return i.result(token), nil
	}
	if i.settings.AuthorizeURI == "" {
		return nil, fmt.Errorf("implicit grant requires an authorize endpoint")
	}
	options := append(i.flowOptions(props),
		flow.WithResponseType("token"),
		flow.WithPKCE(false))
	flowCtx := i.beginFlow(ctx)
	defer i.endFlow()
	token, err := i.deps.Flow.Token(flowCtx, i.config(), options...)
	if err != nil {
		return nil, err
	}
	i.keepToken(token)
	return i.result(token), nil
}
