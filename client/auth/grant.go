package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	afshttp "github.com/viant/afs/http"
	afsurl "github.com/viant/afs/url"
	"golang.org/x/oauth2"

	"github.com/healthlink/fhir/client/auth/flow"
	"github.com/healthlink/fhir/client/auth/store"
)

// Deps carries the collaborators a token-bearing strategy needs. Zero
// values are replaced with usable defaults.
type Deps struct {
	Store    store.Store
	Flow     flow.AuthFlow
	Audience string
	Logger   *slog.Logger
}

func (d Deps) normalize() Deps {
	if d.Store == nil {
		d.Store = store.NewMemoryStore()
	}
	if d.Flow == nil {
		d.Flow = flow.NewBrowserFlow()
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return d
}

// grant holds the state shared by all token-bearing strategy variants.
type grant struct {
	settings *Settings
	deps     Deps

	mux    sync.Mutex
	token  *oauth2.Token
	cancel context.CancelFunc
}

func newGrant(settings *Settings, deps Deps) grant {
	g := grant{settings: settings, deps: deps.normalize()}
	if cached, ok := g.deps.Store.LookupToken(g.tokenKey()); ok {
		g.token = cached
	}
	return g
}

func (g *grant) config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     g.settings.ClientID,
		ClientSecret: g.settings.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:   g.settings.AuthorizeURI,
			TokenURL:  g.settings.TokenURI,
			AuthStyle: oauth2.AuthStyleAutoDetect,
		},
		RedirectURL: g.settings.RedirectURI,
		Scopes:      strings.Fields(g.settings.Scope),
	}
}

// tokenKey identifies stored tokens by issuer origin, so tokens survive
// endpoint path changes within the same authority.
func (g *grant) tokenKey() store.TokenKey {
	endpoint := g.settings.TokenURI
	if endpoint == "" {
		endpoint = g.settings.AuthorizeURI
	}
	issuer, _ := afsurl.Base(endpoint, afshttp.SecureScheme)
	if issuer == "" {
		issuer = endpoint
	}
	return store.TokenKey{Issuer: issuer, Scopes: g.settings.Scope}
}

func (g *grant) SignRequest(req *http.Request) *http.Request {
	g.mux.Lock()
	token := g.token
	g.mux.Unlock()
	if token != nil && token.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	}
	return req
}

func (g *grant) Reset() {
	g.mux.Lock()
	g.token = nil
	g.mux.Unlock()
	_ = g.deps.Store.DeleteToken(g.tokenKey())
}

// Abort cancels an authorization flow in progress; it does not touch an
// already acquired token.
func (g *grant) Abort() {
	g.mux.Lock()
	defer g.mux.Unlock()
	if g.cancel != nil {
		g.cancel()
		g.cancel = nil
	}
}

func (g *grant) ClientID() string     { return g.settings.ClientID }
func (g *grant) ClientSecret() string { return g.settings.ClientSecret }

// cachedToken returns a usable token without network I/O: a still valid
// cached token, or one refreshed through the configured token source.
func (g *grant) cachedToken(ctx context.Context) *oauth2.Token {
	g.mux.Lock()
	cached := g.token
	g.mux.Unlock()
	if cached == nil {
		return nil
	}
	if cached.Valid() {
		return cached
	}
	if cached.RefreshToken == "" {
		return nil
	}
	refreshed, err := g.config().TokenSource(ctx, cached).Token()
	if err != nil {
		g.deps.Logger.Debug("token refresh failed", "error", err)
		return nil
	}
	// preserve refresh token if provider omitted it
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = cached.RefreshToken
	}
	g.keepToken(refreshed)
	return refreshed
}

func (g *grant) keepToken(token *oauth2.Token) {
	g.mux.Lock()
	g.token = token
	g.mux.Unlock()
	if err := g.deps.Store.AddToken(g.tokenKey(), token); err != nil {
		g.deps.Logger.Debug("failed to persist token", "error", err)
	}
}

// beginFlow derives a cancelable context so Abort can interrupt the flow.
func (g *grant) beginFlow(ctx context.Context) context.Context {
	flowCtx, cancel := context.WithCancel(ctx)
	g.mux.Lock()
	g.cancel = cancel
	g.mux.Unlock()
	return flowCtx
}

func (g *grant) endFlow() {
	g.mux.Lock()
	g.cancel = nil
	g.mux.Unlock()
}

func (g *grant) flowOptions(props *Properties) []flow.Option {
	options := []flow.Option{flow.WithPKCE(true)}
	if g.deps.Audience != "" {
		options = append(options, flow.WithAuthURLParam("aud", g.deps.Audience))
	}
	if props == nil {
		return options
	}
	if props.Scope != "" {
		options = append(options, flow.WithScopes(strings.Fields(props.Scope)...))
	}
	if props.RedirectURI != "" {
		options = append(options, flow.WithRedirectURI(props.RedirectURI))
	}
	for name, value := range props.Params {
		options = append(options, flow.WithAuthURLParam(name, value))
	}
	return options
}

// result maps a token into the authorize outcome, pulling the SMART
// patient launch context and id_token claims when present.
func (g *grant) result(token *oauth2.Token) *Result {
	return &Result{
		Token:         token,
		PatientID:     patientFromToken(token),
		IDTokenClaims: parseIDTokenClaims(token),
	}
}
