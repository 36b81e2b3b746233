package fhir

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/healthlink/fhir/client"
	"github.com/healthlink/fhir/client/auth"
	"github.com/healthlink/fhir/client/auth/flow"
	"github.com/healthlink/fhir/client/auth/store"
)

// ClientOptions
//
// defines options for configuring a FHIR server session.
type ClientOptions struct {
	URL      string      `yaml:"url" json:"url"  short:"u" long:"url" description:"fhir base url"`
	Name     string      `yaml:"name,omitempty" json:"name,omitempty"  short:"n" long:"name" description:"server display name"`
	Audience string      `yaml:"audience,omitempty" json:"audience,omitempty"  long:"audience" description:"audience sent to the authorization server"`
	Auth     *ClientAuth `yaml:"auth,omitempty" json:"auth,omitempty"`

	// TimeoutSeconds bounds each request made through the session.
	// If <= 0 no timeout is applied.
	TimeoutSeconds int `yaml:"timeoutSeconds,omitempty" json:"timeoutSeconds,omitempty"  long:"timeout" description:"request timeout in seconds"`

	// CookieJar, if set, is attached to the underlying HTTP client so that
	// servers using session cookies keep them across calls.
	CookieJar http.CookieJar `yaml:"-" json:"-"`

	Logger *slog.Logger `yaml:"-" json:"-"`
}

// ClientAuth defines authentication options for a FHIR server session.
type ClientAuth struct {
	Type         string `yaml:"type,omitempty" json:"authorize_type,omitempty" mapstructure:"authorize_type"  long:"auth-type" description:"authorization grant type" choice:"none" choice:"implicit" choice:"authorization_code" choice:"password"`
	ClientID     string `yaml:"clientId,omitempty" json:"client_id,omitempty" mapstructure:"client_id"  long:"client-id" description:"oauth2 client id"`
	ClientSecret string `yaml:"clientSecret,omitempty" json:"client_secret,omitempty" mapstructure:"client_secret"  long:"client-secret" description:"oauth2 client secret"`
	AuthorizeURI string `yaml:"authorizeUri,omitempty" json:"authorize_uri,omitempty" mapstructure:"authorize_uri"  long:"authorize-uri" description:"authorization endpoint override"`
	TokenURI     string `yaml:"tokenUri,omitempty" json:"token_uri,omitempty" mapstructure:"token_uri"  long:"token-uri" description:"token endpoint override"`
	Redirect     string `yaml:"redirect,omitempty" json:"redirect,omitempty" mapstructure:"redirect"  long:"redirect" description:"redirect uri"`
	Scope        string `yaml:"scope,omitempty" json:"scope,omitempty" mapstructure:"scope"  long:"scope" description:"space separated scopes"`
	Username     string `yaml:"username,omitempty" json:"username,omitempty" mapstructure:"username"`
	Password     string `yaml:"password,omitempty" json:"password,omitempty" mapstructure:"password"`

	// TokenStorePath, if set, persists acquired tokens to a JSON file so
	// they survive across client instances.
	TokenStorePath string `yaml:"tokenStorePath,omitempty" json:"tokenStorePath,omitempty"  long:"token-store" description:"token cache file"`

	// Store allows injecting a token store directly; it takes precedence
	// over TokenStorePath.
	Store store.Store `yaml:"-" json:"-"`

	// Flow allows injecting a custom user-agent interaction, e.g. an
	// out-of-band flow in headless environments.
	Flow flow.AuthFlow `yaml:"-" json:"-"`
}

func (c *ClientOptions) Init() {
	if c.TimeoutSeconds < 0 {
		c.TimeoutSeconds = 0
	}
}

// settings flattens the auth block into the loosely typed settings map the
// session layer consumes.
func (c *ClientAuth) settings() map[string]interface{} {
	result := map[string]interface{}{}
	put := func(key, value string) {
		if value != "" {
			result[key] = value
		}
	}
	put("authorize_type", c.Type)
	put("client_id", c.ClientID)
	put("client_secret", c.ClientSecret)
	put("authorize_uri", c.AuthorizeURI)
	put("token_uri", c.TokenURI)
	put("redirect", c.Redirect)
	put("scope", c.Scope)
	put("username", c.Username)
	put("password", c.Password)
	return result
}

// NewClient creates a server session configured via ClientOptions.
func NewClient(options *ClientOptions) (*client.Server, error) {
	if options == nil || options.URL == "" {
		return nil, fmt.Errorf("server url is required")
	}
	options.Init()
	var opts []client.Option
	if options.Name != "" {
		opts = append(opts, client.WithName(options.Name))
	}
	if options.Audience != "" {
		opts = append(opts, client.WithAudience(options.Audience))
	}
	if options.Logger != nil {
		opts = append(opts, client.WithLogger(options.Logger))
	}
	if options.TimeoutSeconds > 0 {
		opts = append(opts, client.WithTimeout(time.Duration(options.TimeoutSeconds)*time.Second))
	}
	if options.CookieJar != nil {
		opts = append(opts, client.WithCookieJar(options.CookieJar))
	}
	if options.Auth != nil {
		opts = append(opts, client.WithSettings(options.Auth.settings()))
		if tokenStore := options.Auth.tokenStore(); tokenStore != nil {
			opts = append(opts, client.WithStore(tokenStore))
		}
		if options.Auth.Flow != nil {
			opts = append(opts, client.WithAuthFlow(options.Auth.Flow))
		}
	}
	return client.New(options.URL, opts...)
}

func (c *ClientAuth) tokenStore() store.Store {
	if c.Store != nil {
		return c.Store
	}
	if c.TokenStorePath == "" {
		return nil
	}
	return store.NewFileStore(c.TokenStorePath)
}

// Strategy builds an authorization strategy directly from the auth block,
// bypassing capability discovery. Useful when the endpoints are already
// known and no server round trip is wanted.
func (c *ClientAuth) Strategy(deps auth.Deps) (auth.Strategy, error) {
	selector := auth.NewSelector(deps)
	return selector.FromSettings(c.settings())
}
