package flow

import (
	"github.com/google/uuid"
)

type Options struct {
	scopes        []string
	state         string
	codeVerifier  string
	redirectURI   string
	responseType  string
	authURLParams map[string]string
	postParams    map[string]string
	usePKCE       bool
}

type Option func(*Options)

func WithScopes(scopes ...string) Option {
	return func(o *Options) {
		o.scopes = append(o.scopes, scopes...)
	}
}

func WithState(state string) Option {
	return func(o *Options) {
		o.state = state
	}
}

func WithRedirectURI(redirectURI string) Option {
	return func(o *Options) {
		o.redirectURI = redirectURI
	}
}

// WithResponseType overrides the authorize response_type; the implicit
// grant uses "token".
func WithResponseType(responseType string) Option {
	return func(o *Options) {
		o.responseType = responseType
	}
}

// WithAuthURLParam adds a provider specific authorize URL parameter, such
// as the SMART "aud" audience.
func WithAuthURLParam(name, value string) Option {
	return func(o *Options) {
		if o.authURLParams == nil {
			o.authURLParams = map[string]string{}
		}
		o.authURLParams[name] = value
	}
}

func WithPostParam(name, value string) Option {
	return func(o *Options) {
		if o.postParams == nil {
			o.postParams = map[string]string{}
		}
		o.postParams[name] = value
	}
}

func WithPKCE(enabled bool) Option {
	return func(o *Options) {
		o.usePKCE = enabled
	}
}

func NewOptions(options []Option) *Options {
	ret := &Options{usePKCE: true}
	for _, opt := range options {
		opt(ret)
	}
	if ret.state == "" {
		ret.state = uuid.New().String()
	}
	return ret
}

func (o *Options) State() string { return o.state }

func (o *Options) Scopes() []string { return o.scopes }

// CodeVerifier lazily generates and memoizes the PKCE verifier.
func (o *Options) CodeVerifier() (string, error) {
	if !o.usePKCE {
		return "", nil
	}
	if o.codeVerifier == "" {
		o.codeVerifier = randomToken()
	}
	return o.codeVerifier, nil
}
