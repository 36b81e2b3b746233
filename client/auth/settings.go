package auth

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Settings is the typed view of the opaque key/value authorization
// configuration a session is constructed with. Keys follow the SMART
// client settings vocabulary.
type Settings struct {
	Type            string `mapstructure:"authorize_type" yaml:"authorize_type,omitempty" json:"authorize_type,omitempty"`
	ClientID        string `mapstructure:"client_id" yaml:"client_id,omitempty" json:"client_id,omitempty"`
	ClientSecret    string `mapstructure:"client_secret" yaml:"client_secret,omitempty" json:"client_secret,omitempty"`
	AuthorizeURI    string `mapstructure:"authorize_uri" yaml:"authorize_uri,omitempty" json:"authorize_uri,omitempty"`
	TokenURI        string `mapstructure:"token_uri" yaml:"token_uri,omitempty" json:"token_uri,omitempty"`
	RegistrationURI string `mapstructure:"registration_uri" yaml:"registration_uri,omitempty" json:"registration_uri,omitempty"`
	RedirectURI     string `mapstructure:"redirect" yaml:"redirect,omitempty" json:"redirect,omitempty"`
	Scope           string `mapstructure:"scope" yaml:"scope,omitempty" json:"scope,omitempty"`
	Username        string `mapstructure:"username" yaml:"username,omitempty" json:"username,omitempty"`
	Password        string `mapstructure:"password" yaml:"password,omitempty" json:"password,omitempty"`
}

// DecodeSettings converts an opaque settings map into typed Settings.
// Unknown keys are ignored; values are coerced weakly so integrators can
// pass values parsed from yaml or json without extra casting.
func DecodeSettings(raw map[string]any) (*Settings, error) {
	settings := &Settings{}
	if len(raw) == 0 {
		return settings, nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           settings,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid authorization settings: %w", err)
	}
	return settings, nil
}

// merge returns a copy of s with the given endpoints overriding the static
// configuration. Capability-declared endpoints are authoritative.
func (s *Settings) merge(authorize, token, register string) *Settings {
	merged := *s
	if authorize != "" {
		merged.AuthorizeURI = authorize
	}
	if token != "" {
		merged.TokenURI = token
	}
	if register != "" {
		merged.RegistrationURI = register
	}
	return &merged
}
