package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/healthlink/fhir"
)

// Options drives a single CLI invocation. Flags overlay values loaded
// from the optional YAML config file.
type Options struct {
	ConfigURL string `short:"f" long:"config" description:"yaml config file"`

	URL        string `short:"u" long:"url" description:"fhir base url"`
	Name       string `short:"n" long:"name" description:"server display name"`
	AuthType   string `long:"auth-type" description:"authorization grant type" choice:"none" choice:"implicit" choice:"authorization_code" choice:"password"`
	ClientID   string `long:"client-id" description:"oauth2 client id"`
	Scope      string `long:"scope" description:"space separated scopes"`
	Redirect   string `long:"redirect" description:"redirect uri"`
	TokenStore string `long:"token-store" description:"token cache file"`
	Timeout    int    `long:"timeout" description:"request timeout in seconds"`

	Operation string `short:"o" long:"operation" description:"named operation to describe"`
	Authorize bool   `short:"a" long:"authorize" description:"run the authorization flow"`
}

// clientOptions merges the config file, if any, with the flag overrides.
func (o *Options) clientOptions() (*fhir.ClientOptions, error) {
	options := &fhir.ClientOptions{}
	if o.ConfigURL != "" {
		data, err := os.ReadFile(o.ConfigURL)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %q: %w", o.ConfigURL, err)
		}
		if err := yaml.Unmarshal(data, options); err != nil {
			return nil, fmt.Errorf("invalid config %q: %w", o.ConfigURL, err)
		}
	}
	if o.URL != "" {
		options.URL = o.URL
	}
	if o.Name != "" {
		options.Name = o.Name
	}
	if o.Timeout > 0 {
		options.TimeoutSeconds = o.Timeout
	}
	if o.AuthType != "" || o.ClientID != "" || o.Scope != "" || o.Redirect != "" || o.TokenStore != "" {
		if options.Auth == nil {
			options.Auth = &fhir.ClientAuth{}
		}
		overlay := func(target *string, value string) {
			if value != "" {
				*target = value
			}
		}
		overlay(&options.Auth.Type, o.AuthType)
		overlay(&options.Auth.ClientID, o.ClientID)
		overlay(&options.Auth.Scope, o.Scope)
		overlay(&options.Auth.Redirect, o.Redirect)
		overlay(&options.Auth.TokenStorePath, o.TokenStore)
	}
	if options.URL == "" {
		return nil, fmt.Errorf("server url is required")
	}
	return options, nil
}
