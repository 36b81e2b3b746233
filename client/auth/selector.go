package auth

import (
	"github.com/healthlink/fhir/schema"
)

// Selector decides which authorization strategy variant to construct,
// either from static settings or from a discovered security descriptor.
// Selection is pure data-driven dispatch and never performs network I/O.
type Selector struct {
	deps Deps
}

func NewSelector(deps Deps) *Selector {
	return &Selector{deps: deps.normalize()}
}

// FromSettings selects a strategy from static configuration. An explicit,
// resolvable authorize_type wins; otherwise the grant is inferred from the
// configured endpoints. When nothing is inferable it returns nil with no
// error: the capability document may still supply a strategy later.
func (s *Selector) FromSettings(raw map[string]any) (Strategy, error) {
	settings, err := DecodeSettings(raw)
	if err != nil {
		return nil, err
	}
	return s.fromSettings(settings), nil
}

func (s *Selector) fromSettings(settings *Settings) Strategy {
	if settings.Type != "" {
		switch Type(settings.Type) {
		case TypeNone:
			return NewNone()
		case TypeImplicit:
			return NewImplicit(settings, s.deps)
		case TypeCodeGrant:
			return NewCodeGrant(settings, s.deps)
		case TypePassword:
			return NewPassword(settings, s.deps)
		default:
			if factory, ok := lookupFactory(Type(settings.Type)); ok {
				return factory(settings, s.deps)
			}
			s.deps.Logger.Warn("unknown authorize_type, inferring from endpoints", "type", settings.Type)
		}
	}
	if settings.AuthorizeURI != "" && settings.TokenURI != "" {
		return NewCodeGrant(settings, s.deps)
	}
	if settings.AuthorizeURI != "" {
		return NewImplicit(settings, s.deps)
	}
	return nil
}

// FromCapability selects a strategy from a discovered security descriptor,
// overlaying the advertised endpoints onto the static settings. It is
// total: when the descriptor yields no recognizable scheme the open
// strategy is returned, never nil.
func (s *Selector) FromCapability(security *schema.Security, raw map[string]any) Strategy {
	settings, err := DecodeSettings(raw)
	if err != nil {
		s.deps.Logger.Warn("ignoring undecodable authorization settings", "error", err)
		settings = &Settings{}
	}
	authorize, token, register := security.OAuthEndpoints()
	merged := settings.merge(authorize, token, register)
	if strategy := s.fromSettings(merged); strategy != nil {
		return strategy
	}
	return NewNone()
}
