package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/healthlink/fhir/schema"
)

// OperationCall describes one invocation of a named server operation.
// ResourceType and InstanceID scope the call to a type or instance level;
// both empty means a system level call.
type OperationCall struct {
	Name         string
	ResourceType string
	InstanceID   string
	Parameters   map[string]any
}

// Operation resolves the named operation to its definition. The
// per-session cache is consulted first, then the capability-advertised
// operations; a name advertised nowhere yields nil without error, the
// caller decides what that means.
func (s *Server) Operation(ctx context.Context, name string) (*schema.OperationDefinition, error) {
	if definition, ok := s.definitions.Get(name); ok {
		return definition, nil
	}
	advertised, ok := s.advertised.Get()
	if !ok {
		return nil, nil
	}
	op, ok := advertised[name]
	if !ok {
		return nil, nil
	}
	outcome := s.Perform(ctx, op.Definition, NewReadHandler())
	if outcome.Error != nil {
		return nil, fmt.Errorf("failed to resolve operation %q: %w", name, outcome.Error)
	}
	var definition schema.OperationDefinition
	if err := json.Unmarshal(outcome.Body, &definition); err != nil {
		return nil, fmt.Errorf("invalid definition for operation %q: %w", name, err)
	}
	// a concurrent resolver may have won; keep whichever landed first
	cached, _ := s.definitions.PutIfAbsent(name, &definition)
	return cached, nil
}

// PerformOperation resolves, validates and executes an operation call.
// An unadvertised name or a parameter mismatch yields a not-sent outcome;
// nothing goes over the wire in either case.
func (s *Server) PerformOperation(ctx context.Context, call *OperationCall) *Outcome {
	handler := NewReadHandler()
	definition, err := s.Operation(ctx, call.Name)
	if err != nil {
		return handler.NotSent(err)
	}
	if definition == nil {
		return handler.NotSent(fmt.Errorf("%w: %q", ErrUnsupportedOperation, call.Name))
	}
	if err := call.validate(definition); err != nil {
		return handler.NotSent(fmt.Errorf("%w: %v", ErrValidation, err))
	}
	return s.Perform(ctx, call.path(definition), handler)
}

func (c *OperationCall) validate(definition *schema.OperationDefinition) error {
	switch {
	case c.InstanceID != "":
		if !definition.Instance {
			return fmt.Errorf("operation %q is not an instance level operation", c.Name)
		}
	case c.ResourceType != "":
		if !definition.Type {
			return fmt.Errorf("operation %q is not a type level operation", c.Name)
		}
	default:
		if !definition.System {
			return fmt.Errorf("operation %q is not a system level operation", c.Name)
		}
	}
	if c.ResourceType != "" && len(definition.Resource) > 0 && !definition.AppliesToResource(c.ResourceType) {
		return fmt.Errorf("operation %q is not defined for resource %q", c.Name, c.ResourceType)
	}

	declared := map[string]*schema.OperationDefinitionParameter{}
	for i := range definition.Parameter {
		param := &definition.Parameter[i]
		if !param.In() {
			continue
		}
		declared[param.Name] = param
		if param.Min > 0 {
			if _, ok := c.Parameters[param.Name]; !ok {
				return fmt.Errorf("missing required parameter %q", param.Name)
			}
		}
	}
	for name, value := range c.Parameters {
		param, ok := declared[name]
		if !ok {
			return fmt.Errorf("undeclared parameter %q", name)
		}
		if err := checkParameterShape(param, value); err != nil {
			return err
		}
	}
	return nil
}

func checkParameterShape(param *schema.OperationDefinitionParameter, value any) error {
	switch param.Type {
	case "integer", "positiveInt", "unsignedInt":
		switch v := value.(type) {
		case int, int32, int64:
		case float64:
			if v != float64(int64(v)) {
				return fmt.Errorf("parameter %q must be an integer", param.Name)
			}
		default:
			return fmt.Errorf("parameter %q must be an integer", param.Name)
		}
	case "boolean":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("parameter %q must be a boolean", param.Name)
		}
	case "decimal":
		switch value.(type) {
		case int, int32, int64, float32, float64:
		default:
			return fmt.Errorf("parameter %q must be a number", param.Name)
		}
	default:
		// string-shaped primitives: string, date, dateTime, uri, code, ...
		if _, ok := value.(string); !ok {
			return fmt.Errorf("parameter %q must be a string", param.Name)
		}
	}
	return nil
}

// path builds the request path for the call: $code at system level,
// Type/$code at type level, Type/id/$code at instance level, with
// parameters passed on the query string.
func (c *OperationCall) path(definition *schema.OperationDefinition) string {
	code := definition.Code
	if code == "" {
		code = c.Name
	}
	var path string
	switch {
	case c.InstanceID != "":
		path = c.ResourceType + "/" + c.InstanceID + "/$" + code
	case c.ResourceType != "":
		path = c.ResourceType + "/$" + code
	default:
		path = "$" + code
	}
	if len(c.Parameters) == 0 {
		return path
	}
	query := url.Values{}
	for name, value := range c.Parameters {
		query.Set(name, fmt.Sprintf("%v", value))
	}
	return path + "?" + query.Encode()
}
