package nodes

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Inputs are the argument values a host passes to a node, keyed by input
// name. Values may come straight from a JSON decoder.
type Inputs map[string]any

// Outputs are the named return values of a node.
type Outputs map[string]any

// resolved holds inputs after defaults and coercion.
type resolved struct {
	strings map[string]string
	bools   map[string]bool
	ints    map[string]int
}

func resolve(schema InputSchema, in Inputs) (resolved, error) {
	r := resolved{
		strings: make(map[string]string),
		bools:   make(map[string]bool),
		ints:    make(map[string]int),
	}

	for name := range in {
		if _, ok := schema.Lookup(name); !ok {
			return r, fmt.Errorf("%w: unknown input %q", ErrInvalidInput, name)
		}
	}

	for _, decl := range schema.Required {
		raw, ok := in[decl.Name]
		if !ok || raw == nil {
			raw = decl.Default
		}

		switch decl.Type {
		case TypeString, TypeChoice:
			s, err := asString(raw)
			if err != nil {
				return r, fmt.Errorf("%w: %s: %v", ErrInvalidInput, decl.Name, err)
			}
			r.strings[decl.Name] = s
		case TypeBoolean:
			b, err := asBool(raw)
			if err != nil {
				return r, fmt.Errorf("%w: %s: %v", ErrInvalidInput, decl.Name, err)
			}
			r.bools[decl.Name] = b
		case TypeInt:
			n, err := asInt(raw)
			if err != nil {
				return r, fmt.Errorf("%w: %s: %v", ErrInvalidInput, decl.Name, err)
			}
			if decl.Min != nil && n < *decl.Min {
				return r, fmt.Errorf("%w: %s must be at least %d, got %d", ErrInvalidInput, decl.Name, *decl.Min, n)
			}
			r.ints[decl.Name] = n
		}
	}
	return r, nil
}

func asString(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	default:
		return "", fmt.Errorf("expected string, got %T", v)
	}
}

func asBool(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return false, fmt.Errorf("expected boolean, got %q", t)
		}
		return b, nil
	default:
		return false, fmt.Errorf("expected boolean, got %T", v)
	}
}

func asInt(v any) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		if t != math.Trunc(t) || math.IsInf(t, 0) {
			return 0, fmt.Errorf("expected integer, got %v", t)
		}
		return int(t), nil
	case json.Number:
		n, err := strconv.Atoi(t.String())
		if err != nil {
			return 0, fmt.Errorf("expected integer, got %q", t)
		}
		return n, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, fmt.Errorf("expected integer, got %q", t)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}
