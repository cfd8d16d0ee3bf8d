// Package checks defines the style check contract and the machinery that
// drives checks over a parsed tree: the walker, the violation sink, the
// message bundle, and the check registry.
package checks

import (
	"errors"
	"fmt"
	"log"

	"github.com/ningg/checkstyle/pkg/javast"
)

// Sentinel errors for check configuration and registry lookups.
var (
	ErrUnknownCheck    = errors.New("unknown check")
	ErrDuplicateCheck  = errors.New("duplicate check name")
	ErrUnknownProperty = errors.New("unknown check property")
	ErrInvalidProperty = errors.New("invalid check property value")
	ErrKindsNotInRange = errors.New("configured kinds outside acceptable set")
	ErrMissingRequired = errors.New("configured kinds miss required set")
)

// PropertyType represents the possible types of a check property value.
type PropertyType int

const (
	// BoolProperty reflects the boolean value type.
	BoolProperty PropertyType = iota
	// IntProperty reflects the integer value type.
	IntProperty
	// StringProperty reflects the string value type.
	StringProperty
)

// String returns the type name used in the rules listing.
func (t PropertyType) String() string {
	switch t {
	case BoolProperty:
		return "bool"
	case IntProperty:
		return "int"
	case StringProperty:
		return "string"
	}

	log.Panicf("Invalid PropertyType value %d", int(t))

	return ""
}

// Property describes one configurable knob of a check.
type Property struct {
	// Default is the value used when configuration does not set the property.
	Default any
	// Name identifies the property in configuration maps.
	Name string
	// Description is the help text shown in the rules listing.
	Description string
	// Type specifies the kind of the property's value.
	Type PropertyType
}

// Check inspects nodes of its declared kinds and reports violations.
//
// A check declares three kind sets: DefaultKinds is what runs when the
// configuration does not narrow the check, RequiredKinds must always be
// included, and AcceptableKinds bounds any narrowing. The walker validates
// required ⊆ configured ⊆ acceptable before a run and then dispatches only
// kinds the check accepted, so Visit may treat any other kind as a driver
// contract breach.
//
// Configuration happens once, before the run; Visit must not mutate the
// check. Violations flow exclusively through the Reporter.
type Check interface {
	Name() string
	Description() string
	DefaultKinds() javast.KindSet
	RequiredKinds() javast.KindSet
	AcceptableKinds() javast.KindSet
	Properties() []Property
	Configure(props map[string]any) error
	Visit(n *javast.Node, r Reporter)
}

// BoolValue extracts a boolean property value, tolerating nothing but bool.
func BoolValue(props map[string]any, name string) (value, present bool, err error) {
	raw, ok := props[name]
	if !ok {
		return false, false, nil
	}

	b, ok := raw.(bool)
	if !ok {
		return false, true, fmt.Errorf("%w: %s expects bool, got %T", ErrInvalidProperty, name, raw)
	}

	return b, true, nil
}

// ValidatePropertyNames rejects configuration keys outside the allowed set.
func ValidatePropertyNames(props map[string]any, allowed ...string) error {
	for name := range props {
		known := false

		for _, a := range allowed {
			if name == a {
				known = true

				break
			}
		}

		if !known {
			return fmt.Errorf("%w: %s", ErrUnknownProperty, name)
		}
	}

	return nil
}
