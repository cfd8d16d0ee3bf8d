// Package modifier contains checks on Java declaration modifiers: implied
// modifiers that the language inserts silently and the canonical ordering of
// written modifiers.
package modifier

import (
	"log"

	"github.com/ningg/checkstyle/pkg/checks"
	"github.com/ningg/checkstyle/pkg/javast"
	"github.com/ningg/checkstyle/pkg/javast/scope"
)

// ClassMemberImpliedModifierName is the registry name of the check.
const ClassMemberImpliedModifierName = "ClassMemberImpliedModifier"

// MsgClassImpliedModifier is the message key for implied modifiers on class
// and enum members.
const MsgClassImpliedModifier = "class.implied.modifier"

// Configuration property names of ClassMemberImpliedModifier.
const (
	PropEnforceStaticOnNestedEnum      = "enforceStaticOnNestedEnum"
	PropEnforceStaticOnNestedInterface = "enforceStaticOnNestedInterface"
)

const staticKeyword = "static"

// ClassMemberImpliedModifier reports nested interfaces and enums declared
// inside a class or enum body without an explicit static modifier. Both are
// implicitly static; code that relies on the implicit form reads differently
// from what it compiles to, so the check asks for the keyword.
//
// Each flag gates one declaration kind and they act independently. The check
// holds no per-run state: visiting a node inspects only the node, its parent
// chain and the configuration.
type ClassMemberImpliedModifier struct {
	enforceStaticOnNestedEnum      bool
	enforceStaticOnNestedInterface bool
}

// NewClassMemberImpliedModifier creates the check with both flags enabled.
func NewClassMemberImpliedModifier() *ClassMemberImpliedModifier {
	return &ClassMemberImpliedModifier{
		enforceStaticOnNestedEnum:      true,
		enforceStaticOnNestedInterface: true,
	}
}

// Name returns the registry name of the check.
func (c *ClassMemberImpliedModifier) Name() string {
	return ClassMemberImpliedModifierName
}

// Description returns a human-readable description of the check.
func (c *ClassMemberImpliedModifier) Description() string {
	return "Checks for implied modifiers on nested interfaces and enums in classes and enums."
}

// DefaultKinds returns the kinds visited by default.
func (c *ClassMemberImpliedModifier) DefaultKinds() javast.KindSet {
	return c.AcceptableKinds()
}

// RequiredKinds returns the kinds the check cannot run without.
func (c *ClassMemberImpliedModifier) RequiredKinds() javast.KindSet {
	return c.AcceptableKinds()
}

// AcceptableKinds returns every kind the check may be subscribed to.
func (c *ClassMemberImpliedModifier) AcceptableKinds() javast.KindSet {
	return javast.NewKindSet(javast.KindInterfaceDecl, javast.KindEnumDecl)
}

// SetEnforceStaticOnNestedEnum controls whether nested enums must write
// static explicitly.
func (c *ClassMemberImpliedModifier) SetEnforceStaticOnNestedEnum(enforce bool) {
	c.enforceStaticOnNestedEnum = enforce
}

// SetEnforceStaticOnNestedInterface controls whether nested interfaces must
// write static explicitly.
func (c *ClassMemberImpliedModifier) SetEnforceStaticOnNestedInterface(enforce bool) {
	c.enforceStaticOnNestedInterface = enforce
}

// Properties returns the configurable properties of the check.
func (c *ClassMemberImpliedModifier) Properties() []checks.Property {
	return []checks.Property{
		{
			Name:        PropEnforceStaticOnNestedEnum,
			Description: "Enforce that enums declared in a class or enum body write static explicitly.",
			Type:        checks.BoolProperty,
			Default:     true,
		},
		{
			Name:        PropEnforceStaticOnNestedInterface,
			Description: "Enforce that interfaces declared in a class or enum body write static explicitly.",
			Type:        checks.BoolProperty,
			Default:     true,
		},
	}
}

// Configure applies configuration properties. It runs once, before the
// analysis; the flags are read-only afterwards.
func (c *ClassMemberImpliedModifier) Configure(props map[string]any) error {
	err := checks.ValidatePropertyNames(props,
		PropEnforceStaticOnNestedEnum, PropEnforceStaticOnNestedInterface)
	if err != nil {
		return err
	}

	value, present, err := checks.BoolValue(props, PropEnforceStaticOnNestedEnum)
	if err != nil {
		return err
	}

	if present {
		c.enforceStaticOnNestedEnum = value
	}

	value, present, err = checks.BoolValue(props, PropEnforceStaticOnNestedInterface)
	if err != nil {
		return err
	}

	if present {
		c.enforceStaticOnNestedInterface = value
	}

	return nil
}

// Visit reports the node when it is a nested interface or enum whose
// modifier list lacks static. Nodes outside class and enum bodies are left
// alone. A kind outside the acceptable set means the driver broke the
// dispatch contract.
func (c *ClassMemberImpliedModifier) Visit(n *javast.Node, r checks.Reporter) {
	if !scope.InClassBlock(n) && !scope.InEnumBlock(n) {
		return
	}

	switch n.Kind {
	case javast.KindEnumDecl:
		if c.enforceStaticOnNestedEnum && !n.Modifiers().Has(javast.ModStatic) {
			r.Report(checks.Violation{
				Pos:  n.Pos,
				Key:  MsgClassImpliedModifier,
				Args: []any{staticKeyword},
			})
		}
	case javast.KindInterfaceDecl:
		if c.enforceStaticOnNestedInterface && !n.Modifiers().Has(javast.ModStatic) {
			r.Report(checks.Violation{
				Pos:  n.Pos,
				Key:  MsgClassImpliedModifier,
				Args: []any{staticKeyword},
			})
		}
	default:
		log.Panicf("ClassMemberImpliedModifier: unexpected node %s", n.Dump())
	}
}
