package modifier

import (
	"log"

	"github.com/ningg/checkstyle/pkg/checks"
	"github.com/ningg/checkstyle/pkg/javast"
)

// InterfaceMemberImpliedModifierName is the registry name of the check.
const InterfaceMemberImpliedModifierName = "InterfaceMemberImpliedModifier"

// MsgInterfaceImpliedModifier is the message key for implied modifiers on
// interface members.
const MsgInterfaceImpliedModifier = "interface.implied.modifier"

// Configuration property names of InterfaceMemberImpliedModifier.
const (
	PropEnforcePublicOnField    = "enforcePublicOnField"
	PropEnforceStaticOnField    = "enforceStaticOnField"
	PropEnforceFinalOnField     = "enforceFinalOnField"
	PropEnforcePublicOnMethod   = "enforcePublicOnMethod"
	PropEnforceAbstractOnMethod = "enforceAbstractOnMethod"
	PropEnforcePublicOnNested   = "enforcePublicOnNested"
	PropEnforceStaticOnNested   = "enforceStaticOnNested"
)

const (
	publicKeyword   = "public"
	finalKeyword    = "final"
	abstractKeyword = "abstract"
)

// InterfaceMemberImpliedModifier reports interface members that rely on the
// modifiers the language implies: fields are public static final, methods
// without a body are public abstract, nested types are public static. Seven
// independent flags gate the individual modifier checks; all default to on.
//
// Only direct interface members are inspected. Members of classes nested in
// an interface follow class rules and are left to ClassMemberImpliedModifier.
type InterfaceMemberImpliedModifier struct {
	enforcePublicOnField    bool
	enforceStaticOnField    bool
	enforceFinalOnField     bool
	enforcePublicOnMethod   bool
	enforceAbstractOnMethod bool
	enforcePublicOnNested   bool
	enforceStaticOnNested   bool
}

// NewInterfaceMemberImpliedModifier creates the check with every flag
// enabled.
func NewInterfaceMemberImpliedModifier() *InterfaceMemberImpliedModifier {
	return &InterfaceMemberImpliedModifier{
		enforcePublicOnField:    true,
		enforceStaticOnField:    true,
		enforceFinalOnField:     true,
		enforcePublicOnMethod:   true,
		enforceAbstractOnMethod: true,
		enforcePublicOnNested:   true,
		enforceStaticOnNested:   true,
	}
}

// Name returns the registry name of the check.
func (c *InterfaceMemberImpliedModifier) Name() string {
	return InterfaceMemberImpliedModifierName
}

// Description returns a human-readable description of the check.
func (c *InterfaceMemberImpliedModifier) Description() string {
	return "Checks for implied modifiers on interface fields, methods and nested types."
}

// DefaultKinds returns the kinds visited by default.
func (c *InterfaceMemberImpliedModifier) DefaultKinds() javast.KindSet {
	return c.AcceptableKinds()
}

// RequiredKinds returns the empty set: the check can run on any subset of
// its acceptable kinds.
func (c *InterfaceMemberImpliedModifier) RequiredKinds() javast.KindSet {
	return javast.KindSet(0)
}

// AcceptableKinds returns every kind the check may be subscribed to.
func (c *InterfaceMemberImpliedModifier) AcceptableKinds() javast.KindSet {
	return javast.NewKindSet(
		javast.KindFieldDecl,
		javast.KindConstantDecl,
		javast.KindMethodDecl,
		javast.KindClassDecl,
		javast.KindInterfaceDecl,
		javast.KindEnumDecl,
	)
}

// Properties returns the configurable properties of the check.
func (c *InterfaceMemberImpliedModifier) Properties() []checks.Property {
	return []checks.Property{
		{Name: PropEnforcePublicOnField, Description: "Enforce that interface fields write public explicitly.", Type: checks.BoolProperty, Default: true},
		{Name: PropEnforceStaticOnField, Description: "Enforce that interface fields write static explicitly.", Type: checks.BoolProperty, Default: true},
		{Name: PropEnforceFinalOnField, Description: "Enforce that interface fields write final explicitly.", Type: checks.BoolProperty, Default: true},
		{Name: PropEnforcePublicOnMethod, Description: "Enforce that interface methods write public explicitly.", Type: checks.BoolProperty, Default: true},
		{Name: PropEnforceAbstractOnMethod, Description: "Enforce that abstract interface methods write abstract explicitly.", Type: checks.BoolProperty, Default: true},
		{Name: PropEnforcePublicOnNested, Description: "Enforce that nested types in interfaces write public explicitly.", Type: checks.BoolProperty, Default: true},
		{Name: PropEnforceStaticOnNested, Description: "Enforce that nested types in interfaces write static explicitly.", Type: checks.BoolProperty, Default: true},
	}
}

// Configure applies configuration properties.
func (c *InterfaceMemberImpliedModifier) Configure(props map[string]any) error {
	err := checks.ValidatePropertyNames(props,
		PropEnforcePublicOnField, PropEnforceStaticOnField, PropEnforceFinalOnField,
		PropEnforcePublicOnMethod, PropEnforceAbstractOnMethod,
		PropEnforcePublicOnNested, PropEnforceStaticOnNested)
	if err != nil {
		return err
	}

	flags := []struct {
		name   string
		target *bool
	}{
		{PropEnforcePublicOnField, &c.enforcePublicOnField},
		{PropEnforceStaticOnField, &c.enforceStaticOnField},
		{PropEnforceFinalOnField, &c.enforceFinalOnField},
		{PropEnforcePublicOnMethod, &c.enforcePublicOnMethod},
		{PropEnforceAbstractOnMethod, &c.enforceAbstractOnMethod},
		{PropEnforcePublicOnNested, &c.enforcePublicOnNested},
		{PropEnforceStaticOnNested, &c.enforceStaticOnNested},
	}

	for _, flag := range flags {
		value, present, err := checks.BoolValue(props, flag.name)
		if err != nil {
			return err
		}

		if present {
			*flag.target = value
		}
	}

	return nil
}

// Visit reports the member's missing implied modifiers when the node is a
// direct interface member.
func (c *InterfaceMemberImpliedModifier) Visit(n *javast.Node, r checks.Reporter) {
	if !isInterfaceMember(n) {
		return
	}

	switch n.Kind {
	case javast.KindFieldDecl, javast.KindConstantDecl:
		c.visitField(n, r)
	case javast.KindMethodDecl:
		c.visitMethod(n, r)
	case javast.KindClassDecl, javast.KindInterfaceDecl, javast.KindEnumDecl:
		c.visitNestedType(n, r)
	default:
		log.Panicf("InterfaceMemberImpliedModifier: unexpected node %s", n.Dump())
	}
}

func (c *InterfaceMemberImpliedModifier) visitField(n *javast.Node, r checks.Reporter) {
	mods := n.Modifiers()

	if c.enforcePublicOnField && !mods.Has(javast.ModPublic) {
		report(r, n, MsgInterfaceImpliedModifier, publicKeyword)
	}

	if c.enforceStaticOnField && !mods.Has(javast.ModStatic) {
		report(r, n, MsgInterfaceImpliedModifier, staticKeyword)
	}

	if c.enforceFinalOnField && !mods.Has(javast.ModFinal) {
		report(r, n, MsgInterfaceImpliedModifier, finalKeyword)
	}
}

func (c *InterfaceMemberImpliedModifier) visitMethod(n *javast.Node, r checks.Reporter) {
	mods := n.Modifiers()

	if c.enforcePublicOnMethod && !mods.Has(javast.ModPublic) && !mods.Has(javast.ModPrivate) {
		report(r, n, MsgInterfaceImpliedModifier, publicKeyword)
	}

	if c.enforceAbstractOnMethod &&
		!mods.Has(javast.ModAbstract) && !mods.Has(javast.ModDefault) &&
		!mods.Has(javast.ModStatic) && !mods.Has(javast.ModPrivate) {
		report(r, n, MsgInterfaceImpliedModifier, abstractKeyword)
	}
}

func (c *InterfaceMemberImpliedModifier) visitNestedType(n *javast.Node, r checks.Reporter) {
	mods := n.Modifiers()

	if c.enforcePublicOnNested && !mods.Has(javast.ModPublic) {
		report(r, n, MsgInterfaceImpliedModifier, publicKeyword)
	}

	if c.enforceStaticOnNested && !mods.Has(javast.ModStatic) {
		report(r, n, MsgInterfaceImpliedModifier, staticKeyword)
	}
}

// isInterfaceMember reports whether n is a direct member of an interface
// body. Annotation type bodies have their own kind and stay excluded.
func isInterfaceMember(n *javast.Node) bool {
	body := n.Parent()

	return body != nil &&
		body.Kind == javast.KindInterfaceBody &&
		body.Parent() != nil &&
		body.Parent().Kind == javast.KindInterfaceDecl
}

func report(r checks.Reporter, n *javast.Node, key, keyword string) {
	r.Report(checks.Violation{
		Pos:  n.Pos,
		Key:  key,
		Args: []any{keyword},
	})
}
