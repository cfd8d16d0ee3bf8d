package modifier

import (
	"log"

	"github.com/ningg/checkstyle/pkg/checks"
	"github.com/ningg/checkstyle/pkg/javast"
)

// ModifierOrderName is the registry name of the check.
const ModifierOrderName = "ModifierOrder"

// Message keys of ModifierOrder.
const (
	MsgModifierOrder   = "mod.order"
	MsgAnnotationOrder = "annotation.order"
)

// ModifierOrder reports modifier lists that deviate from the order the JLS
// suggests: annotations first, then the keywords public, protected, private,
// abstract, default, static, sealed, non-sealed, final, transient, volatile,
// synchronized, native, strictfp. At most one violation is reported per
// modifier list, at the first offending entry.
type ModifierOrder struct{}

// NewModifierOrder creates the check. It has no configuration.
func NewModifierOrder() *ModifierOrder {
	return &ModifierOrder{}
}

// Name returns the registry name of the check.
func (c *ModifierOrder) Name() string {
	return ModifierOrderName
}

// Description returns a human-readable description of the check.
func (c *ModifierOrder) Description() string {
	return "Checks that modifiers follow the order suggested by the Java Language Specification."
}

// DefaultKinds returns the kinds visited by default.
func (c *ModifierOrder) DefaultKinds() javast.KindSet {
	return c.AcceptableKinds()
}

// RequiredKinds returns the kinds the check cannot run without.
func (c *ModifierOrder) RequiredKinds() javast.KindSet {
	return c.AcceptableKinds()
}

// AcceptableKinds returns every kind the check may be subscribed to.
func (c *ModifierOrder) AcceptableKinds() javast.KindSet {
	return javast.NewKindSet(javast.KindModifiers)
}

// Properties returns the configurable properties of the check.
func (c *ModifierOrder) Properties() []checks.Property {
	return nil
}

// Configure applies configuration properties; the check has none.
func (c *ModifierOrder) Configure(props map[string]any) error {
	return checks.ValidatePropertyNames(props)
}

// Visit walks one modifier list in source order. Leading annotations are
// fine; an annotation after a keyword breaks annotation order, and a keyword
// ranked earlier than its predecessor breaks modifier order.
func (c *ModifierOrder) Visit(n *javast.Node, r checks.Reporter) {
	if n.Kind != javast.KindModifiers {
		log.Panicf("ModifierOrder: unexpected node %s", n.Dump())
	}

	entries := n.Children()

	idx := 0
	for idx < len(entries) && entries[idx].Kind == javast.KindAnnotation {
		idx++
	}

	rank := 0

	for ; idx < len(entries); idx++ {
		entry := entries[idx]

		if entry.Kind == javast.KindAnnotation {
			r.Report(checks.Violation{
				Pos:  entry.Pos,
				Key:  MsgAnnotationOrder,
				Args: []any{entry.Token},
			})

			return
		}

		mod, ok := javast.ModifierFromToken(entry.Token)
		if !ok {
			continue
		}

		if mod.Rank() < rank {
			r.Report(checks.Violation{
				Pos:  entry.Pos,
				Key:  MsgModifierOrder,
				Args: []any{entry.Token},
			})

			return
		}

		rank = mod.Rank()
	}
}
