package javast

// Modifier is a Java declaration modifier keyword.
type Modifier uint8

// Modifier keywords, in canonical declaration order.
const (
	ModPublic Modifier = iota
	ModProtected
	ModPrivate
	ModAbstract
	ModDefault
	ModStatic
	ModSealed
	ModNonSealed
	ModFinal
	ModTransient
	ModVolatile
	ModSynchronized
	ModNative
	ModStrictfp

	modifierCount
)

var modifierNames = [modifierCount]string{
	ModPublic:       "public",
	ModProtected:    "protected",
	ModPrivate:      "private",
	ModAbstract:     "abstract",
	ModDefault:      "default",
	ModStatic:       "static",
	ModSealed:       "sealed",
	ModNonSealed:    "non-sealed",
	ModFinal:        "final",
	ModTransient:    "transient",
	ModVolatile:     "volatile",
	ModSynchronized: "synchronized",
	ModNative:       "native",
	ModStrictfp:     "strictfp",
}

// String returns the keyword as it appears in source.
func (m Modifier) String() string {
	if m >= modifierCount {
		return "unknown"
	}

	return modifierNames[m]
}

// Rank returns the modifier's index in the canonical declaration order.
func (m Modifier) Rank() int {
	return int(m)
}

// ModifierFromToken resolves a source token to a modifier keyword.
func ModifierFromToken(token string) (Modifier, bool) {
	for m, name := range modifierNames {
		if name == token {
			return Modifier(m), true
		}
	}

	return 0, false
}

// ModifierSet is a read view over a declaration's modifier list. The zero
// value is valid and describes a declaration without any written modifiers.
type ModifierSet struct {
	node *Node
}

// Has reports whether the modifier keyword is written on the declaration.
func (s ModifierSet) Has(m Modifier) bool {
	if s.node == nil {
		return false
	}

	for _, child := range s.node.children {
		if child.Kind == KindModifier && child.Token == m.String() {
			return true
		}
	}

	return false
}

// List returns the written modifier keywords in source order.
func (s ModifierSet) List() []Modifier {
	if s.node == nil {
		return nil
	}

	var mods []Modifier

	for _, child := range s.node.children {
		if child.Kind != KindModifier {
			continue
		}

		if m, ok := ModifierFromToken(child.Token); ok {
			mods = append(mods, m)
		}
	}

	return mods
}

// Annotations returns the annotation nodes written among the modifiers, in
// source order.
func (s ModifierSet) Annotations() []*Node {
	if s.node == nil {
		return nil
	}

	var anns []*Node

	for _, child := range s.node.children {
		if child.Kind == KindAnnotation {
			anns = append(anns, child)
		}
	}

	return anns
}

// Entries returns every modifier-list entry (keywords and annotations) in
// source order.
func (s ModifierSet) Entries() []*Node {
	if s.node == nil {
		return nil
	}

	return s.node.Children()
}

// Empty reports whether the declaration has no written modifiers and no
// annotations.
func (s ModifierSet) Empty() bool {
	return s.node == nil || len(s.node.children) == 0
}
