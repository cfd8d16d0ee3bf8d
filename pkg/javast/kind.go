// Package javast provides a typed Java syntax tree built on Tree-sitter.
// It models the declaration shapes style checks consume: type declarations,
// their bodies and members, modifier lists, and positions. Grammar constructs
// outside that surface collapse into KindOther but remain in the tree, so
// parent chains stay faithful to the source.
package javast

// Kind identifies the shape of a syntax tree node.
type Kind uint8

// Node kinds. The set is closed: checks switch over it and treat an
// unexpected kind as a driver contract breach.
const (
	KindOther Kind = iota
	KindCompilationUnit
	KindPackageDecl
	KindImportDecl
	KindClassDecl
	KindInterfaceDecl
	KindEnumDecl
	KindAnnotationDecl
	KindRecordDecl
	KindClassBody
	KindInterfaceBody
	KindEnumBody
	KindAnnotationBody
	KindEnumConstant
	KindFieldDecl
	KindConstantDecl
	KindMethodDecl
	KindConstructorDecl
	KindStaticInit
	KindInstanceInit
	KindModifiers
	KindModifier
	KindAnnotation
	KindObjectCreation
	KindBlock
	KindIdentifier

	kindCount
)

var kindNames = [kindCount]string{
	KindOther:           "Other",
	KindCompilationUnit: "CompilationUnit",
	KindPackageDecl:     "PackageDecl",
	KindImportDecl:      "ImportDecl",
	KindClassDecl:       "ClassDecl",
	KindInterfaceDecl:   "InterfaceDecl",
	KindEnumDecl:        "EnumDecl",
	KindAnnotationDecl:  "AnnotationDecl",
	KindRecordDecl:      "RecordDecl",
	KindClassBody:       "ClassBody",
	KindInterfaceBody:   "InterfaceBody",
	KindEnumBody:        "EnumBody",
	KindAnnotationBody:  "AnnotationBody",
	KindEnumConstant:    "EnumConstant",
	KindFieldDecl:       "FieldDecl",
	KindConstantDecl:    "ConstantDecl",
	KindMethodDecl:      "MethodDecl",
	KindConstructorDecl: "ConstructorDecl",
	KindStaticInit:      "StaticInit",
	KindInstanceInit:    "InstanceInit",
	KindModifiers:       "Modifiers",
	KindModifier:        "Modifier",
	KindAnnotation:      "Annotation",
	KindObjectCreation:  "ObjectCreation",
	KindBlock:           "Block",
	KindIdentifier:      "Identifier",
}

// String returns the stable name of the kind.
func (k Kind) String() string {
	if k >= kindCount {
		return "Unknown"
	}

	return kindNames[k]
}

// KindFromString resolves a kind by its stable name. Returns KindOther and
// false for names outside the set.
func KindFromString(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}

	return KindOther, false
}

// grammarKinds maps Tree-sitter Java grammar node types onto kinds.
// Unlisted grammar types become KindOther.
var grammarKinds = map[string]Kind{
	"program":                         KindCompilationUnit,
	"package_declaration":             KindPackageDecl,
	"import_declaration":              KindImportDecl,
	"class_declaration":               KindClassDecl,
	"interface_declaration":           KindInterfaceDecl,
	"enum_declaration":                KindEnumDecl,
	"annotation_type_declaration":     KindAnnotationDecl,
	"record_declaration":              KindRecordDecl,
	"class_body":                      KindClassBody,
	"interface_body":                  KindInterfaceBody,
	"enum_body":                       KindEnumBody,
	"enum_body_declarations":          KindEnumBody,
	"annotation_type_body":            KindAnnotationBody,
	"enum_constant":                   KindEnumConstant,
	"field_declaration":               KindFieldDecl,
	"constant_declaration":            KindConstantDecl,
	"method_declaration":              KindMethodDecl,
	"constructor_declaration":         KindConstructorDecl,
	"compact_constructor_declaration": KindConstructorDecl,
	"static_initializer":              KindStaticInit,
	"modifiers":                       KindModifiers,
	"annotation":                      KindAnnotation,
	"marker_annotation":               KindAnnotation,
	"object_creation_expression":      KindObjectCreation,
	"block":                           KindBlock,
	"identifier":                      KindIdentifier,
}

// kindFromGrammar resolves a grammar node type to a Kind.
func kindFromGrammar(grammarType string) Kind {
	if k, ok := grammarKinds[grammarType]; ok {
		return k
	}

	return KindOther
}
