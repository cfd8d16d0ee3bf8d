// Package scope classifies where a declaration sits: directly inside a class
// body, an enum body, an interface body, and so on. Classification is a pure
// walk up the parent chain; no state is kept between calls.
package scope

import "github.com/ningg/checkstyle/pkg/javast"

// boundaryKinds are the ancestors that terminate a scope walk. The first
// boundary found decides the answer: an enum nested in a class is in the
// class block, but a class nested in that enum is in the enum block, not in
// the outer class block.
var boundaryKinds = javast.NewKindSet(
	javast.KindClassDecl,
	javast.KindInterfaceDecl,
	javast.KindEnumDecl,
	javast.KindAnnotationDecl,
	javast.KindRecordDecl,
	javast.KindObjectCreation,
)

// inBlockOf walks the parent chain of n until the first boundary ancestor or
// the root. It reports whether that boundary has the sought kind. Reaching
// the root without a boundary yields false, as does a nil node.
func inBlockOf(n *javast.Node, sought javast.Kind) bool {
	for parent := n.Parent(); parent != nil; parent = parent.Parent() {
		if parent.Kind == sought {
			return true
		}

		if boundaryKinds.Contains(parent.Kind) {
			return false
		}
	}

	return false
}

// InClassBlock reports whether n is declared inside a class body.
func InClassBlock(n *javast.Node) bool {
	return inBlockOf(n, javast.KindClassDecl)
}

// InEnumBlock reports whether n is declared inside an enum body.
func InEnumBlock(n *javast.Node) bool {
	return inBlockOf(n, javast.KindEnumDecl)
}

// InInterfaceBlock reports whether n is declared inside an interface body.
func InInterfaceBlock(n *javast.Node) bool {
	return inBlockOf(n, javast.KindInterfaceDecl)
}

// InAnnotationBlock reports whether n is declared inside an annotation type
// body.
func InAnnotationBlock(n *javast.Node) bool {
	return inBlockOf(n, javast.KindAnnotationDecl)
}

// InRecordBlock reports whether n is declared inside a record body.
func InRecordBlock(n *javast.Node) bool {
	return inBlockOf(n, javast.KindRecordDecl)
}

// InTypeBlock reports whether n is declared inside any type declaration
// body.
func InTypeBlock(n *javast.Node) bool {
	return InClassBlock(n) || InEnumBlock(n) || InInterfaceBlock(n) ||
		InAnnotationBlock(n) || InRecordBlock(n)
}

// InCodeBlock reports whether n sits inside executable code: a method or
// constructor body, an initializer block, or an anonymous class creation.
func InCodeBlock(n *javast.Node) bool {
	for parent := n.Parent(); parent != nil; parent = parent.Parent() {
		switch parent.Kind {
		case javast.KindMethodDecl,
			javast.KindConstructorDecl,
			javast.KindStaticInit,
			javast.KindInstanceInit,
			javast.KindObjectCreation:
			return true
		}
	}

	return false
}
