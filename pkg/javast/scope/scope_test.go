package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ningg/checkstyle/pkg/javast"
)

// chain builds a straight parent chain of the given kinds and returns the
// deepest node.
func chain(kinds ...javast.Kind) *javast.Node {
	current := &javast.Node{Kind: kinds[0]}

	for _, k := range kinds[1:] {
		next := &javast.Node{Kind: k}
		current.AddChild(next)
		current = next
	}

	return current
}

// One combined table covers both declaration kinds across nesting scopes.
func TestScopeClassification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		node    *javast.Node
		inClass bool
		inEnum  bool
	}{
		{
			name:    "interface nested in class",
			node:    chain(javast.KindCompilationUnit, javast.KindClassDecl, javast.KindClassBody, javast.KindInterfaceDecl),
			inClass: true,
		},
		{
			name:    "enum nested in class",
			node:    chain(javast.KindCompilationUnit, javast.KindClassDecl, javast.KindClassBody, javast.KindEnumDecl),
			inClass: true,
		},
		{
			name:   "interface nested in enum",
			node:   chain(javast.KindCompilationUnit, javast.KindEnumDecl, javast.KindEnumBody, javast.KindInterfaceDecl),
			inEnum: true,
		},
		{
			name:   "enum nested in enum",
			node:   chain(javast.KindCompilationUnit, javast.KindEnumDecl, javast.KindEnumBody, javast.KindEnumDecl),
			inEnum: true,
		},
		{
			name: "top-level interface",
			node: chain(javast.KindCompilationUnit, javast.KindInterfaceDecl),
		},
		{
			name: "top-level enum",
			node: chain(javast.KindCompilationUnit, javast.KindEnumDecl),
		},
		{
			name: "enum nested in interface",
			node: chain(javast.KindCompilationUnit, javast.KindInterfaceDecl, javast.KindInterfaceBody, javast.KindEnumDecl),
		},
		{
			name: "interface nested in record",
			node: chain(javast.KindCompilationUnit, javast.KindRecordDecl, javast.KindClassBody, javast.KindInterfaceDecl),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.inClass, InClassBlock(tc.node), "InClassBlock")
			assert.Equal(t, tc.inEnum, InEnumBlock(tc.node), "InEnumBlock")
		})
	}
}

func TestScopeFirstBoundaryWins(t *testing.T) {
	t.Parallel()

	// interface -> class body -> class -> enum body -> enum: the class is the
	// first boundary, so the enum above it must not count.
	node := chain(
		javast.KindCompilationUnit,
		javast.KindEnumDecl, javast.KindEnumBody,
		javast.KindClassDecl, javast.KindClassBody,
		javast.KindInterfaceDecl,
	)

	assert.True(t, InClassBlock(node))
	assert.False(t, InEnumBlock(node))
}

func TestScopeAnonymousClassIsBoundary(t *testing.T) {
	t.Parallel()

	// An enum inside an anonymous class body: the object creation terminates
	// the walk before the enclosing class is reached.
	node := chain(
		javast.KindCompilationUnit,
		javast.KindClassDecl, javast.KindClassBody,
		javast.KindFieldDecl,
		javast.KindObjectCreation, javast.KindClassBody,
		javast.KindEnumDecl,
	)

	assert.False(t, InClassBlock(node))
	assert.False(t, InEnumBlock(node))
}

func TestScopeNonBoundaryAncestorsSkipped(t *testing.T) {
	t.Parallel()

	// A local enum inside a method body still sits in the class block: the
	// method declaration and blocks are not boundaries.
	node := chain(
		javast.KindCompilationUnit,
		javast.KindClassDecl, javast.KindClassBody,
		javast.KindMethodDecl, javast.KindBlock,
		javast.KindEnumDecl,
	)

	assert.True(t, InClassBlock(node))
}

func TestScopeInterfaceAndAnnotationBlocks(t *testing.T) {
	t.Parallel()

	inInterface := chain(javast.KindCompilationUnit, javast.KindInterfaceDecl, javast.KindInterfaceBody, javast.KindMethodDecl)
	assert.True(t, InInterfaceBlock(inInterface))
	assert.False(t, InClassBlock(inInterface))

	inAnnotation := chain(javast.KindCompilationUnit, javast.KindAnnotationDecl, javast.KindAnnotationBody, javast.KindMethodDecl)
	assert.True(t, InAnnotationBlock(inAnnotation))
	assert.False(t, InInterfaceBlock(inAnnotation))
}

func TestScopeRecordBlock(t *testing.T) {
	t.Parallel()

	node := chain(javast.KindCompilationUnit, javast.KindRecordDecl, javast.KindClassBody, javast.KindEnumDecl)

	assert.True(t, InRecordBlock(node))
	assert.True(t, InTypeBlock(node))
	assert.False(t, InClassBlock(node))
}

func TestScopeRootAndNil(t *testing.T) {
	t.Parallel()

	root := &javast.Node{Kind: javast.KindCompilationUnit}

	assert.False(t, InClassBlock(root))
	assert.False(t, InEnumBlock(root))
	assert.False(t, InTypeBlock(root))
	assert.False(t, InClassBlock(nil))
}

func TestScopeInCodeBlock(t *testing.T) {
	t.Parallel()

	inMethod := chain(
		javast.KindCompilationUnit,
		javast.KindClassDecl, javast.KindClassBody,
		javast.KindMethodDecl, javast.KindBlock,
		javast.KindClassDecl,
	)
	assert.True(t, InCodeBlock(inMethod))

	inInit := chain(
		javast.KindCompilationUnit,
		javast.KindClassDecl, javast.KindClassBody,
		javast.KindInstanceInit,
		javast.KindClassDecl,
	)
	assert.True(t, InCodeBlock(inInit))

	member := chain(javast.KindCompilationUnit, javast.KindClassDecl, javast.KindClassBody, javast.KindFieldDecl)
	assert.False(t, InCodeBlock(member))
}
