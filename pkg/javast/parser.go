package javast

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alexaandru/go-sitter-forest/java"
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/ningg/checkstyle/pkg/safeconv"
)

// Sentinel errors for parser operations.
var (
	ErrParse      = errors.New("java source has syntax errors")
	errNoRootNode = errors.New("parser returned no root node")
	errPoolType   = errors.New("unexpected parser pool entry type")
)

// javaLanguage is the Tree-sitter Java grammar, shared by all parsers.
var javaLanguage = sitter.NewLanguage(java.GetLanguage())

// Grammar node types skipped during conversion.
const (
	grammarLineComment  = "line_comment"
	grammarBlockComment = "block_comment"
	grammarError        = "ERROR"
)

// Parser turns Java source into a javast tree. It is safe for concurrent
// use; underlying Tree-sitter parsers are pooled per goroutine.
type Parser struct {
	pool sync.Pool
}

// NewParser creates a Parser for the Java grammar.
func NewParser() *Parser {
	parser := &Parser{}
	parser.pool = sync.Pool{
		New: func() any {
			tsParser := sitter.NewParser()
			tsParser.SetLanguage(javaLanguage)

			return tsParser
		},
	}

	return parser
}

// Parse parses the given source and returns the compilation unit root.
// Sources with syntax errors yield ErrParse wrapped with the position of the
// first error region.
func (p *Parser) Parse(ctx context.Context, src []byte) (*Node, error) {
	tsParser, ok := p.pool.Get().(*sitter.Parser)
	if !ok {
		return nil, errPoolType
	}

	defer p.pool.Put(tsParser)

	tree, err := tsParser.ParseString(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return nil, errNoRootNode
	}

	conv := &converter{src: src}

	node := conv.convert(root, nil)
	if conv.errPos != nil {
		return nil, fmt.Errorf("%w at %s", ErrParse, conv.errPos)
	}

	if node == nil {
		return nil, errNoRootNode
	}

	return node, nil
}

// converter builds the javast tree from the raw Tree-sitter tree. It records
// the first syntax error region it encounters; Tree-sitter keeps parsing past
// errors, so detection happens during the walk.
type converter struct {
	src    []byte
	errPos *Position
}

func (c *converter) convert(tsNode sitter.Node, parent *Node) *Node {
	grammarType := tsNode.Type()
	if grammarType == grammarError {
		c.recordError(tsNode)

		return nil
	}

	kind := kindFromGrammar(grammarType)
	if kind == KindBlock && parent != nil && isBodyKind(parent.Kind) {
		kind = KindInstanceInit
	}

	node := &Node{
		Kind: kind,
		Pos:  startPosition(tsNode),
		End:  endPosition(tsNode),
	}

	switch kind {
	case KindIdentifier:
		node.Token = c.text(tsNode)
	case KindModifiers:
		c.convertModifierEntries(tsNode, node)

		return node
	}

	for i := range tsNode.NamedChildCount() {
		child := tsNode.NamedChild(i)

		childType := child.Type()
		if childType == grammarLineComment || childType == grammarBlockComment {
			continue
		}

		if converted := c.convert(child, node); converted != nil {
			node.AddChild(converted)
		}
	}

	return node
}

// convertModifierEntries fills a modifiers node. Keyword tokens are anonymous
// in the grammar, so this walks all children, not just named ones; the named
// children are annotations.
func (c *converter) convertModifierEntries(tsNode sitter.Node, modifiers *Node) {
	for i := range tsNode.ChildCount() {
		child := tsNode.Child(i)

		if child.Type() == grammarError {
			c.recordError(child)

			continue
		}

		entry := &Node{
			Pos: startPosition(child),
			End: endPosition(child),
		}

		if child.IsNamed() {
			entry.Kind = KindAnnotation
			entry.Token = c.text(child)
		} else {
			entry.Kind = KindModifier
			entry.Token = c.text(child)
		}

		modifiers.AddChild(entry)
	}
}

func (c *converter) recordError(tsNode sitter.Node) {
	if c.errPos == nil {
		pos := startPosition(tsNode)
		c.errPos = &pos
	}
}

func (c *converter) text(tsNode sitter.Node) string {
	start := safeconv.MustUintToInt(tsNode.StartByte())
	end := safeconv.MustUintToInt(tsNode.EndByte())

	if end > len(c.src) {
		return ""
	}

	return string(c.src[start:end])
}

func startPosition(tsNode sitter.Node) Position {
	point := tsNode.StartPoint()

	return Position{
		Line: safeconv.MustUintToInt(point.Row) + 1,
		Col:  safeconv.MustUintToInt(point.Column) + 1,
	}
}

func endPosition(tsNode sitter.Node) Position {
	point := tsNode.EndPoint()

	return Position{
		Line: safeconv.MustUintToInt(point.Row) + 1,
		Col:  safeconv.MustUintToInt(point.Column) + 1,
	}
}

func isBodyKind(kind Kind) bool {
	switch kind {
	case KindClassBody, KindEnumBody, KindInterfaceBody, KindAnnotationBody:
		return true
	default:
		return false
	}
}
