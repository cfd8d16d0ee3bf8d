package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ningg/checkstyle/pkg/javast"
)

// filteredRootKind labels the synthetic root wrapping query matches.
const filteredRootKind = "filtered_results"

// parseNode is the JSON projection of a syntax tree node.
type parseNode struct {
	Kind     string      `json:"kind"`
	Token    string      `json:"token,omitempty"`
	Pos      string      `json:"pos,omitempty"`
	End      string      `json:"end,omitempty"`
	Children []parseNode `json:"children,omitempty"`
}

// handleParse processes java_parse tool calls.
func handleParse(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input ParseInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	err := validateCode(input.Code)
	if err != nil {
		return errorResult(err)
	}

	root, err := javast.NewParser().Parse(ctx, []byte(input.Code))
	if err != nil {
		return errorResult(fmt.Errorf("parse code: %w", err))
	}

	if input.Query != "" {
		kind, ok := javast.KindFromString(input.Query)
		if !ok {
			return errorResult(fmt.Errorf("%w: %s", ErrUnknownNodeKind, input.Query))
		}

		return jsonResult(filterByKind(root, kind))
	}

	return jsonResult(toParseNode(root))
}

// toParseNode converts a subtree to its JSON projection.
func toParseNode(node *javast.Node) parseNode {
	out := parseNode{
		Kind:  node.Kind.String(),
		Token: node.Token,
		Pos:   node.Pos.String(),
		End:   node.End.String(),
	}

	for _, child := range node.Children() {
		out.Children = append(out.Children, toParseNode(child))
	}

	return out
}

// filterByKind collects matching subtrees under a synthetic root. Matched
// nodes keep their children; the walk does not descend into a match.
func filterByKind(root *javast.Node, kind javast.Kind) parseNode {
	matches := make([]parseNode, 0)

	root.Walk(func(node *javast.Node) bool {
		if node.Kind == kind {
			matches = append(matches, toParseNode(node))

			return false
		}

		return true
	})

	return parseNode{Kind: filteredRootKind, Children: matches}
}
