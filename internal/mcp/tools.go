package mcp

import (
	"encoding/json"
	"errors"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Tool name constants.
const (
	ToolNameCheck = "checkstyle_check"
	ToolNameRules = "checkstyle_rules"
	ToolNameParse = "java_parse"
)

// Input size limits.
const (
	// MaxCodeInputBytes is the maximum allowed size for inline code input (1 MB).
	MaxCodeInputBytes = 1 << 20
)

// Sentinel errors for tool input validation.
var (
	// ErrEmptyCode indicates the code parameter is empty.
	ErrEmptyCode = errors.New("code parameter is required and must not be empty")
	// ErrCodeTooLarge indicates the code input exceeds the size limit.
	ErrCodeTooLarge = errors.New("code input exceeds maximum size")
	// ErrUnknownNodeKind indicates the query names a node kind outside the tree model.
	ErrUnknownNodeKind = errors.New("unknown node kind")
)

// Input types (auto-generate JSON schemas via struct tags).

// CheckInput is the input schema for the checkstyle_check tool.
type CheckInput struct {
	Checks []string `json:"checks,omitempty" jsonschema:"optional list of check names to run (default: all)"`
	Code   string   `json:"code"             jsonschema:"Java source code to check"`
}

// RulesInput is the input schema for the checkstyle_rules tool.
type RulesInput struct{}

// ParseInput is the input schema for the java_parse tool.
type ParseInput struct {
	Code  string `json:"code"            jsonschema:"Java source code to parse"`
	Query string `json:"query,omitempty" jsonschema:"optional node kind filter (e.g. MethodDecl)"`
}

// Output type (used as structured output for generic AddTool).

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

// Result helpers.

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}

// validateCode checks common code input constraints.
func validateCode(code string) error {
	if code == "" {
		return ErrEmptyCode
	}

	if len(code) > MaxCodeInputBytes {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrCodeTooLarge, len(code), MaxCodeInputBytes)
	}

	return nil
}
