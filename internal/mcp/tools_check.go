package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ningg/checkstyle/pkg/engine"
)

// toolInputPath labels inline code in check results; nothing is read from disk.
const toolInputPath = "input.java"

// checkReport is the structured result of a checkstyle_check call.
type checkReport struct {
	Violations []checkViolation `json:"violations"`
	Skipped    bool             `json:"skipped,omitempty"`
}

// checkViolation is one reported violation.
type checkViolation struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
	Check   string `json:"check"`
}

// handleCheck processes checkstyle_check tool calls.
func handleCheck(
	ctx context.Context,
	_ *mcpsdk.CallToolRequest,
	input CheckInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	err := validateCode(input.Code)
	if err != nil {
		return errorResult(err)
	}

	eng, err := engine.New(engine.DefaultRegistry(), engine.Config{Enabled: input.Checks})
	if err != nil {
		return errorResult(fmt.Errorf("configure checks: %w", err))
	}

	result, err := eng.CheckSource(ctx, toolInputPath, []byte(input.Code))
	if err != nil {
		return errorResult(fmt.Errorf("check code: %w", err))
	}

	report := checkReport{
		Violations: make([]checkViolation, 0, len(result.Violations)),
		Skipped:    result.Skipped,
	}

	for _, violation := range result.Violations {
		report.Violations = append(report.Violations, checkViolation{
			Line:    violation.Pos.Line,
			Col:     violation.Pos.Col,
			Message: violation.Message(),
			Check:   violation.Check,
		})
	}

	return jsonResult(report)
}

// handleRules processes checkstyle_rules tool calls.
func handleRules(
	_ context.Context,
	_ *mcpsdk.CallToolRequest,
	_ RulesInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return jsonResult(engine.DefaultRegistry().Describe())
}
