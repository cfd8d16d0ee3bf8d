package mcp_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ningg/checkstyle/internal/mcp"
)

func startInMemoryServer(t *testing.T) (*mcpsdk.ClientSession, func()) {
	t.Helper()

	srv := mcp.NewServer(mcp.ServerDeps{})

	clientTransport, serverTransport := mcpsdk.NewInMemoryTransports()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

	serverDone := make(chan error, 1)

	go func() {
		serverDone <- srv.RunWithTransport(ctx, serverTransport)
	}()

	client := mcpsdk.NewClient(&mcpsdk.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	cleanup := func() {
		_ = session.Close()

		cancel()
		<-serverDone
	}

	return session, cleanup
}

func TestMCPServer_InMemoryTransport_ToolsList(t *testing.T) {
	t.Parallel()

	session, cleanup := startInMemoryServer(t)
	defer cleanup()

	ctx := context.Background()

	toolsResult, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.NotNil(t, toolsResult)

	toolNames := make([]string, 0, len(toolsResult.Tools))
	for _, tool := range toolsResult.Tools {
		toolNames = append(toolNames, tool.Name)
	}

	assert.Contains(t, toolNames, "checkstyle_check")
	assert.Contains(t, toolNames, "checkstyle_rules")
	assert.Contains(t, toolNames, "java_parse")
	assert.Len(t, toolNames, 3)

	// Verify each tool has an input schema.
	for _, tool := range toolsResult.Tools {
		assert.NotNil(t, tool.InputSchema, "tool %s missing input schema", tool.Name)
	}
}

func TestMCPServer_InMemoryTransport_CallCheck(t *testing.T) {
	t.Parallel()

	session, cleanup := startInMemoryServer(t)
	defer cleanup()

	ctx := context.Background()

	result, err := session.CallTool(ctx, &mcpsdk.CallToolParams{
		Name: "checkstyle_check",
		Arguments: map[string]any{
			"code": "class Person { interface Address {} }",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)
	assert.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "Implied modifier 'static' should be explicit.")
}

func TestMCPServer_InMemoryTransport_CallParse(t *testing.T) {
	t.Parallel()

	session, cleanup := startInMemoryServer(t)
	defer cleanup()

	ctx := context.Background()

	result, err := session.CallTool(ctx, &mcpsdk.CallToolParams{
		Name: "java_parse",
		Arguments: map[string]any{
			"code": "class Person {}",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)
	assert.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(*mcpsdk.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "ClassDecl")
}

func TestMCPServer_InMemoryTransport_CallCheck_Error(t *testing.T) {
	t.Parallel()

	session, cleanup := startInMemoryServer(t)
	defer cleanup()

	ctx := context.Background()

	result, err := session.CallTool(ctx, &mcpsdk.CallToolParams{
		Name: "checkstyle_check",
		Arguments: map[string]any{
			"code": "",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
