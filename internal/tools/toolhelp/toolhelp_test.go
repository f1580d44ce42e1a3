package toolhelp

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	// Registers the tools whose help is looked up
	_ "github.com/pdfagent/mcp-pdf-reader/internal/tools/readpdftext"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestExecuteReturnsExtendedHelp(t *testing.T) {
	tool := &ToolHelpTool{}
	result, err := tool.Execute(context.Background(), newTestLogger(), &sync.Map{}, map[string]any{
		"tool_name": "read_pdf_text",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)

	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])

	var response ToolHelpResponse
	require.NoError(t, json.Unmarshal([]byte(textContent.Text), &response))

	require.Equal(t, "read_pdf_text", response.ToolName)
	require.True(t, response.HasExtendedInfo)
	require.NotNil(t, response.ExtendedInfo)
	require.NotEmpty(t, response.ExtendedInfo.Examples)
	require.NotEmpty(t, response.ExtendedInfo.Troubleshooting)
	require.NotEmpty(t, response.ExtendedInfo.WhenToUse)
}

func TestExecuteUnknownTool(t *testing.T) {
	tool := &ToolHelpTool{}
	_, err := tool.Execute(context.Background(), newTestLogger(), &sync.Map{}, map[string]any{
		"tool_name": "does_not_exist",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "does_not_exist")
}

func TestExecuteMissingToolName(t *testing.T) {
	tool := &ToolHelpTool{}
	_, err := tool.Execute(context.Background(), newTestLogger(), &sync.Map{}, map[string]any{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "tool_name")
}

func TestDefinitionEnumeratesHelpProviders(t *testing.T) {
	tool := &ToolHelpTool{}
	definition := tool.Definition()
	require.Equal(t, "get_tool_help", definition.Name)
}
