package toolhelp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pdfagent/mcp-pdf-reader/internal/registry"
	"github.com/pdfagent/mcp-pdf-reader/internal/tools"
	"github.com/sirupsen/logrus"
)

// ToolHelpTool provides extended usage information about the server's tools
type ToolHelpTool struct{}

// init registers the tool with the registry
func init() {
	registry.Register(&ToolHelpTool{})
}

// Definition returns the tool's definition for MCP registration
func (t *ToolHelpTool) Definition() mcp.Tool {
	toolsWithExtendedHelp := registry.GetToolNamesWithExtendedHelp()

	description := "Get detailed usage examples and troubleshooting for the PDF reader tools when encountering unexpected errors."
	if len(toolsWithExtendedHelp) == 0 {
		description = "No tools currently provide extended help information."
	}

	return mcp.NewTool(
		"get_tool_help",
		mcp.WithDescription(description),
		mcp.WithString("tool_name",
			mcp.Required(),
			mcp.Description("Name of the tool to get help for"),
			mcp.Enum(toolsWithExtendedHelp...),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)
}

// Execute executes the get_tool_help tool
func (t *ToolHelpTool) Execute(ctx context.Context, logger *logrus.Logger, cache *sync.Map, args map[string]any) (*mcp.CallToolResult, error) {
	toolName, ok := args["tool_name"].(string)
	if !ok || toolName == "" {
		return nil, fmt.Errorf("missing or invalid required parameter: tool_name")
	}

	tool, exists := registry.GetTool(toolName)
	if !exists {
		available := registry.GetToolNamesWithExtendedHelp()
		return nil, fmt.Errorf("tool '%s' not found or disabled. Tools with extended help: %s", toolName, strings.Join(available, ", "))
	}

	provider, ok := tool.(tools.ExtendedHelpProvider)
	if !ok {
		available := registry.GetToolNamesWithExtendedHelp()
		return nil, fmt.Errorf("tool '%s' does not provide extended help. Tools with extended help: %s", toolName, strings.Join(available, ", "))
	}

	response := &ToolHelpResponse{
		ToolName:        toolName,
		BasicInfo:       basicInfo(tool),
		HasExtendedInfo: true,
	}

	if info := provider.ProvideExtendedInfo(); info != nil {
		response.ExtendedInfo = convertExtendedInfo(info)
	} else {
		response.HasExtendedInfo = false
		response.Message = fmt.Sprintf("Tool '%s' returned no extended information", toolName)
	}

	responseJSON, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// basicInfo extracts name, description and schema from a tool's definition
func basicInfo(tool tools.Tool) map[string]any {
	definition := tool.Definition()

	info := map[string]any{
		"name":        definition.Name,
		"description": definition.Description,
	}
	if definition.InputSchema.Type != "" {
		info["input_schema"] = definition.InputSchema
	}
	return info
}

// convertExtendedInfo converts tools.ExtendedHelp to the response format
func convertExtendedInfo(info *tools.ExtendedHelp) *ExtendedHelpData {
	result := &ExtendedHelpData{
		CommonPatterns:   info.CommonPatterns,
		ParameterDetails: info.ParameterDetails,
		WhenToUse:        info.WhenToUse,
		WhenNotToUse:     info.WhenNotToUse,
	}

	if len(info.Troubleshooting) > 0 {
		result.Troubleshooting = make([]TroubleshootingData, len(info.Troubleshooting))
		for i, tip := range info.Troubleshooting {
			result.Troubleshooting[i] = TroubleshootingData{Problem: tip.Problem, Solution: tip.Solution}
		}
	}

	if len(info.Examples) > 0 {
		result.Examples = make([]ToolExampleData, len(info.Examples))
		for i, example := range info.Examples {
			result.Examples[i] = ToolExampleData{
				Description:    example.Description,
				Arguments:      example.Arguments,
				ExpectedResult: example.ExpectedResult,
			}
		}
	}

	return result
}
