// Package tools defines the contract the PDF inspection tools implement and
// the extended-help records get_tool_help serves.
package tools

import (
	"context"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/sirupsen/logrus"
)

// Tool is one MCP tool exposed by this server. Implementations are stateless
// and register themselves with the registry from an init function.
type Tool interface {
	// Definition returns the MCP tool definition used at registration time
	Definition() mcp.Tool

	// Execute runs the tool against already-decoded arguments, using the
	// registry's shared logger and cache
	Execute(ctx context.Context, logger *logrus.Logger, cache *sync.Map, args map[string]any) (*mcp.CallToolResult, error)
}

// ExtendedHelpProvider marks a tool that contributes usage examples and
// troubleshooting tips to get_tool_help
type ExtendedHelpProvider interface {
	ProvideExtendedInfo() *ExtendedHelp
}

// ExtendedHelp is a tool's detailed usage information
type ExtendedHelp struct {
	Examples         []ToolExample        `json:"examples,omitempty"`
	CommonPatterns   []string             `json:"common_patterns,omitempty"`
	Troubleshooting  []TroubleshootingTip `json:"troubleshooting,omitempty"`
	ParameterDetails map[string]string    `json:"parameter_details,omitempty"`
	WhenToUse        string               `json:"when_to_use,omitempty"`
	WhenNotToUse     string               `json:"when_not_to_use,omitempty"`
}

// ToolExample is one worked invocation: arguments plus the result shape a
// caller should expect back
type ToolExample struct {
	Description    string         `json:"description"`
	Arguments      map[string]any `json:"arguments"`
	ExpectedResult string         `json:"expected_result,omitempty"`
}

// TroubleshootingTip pairs a symptom a caller may hit with its resolution
type TroubleshootingTip struct {
	Problem  string `json:"problem"`
	Solution string `json:"solution"`
}
