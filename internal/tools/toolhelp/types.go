package toolhelp

// ToolHelpResponse is the payload returned by get_tool_help
type ToolHelpResponse struct {
	ToolName        string            `json:"tool_name"`
	BasicInfo       map[string]any    `json:"basic_info"`
	HasExtendedInfo bool              `json:"has_extended_info"`
	ExtendedInfo    *ExtendedHelpData `json:"extended_info,omitempty"`
	Message         string            `json:"message,omitempty"`
}

// ExtendedHelpData mirrors tools.ExtendedHelp in response form
type ExtendedHelpData struct {
	Examples         []ToolExampleData     `json:"examples,omitempty"`
	CommonPatterns   []string              `json:"common_patterns,omitempty"`
	Troubleshooting  []TroubleshootingData `json:"troubleshooting,omitempty"`
	ParameterDetails map[string]string     `json:"parameter_details,omitempty"`
	WhenToUse        string                `json:"when_to_use,omitempty"`
	WhenNotToUse     string                `json:"when_not_to_use,omitempty"`
}

// ToolExampleData is a single usage example
type ToolExampleData struct {
	Description    string         `json:"description"`
	Arguments      map[string]any `json:"arguments"`
	ExpectedResult string         `json:"expected_result,omitempty"`
}

// TroubleshootingData is a single troubleshooting tip
type TroubleshootingData struct {
	Problem  string `json:"problem"`
	Solution string `json:"solution"`
}
