package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	expectedTools := []string{
		"lasso_open_image",
		"lasso_select_tool",
		"lasso_pointer",
		"lasso_remove_last_point",
		"lasso_complete",
		"lasso_cancel",
		"lasso_set_sensitivity",
		"lasso_set_permission",
		"lasso_delete",
		"lasso_translate",
		"lasso_copy",
		"lasso_paste",
		"lasso_undo",
		"lasso_redo",
		"lasso_regions",
		"lasso_extract_region",
		"lasso_render",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(toolMap) != len(expectedTools) {
		t.Errorf("got %d tools, want %d", len(toolMap), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want object", tool.InputSchema["type"])
			}
			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}
			required, _ := tool.InputSchema["required"].([]string)
			for _, name := range required {
				if _, ok := props[name]; !ok {
					t.Errorf("required property %s is not defined", name)
				}
			}
		})
	}
}

// Every defined tool must be dispatched by executeTool.
func TestToolDefinitions_AllDispatched(t *testing.T) {
	s := newTestServer(t)
	for _, tool := range GetToolDefinitions() {
		_, err := s.executeTool(tool.Name, []byte(`{`))
		if err != nil && err.Error() == "unknown tool: "+tool.Name {
			t.Errorf("tool %s is defined but not dispatched", tool.Name)
		}
	}
}
