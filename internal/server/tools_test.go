package server

import (
	"encoding/json"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"image_load",
		"image_dimensions",
		"morph_resolve_mode",
		"morph_erode",
		"morph_dilate",
		"morph_open",
		"morph_close",
		"morph_occo",
		"morph_skeleton",
		"morph_gradient",
		"morph_tophat",
		"morph_asf",
		"morph_contrast_map",
		"morph_rank",
		"morph_reconstruct",
		"morph_level",
		"morph_dmp",
		"morph_watershed",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("Tool %s defined twice", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(tools) != len(expectedTools) {
		t.Errorf("Tool count: got %d, want %d", len(tools), len(expectedTools))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok || len(props) == 0 {
				t.Fatal("InputSchema properties missing or empty")
			}
			for name, p := range props {
				param, ok := p.(map[string]interface{})
				if !ok {
					t.Errorf("%s: parameter is not a map", name)
					continue
				}
				if param["type"] == nil || param["description"] == nil {
					t.Errorf("%s: parameter needs a type and a description", name)
				}
			}

			// the schema is sent to clients as JSON
			if _, err := json.Marshal(tool); err != nil {
				t.Errorf("schema does not marshal: %v", err)
			}
		})
	}
}

func TestToolDefinitions_RequiredPath(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		required, ok := tool.InputSchema["required"].([]string)
		if !ok {
			t.Errorf("%s: 'required' should be a string slice", tool.Name)
			continue
		}

		hasPath := false
		for _, r := range required {
			if r == "path" {
				hasPath = true
			}
		}
		// only mode resolution works without an image
		if want := tool.Name != "morph_resolve_mode"; hasPath != want {
			t.Errorf("%s: requires path got %v, want %v", tool.Name, hasPath, want)
		}
	}
}

func TestToolDefinitions_SharedArguments(t *testing.T) {
	engine := []string{"element", "mode", "degenerate", "max_iterations"}
	source := []string{"path", "region", "region_name", "color_mode", "scale"}

	for _, tool := range GetToolDefinitions() {
		if tool.Name == "image_load" || tool.Name == "image_dimensions" || tool.Name == "morph_resolve_mode" {
			continue
		}
		props := tool.InputSchema["properties"].(map[string]interface{})
		for _, name := range append(source, engine...) {
			if _, ok := props[name]; !ok {
				t.Errorf("%s: missing shared argument %s", tool.Name, name)
			}
		}
	}
}

func TestToolDefinitions_Enums(t *testing.T) {
	tests := []struct {
		tool  string
		param string
		want  []string
	}{
		{"morph_erode", "mode", []string{"auto", "naive", "rectangle", "hline", "vline", "vanherk-h", "vanherk-v"}},
		{"morph_erode", "region_name", []string{"top-left", "top-right", "bottom-left", "bottom-right", "top-half", "bottom-half", "left-half", "right-half", "center"}},
		{"morph_gradient", "kind", []string{"full", "internal", "external"}},
		{"morph_tophat", "kind", []string{"white", "black"}},
		{"morph_asf", "order", []string{"open-close", "close-open"}},
		{"morph_contrast_map", "pair", []string{"erode-dilate", "open-close"}},
		{"morph_watershed", "output", []string{"labels", "overlay"}},
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for _, tt := range tests {
		t.Run(tt.tool+"."+tt.param, func(t *testing.T) {
			props := toolMap[tt.tool].InputSchema["properties"].(map[string]interface{})
			param, ok := props[tt.param].(map[string]interface{})
			if !ok {
				t.Fatal("parameter not found")
			}
			enum, ok := param["enum"].([]string)
			if !ok {
				t.Fatal("parameter should have an enum")
			}
			if len(enum) != len(tt.want) {
				t.Fatalf("enum: got %v, want %v", enum, tt.want)
			}
			for i := range enum {
				if enum[i] != tt.want[i] {
					t.Errorf("enum[%d]: got %s, want %s", i, enum[i], tt.want[i])
				}
			}
		})
	}
}

func TestToolDefinitions_OptionalDefaults(t *testing.T) {
	toolDefaults := map[string]map[string]interface{}{
		"morph_erode":        {"element": defaultElement, "mode": "auto", "degenerate": "keep", "scale": 1.0},
		"morph_asf":          {"times": 1, "order": "open-close"},
		"morph_contrast_map": {"pair": "erode-dilate"},
		"morph_level":        {"marker": "asf"},
		"morph_dmp":          {"size": 3, "shape": "square"},
		"morph_watershed":    {"output": "labels", "max_stats": 20},
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for toolName, expectedDefaults := range toolDefaults {
		props := toolMap[toolName].InputSchema["properties"].(map[string]interface{})
		for paramName, expected := range expectedDefaults {
			param, ok := props[paramName].(map[string]interface{})
			if !ok {
				t.Errorf("%s.%s: parameter not found or not a map", toolName, paramName)
				continue
			}
			if actual := param["default"]; actual != expected {
				t.Errorf("%s.%s: default got %v (%T), want %v (%T)", toolName, paramName, actual, actual, expected, expected)
			}
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	resp := New().handleToolsList(&MCPRequest{JSONRPC: "2.0", ID: 1})

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(toolsList) != len(GetToolDefinitions()) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(GetToolDefinitions()))
	}
}
