package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func noArgs() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

func offsetSchema(what string) map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"dx": map[string]interface{}{
				"type":        "number",
				"description": "Horizontal offset applied to the " + what,
			},
			"dy": map[string]interface{}{
				"type":        "number",
				"description": "Vertical offset applied to the " + what,
			},
		},
		"required": []string{"dx", "dy"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Image
		{
			Name:        "lasso_open_image",
			Description: "Open an image for selection. Clears the canvas and history. The edge map used by the magnetic tool is built in the background unless wait is true.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"wait": map[string]interface{}{
						"type":        "boolean",
						"description": "Block until the edge map is ready. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},

		// Tools and tracing
		{
			Name:        "lasso_select_tool",
			Description: "Switch the active lasso tool. Any trace in progress is cancelled. The magnetic tool is refused when the image's edge map could not be built.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"tool": map[string]interface{}{
						"type":        "string",
						"description": "Tool to activate",
						"enum":        []string{"none", "freehand", "polygonal", "magnetic"},
					},
				},
				"required": []string{"tool"},
			},
		},
		{
			Name:        "lasso_pointer",
			Description: "Send a pointer event in canvas coordinates. Freehand traces on down/move/up; polygonal and magnetic place a vertex on down and preview on move. Returns the completed region when the event closes the trace.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"event": map[string]interface{}{
						"type":        "string",
						"description": "Pointer event type",
						"enum":        []string{"down", "move", "up"},
					},
					"x": map[string]interface{}{
						"type":        "number",
						"description": "X coordinate",
					},
					"y": map[string]interface{}{
						"type":        "number",
						"description": "Y coordinate",
					},
				},
				"required": []string{"event", "x", "y"},
			},
		},
		{
			Name:        "lasso_remove_last_point",
			Description: "Remove the most recent vertex of a polygonal or magnetic trace, including the magnetic edge leading into it.",
			InputSchema: noArgs(),
		},
		{
			Name:        "lasso_complete",
			Description: "Finish the trace in progress and return the selection region. Traces with fewer than three points are cancelled.",
			InputSchema: noArgs(),
		},
		{
			Name:        "lasso_cancel",
			Description: "Abandon the trace in progress and remove its visual aids.",
			InputSchema: noArgs(),
		},
		{
			Name:        "lasso_set_sensitivity",
			Description: "Set how strong an edge must be to attract magnetic points (0-100). Zero disables snapping.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"value": map[string]interface{}{
						"type":        "integer",
						"description": "Sensitivity, 0-100. Default 50",
						"minimum":     0,
						"maximum":     100,
					},
				},
				"required": []string{"value"},
			},
		},
		{
			Name:        "lasso_set_permission",
			Description: "Set the permission tag attached to regions completed from now on. The tag is opaque to the editor.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"tag": map[string]interface{}{
						"type":        "string",
						"description": "Permission tag, e.g. open-to-repost or approval-required",
					},
				},
				"required": []string{"tag"},
			},
		},

		// Editing
		{
			Name:        "lasso_delete",
			Description: "Delete key: removes the last vertex during a polygonal or magnetic trace, cancels a freehand drag, otherwise deletes the active object.",
			InputSchema: noArgs(),
		},
		{
			Name:        "lasso_translate",
			Description: "Move the active object. A moved selection becomes a new region with a new id.",
			InputSchema: offsetSchema("active object"),
		},
		{
			Name:        "lasso_copy",
			Description: "Copy the active object to the editor clipboard.",
			InputSchema: noArgs(),
		},
		{
			Name:        "lasso_paste",
			Description: "Paste the clipboard contents. Pasted selections become new regions.",
			InputSchema: offsetSchema("pasted objects"),
		},
		{
			Name:        "lasso_undo",
			Description: "Undo the last structural change to the canvas.",
			InputSchema: noArgs(),
		},
		{
			Name:        "lasso_redo",
			Description: "Redo the change most recently undone.",
			InputSchema: noArgs(),
		},

		// Output
		{
			Name:        "lasso_regions",
			Description: "List every selection region on the canvas with its bounding box, outline and permission tag.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"include_points": map[string]interface{}{
						"type":        "boolean",
						"description": "Include outline points. Default true",
						"default":     true,
					},
				},
			},
		},
		{
			Name:        "lasso_extract_region",
			Description: "Cut a selection region out of the open image and return it as base64-encoded PNG. Pixels outside the outline are transparent.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"id": map[string]interface{}{
						"type":        "string",
						"description": "Region id",
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "lasso_render",
			Description: "Draw the canvas (completed outlines plus any in-progress trace) over the open image and return it as base64-encoded PNG. An optional coordinate grid helps pick pixel positions.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"grid_spacing": map[string]interface{}{
						"type":        "integer",
						"description": "Grid line spacing in pixels; 0 draws no grid",
						"default":     0,
					},
					"labels": map[string]interface{}{
						"type":        "boolean",
						"description": "Print x,y coordinates at grid intersections",
						"default":     false,
					},
					"grid_color": map[string]interface{}{
						"type":        "string",
						"description": "Grid colour as #rrggbb. Default red",
					},
					"fill_alpha": map[string]interface{}{
						"type":        "number",
						"description": "Opacity of region fills in (0, 1]. Default 0.25",
					},
				},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
