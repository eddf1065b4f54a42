package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// settingsSchema describes the generation settings object shared by the
// lithophane tools. Field names match the JSON tags on lithophane.Settings.
func settingsSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"width_mm": map[string]interface{}{
				"type":        "number",
				"description": "Physical width of the relief in millimeters (1-1000)",
			},
			"height_mm": map[string]interface{}{
				"type":        "number",
				"description": "Physical height of the relief in millimeters (1-1000)",
			},
			"thickness_mm": map[string]interface{}{
				"type":        "number",
				"description": "Total model thickness in millimeters (0.1-10)",
			},
			"first_layer_mm": map[string]interface{}{
				"type":        "number",
				"description": "Minimum solid thickness in millimeters (0.1-5, less than thickness_mm)",
			},
			"resolution_multiplier": map[string]interface{}{
				"type":        "integer",
				"description": "Grid samples per millimeter (1-10). Memory grows with the square. Default 1",
				"default":     1,
			},
			"number_of_layers": map[string]interface{}{
				"type":        "integer",
				"description": "Discrete layer count including the first layer. Default 10",
				"default":     10,
			},
			"negative": map[string]interface{}{
				"type":        "boolean",
				"description": "Swap which brightness extreme prints thin",
			},
			"frame_enabled": map[string]interface{}{
				"type":        "boolean",
				"description": "Add a raised rectangular frame around the relief",
			},
			"frame_width_mm": map[string]interface{}{
				"type":        "number",
				"description": "Frame width in millimeters (required when frame_enabled)",
			},
			"smoothing": map[string]interface{}{
				"type":        "object",
				"description": "Surface smoothing: method 'geometric' (default), 'laplacian', or 'none'; strength 0.01-1.0 (laplacian); passes per method default",
				"properties": map[string]interface{}{
					"method":   map[string]interface{}{"type": "string"},
					"strength": map[string]interface{}{"type": "number"},
					"passes":   map[string]interface{}{"type": "integer"},
				},
			},
			"orientation": map[string]interface{}{
				"type":        "string",
				"description": "Descriptive orientation label, echoed back unchanged",
			},
			"brightness": map[string]interface{}{
				"type":        "number",
				"description": "Source brightness adjustment, -100 to 100. Default 0",
			},
			"contrast": map[string]interface{}{
				"type":        "number",
				"description": "Source contrast adjustment, -100 to 100. Default 0",
			},
			"gamma": map[string]interface{}{
				"type":        "number",
				"description": "Source gamma correction, > 0. Default 1",
			},
			"luminance_mode": map[string]interface{}{
				"type":        "string",
				"description": "Grayscale weighting: 'bt601' (default) or 'lab' (perceptual)",
			},
		},
		"required": []string{"width_mm", "height_mm", "thickness_mm", "first_layer_mm"},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_info",
			Description: "Load an image file and return its dimensions and luminance range. A flat luminance range warns that the lithophane will degenerate to a uniform slab.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},

		// Lithophane Generation
		{
			Name:        "lithophane_generate",
			Description: "Convert a grayscale rendition of an image into a watertight 3D-printable lithophane solid and save it as ASCII STL. Returns the suggested filename, output path, and mesh statistics.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the source image file",
					},
					"settings": settingsSchema(),
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory to write the STL into. Defaults to the source image's directory",
					},
				},
				"required": []string{"path", "settings"},
			},
		},
		{
			Name:        "lithophane_preview_heightmap",
			Description: "Run the lithophane pipeline but return the resulting height field as a base64 PNG instead of building a mesh. Fast way to check settings before generating a large STL.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the source image file",
					},
					"settings": settingsSchema(),
				},
				"required": []string{"path", "settings"},
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
