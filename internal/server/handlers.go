package server

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ironsheep/lithophane-mcp/internal/imaging"
	"github.com/ironsheep/lithophane-mcp/internal/lithophane"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "lithophane_generate").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000;
// the error data field carries the detail string.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Runs the imaging/lithophane function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_info":
		return s.handleImageInfo(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Lithophane Generation
	case "lithophane_generate":
		return s.handleLithophaneGenerate(args)
	case "lithophane_preview_heightmap":
		return s.handleLithophanePreview(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageInfo(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Lithophane Generation Handlers ===

type lithophaneGenerateArgs struct {
	Path      string              `json:"path"`
	Settings  lithophane.Settings `json:"settings"`
	OutputDir string              `json:"output_dir"`
}

// GenerateToolResult is the response payload of lithophane_generate: the
// pipeline statistics plus where the STL was written.
type GenerateToolResult struct {
	*lithophane.Result

	// OutputPath is the absolute path of the written STL file.
	OutputPath string `json:"output_path"`

	// SizeBytes is the size of the written STL file.
	SizeBytes int `json:"size_bytes"`
}

func (s *Server) handleLithophaneGenerate(args json.RawMessage) (interface{}, error) {
	var a lithophaneGenerateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.OutputDir == "" {
		a.OutputDir = filepath.Dir(a.Path)
	}

	result, err := lithophane.GenerateFromImage(s.cache, a.Path, a.Settings)
	if err != nil {
		return nil, err
	}

	outputPath := filepath.Join(a.OutputDir, result.Filename)
	if err := os.WriteFile(outputPath, []byte(result.MeshText), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write STL: %w", err)
	}

	return &GenerateToolResult{
		Result:     result,
		OutputPath: outputPath,
		SizeBytes:  len(result.MeshText),
	}, nil
}

type lithophanePreviewArgs struct {
	Path     string              `json:"path"`
	Settings lithophane.Settings `json:"settings"`
}

func (s *Server) handleLithophanePreview(args json.RawMessage) (interface{}, error) {
	var a lithophanePreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return lithophane.PreviewHeightmap(s.cache, a.Path, a.Settings)
}
