// Package server implements the MCP (Model Context Protocol) server for
// lithophane generation.
//
// This package provides a JSON-RPC 2.0 server that exposes the lithophane
// pipeline through the MCP protocol, so MCP-compatible clients can turn
// images into 3D-printable STL solids with a tool call.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_info: Dimensions plus luminance range (flat-image warning)
//   - image_dimensions: Width and height only
//
// Lithophane Generation:
//   - lithophane_generate: Run the full pipeline and write an ASCII STL
//   - lithophane_preview_heightmap: Run the pipeline, return the height
//     field as a base64 PNG instead of building a mesh
//
// Tool failures surface as JSON-RPC errors with a human-readable message
// and a detail string in the error data field; the server never emits a
// partial mesh.
package server
