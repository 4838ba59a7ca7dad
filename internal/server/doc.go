// Package server implements the MCP (Model Context Protocol) server that
// exposes the lasso selection editor as tools.
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
// Image:
//   - lasso_open_image: Open an image and start building its edge map
//
// Tracing:
//   - lasso_select_tool: Switch between freehand, polygonal and magnetic
//   - lasso_pointer: Pointer down/move/up in canvas coordinates
//   - lasso_remove_last_point, lasso_complete, lasso_cancel
//   - lasso_set_sensitivity, lasso_set_permission
//
// Editing:
//   - lasso_delete, lasso_translate, lasso_copy, lasso_paste
//   - lasso_undo, lasso_redo
//
// Output:
//   - lasso_regions: List selection regions
//   - lasso_extract_region: Cut a region out of the image as PNG
//   - lasso_render: Draw the canvas over the image, with an optional grid
//
// One server holds one editing surface: a canvas, its undo history and the
// open image. Opening another image clears the canvas and history.
//
// # Edge Maps
//
// Edge maps are built in the background when an image is opened and cached
// by path, so reopening an unchanged image reuses its map; a file that was
// rewritten since it was cached gets a fresh map. Until the map is ready the
// magnetic tool places unsnapped points. If the image cannot be decoded the
// call fails with "selection tools unavailable for this image".
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	srv, err := server.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
