// Package server implements the MCP (Model Context Protocol) server for
// grayscale morphology tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the morph and
// watershed packages through the MCP protocol, so that MCP-compatible clients
// can filter and segment images without writing code.
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
// Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - morph_resolve_mode: Report the algorithm an element would run with
//
// Basic Operators:
//   - morph_erode, morph_dilate: The engine primitives
//   - morph_open, morph_close, morph_occo: Openings, closings and their mean
//   - morph_gradient: Full, internal or external gradient
//   - morph_tophat: White or black top-hat
//   - morph_skeleton: Morphological skeleton
//
// Filters:
//   - morph_asf: Alternating sequential filter
//   - morph_contrast_map: Toggle contrast mapping, optionally iterated
//   - morph_rank: Rank and median filters
//   - morph_reconstruct: Opening or closing by reconstruction
//   - morph_level: Leveling towards a marker
//   - morph_dmp: Differential morphological profile
//
// Segmentation:
//   - morph_watershed: Immersion watershed with region statistics
//
// Every pixel-reading tool takes the same source arguments (path, region or
// region_name, color_mode, scale) and the operators share the element, mode,
// degenerate and max_iterations arguments. Results carry the output as a
// base64 PNG: gray for one band, RGB for three, and a horizontal montage of
// bands otherwise.
//
// # Image Caching
//
// The server maintains an in-memory cache of decoded images keyed by path.
// Cropping, scaling and conversion happen per call on the cached image.
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
// The server is typically started by an MCP client:
//
//	srv := server.New(server.WithLogger(logger))
//	if err := srv.Run(); err != nil {
//	    logger.Fatal(err)
//	}
package server
