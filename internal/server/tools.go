package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

type props map[string]interface{}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        typ,
		"description": description,
	}
}

func enumProp(description string, def string, values ...string) map[string]interface{} {
	p := prop("string", description)
	p["enum"] = values
	if def != "" {
		p["default"] = def
	}
	return p
}

// sourceProps describes the arguments every pixel-reading tool accepts.
func sourceProps() props {
	return props{
		"path": prop("string", "Absolute path to the image file"),
		"region": map[string]interface{}{
			"type":        "object",
			"description": "Optional rectangle to crop before processing",
			"properties": map[string]interface{}{
				"x1": prop("integer", "Left edge X coordinate (0-based)"),
				"y1": prop("integer", "Top edge Y coordinate (0-based)"),
				"x2": prop("integer", "Right edge X coordinate (exclusive)"),
				"y2": prop("integer", "Bottom edge Y coordinate (exclusive)"),
			},
		},
		"region_name": enumProp("Optional named region to crop before processing", "",
			"top-left", "top-right", "bottom-left", "bottom-right",
			"top-half", "bottom-half", "left-half", "right-half", "center"),
		"color_mode": enumProp("How pixels become bands: gray gives one band, rgb three, auto picks from the file", "auto",
			"auto", "gray", "rgb"),
		"scale": map[string]interface{}{
			"type":        "number",
			"description": "Optional resample factor applied after cropping (e.g., 0.5 to halve). Default 1.0",
			"default":     1.0,
		},
	}
}

// engineProps describes the structuring element and engine arguments.
func engineProps() props {
	return props{
		"element": map[string]interface{}{
			"type": "string",
			"description": "Structuring element as shape:size. Shapes: square:N, rect:WxH, circle:R, cross:R, frame:N, " +
				"hline:N, vline:N (optional @center, e.g. hline:4@0), diag:N, antidiag:N",
			"default": defaultElement,
		},
		"mode": enumProp("Erosion/dilation algorithm. auto picks the fastest one the element allows", "auto",
			"auto", "naive", "rectangle", "hline", "vline", "vanherk-h", "vanherk-v"),
		"degenerate": enumProp("Value for pixels whose window holds no usable neighbour: keep the input or use the neutral extreme", "keep",
			"keep", "neutral"),
		"max_iterations": prop("integer", "Cap on iterative operators (reconstruction, skeleton, contrast mapping, leveling). 0 means until stable"),
	}
}

func schema(required []string, sets ...props) map[string]interface{} {
	merged := map[string]interface{}{}
	for _, set := range sets {
		for k, v := range set {
			merged[k] = v
		}
	}
	return map[string]interface{}{
		"type":       "object",
		"properties": merged,
		"required":   required,
	}
}

// operatorSchema is the input schema of tools taking a source, an
// element and engine options plus any extra arguments.
func operatorSchema(extra props) map[string]interface{} {
	return schema([]string{"path"}, sourceProps(), engineProps(), extra)
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format and band layout.",
			InputSchema: schema([]string{"path"}, props{
				"path": prop("string", "Absolute path to the image file"),
			}),
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: schema([]string{"path"}, props{
				"path": prop("string", "Absolute path to the image file"),
			}),
		},
		{
			Name:        "morph_resolve_mode",
			Description: "Report which erosion/dilation algorithm runs for a structuring element on an image of the given size, without processing pixels.",
			InputSchema: schema([]string{}, props{
				"path":    prop("string", "Optional image whose size is used"),
				"width":   prop("integer", "Image width when no path is given"),
				"height":  prop("integer", "Image height when no path is given"),
				"element": engineProps()["element"],
				"mode":    engineProps()["mode"],
			}),
		},

		// Engine and Basic Operators
		{
			Name:        "morph_erode",
			Description: "Grayscale erosion: each pixel becomes the minimum over the structuring element. Returns the result as base64 PNG with value range and change summary.",
			InputSchema: operatorSchema(nil),
		},
		{
			Name:        "morph_dilate",
			Description: "Grayscale dilation: each pixel becomes the maximum over the structuring element.",
			InputSchema: operatorSchema(nil),
		},
		{
			Name:        "morph_open",
			Description: "Opening (erosion then dilation). Removes bright details smaller than the element.",
			InputSchema: operatorSchema(nil),
		},
		{
			Name:        "morph_close",
			Description: "Closing (dilation then erosion). Fills dark details smaller than the element.",
			InputSchema: operatorSchema(nil),
		},
		{
			Name:        "morph_occo",
			Description: "Self-dual smoothing: the mean of open-close and close-open.",
			InputSchema: operatorSchema(nil),
		},
		{
			Name:        "morph_skeleton",
			Description: "Morphological skeleton: union over scales of the erosion minus its opening.",
			InputSchema: operatorSchema(nil),
		},
		{
			Name:        "morph_gradient",
			Description: "Morphological gradient. full is dilation minus erosion, internal is input minus erosion, external is dilation minus input.",
			InputSchema: operatorSchema(props{
				"kind": enumProp("Gradient variant", "full", "full", "internal", "external"),
			}),
		},
		{
			Name:        "morph_tophat",
			Description: "Top-hat transform. white (input minus opening) extracts small bright features, black (closing minus input) small dark ones.",
			InputSchema: operatorSchema(props{
				"kind": enumProp("Top-hat variant", "white", "white", "black"),
			}),
		},

		// Filters
		{
			Name:        "morph_asf",
			Description: "Alternating sequential filter: repeated opening/closing pairs with a kernel grown by one cell each pass.",
			InputSchema: operatorSchema(props{
				"times": map[string]interface{}{
					"type":        "integer",
					"description": "Number of filter passes (at least 1)",
					"default":     1,
				},
				"order": enumProp("Which filter of each pair runs first", "open-close", "open-close", "close-open"),
			}),
		},
		{
			Name:        "morph_contrast_map",
			Description: "Toggle contrast mapping: every pixel snaps to whichever of the pair's two transforms is closer. Sharpens edges.",
			InputSchema: operatorSchema(props{
				"pair":    enumProp("Transforms to choose between", "erode-dilate", "erode-dilate", "open-close"),
				"iterate": prop("boolean", "Repeat until the image stops changing; the number of passes is reported"),
			}),
		},
		{
			Name:        "morph_rank",
			Description: "Rank filter: each pixel becomes the k-th smallest value in its window. Without rank it computes the median.",
			InputSchema: operatorSchema(props{
				"rank": prop("integer", "1-based rank within the window; 1 equals erosion, the element size equals dilation"),
			}),
		},
		{
			Name:        "morph_reconstruct",
			Description: "Opening or closing by reconstruction: removes small structures while restoring the exact shape of everything that survives.",
			InputSchema: operatorSchema(props{
				"kind": enumProp("Reconstruction variant", "opening", "opening", "closing"),
			}),
		},
		{
			Name:        "morph_level",
			Description: "Leveling: flattens the image towards a marker while preserving contours, with lambda as the slope tolerance.",
			InputSchema: operatorSchema(props{
				"lambda":      prop("number", "Slope tolerance (0 or more). Default 0"),
				"marker":      enumProp("Marker computed from the image when no marker_path is given", "asf", "asf", "open", "close"),
				"marker_path": prop("string", "Optional image used as marker; cropped, scaled and converted like the input"),
			}),
		},
		{
			Name:        "morph_dmp",
			Description: "Differential morphological profile: stacked differences between successive openings and closings at growing scales, one band per scale.",
			InputSchema: schema([]string{"path"}, sourceProps(), engineProps(), props{
				"size": map[string]interface{}{
					"type":        "integer",
					"description": "Number of scales",
					"default":     3,
				},
				"openings":       prop("boolean", "Include opening-side bands. Default true"),
				"closings":       prop("boolean", "Include closing-side bands. Default true"),
				"reconstruction": prop("boolean", "Use opening/closing by reconstruction at each scale"),
				"shape":          enumProp("Element family grown per scale", "square", "square", "circle", "cross"),
			}),
		},

		// Segmentation
		{
			Name:        "morph_watershed",
			Description: "Watershed segmentation by immersion. Returns a colorized label image or an overlay of the watershed lines, plus per-region statistics.",
			InputSchema: operatorSchema(props{
				"band":       prop("integer", "Band to render (0-based). Default 0"),
				"gradient":   prop("boolean", "Flood the morphological gradient instead of the raw intensities"),
				"output":     enumProp("Rendering of the result", "labels", "labels", "overlay"),
				"line_color": prop("string", "Hex color of watershed lines in overlay output. Default #ff0000"),
				"max_stats": map[string]interface{}{
					"type":        "integer",
					"description": "Number of largest regions to report",
					"default":     20,
				},
			}),
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
