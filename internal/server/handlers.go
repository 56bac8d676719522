package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-morphology-mcp/internal/grid"
	"github.com/ironsheep/image-morphology-mcp/internal/imaging"
	"github.com/ironsheep/image-morphology-mcp/internal/morph"
	"github.com/ironsheep/image-morphology-mcp/internal/strel"
	"github.com/ironsheep/image-morphology-mcp/internal/watershed"
)

// defaultElement is used when a tool call names no structuring element.
const defaultElement = "square:3"

// errNoPath is returned by tools called without an image path.
var errNoPath = errors.New("path is required")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "morph_open").
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
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	log := s.log.WithField("tool", params.Name)
	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		log.WithError(err).Warn("tool failed")
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	log.WithField("elapsed", time.Since(start).String()).Debug("tool done")

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

// executeTool dispatches a tool call to its handler. Morphology handlers
// load the source through the cache, build the structuring element and
// engine options, run the operator and encode the resulting grid.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)
	case "morph_resolve_mode":
		return s.handleResolveMode(args)

	case "morph_erode":
		return s.handleUnary(args, morph.Erode)
	case "morph_dilate":
		return s.handleUnary(args, morph.Dilate)
	case "morph_open":
		return s.handleUnary(args, morph.Open)
	case "morph_close":
		return s.handleUnary(args, morph.Close)
	case "morph_occo":
		return s.handleUnary(args, morph.OCCO)
	case "morph_skeleton":
		return s.handleUnary(args, morph.Skeleton)
	case "morph_gradient":
		return s.handleGradient(args)
	case "morph_tophat":
		return s.handleTopHat(args)

	case "morph_asf":
		return s.handleASF(args)
	case "morph_contrast_map":
		return s.handleContrastMap(args)
	case "morph_rank":
		return s.handleRank(args)
	case "morph_reconstruct":
		return s.handleReconstruct(args)
	case "morph_level":
		return s.handleLevel(args)
	case "morph_dmp":
		return s.handleDMP(args)

	case "morph_watershed":
		return s.handleWatershed(args)

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
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Shared argument handling ===

// sourceArgs selects the pixels a tool works on.
type sourceArgs struct {
	Path       string          `json:"path"`
	Region     *imaging.Region `json:"region,omitempty"`
	RegionName string          `json:"region_name,omitempty"`
	ColorMode  string          `json:"color_mode,omitempty"`
	Scale      float64         `json:"scale,omitempty"`
}

// engineArgs configures the erosion/dilation engine.
type engineArgs struct {
	Element       string `json:"element,omitempty"`
	Mode          string `json:"mode,omitempty"`
	Degenerate    string `json:"degenerate,omitempty"`
	MaxIterations int    `json:"max_iterations,omitempty"`
}

type opArgs struct {
	sourceArgs
	engineArgs
}

// loadSource reads, crops, scales and converts the image named by a.
func (s *Server) loadSource(a sourceArgs) (image.Image, *grid.Grid, error) {
	if a.Path == "" {
		return nil, nil, errNoPath
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, nil, err
	}

	switch {
	case a.Region != nil:
		img, err = imaging.Crop(img, *a.Region)
	case a.RegionName != "":
		var r imaging.Region
		if r, err = imaging.NamedRegion(img.Bounds(), a.RegionName); err == nil {
			img, err = imaging.Crop(img, r)
		}
	}
	if err != nil {
		return nil, nil, err
	}
	img = imaging.Scale(img, a.Scale)

	mode, err := imaging.ParseColorMode(a.ColorMode)
	if err != nil {
		return nil, nil, err
	}
	g, err := imaging.ToGrid(img, mode)
	if err != nil {
		return nil, nil, err
	}
	s.log.WithFields(logrus.Fields{"path": a.Path, "dims": g.Dims().String()}).Debug("source loaded")
	return img, g, nil
}

// build parses the element and engine options.
func (a engineArgs) build() (*strel.Element, []morph.Option, error) {
	desc := a.Element
	if desc == "" {
		desc = defaultElement
	}
	se, err := strel.Parse(desc)
	if err != nil {
		return nil, nil, err
	}
	opts, err := a.options()
	if err != nil {
		return nil, nil, err
	}
	return se, opts, nil
}

func (a engineArgs) options() ([]morph.Option, error) {
	mode, err := morph.ParseMode(a.Mode)
	if err != nil {
		return nil, err
	}
	degenerate, err := morph.ParseDegenerate(a.Degenerate)
	if err != nil {
		return nil, err
	}
	opts := []morph.Option{morph.WithMode(mode), morph.WithDegenerate(degenerate)}
	if a.MaxIterations > 0 {
		opts = append(opts, morph.WithMaxIterations(a.MaxIterations))
	}
	return opts, nil
}

// result encodes the output of an image-to-image operator and, when src has
// the same extents, how much the operator changed it. se may be nil for
// tools without a single element. Feature outputs such as profiles are
// encoded with imaging.EncodeGrid directly.
func (s *Server) result(a engineArgs, src, out *grid.Grid, se *strel.Element) (*imaging.MorphResult, error) {
	res, err := imaging.EncodeGrid(out)
	if err != nil {
		return nil, err
	}
	if se != nil {
		mode, _ := morph.ParseMode(a.Mode)
		res.Mode = morph.EffectiveMode(mode, se, src.Dims()).String()
	}
	if src.Dims() == out.Dims() {
		if res.Changes, err = imaging.CompareGrids(src, out); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type resolveModeArgs struct {
	Path    string `json:"path,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
	Element string `json:"element,omitempty"`
	Mode    string `json:"mode,omitempty"`
}

// ResolveModeResult describes the algorithm chosen for an element and image.
type ResolveModeResult struct {
	Mode      string `json:"mode"`
	Requested string `json:"requested"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Kernel    string `json:"kernel"`
	Cells     int    `json:"cells"`
	Symmetric bool   `json:"symmetric"`
}

func (s *Server) handleResolveMode(args json.RawMessage) (interface{}, error) {
	var a resolveModeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path != "" {
		dims, err := imaging.GetDimensions(s.cache, a.Path)
		if err != nil {
			return nil, err
		}
		a.Width, a.Height = dims.Width, dims.Height
	}
	if a.Width < 1 || a.Height < 1 {
		return nil, fmt.Errorf("need a path or a positive width and height, got %dx%d", a.Width, a.Height)
	}

	ea := engineArgs{Element: a.Element, Mode: a.Mode}
	se, _, err := ea.build()
	if err != nil {
		return nil, err
	}
	requested, _ := morph.ParseMode(a.Mode)
	return &ResolveModeResult{
		Mode:      morph.EffectiveMode(requested, se, grid.Dims2D(a.Width, a.Height)).String(),
		Requested: requested.String(),
		Width:     a.Width,
		Height:    a.Height,
		Kernel:    se.String(),
		Cells:     se.Count(),
		Symmetric: se.IsSymmetric(),
	}, nil
}

// === Engine and Basic Operator Handlers ===

type operator func(*grid.Grid, *strel.Element, ...morph.Option) (*grid.Grid, error)

func (s *Server) handleUnary(args json.RawMessage, op operator) (interface{}, error) {
	var a opArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.runOperator(a, op)
}

func (s *Server) runOperator(a opArgs, op operator) (interface{}, error) {
	se, opts, err := a.build()
	if err != nil {
		return nil, err
	}
	_, g, err := s.loadSource(a.sourceArgs)
	if err != nil {
		return nil, err
	}
	out, err := op(g, se, opts...)
	if err != nil {
		return nil, err
	}
	return s.result(a.engineArgs, g, out, se)
}

type kindArgs struct {
	opArgs
	Kind string `json:"kind,omitempty"`
}

func (s *Server) handleGradient(args json.RawMessage) (interface{}, error) {
	var a kindArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	var op operator
	switch a.Kind {
	case "", "full":
		op = morph.Gradient
	case "internal":
		op = morph.InternalGradient
	case "external":
		op = morph.ExternalGradient
	default:
		return nil, fmt.Errorf("unknown gradient kind %q: use full, internal or external", a.Kind)
	}
	return s.runOperator(a.opArgs, op)
}

func (s *Server) handleTopHat(args json.RawMessage) (interface{}, error) {
	var a kindArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	var op operator
	switch a.Kind {
	case "", "white":
		op = morph.WhiteTopHat
	case "black":
		op = morph.BlackTopHat
	default:
		return nil, fmt.Errorf("unknown top-hat kind %q: use white or black", a.Kind)
	}
	return s.runOperator(a.opArgs, op)
}

func (s *Server) handleReconstruct(args json.RawMessage) (interface{}, error) {
	var a kindArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	var op operator
	switch a.Kind {
	case "", "opening":
		op = morph.OpeningByReconstruction
	case "closing":
		op = morph.ClosingByReconstruction
	default:
		return nil, fmt.Errorf("unknown reconstruction kind %q: use opening or closing", a.Kind)
	}
	return s.runOperator(a.opArgs, op)
}

// === Filter Handlers ===

type asfArgs struct {
	opArgs
	Times *int   `json:"times,omitempty"`
	Order string `json:"order,omitempty"`
}

func (s *Server) handleASF(args json.RawMessage) (interface{}, error) {
	var a asfArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	times := 1
	if a.Times != nil {
		times = *a.Times
	}
	order, err := morph.ParseOrder(a.Order)
	if err != nil {
		return nil, err
	}
	return s.runOperator(a.opArgs, func(g *grid.Grid, se *strel.Element, opts ...morph.Option) (*grid.Grid, error) {
		return morph.ASF(g, se, times, order, opts...)
	})
}

type contrastArgs struct {
	opArgs
	Pair    string `json:"pair,omitempty"`
	Iterate bool   `json:"iterate,omitempty"`
}

func (s *Server) handleContrastMap(args json.RawMessage) (interface{}, error) {
	var a contrastArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	pair, err := morph.ParsePair(a.Pair)
	if err != nil {
		return nil, err
	}
	se, opts, err := a.build()
	if err != nil {
		return nil, err
	}
	_, g, err := s.loadSource(a.sourceArgs)
	if err != nil {
		return nil, err
	}

	var out *grid.Grid
	n := 1
	if a.Iterate {
		out, n, err = morph.IterativeContrastMapping(g, se, pair, opts...)
	} else {
		out, err = morph.ContrastMapping(g, se, pair, opts...)
	}
	if err != nil {
		return nil, err
	}
	res, err := s.result(a.engineArgs, g, out, se)
	if err != nil {
		return nil, err
	}
	res.Iterations = n
	return res, nil
}

type rankArgs struct {
	opArgs
	Rank *int `json:"rank,omitempty"`
}

func (s *Server) handleRank(args json.RawMessage) (interface{}, error) {
	var a rankArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Rank == nil {
		return s.runOperator(a.opArgs, morph.Median)
	}
	rank := *a.Rank
	return s.runOperator(a.opArgs, func(g *grid.Grid, se *strel.Element, opts ...morph.Option) (*grid.Grid, error) {
		return morph.Rank(g, se, rank, opts...)
	})
}

type levelArgs struct {
	opArgs
	Lambda     float64 `json:"lambda,omitempty"`
	Marker     string  `json:"marker,omitempty"`
	MarkerPath string  `json:"marker_path,omitempty"`
}

func (s *Server) handleLevel(args json.RawMessage) (interface{}, error) {
	var a levelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	se, opts, err := a.build()
	if err != nil {
		return nil, err
	}
	_, g, err := s.loadSource(a.sourceArgs)
	if err != nil {
		return nil, err
	}

	var marker *grid.Grid
	if a.MarkerPath != "" {
		src := a.sourceArgs
		src.Path = a.MarkerPath
		if _, marker, err = s.loadSource(src); err != nil {
			return nil, fmt.Errorf("marker: %w", err)
		}
	} else {
		switch a.Marker {
		case "", "asf":
			marker, err = morph.ASF(g, se, 1, morph.OpenClose, opts...)
		case "open":
			marker, err = morph.Open(g, se, opts...)
		case "close":
			marker, err = morph.Close(g, se, opts...)
		default:
			return nil, fmt.Errorf("unknown marker %q: use asf, open or close, or give marker_path", a.Marker)
		}
		if err != nil {
			return nil, err
		}
	}

	out, err := morph.Level(g, marker, a.Lambda, opts...)
	if err != nil {
		return nil, err
	}
	return s.result(a.engineArgs, g, out, nil)
}

type dmpArgs struct {
	sourceArgs
	engineArgs
	Size           int    `json:"size,omitempty"`
	Openings       *bool  `json:"openings,omitempty"`
	Closings       *bool  `json:"closings,omitempty"`
	Reconstruction bool   `json:"reconstruction,omitempty"`
	Shape          string `json:"shape,omitempty"`
}

func (s *Server) handleDMP(args json.RawMessage) (interface{}, error) {
	var a dmpArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	cfg := morph.DMPConfig{
		Size:           a.Size,
		Openings:       a.Openings == nil || *a.Openings,
		Closings:       a.Closings == nil || *a.Closings,
		Reconstruction: a.Reconstruction,
	}
	if cfg.Size == 0 {
		cfg.Size = 3
	}
	switch a.Shape {
	case "", "square":
	case "circle", "disk":
		cfg.Shape = strel.Circle
	case "cross":
		cfg.Shape = strel.Cross
	default:
		return nil, fmt.Errorf("unknown profile shape %q: use square, circle or cross", a.Shape)
	}

	opts, err := a.options()
	if err != nil {
		return nil, err
	}
	_, g, err := s.loadSource(a.sourceArgs)
	if err != nil {
		return nil, err
	}
	out, err := morph.DMP(g, cfg, opts...)
	if err != nil {
		return nil, err
	}
	// a profile is not a transformed copy of g, so it carries no change summary
	return imaging.EncodeGrid(out)
}

// === Segmentation Handler ===

type watershedArgs struct {
	sourceArgs
	engineArgs
	Band      int    `json:"band,omitempty"`
	Gradient  bool   `json:"gradient,omitempty"`
	Output    string `json:"output,omitempty"`
	LineColor string `json:"line_color,omitempty"`
	MaxStats  int    `json:"max_stats,omitempty"`
}

// WatershedResult is an encoded segmentation of one band.
type WatershedResult struct {
	Width           int                  `json:"width"`
	Height          int                  `json:"height"`
	Band            int                  `json:"band"`
	Regions         int                  `json:"regions"`
	WatershedPixels int                  `json:"watershed_pixels"`
	Largest         []imaging.RegionStat `json:"largest"`
	ImageBase64     string               `json:"image_base64"`
	MimeType        string               `json:"mime_type"`
}

func (s *Server) handleWatershed(args json.RawMessage) (interface{}, error) {
	var a watershedArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.ColorMode == "" {
		a.ColorMode = "gray"
	}
	if a.MaxStats <= 0 {
		a.MaxStats = 20
	}

	img, g, err := s.loadSource(a.sourceArgs)
	if err != nil {
		return nil, err
	}
	if a.Band < 0 || a.Band >= g.Dims().B {
		return nil, fmt.Errorf("%w: %d of %d", imaging.ErrBand, a.Band, g.Dims().B)
	}
	relief := g
	if a.Gradient {
		se, opts, err := a.build()
		if err != nil {
			return nil, err
		}
		if relief, err = morph.Gradient(g, se, opts...); err != nil {
			return nil, err
		}
	}

	lg, err := watershed.Segment(relief)
	if err != nil {
		return nil, err
	}

	var rendered image.Image
	switch a.Output {
	case "", "labels":
		rendered, err = imaging.ColorizeLabels(lg, a.Band)
	case "overlay":
		rendered, err = imaging.OverlayLines(img, lg, a.Band, a.LineColor)
	default:
		return nil, fmt.Errorf("unknown output %q: use labels or overlay", a.Output)
	}
	if err != nil {
		return nil, err
	}
	encoded, err := imaging.EncodePNG(rendered)
	if err != nil {
		return nil, err
	}

	stats, err := imaging.RegionStats(lg, relief, a.Band)
	if err != nil {
		return nil, err
	}
	lines := 0
	for _, l := range lg.PlaneLabels(a.Band) {
		if l.State == watershed.Watershed {
			lines++
		}
	}
	if len(stats) > a.MaxStats {
		stats = stats[:a.MaxStats]
	}

	s.log.WithFields(logrus.Fields{"regions": lg.Regions(a.Band), "band": a.Band}).Debug("segmented")
	return &WatershedResult{
		Width:           g.Dims().X,
		Height:          g.Dims().Y,
		Band:            a.Band,
		Regions:         lg.Regions(a.Band),
		WatershedPixels: lines,
		Largest:         stats,
		ImageBase64:     encoded,
		MimeType:        "image/png",
	}, nil
}
