package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-lasso/internal/edgemap"
	"github.com/ironsheep/image-lasso/internal/editor"
	"github.com/ironsheep/image-lasso/internal/geometry"
	"github.com/ironsheep/image-lasso/internal/lasso"
	"github.com/ironsheep/image-lasso/internal/monitoring"
	"github.com/ironsheep/image-lasso/internal/render"
	"github.com/ironsheep/image-lasso/internal/selection"
)

// errNoImage is returned by tools that need an open image.
var errNoImage = errors.New("no image is open; call lasso_open_image first")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "lasso_open_image", "lasso_pointer").
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
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Image
	case "lasso_open_image":
		return s.handleOpenImage(args)

	// Tools and tracing
	case "lasso_select_tool":
		return s.handleSelectTool(args)
	case "lasso_pointer":
		return s.handlePointer(args)
	case "lasso_remove_last_point":
		return s.handleRemoveLastPoint()
	case "lasso_complete":
		return s.handleComplete()
	case "lasso_cancel":
		return s.handleCancel()
	case "lasso_set_sensitivity":
		return s.handleSetSensitivity(args)
	case "lasso_set_permission":
		return s.handleSetPermission(args)

	// Editing
	case "lasso_delete":
		return s.handleDelete()
	case "lasso_translate":
		return s.handleTranslate(args)
	case "lasso_copy":
		return s.handleCopy()
	case "lasso_paste":
		return s.handlePaste(args)
	case "lasso_undo":
		return s.handleUndo()
	case "lasso_redo":
		return s.handleRedo()

	// Output
	case "lasso_regions":
		return s.handleRegions(args)
	case "lasso_extract_region":
		return s.handleExtractRegion(args)
	case "lasso_render":
		return s.handleRender(args)

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

// TraceState summarises the editor after a tracing call.
type TraceState struct {
	Tool     string            `json:"tool"`
	Active   bool              `json:"active"`
	Points   int               `json:"points"`
	Visuals  int               `json:"visuals"`
	Region   *selection.Region `json:"region,omitempty"`
	CanUndo  bool              `json:"can_undo"`
	CanRedo  bool              `json:"can_redo"`
	EdgeMap  string            `json:"edge_map"`
	Modified bool              `json:"modified,omitempty"`
}

func (s *Server) state() *TraceState {
	return &TraceState{
		Tool:    s.editor.Tool().String(),
		Active:  s.editor.Active(),
		Points:  len(s.editor.Points()),
		Visuals: s.host.TransientCount(),
		CanUndo: s.editor.CanUndo(),
		CanRedo: s.editor.CanRedo(),
		EdgeMap: edgeStatus(s.editor.Edges()),
	}
}

func (s *Server) stateWith(r selection.Region, ok bool) *TraceState {
	st := s.state()
	if ok {
		st.Region = &r
	}
	return st
}

func edgeStatus(f *edgemap.Future) string {
	switch {
	case f == nil:
		return "none"
	case !f.Ready():
		return "pending"
	case f.Err() != nil:
		return "failed"
	default:
		return "ready"
	}
}

// === Image Handlers ===

type openImageArgs struct {
	Path string `json:"path"`
	Wait bool   `json:"wait"`
}

// OpenImageResult describes the image opened for editing.
type OpenImageResult struct {
	Path    string  `json:"path"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
	EdgeMap string  `json:"edge_map"`
	MaxEdge float64 `json:"max_edge,omitempty"`
}

func (s *Server) handleOpenImage(args json.RawMessage) (interface{}, error) {
	var a openImageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	if err := s.resetCanvas(); err != nil {
		return nil, err
	}

	img, err := imaging.Open(a.Path, imaging.AutoOrientation(true))
	if err != nil {
		err = fmt.Errorf("%w: %w", edgemap.ErrDecode, err)
		s.image, s.path = nil, ""
		s.editor.AttachImage(edgemap.Failed(err))
		return nil, fmt.Errorf("%w: %w", editor.ErrToolUnavailable, err)
	}
	s.image, s.path = img, a.Path

	path := a.Path
	future := edgemap.Go(context.Background(), func(context.Context) (*edgemap.Map, error) {
		return s.maps.LoadImage(path, img)
	})
	s.editor.AttachImage(future)
	monitoring.Logf("server: opened %s (%dx%d)", a.Path, img.Bounds().Dx(), img.Bounds().Dy())

	result := &OpenImageResult{
		Path:   a.Path,
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}
	if a.Wait {
		if m, err := future.Wait(context.Background()); err == nil {
			result.MaxEdge = m.Max()
		}
	}
	result.EdgeMap = edgeStatus(future)
	return result, nil
}

// resetCanvas gives a newly opened image a fresh canvas and history while
// keeping the tool, sensitivity and permission tag.
func (s *Server) resetCanvas() error {
	old := s.editor
	old.Cancel()
	if err := s.host.Deserialize([]byte(`{"objects":[]}`)); err != nil {
		return err
	}
	ed, err := editor.New(s.host,
		editor.WithConfig(s.cfg.Lasso()),
		editor.WithHistoryDepth(s.cfg.HistoryDepth),
	)
	if err != nil {
		return err
	}
	ed.SetSensitivity(old.Sensitivity())
	ed.SetPermissionTag(old.PermissionTag())
	if err := ed.SelectTool(old.Tool()); err != nil {
		return err
	}
	s.editor = ed
	return nil
}

// === Tool and Tracing Handlers ===

type selectToolArgs struct {
	Tool string `json:"tool"`
}

func (s *Server) handleSelectTool(args json.RawMessage) (interface{}, error) {
	var a selectToolArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	kind, err := lasso.ParseToolKind(a.Tool)
	if err != nil {
		return nil, err
	}
	if err := s.editor.SelectTool(kind); err != nil {
		return nil, err
	}
	return s.state(), nil
}

type pointerArgs struct {
	Event string   `json:"event"`
	X     *float64 `json:"x"`
	Y     *float64 `json:"y"`
}

func (s *Server) handlePointer(args json.RawMessage) (interface{}, error) {
	var a pointerArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.X == nil || a.Y == nil {
		return nil, fmt.Errorf("x and y are required")
	}
	p := geometry.Pt(*a.X, *a.Y)

	switch a.Event {
	case "down":
		return s.stateWith(s.editor.PointerDown(p)), nil
	case "move":
		s.editor.PointerMove(p)
		return s.state(), nil
	case "up":
		return s.stateWith(s.editor.PointerUp(p)), nil
	default:
		return nil, fmt.Errorf("unknown pointer event: %q", a.Event)
	}
}

func (s *Server) handleRemoveLastPoint() (interface{}, error) {
	st := s.state()
	st.Modified = s.editor.RemoveLastPoint()
	st.Active = s.editor.Active()
	st.Points = len(s.editor.Points())
	return st, nil
}

func (s *Server) handleComplete() (interface{}, error) {
	return s.stateWith(s.editor.Complete()), nil
}

func (s *Server) handleCancel() (interface{}, error) {
	s.editor.Cancel()
	return s.state(), nil
}

type setSensitivityArgs struct {
	Value int `json:"value"`
}

func (s *Server) handleSetSensitivity(args json.RawMessage) (interface{}, error) {
	var a setSensitivityArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	s.editor.SetSensitivity(a.Value)
	return map[string]interface{}{"sensitivity": s.editor.Sensitivity()}, nil
}

type setPermissionArgs struct {
	Tag string `json:"tag"`
}

func (s *Server) handleSetPermission(args json.RawMessage) (interface{}, error) {
	var a setPermissionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	s.editor.SetPermissionTag(selection.PermissionTag(a.Tag))
	return map[string]interface{}{"permission_tag": a.Tag}, nil
}

// === Editing Handlers ===

func (s *Server) handleDelete() (interface{}, error) {
	if err := s.editor.Delete(); err != nil {
		return nil, err
	}
	st := s.state()
	st.Modified = true
	return st, nil
}

type offsetArgs struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

func (s *Server) handleTranslate(args json.RawMessage) (interface{}, error) {
	var a offsetArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	r, ok, err := s.editor.Translate(a.DX, a.DY)
	if err != nil {
		return nil, err
	}
	st := s.stateWith(r, ok)
	st.Modified = true
	return st, nil
}

func (s *Server) handleCopy() (interface{}, error) {
	if err := s.editor.Copy(); err != nil {
		return nil, err
	}
	return map[string]interface{}{"copied": 1}, nil
}

func (s *Server) handlePaste(args json.RawMessage) (interface{}, error) {
	var a offsetArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	ids := s.editor.Paste(a.DX, a.DY)
	st := s.state()
	st.Modified = len(ids) > 0
	return st, nil
}

func (s *Server) handleUndo() (interface{}, error) {
	ok, err := s.editor.Undo()
	if err != nil {
		return nil, err
	}
	st := s.state()
	st.Modified = ok
	return st, nil
}

func (s *Server) handleRedo() (interface{}, error) {
	ok, err := s.editor.Redo()
	if err != nil {
		return nil, err
	}
	st := s.state()
	st.Modified = ok
	return st, nil
}

// === Output Handlers ===

type regionsArgs struct {
	IncludePoints *bool `json:"include_points"`
}

func (s *Server) handleRegions(args json.RawMessage) (interface{}, error) {
	var a regionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	regions := s.editor.Regions()
	if a.IncludePoints != nil && !*a.IncludePoints {
		for i, r := range regions {
			regions[i] = selection.FromPoints(r.Points(), r.Tag(),
				selection.WithID(r.ID()), selection.WithoutPoints())
		}
	}
	if regions == nil {
		regions = []selection.Region{}
	}
	return map[string]interface{}{
		"image":   s.path,
		"regions": regions,
	}, nil
}

type extractRegionArgs struct {
	ID    string  `json:"id"`
	Scale float64 `json:"scale"`
}

// ExtractResult contains the extracted region as PNG data.
type ExtractResult struct {
	RegionID    string `json:"region_id"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

func (s *Server) handleExtractRegion(args json.RawMessage) (interface{}, error) {
	var a extractRegionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	if s.image == nil {
		return nil, errNoImage
	}
	r, ok := s.editor.Region(a.ID)
	if !ok {
		return nil, fmt.Errorf("unknown region: %s", a.ID)
	}

	cropped, err := selection.Extract(s.image, r)
	if err != nil {
		return nil, err
	}
	var out image.Image = cropped
	if a.Scale != 1.0 && a.Scale > 0 {
		newWidth := max(1, int(float64(out.Bounds().Dx())*a.Scale))
		newHeight := max(1, int(float64(out.Bounds().Dy())*a.Scale))
		out = imaging.Resize(out, newWidth, newHeight, imaging.Lanczos)
	}

	data, err := encodePNG(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode region: %w", err)
	}

	return &ExtractResult{
		RegionID:    r.ID(),
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		ImageBase64: data,
		MimeType:    "image/png",
	}, nil
}

type renderArgs struct {
	GridSpacing int     `json:"grid_spacing"`
	Labels      bool    `json:"labels"`
	GridColor   string  `json:"grid_color"`
	FillAlpha   float64 `json:"fill_alpha"`
}

// RenderResult contains the open image with the canvas drawn over it.
type RenderResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Objects     int    `json:"objects"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

func (s *Server) handleRender(args json.RawMessage) (interface{}, error) {
	var a renderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if s.image == nil {
		return nil, errNoImage
	}

	out, err := render.Draw(s.image, s.host, render.Options{
		GridSpacing: a.GridSpacing,
		Labels:      a.Labels,
		GridColor:   a.GridColor,
		FillAlpha:   a.FillAlpha,
	})
	if err != nil {
		return nil, err
	}
	data, err := encodePNG(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode canvas: %w", err)
	}

	return &RenderResult{
		Width:       out.Bounds().Dx(),
		Height:      out.Bounds().Dy(),
		Objects:     s.host.Len(),
		ImageBase64: data,
		MimeType:    "image/png",
	}, nil
}

func encodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
