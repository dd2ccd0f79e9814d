// Package viewport implements the viewport_* camera and capture commands.
package viewport

import (
	"context"
	"fmt"
	"reflect"

	"github.com/vk/uebridge/internal/ctxlog"
	"github.com/vk/uebridge/internal/engine"
	"github.com/vk/uebridge/internal/geometry"
	"github.com/vk/uebridge/internal/registry"
)

// Module implements the registry.Module interface for viewport commands.
type Module struct {
	viewport engine.Viewport
}

func New(viewport engine.Viewport) *Module {
	return &Module{viewport: viewport}
}

func (m *Module) Register(r *registry.Registry) {
	r.RegisterCommand("ViewportScreenshot", &registry.RegisteredCommand{
		NewInput:  func() any { return new(ScreenshotInput) },
		InputType: reflect.TypeOf(ScreenshotInput{}),
		Fn:        m.Screenshot,
	})
	r.RegisterCommand("ViewportSetCamera", &registry.RegisteredCommand{
		NewInput:  func() any { return new(SetCameraInput) },
		InputType: reflect.TypeOf(SetCameraInput{}),
		Fn:        m.SetCamera,
	})
	r.RegisterCommand("ViewportFocus", &registry.RegisteredCommand{
		NewInput:  func() any { return new(FocusInput) },
		InputType: reflect.TypeOf(FocusInput{}),
		Fn:        m.Focus,
	})
	r.RegisterCommand("ViewportRenderMode", &registry.RegisteredCommand{
		NewInput:  func() any { return new(RenderModeInput) },
		InputType: reflect.TypeOf(RenderModeInput{}),
		Fn:        m.RenderMode,
	})
	r.RegisterCommand("ViewportSetMode", &registry.RegisteredCommand{
		NewInput:  func() any { return new(SetModeInput) },
		InputType: reflect.TypeOf(SetModeInput{}),
		Fn:        m.SetMode,
	})
	r.RegisterCommand("ViewportBounds", &registry.RegisteredCommand{
		NewInput:  func() any { return new(BoundsInput) },
		InputType: reflect.TypeOf(BoundsInput{}),
		Fn:        m.Bounds,
	})
	r.RegisterCommand("ViewportFitActors", &registry.RegisteredCommand{
		NewInput:  func() any { return new(FitActorsInput) },
		InputType: reflect.TypeOf(FitActorsInput{}),
		Fn:        m.FitActors,
	})
	r.RegisterCommand("ViewportLookAt", &registry.RegisteredCommand{
		NewInput:  func() any { return new(LookAtInput) },
		InputType: reflect.TypeOf(LookAtInput{}),
		Fn:        m.LookAt,
	})
}

func cameraResult(state engine.CameraState) map[string]any {
	return map[string]any{
		"location": state.Location.Array(),
		"rotation": state.Rotation.Array(),
	}
}

// ScreenshotInput defines the parameters of viewport_screenshot.
type ScreenshotInput struct {
	Width  int `ue:"width"`
	Height int `ue:"height"`
}

// Screenshot captures the active viewport to a file.
func (m *Module) Screenshot(ctx context.Context, input *ScreenshotInput) (any, error) {
	path, err := m.viewport.Screenshot(input.Width, input.Height)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Captured screenshot.", "path", path)
	return map[string]any{
		"filepath": path,
		"width":    input.Width,
		"height":   input.Height,
	}, nil
}

// SetCameraInput defines the parameters of viewport_set_camera. Nil slices
// leave that camera component unchanged.
type SetCameraInput struct {
	Location []float64 `ue:"location"`
	Rotation []float64 `ue:"rotation"`
}

// SetCamera moves or rotates the editor camera.
func (m *Module) SetCamera(ctx context.Context, input *SetCameraInput) (any, error) {
	state, err := m.viewport.SetCamera(vecPtr(input.Location), vecPtr(input.Rotation))
	if err != nil {
		return nil, err
	}
	return cameraResult(state), nil
}

// FocusInput defines the parameters of viewport_focus_on_actor.
type FocusInput struct {
	ActorName        string `ue:"actorName"`
	PreserveRotation bool   `ue:"preserveRotation"`
}

// Focus centers the camera on a single actor.
func (m *Module) Focus(ctx context.Context, input *FocusInput) (any, error) {
	state, err := m.viewport.FocusOnActor(input.ActorName, input.PreserveRotation)
	if err != nil {
		return nil, fmt.Errorf("Actor not found: %s", input.ActorName)
	}
	result := cameraResult(state)
	result["actorName"] = input.ActorName
	return result, nil
}

// RenderModeInput defines the parameters of viewport_set_render_mode.
type RenderModeInput struct {
	Mode string `ue:"mode"`
}

// RenderMode switches the viewport render mode, e.g. lit or wireframe.
func (m *Module) RenderMode(ctx context.Context, input *RenderModeInput) (any, error) {
	if err := m.viewport.SetRenderMode(input.Mode); err != nil {
		return nil, err
	}
	return map[string]any{
		"mode":    input.Mode,
		"message": fmt.Sprintf("Render mode set to %s", input.Mode),
	}, nil
}

// SetModeInput defines the parameters of viewport_set_mode.
type SetModeInput struct {
	Mode string `ue:"mode"`
}

// SetMode switches the viewport to a standard view, e.g. top or front.
func (m *Module) SetMode(ctx context.Context, input *SetModeInput) (any, error) {
	if err := m.viewport.SetViewMode(input.Mode); err != nil {
		return nil, err
	}
	return map[string]any{
		"mode":    input.Mode,
		"message": fmt.Sprintf("Viewport mode set to %s", input.Mode),
	}, nil
}

// BoundsInput defines the parameters of viewport_get_bounds.
type BoundsInput struct{}

// Bounds reports the world region the camera currently covers.
func (m *Module) Bounds(ctx context.Context, input *BoundsInput) (any, error) {
	bounds, err := m.viewport.VisibleBounds()
	if err != nil {
		return nil, err
	}
	state := m.viewport.Camera()
	return map[string]any{
		"origin": bounds.Origin.Array(),
		"extent": bounds.Extent.Array(),
		"camera": cameraResult(state),
	}, nil
}

// FitActorsInput defines the parameters of viewport_fit_actors.
type FitActorsInput struct {
	Actors  []string `ue:"actors"`
	Padding float64  `ue:"padding"`
}

// FitActors frames a set of actors in the viewport.
func (m *Module) FitActors(ctx context.Context, input *FitActorsInput) (any, error) {
	if len(input.Actors) == 0 {
		return nil, fmt.Errorf("actors list is empty")
	}
	state, err := m.viewport.FitActors(input.Actors, input.Padding)
	if err != nil {
		return nil, err
	}
	result := cameraResult(state)
	result["fittedActors"] = input.Actors
	return result, nil
}

// LookAtInput defines the parameters of viewport_look_at_target.
type LookAtInput struct {
	Target   []float64 `ue:"target"`
	Distance float64   `ue:"distance"`
	Pitch    float64   `ue:"pitch"`
	Height   float64   `ue:"height"`
}

// LookAt positions the camera at a distance from a world point, looking at
// it.
func (m *Module) LookAt(ctx context.Context, input *LookAtInput) (any, error) {
	state, err := m.viewport.LookAt(
		geometry.Vec3FromArray(input.Target), input.Distance, input.Pitch, input.Height)
	if err != nil {
		return nil, err
	}
	return cameraResult(state), nil
}

func vecPtr(a []float64) *geometry.Vec3 {
	if a == nil {
		return nil
	}
	v := geometry.Vec3FromArray(a)
	return &v
}
