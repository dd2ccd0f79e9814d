package enginemem

import (
	"fmt"
	"math"

	"github.com/vk/uebridge/internal/engine"
	"github.com/vk/uebridge/internal/geometry"
)

var renderModes = map[string]bool{
	"lit": true, "unlit": true, "wireframe": true,
	"detail_lighting": true, "lighting_only": true,
}

var viewModes = map[string]bool{
	"perspective": true, "top": true, "bottom": true,
	"left": true, "right": true, "front": true, "back": true,
}

// --- Viewport ---

// SetCamera applies the non-nil camera components.
func (e *Engine) SetCamera(location, rotation *geometry.Vec3) (engine.CameraState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if location != nil {
		e.camera.Location = *location
	}
	if rotation != nil {
		e.camera.Rotation = *rotation
	}
	return e.camera, nil
}

// FocusOnActor points the camera at an actor from a distance proportional to
// its bounds.
func (e *Engine) FocusOnActor(name string, preserveRotation bool) (engine.CameraState, error) {
	bounds, err := e.ActorBounds(name)
	if err != nil {
		return engine.CameraState{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	distance := bounds.Extent.Length()*2 + 100
	e.camera.Location = bounds.Origin.Add(geometry.Vec3{X: -distance, Z: distance * 0.5})
	if !preserveRotation {
		e.camera.Rotation = geometry.Vec3{Y: -30} // pitch down at the target
	}
	return e.camera, nil
}

// FitActors frames the union bounds of the named actors.
func (e *Engine) FitActors(names []string, padding float64) (engine.CameraState, error) {
	if len(names) == 0 {
		return engine.CameraState{}, fmt.Errorf("no actors to fit")
	}

	union, err := e.unionBounds(names)
	if err != nil {
		return engine.CameraState{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	distance := union.Extent.Length()*2 + padding
	e.camera.Location = union.Origin.Add(geometry.Vec3{X: -distance, Z: distance * 0.5})
	e.camera.Rotation = geometry.Vec3{Y: -30}
	return e.camera, nil
}

// LookAt positions the camera at the given height and distance from the
// target, pitched to face it.
func (e *Engine) LookAt(target geometry.Vec3, distance, pitch, height float64) (engine.CameraState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if distance <= 0 {
		distance = 500
	}
	e.camera.Location = target.Add(geometry.Vec3{X: -distance, Z: height})
	if pitch == 0 && height > 0 {
		pitch = -math.Atan2(height, distance) * 180 / math.Pi
	}
	e.camera.Rotation = geometry.Vec3{Y: pitch}
	return e.camera, nil
}

// SetRenderMode switches the viewport render mode.
func (e *Engine) SetRenderMode(mode string) error {
	if !renderModes[mode] {
		return fmt.Errorf("unknown render mode: %s", mode)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderMode = mode
	return nil
}

// SetViewMode switches the viewport projection.
func (e *Engine) SetViewMode(mode string) error {
	if !viewModes[mode] {
		return fmt.Errorf("unknown view mode: %s", mode)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.viewMode = mode
	return nil
}

// Camera returns the current camera state.
func (e *Engine) Camera() engine.CameraState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.camera
}

// VisibleBounds returns the union bounds of every actor in the level.
func (e *Engine) VisibleBounds() (engine.BoundsInfo, error) {
	e.mu.RLock()
	names := make([]string, 0, len(e.actors))
	for name := range e.actors {
		names = append(names, name)
	}
	e.mu.RUnlock()

	if len(names) == 0 {
		return engine.BoundsInfo{}, nil
	}
	return e.unionBounds(names)
}

// Screenshot records a capture request and returns the path the host would
// have written.
func (e *Engine) Screenshot(width, height int) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.screenshotSeq++
	return fmt.Sprintf("%s/uebridge_screenshot_%03d_%dx%d.png", e.screenshotDir, e.screenshotSeq, width, height), nil
}

func (e *Engine) unionBounds(names []string) (engine.BoundsInfo, error) {
	var union geometry.Box
	first := true
	for _, name := range names {
		b, err := e.ActorBounds(name)
		if err != nil {
			return engine.BoundsInfo{}, err
		}
		box := b.Box()
		if first {
			union = box
			first = false
			continue
		}
		union.Min = geometry.Vec3{
			X: math.Min(union.Min.X, box.Min.X),
			Y: math.Min(union.Min.Y, box.Min.Y),
			Z: math.Min(union.Min.Z, box.Min.Z),
		}
		union.Max = geometry.Vec3{
			X: math.Max(union.Max.X, box.Max.X),
			Y: math.Max(union.Max.Y, box.Max.Y),
			Z: math.Max(union.Max.Z, box.Max.Z),
		}
	}
	return engine.BoundsInfo{
		Origin: union.Center(),
		Extent: union.Size().Scale(0.5),
	}, nil
}
