package actor

import (
	"fmt"
	"math"

	"github.com/vk/uebridge/internal/engine"
	"github.com/vk/uebridge/internal/geometry"
)

// transformTolerance is the maximum per-component deviation accepted when
// verifying a transform was applied.
const transformTolerance = 0.1

// addValidation folds verification errors into a command result. An empty
// error list marks the result validated.
func addValidation(result map[string]any, errs []string) {
	result["validated"] = len(errs) == 0
	if len(errs) > 0 {
		result["validation_errors"] = errs
	}
}

// verifySpawn re-reads the actor and checks the requested transform and
// folder actually took.
func (m *Module) verifySpawn(name string, want engine.Transform, folder string) []string {
	ref, err := m.directory.FindActor(name)
	if err != nil {
		return []string{fmt.Sprintf("actor %s not found after spawn", name)}
	}

	var errs []string
	errs = appendVecMismatch(errs, "location", want.Location, ref.Transform.Location)
	errs = appendVecMismatch(errs, "rotation", want.Rotation, ref.Transform.Rotation)
	errs = appendVecMismatch(errs, "scale", want.Scale, ref.Transform.Scale)
	if folder != "" && ref.Folder != folder {
		errs = append(errs, fmt.Sprintf("folder is %q, expected %q", ref.Folder, folder))
	}
	return errs
}

func (m *Module) verifyDeleted(name string) []string {
	if _, err := m.directory.FindActor(name); err == nil {
		return []string{fmt.Sprintf("actor %s still exists after delete", name)}
	}
	return nil
}

// verifyModify checks only the properties the request asked to change.
func (m *Module) verifyModify(input *ModifyInput, want engine.ActorRef) []string {
	ref, err := m.directory.FindActor(input.ActorName)
	if err != nil {
		return []string{fmt.Sprintf("actor %s not found after modify", input.ActorName)}
	}

	var errs []string
	if input.Location != nil {
		errs = appendVecMismatch(errs, "location", geometry.Vec3FromArray(input.Location), ref.Transform.Location)
	}
	if input.Rotation != nil {
		errs = appendVecMismatch(errs, "rotation", geometry.Vec3FromArray(input.Rotation), ref.Transform.Rotation)
	}
	if input.Scale != nil {
		errs = appendVecMismatch(errs, "scale", geometry.Vec3FromArray(input.Scale), ref.Transform.Scale)
	}
	if input.Folder != "" && ref.Folder != input.Folder {
		errs = append(errs, fmt.Sprintf("folder is %q, expected %q", ref.Folder, input.Folder))
	}
	if input.Mesh != "" && ref.AssetPath != input.Mesh {
		errs = append(errs, fmt.Sprintf("mesh is %q, expected %q", ref.AssetPath, input.Mesh))
	}
	return errs
}

func appendVecMismatch(errs []string, what string, want, got geometry.Vec3) []string {
	if math.Abs(want.X-got.X) > transformTolerance ||
		math.Abs(want.Y-got.Y) > transformTolerance ||
		math.Abs(want.Z-got.Z) > transformTolerance {
		errs = append(errs, fmt.Sprintf("%s is %v, expected %v", what, got.Array(), want.Array()))
	}
	return errs
}
