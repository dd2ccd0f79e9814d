package actor

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/uebridge/internal/ctxlog"
	"github.com/vk/uebridge/internal/placement"
)

// PlacementInput defines the parameters of actor_placement_validate.
type PlacementInput struct {
	Actors         []string `ue:"actors"`
	Tolerance      float64  `ue:"tolerance"`
	CheckAlignment bool     `ue:"checkAlignment"`
	ModularSize    float64  `ue:"modularSize"`
}

// PlacementValidate checks a set of modular actors for gaps, overlaps, and
// grid misalignment, and returns the full placement report.
func (m *Module) PlacementValidate(ctx context.Context, input *PlacementInput) (any, error) {
	logger := ctxlog.FromContext(ctx)

	if len(input.Actors) < 2 {
		return nil, fmt.Errorf("At least 2 actors required for placement validation")
	}

	bounds, missing := m.gatherBounds(ctx, input.Actors)
	if len(missing) > 0 {
		return nil, fmt.Errorf("Actors not found: %s", strings.Join(missing, ", "))
	}
	if len(bounds) < 2 {
		return nil, fmt.Errorf("Could not get bounds for enough actors to perform validation")
	}

	opts := placement.Options{
		Tolerance:      input.Tolerance,
		CheckAlignment: input.CheckAlignment,
		ModularSize:    input.ModularSize,
	}
	report := placement.Validate(bounds, opts)
	// The report counts every requested actor, including any skipped for
	// unreadable bounds.
	report.Summary.TotalActors = len(input.Actors)
	logger.Debug("Placement validation complete.",
		"actors", len(bounds), "status", report.Summary.Status)
	return report, nil
}

// gatherBounds resolves each actor to its world bounds. Missing actors are
// collected for the caller; actors whose bounds cannot be read are skipped
// with a warning, matching editor behavior for unloaded components.
func (m *Module) gatherBounds(ctx context.Context, names []string) ([]placement.ActorBounds, []string) {
	logger := ctxlog.FromContext(ctx)

	var bounds []placement.ActorBounds
	var missing []string
	for _, name := range names {
		ref, err := m.directory.FindActor(name)
		if err != nil {
			missing = append(missing, name)
			continue
		}
		b, err := m.directory.ActorBounds(name)
		if err != nil {
			logger.Warn("Could not read actor bounds, skipping.", "name", name, "error", err)
			continue
		}
		bounds = append(bounds, placement.ActorBounds{
			Name:     name,
			Location: ref.Transform.Location,
			Box:      b.Box(),
		})
	}
	return bounds, missing
}
