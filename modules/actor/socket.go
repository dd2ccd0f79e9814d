package actor

import (
	"context"
	"fmt"

	"github.com/vk/uebridge/internal/ctxlog"
	"github.com/vk/uebridge/internal/geometry"
)

// SnapInput defines the parameters of actor_snap_to_socket.
type SnapInput struct {
	SourceActor  string    `ue:"sourceActor"`
	TargetActor  string    `ue:"targetActor"`
	TargetSocket string    `ue:"targetSocket"`
	SourceSocket string    `ue:"sourceSocket"`
	Offset       []float64 `ue:"offset"`
	Validate     bool      `ue:"validate"`
}

// SnapToSocket moves the source actor so it sits on a socket of the target
// actor's mesh. When a source socket is given, the source actor is shifted
// so that socket, not its pivot, lands on the target socket.
func (m *Module) SnapToSocket(ctx context.Context, input *SnapInput) (any, error) {
	logger := ctxlog.FromContext(ctx)

	source, err := m.directory.FindActor(input.SourceActor)
	if err != nil {
		return nil, fmt.Errorf("Source actor not found: %s", input.SourceActor)
	}
	if _, err := m.directory.FindActor(input.TargetActor); err != nil {
		return nil, fmt.Errorf("Target actor not found: %s", input.TargetActor)
	}

	socket, err := m.directory.SocketTransform(input.TargetActor, input.TargetSocket)
	if err != nil {
		return nil, fmt.Errorf("Socket %q not found on %s", input.TargetSocket, input.TargetActor)
	}

	location := socket.Location.Add(geometry.Vec3FromArray(input.Offset))
	rotation := socket.Rotation

	if input.SourceSocket != "" {
		srcSocket, err := m.directory.SocketTransform(input.SourceActor, input.SourceSocket)
		if err != nil {
			return nil, fmt.Errorf("Socket %q not found on %s", input.SourceSocket, input.SourceActor)
		}
		// Shift by the source socket's offset from its actor pivot so the
		// two sockets coincide.
		location = location.Sub(srcSocket.Location.Sub(source.Transform.Location))
	}

	ref, err := m.mutator.SetActorTransform(input.SourceActor, &location, &rotation, nil)
	if err != nil {
		return nil, err
	}
	logger.Debug("Snapped actor to socket.",
		"source", input.SourceActor, "target", input.TargetActor, "socket", input.TargetSocket)

	result := map[string]any{
		"actorName":    ref.Name,
		"location":     ref.Transform.Location.Array(),
		"rotation":     ref.Transform.Rotation.Array(),
		"targetSocket": input.TargetSocket,
		"message": fmt.Sprintf("Snapped %s to socket %s on %s",
			input.SourceActor, input.TargetSocket, input.TargetActor),
	}
	if input.Validate {
		var errs []string
		errs = appendVecMismatch(errs, "location", location, ref.Transform.Location)
		errs = appendVecMismatch(errs, "rotation", rotation, ref.Transform.Rotation)
		addValidation(result, errs)
	}
	return result, nil
}
