package enginemem

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/uebridge/internal/engine"
	"github.com/vk/uebridge/internal/geometry"
)

func seededEngine(t *testing.T) *Engine {
	t.Helper()
	e := New()
	e.SeedDemoContent()
	return e
}

func spawnWall(t *testing.T, e *Engine, name string, x float64, scale geometry.Vec3) {
	t.Helper()
	_, err := e.SpawnActor("/Game/ModularOldTown/Meshes/SM_Wall_300", name, "", engine.Transform{
		Location: geometry.Vec3{X: x},
		Scale:    scale,
	})
	require.NoError(t, err)
}

func TestActorBoundsFollowAssetExtentAndScale(t *testing.T) {
	e := seededEngine(t)
	spawnWall(t, e, "Wall_01", 300, geometry.Vec3{X: 1, Y: 1, Z: 1})

	b, err := e.ActorBounds("Wall_01")
	require.NoError(t, err)
	require.Equal(t, 300.0, b.Origin.X)
	require.Equal(t, 150.0, b.Extent.X, "wall asset has a 150 half-extent")

	spawnWall(t, e, "Wall_02", 0, geometry.Vec3{X: 2, Y: 1, Z: 1})
	b, err = e.ActorBounds("Wall_02")
	require.NoError(t, err)
	require.Equal(t, 300.0, b.Extent.X, "extent scales with the actor")
}

func TestSpawnRejectsDuplicateNames(t *testing.T) {
	e := seededEngine(t)
	spawnWall(t, e, "Wall_01", 0, geometry.Vec3{X: 1, Y: 1, Z: 1})

	_, err := e.SpawnActor("/Game/ModularOldTown/Meshes/SM_Wall_300", "Wall_01", "", engine.Transform{})
	require.Error(t, err)
}

func TestSocketTransformIsWorldSpace(t *testing.T) {
	e := seededEngine(t)
	spawnWall(t, e, "Wall_01", 300, geometry.Vec3{X: 1, Y: 1, Z: 1})

	socket, err := e.SocketTransform("Wall_01", "WallRight")
	require.NoError(t, err)
	require.Equal(t, 600.0, socket.Location.X, "socket offset composes with the actor location")

	_, err = e.SocketTransform("Wall_01", "Nope")
	require.ErrorIs(t, err, engine.ErrSocketNotFound)
}

func TestListActorsFilterAndLimit(t *testing.T) {
	e := seededEngine(t)
	spawnWall(t, e, "Wall_01", 0, geometry.Vec3{X: 1, Y: 1, Z: 1})
	spawnWall(t, e, "Wall_02", 300, geometry.Vec3{X: 1, Y: 1, Z: 1})
	spawnWall(t, e, "Other", 600, geometry.Vec3{X: 1, Y: 1, Z: 1})

	refs, err := e.ListActors("Wall_", 0)
	require.NoError(t, err)
	require.Len(t, refs, 2)

	refs, err = e.ListActors("", 2)
	require.NoError(t, err)
	require.Len(t, refs, 2)
}

func TestSaveLevelFlagTracksMutations(t *testing.T) {
	e := seededEngine(t)
	spawnWall(t, e, "Wall_01", 0, geometry.Vec3{X: 1, Y: 1, Z: 1})
	require.False(t, e.Saved())

	require.NoError(t, e.SaveLevel())
	require.True(t, e.Saved())

	require.NoError(t, e.SetActorFolder("Wall_01", "F"))
	require.False(t, e.Saved(), "mutations dirty the level again")
}
