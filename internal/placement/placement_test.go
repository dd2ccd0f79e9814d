package placement

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/uebridge/internal/geometry"
)

// wall builds a 300x30x300 modular wall piece centered at the given point.
func wall(name string, x, y, z float64) ActorBounds {
	center := geometry.Vec3{X: x, Y: y, Z: z}
	return ActorBounds{
		Name:     name,
		Location: center,
		Box:      geometry.BoxFromCenterExtent(center, geometry.Vec3{X: 150, Y: 15, Z: 150}),
	}
}

// cube builds an axis-aligned cube of the given half-extent.
func cube(name string, x, y, z, extent float64) ActorBounds {
	center := geometry.Vec3{X: x, Y: y, Z: z}
	return ActorBounds{
		Name:     name,
		Location: center,
		Box:      geometry.BoxFromCenterExtent(center, geometry.Vec3{X: extent, Y: extent, Z: extent}),
	}
}

func noAlignment(tolerance float64) Options {
	return Options{Tolerance: tolerance, CheckAlignment: false, ModularSize: 300}
}

func TestClassifyGapOnNearestAxis(t *testing.T) {
	// 50 units apart on X, aligned on Y and Z.
	f := Classify(wall("WallA", 0, 0, 0), wall("WallB", 350, 0, 0))

	require.Equal(t, KindGap, f.Kind)
	require.Equal(t, geometry.AxisX, f.Axis)
	require.InDelta(t, 50.0, f.Distance, 1e-9)
	require.Equal(t, [2]string{"WallA", "WallB"}, f.Actors)
	require.InDelta(t, 175.0, f.Location.X, 1e-9, "gap reported at the pair midpoint")
}

func TestClassifyGapPicksSmallestSeparatedAxis(t *testing.T) {
	// Separated by 100 on X and by 40 on Y: Y is the nearest approach.
	f := Classify(cube("A", 0, 0, 0, 50), cube("B", 200, 140, 0, 50))

	require.Equal(t, KindGap, f.Kind)
	require.Equal(t, geometry.AxisY, f.Axis)
	require.InDelta(t, 40.0, f.Distance, 1e-9)
}

func TestClassifyOverlapPicksDeepestAxis(t *testing.T) {
	// Cubes of half-extent 50 offset 80 on X, 30 on Y, 90 on Z: penetration
	// is 20 on X, 70 on Y, 10 on Z, so the overlap reports on Y.
	f := Classify(cube("A", 0, 0, 0, 50), cube("B", 80, 30, 90, 50))

	require.Equal(t, KindOverlap, f.Kind)
	require.Equal(t, geometry.AxisY, f.Axis)
	require.InDelta(t, 70.0, f.Distance, 1e-9)
}

func TestClassifyTouchingFaces(t *testing.T) {
	f := Classify(wall("A", 0, 0, 0), wall("B", 300, 0, 0))

	require.Equal(t, KindTouching, f.Kind)
	require.Zero(t, f.Distance)
}

func TestClassifyOverlapIgnoresCoextensiveAxes(t *testing.T) {
	// Walls in a row penetrating 20 on X. They run the full 30 on Y and
	// 300 on Z through each other, but those spans are how the pieces are
	// shaped, not how they collided: the finding is the 20-unit X push.
	f := Classify(wall("A", 0, 0, 0), wall("B", 280, 0, 0))

	require.Equal(t, KindOverlap, f.Kind)
	require.Equal(t, geometry.AxisX, f.Axis)
	require.InDelta(t, 20.0, f.Distance, 1e-9)
}

func TestClassifyContainedBoxReportsDeepestAxis(t *testing.T) {
	// A small cube fully inside a wall has no partial penetration on any
	// axis; the deepest span stands in.
	f := Classify(wall("A", 0, 0, 0), cube("B", 0, 0, 0, 10))

	require.Equal(t, KindOverlap, f.Kind)
	require.InDelta(t, 20.0, f.Distance, 1e-9)
}

func TestOverlapSeverityBoundariesAreInclusive(t *testing.T) {
	require.Equal(t, SeverityMinor, OverlapSeverity(29.999, 300))
	require.Equal(t, SeverityMajor, OverlapSeverity(30, 300), "exactly 10% is major")
	require.Equal(t, SeverityMajor, OverlapSeverity(74.999, 300))
	require.Equal(t, SeverityCritical, OverlapSeverity(75, 300), "exactly 25% is critical")
	require.Equal(t, SeverityCritical, OverlapSeverity(200, 300))
}

func TestValidateRetainsOnlyFindingsBeyondTolerance(t *testing.T) {
	// 10-unit gap with tolerance 10: not retained, distance must strictly
	// exceed the tolerance.
	report := Validate([]ActorBounds{wall("A", 0, 0, 0), wall("B", 310, 0, 0)}, noAlignment(10))
	require.Equal(t, 0, report.Summary.GapCount)
	require.Equal(t, StatusGood, report.Summary.Status)

	// 10.001 units is retained.
	report = Validate([]ActorBounds{wall("A", 0, 0, 0), wall("B", 310.001, 0, 0)}, noAlignment(10))
	require.Equal(t, 1, report.Summary.GapCount)
}

func TestValidateReportsGapScenario(t *testing.T) {
	report := Validate([]ActorBounds{wall("WallA", 0, 0, 0), wall("WallB", 350, 0, 0)}, noAlignment(10))

	require.True(t, report.Success)
	require.Len(t, report.Gaps, 1)
	gap := report.Gaps[0]
	require.InDelta(t, 50.0, gap.Distance, 1e-9)
	require.Equal(t, "X", gap.Direction)
	require.Equal(t, []string{"WallA", "WallB"}, gap.Actors)
	require.Equal(t, StatusMinorIssues, report.Summary.Status)
	require.Equal(t, 1, report.Summary.TotalIssues)
	require.Equal(t, 2, report.Summary.TotalActors)
}

func TestValidateReportsMinorOverlapScenario(t *testing.T) {
	// 20-unit penetration on X: above tolerance, below 10% of 300.
	report := Validate([]ActorBounds{wall("A", 0, 0, 0), wall("B", 280, 0, 0)}, noAlignment(10))

	require.Len(t, report.Overlaps, 1)
	o := report.Overlaps[0]
	require.InDelta(t, 20.0, o.Amount, 1e-9)
	require.Equal(t, "X", o.Direction)
	require.Equal(t, SeverityMinor, o.Severity)
	require.Equal(t, StatusMinorIssues, report.Summary.Status)
	require.Equal(t, 0, report.Summary.CriticalOverlaps)
	require.Equal(t, 0, report.Summary.MajorOverlaps)
}

func TestValidateCriticalOverlapDrivesStatus(t *testing.T) {
	// 80-unit penetration: >= 25% of 300.
	report := Validate([]ActorBounds{wall("A", 0, 0, 0), wall("B", 220, 0, 0)}, noAlignment(10))

	require.Equal(t, 1, report.Summary.CriticalOverlaps)
	require.Equal(t, StatusCriticalIssues, report.Summary.Status)
}

func TestValidateManyGapsEscalateToMajor(t *testing.T) {
	// Four disjoint pairs, each gapped 50 on X, far apart on Y so the
	// cross-pair distances also register as gaps; any count above the
	// threshold escalates.
	actors := []ActorBounds{
		wall("A1", 0, 0, 0), wall("A2", 350, 0, 0),
		wall("B1", 0, 5000, 0), wall("B2", 350, 5000, 0),
	}
	report := Validate(actors, noAlignment(10))

	require.Greater(t, report.Summary.GapCount, GapThreshold)
	require.Equal(t, 0, report.Summary.OverlapCount)
	require.Equal(t, StatusMajorIssues, report.Summary.Status)
}

func TestValidateEachPairClassifiedOnce(t *testing.T) {
	// Three actors: A-B overlap, A-C and B-C gap. Every unordered pair
	// contributes exactly one finding.
	actors := []ActorBounds{
		wall("A", 0, 0, 0),
		wall("B", 280, 0, 0),
		wall("C", 700, 0, 0),
	}
	report := Validate(actors, noAlignment(10))

	require.Equal(t, 2, report.Summary.GapCount)
	require.Equal(t, 1, report.Summary.OverlapCount)
	require.Equal(t, 3, report.Summary.TotalIssues)
}

func TestCheckAlignmentWithinToleranceIsClean(t *testing.T) {
	// 305 is 5 off the 300 grid; inside the 10-unit tolerance.
	issue := CheckAlignment(wall("W", 305, 0, 0), 300, 10)
	require.Nil(t, issue)
}

func TestCheckAlignmentSuggestsNearestGridLine(t *testing.T) {
	issue := CheckAlignment(wall("W", 315, 0, 0), 300, 10)

	require.NotNil(t, issue)
	require.Equal(t, "X", issue.Axis)
	require.InDelta(t, 300.0, issue.SuggestedLocation.X, 1e-9)
	require.InDelta(t, 15.0, issue.Offset.X, 1e-9)
	require.Equal(t, "W", issue.Actor)
}

func TestCheckAlignmentRoundsToNearestNotDown(t *testing.T) {
	// 580 is nearer to 600 than to 300.
	issue := CheckAlignment(wall("W", 580, 0, 0), 300, 10)

	require.NotNil(t, issue)
	require.InDelta(t, 600.0, issue.SuggestedLocation.X, 1e-9)
	require.InDelta(t, -20.0, issue.Offset.X, 1e-9)
}

func TestCheckAlignmentFirstAxisWins(t *testing.T) {
	// Misaligned on both X and Y: only the X issue is reported, Y stays
	// untouched in the suggestion.
	issue := CheckAlignment(wall("W", 315, 320, 0), 300, 10)

	require.NotNil(t, issue)
	require.Equal(t, "X", issue.Axis)
	require.InDelta(t, 300.0, issue.SuggestedLocation.X, 1e-9)
	require.InDelta(t, 320.0, issue.SuggestedLocation.Y, 1e-9)
	require.Zero(t, issue.Offset.Y)
}

func TestCheckAlignmentIgnoresZ(t *testing.T) {
	issue := CheckAlignment(wall("W", 300, 600, 137), 300, 10)
	require.Nil(t, issue, "height is never grid-checked")
}

func TestValidateAlignmentToggle(t *testing.T) {
	actors := []ActorBounds{wall("A", 315, 0, 0), wall("B", 615, 0, 0)}

	withCheck := Validate(actors, Options{Tolerance: 10, CheckAlignment: true, ModularSize: 300})
	require.Equal(t, 2, withCheck.Summary.AlignmentIssueCount)

	withoutCheck := Validate(actors, noAlignment(10))
	require.Equal(t, 0, withoutCheck.Summary.AlignmentIssueCount)
	require.NotNil(t, withoutCheck.AlignmentIssues, "slices are never null in the report")
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	require.Equal(t, 10.0, opts.Tolerance)
	require.True(t, opts.CheckAlignment)
	require.Equal(t, 300.0, opts.ModularSize)
}
