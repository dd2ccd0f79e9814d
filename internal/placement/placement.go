// Package placement detects spacing and alignment problems between modular
// building pieces. Given the resolved bounds of two or more actors it
// classifies every unordered pair as exactly one of gap, overlap, or
// touching, grades overlap severity against the modular grid size, and
// checks each actor's centroid alignment to the grid on the X and Y axes.
package placement

import (
	"math"
	"time"

	"github.com/vk/uebridge/internal/geometry"
)

// GapThreshold is the number of retained gaps above which the overall status
// escalates to major_issues.
const GapThreshold = 3

// ActorBounds is the ephemeral bounds record for one actor under validation.
type ActorBounds struct {
	Name     string
	Location geometry.Vec3
	Box      geometry.Box
}

// Size returns the full edge length of the actor's box per axis.
func (a ActorBounds) Size() geometry.Vec3 {
	return a.Box.Size()
}

// Options control a validation pass.
type Options struct {
	// Tolerance is the acceptable gap/overlap distance. Findings are
	// retained only when their magnitude strictly exceeds it.
	Tolerance float64

	// CheckAlignment enables the modular grid alignment check.
	CheckAlignment bool

	// ModularSize is the edge length of the repeating grid unit.
	ModularSize float64
}

// DefaultOptions returns the caller defaults from the command protocol.
func DefaultOptions() Options {
	return Options{
		Tolerance:      10.0,
		CheckAlignment: true,
		ModularSize:    300.0,
	}
}

// Kind is the spatial relationship of one actor pair.
type Kind int

const (
	KindTouching Kind = iota
	KindGap
	KindOverlap
)

// Severity grades an overlap against the modular grid size.
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

// PairFinding is the classification of one unordered actor pair.
type PairFinding struct {
	Kind     Kind
	Axis     geometry.Axis
	Distance float64
	Location geometry.Vec3
	Actors   [2]string
}

// Classify determines the spatial relationship between two actors. A pair is
// a gap when the boxes are separated on any axis (the reported axis is the
// one of nearest approach) and touching when no axis separates them but at
// least one axis has zero penetration, which is exact face contact no matter
// how far the boxes run along the other axes. Otherwise the pair overlaps.
// An axis where the penetration spans the smaller box entirely says nothing
// about how the pieces collided, so the reported axis is the deepest one
// among the partial penetrations; only when one box is contained on every
// axis does the deepest overall axis stand in.
func Classify(a, b ActorBounds) PairFinding {
	axes := []geometry.Axis{geometry.AxisX, geometry.AxisY, geometry.AxisZ}

	minGap := math.Inf(1)
	gapAxis := geometry.AxisX
	hasGap := false
	for _, ax := range axes {
		if g := a.Box.Gap(b.Box, ax); g > 0 && g < minGap {
			minGap = g
			gapAxis = ax
			hasGap = true
		}
	}
	if hasGap {
		return PairFinding{
			Kind:     KindGap,
			Axis:     gapAxis,
			Distance: minGap,
			Location: a.Location.Midpoint(b.Location),
			Actors:   [2]string{a.Name, b.Name},
		}
	}

	aSize, bSize := a.Box.Size(), b.Box.Size()
	faceContact := false
	maxPartial, maxFull := 0.0, 0.0
	partialAxis, fullAxis := geometry.AxisX, geometry.AxisX
	for _, ax := range axes {
		o := a.Box.Overlap(b.Box, ax)
		if o == 0 {
			faceContact = true
			break
		}
		span := math.Min(aSize.Component(ax), bSize.Component(ax))
		if o >= span {
			if o > maxFull {
				maxFull = o
				fullAxis = ax
			}
		} else if o > maxPartial {
			maxPartial = o
			partialAxis = ax
		}
	}
	if !faceContact {
		axis, depth := partialAxis, maxPartial
		if maxPartial == 0 {
			axis, depth = fullAxis, maxFull
		}
		return PairFinding{
			Kind:     KindOverlap,
			Axis:     axis,
			Distance: depth,
			Location: a.Box.OverlapRegion(b.Box).Center(),
			Actors:   [2]string{a.Name, b.Name},
		}
	}

	return PairFinding{
		Kind:     KindTouching,
		Distance: 0,
		Location: a.Location.Midpoint(b.Location),
		Actors:   [2]string{a.Name, b.Name},
	}
}

// OverlapSeverity grades a penetration depth. Boundaries are inclusive:
// exactly 10% of the modular size is major, exactly 25% is critical.
func OverlapSeverity(depth, modularSize float64) Severity {
	switch {
	case depth >= modularSize*0.25:
		return SeverityCritical
	case depth >= modularSize*0.1:
		return SeverityMajor
	default:
		return SeverityMinor
	}
}

// CheckAlignment reports the actor's first grid misalignment, checking X
// then Y. Z is never checked: modular building pieces stack freely in
// height. An actor misaligned on both axes yields only the X issue; this
// first-axis-wins behavior is deliberate and covered by tests.
func CheckAlignment(a ActorBounds, modularSize, tolerance float64) *AlignmentIssue {
	for _, ax := range []geometry.Axis{geometry.AxisX, geometry.AxisY} {
		coord := a.Location.Component(ax)
		nearest := math.Round(coord/modularSize) * modularSize
		offset := coord - nearest
		if math.Abs(offset) > tolerance {
			return &AlignmentIssue{
				Actor:             a.Name,
				CurrentLocation:   a.Location,
				SuggestedLocation: a.Location.WithComponent(ax, nearest),
				Offset:            geometry.Vec3{}.WithComponent(ax, offset),
				Axis:              ax.String(),
			}
		}
	}
	return nil
}

// Validate runs the full placement check over the supplied actor bounds.
// The caller is responsible for resolving names to bounds; anything passed
// here is assumed to be live data for this single pass.
func Validate(actors []ActorBounds, opts Options) Report {
	start := time.Now()

	var gaps []Gap
	var overlaps []Overlap

	for i := 0; i < len(actors); i++ {
		for j := i + 1; j < len(actors); j++ {
			f := Classify(actors[i], actors[j])
			if f.Distance <= opts.Tolerance {
				continue
			}
			switch f.Kind {
			case KindGap:
				gaps = append(gaps, Gap{
					Location:  f.Location,
					Distance:  f.Distance,
					Actors:    f.Actors[:],
					Direction: f.Axis.String(),
				})
			case KindOverlap:
				overlaps = append(overlaps, Overlap{
					Location:  f.Location,
					Amount:    f.Distance,
					Actors:    f.Actors[:],
					Direction: f.Axis.String(),
					Severity:  OverlapSeverity(f.Distance, opts.ModularSize),
				})
			}
		}
	}

	var alignmentIssues []AlignmentIssue
	if opts.CheckAlignment {
		for _, a := range actors {
			if issue := CheckAlignment(a, opts.ModularSize, opts.Tolerance); issue != nil {
				alignmentIssues = append(alignmentIssues, *issue)
			}
		}
	}

	return buildReport(gaps, overlaps, alignmentIssues, len(actors), time.Since(start))
}
