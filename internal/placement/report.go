package placement

import (
	"time"

	"github.com/vk/uebridge/internal/geometry"
)

// Status is the aggregate verdict of a validation pass.
type Status string

const (
	StatusGood           Status = "good"
	StatusMinorIssues    Status = "minor_issues"
	StatusMajorIssues    Status = "major_issues"
	StatusCriticalIssues Status = "critical_issues"
)

// Gap reports a separation between two actors that exceeds the tolerance.
type Gap struct {
	Location  geometry.Vec3 `json:"location"`
	Distance  float64       `json:"distance"`
	Actors    []string      `json:"actors"`
	Direction string        `json:"direction"`
}

// Overlap reports a penetration between two actors that exceeds the
// tolerance.
type Overlap struct {
	Location  geometry.Vec3 `json:"location"`
	Amount    float64       `json:"amount"`
	Actors    []string      `json:"actors"`
	Direction string        `json:"direction"`
	Severity  Severity      `json:"severity"`
}

// AlignmentIssue reports an actor whose centroid sits off the modular grid
// on the named axis.
type AlignmentIssue struct {
	Actor             string        `json:"actor"`
	CurrentLocation   geometry.Vec3 `json:"currentLocation"`
	SuggestedLocation geometry.Vec3 `json:"suggestedLocation"`
	Offset            geometry.Vec3 `json:"offset"`
	Axis              string        `json:"axis"`
}

// Summary carries the aggregate counts of a validation pass.
type Summary struct {
	TotalIssues         int     `json:"totalIssues"`
	GapCount            int     `json:"gapCount"`
	OverlapCount        int     `json:"overlapCount"`
	AlignmentIssueCount int     `json:"alignmentIssueCount"`
	CriticalOverlaps    int     `json:"criticalOverlaps"`
	MajorOverlaps       int     `json:"majorOverlaps"`
	Status              Status  `json:"status"`
	ExecutionTime       float64 `json:"executionTime"`
	TotalActors         int     `json:"totalActors"`
}

// Report is the JSON-serializable result of one validation pass.
type Report struct {
	Success         bool             `json:"success"`
	Gaps            []Gap            `json:"gaps"`
	Overlaps        []Overlap        `json:"overlaps"`
	AlignmentIssues []AlignmentIssue `json:"alignmentIssues"`
	Summary         Summary          `json:"summary"`
}

func buildReport(gaps []Gap, overlaps []Overlap, alignmentIssues []AlignmentIssue, totalActors int, elapsed time.Duration) Report {
	critical := 0
	major := 0
	for _, o := range overlaps {
		switch o.Severity {
		case SeverityCritical:
			critical++
		case SeverityMajor:
			major++
		}
	}
	total := len(gaps) + len(overlaps) + len(alignmentIssues)

	status := StatusGood
	switch {
	case critical > 0:
		status = StatusCriticalIssues
	case major > 0 || len(gaps) > GapThreshold:
		status = StatusMajorIssues
	case total > 0:
		status = StatusMinorIssues
	}

	if gaps == nil {
		gaps = []Gap{}
	}
	if overlaps == nil {
		overlaps = []Overlap{}
	}
	if alignmentIssues == nil {
		alignmentIssues = []AlignmentIssue{}
	}

	return Report{
		Success:         true,
		Gaps:            gaps,
		Overlaps:        overlaps,
		AlignmentIssues: alignmentIssues,
		Summary: Summary{
			TotalIssues:         total,
			GapCount:            len(gaps),
			OverlapCount:        len(overlaps),
			AlignmentIssueCount: len(alignmentIssues),
			CriticalOverlaps:    critical,
			MajorOverlaps:       major,
			Status:              status,
			ExecutionTime:       elapsed.Seconds(),
			TotalActors:         totalActors,
		},
	}
}
