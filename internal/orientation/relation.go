// internal/orientation/relation.go
// Package orientation resolves spatial relations between anatomical structures,
// both in the rendered image and in standard radiological orientation.
package orientation

import (
	"fmt"
	"strings"
)

// Relation is the spatial relation a benchmark question asks about.
type Relation int

const (
	RelationUnknown Relation = iota
	Above
	Below
	LeftOf
	RightOf
)

// String returns the human-readable name of the relation.
func (r Relation) String() string {
	switch r {
	case Above:
		return "above"
	case Below:
		return "below"
	case LeftOf:
		return "left_of"
	case RightOf:
		return "right_of"
	default:
		return "unknown"
	}
}

// Lateral reports whether the relation is a left/right relation. Only lateral
// relations carry an anatomy-view ground truth: flips swap left and right in
// the rendered image but not in the patient's body, while the dataset defines
// no anatomy-view label for above/below.
func (r Relation) Lateral() bool {
	return r == LeftOf || r == RightOf
}

// ParseRelation extracts the spatial relation from a benchmark question such
// as "Is the left kidney to the left of the liver?". The left/right phrasing
// is matched before the bare directional words so that structure names like
// "left kidney" do not shadow the relation.
func ParseRelation(question string) (Relation, error) {
	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, " to the left of "):
		return LeftOf, nil
	case strings.Contains(q, " to the right of "):
		return RightOf, nil
	case strings.Contains(q, " above "):
		return Above, nil
	case strings.Contains(q, " below "):
		return Below, nil
	default:
		return RelationUnknown, fmt.Errorf("no spatial relation found in question %q", question)
	}
}

// Point is a 2D center-of-mass coordinate in pixel space.
type Point struct {
	X float64
	Y float64
}

// ImageViewHolds reports whether the relation holds for p1 relative to p2 in
// the rendered image. Coordinates are in the stored (already rotated/flipped)
// pixel space with a top-left origin, so no further transform is applied:
// smaller y means higher in the image.
func ImageViewHolds(p1, p2 Point, rel Relation) bool {
	switch rel {
	case LeftOf:
		return p1.X < p2.X
	case RightOf:
		return p1.X > p2.X
	case Above:
		return p1.Y < p2.Y
	case Below:
		return p1.Y > p2.Y
	default:
		return false
	}
}

// AnatomyViewHolds reports whether the relation holds for two structures in
// standard radiological orientation. c1 and c2 are the structures'
// standard-orientation centers from the reference table, compared with the
// same x-axis ordering as the rendered image: for an unflipped, unrotated
// slice the stored coordinates equal the reference coordinates, so the two
// views agree, and a horizontal flip inverts the apparent left/right order
// without touching the reference frame. The second return value is false for
// non-lateral relations, which have no anatomy-view interpretation.
func AnatomyViewHolds(c1, c2 Point, rel Relation) (holds, defined bool) {
	switch rel {
	case LeftOf:
		return c1.X < c2.X, true
	case RightOf:
		return c1.X > c2.X, true
	default:
		return false, false
	}
}
