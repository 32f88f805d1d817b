package geometry

import "fmt"

// ErrorKind tags the reason a geometry calculation was refused.
type ErrorKind int

const (
	BranchTooLarge ErrorKind = iota + 1
	DegenerateAngle
	TooFewSegments
	InsufficientWaypoints
)

func (k ErrorKind) String() string {
	switch k {
	case BranchTooLarge:
		return "BranchTooLarge"
	case DegenerateAngle:
		return "DegenerateAngle"
	case TooFewSegments:
		return "TooFewSegments"
	case InsufficientWaypoints:
		return "InsufficientWaypoints"
	default:
		return "Unknown"
	}
}

// GeometryError is returned for inputs the formulas cannot give a meaningful
// answer for. Reason is meant for display.
type GeometryError struct {
	Kind   ErrorKind
	Reason string
}

func (e *GeometryError) Error() string {
	if e.Reason == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

// Is matches any GeometryError of the same kind, so the sentinels below
// work with errors.Is.
func (e *GeometryError) Is(target error) bool {
	t, ok := target.(*GeometryError)
	return ok && t.Kind == e.Kind
}

var (
	ErrBranchTooLarge        = &GeometryError{Kind: BranchTooLarge}
	ErrDegenerateAngle       = &GeometryError{Kind: DegenerateAngle}
	ErrTooFewSegments        = &GeometryError{Kind: TooFewSegments}
	ErrInsufficientWaypoints = &GeometryError{Kind: InsufficientWaypoints}
)

func newError(kind ErrorKind, format string, args ...any) error {
	return &GeometryError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}
