package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBendLayout_90Degrees(t *testing.T) {
	e := newTestEngine()
	// DN100: r = 152, d = 114.3
	b := e.BendLayout(100, 90)

	theta := math.Pi / 2
	assert.InDelta(t, 152.0, b.Tangent, tol)
	assert.InDelta(t, 152*theta, b.CenterlineArc, tol)
	assert.InDelta(t, (152+57.15)*theta, b.BackArc, tol)
	assert.InDelta(t, (152-57.15)*theta, b.BellyArc, tol)
	assert.True(t, b.Feasible())
}

func TestBendLayout_ZeroAngle(t *testing.T) {
	e := newTestEngine()
	b := e.BendLayout(50, 0)
	assert.Equal(t, BendLayout{}, b)
}

func TestSegmentedBend_ThreeSegments(t *testing.T) {
	e := newTestEngine()
	sb, err := e.SegmentedBend(100, 152, 3, 90)
	require.NoError(t, err)

	assert.InDelta(t, 22.5, sb.MiterAngle, tol)
	tn := math.Tan(22.5 * math.Pi / 180)
	ro := 114.3 / 2
	assert.InDelta(t, 2*152*tn, sb.CenterlineLength, tol)
	assert.InDelta(t, 2*(152+ro)*tn, sb.BackLength, tol)
	assert.InDelta(t, 2*(152-ro)*tn, sb.BellyLength, tol)
	assert.InDelta(t, (152+ro)*tn, sb.EndBack, tol)
	assert.InDelta(t, (152-ro)*tn, sb.EndBelly, tol)
	assert.InDelta(t, 152*tn, sb.EndCenter, tol)
	assert.Greater(t, sb.EndBack-sb.EndBelly, 0.0)
}

func TestSegmentedBend_EndsAreHalfSegments(t *testing.T) {
	e := newTestEngine()
	for segments := 2; segments <= 8; segments++ {
		sb, err := e.SegmentedBend(200, 400, segments, 90)
		require.NoError(t, err)
		assert.InDelta(t, sb.BackLength/2, sb.EndBack, tol)
		assert.InDelta(t, sb.BellyLength/2, sb.EndBelly, tol)
		assert.InDelta(t, sb.CenterlineLength/2, sb.EndCenter, tol)
		assert.InDelta(t, 90.0/float64(2*(segments-1)), sb.MiterAngle, tol)
	}
}

func TestSegmentedBend_BackExceedsBellyWhenFeasible(t *testing.T) {
	e := newTestEngine()
	for _, dn := range e.Table().NominalDiameters() {
		od := e.Table().Lookup(dn).OuterDiameter
		sb, err := e.SegmentedBend(dn, od, 3, 90)
		require.NoError(t, err)
		assert.Greater(t, sb.EndBack-sb.EndBelly, 0.0, "DN%d", dn)
		assert.Greater(t, sb.EndBelly, 0.0, "DN%d", dn)
	}
}

func TestSegmentedBend_TooFewSegments(t *testing.T) {
	e := newTestEngine()
	for _, n := range []int{-1, 0, 1} {
		_, err := e.SegmentedBend(100, 152, n, 90)
		assert.ErrorIs(t, err, ErrTooFewSegments)
	}
}
