package certificate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScaleRoundTrip(t *testing.T) {
	l := DefaultLayout()

	assert.Equal(t, 0, l.Scale(0))
	assert.Equal(t, 160, l.Scale(80))
	assert.Equal(t, 80, l.Unscale(160))
	assert.Equal(t, 81, l.Unscale(161), "unscale rounds to nearest")

	for _, v := range []int{1, 7, 24, 268, 1191} {
		assert.Equal(t, v, l.Unscale(l.Scale(v)))
	}
}

func TestUnscaleZeroFactor(t *testing.T) {
	l := &Layout{ScaleFactor: 0}
	assert.Equal(t, 0, l.Unscale(100))
}

func TestDefaultLayoutColumnsOrdered(t *testing.T) {
	tl := DefaultLayout().Transcript
	assert.Less(t, tl.UnitRef.X, tl.UnitTitle.X)
	assert.Less(t, tl.UnitTitle.X, tl.UnitCredit.X)
	assert.Less(t, tl.UnitCredit.X, tl.UnitGLH.X)
	assert.Less(t, tl.UnitGLH.X, tl.UnitGrade.X)
}
