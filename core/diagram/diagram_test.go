package diagram

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primerfig/core/axis"
	"primerfig/core/geom"
	"primerfig/core/primer"
)

var site = primer.Site{TemplateName: "chr1", TargetStart: 100, TargetLength: 50}

func TestBuild_SingleRecord(t *testing.T) {
	pairs := []primer.Pair{{ID: "p1", LeftStart: 80, LeftEnd: 100, RightStart: 160, RightEnd: 180, HitCount: 1}}
	d, err := Build(site, pairs, DefaultOptions)
	require.NoError(t, err)

	assert.Equal(t, 80.0, d.Axis.DomainMin)
	assert.Equal(t, 180.0, d.Axis.DomainMax)
	assert.Equal(t, geom.Rect{X: 200, Y: -15, W: 500, H: 30}, d.Target)
	assert.Equal(t, "red", d.TargetStroke)
	assert.Equal(t, 3.0, d.TargetStrokeWidth)
	assert.Equal(t, Text{X: 0, Y: -30, Value: "Template chr1", FontSize: 19.2}, d.Label)
	require.Equal(t, 1, d.RowCount())
	assert.Equal(t, 1, d.Rows[0].Rank)
	assert.Equal(t, 1000.0, d.Width)
	assert.Equal(t, 150.0, d.Height)
	assert.Empty(t, d.Warnings)

	r, ok := d.Row("p1")
	require.True(t, ok)
	assert.Equal(t, "Primer 1", r.Label)
	_, ok = d.Row("nope")
	assert.False(t, ok)

	assert.LessOrEqual(t, d.Bounds.Y, d.Label.Y-d.Label.FontSize)
	assert.GreaterOrEqual(t, d.Bounds.MaxX(), 1000.0)
}

func TestBuild_FourRecordsExpandHeight(t *testing.T) {
	var pairs []primer.Pair
	for i, h := range []float64{1, 50, 100, 5} {
		pairs = append(pairs, primer.Pair{
			ID: string(rune('a' + i)), LeftStart: 80, LeftEnd: 100, RightStart: 160, RightEnd: 180, HitCount: h,
		})
	}
	d, err := Build(site, pairs, DefaultOptions)
	require.NoError(t, err)
	require.Len(t, d.Rows, 4)
	for i, r := range d.Rows {
		assert.Equal(t, i+1, r.Rank)
		assert.Equal(t, pairs[i].ID, r.ID)
	}
	assert.Equal(t, 180.0, d.Height)
	assert.GreaterOrEqual(t, d.Bounds.MaxY(), 180.0)
}

func TestBuild_Empty(t *testing.T) {
	d, err := Build(site, nil, DefaultOptions)
	assert.Nil(t, d)
	assert.True(t, errors.Is(err, axis.ErrEmptyInput))
	assert.Contains(t, err.Error(), "chr1-100-50")
}

func TestBuild_TargetOutsideFootprints(t *testing.T) {
	pairs := []primer.Pair{{ID: "p1", LeftStart: 80, LeftEnd: 100, RightStart: 160, RightEnd: 180}}
	far := primer.Site{TemplateName: "chr1", TargetStart: 400, TargetLength: 20}
	d, err := Build(far, pairs, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, 3200.0, d.Target.X)
	assert.Greater(t, d.Bounds.MaxX(), d.Target.MaxX())
}

func TestBuild_DegenerateWarns(t *testing.T) {
	pairs := []primer.Pair{{ID: "p1", LeftStart: 5, LeftEnd: 5, RightStart: 5, RightEnd: 5}}
	d, err := Build(site, pairs, DefaultOptions)
	require.NoError(t, err)
	require.Len(t, d.Warnings, 1)
	var de *axis.DegenerateDomainError
	assert.ErrorAs(t, d.Warnings[0], &de)
}

func TestBuild_Deterministic(t *testing.T) {
	pairs := []primer.Pair{
		{ID: "p1", LeftStart: 80, LeftEnd: 100, RightStart: 160, RightEnd: 180, HitCount: 3},
		{ID: "p2", LeftStart: 60, LeftEnd: 81, RightStart: 170, RightEnd: 199, HitCount: 70},
	}
	a, err := Build(site, pairs, DefaultOptions)
	require.NoError(t, err)
	b, err := Build(site, pairs, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
