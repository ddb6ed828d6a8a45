package writers

import (
	"bytes"
	"errors"
	"io"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primerfig/core/view"
	"primerfig/core/viewport"
)

var _ view.Surface = (*Surface)(nil)

func TestSurface_Lifecycle(t *testing.T) {
	s := NewSurface(0, 0)
	assert.ErrorIs(t, s.WriteTo("svg", io.Discard), ErrNothingDrawn)
	w, h := s.Size()
	assert.Zero(t, w)
	assert.Zero(t, h)

	it := sampleItem(t)
	require.NoError(t, s.Draw(it.Drawing))
	w, h = s.Size()
	assert.Equal(t, 1000.0, w)
	assert.Equal(t, 150.0, h)

	s.SetTransform(viewport.Transform{Scale: 0.5})
	var b bytes.Buffer
	require.NoError(t, s.WriteTo("svg", &b))
	assert.Contains(t, b.String(), "matrix(0.5,0,0,0.5,0,0)")

	s.Resize(640, 0)
	got, err := s.Item("x")
	require.NoError(t, err)
	assert.Equal(t, 640.0, got.Width)
	assert.Equal(t, 150.0, got.Height)
	assert.Equal(t, "x", got.PanelID)

	s.Clear()
	assert.Nil(t, s.Drawing())
	assert.Equal(t, viewport.Transform{}, s.Transform())
	assert.Error(t, s.Draw(nil))
}

func TestSurface_WithController(t *testing.T) {
	c := view.NewController()
	s := NewSurface(500, 200)
	_, err := c.Show(view.Panel{ID: "a", Surface: s, Source: recordsSource()})
	require.NoError(t, err)
	require.NotNil(t, s.Drawing())
	assert.NotZero(t, s.Transform().Scale)

	c.Hide("a")
	assert.Nil(t, s.Drawing())
}

func TestIsBrokenPipe_Surface(t *testing.T) {
	assert.True(t, IsBrokenPipe(syscall.EPIPE))
	assert.True(t, IsBrokenPipe(io.ErrClosedPipe))
	assert.False(t, IsBrokenPipe(nil))
	assert.False(t, IsBrokenPipe(errors.New("x")))
}
