package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAspectRatio(t *testing.T) {
	cases := []struct {
		name          string
		width, height int
		want          float32
	}{
		{"landscape", 800, 600, 800.0 / 600.0},
		{"square", 512, 512, 1},
		{"minimised", 0, 0, 1},
		{"zero height", 1280, 0, 1280},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, aspectRatio(tc.width, tc.height), 1e-6)
		})
	}
}

func TestOptions(t *testing.T) {
	w := defaultWindow()
	for _, opt := range []WindowBuilderOption{
		WithTitle("lit"),
		WithWidth(1024),
		WithHeight(768),
		WithVSync(false),
		WithCaptureCursor(false),
		WithGLVersion(3, 3),
		WithMaxWidth(1920),
	} {
		opt(w)
	}

	assert.Equal(t, "lit", w.title)
	assert.Equal(t, 1024, w.width)
	assert.Equal(t, 768, w.height)
	assert.False(t, w.vsync)
	assert.False(t, w.captureCursor)
	assert.Equal(t, 3, w.glMajor)
	assert.Equal(t, 3, w.glMinor)
	assert.Equal(t, 1920, w.maxWidth)
	assert.InDelta(t, 1024.0/768.0, w.AspectRatio(), 1e-6)
}

func TestHandleResize(t *testing.T) {
	w := defaultWindow()
	var gotW, gotH int
	w.SetResizeCallback(func(width, height int) { gotW, gotH = width, height })

	w.handleResize(300, 200)

	assert.Equal(t, 300, gotW)
	assert.Equal(t, 200, gotH)
	width, height := w.FramebufferSize()
	assert.Equal(t, 300, width)
	assert.Equal(t, 200, height)
}

func TestUninitialisedWindow(t *testing.T) {
	w := defaultWindow()

	assert.True(t, w.ShouldClose())
	assert.False(t, w.IsKeyDown(87))
	assert.Error(t, w.Close())
}
