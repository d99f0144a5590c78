package ui

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"neonpad/internal/ink"
)

// ReplayView is the non-interactive annotation surface stacked over an
// already-finished block: no pointer handling, no tool state, just the
// replayed pixels of a committed annotation set.
type ReplayView struct {
	widget.BaseWidget

	mu     sync.RWMutex
	img    *image.NRGBA
	w, h   int
	raster *canvas.Raster
}

var _ fyne.Widget = (*ReplayView)(nil)

// NewReplayView renders the set at the given surface size. Unknown or
// zero host dimensions fall back to the engine's default size rather
// than failing.
func NewReplayView(set ink.Set, w, h int) *ReplayView {
	v := &ReplayView{w: w, h: h}
	v.img = ink.Replay(set, w, h)

	v.raster = canvas.NewRaster(func(int, int) image.Image {
		v.mu.RLock()
		defer v.mu.RUnlock()
		return v.img
	})
	b := v.img.Bounds()
	v.raster.SetMinSize(fyne.NewSize(float32(b.Dx()), float32(b.Dy())))

	v.ExtendBaseWidget(v)
	return v
}

func (v *ReplayView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.raster)
}

// SetStrokes replaces the displayed annotation set wholesale and
// recomputes the surface. Each snapshot fully replaces the prior one;
// there is no partial merge.
func (v *ReplayView) SetStrokes(set ink.Set) {
	v.mu.Lock()
	v.img = ink.Replay(set, v.w, v.h)
	v.mu.Unlock()
	v.raster.Refresh()
}
