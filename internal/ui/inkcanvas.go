package ui

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"neonpad/internal/ink"
)

// InkCanvas is the interactive capture surface: a fixed-size transparent
// layer the user draws on, stacked over a media block. Pointer events are
// fed to the engine's capturer; the widget itself only translates toolkit
// events and repaints.
//
// Event positions from Fyne are already widget-local, so no bounding-box
// subtraction is needed here, and the widget consuming the drag gesture
// is what keeps it from scrolling the surrounding view.
type InkCanvas struct {
	widget.BaseWidget

	mu       sync.RWMutex
	session  *ink.Session
	capturer *ink.Capturer
	surface  *image.NRGBA
	raster   *canvas.Raster

	// OnStrokeCommitted fires after a pointer release that changed the
	// working copy, letting the host refresh chrome such as undo state.
	OnStrokeCommitted func()
}

var _ fyne.Widget = (*InkCanvas)(nil)
var _ fyne.Draggable = (*InkCanvas)(nil)
var _ desktop.Mouseable = (*InkCanvas)(nil)
var _ desktop.Hoverable = (*InkCanvas)(nil)

// NewInkCanvas builds a capture surface of the given pixel size bound to
// an editing session. Non-positive dimensions fall back to the engine's
// default surface size.
func NewInkCanvas(session *ink.Session, w, h int) *InkCanvas {
	c := &InkCanvas{session: session}
	c.surface = ink.NewSurface(w, h)
	c.capturer = ink.NewCapturer(session, c.surface)

	c.raster = canvas.NewRaster(func(int, int) image.Image {
		c.mu.RLock()
		defer c.mu.RUnlock()
		return c.surface
	})
	b := c.surface.Bounds()
	c.raster.SetMinSize(fyne.NewSize(float32(b.Dx()), float32(b.Dy())))

	c.ExtendBaseWidget(c)
	return c
}

func (c *InkCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.raster)
}

func (c *InkCanvas) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	c.mu.Lock()
	c.capturer.Begin(ink.Pt(float64(e.Position.X), float64(e.Position.Y)))
	c.mu.Unlock()
}

func (c *InkCanvas) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	c.endStroke()
}

func (c *InkCanvas) Dragged(e *fyne.DragEvent) {
	c.mu.Lock()
	c.capturer.Move(ink.Pt(float64(e.Position.X), float64(e.Position.Y)))
	c.mu.Unlock()
	c.raster.Refresh()
}

func (c *InkCanvas) DragEnd() {
	c.endStroke()
}

func (c *InkCanvas) MouseIn(*desktop.MouseEvent)    {}
func (c *InkCanvas) MouseMoved(*desktop.MouseEvent) {}

// MouseOut ends an in-progress stroke exactly like a release.
func (c *InkCanvas) MouseOut() {
	c.mu.Lock()
	capturing := c.capturer.State() == ink.Capturing
	c.capturer.Leave()
	c.mu.Unlock()
	c.raster.Refresh()
	if capturing && c.OnStrokeCommitted != nil {
		c.OnStrokeCommitted()
	}
}

func (c *InkCanvas) endStroke() {
	c.mu.Lock()
	capturing := c.capturer.State() == ink.Capturing
	c.capturer.End()
	c.mu.Unlock()
	c.raster.Refresh()
	if capturing && c.OnStrokeCommitted != nil {
		c.OnStrokeCommitted()
	}
}

// Undo removes the most recent stroke and redraws from the committed
// list.
func (c *InkCanvas) Undo() {
	c.mu.Lock()
	c.session.Undo()
	c.capturer.Redraw()
	c.mu.Unlock()
	c.raster.Refresh()
}
