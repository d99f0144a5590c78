package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"neonpad/internal/ink"
)

// colorSwatch is a tappable palette square.
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func()
}

func newColorSwatch(c color.Color, tapped func()) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped()
	}
}

// NewInkToolbar assembles the editing chrome for one session: pen/eraser
// tools, the fixed palette, the brush size slider, and undo. All actions
// mutate the session; the board redraws through it.
func NewInkToolbar(session *ink.Session, board *InkCanvas) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() {
			session.SelectTool(ink.ToolPen)
		}),
		widget.NewToolbarAction(theme.ContentClearIcon(), func() {
			session.SelectTool(ink.ToolEraser)
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentUndoIcon(), func() {
			board.Undo()
		}),
	)

	swatches := container.NewHBox()
	for _, hex := range ink.Palette {
		c := hex
		swatches.Add(newColorSwatch(paletteColor(c), func() {
			session.SelectColor(c)
		}))
	}

	sizeSlider := widget.NewSlider(1, 20)
	sizeSlider.Step = 1
	sizeSlider.SetValue(session.Width())
	sizeSlider.OnChanged = func(v float64) {
		session.SetWidth(v)
	}
	sliderBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(140, 35)), sizeSlider)

	return container.NewHBox(
		tb,
		widget.NewSeparator(),
		swatches,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderBox,
		layout.NewSpacer(),
	)
}

// paletteColor converts a palette hex string to a toolkit color.
func paletteColor(hex string) color.Color {
	if len(hex) != 7 || hex[0] != '#' {
		return color.White
	}
	digit := func(c byte) uint8 {
		switch {
		case '0' <= c && c <= '9':
			return c - '0'
		case 'a' <= c && c <= 'f':
			return c - 'a' + 10
		case 'A' <= c && c <= 'F':
			return c - 'A' + 10
		}
		return 0
	}
	return color.NRGBA{
		R: digit(hex[1])<<4 | digit(hex[2]),
		G: digit(hex[3])<<4 | digit(hex[4]),
		B: digit(hex[5])<<4 | digit(hex[6]),
		A: 255,
	}
}
