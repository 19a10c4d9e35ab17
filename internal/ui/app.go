package ui

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"LocalCanvas/internal/raster"
	"LocalCanvas/internal/state"
)

const (
	WindowTitle = "LocalCanvas"
	Heading     = "Welcome to your canvas!"
)

// View is the assembled window content together with the pieces tests and
// callers need to reach.
type View struct {
	Controller *state.Controller
	Board      *BoardWidget
	Toolbar    *Toolbar
	Content    fyne.CanvasObject
}

// NewView builds the surface, controller and controls and wires them
// together. The surface exists before any pointer handler is registered.
func NewView(parent fyne.Window) *View {
	surface := raster.NewSurface(state.CanvasWidth, state.CanvasHeight, state.Background)
	board := NewBoardWidget(surface)

	ctrl := state.NewController()
	ctrl.Attach(board)
	board.OnPointerDown = ctrl.OnPointerDown
	board.OnPointerUp = ctrl.OnPointerUp

	toolbar, row := NewToolbar(ctrl, parent)
	ctrl.OnChange = toolbar.Update

	heading := widget.NewLabelWithStyle(Heading, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	content := container.NewVBox(heading, row, container.NewCenter(board))

	log.Printf("[UI] View ready, session %s", state.SessionID())
	return &View{Controller: ctrl, Board: board, Toolbar: toolbar, Content: content}
}

func RunApp() {
	myApp := app.New()
	myWindow := myApp.NewWindow(WindowTitle)
	myWindow.Resize(fyne.NewSize(state.CanvasWidth+80, state.CanvasHeight+160))

	view := NewView(myWindow)

	myWindow.SetContent(view.Content)
	myWindow.ShowAndRun()
}
