package ui

import (
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"MentorCanvas/internal/chat"
	"MentorCanvas/internal/editor"
	"MentorCanvas/internal/state"
)

// AppID keys the fyne preferences store.
const AppID = "io.mentorcanvas.app"

func NewApp() fyne.App { return app.NewWithID(AppID) }

// Options configures a Window.
type Options struct {
	Title string
	// ShareLink enables the copy-link action when set.
	ShareLink string
	ExportDir string
	// ReadOnly is for viewers mirroring a host.
	ReadOnly   bool
	PanOnEmpty bool
	Scene      state.Scene
	IDs        state.IDFunc
	Log        *slog.Logger

	// OnChange receives every scene the editor publishes.
	OnChange func(state.Scene)
	// OnSend receives chat input.
	OnSend func(text string)
	// OnOpen runs on the UI goroutine right before the canvas opens on a
	// scene, for a new blueprint or one reopened from the chat.
	OnOpen func(scene state.Scene)
	// OnClose runs after the canvas was closed from its toolbar.
	OnClose func()
}

// Window is the main application window: canvas workspace on the left,
// chat on the right, status line at the bottom.
type Window struct {
	win       fyne.Window
	canvas    *CanvasWidget
	chat      *ChatPanel
	status    *widget.Label
	workspace *fyne.Container
	closed    *widget.Label
	onOpen    func(state.Scene)
	log       *slog.Logger
}

func NewWindow(a fyne.App, opts Options) *Window {
	if opts.Title == "" {
		opts.Title = "MentorCanvas"
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	w := &Window{
		win:    a.NewWindow(opts.Title),
		chat:   NewChatPanel(),
		status: widget.NewLabel("Ready"),
		closed: widget.NewLabel("The canvas is closed. Open a blueprint from the chat to continue."),
		onOpen: opts.OnOpen,
		log:    opts.Log.With("component", "ui"),
	}
	w.win.Resize(fyne.NewSize(1280, 800))
	w.closed.Alignment = fyne.TextAlignCenter
	w.closed.Hide()

	settings := NewSettings(a.Preferences())
	edOpts := append(settings.EditorOptions(),
		editor.WithLogger(opts.Log),
		editor.WithPanOnEmpty(opts.PanOnEmpty),
		editor.WithOnClose(func() {
			w.HideCanvas()
			if opts.OnClose != nil {
				opts.OnClose()
			}
		}),
	)
	if opts.IDs != nil {
		edOpts = append(edOpts, editor.WithIDFunc(opts.IDs))
	}
	if opts.OnChange != nil {
		edOpts = append(edOpts, editor.WithOnChange(opts.OnChange))
	}
	w.canvas = NewCanvasWidget(opts.Scene, edOpts...)
	w.canvas.ReadOnly = opts.ReadOnly

	x := exporter{canvas: w.canvas, dir: opts.ExportDir, now: time.Now}
	act := Actions{
		ExportPNG: func() { w.reportExport(x.png()) },
		ExportPDF: func() { w.reportExport(x.pdf()) },
	}
	if opts.ShareLink != "" {
		act.CopyLink = func() {
			w.win.Clipboard().SetContent(opts.ShareLink)
			w.SetStatus("Share link copied: " + opts.ShareLink)
		}
	}
	tb := newToolbar(w.canvas, settings, act)
	w.canvas.OnRedraw = tb.refresh

	var top fyne.CanvasObject = tb.object
	if opts.ReadOnly {
		top = widget.NewLabel("Viewing the host's canvas")
	}
	w.workspace = container.NewBorder(top, nil, nil, nil, w.canvas)
	w.chat.OnSend = opts.OnSend
	w.chat.OnOpen = w.OpenCanvas

	split := container.NewHSplit(container.NewStack(w.workspace, w.closed), w.chat)
	split.Offset = 0.72
	w.win.SetContent(container.NewBorder(nil, w.status, nil, nil, split))
	return w
}

func (w *Window) Canvas() *CanvasWidget { return w.canvas }
func (w *Window) Chat() *ChatPanel      { return w.chat }
func (w *Window) Window() fyne.Window   { return w.win }

// OpenCanvas hands scene to the OnOpen hook and then shows it.
func (w *Window) OpenCanvas(scene state.Scene) {
	if w.onOpen != nil {
		w.onOpen(scene)
	}
	w.ShowCanvas(scene)
}

// ShowCanvas opens the workspace on scene without consulting OnOpen.
func (w *Window) ShowCanvas(scene state.Scene) {
	w.canvas.SetScene(scene)
	w.closed.Hide()
	w.workspace.Show()
}

func (w *Window) HideCanvas() {
	w.workspace.Hide()
	w.closed.Show()
}

// CanvasVisible reports whether the workspace is open.
func (w *Window) CanvasVisible() bool { return w.workspace.Visible() }

func (w *Window) AppendMessage(msg chat.Message) { w.chat.Append(msg) }

// AppendBlueprint shows msg with a card that reopens scene.
func (w *Window) AppendBlueprint(msg chat.Message, scene state.Scene) {
	w.chat.AppendBlueprint(msg, scene)
}

// SetStatus may be called from any goroutine.
func (w *Window) SetStatus(text string) {
	fyne.Do(func() { setText(w.status, text) })
}

func (w *Window) StatusText() string { return w.status.Text }

func (w *Window) reportExport(path string, err error) {
	if err != nil {
		w.log.Error("export failed", "err", err)
		dialog.ShowError(err, w.win)
		return
	}
	w.log.Info("exported canvas", "path", path)
	w.SetStatus(fmt.Sprintf("Exported %s", path))
}

func (w *Window) ShowAndRun() { w.win.ShowAndRun() }
