package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"MentorCanvas/internal/chat"
	"MentorCanvas/internal/state"
)

// ChatPanel lists the conversation and takes new input.
type ChatPanel struct {
	widget.BaseWidget

	// OnSend receives trimmed, non-empty input.
	OnSend func(text string)
	// OnOpen receives the scene of a blueprint whose button was tapped.
	OnOpen func(scene state.Scene)

	history *fyne.Container
	scroll  *container.Scroll
	entry   *widget.Entry
	send    *widget.Button
}

func NewChatPanel() *ChatPanel {
	p := &ChatPanel{history: container.NewVBox()}
	p.scroll = container.NewVScroll(p.history)
	p.entry = widget.NewEntry()
	p.entry.SetPlaceHolder("Ask your mentor...")
	p.entry.OnSubmitted = func(string) { p.submit() }
	p.send = widget.NewButtonWithIcon("", theme.MailSendIcon(), p.submit)
	p.ExtendBaseWidget(p)
	return p
}

func (p *ChatPanel) submit() {
	text := strings.TrimSpace(p.entry.Text)
	if text == "" {
		return
	}
	p.entry.SetText("")
	if p.OnSend != nil {
		p.OnSend(text)
	}
}

// Append adds msg to the history and scrolls to it.
func (p *ChatPanel) Append(msg chat.Message) {
	p.history.Add(messageLabel(msg))
	p.scroll.ScrollToBottom()
}

// AppendBlueprint adds a message that carried a canvas, with a card that
// opens scene again at any time.
func (p *ChatPanel) AppendBlueprint(msg chat.Message, scene state.Scene) {
	entry := container.NewVBox()
	if strings.TrimSpace(msg.Content) != "" {
		entry.Add(messageLabel(msg))
	}
	own := scene.Clone()
	open := widget.NewButtonWithIcon("Open Canvas", theme.VisibilityIcon(), func() {
		if p.OnOpen != nil {
			p.OnOpen(own.Clone())
		}
	})
	entry.Add(widget.NewCard("Canvas Blueprint Created", elementCount(len(own)), open))
	p.history.Add(entry)
	p.scroll.ScrollToBottom()
}

func messageLabel(msg chat.Message) *widget.Label {
	who := "You"
	if msg.Role == chat.RoleAssistant {
		who = "Mentor"
	}
	line := widget.NewLabel(who + ": " + msg.Content)
	line.Wrapping = fyne.TextWrapWord
	return line
}

func elementCount(n int) string {
	if n == 1 {
		return "1 element"
	}
	return fmt.Sprintf("%d elements", n)
}

// Len is the number of messages shown.
func (p *ChatPanel) Len() int { return len(p.history.Objects) }

func (p *ChatPanel) CreateRenderer() fyne.WidgetRenderer {
	input := container.NewBorder(nil, nil, nil, p.send, p.entry)
	return widget.NewSimpleRenderer(container.NewBorder(nil, input, nil, nil, p.scroll))
}
