package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/studyscout/internal/session"
	"github.com/csheth/studyscout/internal/view"
)

type pageLayout struct {
	windowWidth    int
	windowHeight   int
	viewportWidth  int
	viewportHeight int
	chatHeight     int
	inputWidth     int
	textHeight     int
}

func newPageLayout() pageLayout {
	return pageLayout{
		viewportWidth:  80,
		viewportHeight: 12,
		chatHeight:     10,
		inputWidth:     70,
		textHeight:     6,
	}
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	innerWidth := width - viewportHorizontalPadding
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.viewportWidth = innerWidth
	l.inputWidth = innerWidth - 2
	// hero, tab bar, toasts and status bar
	const chrome = 10
	usable := height - chrome
	if usable < 8 {
		usable = 8
	}
	l.viewportHeight = usable
	// the chat pane keeps room for the question input and context toggle
	l.chatHeight = usable - 4
	if l.chatHeight < 4 {
		l.chatHeight = 4
	}
	l.textHeight = usable / 2
	if l.textHeight < 3 {
		l.textHeight = 3
	}
}

type contentBuilder struct {
	builder strings.Builder
	lines   int
}

func (cb *contentBuilder) WriteString(s string) {
	cb.builder.WriteString(s)
	cb.lines += strings.Count(s, "\n")
}

func (cb *contentBuilder) WriteRune(r rune) {
	cb.builder.WriteRune(r)
	if r == '\n' {
		cb.lines++
	}
}

func (cb *contentBuilder) String() string {
	return cb.builder.String()
}

func (cb *contentBuilder) Line() int {
	return cb.lines
}

// syncViewports pushes the session's summary and transcript into the
// scrollable panes.
func (m *model) syncViewports() {
	page := m.ctrl.Page()
	m.summaryView.SetContent(m.summaryContent(page))
	m.chatView.SetContent(m.chatContent())
	if m.chatFollow {
		m.chatView.GotoBottom()
		m.chatFollow = false
	}
}

func (m *model) summaryContent(page view.Page) string {
	if len(page.Summary) == 0 {
		return ""
	}
	return view.Terminal(page.Summary, m.wrapWidth(2))
}

func (m *model) chatContent() string {
	nodes := m.ctrl.Chat()
	if len(nodes) == 0 {
		return ""
	}
	cb := &contentBuilder{}
	wrap := m.wrapWidth(4)
	for idx, node := range nodes {
		label := userLabelStyle.Render(node.Label)
		if node.Role == session.RoleAssistant {
			label = assistantLabelStyle.Render(node.Label)
		}
		cb.WriteString(fmt.Sprintf("%s %s", label, helperStyle.Render(node.Time)))
		cb.WriteRune('\n')
		cb.WriteString(indentMultiline(view.Terminal(node.Blocks, wrap), "  "))
		cb.WriteRune('\n')
		if idx < len(nodes)-1 {
			cb.WriteRune('\n')
		}
	}
	return cb.String()
}

func indentMultiline(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

func (m *model) wrapWidth(padding int) int {
	width := m.layout.viewportWidth
	if width <= 0 {
		width = 80
	}
	if padding < 0 {
		padding = 0
	}
	available := width - padding
	if available < 20 {
		available = 20
	}
	return available
}

func wrapPlain(text string, width int) string {
	return wordwrap.String(text, width)
}

func previewText(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
