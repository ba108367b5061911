package view

import (
	"time"

	"github.com/csheth/studyscout/internal/session"
)

// TimeLayout is the hour:minute stamp shown under each chat message.
const TimeLayout = "15:04"

const assistantLabel = "AI Assistant"

// ChatNode is the display projection of one transcript turn.
type ChatNode struct {
	Role   session.Role
	Label  string
	Blocks []Block
	Time   string
}

// ChatRenderer keeps the chat view in step with the transcript. Nodes are
// only ever appended.
type ChatRenderer struct {
	nodes []ChatNode
	// scroll is invoked after every append so the newest node is visible.
	scroll func()
}

// NewChatRenderer returns a renderer that calls scroll after each append.
// A nil scroll is allowed.
func NewChatRenderer(scroll func()) *ChatRenderer {
	return &ChatRenderer{scroll: scroll}
}

// Append projects turn into a new node and scrolls to it.
func (r *ChatRenderer) Append(turn session.Turn) ChatNode {
	node := ProjectTurn(turn)
	r.nodes = append(r.nodes, node)
	if r.scroll != nil {
		r.scroll()
	}
	return node
}

func (r *ChatRenderer) Nodes() []ChatNode {
	return append([]ChatNode(nil), r.nodes...)
}

func (r *ChatRenderer) Len() int { return len(r.nodes) }

// ProjectTurn formats a turn. User messages stay a single paragraph; assistant
// messages are split into paragraphs and breaks.
func ProjectTurn(turn session.Turn) ChatNode {
	node := ChatNode{Role: turn.Role, Time: FormatTime(turn.Timestamp)}
	switch turn.Role {
	case session.RoleAssistant:
		node.Label = assistantLabel
		node.Blocks = Paragraphs(turn.Message)
	default:
		node.Label = "You"
		node.Blocks = []Block{{Kind: BlockParagraph, Text: turn.Message}}
	}
	return node
}

func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}
