package view

import (
	"html"
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// BlockKind distinguishes paragraph text from a visual break.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockBreak
)

// Block is one formatted unit of generated text.
type Block struct {
	Kind BlockKind
	Text string
}

// Paragraphs splits text on line breaks: blank lines become breaks and every
// other line becomes a paragraph. No markup is interpreted.
func Paragraphs(text string) []Block {
	lines := strings.Split(text, "\n")
	blocks := make([]Block, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blocks = append(blocks, Block{Kind: BlockBreak})
			continue
		}
		blocks = append(blocks, Block{Kind: BlockParagraph, Text: line})
	}
	return blocks
}

// HTML projects blocks the way the web page does: <p> per paragraph, <br>
// per break. Text is escaped.
func HTML(blocks []Block) string {
	var b strings.Builder
	for _, block := range blocks {
		switch block.Kind {
		case BlockBreak:
			b.WriteString("<br>")
		default:
			b.WriteString("<p>")
			b.WriteString(html.EscapeString(block.Text))
			b.WriteString("</p>")
		}
	}
	return b.String()
}

// Terminal projects blocks as wrapped lines; a break renders as an empty line.
func Terminal(blocks []Block, width int) string {
	if width < 20 {
		width = 20
	}
	lines := make([]string, 0, len(blocks))
	for _, block := range blocks {
		if block.Kind == BlockBreak {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, wordwrap.String(block.Text, width))
	}
	return strings.Join(lines, "\n")
}
