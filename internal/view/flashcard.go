package view

import (
	"fmt"

	"github.com/csheth/studyscout/internal/session"
)

// CardView is what the flashcard region renders for the card at the cursor.
type CardView struct {
	Question      string
	Answer        string
	AnswerVisible bool
	ToggleLabel   string
	Pagination    string
	PrevEnabled   bool
	NextEnabled   bool
}

// Card projects the deck. ok is false when the deck has no renderable card.
func Card(deck *session.Deck) (CardView, bool) {
	card, ok := deck.Current()
	if !ok {
		return CardView{}, false
	}
	toggle := "Show Answer"
	if deck.AnswerVisible() {
		toggle = "Hide Answer"
	}
	return CardView{
		Question:      card.Question,
		Answer:        card.Answer,
		AnswerVisible: deck.AnswerVisible(),
		ToggleLabel:   toggle,
		Pagination:    Pagination(deck.Cursor(), deck.Len()),
		PrevEnabled:   deck.HasPrevious(),
		NextEnabled:   deck.HasNext(),
	}, true
}

func Pagination(cursor, length int) string {
	return fmt.Sprintf("Card %d of %d", cursor+1, length)
}
