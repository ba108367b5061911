package session

// Flashcard is one generated question/answer pair.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Deck is an ordered set of cards plus the position currently displayed.
// The cursor stays within [0, Len()-1] whenever the deck is non-empty.
type Deck struct {
	cards         []Flashcard
	cursor        int
	answerVisible bool
}

// NewDeck copies cards into a deck positioned at the first card.
func NewDeck(cards []Flashcard) Deck {
	return Deck{cards: append([]Flashcard(nil), cards...)}
}

func (d *Deck) Len() int { return len(d.cards) }

func (d *Deck) Empty() bool { return len(d.cards) == 0 }

func (d *Deck) Cursor() int { return d.cursor }

// Current returns the card at the cursor. ok is false for an empty deck.
func (d *Deck) Current() (Flashcard, bool) {
	if d.Empty() {
		return Flashcard{}, false
	}
	return d.cards[d.cursor], true
}

func (d *Deck) Cards() []Flashcard {
	return append([]Flashcard(nil), d.cards...)
}

func (d *Deck) HasPrevious() bool { return !d.Empty() && d.cursor > 0 }

func (d *Deck) HasNext() bool { return !d.Empty() && d.cursor < len(d.cards)-1 }

// Next moves forward one card. It is a no-op on the last card.
func (d *Deck) Next() bool {
	if !d.HasNext() {
		return false
	}
	d.cursor++
	d.answerVisible = false
	return true
}

// Previous moves back one card. It is a no-op on the first card.
func (d *Deck) Previous() bool {
	if !d.HasPrevious() {
		return false
	}
	d.cursor--
	d.answerVisible = false
	return true
}

// AnswerVisible reports whether the current card shows its answer.
func (d *Deck) AnswerVisible() bool { return d.answerVisible }

// ToggleAnswer flips answer visibility for the current card in place.
func (d *Deck) ToggleAnswer() bool {
	if d.Empty() {
		return false
	}
	d.answerVisible = !d.answerVisible
	return d.answerVisible
}
