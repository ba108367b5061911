package session

import "testing"

func twoCards() []Flashcard {
	return []Flashcard{
		{Question: "Q1", Answer: "A1"},
		{Question: "Q2", Answer: "A2"},
	}
}

func TestDeckCursorStaysInBounds(t *testing.T) {
	cases := []struct {
		name  string
		moves string
		want  int
	}{
		{name: "previous at start", moves: "ppp", want: 0},
		{name: "next to end", moves: "nnnnn", want: 2},
		{name: "back and forth", moves: "nnpn", want: 2},
		{name: "return to start", moves: "nnpppp", want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDeck(append(twoCards(), Flashcard{Question: "Q3", Answer: "A3"}))
			for _, move := range tc.moves {
				if move == 'n' {
					d.Next()
				} else {
					d.Previous()
				}
				if d.Cursor() < 0 || d.Cursor() >= d.Len() {
					t.Fatalf("cursor escaped bounds: %d", d.Cursor())
				}
			}
			if d.Cursor() != tc.want {
				t.Fatalf("cursor mismatch: got %d want %d", d.Cursor(), tc.want)
			}
		})
	}
}

func TestDeckBoundaryMovesAreNoOps(t *testing.T) {
	d := NewDeck(twoCards())
	if d.Previous() {
		t.Fatal("previous at cursor 0 should be a no-op")
	}
	if !d.Next() {
		t.Fatal("next should advance from the first card")
	}
	if d.Next() {
		t.Fatal("next on the last card should be a no-op")
	}
	if d.Cursor() != 1 {
		t.Fatalf("cursor mismatch: %d", d.Cursor())
	}
}

func TestToggleAnswerTwiceRestoresVisibility(t *testing.T) {
	d := NewDeck(twoCards())
	d.Next()
	before := d.Cards()
	start := d.AnswerVisible()
	d.ToggleAnswer()
	d.ToggleAnswer()
	if d.AnswerVisible() != start {
		t.Fatal("double toggle should restore visibility")
	}
	if d.Cursor() != 1 || len(d.Cards()) != len(before) {
		t.Fatal("toggling must not touch deck state")
	}
}

func TestPagingHidesAnswer(t *testing.T) {
	d := NewDeck(twoCards())
	d.ToggleAnswer()
	d.Next()
	if d.AnswerVisible() {
		t.Fatal("each card view starts with its answer hidden")
	}
}

func TestEmptyDeck(t *testing.T) {
	d := NewDeck(nil)
	if _, ok := d.Current(); ok {
		t.Fatal("empty deck has no renderable card")
	}
	if d.Next() || d.Previous() || d.ToggleAnswer() {
		t.Fatal("empty deck ignores paging and toggling")
	}
}
