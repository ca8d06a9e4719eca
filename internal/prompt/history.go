package prompt

import "github.com/kokoroworks/valentine-companion/internal/types"

// History is a bounded ring of conversation turns. It retains the newest
// 2*maxExchanges entries and drops the oldest first.
type History struct {
	turns        []types.ConversationTurn
	maxExchanges int
}

// NewHistory returns a History keeping maxExchanges user/assistant pairs.
func NewHistory(maxExchanges int) *History {
	if maxExchanges <= 0 {
		maxExchanges = 5
	}
	return &History{maxExchanges: maxExchanges}
}

// Push appends a turn, evicting the oldest entries beyond capacity.
func (h *History) Push(turn types.ConversationTurn) {
	h.turns = append(h.turns, turn)
	if limit := h.maxExchanges * 2; len(h.turns) > limit {
		h.turns = h.turns[len(h.turns)-limit:]
	}
}

// Last returns up to n most recent turns, oldest first.
func (h *History) Last(n int) []types.ConversationTurn {
	if n <= 0 || len(h.turns) == 0 {
		return nil
	}
	if n > len(h.turns) {
		n = len(h.turns)
	}
	out := make([]types.ConversationTurn, n)
	copy(out, h.turns[len(h.turns)-n:])
	return out
}

// PopLast removes the most recent turn, if any. Used to roll back a turn
// that was abandoned after its user message was already recorded.
func (h *History) PopLast() {
	if len(h.turns) == 0 {
		return
	}
	h.turns = h.turns[:len(h.turns)-1]
}

// Len returns the number of retained turns.
func (h *History) Len() int {
	return len(h.turns)
}

// Clear drops all turns.
func (h *History) Clear() {
	h.turns = nil
}
