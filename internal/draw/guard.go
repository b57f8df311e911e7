package draw

import (
	"github.com/Coeai-9487/kidney-meals-lottery/internal/catalog"
	"github.com/google/uuid"
)

// Token identifies one pending draw on one control.
type Token struct {
	ID       uuid.UUID
	Category catalog.Category
}

// Guard tracks which controls have a draw in flight. It is owned by a single
// event loop and is not safe for concurrent use.
type Guard struct {
	pending map[catalog.Category]uuid.UUID
}

func NewGuard() *Guard {
	return &Guard{pending: make(map[catalog.Category]uuid.UUID)}
}

// Begin claims the control for c. It returns false if a draw is already pending there.
func (g *Guard) Begin(c catalog.Category) (Token, bool) {
	if _, busy := g.pending[c]; busy {
		return Token{}, false
	}
	t := Token{ID: uuid.New(), Category: c}
	g.pending[c] = t.ID
	return t, true
}

// Busy reports whether c has a pending draw.
func (g *Guard) Busy(c catalog.Category) bool {
	_, ok := g.pending[c]
	return ok
}

// Current reports whether t is the pending token for its control.
func (g *Guard) Current(t Token) bool {
	id, ok := g.pending[t.Category]
	return ok && id == t.ID
}

// End releases the control held by t. Stale tokens are ignored and reported as false.
func (g *Guard) End(t Token) bool {
	if !g.Current(t) {
		return false
	}
	delete(g.pending, t.Category)
	return true
}
