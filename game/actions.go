package game

import "github.com/notnil/chess"

// The action space indexes every (from, to) square pair on the board:
// index = from*64 + to. Promotions share the index of the underlying pawn
// move and are disambiguated against the current legal moves when decoding.
const (
	NumSquares = 64
	NumActions = NumSquares * NumSquares
)

// promoOrder is the candidate preference when an index maps onto several
// legal promotions of the same pawn push.
var promoOrder = []chess.PieceType{chess.Queen, chess.Rook, chess.Bishop, chess.Knight}

// MoveIndex maps a move to its action index.
func MoveIndex(m *chess.Move) int { return int(m.S1())*NumSquares + int(m.S2()) }

// MoveFromIndex maps an action index back to a move that is legal in pos.
// It returns nil, not an error, when no legal move occupies the index;
// callers skip such indices.
func MoveFromIndex(pos *Position, index int) *chess.Move {
	if index < 0 || index >= NumActions {
		return nil
	}
	from := chess.Square(index / NumSquares)
	to := chess.Square(index % NumSquares)

	var candidates []*chess.Move
	for _, m := range pos.LegalMoves() {
		if m.S1() == from && m.S2() == to {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) <= 1 {
		if len(candidates) == 0 {
			return nil
		}
		return candidates[0]
	}
	for _, pt := range promoOrder {
		for _, m := range candidates {
			if m.Promo() == pt {
				return m
			}
		}
	}
	return candidates[0]
}

// LegalMask returns a NumActions-long vector holding 1 at exactly the
// indices reachable by a legal move in pos.
func LegalMask(pos *Position) []float32 {
	mask := make([]float32, NumActions)
	for _, m := range pos.LegalMoves() {
		mask[MoveIndex(m)] = 1
	}
	return mask
}
