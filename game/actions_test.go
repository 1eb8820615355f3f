package game

import (
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/require"
)

func TestMoveIndexRoundTrip(t *testing.T) {
	pos := NewPosition()
	for _, m := range pos.LegalMoves() {
		idx := MoveIndex(m)
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, NumActions)

		got := MoveFromIndex(pos, idx)
		require.NotNil(t, got, "decoding %v", m)
		require.Equal(t, m.S1(), got.S1())
		require.Equal(t, m.S2(), got.S2())
	}
}

func TestMoveFromIndexPromotion(t *testing.T) {
	// a7a8 has four legal promotions sharing one index; the queen wins
	pos, err := PositionFromFEN("8/P6k/8/8/8/8/8/K7 w - - 0 1")
	require.NoError(t, err)

	idx := int(chess.A7)*NumSquares + int(chess.A8)
	m := MoveFromIndex(pos, idx)
	require.NotNil(t, m)
	require.Equal(t, chess.A7, m.S1())
	require.Equal(t, chess.A8, m.S2())
	require.Equal(t, chess.Queen, m.Promo())
}

func TestMoveFromIndexNotFound(t *testing.T) {
	pos := NewPosition()
	// a3a4 is unreachable from the starting position
	idx := int(chess.A3)*NumSquares + int(chess.A4)
	require.Nil(t, MoveFromIndex(pos, idx))
	require.Nil(t, MoveFromIndex(pos, -1))
	require.Nil(t, MoveFromIndex(pos, NumActions))
}

func TestLegalMask(t *testing.T) {
	pos := NewPosition()
	mask := LegalMask(pos)
	require.Len(t, mask, NumActions)

	indices := make(map[int]struct{})
	for _, m := range pos.LegalMoves() {
		idx := MoveIndex(m)
		indices[idx] = struct{}{}
		require.Equal(t, float32(1), mask[idx])
	}

	var ones int
	for _, v := range mask {
		if v == 1 {
			ones++
		}
	}
	require.Equal(t, len(indices), ones)
}
