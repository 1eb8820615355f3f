package game

import (
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/require"
)

// fool's mate: white to move and checkmated
const foolsMateFEN = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"

func TestPositionCheckmate(t *testing.T) {
	pos, err := PositionFromFEN(foolsMateFEN)
	require.NoError(t, err)

	require.True(t, pos.IsTerminal())
	require.Empty(t, pos.LegalMoves())

	result, over := pos.Result()
	require.True(t, over)
	require.Equal(t, float32(-1), result, "the mated mover lost")
}

func TestPositionStalemate(t *testing.T) {
	pos, err := PositionFromFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)

	require.True(t, pos.IsTerminal())
	result, over := pos.Result()
	require.True(t, over)
	require.Equal(t, float32(0), result)
}

func TestPositionApplyDoesNotMutate(t *testing.T) {
	pos := NewPosition()
	fen := pos.FEN()

	next := pos.Apply(pos.LegalMoves()[0])

	require.Equal(t, fen, pos.FEN())
	require.Equal(t, 0, pos.Ply())
	require.Equal(t, 1, next.Ply())
	require.Equal(t, chess.Black, next.Turn())
	require.NotEqual(t, fen, next.FEN())
}

func TestPositionFromFENPly(t *testing.T) {
	pos, err := PositionFromFEN(foolsMateFEN)
	require.NoError(t, err)
	// fullmove 3, white to move: 4 half-moves played
	require.Equal(t, 4, pos.Ply())

	start := NewPosition()
	require.Equal(t, 0, start.Ply())
	require.False(t, start.IsTerminal())
	_, over := start.Result()
	require.False(t, over)
}
