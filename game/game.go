// Package game adapts the notnil/chess rules engine to the capability
// surface the search needs: legal move generation, move application,
// terminal detection, result scoring and a fixed-shape tensor encoding.
package game

import (
	"strconv"
	"strings"

	"github.com/notnil/chess"
	"github.com/pkg/errors"
)

// Position is a single immutable snapshot of a chess game. Apply returns a
// fresh Position and never mutates the receiver, so every search-tree node
// can own its own snapshot without aliasing.
type Position struct {
	pos *chess.Position
	ply int
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	return &Position{pos: chess.NewGame().Position()}
}

// PositionFromFEN builds a Position from a FEN record. The ply counter is
// reconstructed from the FEN's fullmove number and side to move.
func PositionFromFEN(fen string) (*Position, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing FEN %q", fen)
	}
	g := chess.NewGame(opt)

	ply := 0
	fields := strings.Fields(fen)
	if len(fields) == 6 {
		if fullmove, err := strconv.Atoi(fields[5]); err == nil && fullmove > 0 {
			ply = (fullmove - 1) * 2
			if fields[1] == "b" {
				ply++
			}
		}
	}
	return &Position{pos: g.Position(), ply: ply}, nil
}

// Turn returns the color of the side to move.
func (p *Position) Turn() chess.Color { return p.pos.Turn() }

// Ply returns the number of half-moves played to reach this position.
func (p *Position) Ply() int { return p.ply }

// LegalMoves enumerates every legal move for the side to move.
func (p *Position) LegalMoves() []*chess.Move { return p.pos.ValidMoves() }

// Apply plays a move and returns the resulting position.
func (p *Position) Apply(m *chess.Move) *Position {
	return &Position{pos: p.pos.Update(m), ply: p.ply + 1}
}

// IsTerminal reports whether the game has ended at this position.
func (p *Position) IsTerminal() bool { return p.pos.Status() != chess.NoMethod }

// Result scores a terminal position from the perspective of the side to
// move: -1 when the mover has been checkmated, 0 for a stalemate. The second
// return is false while the game is still in progress.
func (p *Position) Result() (float32, bool) {
	switch p.pos.Status() {
	case chess.Checkmate:
		return -1, true
	case chess.Stalemate:
		return 0, true
	}
	return 0, false
}

// FEN serializes the position.
func (p *Position) FEN() string { return p.pos.String() }

func (p *Position) String() string { return p.pos.Board().Draw() }
