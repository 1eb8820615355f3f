package game

import "github.com/notnil/chess"

const (
	RowNum = 8
	ColNum = 8

	// 6 white piece planes, 6 black piece planes, 4 castling-rights planes,
	// 1 side-to-move plane, 1 normalized fullmove plane.
	NumPlanes   = 18
	EncodedSize = NumPlanes * RowNum * ColNum
)

const (
	sideToMovePlane = 16
	moveCountPlane  = 17
)

var pieceOrder = []chess.PieceType{
	chess.Pawn, chess.Rook, chess.Knight, chess.Bishop, chess.Queen, chess.King,
}

// Encode converts a position into the NumPlanes x 8 x 8 float32 input fed to
// the evaluator. Piece planes hold 1 on occupied squares, castling and
// side-to-move planes are constant over the board, and the last plane holds
// the fullmove number normalized to [0, 1] with a cap at move 100.
func Encode(p *Position) []float32 {
	planes := make([]float32, EncodedSize)

	board := p.pos.Board()
	for sq := 0; sq < NumSquares; sq++ {
		pc := board.Piece(chess.Square(sq))
		if pc == chess.NoPiece {
			continue
		}
		plane := piecePlane(pc)
		planes[plane*NumSquares+sq] = 1
	}

	cr := p.pos.CastleRights()
	if cr.CanCastle(chess.White, chess.KingSide) {
		fillPlane(planes, 12, 1)
	}
	if cr.CanCastle(chess.White, chess.QueenSide) {
		fillPlane(planes, 13, 1)
	}
	if cr.CanCastle(chess.Black, chess.KingSide) {
		fillPlane(planes, 14, 1)
	}
	if cr.CanCastle(chess.Black, chess.QueenSide) {
		fillPlane(planes, 15, 1)
	}

	if p.Turn() == chess.White {
		fillPlane(planes, sideToMovePlane, 1)
	}

	fullmove := float32(p.ply/2 + 1)
	v := fullmove / 100
	if v > 1 {
		v = 1
	}
	fillPlane(planes, moveCountPlane, v)

	return planes
}

func piecePlane(pc chess.Piece) int {
	plane := 0
	for i, pt := range pieceOrder {
		if pc.Type() == pt {
			plane = i
			break
		}
	}
	if pc.Color() == chess.Black {
		plane += len(pieceOrder)
	}
	return plane
}

func fillPlane(planes []float32, plane int, v float32) {
	for sq := 0; sq < NumSquares; sq++ {
		planes[plane*NumSquares+sq] = v
	}
}
