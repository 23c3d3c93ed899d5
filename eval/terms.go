package eval

import (
	"github.com/chewxy/math32"
	"github.com/notnil/chess"

	"github.com/chessduel/game"
)

// Piece values in pawns, indexed by chess.PieceType.
var pieceVals = [...]float32{
	chess.NoPieceType: 0,
	chess.King:        0,
	chess.Queen:       9,
	chess.Rook:        5,
	chess.Bishop:      3,
	chess.Knight:      3,
	chess.Pawn:        1,
}

// PieceValue returns the material value of pt.
func PieceValue(pt chess.PieceType) float32 { return pieceVals[pt] }

var centre = [...]chess.Square{chess.D4, chess.E4, chess.D5, chess.E5}

// Material returns White's material minus Black's. A checkmated side to move
// scores -Inf for White and +Inf for Black; stalemate scores 0.
func Material(s game.State) float32 {
	if s.IsCheckmate() {
		if s.Turn() == chess.White {
			return math32.Inf(-1)
		}
		return math32.Inf(1)
	}
	if s.IsStalemate() {
		return 0
	}

	var value float32
	for pt := chess.King; pt <= chess.Pawn; pt++ {
		value += float32(len(s.Pieces(pt, chess.White))) * PieceValue(pt)
		value -= float32(len(s.Pieces(pt, chess.Black))) * PieceValue(pt)
	}
	return value
}

// CentralControl scores occupation (0.5) or else attack (0.1) of each centre square.
func CentralControl(s game.State, c chess.Color) float32 {
	var score float32
	for _, sq := range centre {
		p := s.PieceAt(sq)
		switch {
		case p != chess.NoPiece && p.Color() == c:
			score += 0.5
		case s.AttackedBy(c, sq):
			score += 0.1
		}
	}
	return score
}

// developed reports whether a minor piece of color c on sq has left its first two ranks.
func developed(sq chess.Square, c chess.Color) bool {
	if c == chess.White {
		return sq.Rank() > chess.Rank2
	}
	return sq.Rank() < chess.Rank7
}

// Development scores 0.3 per developed knight or bishop.
func Development(s game.State, c chess.Color) float32 {
	var score float32
	for _, pt := range [...]chess.PieceType{chess.Knight, chess.Bishop} {
		for _, sq := range s.Pieces(pt, c) {
			if developed(sq, c) {
				score += 0.3
			}
		}
	}
	return score
}

var (
	queenHome   = [3]chess.Square{chess.White: chess.D1, chess.Black: chess.D8}
	knightHomes = [3][2]chess.Square{chess.White: {chess.B1, chess.G1}, chess.Black: {chess.B8, chess.G8}}
	bishopHomes = [3][2]chess.Square{chess.White: {chess.C1, chess.F1}, chess.Black: {chess.C8, chess.F8}}
)

func leftHome(sqs []chess.Square, homes [2]chess.Square) bool {
	for _, sq := range sqs {
		if sq != homes[0] && sq != homes[1] {
			return true
		}
	}
	return false
}

// EarlyQueenPenalty is a non-positive score for a queen that left d1/d8
// within the first 10 plies. It is -0.2 once a knight and a bishop have both
// been developed; otherwise it is -0.7*(6-ply)/6 before ply 6 and 0 after.
func EarlyQueenPenalty(s game.State, c chess.Color) float32 {
	ply := s.Ply()
	if ply > OpeningPlies {
		return 0
	}
	queens := s.Pieces(chess.Queen, c)
	if len(queens) == 0 || queens[0] == queenHome[c] {
		return 0
	}

	knightsMoved := leftHome(s.Pieces(chess.Knight, c), knightHomes[c])
	bishopsMoved := leftHome(s.Pieces(chess.Bishop, c), bishopHomes[c])
	if knightsMoved && bishopsMoved {
		return -0.2
	}
	if ply >= 6 {
		return 0
	}
	return -0.7 * float32(6-ply) / 6
}

// Activity is 0.1 per square attacked by the knights, bishops, rooks and queens of c.
func Activity(s game.State, c chess.Color) float32 {
	var n int
	for _, pt := range [...]chess.PieceType{chess.Knight, chess.Bishop, chess.Rook, chess.Queen} {
		for _, sq := range s.Pieces(pt, c) {
			n += s.Attacks(sq)
		}
	}
	return float32(n) * 0.1
}

// KingActivity is 0.1 per square attacked by the king of c.
func KingActivity(s game.State, c chess.Color) float32 {
	k := s.King(c)
	if k == chess.NoSquare {
		return 0
	}
	return float32(s.Attacks(k)) * 0.1
}

// PawnAdvancement is 0.1 per rank the pawns of c have travelled.
func PawnAdvancement(s game.State, c chess.Color) float32 {
	var n int
	for _, sq := range s.Pieces(chess.Pawn, c) {
		if c == chess.White {
			n += int(sq.Rank())
		} else {
			n += 7 - int(sq.Rank())
		}
	}
	return float32(n) * 0.1
}

// Castling is 0.5 per castling right still held by either side.
func Castling(s game.State) float32 {
	var score float32
	for _, c := range [...]chess.Color{chess.White, chess.Black} {
		for _, side := range [...]chess.Side{game.KingSide, game.QueenSide} {
			if s.CanCastle(c, side) {
				score += 0.5
			}
		}
	}
	return score
}

var pawnShields = map[chess.Square][]chess.Square{
	chess.G1: {chess.F1, chess.F2, chess.G2, chess.H1, chess.H2},
	chess.C1: {chess.B1, chess.B2, chess.C2, chess.D1, chess.D2},
	chess.G8: {chess.F8, chess.F7, chess.G7, chess.H8, chess.H7},
	chess.C8: {chess.B8, chess.B7, chess.C7, chess.D8, chess.D7},
}

// HasCastled reports whether the king of c stands on a castling destination square.
func HasCastled(s game.State, c chess.Color) bool {
	switch s.King(c) {
	case chess.G1, chess.C1:
		return c == chess.White
	case chess.G8, chess.C8:
		return c == chess.Black
	}
	return false
}

// KingSafety is zero before castling. A castled king with fewer than two own
// pawns on its shield squares scores -0.5.
func KingSafety(s game.State, c chess.Color) float32 {
	if !HasCastled(s, c) {
		return 0
	}
	var pawns int
	for _, sq := range pawnShields[s.King(c)] {
		if p := s.PieceAt(sq); p.Type() == chess.Pawn && p.Color() == c {
			pawns++
		}
	}
	if pawns < 2 {
		return -0.5
	}
	return 0
}
