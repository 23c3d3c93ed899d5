package game

import "github.com/notnil/chess"

const (
	RowNum = 8
	ColNum = 8

	// KingSide and QueenSide name the castling wings.
	KingSide  = chess.KingSide
	QueenSide = chess.QueenSide
)

// State is any chess position that can report back to the searchers.
// A State is a single mutable instance: searchers explore moves with Push/Pop
// (or Apply) and must restore it before returning.
type State interface {
	// These methods represent the game state
	Position() *chess.Position   // current position snapshot (immutable).
	Turn() chess.Color           // Turn returns the color to move next.
	Ply() int                    // returns count of plies pushed since the game started.
	LastMove() *chess.Move       // returns the move that led to this position, nil at the start.
	LegalMoves() []*chess.Move   // all legal moves, in generation order.
	PieceAt(sq chess.Square) chess.Piece
	Pieces(pt chess.PieceType, c chess.Color) []chess.Square
	King(c chess.Color) chess.Square
	CanCastle(c chess.Color, side chess.Side) bool

	// Meta-game stuff
	Ended() bool              // has the game ended?
	Outcome() chess.Outcome   // result of the game, NoOutcome while it is running.
	Method() chess.Method     // how the game ended, NoMethod while it is running.
	InCheck() bool            // is the side to move in check?
	IsCheckmate() bool
	IsStalemate() bool

	// Move queries, all against the current position.
	IsCapture(m *chess.Move) bool
	IsCastling(m *chess.Move) bool
	GivesCheck(m *chess.Move) bool

	// Attack queries.
	AttackedBy(c chess.Color, sq chess.Square) bool
	Attacks(sq chess.Square) int // number of squares attacked by the piece on sq.

	// interactions
	Push(m *chess.Move)                // applies a legal move.
	Pop()                              // undoes the last pushed move.
	Apply(m *chess.Move) (undo func()) // Push that returns its matching Pop.

	// generics
	Key() string // stable encoding, equal keys mean equal positions.
	Eq(other State) bool
	Clone() State
}
