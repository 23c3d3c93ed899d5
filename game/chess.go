package game

import (
	"strconv"
	"strings"

	"github.com/notnil/chess"
	"github.com/pkg/errors"
)

const (
	// seventyFiveMoveRule is the halfmove clock at which the game is drawn without a claim.
	seventyFiveMoveRule = 150
	// fivefoldRepetition is the number of occurrences at which the game is drawn without a claim.
	fivefoldRepetition = 5
)

// frame is one entry of the push/pop history.
type frame struct {
	pos      *chess.Position
	move     *chess.Move // move that produced pos, nil for the initial frame
	fen      string
	repKey   string // placement, turn, castling and en passant only
	halfMove int
	atk      *attackMap // lazily built
}

func newFrame(pos *chess.Position, move *chess.Move) frame {
	fen := pos.String()
	fields := strings.Fields(fen)
	var halfMove int
	if len(fields) > 4 {
		halfMove, _ = strconv.Atoi(fields[4])
	}
	repKey := fen
	if len(fields) >= 4 {
		repKey = strings.Join(fields[:4], " ")
	}
	return frame{pos: pos, move: move, fen: fen, repKey: repKey, halfMove: halfMove}
}

// Chess is a State backed by github.com/notnil/chess positions. Positions are
// immutable, so Push appends the updated position and Pop drops it.
type Chess struct {
	history []frame
}

// ChessGame returns the standard starting position.
func ChessGame() *Chess {
	return &Chess{history: []frame{newFrame(chess.NewGame().Position(), nil)}}
}

// FromFEN returns the position described by fen. The ply counter starts at zero.
func FromFEN(fen string) (*Chess, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, errors.Wrapf(err, "parse fen %q", fen)
	}
	return &Chess{history: []frame{newFrame(chess.NewGame(opt).Position(), nil)}}, nil
}

func (g *Chess) top() *frame { return &g.history[len(g.history)-1] }

func (g *Chess) attacks() *attackMap {
	f := g.top()
	if f.atk == nil {
		f.atk = newAttackMap(f.pos.Board())
	}
	return f.atk
}

func (g *Chess) Position() *chess.Position { return g.top().pos }
func (g *Chess) Turn() chess.Color         { return g.top().pos.Turn() }
func (g *Chess) Ply() int                  { return len(g.history) - 1 }
func (g *Chess) LastMove() *chess.Move     { return g.top().move }
func (g *Chess) LegalMoves() []*chess.Move { return g.top().pos.ValidMoves() }

func (g *Chess) PieceAt(sq chess.Square) chess.Piece { return g.top().pos.Board().Piece(sq) }

// Pieces returns the squares holding pieces of type pt and color c, in square order.
func (g *Chess) Pieces(pt chess.PieceType, c chess.Color) []chess.Square {
	var retVal []chess.Square
	b := g.top().pos.Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		p := b.Piece(sq)
		if p != chess.NoPiece && p.Type() == pt && p.Color() == c {
			retVal = append(retVal, sq)
		}
	}
	return retVal
}

// King returns the square of c's king, or chess.NoSquare if it is missing.
func (g *Chess) King(c chess.Color) chess.Square {
	if sqs := g.Pieces(chess.King, c); len(sqs) > 0 {
		return sqs[0]
	}
	return chess.NoSquare
}

func (g *Chess) CanCastle(c chess.Color, side chess.Side) bool {
	return g.top().pos.CastleRights().CanCastle(c, side)
}

func (g *Chess) InCheck() bool {
	k := g.King(g.Turn())
	if k == chess.NoSquare {
		return false
	}
	return g.attacks().attackedBy(g.Turn().Other(), k)
}

func (g *Chess) IsCheckmate() bool { return g.top().pos.Status() == chess.Checkmate }
func (g *Chess) IsStalemate() bool { return g.top().pos.Status() == chess.Stalemate }

// Method reports how the game ended. Only draws that need no claim are
// recognised: stalemate, insufficient material, the seventy-five move rule
// and fivefold repetition.
func (g *Chess) Method() chess.Method {
	switch g.top().pos.Status() {
	case chess.Checkmate:
		return chess.Checkmate
	case chess.Stalemate:
		return chess.Stalemate
	}
	if g.insufficientMaterial() {
		return chess.InsufficientMaterial
	}
	if g.top().halfMove >= seventyFiveMoveRule {
		return chess.SeventyFiveMoveRule
	}
	if g.repetitions() >= fivefoldRepetition {
		return chess.FivefoldRepetition
	}
	return chess.NoMethod
}

func (g *Chess) Ended() bool { return g.Method() != chess.NoMethod }

func (g *Chess) Outcome() chess.Outcome {
	switch g.Method() {
	case chess.NoMethod:
		return chess.NoOutcome
	case chess.Checkmate:
		if g.Turn() == chess.White {
			return chess.BlackWon
		}
		return chess.WhiteWon
	}
	return chess.Draw
}

func (g *Chess) repetitions() (n int) {
	key := g.top().repKey
	for i := len(g.history) - 1; i >= 0; i-- {
		if g.history[i].repKey == key {
			n++
		}
	}
	return n
}

func (g *Chess) insufficientMaterial() bool {
	var minors, bishopColors [2]int
	var others int
	for sq, p := range g.top().pos.Board().SquareMap() {
		switch p.Type() {
		case chess.King:
		case chess.Knight:
			minors[0]++
		case chess.Bishop:
			minors[1]++
			bishopColors[(int(sq.File())+int(sq.Rank()))%2]++
		default:
			others++
		}
	}
	switch {
	case others > 0:
		return false
	case minors[0]+minors[1] <= 1:
		return true
	case minors[0] == 0:
		// only bishops left, all on one square color
		return bishopColors[0] == 0 || bishopColors[1] == 0
	}
	return false
}

func (g *Chess) IsCapture(m *chess.Move) bool {
	return m.HasTag(chess.Capture) || m.HasTag(chess.EnPassant)
}

func (g *Chess) IsCastling(m *chess.Move) bool {
	return m.HasTag(chess.KingSideCastle) || m.HasTag(chess.QueenSideCastle)
}

func (g *Chess) GivesCheck(m *chess.Move) bool { return m.HasTag(chess.Check) }

func (g *Chess) AttackedBy(c chess.Color, sq chess.Square) bool {
	return g.attacks().attackedBy(c, sq)
}

func (g *Chess) Attacks(sq chess.Square) int { return g.attacks().count(sq) }

// Push applies m, which must be legal in the current position.
func (g *Chess) Push(m *chess.Move) {
	g.history = append(g.history, newFrame(g.top().pos.Update(m), m))
}

// Pop undoes the last pushed move. Popping the initial position panics.
func (g *Chess) Pop() {
	if len(g.history) == 1 {
		panic("Pop called without a pushed move")
	}
	g.history[len(g.history)-1] = frame{}
	g.history = g.history[:len(g.history)-1]
}

func (g *Chess) Apply(m *chess.Move) (undo func()) {
	g.Push(m)
	depth := len(g.history)
	return func() {
		if len(g.history) != depth {
			panic("unbalanced Apply/undo")
		}
		g.Pop()
	}
}

func (g *Chess) Key() string { return g.top().fen }

func (g *Chess) Eq(other State) bool {
	if other == nil {
		return false
	}
	return g.Key() == other.Key()
}

func (g *Chess) Clone() State {
	history := make([]frame, len(g.history))
	copy(history, g.history)
	return &Chess{history: history}
}

// Start returns the position the game started from.
func (g *Chess) Start() *chess.Position { return g.history[0].pos }

// Moves returns the moves pushed since the start, oldest first.
func (g *Chess) Moves() []*chess.Move {
	retVal := make([]*chess.Move, 0, len(g.history)-1)
	for _, f := range g.history[1:] {
		retVal = append(retVal, f.move)
	}
	return retVal
}

// Decode parses a UCI move string against the current position.
func (g *Chess) Decode(uci string) (*chess.Move, error) {
	m, err := chess.UCINotation{}.Decode(g.top().pos, uci)
	if err != nil {
		return nil, errors.Wrapf(err, "decode move %q", uci)
	}
	// return the generated move so that its tags are populated
	for _, legal := range g.LegalMoves() {
		if legal.S1() == m.S1() && legal.S2() == m.S2() && legal.Promo() == m.Promo() {
			return legal, nil
		}
	}
	return nil, errors.Errorf("illegal move %q in %v", uci, g.Key())
}

func (g *Chess) String() string { return g.top().pos.Board().Draw() }
