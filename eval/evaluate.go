// Package eval scores chess positions without searching.
//
// Scores are in pawns from White's point of view. A checkmate scores ±Inf
// and callers must treat infinities as absorbing.
package eval

import (
	"github.com/chewxy/math32"
	"github.com/notnil/chess"

	"github.com/chessduel/game"
)

// Phase boundaries, in plies since the start of the game.
const (
	OpeningPlies    = 10
	MiddlegamePlies = 30
)

type Phase int

const (
	Opening Phase = iota
	Middlegame
	Endgame
)

func (p Phase) String() string {
	switch p {
	case Opening:
		return "Opening"
	case Middlegame:
		return "Middlegame"
	case Endgame:
		return "Endgame"
	}
	return "UNKNOWN PHASE"
}

// PhaseOf returns the game phase of s.
func PhaseOf(s game.State) Phase {
	switch ply := s.Ply(); {
	case ply < OpeningPlies:
		return Opening
	case ply < MiddlegamePlies:
		return Middlegame
	}
	return Endgame
}

// Evaluate returns the static score of s.
func Evaluate(s game.State) float32 {
	var value float32
	switch PhaseOf(s) {
	case Opening:
		value = opening(s)
	case Middlegame:
		value = middlegame(s)
	default:
		value = endgame(s)
	}

	value += Castling(s)
	value += KingSafety(s, chess.White)
	value -= KingSafety(s, chess.Black)
	return value
}

func opening(s game.State) float32 {
	value := Material(s)
	value += CentralControl(s, chess.White) * 0.3
	value -= CentralControl(s, chess.Black) * 0.3
	value += Development(s, chess.White) * 0.4
	value -= Development(s, chess.Black) * 0.4
	value += EarlyQueenPenalty(s, chess.White)
	value -= EarlyQueenPenalty(s, chess.Black)
	return value
}

func middlegame(s game.State) float32 {
	value := Material(s)
	value += CentralControl(s, chess.White) * 0.2
	value -= CentralControl(s, chess.Black) * 0.2
	value += Activity(s, chess.White) * 0.3
	value -= Activity(s, chess.Black) * 0.3
	value += KingSafety(s, chess.White) * 0.3
	value -= KingSafety(s, chess.Black) * 0.3
	return value
}

func endgame(s game.State) float32 {
	value := Material(s)
	value += KingActivity(s, chess.White) * 0.3
	value -= KingActivity(s, chess.Black) * 0.3
	value += PawnAdvancement(s, chess.White) * 0.4
	value -= PawnAdvancement(s, chess.Black) * 0.4
	return value
}

// IsMate reports whether v is a checkmate score.
func IsMate(v float32) bool { return math32.IsInf(v, 0) }
