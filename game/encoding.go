package game

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
)

// attackMap holds the occupancy bitboards of a position and the squares each
// piece attacks. Square indices follow a1 = 0, h8 = 63 for both libraries.
type attackMap struct {
	occupied uint64
	byColor  [3]uint64 // indexed by chess.Color
	from     [64]uint64
}

var (
	knightAttacks [64]uint64
	kingAttacks   [64]uint64
)

func init() {
	knightSteps := [][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps := [][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	for sq := 0; sq < 64; sq++ {
		f, r := sq%ColNum, sq/ColNum
		knightAttacks[sq] = steps(f, r, knightSteps)
		kingAttacks[sq] = steps(f, r, kingSteps)
	}
}

func steps(f, r int, deltas [][2]int) (bb uint64) {
	for _, d := range deltas {
		nf, nr := f+d[0], r+d[1]
		if nf < 0 || nf >= ColNum || nr < 0 || nr >= RowNum {
			continue
		}
		bb |= 1 << uint(nr*ColNum+nf)
	}
	return bb
}

func pawnAttacks(sq int, c chess.Color) uint64 {
	f, r := sq%ColNum, sq/ColNum
	dir := 1
	if c == chess.Black {
		dir = -1
	}
	return steps(f, r, [][2]int{{-1, dir}, {1, dir}})
}

func newAttackMap(b *chess.Board) *attackMap {
	m := &attackMap{}
	pieces := b.SquareMap()
	for sq, p := range pieces {
		bit := uint64(1) << uint(sq)
		m.occupied |= bit
		m.byColor[p.Color()] |= bit
	}
	for sq, p := range pieces {
		m.from[sq] = m.attacksOf(int(sq), p)
	}
	return m
}

func (m *attackMap) attacksOf(sq int, p chess.Piece) uint64 {
	switch p.Type() {
	case chess.Pawn:
		return pawnAttacks(sq, p.Color())
	case chess.Knight:
		return knightAttacks[sq]
	case chess.King:
		return kingAttacks[sq]
	case chess.Bishop:
		return dragontoothmg.CalculateBishopMoveBitboard(uint8(sq), m.occupied)
	case chess.Rook:
		return dragontoothmg.CalculateRookMoveBitboard(uint8(sq), m.occupied)
	case chess.Queen:
		return dragontoothmg.CalculateBishopMoveBitboard(uint8(sq), m.occupied) |
			dragontoothmg.CalculateRookMoveBitboard(uint8(sq), m.occupied)
	}
	return 0
}

// attackedBy reports whether any piece of color c attacks sq.
func (m *attackMap) attackedBy(c chess.Color, sq chess.Square) bool {
	target := uint64(1) << uint(sq)
	own := m.byColor[c]
	for own != 0 {
		from := bits.TrailingZeros64(own)
		own &= own - 1
		if m.from[from]&target != 0 {
			return true
		}
	}
	return false
}

func (m *attackMap) count(sq chess.Square) int {
	return bits.OnesCount64(m.from[sq])
}
