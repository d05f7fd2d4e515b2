package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// StartDiagram is the diagram of the starting layout.
const StartDiagram = "RNBQKBNR/PPPPPPPP/8/8/8/8/pppppppp/rnbqkbnr"

// ErrInvalidDiagram is returned for malformed board diagrams.
var ErrInvalidDiagram = errors.New("invalid diagram")

// ParseDiagram builds a board from a diagram: eight rows separated by '/',
// rank 7 first, file 0 leftmost. Digits 1-8 skip empty squares, letters
// p b n r q k place pieces (uppercase for the Computer, lowercase for the Player).
func ParseDiagram(diagram string) (*Board, error) {
	rows := strings.Split(strings.TrimSpace(diagram), "/")
	if len(rows) != Size {
		return nil, fmt.Errorf("%w: need %d rows, got %d", ErrInvalidDiagram, Size, len(rows))
	}

	b := NewEmptyBoard()
	for i, row := range rows {
		y := Size - 1 - i
		x := 0

		for _, c := range row {
			if x >= Size {
				return nil, fmt.Errorf("%w: too many squares in rank %d", ErrInvalidDiagram, y)
			}

			if c >= '1' && c <= '8' {
				x += int(c - '0')
				continue
			}

			if c > 0x7F {
				return nil, fmt.Errorf("%w: invalid piece character %q", ErrInvalidDiagram, c)
			}
			piece, ok := PieceFromChar(byte(c))
			if !ok {
				return nil, fmt.Errorf("%w: invalid piece character %q", ErrInvalidDiagram, c)
			}
			b.Place(NewPosition(x, y), piece)
			x++
		}

		if x != Size {
			return nil, fmt.Errorf("%w: rank %d has %d squares", ErrInvalidDiagram, y, x)
		}
	}

	return b, nil
}

// MustParseDiagram is like ParseDiagram but panics on error.
// Intended for fixed layouts in tests and tooling.
func MustParseDiagram(diagram string) *Board {
	b, err := ParseDiagram(diagram)
	if err != nil {
		panic(err)
	}
	return b
}

// Diagram returns the diagram of the board.
func (b *Board) Diagram() string {
	var sb strings.Builder

	for y := Size - 1; y >= 0; y-- {
		empty := 0
		for x := 0; x < Size; x++ {
			piece := b.squares[x][y]
			if piece == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(piece.Char())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if y > 0 {
			sb.WriteByte('/')
		}
	}

	return sb.String()
}
