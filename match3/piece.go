package match3

import "math/rand/v2"

// Piece is the value a cell holds: one of four plain colors or a special.
type Piece uint8

const (
	Red Piece = iota
	Blue
	Green
	Pink
	Bomb
	HorizontalLiner
	VerticalLiner
	Eliminator
)

// PlainPieces lists the colors a cell can be regenerated with.
var PlainPieces = [...]Piece{Red, Blue, Green, Pink}

var pieceNames = [...]string{
	Red:             "Red",
	Blue:            "Blue",
	Green:           "Green",
	Pink:            "Pink",
	Bomb:            "Bomb",
	HorizontalLiner: "HorizontalLiner",
	VerticalLiner:   "VerticalLiner",
	Eliminator:      "Eliminator",
}

// Special reports whether p is created by a match rather than dealt.
// Specials never take part in color matching.
func (p Piece) Special() bool {
	return p >= Bomb
}

func (p Piece) String() string {
	if int(p) < len(pieceNames) {
		return pieceNames[p]
	}
	return "Piece(?)"
}

// RandomPlain draws one of the plain colors uniformly.
func RandomPlain(r *rand.Rand) Piece {
	return PlainPieces[r.IntN(len(PlainPieces))]
}

// Shape names the template (or activation) that produced a MatchMade.
type Shape uint8

const (
	ShapeTriple Shape = iota
	ShapeQuadLine
	ShapeLBend
	ShapeFiveLine
)

func (s Shape) String() string {
	switch s {
	case ShapeTriple:
		return "triple"
	case ShapeQuadLine:
		return "quad-line"
	case ShapeLBend:
		return "l-bend"
	case ShapeFiveLine:
		return "five-line"
	}
	return "unknown"
}
