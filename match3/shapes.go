package match3

// Offset is a position relative to a template's center.
type Offset struct {
	Row, Col int
}

// Template is a match pattern: the center plus K offsets that must all hold the
// same plain piece. Promote is the special a match of this template creates.
type Template struct {
	Shape   Shape
	Offsets []Offset
	Promote Piece
}

// Size is the number of cells a match of t covers.
func (t Template) Size() int {
	return len(t.Offsets) + 1
}

// Triple templates center on the middle cell of three.
var TripleTemplates = []Template{
	{Shape: ShapeTriple, Offsets: []Offset{{0, -1}, {0, 1}}},
	{Shape: ShapeTriple, Offsets: []Offset{{-1, 0}, {1, 0}}},
}

// QuadLineTemplates center on the third cell of four, so the promoted Liner
// lands there when the swap did not touch the run.
var QuadLineTemplates = []Template{
	{Shape: ShapeQuadLine, Offsets: []Offset{{0, -2}, {0, -1}, {0, 1}}, Promote: HorizontalLiner},
	{Shape: ShapeQuadLine, Offsets: []Offset{{-2, 0}, {-1, 0}, {1, 0}}, Promote: VerticalLiner},
}

// LBendTemplates center on the corner of the L; each arm is two cells long.
var LBendTemplates = []Template{
	{Shape: ShapeLBend, Offsets: []Offset{{0, -1}, {0, -2}, {-1, 0}, {-2, 0}}, Promote: Bomb},
	{Shape: ShapeLBend, Offsets: []Offset{{0, -1}, {0, -2}, {1, 0}, {2, 0}}, Promote: Bomb},
	{Shape: ShapeLBend, Offsets: []Offset{{0, 1}, {0, 2}, {-1, 0}, {-2, 0}}, Promote: Bomb},
	{Shape: ShapeLBend, Offsets: []Offset{{0, 1}, {0, 2}, {1, 0}, {2, 0}}, Promote: Bomb},
}

// FiveLineTemplates center on the middle cell of five.
var FiveLineTemplates = []Template{
	{Shape: ShapeFiveLine, Offsets: []Offset{{0, -1}, {0, -2}, {0, 1}, {0, 2}}, Promote: Eliminator},
	{Shape: ShapeFiveLine, Offsets: []Offset{{-1, 0}, {-2, 0}, {1, 0}, {2, 0}}, Promote: Eliminator},
}
