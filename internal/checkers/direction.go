package checkers

// Direction is one of the four diagonals, named with row 0 at the top (north).
type Direction int8

const (
	NorthWest Direction = iota
	NorthEast
	SouthWest
	SouthEast
)

var Directions = [4]Direction{NorthWest, NorthEast, SouthWest, SouthEast}

var directionDeltas = [4][2]int{
	NorthWest: {-1, -1},
	NorthEast: {-1, +1},
	SouthWest: {+1, -1},
	SouthEast: {+1, +1},
}

// Delta returns the row and column change of one step.
func (d Direction) Delta() (dr, dc int) {
	v := directionDeltas[d]
	return v[0], v[1]
}

// Step walks dist squares from sq along d. It fails when the walk leaves the board.
func (d Direction) Step(sq Square, dist int) (Square, bool) {
	dr, dc := d.Delta()
	return SquareAt(sq.Row()+dr*dist, sq.Col()+dc*dist)
}

func (d Direction) String() string {
	switch d {
	case NorthWest:
		return "NW"
	case NorthEast:
		return "NE"
	case SouthWest:
		return "SW"
	case SouthEast:
		return "SE"
	}
	return "?"
}
