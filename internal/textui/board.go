package textui

import (
	"fmt"
	"io"

	"checkers/internal/checkers"
)

// WriteReferenceBoard prints the square numbers players type in.
func WriteReferenceBoard(w io.Writer) {
	fmt.Fprint(w, "This board is reference for choosing squares to move to (0 - 63): \n\n")
	for row := 0; row < checkers.Rows; row++ {
		for col := 0; col < checkers.Cols; col++ {
			sq, _ := checkers.SquareAt(row, col)
			fmt.Fprintf(w, "%2d ", int(sq))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}

func WriteLegend(w io.Writer) {
	fmt.Fprint(w, "\nBoard Legend:\n")
	for _, c := range []checkers.Cell{
		checkers.EmptyLight, checkers.EmptyDark,
		checkers.RedPiece, checkers.RedKing,
		checkers.BlackPiece, checkers.BlackKing,
	} {
		fmt.Fprintf(w, "%c - %s\n", c.Rune(), legendName(c))
	}
	fmt.Fprintln(w)
}

func legendName(c checkers.Cell) string {
	switch c {
	case checkers.EmptyLight:
		return "unoccupied light square"
	case checkers.EmptyDark:
		return "unoccupied dark square"
	}
	return c.String()
}

func WriteBoard(w io.Writer, pos *checkers.Position) {
	for row := 0; row < checkers.Rows; row++ {
		for col := 0; col < checkers.Cols; col++ {
			sq, _ := checkers.SquareAt(row, col)
			fmt.Fprintf(w, " %c ", pos.DescribeCell(sq).Rune())
		}
		fmt.Fprint(w, "  \n")
	}
}
