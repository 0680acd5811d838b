// Package ui is the full-screen terminal front-end built on tview.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"checkers/internal/checkers"
	"checkers/internal/config"
	"checkers/internal/session"
)

// style slots
const (
	styleDark = iota
	styleLight
	styleRed
	styleBlack
	styleCursor
	styleSelected
	styleLanding
	styleLastMove
	styleCoord
)

type BoardUI struct {
	Box     *tview.Box
	hint    *tview.TextView
	app     *tview.Application
	cfg     *config.Config
	styles  []tcell.Color
	sess    session.Session
	ctx     context.Context
	snap    checkers.Snapshot
	selRow  int
	selCol  int
	picked  checkers.Square
	message string
}

func NewBoard(app *tview.Application, c *config.Config, hint *tview.TextView, sess session.Session) *BoardUI {
	b := &BoardUI{
		Box:    tview.NewBox(),
		hint:   hint,
		app:    app,
		sess:   sess,
		ctx:    context.Background(),
		selRow: checkers.Rows - 1,
		selCol: 0,
		picked: checkers.NoSquare,
	}
	b.SetConfig(c)
	b.Box.SetDrawFunc(b.draw)
	b.Box.SetInputCapture(b.HandleKey)
	return b
}

func (b *BoardUI) SetConfig(c *config.Config) {
	b.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.DarkSquare),
		tcell.PaletteColor(c.Theme.Colors.LightSquare),
		tcell.PaletteColor(c.Theme.Colors.Red),
		tcell.PaletteColor(c.Theme.Colors.Black),
		tcell.PaletteColor(c.Theme.Colors.CursorBG),
		tcell.PaletteColor(c.Theme.Colors.SelectedBG),
		tcell.PaletteColor(c.Theme.Colors.LandingBG),
		tcell.PaletteColor(c.Theme.Colors.LastMoveBG),
		tcell.PaletteColor(c.Theme.Colors.CoordinateFG),
	}
	b.cfg = c
}

// Refresh reloads the game from the session.
func (b *BoardUI) Refresh() error {
	snap, err := b.sess.Snapshot(b.ctx)
	if err != nil {
		return err
	}
	b.snap = snap
	if snap.Phase != checkers.PhaseAwaitingMove {
		b.picked = checkers.NoSquare
	}
	b.refreshHint()
	return nil
}

func (b *BoardUI) Cursor() checkers.Square {
	sq, _ := checkers.SquareAt(b.selRow, b.selCol)
	return sq
}

func (b *BoardUI) SetCursor(sq checkers.Square) {
	if sq.OnBoard() {
		b.selRow, b.selCol = sq.Row(), sq.Col()
	}
}

func (b *BoardUI) Picked() checkers.Square { return b.picked }

func (b *BoardUI) MoveCursor(dRow, dCol int) {
	if _, ok := checkers.SquareAt(b.selRow+dRow, b.selCol+dCol); !ok {
		return
	}
	b.selRow += dRow
	b.selCol += dCol
}

// Select acts on the square under the cursor: pick a piece, drop it on a destination,
// or take the next jump of a chain.
func (b *BoardUI) Select() {
	sq := b.Cursor()
	switch b.snap.Phase {
	case checkers.PhaseOver:
		return
	case checkers.PhaseJumpChain:
		_, err := b.sess.Continue(b.ctx, sq)
		b.afterPlay(err)
		return
	}

	owner := b.snap.Position.Owner(sq)
	switch {
	case sq == b.picked:
		b.picked = checkers.NoSquare
		b.message = ""
	case owner == b.snap.Turn:
		b.picked = sq
		b.message = ""
	case b.picked == checkers.NoSquare:
		b.message = fmt.Sprintf("Square %d does not hold a %s piece", sq, b.snap.Turn)
	default:
		from := b.picked
		b.picked = checkers.NoSquare
		_, err := b.sess.Move(b.ctx, from, sq)
		b.afterPlay(err)
	}
	b.refreshHint()
}

func (b *BoardUI) EndChain() {
	if b.snap.Phase != checkers.PhaseJumpChain {
		return
	}
	_, err := b.sess.EndChain(b.ctx)
	b.afterPlay(err)
}

func (b *BoardUI) NewGame() {
	b.afterPlay(b.sess.Reset(b.ctx))
	b.picked = checkers.NoSquare
	b.refreshHint()
}

func (b *BoardUI) afterPlay(err error) {
	b.message = ""
	if err != nil {
		b.message = describe(err)
	}
	if rerr := b.Refresh(); rerr != nil {
		b.message = rerr.Error()
		b.refreshHint()
	}
}

func describe(err error) string {
	if errors.Is(err, checkers.ErrInvalidContinuation) {
		return "Not a valid landing; multi-jump stopped"
	}
	var me *checkers.MoveError
	if errors.As(err, &me) {
		err = me.Err
	}
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// HandleKey is the board's input capture.
func (b *BoardUI) HandleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		b.MoveCursor(-1, 0)
	case tcell.KeyDown:
		b.MoveCursor(1, 0)
	case tcell.KeyLeft:
		b.MoveCursor(0, -1)
	case tcell.KeyRight:
		b.MoveCursor(0, 1)
	case tcell.KeyEnter:
		b.Select()
	case tcell.KeyEsc:
		b.picked = checkers.NoSquare
		b.refreshHint()
	case tcell.KeyRune:
		switch event.Rune() {
		case 'h':
			b.MoveCursor(0, -1)
		case 'j':
			b.MoveCursor(1, 0)
		case 'k':
			b.MoveCursor(-1, 0)
		case 'l':
			b.MoveCursor(0, 1)
		case ' ':
			b.Select()
		case 'e':
			b.EndChain()
		case 'n':
			b.NewGame()
		case 'q':
			if b.app != nil {
				b.app.Stop()
			}
		default:
			return event
		}
	default:
		return event
	}
	return nil
}

// landings are the squares the picked piece, or the chaining piece, may reach now.
func (b *BoardUI) landings() checkers.Bitboard {
	var out checkers.Bitboard
	if b.snap.Phase == checkers.PhaseJumpChain {
		for _, j := range b.snap.Continuations {
			out = out.Add(j.Landing)
		}
		return out
	}
	if b.picked == checkers.NoSquare {
		return out
	}
	for _, m := range b.snap.LegalMoves {
		if m.From == b.picked {
			out = out.Add(m.To)
		}
	}
	return out
}

func (b *BoardUI) refreshHint() {
	if b.hint == nil {
		return
	}
	b.hint.SetText(b.HintText())
}

func (b *BoardUI) HintText() string {
	var sb strings.Builder
	switch b.snap.Phase {
	case checkers.PhaseOver:
		sb.WriteString("───────── Game Over ─────────\n\n")
		fmt.Fprintf(&sb, "  %s wins!\n", b.snap.Winner)
		sb.WriteString("\n  n · new game   q · quit")
		return sb.String()
	case checkers.PhaseJumpChain:
		fmt.Fprintf(&sb, "  %s: multi-jump from %d\n", b.snap.Turn, b.snap.ChainFrom)
		sb.WriteString("  pick the next landing or e to stop\n")
	default:
		fmt.Fprintf(&sb, "  %s to move\n", b.snap.Turn)
		if b.snap.CaptureRequired {
			sb.WriteString("  A capture is available - you must capture\n")
		}
		if b.picked != checkers.NoSquare {
			fmt.Fprintf(&sb, "  Picked %d\n", b.picked)
		}
	}
	if b.message != "" {
		fmt.Fprintf(&sb, "  ! %s\n", b.message)
	}
	sb.WriteString(`
  hjkl/↑↓←→ move   ⏎ pick/drop
  e end jump   n new game   q quit`)
	return sb.String()
}

func (b *BoardUI) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	const cellW = 3
	left, top := x+4, y+1
	pos := &b.snap.Position
	landings := b.landings()

	var lastFrom, lastTo checkers.Square = checkers.NoSquare, checkers.NoSquare
	if b.snap.Last != nil && b.snap.Last.Moved {
		lastFrom, lastTo = b.snap.Last.Move.From, b.snap.Last.Move.To
	}

	coord := tcell.StyleDefault.Foreground(b.styles[styleCoord])
	for col := 0; col < checkers.Cols; col++ {
		tview.Print(screen, fmt.Sprintf("+%d", col), left+col*cellW, y, cellW, tview.AlignCenter, b.styles[styleCoord])
	}
	for row := 0; row < checkers.Rows; row++ {
		label := fmt.Sprintf("%2d", row*checkers.Cols)
		for i, r := range label {
			screen.SetContent(x+1+i, top+row, r, nil, coord)
		}
		for col := 0; col < checkers.Cols; col++ {
			sq, _ := checkers.SquareAt(row, col)
			bg := b.styles[styleLight]
			if sq.Playable() {
				bg = b.styles[styleDark]
			}
			switch {
			case sq == b.Cursor() && b.cfg.Theme.DrawCursorBackground:
				bg = b.styles[styleCursor]
			case sq == b.picked || sq == b.snap.ChainFrom:
				bg = b.styles[styleSelected]
			case landings.Has(sq):
				bg = b.styles[styleLanding]
			case (sq == lastFrom || sq == lastTo) && b.cfg.Theme.DrawLastMoveBackground:
				bg = b.styles[styleLastMove]
			}
			r, fg := b.cellRune(pos.DescribeCell(sq))
			style := tcell.StyleDefault.Background(bg).Foreground(fg)
			screen.SetContent(left+col*cellW, top+row, ' ', nil, style)
			screen.SetContent(left+col*cellW+1, top+row, r, nil, style)
			screen.SetContent(left+col*cellW+2, top+row, ' ', nil, style)
		}
	}
	return x, y, checkers.Cols*cellW + 4, checkers.Rows + 1
}

func (b *BoardUI) cellRune(c checkers.Cell) (rune, tcell.Color) {
	sym := b.cfg.Theme.Symbols
	switch c {
	case checkers.RedPiece:
		return sym.Man, b.styles[styleRed]
	case checkers.RedKing:
		return sym.King, b.styles[styleRed]
	case checkers.BlackPiece:
		return sym.Man, b.styles[styleBlack]
	case checkers.BlackKing:
		return sym.King, b.styles[styleBlack]
	case checkers.EmptyDark:
		return sym.DarkSquare, b.styles[styleCoord]
	}
	return ' ', b.styles[styleCoord]
}

// CreateLayout puts the board above a bordered status panel.
func CreateLayout(board *BoardUI, hint *tview.TextView) *tview.Flex {
	flex := tview.NewFlex().SetDirection(tview.FlexRow)
	flex.AddItem(board.Box, checkers.Rows+2, 0, true)
	flex.AddItem(hint, 0, 1, false)
	return flex
}

// Run opens the full-screen UI over sess and blocks until the player quits.
func Run(c *config.Config, sess session.Session) error {
	app := tview.NewApplication()
	hint := tview.NewTextView()
	hint.SetBorder(true)
	hint.SetBorderPadding(0, 0, 1, 1)
	hint.SetTitle(" Status ")
	hint.SetTitleAlign(tview.AlignLeft)

	board := NewBoard(app, c, hint, sess)
	if err := board.Refresh(); err != nil {
		return err
	}
	root := CreateLayout(board, hint)
	root.SetBorder(true).SetTitle(" checkers ")
	return app.SetRoot(root, true).SetFocus(board.Box).Run()
}
