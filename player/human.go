package player

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"hex/game"

	"github.com/kballard/go-shellquote"
	"github.com/muesli/termenv"
)

var ErrNoInput = errors.New("no more input")

// LineReader yields one line of user input per call. A readline instance
// satisfies it directly; Lines adapts a plain reader.
type LineReader interface {
	Readline() (string, error)
}

type scannerLines struct {
	scanner *bufio.Scanner
}

func Lines(r io.Reader) LineReader {
	return &scannerLines{scanner: bufio.NewScanner(r)}
}

func (s *scannerLines) Readline() (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

// Human asks a person for moves as 1-based "row col" pairs, re-prompting
// until a legal cell is given.
type Human struct {
	in  LineReader
	out *termenv.Output
}

func NewHuman(in LineReader, w io.Writer) *Human {
	return &Human{
		in:  in,
		out: termenv.NewOutput(w),
	}
}

func (h *Human) Decide(b *game.Board) (game.Coordinate, error) {
	h.render(b)
	for {
		fmt.Fprintf(h.out, "%s to move, enter row and column: ", h.colored(b.Turn()))
		line, err := h.in.Readline()
		if err != nil {
			return game.Coordinate{}, fmt.Errorf("%w: %v", ErrNoInput, err)
		}

		c, err := parseCoordinate(line)
		if errors.Is(err, ErrNoInput) {
			return game.Coordinate{}, err
		}
		if err != nil {
			fmt.Fprintln(h.out, err)
			continue
		}
		if !b.IsLegal(c) {
			fmt.Fprintf(h.out, "cell %v is not available\n", c)
			continue
		}
		return c, nil
	}
}

func parseCoordinate(line string) (game.Coordinate, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return game.Coordinate{}, fmt.Errorf("cannot read %q: %v", line, err)
	}
	if len(fields) == 1 && (fields[0] == "quit" || fields[0] == "exit") {
		return game.Coordinate{}, ErrNoInput
	}
	if len(fields) != 2 {
		return game.Coordinate{}, fmt.Errorf("expected row and column, got %q", line)
	}
	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return game.Coordinate{}, fmt.Errorf("bad row %q", fields[0])
	}
	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return game.Coordinate{}, fmt.Errorf("bad column %q", fields[1])
	}
	return game.Coordinate{Row: row - 1, Col: col - 1}, nil
}

func (h *Human) colored(m game.Mark) termenv.Style {
	s := h.out.String(m.String())
	switch m {
	case game.PlayerA:
		return s.Foreground(h.out.Color("1")).Bold()
	case game.PlayerB:
		return s.Foreground(h.out.Color("4")).Bold()
	}
	return s.Faint()
}

// render draws the rhombus with 1-based row numbers on the left.
func (h *Human) render(b *game.Board) {
	var sb strings.Builder
	n := b.Size()
	sb.WriteString("   ")
	for col := 1; col <= n; col++ {
		fmt.Fprintf(&sb, "%-2d", col%100)
	}
	sb.WriteString("\n")
	for row := 0; row < n; row++ {
		fmt.Fprintf(&sb, "%2d %s", row+1, strings.Repeat(" ", row))
		for col := 0; col < n; col++ {
			sb.WriteString(h.colored(b.At(game.Coordinate{Row: row, Col: col})).String())
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	fmt.Fprint(h.out, sb.String())
}
