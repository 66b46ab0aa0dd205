package game

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

var (
	ErrMissingSize  = errors.New("missing board size")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenCount   = errors.New("token count does not match board size")
)

// LoadError describes why a serialized board could not be read.
type LoadError struct {
	Token int // 1-based position of the offending token, 0 if not applicable
	Err   error
}

func (e *LoadError) Error() string {
	if e.Token > 0 {
		return fmt.Sprintf("load board: token %d: %v", e.Token, e.Err)
	}
	return fmt.Sprintf("load board: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads a board in the plain-text format: the side length n followed
// by n*n whitespace-delimited digits (0 empty, 1 player A, 2 player B) in
// row-major order.
func Load(r io.Reader) (*Board, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, &LoadError{Err: err}
		}
		return nil, &LoadError{Err: ErrMissingSize}
	}
	size, err := strconv.Atoi(scanner.Text())
	if err != nil || size <= 0 {
		return nil, &LoadError{Token: 1, Err: fmt.Errorf("%w: size %q", ErrInvalidToken, scanner.Text())}
	}

	cells := make([]Mark, 0, size*size)
	token := 1
	for scanner.Scan() {
		token++
		if len(cells) == size*size {
			return nil, &LoadError{Token: token, Err: ErrTokenCount}
		}
		text := scanner.Text()
		if len(text) != 1 || text[0] < '0' || text[0] > '2' {
			return nil, &LoadError{Token: token, Err: fmt.Errorf("%w: %q", ErrInvalidToken, text)}
		}
		cells = append(cells, Mark(text[0]-'0'))
	}
	if err := scanner.Err(); err != nil {
		return nil, &LoadError{Err: err}
	}
	if len(cells) != size*size {
		return nil, &LoadError{Err: fmt.Errorf("%w: got %d cells, want %d", ErrTokenCount, len(cells), size*size)}
	}

	return newBoardFromCells(size, cells), nil
}

// LoadFile opens and loads a board file.
func LoadFile(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	defer f.Close()
	return Load(f)
}

// Encode writes the board in the format read by Load.
func (b *Board) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n", b.size)
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			if col > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteByte('0' + byte(b.cells[row*b.size+col]))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
