package game

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loading a valid board", func(t *testing.T) {
		b, err := Load(strings.NewReader("3\n1 0 0\n0 2 0\n0 0 0\n"))

		require.NoError(t, err)
		require.Equal(t, 3, b.Size())
		require.Equal(t, PlayerA, b.At(Coordinate{Row: 0, Col: 0}))
		require.Equal(t, PlayerB, b.At(Coordinate{Row: 1, Col: 1}))
		require.Equal(t, 7, b.EmptyCount(), "Empty count should be derived from the cells")
		require.Equal(t, PlayerA, b.Turn(), "Equal counts should leave player A to move")
	})

	t.Run("player B moves when A is ahead", func(t *testing.T) {
		b, err := Load(strings.NewReader("2 1 0 0 0"))

		require.NoError(t, err)
		require.Equal(t, PlayerB, b.Turn())
	})

	tests := []struct {
		name  string
		input string
		want  error
		token int
	}{
		{name: "empty input", input: "", want: ErrMissingSize},
		{name: "non-numeric size", input: "x 0", want: ErrInvalidToken, token: 1},
		{name: "zero size", input: "0", want: ErrInvalidToken, token: 1},
		{name: "non-numeric cell", input: "2 0 a 0 0", want: ErrInvalidToken, token: 3},
		{name: "digit out of range", input: "2 0 3 0 0", want: ErrInvalidToken, token: 3},
		{name: "multi-digit cell", input: "2 0 10 0 0", want: ErrInvalidToken, token: 3},
		{name: "too few cells", input: "2 0 0 0", want: ErrTokenCount},
		{name: "too many cells", input: "2 0 0 0 0 0", want: ErrTokenCount, token: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Load(strings.NewReader(tt.input))

			require.Nil(t, b, "No board should be constructed")
			require.ErrorIs(t, err, tt.want)
			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr), "Error should be a LoadError")
			require.Equal(t, tt.token, loadErr.Token)
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt"))

		var loadErr *LoadError
		require.ErrorAs(t, err, &loadErr)
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("board written by Encode", func(t *testing.T) {
		b := NewBoard(4)
		b.PlaceMark(Coordinate{Row: 0, Col: 3}, PlayerA)
		b.PlaceMark(Coordinate{Row: 2, Col: 1}, PlayerB)
		b.PlaceMark(Coordinate{Row: 3, Col: 0}, PlayerA)

		var buf bytes.Buffer
		require.NoError(t, b.Encode(&buf))
		path := filepath.Join(t.TempDir(), "board.txt")
		require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

		got, err := LoadFile(path)

		require.NoError(t, err)
		require.True(t, got.Equal(b), "Loaded board should match the encoded one")
	})
}

func TestEncode(t *testing.T) {
	b := NewBoard(2)
	b.PlaceMark(Coordinate{Row: 0, Col: 1}, PlayerA)
	b.PlaceMark(Coordinate{Row: 1, Col: 0}, PlayerB)

	var buf bytes.Buffer
	require.NoError(t, b.Encode(&buf))

	require.Equal(t, "2\n0 1\n2 0\n", buf.String())
}
