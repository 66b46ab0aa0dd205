package neural

import (
	"path/filepath"
	"testing"

	"hex/game"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingModel(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.onnx"))

	require.Error(t, err)
}

func TestEncode(t *testing.T) {
	b := game.NewBoard(2)
	b.PlaceMark(game.Coordinate{Row: 0, Col: 0}, game.PlayerA)
	b.PlaceMark(game.Coordinate{Row: 0, Col: 1}, game.PlayerB)

	t.Run("first player", func(t *testing.T) {
		require.Equal(t, []float32{10, -10, 0, 0}, Encode(b, game.PlayerA, DefaultScale))
	})

	t.Run("second player sees own cells as positive", func(t *testing.T) {
		require.Equal(t, []float32{-10, 10, 0, 0}, Encode(b, game.PlayerB, DefaultScale))
	})

	t.Run("scale", func(t *testing.T) {
		require.Equal(t, []float32{1, -1, 0, 0}, Encode(b, game.PlayerA, 1))
	})
}
