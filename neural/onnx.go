// Package neural scores Hex positions with an ONNX model.
package neural

import (
	"errors"
	"fmt"
	"sync"

	"hex/game"

	gonnx "github.com/advancedclimatesystems/gonnx"
	"gorgonia.org/tensor"
)

const (
	DefaultInput  = "board"
	DefaultOutput = "score"
	DefaultScale  = 10 // Magnitude of an occupied cell in the model input
)

var ErrNoOutput = errors.New("model produced no output")

// Scorer feeds the board, seen from the player who just moved, to a model
// taking a [1, size*size] float32 tensor and reads the first output value.
type Scorer struct {
	model  *gonnx.Model
	input  string
	output string
	scale  float32
	mu     sync.Mutex
}

type Option func(s *Scorer)

func WithInputName(name string) Option {
	return func(s *Scorer) {
		if name != "" {
			s.input = name
		}
	}
}

func WithOutputName(name string) Option {
	return func(s *Scorer) {
		if name != "" {
			s.output = name
		}
	}
}

func WithScale(scale float32) Option {
	return func(s *Scorer) {
		if scale > 0 {
			s.scale = scale
		}
	}
}

func Load(path string, options ...Option) (*Scorer, error) {
	model, err := gonnx.NewModelFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	s := &Scorer{
		model:  model,
		input:  DefaultInput,
		output: DefaultOutput,
		scale:  DefaultScale,
	}
	for _, option := range options {
		option(s)
	}
	return s, nil
}

// Encode returns the model input for b from player's point of view: own
// cells are +scale, opponent cells -scale, empty cells 0.
func Encode(b *game.Board, player game.Mark, scale float32) []float32 {
	features := game.Perspective(b, player)
	data := make([]float32, len(features))
	for i, f := range features {
		data[i] = float32(f) * scale
	}
	return data
}

func (s *Scorer) Score(b *game.Board, player game.Mark) (float64, error) {
	n := b.Size() * b.Size()
	input := tensor.New(
		tensor.WithShape(1, n),
		tensor.Of(tensor.Float32),
		tensor.WithBacking(Encode(b, player, s.scale)),
	)

	s.mu.Lock()
	outputs, err := s.model.Run(gonnx.Tensors{s.input: input})
	s.mu.Unlock()
	if err != nil {
		return 0, fmt.Errorf("run model: %w", err)
	}

	out, ok := outputs[s.output]
	if !ok {
		// Fall back to whatever the model calls its output
		for _, v := range outputs {
			out = v
			break
		}
	}
	if out == nil {
		return 0, ErrNoOutput
	}

	switch d := out.Data().(type) {
	case []float32:
		if len(d) > 0 {
			return float64(d[0]), nil
		}
	case []float64:
		if len(d) > 0 {
			return d[0], nil
		}
	case float32:
		return float64(d), nil
	case float64:
		return d, nil
	default:
		return 0, fmt.Errorf("unexpected output type %T", d)
	}
	return 0, ErrNoOutput
}
