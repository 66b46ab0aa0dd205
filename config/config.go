// Package config loads run settings from an optional YAML file and HEX_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"hex/experiments/metrics"
	"hex/player"
	"hex/record"
	"hex/searcher"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const EnvPrefix = "HEX"

var ErrInvalid = errors.New("invalid configuration")

type Record struct {
	Normalize       bool                 `mapstructure:"normalize" yaml:"normalize"`
	FirstPlayerOnly bool                 `mapstructure:"first_player_only" yaml:"first_player_only"`
	Random          bool                 `mapstructure:"random" yaml:"random"`
	RandomOptions   record.RandomOptions `mapstructure:"random_options" yaml:"random_options"`
}

type Config struct {
	Size      int                   `mapstructure:"size" yaml:"size"`
	Games     int                   `mapstructure:"games" yaml:"games"`
	Seed      uint64                `mapstructure:"seed" yaml:"seed"` // 0 draws a random seed
	LogLevel  string                `mapstructure:"log_level" yaml:"log_level"`
	ModelPath string                `mapstructure:"model_path" yaml:"model_path"`
	OutputDir string                `mapstructure:"output_dir" yaml:"output_dir"`
	BoardFile string                `mapstructure:"board_file" yaml:"board_file"`
	Agent     metrics.AgentConfig   `mapstructure:"agent" yaml:"agent"`
	Opponents []metrics.AgentConfig `mapstructure:"opponents" yaml:"opponents"`
	Record    Record                `mapstructure:"record" yaml:"record"`
}

func Default() Config {
	return Config{
		Size:      11,
		Games:     10,
		LogLevel:  "info",
		OutputDir: "results",
		Agent: metrics.AgentConfig{
			ID:          0,
			Repetitions: searcher.DefaultRepetitions,
			Mode:        player.ModeBest.String(),
		},
		Opponents: []metrics.AgentConfig{{
			ID:          1,
			Repetitions: searcher.DefaultRepetitions,
			Mode:        player.ModeBest.String(),
			Weight:      1,
		}},
		Record: Record{
			Normalize:     true,
			RandomOptions: record.DefaultRandomOptions(),
		},
	}
}

// Load layers path (skipped when empty) and the environment over Default.
// Nested keys use underscores in the environment, e.g. HEX_AGENT_WORKERS.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every scalar key so the environment can reach it.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("size", d.Size)
	v.SetDefault("games", d.Games)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("model_path", d.ModelPath)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("board_file", d.BoardFile)
	v.SetDefault("agent.id", d.Agent.ID)
	v.SetDefault("agent.workers", d.Agent.Workers)
	v.SetDefault("agent.repetitions", d.Agent.Repetitions)
	v.SetDefault("agent.mode", d.Agent.Mode)
	v.SetDefault("agent.weight", d.Agent.Weight)
	v.SetDefault("opponents", agentMaps(d.Opponents))
	v.SetDefault("record.normalize", d.Record.Normalize)
	v.SetDefault("record.first_player_only", d.Record.FirstPlayerOnly)
	v.SetDefault("record.random", d.Record.Random)
	v.SetDefault("record.random_options.repetitions", d.Record.RandomOptions.Repetitions)
	v.SetDefault("record.random_options.trials", d.Record.RandomOptions.Trials)
	v.SetDefault("record.random_options.from", d.Record.RandomOptions.From)
	v.SetDefault("record.random_options.to", d.Record.RandomOptions.To)
}

func agentMaps(agents []metrics.AgentConfig) []map[string]any {
	out := make([]map[string]any, len(agents))
	for i, a := range agents {
		out[i] = map[string]any{
			"id":          a.ID,
			"workers":     a.Workers,
			"repetitions": a.Repetitions,
			"mode":        a.Mode,
			"weight":      a.Weight,
		}
	}
	return out
}

func (c Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: board size %d", ErrInvalid, c.Size)
	}
	if c.Games < 0 {
		return fmt.Errorf("%w: games %d", ErrInvalid, c.Games)
	}
	if err := validateAgent("agent", c.Agent); err != nil {
		return err
	}
	weight := 0
	for i, o := range c.Opponents {
		if err := validateAgent(fmt.Sprintf("opponent %d", i), o); err != nil {
			return err
		}
		if o.ID == c.Agent.ID {
			return fmt.Errorf("%w: opponent %d shares the agent ID %d", ErrInvalid, i, o.ID)
		}
		if o.Weight < 0 {
			return fmt.Errorf("%w: opponent %d weight %d", ErrInvalid, i, o.Weight)
		}
		weight += o.Weight
	}
	if c.Games > 0 && weight == 0 {
		return fmt.Errorf("%w: no opponent with a positive weight", ErrInvalid)
	}
	if c.Record.Random {
		r := c.Record.RandomOptions
		if r.Repetitions <= 0 || r.Trials <= 0 {
			return fmt.Errorf("%w: random sampling needs positive repetitions and trials", ErrInvalid)
		}
		if r.From < 0 || r.To < r.From {
			return fmt.Errorf("%w: random moves from %d to %d", ErrInvalid, r.From, r.To)
		}
	}
	return nil
}

func validateAgent(name string, a metrics.AgentConfig) error {
	if a.Repetitions <= 0 {
		return fmt.Errorf("%w: %s repetitions %d", ErrInvalid, name, a.Repetitions)
	}
	if a.Workers < 0 {
		return fmt.Errorf("%w: %s workers %d", ErrInvalid, name, a.Workers)
	}
	if _, err := player.ParseMode(a.Mode); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalid, name, err)
	}
	return nil
}

// YAML renders the effective configuration.
func (c Config) YAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
