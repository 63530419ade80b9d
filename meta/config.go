package meta

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type AgentConfig struct {
	Alpha        float64 `yaml:"alpha"`
	Gamma        float64 `yaml:"gamma"`
	Epsilon      float64 `yaml:"epsilon"`
	EpsilonDecay float64 `yaml:"epsilon_decay"`
	MinEpsilon   float64 `yaml:"min_epsilon"`
}

type TrainingConfig struct {
	Episodes int    `yaml:"episodes"`
	MaxTurns int    `yaml:"max_turns"`
	Seed     uint64 `yaml:"seed"` // 0 seeds from the clock
}

type StorageConfig struct {
	QTable  string `yaml:"qtable"`
	DataDir string `yaml:"data_dir"` // empty disables the analysis log
	DB      string `yaml:"db"`       // empty disables the episode store
}

type ServerConfig struct {
	Addr       string `yaml:"addr"`
	HumanColor string `yaml:"human_color"`
}

// Config is the full runtime configuration of the trainer, the match runner
// and the interactive server.
type Config struct {
	Agent    AgentConfig    `yaml:"agent"`
	Training TrainingConfig `yaml:"training"`
	Storage  StorageConfig  `yaml:"storage"`
	Server   ServerConfig   `yaml:"server"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Agent: AgentConfig{
			Alpha:        ALPHA,
			Gamma:        GAMMA,
			Epsilon:      EPSILON,
			EpsilonDecay: EPSILON_DECAY,
			MinEpsilon:   MIN_EPSILON,
		},
		Training: TrainingConfig{
			Episodes: EPISODES,
			MaxTurns: MAX_TURNS,
		},
		Storage: StorageConfig{
			QTable:  QTABLE_PATH,
			DataDir: DATA_DIR,
			DB:      DB_PATH,
		},
		Server: ServerConfig{
			Addr:       ADDR,
			HumanColor: "white",
		},
	}
}

// Load reads a YAML config over the defaults, then applies environment
// overrides. An empty path or a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			log.Warn().Str("path", path).Msg("config file not found, using defaults")
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	c.Agent.Alpha = getenvFloat("TERRITORY_ALPHA", c.Agent.Alpha)
	c.Agent.Gamma = getenvFloat("TERRITORY_GAMMA", c.Agent.Gamma)
	c.Agent.Epsilon = getenvFloat("TERRITORY_EPSILON", c.Agent.Epsilon)
	c.Training.Episodes = getenvInt("TERRITORY_EPISODES", c.Training.Episodes)
	c.Training.MaxTurns = getenvInt("TERRITORY_MAX_TURNS", c.Training.MaxTurns)
	c.Storage.QTable = getenv("TERRITORY_QTABLE", c.Storage.QTable)
	c.Server.Addr = getenv("TERRITORY_ADDR", c.Server.Addr)
}

// Validate rejects hyperparameters outside their meaningful range.
func (c Config) Validate() error {
	a := c.Agent
	switch {
	case a.Alpha <= 0 || a.Alpha > 1:
		return fmt.Errorf("%w: alpha %v not in (0, 1]", ErrInvalidConfig, a.Alpha)
	case a.Gamma < 0 || a.Gamma > 1:
		return fmt.Errorf("%w: gamma %v not in [0, 1]", ErrInvalidConfig, a.Gamma)
	case a.Epsilon < 0 || a.Epsilon > 1:
		return fmt.Errorf("%w: epsilon %v not in [0, 1]", ErrInvalidConfig, a.Epsilon)
	case a.EpsilonDecay <= 0 || a.EpsilonDecay > 1:
		return fmt.Errorf("%w: epsilon decay %v not in (0, 1]", ErrInvalidConfig, a.EpsilonDecay)
	case a.MinEpsilon < 0 || a.MinEpsilon > 1:
		return fmt.Errorf("%w: min epsilon %v not in [0, 1]", ErrInvalidConfig, a.MinEpsilon)
	case c.Training.Episodes < 0:
		return fmt.Errorf("%w: negative episode count", ErrInvalidConfig)
	case c.Training.MaxTurns <= 0:
		return fmt.Errorf("%w: max turns must be positive", ErrInvalidConfig)
	case c.Storage.QTable == "":
		return fmt.Errorf("%w: no q-table path", ErrInvalidConfig)
	case c.Server.HumanColor != "white" && c.Server.HumanColor != "black":
		return fmt.Errorf("%w: human color %q", ErrInvalidConfig, c.Server.HumanColor)
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Warn().Str("key", key).Str("value", v).Msg("ignoring non-integer environment override")
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Warn().Str("key", key).Str("value", v).Msg("ignoring non-numeric environment override")
	}
	return def
}
