package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. NUCLEOTIDE_BATTLE_SEED.
const EnvPrefix = "NUCLEOTIDE_"

// ErrInvalidConfig is returned when the loaded values cannot run a game.
var ErrInvalidConfig = errors.New("invalid config")

// Game holds all configuration for the headless runner.
type Game struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	Specs    SpecsConfig    `yaml:"specs" envPrefix:"SPECS_"`
	Player   PlayerConfig   `yaml:"player" envPrefix:"PLAYER_"`
	Battle   BattleConfig   `yaml:"battle" envPrefix:"BATTLE_"`
	Database DatabaseConfig `yaml:"database" envPrefix:"DB_"`

	// PersistRuns stores runs and battle results in PostgreSQL.
	PersistRuns bool `yaml:"persist_runs" env:"PERSIST_RUNS"`
}

// SpecsConfig points at the gene and enemy spec directories.
type SpecsConfig struct {
	GeneDir  string `yaml:"gene_dir" env:"GENE_DIR"`
	EnemyDir string `yaml:"enemy_dir" env:"ENEMY_DIR"`
}

// PlayerConfig is the player template every battle starts from.
type PlayerConfig struct {
	Name   string   `yaml:"name" env:"NAME"`
	Health uint8    `yaml:"health" env:"HEALTH"`
	Energy uint8    `yaml:"energy" env:"ENERGY"`
	Genome []string `yaml:"genome" env:"GENOME" envSeparator:","`
}

// BattleConfig controls the tick driver.
type BattleConfig struct {
	TickInterval time.Duration `yaml:"tick_interval" env:"TICK_INTERVAL"`
	AutoContinue bool          `yaml:"auto_continue" env:"AUTO_CONTINUE"`
	AutoReward   bool          `yaml:"auto_reward" env:"AUTO_REWARD"`
	RewardPolicy string        `yaml:"reward_policy" env:"REWARD_POLICY"` // first, last or skip
	RunAwayTurns uint8         `yaml:"run_away_turns" env:"RUN_AWAY_TURNS"`
	Seed         int64         `yaml:"seed" env:"SEED"` // 0 picks a random seed

	// Encounters lists the battles of a run in order, each one or more enemy
	// names. Empty means every known enemy once, shuffled by Seed.
	Encounters [][]string `yaml:"encounters"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname" env:"NAME"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultGame returns Game config with sensible defaults.
func DefaultGame() Game {
	return Game{
		LogLevel: "info",
		Specs: SpecsConfig{
			GeneDir:  "assets/specs/genes",
			EnemyDir: "assets/specs/enemies",
		},
		Player: PlayerConfig{
			Name:   "Player",
			Health: 100,
			Energy: 3,
			Genome: []string{"Repeat Codon", "Sting", "Block", "Reverse Codon", "Stomp"},
		},
		Battle: BattleConfig{
			TickInterval: 100 * time.Millisecond,
			AutoContinue: true,
			AutoReward:   true,
			RewardPolicy: "first",
			RunAwayTurns: 5,
		},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "nucleotide",
			Password: "nucleotide",
			DBName:   "nucleotide",
			SSLMode:  "disable",
		},
	}
}

// LoadGame loads config from a YAML file and applies NUCLEOTIDE_* environment
// overrides. If the file doesn't exist, defaults are used.
func LoadGame(path string) (Game, error) {
	cfg := DefaultGame()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the engine cannot start with.
func (g Game) Validate() error {
	switch {
	case g.Player.Health == 0:
		return fmt.Errorf("%w: player health must be positive", ErrInvalidConfig)
	case len(g.Player.Genome) == 0:
		return fmt.Errorf("%w: player genome is empty", ErrInvalidConfig)
	case g.Battle.TickInterval <= 0:
		return fmt.Errorf("%w: tick interval must be positive, got %s", ErrInvalidConfig, g.Battle.TickInterval)
	case g.Specs.GeneDir == "" || g.Specs.EnemyDir == "":
		return fmt.Errorf("%w: spec directories are required", ErrInvalidConfig)
	}
	switch g.Battle.RewardPolicy {
	case "first", "last", "skip":
	default:
		return fmt.Errorf("%w: reward policy %q, want first, last or skip", ErrInvalidConfig, g.Battle.RewardPolicy)
	}
	for i, enc := range g.Battle.Encounters {
		if len(enc) == 0 {
			return fmt.Errorf("%w: encounter %d has no enemies", ErrInvalidConfig, i+1)
		}
	}
	return nil
}
