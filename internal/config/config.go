package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidScene is wrapped by every Scene validation error.
var ErrInvalidScene = errors.New("invalid scene config")

// DatabaseConfig holds PostgreSQL connection parameters of the journal store.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Scene holds everything needed to build and run one scene.
type Scene struct {
	LogLevel string        `yaml:"log_level"`
	Tick     time.Duration `yaml:"tick"`
	Duration time.Duration `yaml:"duration"`
	Realtime bool          `yaml:"realtime"` // pace ticks on the wall clock
	Seed     uint64        `yaml:"seed"`
	Locale   string        `yaml:"locale"`
	PlotDir  string        `yaml:"plot_dir"` // empty disables plots

	Database DatabaseConfig `yaml:"database"`

	Gates    []GateConfig     `yaml:"gates"`
	Triggers []TriggerConfig  `yaml:"triggers"`
	Walkers  []WalkerConfig   `yaml:"walkers"`
	Dialogue []DialogueConfig `yaml:"dialogue"`
	Player   PlayerConfig     `yaml:"player"`

	// PickupAt is scene time of the weapon pickup; zero means never.
	PickupAt time.Duration `yaml:"pickup_at"`
}

// DefaultScene returns the stock courtyard: one stutter gate behind a pass
// trigger, a patrolling guard and a drill sergeant.
func DefaultScene() Scene {
	return Scene{
		LogLevel: "info",
		Tick:     20 * time.Millisecond,
		Duration: 45 * time.Second,
		Seed:     1,
		Locale:   "en",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "gatekeep",
			Password: "gatekeep",
			DBName:   "gatekeep",
			SSLMode:  "disable",
		},
		Gates: []GateConfig{
			{Name: "courtyard", Kind: GateController},
		},
		Triggers: []TriggerConfig{
			{
				Name:  "courtyard-approach",
				Gate:  "courtyard",
				Mode:  "pass",
				Shape: "Cuboid",
				MinY:  -1,
				MaxY:  3,
				Nodes: [][2]float64{{-2, 2}, {2, 6}},
			},
		},
		Walkers: []WalkerConfig{
			{
				Name:             "guard",
				Waypoints:        [][3]float64{{-6, 0, 10}, {6, 0, 10}, {6, 0, 16}},
				Speed:            1.5,
				StoppingDistance: 0.1,
				TurnSpeed:        360,
				LoopPause:        5 * time.Second,
			},
		},
		Dialogue: []DialogueConfig{
			{Name: "sergeant", GreetingDelay: 3 * time.Second, ProdDelay: 30 * time.Second},
		},
		Player: PlayerConfig{
			Tag:   "Player",
			Speed: 1.2,
			Path:  [][3]float64{{0, 0, -4}, {0, 0, 4}, {0, 0, 14}},
		},
		PickupAt: 12 * time.Second,
	}
}

// LoadScene loads scene config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadScene(path string) (Scene, error) {
	cfg := DefaultScene()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate reports every problem found, each wrapping ErrInvalidScene.
func (s Scene) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidScene}, args...)...))
	}

	if s.Tick <= 0 {
		fail("tick must be positive, got %v", s.Tick)
	}
	if s.Duration <= 0 {
		fail("duration must be positive, got %v", s.Duration)
	}
	switch s.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		fail("unknown log_level %q", s.LogLevel)
	}

	gates := make(map[string]bool, len(s.Gates))
	for i, g := range s.Gates {
		if g.Name == "" {
			fail("gates[%d]: name is required", i)
			continue
		}
		if gates[g.Name] {
			fail("gates[%d]: duplicate name %q", i, g.Name)
		}
		gates[g.Name] = true
		if err := g.validate(); err != nil {
			fail("gate %q: %v", g.Name, err)
		}
	}

	for i, t := range s.Triggers {
		if t.Name == "" {
			fail("triggers[%d]: name is required", i)
		}
		if t.Gate != "" && !gates[t.Gate] {
			fail("trigger %q: unknown gate %q", t.Name, t.Gate)
		}
		if _, err := t.Def(); err != nil {
			fail("trigger %q: %v", t.Name, err)
		}
	}

	for i, w := range s.Walkers {
		if w.Name == "" {
			fail("walkers[%d]: name is required", i)
		}
		if w.Speed < 0 {
			fail("walker %q: speed must not be negative", w.Name)
		}
	}

	for i, d := range s.Dialogue {
		if d.Name == "" {
			fail("dialogue[%d]: name is required", i)
		}
	}

	if s.Player.Speed < 0 {
		fail("player speed must not be negative")
	}
	if s.Database.Enabled && s.Database.Host == "" {
		fail("database host is required when enabled")
	}

	return errors.Join(errs...)
}
