package engine

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
)

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно. От него зависят все уровни.
	// Level N Seed = MasterSeed + N
	Seed int64 `yaml:"seed"`

	RoundLength int `yaml:"round_length"`
	FrameRate   int `yaml:"frame_rate"` // тиков DoLogic в секунду
	FOVRadius   int `yaml:"fov_radius"`

	// StrictEventQueue - отклонять события, добавленные во время разбора очереди
	StrictEventQueue bool `yaml:"strict_event_queue"`

	// TurnTimeout - через сколько бездействия игрок автоматически ждёт. 0 - никогда.
	TurnTimeout time.Duration `yaml:"turn_timeout"`

	PlayerTemplate string `yaml:"player_template"`

	Spawner SpawnerConfig `yaml:"spawner"`
	Arena   ArenaConfig   `yaml:"arena"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`

	// Blueprints - путь к YAML каталогу. Пусто - встроенный каталог.
	Blueprints string `yaml:"blueprints"`
}

type SpawnerConfig struct {
	Chance    float64        `yaml:"chance"`
	Cap       int            `yaml:"cap"`
	MinRadius int            `yaml:"min_radius"`
	MaxRadius int            `yaml:"max_radius"`
	Attempts  int            `yaml:"attempts"`
	Table     map[string]int `yaml:"table"` // template -> вес
}

type ArenaConfig struct {
	Width    int            `yaml:"width"`
	Height   int            `yaml:"height"`
	MaxRooms int            `yaml:"max_rooms"`
	MinRoom  int            `yaml:"min_room"`
	MaxRoom  int            `yaml:"max_room"`
	Monsters map[string]int `yaml:"monsters"` // template -> количество на уровень
	Hazards  map[string]int `yaml:"hazards"`
}

type StorageConfig struct {
	ReplayDir string `yaml:"replay_dir"`
	IndexPath string `yaml:"index_path"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:           time.Now().UnixNano(),
		RoundLength:    domain.RoundLength,
		FrameRate:      30,
		FOVRadius:      domain.VisionRadius,
		TurnTimeout:    0,
		PlayerTemplate: "wizard",
		Spawner: SpawnerConfig{
			Chance:    0.1,
			Cap:       12,
			MinRadius: 6,
			MaxRadius: 10,
			Attempts:  8,
			Table:     map[string]int{"goblin": 3, "skeleton": 1},
		},
		Arena: ArenaConfig{
			Width:    48,
			Height:   32,
			MaxRooms: 9,
			MinRoom:  4,
			MaxRoom:  9,
			Monsters: map[string]int{"goblin": 4, "skeleton": 2},
			Hazards:  map[string]int{"lava_vent": 1},
		},
		Storage: StorageConfig{
			ReplayDir: "replays",
			IndexPath: "turns.db",
		},
		Server: ServerConfig{Port: 8080},
	}
}

// LoadConfig накладывает YAML файл поверх значений по умолчанию.
// Переменная окружения WD_PORT переопределяет порт.
func LoadConfig(path string) (Config, error) {
	cfg := NewConfig()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}
	if v := os.Getenv("WD_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("WD_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.RoundLength <= 0 {
		c.RoundLength = domain.RoundLength
	}
	if c.FrameRate <= 0 {
		c.FrameRate = 30
	}
	if c.FOVRadius <= 0 {
		c.FOVRadius = domain.VisionRadius
	}
}

// FrameDuration - период тика хоста.
func (c Config) FrameDuration() time.Duration {
	if c.FrameRate <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.FrameRate)
}

// LevelSeed - сид конкретной глубины.
func (c Config) LevelSeed(depth int) int64 {
	return c.Seed + int64(depth)
}
