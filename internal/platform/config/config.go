package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"

	// DataDirEnv overrides the default data directory.
	DataDirEnv = "STUDYPRO_DATA_DIR"

	DefaultRecentLimit = 5
)

var DefaultSubjects = []string{"Physics", "Chemistry", "Biology", "Mathematics"}

type Config struct {
	DataDir         string
	DBPath          string
	RecordsDir      string
	ActiveTimerPath string
	LogPath         string
	ConfigPath      string

	Backend     string
	Subjects    []string
	RecentLimit int
}

// fileConfig mirrors config.yaml; zero values fall back to defaults.
type fileConfig struct {
	Backend     string   `yaml:"backend"`
	Subjects    []string `yaml:"subjects"`
	RecentLimit int      `yaml:"recent_limit"`
}

// DefaultDataDir returns $STUDYPRO_DATA_DIR when set, otherwise $XDG_DATA_HOME/studypro.
func DefaultDataDir() string {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return dir
	}
	return filepath.Join(xdg.DataHome, "studypro")
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{
		DataDir:         dataDir,
		DBPath:          filepath.Join(dataDir, "studypro.db"),
		RecordsDir:      filepath.Join(dataDir, "records"),
		ActiveTimerPath: filepath.Join(dataDir, "active-timer.json"),
		LogPath:         filepath.Join(dataDir, "studypro.log"),
		ConfigPath:      filepath.Join(dataDir, "config.yaml"),
		Backend:         BackendSQLite,
		Subjects:        append([]string(nil), DefaultSubjects...),
		RecentLimit:     DefaultRecentLimit,
	}
	if err := cfg.loadFile(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile() error {
	payload, err := os.ReadFile(c.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	fc := fileConfig{}
	if err := yaml.Unmarshal(payload, &fc); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if backend := strings.TrimSpace(fc.Backend); backend != "" {
		switch backend {
		case BackendSQLite, BackendFile:
			c.Backend = backend
		default:
			return fmt.Errorf("unsupported backend %q", backend)
		}
	}
	subjects := make([]string, 0, len(fc.Subjects))
	for _, s := range fc.Subjects {
		if s = strings.TrimSpace(s); s != "" {
			subjects = append(subjects, s)
		}
	}
	if len(subjects) > 0 {
		c.Subjects = subjects
	}
	if fc.RecentLimit > 0 {
		c.RecentLimit = fc.RecentLimit
	}
	return nil
}

// DefaultSubject is the subject used when the caller did not pick one.
func (c Config) DefaultSubject() string {
	if len(c.Subjects) == 0 {
		return DefaultSubjects[0]
	}
	return c.Subjects[0]
}
