package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"

	schedule "github.com/Mythcell/ab-schedule"
)

// Config holds all configuration options.
type Config struct {
	AuthorFile string `json:"author_file"`
	NumWrites  int    `json:"num_writes"`
	NumRegular int    `json:"num_regular"`
	NumQueue   int    `json:"num_queue"`
	NumBeyond  int    `json:"num_beyond"`
	MaxTrials  int    `json:"max_trials"`
	MaxIter    int    `json:"max_iter"`
	FirstDay   string `json:"first_day"`
	BeyondDay  string `json:"beyond_day"`
	OutputFile string `json:"output_file"`
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// ConfigFileName is the default project config file name.
const ConfigFileName = ".abschedule.json"

// DefaultConfig returns the defaults: the stock engine parameters, a
// Sunday week with beyond posts on Friday, and the conventional file
// names.
func DefaultConfig() Config {
	p := schedule.DefaultParams()

	return Config{
		AuthorFile: "authors.txt",
		NumWrites:  p.NumWrites,
		NumRegular: p.NumRegular,
		NumQueue:   p.NumQueue,
		NumBeyond:  p.NumBeyond,
		MaxTrials:  p.MaxTrials,
		MaxIter:    p.MaxIter,
		FirstDay:   "Sunday",
		BeyondDay:  "Friday",
		OutputFile: "schedule.csv",
	}
}

// Params extracts the engine parameters from the config.
func (c Config) Params() schedule.Params {
	return schedule.Params{
		NumWrites:  c.NumWrites,
		NumRegular: c.NumRegular,
		NumQueue:   c.NumQueue,
		NumBeyond:  c.NumBeyond,
		MaxTrials:  c.MaxTrials,
		MaxIter:    c.MaxIter,
	}
}

// fileConfig mirrors Config with pointer fields so a file can set any
// subset, including explicit zeros (num_queue: 0 is meaningful).
type fileConfig struct {
	AuthorFile *string `json:"author_file"`
	NumWrites  *int    `json:"num_writes"`
	NumRegular *int    `json:"num_regular"`
	NumQueue   *int    `json:"num_queue"`
	NumBeyond  *int    `json:"num_beyond"`
	MaxTrials  *int    `json:"max_trials"`
	MaxIter    *int    `json:"max_iter"`
	FirstDay   *string `json:"first_day"`
	BeyondDay  *string `json:"beyond_day"`
	OutputFile *string `json:"output_file"`
}

// getGlobalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/abs/config.json if set, otherwise
// ~/.config/abs/config.json. Returns empty string if the home directory
// cannot be determined.
func getGlobalConfigPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "abs", "config.json")
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "abs", "config.json")
	}

	home, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(home, ".config", "abs", "config.json")
	}

	return ""
}

// LoadConfig loads configuration with the following precedence (highest
// wins):
// 1. Defaults
// 2. Global user config (~/.config/abs/config.json or $XDG_CONFIG_HOME/abs/config.json)
// 3. Project config file in workDir (.abschedule.json, if it exists)
// 4. Explicit config file via configPath (if non-empty)
//
// Command flags override on top of the result, per command.
func LoadConfig(workDir, configPath string, env map[string]string) (Config, ConfigSources, error) {
	cfg := DefaultConfig()

	var sources ConfigSources

	if globalPath := getGlobalConfigPath(env); globalPath != "" {
		fc, loaded, err := loadConfigFile(globalPath, false)
		if err != nil {
			return Config{}, ConfigSources{}, err
		}

		if loaded {
			sources.Global = globalPath
			cfg = mergeConfig(cfg, fc)
		}
	}

	projectPath := filepath.Join(workDir, ConfigFileName)
	mustExist := false

	if configPath != "" {
		projectPath = configPath
		if !filepath.IsAbs(projectPath) {
			projectPath = filepath.Join(workDir, projectPath)
		}

		mustExist = true
	}

	fc, loaded, err := loadConfigFile(projectPath, mustExist)
	if err != nil {
		return Config{}, ConfigSources{}, err
	}

	if loaded {
		sources.Project = projectPath
		cfg = mergeConfig(cfg, fc)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, ConfigSources{}, err
	}

	return cfg, sources, nil
}

// loadConfigFile reads and parses one HuJSON config file. Returns whether
// the file was actually loaded.
func loadConfigFile(path string, mustExist bool) (fileConfig, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return fileConfig{}, false, nil
		}

		if os.IsNotExist(err) {
			return fileConfig{}, false, fmt.Errorf("%w: %s", errConfigFileNotFound, path)
		}

		return fileConfig{}, false, fmt.Errorf("%w %s: %w", errConfigFileRead, path, err)
	}

	// HuJSON allows comments and trailing commas in config files.
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", errConfigInvalid, path, err)
	}

	var fc fileConfig
	if err := json.Unmarshal(standardized, &fc); err != nil {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", errConfigInvalid, path, err)
	}

	if fc.AuthorFile != nil && strings.TrimSpace(*fc.AuthorFile) == "" {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", errConfigInvalid, path, errAuthorFileEmpty)
	}

	return fc, true, nil
}

func mergeConfig(cfg Config, fc fileConfig) Config {
	if fc.AuthorFile != nil {
		cfg.AuthorFile = *fc.AuthorFile
	}

	if fc.NumWrites != nil {
		cfg.NumWrites = *fc.NumWrites
	}

	if fc.NumRegular != nil {
		cfg.NumRegular = *fc.NumRegular
	}

	if fc.NumQueue != nil {
		cfg.NumQueue = *fc.NumQueue
	}

	if fc.NumBeyond != nil {
		cfg.NumBeyond = *fc.NumBeyond
	}

	if fc.MaxTrials != nil {
		cfg.MaxTrials = *fc.MaxTrials
	}

	if fc.MaxIter != nil {
		cfg.MaxIter = *fc.MaxIter
	}

	if fc.FirstDay != nil {
		cfg.FirstDay = *fc.FirstDay
	}

	if fc.BeyondDay != nil {
		cfg.BeyondDay = *fc.BeyondDay
	}

	if fc.OutputFile != nil {
		cfg.OutputFile = *fc.OutputFile
	}

	return cfg
}

func validateConfig(cfg Config) error {
	if strings.TrimSpace(cfg.AuthorFile) == "" {
		return errAuthorFileEmpty
	}

	if strings.TrimSpace(cfg.OutputFile) == "" {
		return errOutputFileEmpty
	}

	return nil
}
