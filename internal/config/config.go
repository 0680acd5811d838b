package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

var (
	cfgFile = "checkers/config.json"
)

// Environment variables that override the config file.
const (
	EnvAddr      = "CHECKERS_ADDR"
	EnvWebDir    = "CHECKERS_WEB_DIR"
	EnvLogLevel  = "CHECKERS_LOG_LEVEL"
	EnvLogPretty = "CHECKERS_LOG_PRETTY"
	EnvServerURL = "CHECKERS_SERVER_URL"
	EnvGameTTL   = "CHECKERS_GAME_TTL"
)

var envKeys = []string{EnvAddr, EnvWebDir, EnvLogLevel, EnvLogPretty, EnvServerURL, EnvGameTTL}

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ServerConfig struct {
	Addr        string `json:"addr"`
	WebDir      string `json:"web_dir"`
	OpenBrowser bool   `json:"open_browser"`
	// Idle games older than GameTTL are dropped by the janitor every SweepEvery.
	GameTTL    string `json:"game_ttl"`
	SweepEvery string `json:"sweep_every"`
}

type LogConfig struct {
	Level  string `json:"level"`
	Pretty bool   `json:"pretty"`
}

type ClientConfig struct {
	BaseURL string `json:"base_url"`
	Timeout string `json:"timeout"`
}

type ConfigColors struct {
	DarkSquare   int `json:"dark_square"`
	LightSquare  int `json:"light_square"`
	Red          int `json:"red"`
	Black        int `json:"black"`
	CursorBG     int `json:"cursor_bg"`
	SelectedBG   int `json:"selected_bg"`
	LandingBG    int `json:"landing_bg"`
	LastMoveBG   int `json:"last_move_bg"`
	CoordinateFG int `json:"coordinate_fg"`
}

type ConfigSymbols struct {
	Man        rune `json:"man"`
	King       rune `json:"king"`
	DarkSquare rune `json:"dark_square"`
}

type Theme struct {
	DrawCursorBackground   bool          `json:"draw_cursor_bg"`
	DrawLastMoveBackground bool          `json:"draw_last_move_bg"`
	ShowSquareNumbers      bool          `json:"show_square_numbers"`
	Colors                 ConfigColors  `json:"colors"`
	Symbols                ConfigSymbols `json:"symbols"`
}

type Config struct {
	Server ServerConfig `json:"server"`
	Log    LogConfig    `json:"log"`
	Client ClientConfig `json:"client"`
	Theme  Theme        `json:"theme"`
}

// InitConfig starts from DefaultConfig, merges the XDG config file if there is one and then
// the environment: envFiles (".env" when none are given) first, the process environment last.
func InitConfig(envFiles ...string) (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	env, err := ReadEnv(envFiles...)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(env); err != nil {
		return nil, err
	}
	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// ReadFile loads a config file on top of the defaults.
func ReadFile(path string) (*Config, error) {
	config := DefaultConfig
	if err := readCfgFile(path, &config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// ReadEnv collects the CHECKERS_* variables. A missing env file is not an error.
func ReadEnv(envFiles ...string) (map[string]string, error) {
	vals, err := godotenv.Read(envFiles...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read env file: %w", err)
	}
	env := make(map[string]string, len(envKeys))
	for _, k := range envKeys {
		if v, ok := vals[k]; ok {
			env[k] = v
		}
		if v, ok := os.LookupEnv(k); ok {
			env[k] = v
		}
	}
	return env, nil
}

func (c *Config) ApplyEnv(env map[string]string) error {
	if v, ok := env[EnvAddr]; ok {
		c.Server.Addr = v
	}
	if v, ok := env[EnvWebDir]; ok {
		c.Server.WebDir = v
	}
	if v, ok := env[EnvGameTTL]; ok {
		c.Server.GameTTL = v
	}
	if v, ok := env[EnvLogLevel]; ok {
		c.Log.Level = v
	}
	if v, ok := env[EnvLogPretty]; ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return &InvalidConfig{fmt.Sprintf("%s: %v", EnvLogPretty, err)}
		}
		c.Log.Pretty = b
	}
	if v, ok := env[EnvServerURL]; ok {
		c.Client.BaseURL = v
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return &InvalidConfig{"server address must not be empty"}
	}
	for name, d := range map[string]string{
		"server.game_ttl":    c.Server.GameTTL,
		"server.sweep_every": c.Server.SweepEvery,
		"client.timeout":     c.Client.Timeout,
	} {
		v, err := time.ParseDuration(d)
		if err != nil {
			return &InvalidConfig{fmt.Sprintf("%s: %v", name, err)}
		}
		if v <= 0 {
			return &InvalidConfig{fmt.Sprintf("%s must be positive", name)}
		}
	}
	for _, r := range []rune{c.Theme.Symbols.Man, c.Theme.Symbols.King, c.Theme.Symbols.DarkSquare} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	return nil
}

// Duration accessors assume Validate has passed.

func (c *Config) GameTTL() time.Duration {
	d, _ := time.ParseDuration(c.Server.GameTTL)
	return d
}

func (c *Config) SweepEvery() time.Duration {
	d, _ := time.ParseDuration(c.Server.SweepEvery)
	return d
}

func (c *Config) ClientTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Client.Timeout)
	return d
}

// Save writes c to the XDG config location, creating the directory if needed.
func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return c.SaveTo(absPath)
}

func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return saveCfgFile(path, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, a); err != nil {
		return fmt.Errorf("parse %s: %w", filePath, err)
	}
	return nil
}
