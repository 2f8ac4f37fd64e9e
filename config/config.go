package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment key the game reads.
const EnvPrefix = "PANDAMONIUM_"

// Config is the front-end configuration. Defaults come from the environment,
// then from any .env files, and flags override both.
type Config struct {
	Level       string
	LevelsDir   string
	PrefabsDir  string
	Debug       bool
	Strict      bool
	Watch       bool
	Mute        bool
	BaseMonitor bool
}

func Default() Config {
	return Config{
		LevelsDir:  "levels",
		PrefabsDir: "prefabs",
		Watch:      true,
	}
}

// Load builds a Config from args (without the program name). When no env
// files are given ".env" is tried; missing files are skipped.
func Load(args []string, envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	fileEnv := map[string]string{}
	for _, name := range envFiles {
		vals, err := godotenv.Read(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", name, err)
		}
		for k, v := range vals {
			if _, ok := fileEnv[k]; !ok {
				fileEnv[k] = v
			}
		}
	}

	env := envSource{file: fileEnv}
	cfg := Default()
	cfg.Level = env.str("LEVEL", cfg.Level)
	cfg.LevelsDir = env.str("LEVELS_DIR", cfg.LevelsDir)
	cfg.PrefabsDir = env.str("PREFABS_DIR", cfg.PrefabsDir)

	var err error
	if cfg.Debug, err = env.bool("DEBUG", cfg.Debug); err != nil {
		return Config{}, err
	}
	if cfg.Strict, err = env.bool("STRICT", cfg.Strict); err != nil {
		return Config{}, err
	}
	if cfg.Watch, err = env.bool("WATCH", cfg.Watch); err != nil {
		return Config{}, err
	}
	if cfg.Mute, err = env.bool("MUTE", cfg.Mute); err != nil {
		return Config{}, err
	}

	fset := flag.NewFlagSet("pandamonium", flag.ContinueOnError)
	fset.SetOutput(os.Stderr)
	fset.StringVar(&cfg.Level, "level", cfg.Level, "level name in the levels dir (basename, .txt optional)")
	fset.StringVar(&cfg.LevelsDir, "levels", cfg.LevelsDir, "directory checked for level files before the embedded ones")
	fset.StringVar(&cfg.PrefabsDir, "prefabs", cfg.PrefabsDir, "directory checked for prefab yaml before the embedded ones")
	fset.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug mode")
	fset.BoolVar(&cfg.Strict, "strict", cfg.Strict, "reject unknown level characters")
	fset.BoolVar(&cfg.Watch, "watch", cfg.Watch, "reload prefabs and levels when they change on disk")
	fset.BoolVar(&cfg.Mute, "mute", cfg.Mute, "disable sound")
	fset.BoolVar(&cfg.BaseMonitor, "m", cfg.BaseMonitor, "use base monitor instead of primary (for multi-monitor setups)")
	if err := fset.Parse(args); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

type envSource struct {
	file map[string]string
}

func (e envSource) lookup(key string) (string, bool) {
	key = EnvPrefix + key
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	v, ok := e.file[key]
	return v, ok
}

func (e envSource) str(key, def string) string {
	if v, ok := e.lookup(key); ok && v != "" {
		return v
	}
	return def
}

func (e envSource) bool(key string, def bool) (bool, error) {
	v, ok := e.lookup(key)
	if !ok || v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config: %s%s=%q: %w", EnvPrefix, key, v, err)
	}
	return b, nil
}
