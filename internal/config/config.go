// Package config locates, loads and writes the path config: a one-section
// INI file recording where the entries and flags documents live.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
	"gopkg.in/ini.v1"

	"pigeonhole/internal/model"
)

const (
	// EnvDir overrides the config directory.
	EnvDir   = "PIGEONHOLE_CONFIG_DIR"
	FileName = "config.ini"
	section  = "General"

	keyDirectory = "directory"
	keyDatabase  = "database"
	keyFlags     = "flags"
	keyFields    = "fields"
	keyLogLevel  = "log_level"
)

// ErrNotFound is the cause when no config file exists yet.
var ErrNotFound = errors.New("config file not found")

// Config is the content of the path config.
type Config struct {
	Path      string   // the config file itself
	Directory string   // working directory init ran in
	Database  string   // entries document
	Flags     string   // flags document
	Fields    []string // schema for the first synchronization
	LogLevel  string
}

// Dir returns the application config directory.
func Dir() (string, error) {
	if dir := os.Getenv(EnvDir); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", model.NewError(model.DirError, "config", errors.Wrap(err, "user config dir"))
	}
	return filepath.Join(base, model.AppName), nil
}

// FilePath returns where the config file lives, whether or not it exists.
func FilePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Locate returns the path of an existing config file.
func Locate() (string, error) {
	path, err := FilePath()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", model.NewError(model.FileError, "config", errors.Wrap(ErrNotFound, path))
		}
		return "", model.NewError(model.FileError, "config", errors.Wrapf(err, "stat %s", path))
	}
	return path, nil
}

// Load parses the config file at path.
func Load(path string) (Config, error) {
	f, err := ini.Load(path)
	if err != nil {
		return Config{}, model.NewError(model.FileError, "config", errors.Wrapf(err, "load %s", path))
	}
	sec := f.Section(section)

	cfg := Config{
		Path:      path,
		Directory: sec.Key(keyDirectory).String(),
		Database:  sec.Key(keyDatabase).String(),
		Flags:     sec.Key(keyFlags).String(),
		LogLevel:  sec.Key(keyLogLevel).String(),
	}
	if sec.HasKey(keyFields) {
		cfg.Fields = ParseFields(sec.Key(keyFields).String())
	}

	if cfg.Database == "" || cfg.Flags == "" {
		return Config{}, model.NewError(model.FileError, "config",
			errors.Errorf("%s: [%s] needs %q and %q", path, section, keyDatabase, keyFlags))
	}
	return cfg, nil
}

// Save writes cfg to cfg.Path, creating its directory.
func Save(cfg Config) error {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return model.NewError(model.DirError, "config", errors.Wrapf(err, "create %s", dir))
	}

	f := ini.Empty()
	sec, err := f.NewSection(section)
	if err != nil {
		return model.NewError(model.FileError, "config", err)
	}
	if cfg.Directory != "" {
		sec.Key(keyDirectory).SetValue(cfg.Directory)
	}
	sec.Key(keyDatabase).SetValue(cfg.Database)
	sec.Key(keyFlags).SetValue(cfg.Flags)
	if len(cfg.Fields) > 0 {
		sec.Key(keyFields).SetValue(strings.Join(cfg.Fields, ", "))
	}
	if cfg.LogLevel != "" {
		sec.Key(keyLogLevel).SetValue(cfg.LogLevel)
	}

	if err := f.SaveTo(cfg.Path); err != nil {
		return model.NewError(model.FileError, "config", errors.Wrapf(err, "write %s", cfg.Path))
	}
	return nil
}

// Documents returns the entries and flags documents for cwd. The paths
// recorded in the config belong to the directory init ran in; every other
// directory gets its own default names next to the config file, which
// exist only once init has run there.
func (c Config) Documents(cwd string) (entries, flags string) {
	if c.Directory != "" && filepath.Clean(c.Directory) == filepath.Clean(cwd) {
		return c.Database, c.Flags
	}
	return DefaultPaths(filepath.Dir(c.Path), cwd)
}

// DefaultPaths names the documents for working directory cwd inside dir.
// The hash keeps directories with the same base name apart.
func DefaultPaths(dir, cwd string) (entries, flags string) {
	prefix := fmt.Sprintf("%016x_%s", xxhash.Sum64String(cwd), filepath.Base(cwd))
	return filepath.Join(dir, prefix+"_entries.json"), filepath.Join(dir, prefix+"_flags.json")
}

// ParseFields splits a comma separated field list.
func ParseFields(s string) []string {
	var fields []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
