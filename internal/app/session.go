// Package app holds the session every command runs in: the located config
// and the stores, scanner, formatter and synchronizer built from it.
package app

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"pigeonhole/internal/config"
	"pigeonhole/internal/format"
	"pigeonhole/internal/logging"
	"pigeonhole/internal/model"
	"pigeonhole/internal/scan"
	"pigeonhole/internal/store"
	"pigeonhole/internal/syncer"
)

// ErrUnknownKey is returned by Sort for a key that is not a column.
var ErrUnknownKey = errors.New("unknown sort key")

// Session is created once per process and passed to every operation.
type Session struct {
	Config  config.Config
	Dir     string
	Entries *store.EntryStore
	Flags   *store.FlagStore
	Sync    *syncer.Synchronizer
	log     *zap.Logger
}

// Open builds a session for the working directory dir. The documents are
// resolved for dir, so a directory never reads another directory's store.
func Open(cfg config.Config, dir string) *Session {
	cfg.Database, cfg.Flags = cfg.Documents(dir)
	entries := store.NewEntryStore(cfg.Database)
	return &Session{
		Config:  cfg,
		Dir:     dir,
		Entries: entries,
		Flags:   store.NewFlagStore(cfg.Flags),
		Sync:    syncer.New(entries, scan.New(dir), format.New(dir), cfg.Fields),
		log:     logging.Named("app"),
	}
}

// Initialize writes the path config, an empty entries document and
// default flags. Existing documents are reset.
func Initialize(cfg config.Config) error {
	for _, doc := range []string{cfg.Database, cfg.Flags} {
		dir := filepath.Dir(doc)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return model.NewError(model.DirError, "", errors.Wrapf(err, "create %s", dir))
		}
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	if _, err := store.NewEntryStore(cfg.Database).Write(model.Records{}); err != nil {
		return err
	}
	if _, err := store.NewFlagStore(cfg.Flags).Write(model.DisplayFlags{}); err != nil {
		return err
	}
	logging.Info("initialized",
		logging.String("config", cfg.Path),
		logging.String("database", cfg.Database),
		logging.String("flags", cfg.Flags))
	return nil
}

// Show applies the flag switches, persists the flags when any switch was
// given, then synchronizes. Toggling never triggers a resync by itself;
// the count check in Sync decides.
func (s *Session) Show(t model.Toggles) (model.DisplayFlags, syncer.Result, error) {
	flags, err := s.Flags.Read()
	if err != nil {
		return flags, syncer.Result{}, err
	}

	if t.Any() {
		flags = flags.Toggle(t)
		if _, err := s.Flags.Write(flags); err != nil {
			return flags, syncer.Result{}, err
		}
		s.log.Debug("flags toggled",
			logging.Bool("show_hidden", flags.ShowHidden),
			logging.Bool("show_dirs", flags.ShowDirs),
			logging.Bool("repeat_show", flags.RepeatShow))
	}

	res, err := s.Sync.Sync(flags)
	return flags, res, err
}

// Format recomputes every record and replaces the store.
func (s *Session) Format() (model.DisplayFlags, syncer.Result, error) {
	flags, err := s.Flags.Read()
	if err != nil {
		return flags, syncer.Result{}, err
	}
	res, err := s.Sync.Rebuild(flags)
	return flags, res, err
}

// Sort checks that key names a column and returns the stored records in
// their current order. No ordering is applied.
func (s *Session) Sort(key string, reverse bool) (model.DisplayFlags, model.Records, error) {
	flags, err := s.Flags.Read()
	if err != nil {
		return flags, nil, err
	}
	records, err := s.Entries.Read()
	if err != nil {
		return flags, records, err
	}

	schema := records.Schema()
	if schema == nil {
		schema = s.defaultSchema()
	}
	if !slices.Contains(schema, key) {
		return flags, records, errors.Wrapf(ErrUnknownKey, "%q (columns: %v)", key, schema)
	}

	s.log.Debug("sort requested", zap.String("key", key), zap.Bool("reverse", reverse))
	return flags, records, nil
}

// Info returns the stored record with the 1-based id.
func (s *Session) Info(id int) (model.EntryRecord, error) {
	records, err := s.Entries.Read()
	if err != nil {
		return nil, err
	}
	return records.At(id)
}

// ReadFlags returns the persisted display flags.
func (s *Session) ReadFlags() (model.DisplayFlags, error) {
	return s.Flags.Read()
}

func (s *Session) defaultSchema() []string {
	if len(s.Config.Fields) > 0 {
		return s.Config.Fields
	}
	return model.DefaultSchema
}
