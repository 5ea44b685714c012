// Package syncer reconciles the entries document with the live directory.
package syncer

import (
	"go.uber.org/zap"

	"pigeonhole/internal/logging"
	"pigeonhole/internal/model"
	"pigeonhole/internal/scan"
)

// State is the outcome of a staleness check.
type State int

const (
	InSync State = iota
	Stale
)

func (s State) String() string {
	if s == Stale {
		return "STALE"
	}
	return "IN_SYNC"
}

// EntryStore is the persisted snapshot the Synchronizer owns.
type EntryStore interface {
	Read() (model.Records, error)
	Write(records model.Records) (model.Records, error)
}

// Scanner lists the directory.
type Scanner interface {
	Scan(showDirs bool) ([]string, error)
}

// Formatter builds one record per name.
type Formatter interface {
	Format(name string, schema []string) (model.EntryRecord, error)
}

// Result is what one synchronization saw and left behind.
type Result struct {
	State   State
	Records model.Records // content of the store after the call
	Live    int           // visible entries in the directory
}

// Synchronizer is the only writer of the entries document.
type Synchronizer struct {
	store     EntryStore
	scanner   Scanner
	formatter Formatter
	schema    []string // used when the store holds no record to copy from
	log       *zap.Logger
}

// New wires a Synchronizer. defaultSchema may be nil for model.DefaultSchema.
func New(store EntryStore, scanner Scanner, formatter Formatter, defaultSchema []string) *Synchronizer {
	if len(defaultSchema) == 0 {
		defaultSchema = model.DefaultSchema
	}
	return &Synchronizer{
		store:     store,
		scanner:   scanner,
		formatter: formatter,
		schema:    defaultSchema,
		log:       logging.Named("sync"),
	}
}

// Sync compares the stored record count with the number of visible entries.
// When they differ every entry is formatted again and the store is replaced.
// Renames or content changes that keep the count are not detected.
func (s *Synchronizer) Sync(flags model.DisplayFlags) (Result, error) {
	stored, err := s.store.Read()
	if err != nil {
		return Result{Records: model.Records{}}, err
	}

	names, err := s.visible(flags)
	if err != nil {
		return Result{Records: stored}, err
	}

	if len(stored) == len(names) {
		s.log.Debug("store in sync", zap.Int("count", len(stored)))
		return Result{State: InSync, Records: stored, Live: len(names)}, nil
	}

	s.log.Debug("store stale",
		zap.Int("stored", len(stored)),
		zap.Int("live", len(names)),
		zap.Bool("show_hidden", flags.ShowHidden),
		zap.Bool("show_dirs", flags.ShowDirs))

	records, err := s.rebuild(names, s.schemaFor(stored))
	if err != nil {
		return Result{State: Stale, Records: stored, Live: len(names)}, err
	}
	return Result{State: Stale, Records: records, Live: len(names)}, nil
}

// Rebuild formats every visible entry and replaces the store regardless of
// the stored count.
func (s *Synchronizer) Rebuild(flags model.DisplayFlags) (Result, error) {
	stored, err := s.store.Read()
	if err != nil {
		return Result{Records: model.Records{}}, err
	}
	names, err := s.visible(flags)
	if err != nil {
		return Result{Records: stored}, err
	}
	records, err := s.rebuild(names, s.schemaFor(stored))
	if err != nil {
		return Result{State: Stale, Records: stored, Live: len(names)}, err
	}
	return Result{State: Stale, Records: records, Live: len(names)}, nil
}

func (s *Synchronizer) visible(flags model.DisplayFlags) ([]string, error) {
	names, err := s.scanner.Scan(flags.ShowDirs)
	if err != nil {
		return nil, err
	}
	return scan.FilterHidden(names, flags.ShowHidden), nil
}

// schemaFor keeps the key set of the stored records so every record in the
// store shares it across cycles.
func (s *Synchronizer) schemaFor(stored model.Records) []string {
	if schema := stored.Schema(); len(schema) > 0 {
		return schema
	}
	return s.schema
}

// rebuild formats all names first and writes only when every one succeeded,
// so a failure leaves the stored document untouched.
func (s *Synchronizer) rebuild(names, schema []string) (model.Records, error) {
	s.log.Debug("rebuilding store", logging.Strings("schema", schema), logging.Int("entries", len(names)))

	records := make(model.Records, 0, len(names))
	for _, name := range names {
		rec, err := s.formatter.Format(name, schema)
		if err != nil {
			logging.Warn("format failed, sync aborted", logging.String("name", name), logging.Err(err))
			return nil, err
		}
		records = append(records, rec)
	}
	return s.store.Write(records)
}
