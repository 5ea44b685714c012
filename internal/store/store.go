package store

import (
	"pigeonhole/internal/model"
)

// EntryStore is the durable snapshot of the last synchronized directory.
type EntryStore struct {
	doc *Document[model.Records]
}

// NewEntryStore opens the entries document at path. Nothing is read yet.
func NewEntryStore(path string) *EntryStore {
	return &EntryStore{doc: newDocument[model.Records](path, "entries")}
}

func (s *EntryStore) Path() string { return s.doc.Path() }

// Read returns every stored record, or an empty sequence with the error.
func (s *EntryStore) Read() (model.Records, error) {
	records, err := s.doc.Read()
	if err != nil {
		return model.Records{}, err
	}
	if records == nil {
		records = model.Records{}
	}
	return records, nil
}

// Write replaces the stored records.
func (s *EntryStore) Write(records model.Records) (model.Records, error) {
	if records == nil {
		records = model.Records{}
	}
	return s.doc.Write(records)
}

// FlagStore is the durable record of the display flags.
type FlagStore struct {
	doc *Document[model.DisplayFlags]
}

// NewFlagStore opens the flags document at path.
func NewFlagStore(path string) *FlagStore {
	return &FlagStore{doc: newDocument[model.DisplayFlags](path, "flags")}
}

func (s *FlagStore) Path() string { return s.doc.Path() }

// Read returns the persisted flags.
func (s *FlagStore) Read() (model.DisplayFlags, error) {
	return s.doc.Read()
}

// Write replaces the persisted flags.
func (s *FlagStore) Write(flags model.DisplayFlags) (model.DisplayFlags, error) {
	return s.doc.Write(flags)
}
