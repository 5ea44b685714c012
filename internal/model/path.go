package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Known field names of an EntryRecord.
const (
	FieldName         = "Name"
	FieldLastModified = "Last Modified"
	FieldSize         = "Size"
	FieldExtension    = "Extension"
	FieldHumanSize    = "Human Size"
	FieldType         = "Type"
)

// DefaultSchema is used when no stored record defines one.
var DefaultSchema = []string{FieldName, FieldLastModified, FieldSize}

// Field is a single key/value pair of a record.
type Field struct {
	Key   string
	Value string
}

// EntryRecord is one row of the entries document. Field order is preserved
// so the first record of a store also defines the column order.
type EntryRecord []Field

// Get returns the value stored under key.
func (r EntryRecord) Get(key string) (string, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Set replaces the value under key or appends a new field.
func (r *EntryRecord) Set(key, value string) {
	for i := range *r {
		if (*r)[i].Key == key {
			(*r)[i].Value = value
			return
		}
	}
	*r = append(*r, Field{Key: key, Value: value})
}

// Keys returns the field names in order.
func (r EntryRecord) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// IsDir reports whether the record describes a directory. The Type field
// wins when present; otherwise a sentinel Size marks a directory.
func (r EntryRecord) IsDir() bool {
	if t, ok := r.Get(FieldType); ok {
		return t == TypeDir
	}
	size, ok := r.Get(FieldSize)
	return ok && size == Sentinel
}

func (r EntryRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (r *EntryRecord) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("entry record must be an object, got %v", tok)
	}

	rec := EntryRecord{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			// Non-string values are kept as their JSON text
			value = string(raw)
		}
		rec.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = rec
	return nil
}

// Records is the ordered content of the entries document.
type Records []EntryRecord

// Schema returns the key set of the first record, or nil when empty.
func (rs Records) Schema() []string {
	if len(rs) == 0 {
		return nil
	}
	return rs[0].Keys()
}

// At returns the record with the given 1-based id.
func (rs Records) At(id int) (EntryRecord, error) {
	if id < 1 || id > len(rs) {
		return nil, NewError(IdError, "entries", fmt.Errorf("id %d out of range 1..%d", id, len(rs)))
	}
	return rs[id-1], nil
}
