package model

import "fmt"

// Kind classifies a failure. A Kind is itself an error so callers can test
// with errors.Is(err, model.ReadError).
type Kind int

const (
	DirError Kind = iota + 1
	FileError
	ReadError
	WriteError
	ParseError
	DirReadError
	IdError
)

var kindMessages = map[Kind]string{
	DirError:     "config directory error",
	FileError:    "config file error",
	ReadError:    "read error",
	WriteError:   "write error",
	ParseError:   "parse error",
	DirReadError: "directory read error",
	IdError:      "id error",
}

func (k Kind) Error() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}
	return fmt.Sprintf("error kind %d", int(k))
}

// Error is a classified failure. Doc names the document or resource
// involved ("entries", "flags", "config", a directory path).
type Error struct {
	Kind Kind
	Doc  string
	Err  error
}

// NewError builds a classified error around cause.
func NewError(kind Kind, doc string, cause error) *Error {
	return &Error{Kind: kind, Doc: doc, Err: cause}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Doc + " " + e.Kind.Error()
	}
	return e.Doc + " " + e.Kind.Error() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// Message is the short user-facing form, e.g. "flags read error".
func (e *Error) Message() string {
	if e.Doc == "" {
		return e.Kind.Error()
	}
	return e.Doc + " " + e.Kind.Error()
}
