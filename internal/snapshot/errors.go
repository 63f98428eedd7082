package snapshot

import (
	"errors"
	"fmt"
)

// ErrSourceNotFound indicates the snapshot source does not exist. It is kept
// apart from format errors so callers can tell "nothing to load" from "bad
// snapshot".
var ErrSourceNotFound = errors.New("snapshot source not found")

// FormatError reports a structural problem with the snapshot: a bad header,
// an unparsable row or a row with too many fields.
type FormatError struct {
	Line   int    // 1-based line, 0 when unknown
	Reason string // What was wrong
	Err    error  // Underlying parse error, if any
}

func (e *FormatError) Error() string {
	msg := "invalid snapshot format"
	if e.Line > 0 {
		msg = fmt.Sprintf("%s at line %d", msg, e.Line)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// UnknownTypeError reports a row whose type column is neither dir nor file.
type UnknownTypeError struct {
	Line int
	Path string
	Type string
}

func (e *UnknownTypeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("unknown node type %q at line %d", e.Type, e.Line)
	}
	return fmt.Sprintf("unknown node type %q for %q at line %d", e.Type, e.Path, e.Line)
}

// DecodeError reports file content that is not valid Base64.
type DecodeError struct {
	Line int
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode content of %q at line %d: %v", e.Path, e.Line, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
