// Package snapshot decodes CSV snapshots of a virtual filesystem into records.
//
// A snapshot has the header path,type,content followed by one row per node.
// The field delimiter is ';' when the first line contains one and ',' otherwise.
// File content is standard Base64; directory content is ignored.
package snapshot

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"

	"vfsshell/internal/logging"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	logger = logging.GetLogger().WithPrefix("snapshot")

	// Header is the exact, ordered header every snapshot must start with.
	Header = []string{"path", "type", "content"}
)

// Kind is the node type declared by a record.
type Kind string

const (
	KindDir  Kind = "dir"
	KindFile Kind = "file"
)

// Record is one validated snapshot row.
type Record struct {
	Path    string // Slash-separated, not normalized
	Kind    Kind
	Content []byte // Decoded file content, nil for directories
	Line    int    // 1-based line in the source
}

// Decode reads a whole snapshot from r and returns its records in row order.
// Nothing is returned unless every row is valid.
func Decode(r io.Reader) ([]Record, error) {
	// BOMOverride strips a UTF-8 BOM and transcodes UTF-16 sources.
	data, err := io.ReadAll(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	delim := detectDelimiter(data)
	logger.Debug("Using delimiter %q", delim)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	// Quotes inside unquoted fields are kept as data, e.g. my"file.txt.
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &FormatError{Reason: "empty snapshot"}
	}
	if err != nil {
		return nil, parseError(err)
	}
	if !slices.Equal(header, Header) {
		return nil, &FormatError{
			Line:   1,
			Reason: fmt.Sprintf("header is %q, expected %q", header, Header),
		}
	}

	var records []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, parseError(err)
		}

		line, _ := cr.FieldPos(0)
		rec, err := decodeRow(row, line)
		if err != nil {
			return nil, err
		}
		logger.Trace("Line %d: %s %q (%d bytes)", line, rec.Kind, rec.Path, len(rec.Content))
		records = append(records, rec)
	}

	logger.Debug("Decoded %d records", len(records))
	return records, nil
}

func decodeRow(row []string, line int) (Record, error) {
	if len(row) > len(Header) {
		return Record{}, &FormatError{
			Line:   line,
			Reason: fmt.Sprintf("expected at most %d fields, got %d", len(Header), len(row)),
		}
	}
	// Short rows leave the trailing columns empty.
	for len(row) < len(Header) {
		row = append(row, "")
	}
	path, typ, content := row[0], row[1], row[2]

	rec := Record{Path: path, Kind: Kind(typ), Line: line}
	switch rec.Kind {
	case KindDir:
	case KindFile:
		decoded, err := base64.StdEncoding.DecodeString(content)
		if err != nil {
			return Record{}, &DecodeError{Line: line, Path: path, Err: err}
		}
		rec.Content = decoded
	default:
		return Record{}, &UnknownTypeError{Line: line, Path: path, Type: typ}
	}
	return rec, nil
}

// detectDelimiter looks only at the first line: a ';' anywhere in it selects
// ';', otherwise ','.
func detectDelimiter(data []byte) rune {
	first := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		first = data[:i]
	}
	if bytes.IndexByte(first, ';') >= 0 {
		return ';'
	}
	return ','
}

func parseError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &FormatError{Line: pe.Line, Err: pe.Err}
	}
	return &FormatError{Err: err}
}
