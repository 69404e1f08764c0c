package database

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

/*
Database encodings. The human-readable forms are JSON and YAML; the binary
form is the JSON payload inside a zstd envelope with frame checksums, written
to .cls files. All three are canonical: map keys are emitted in a fixed
order, so encoding the same database twice yields identical bytes and the
binary/text conversion round-trips losslessly.
*/

////////////////////////////////////////////////////////////////////////////////

// Format names a database encoding.
type Format string

const (
	FormatBinary Format = "bin"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
)

// DefaultExtension is the conventional file extension for binary databases.
const DefaultExtension = ".cls"

// ParseFormat converts a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatBinary, FormatJSON, FormatYAML:
		return Format(name), nil
	default:
		return "", fmt.Errorf("unknown database format: %s", name)
	}
}

// Encode writes the database to w in the requested format.
func Encode(w io.Writer, db *Database, format Format) error {
	switch format {
	case FormatJSON:
		data, err := json.Marshal(db)
		if err != nil {
			return fmt.Errorf("failed to marshal database: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write database: %w", err)
		}
		return nil
	case FormatYAML:
		data, err := yaml.Marshal(db)
		if err != nil {
			return fmt.Errorf("failed to marshal database: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("failed to write database: %w", err)
		}
		return nil
	case FormatBinary:
		enc, err := zstd.NewWriter(w,
			zstd.WithEncoderCRC(true),
			zstd.WithEncoderConcurrency(1),
		)
		if err != nil {
			return fmt.Errorf("failed to build zstd writer: %w", err)
		}
		if err := Encode(enc, db, FormatJSON); err != nil {
			enc.Close()
			return err
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to finish zstd frame: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown database format: %s", format)
	}
}

// EncodeBytes renders the database to a byte slice in the requested format.
func EncodeBytes(db *Database, format Format) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := Encode(buf, db, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeBytes reads a database from a byte slice, sniffing the encoding.
func DecodeBytes(data []byte) (*Database, error) {
	return Decode(bytes.NewReader(data))
}

// zstd frame magic, little-endian 0xFD2FB528.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Decode reads a database from r, sniffing the encoding, and validates it.
func Decode(r io.Reader) (*Database, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4)
	if err != nil {
		return nil, IntegrityError{Reason: "database is truncated"}
	}
	db := &Database{}
	switch {
	case bytes.Equal(head, zstdMagic):
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, IntegrityError{Reason: "failed to open zstd frame: " + err.Error()}
		}
		defer dec.Close()
		if err := json.NewDecoder(dec.IOReadCloser()).Decode(db); err != nil {
			return nil, IntegrityError{Reason: "failed to decode binary payload: " + err.Error()}
		}
	case head[0] == '{':
		if err := json.NewDecoder(br).Decode(db); err != nil {
			return nil, IntegrityError{Reason: "failed to decode json payload: " + err.Error()}
		}
	default:
		if err := yaml.NewDecoder(br).Decode(db); err != nil {
			return nil, IntegrityError{Reason: "failed to decode yaml payload: " + err.Error()}
		}
	}
	if err := db.Validate(); err != nil {
		return nil, err
	}
	return db, nil
}
