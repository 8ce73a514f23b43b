package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"github.com/custodia-labs/flattree/internal/core/domain"
)

// Format names a snapshot file encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// IsValid reports whether the format is supported.
func (f Format) IsValid() bool {
	return f == FormatJSON || f == FormatCBOR
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".cbor":
		return FormatCBOR, nil
	default:
		return "", fmt.Errorf("%w: cannot infer snapshot format from %q", domain.ErrInvalidInput, path)
	}
}

// wireRecord is the CBOR shape of a record.
type wireRecord struct {
	State  uint8          `cbor:"state"`
	Fields map[string]any `cbor:"fields"`
}

var cborEnc = mustEncMode()

func mustEncMode() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

// Encode writes records to w.
func Encode(w io.Writer, format Format, records []domain.Record) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if records == nil {
			records = []domain.Record{}
		}
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encoding json snapshot: %w", err)
		}
		return nil
	case FormatCBOR:
		wire := make([]wireRecord, len(records))
		for i, r := range records {
			fields := make(map[string]any, len(r.Fields))
			for name, v := range r.Fields {
				fields[name] = v.Interface()
			}
			wire[i] = wireRecord{State: uint8(r.State), Fields: fields}
		}
		if err := cborEnc.NewEncoder(w).Encode(wire); err != nil {
			return fmt.Errorf("encoding cbor snapshot: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: snapshot format %q", domain.ErrInvalidInput, format)
	}
}

// Decode reads records from r. Unknown row states are rejected.
func Decode(r io.Reader, format Format) ([]domain.Record, error) {
	var records []domain.Record

	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&records); err != nil {
			return nil, fmt.Errorf("%w: decoding json snapshot: %v", domain.ErrInvalidInput, err)
		}
	case FormatCBOR:
		var wire []wireRecord
		if err := cbor.NewDecoder(r).Decode(&wire); err != nil {
			return nil, fmt.Errorf("%w: decoding cbor snapshot: %v", domain.ErrInvalidInput, err)
		}
		records = make([]domain.Record, len(wire))
		for i, w := range wire {
			rec := domain.Record{State: domain.RowState(w.State), Fields: make(map[string]domain.Value, len(w.Fields))}
			for name, raw := range w.Fields {
				v, err := domain.ValueOf(raw)
				if err != nil {
					return nil, fmt.Errorf("record %d field %q: %w", i, name, err)
				}
				rec.Fields[name] = v
			}
			records[i] = rec
		}
	default:
		return nil, fmt.Errorf("%w: snapshot format %q", domain.ErrInvalidInput, format)
	}

	for i := range records {
		if records[i].State == 0 {
			records[i].State = domain.RowUnchanged
		}
		if !records[i].State.IsValid() {
			return nil, fmt.Errorf("%w: record %d has row state %d", domain.ErrInvalidInput, i, records[i].State)
		}
		if records[i].Fields == nil {
			records[i].Fields = map[string]domain.Value{}
		}
	}
	return records, nil
}
