package listing

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Writer persists a full set of records in one write.
type Writer interface {
	Write(records []Record) error
}

// Columns is the output field order shared by every writer.
var Columns = []string{
	"sender", "message", "listing_type", "property_name", "property_type", "location",
	"dimensions", "rent_or_price", "phone", "furnishing", "floor", "facing", "status",
}

// JSONWriter writes records as one indented JSON array.
type JSONWriter struct {
	path string
}

// NewJSONWriter creates a writer for the given output path.
func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path}
}

// Write marshals every record before touching the file, so a failure
// never leaves partial output behind.
func (w *JSONWriter) Write(records []Record) error {
	data, err := MarshalJSON(records)
	if err != nil {
		return err
	}
	return writeFile(w.path, data)
}

// MarshalJSON encodes records with two-space indentation and without
// HTML escaping, keeping non-ASCII text verbatim.
func MarshalJSON(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encoding records: %w", err)
	}
	return buf.Bytes(), nil
}

// CSVWriter writes records as CSV with a header row. Null attributes are empty cells.
type CSVWriter struct {
	path string
}

// NewCSVWriter creates a CSV writer for the given output path.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Write renders the whole table in memory and then writes it out.
func (w *CSVWriter) Write(records []Record) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(csvRow(r)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv: flush: %w", err)
	}

	return writeFile(w.path, buf.Bytes())
}

func csvRow(r Record) []string {
	price := ""
	if r.RentOrPrice != nil {
		price = strconv.FormatInt(*r.RentOrPrice, 10)
	}
	return []string{
		r.Sender,
		r.Message,
		string(r.ListingType),
		deref(r.PropertyName),
		deref(r.PropertyType),
		deref(r.Location),
		deref(r.Dimensions),
		price,
		deref(r.Phone),
		deref(r.Furnishing),
		deref(r.Floor),
		deref(r.Facing),
		string(r.Status),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// writeFile creates missing parent directories and writes data in one call.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
