package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrMissingColumn is returned when the input header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// Load reads every record from the CSV file at path.
func Load(path string) ([]*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input %q: %w", path, err)
	}
	defer f.Close()

	recs, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read input %q: %w", path, err)
	}
	return recs, nil
}

// Read parses a header row followed by indenture rows. Short rows are padded
// with empty values, the same as a missing value in the file.
func Read(r io.Reader) ([]*Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: input has no header row", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	if err := CheckColumns(header); err != nil {
		return nil, err
	}

	var recs []*Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(recs)+1, err)
		}
		recs = append(recs, fromRow(len(recs), header, row))
	}
	return recs, nil
}

// CheckColumns verifies that header carries every required column.
func CheckColumns(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}

	var missing []string
	for _, col := range RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

func fromRow(index int, header, row []string) *Record {
	rec := &Record{Index: index}
	for i, col := range header {
		value := ""
		if i < len(row) {
			value = row[i]
		}
		switch col {
		case ColNumber:
			rec.Number = value
		case ColFirst:
			rec.First = value
		case ColLast:
			rec.Last = value
		case ColName:
			rec.Name = value
		case ColAppBirth:
			rec.AppBirth = value
		case ColMasterName:
			rec.MasterName = value
		case ColMasterBirth:
			rec.MasterBirth = value
		case ColYear:
			rec.Year = value
		default:
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[col] = value
		}
	}
	return rec
}

// ErrNotFound is returned by Find when no record has the requested number.
var ErrNotFound = errors.New("record not found")

// Find returns the first record with the given apprentice_number.
func Find(recs []*Record, number string) (*Record, error) {
	number = strings.TrimSpace(number)
	for _, r := range recs {
		if r.Number == number {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: apprentice_number %q", ErrNotFound, number)
}
