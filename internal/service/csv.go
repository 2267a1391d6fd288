package service

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// PlayerRow is one line of a player roster file. Values are raw text.
type PlayerRow struct {
	Name  string
	Age   string
	Phone string
}

// ParsePlayerRows reads a roster with a header line. Columns are looked up by
// name, accepting "name"/"Name", "age"/"Age" and "phone"/"Phone"; other columns
// are ignored.
func ParsePlayerRows(r io.Reader) ([]PlayerRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []PlayerRow{}, nil
	}
	if err != nil {
		return nil, invalidInput("unreadable csv header: " + err.Error())
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		if _, seen := columns[name]; !seen {
			columns[name] = i
		}
	}
	field := func(record []string, names ...string) string {
		for _, name := range names {
			if i, ok := columns[name]; ok && i < len(record) && record[i] != "" {
				return record[i]
			}
		}
		return ""
	}

	rows := []PlayerRow{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, invalidInput("unreadable csv row: " + err.Error())
		}
		rows = append(rows, PlayerRow{
			Name:  field(record, "name", "Name"),
			Age:   field(record, "age", "Age"),
			Phone: field(record, "phone", "Phone"),
		})
	}
	return rows, nil
}
