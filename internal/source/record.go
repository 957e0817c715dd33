package source

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// IDField is the name of the record identifier field.
const IDField = "id"

// ErrMissingID is returned when a loaded record has no id.
var ErrMissingID = errors.New("record has no id")

// Record is one row of a dataset.
type Record struct {
	ID     string            `json:"id"               yaml:"id"`
	Fields map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Get returns the value of field, or "" when it is absent.
func (r Record) Get(field string) string {
	if field == IDField {
		return r.ID
	}
	return r.Fields[field]
}

// Matches reports whether query is a substring of the id or any field,
// ignoring case. query must already be lower case.
func (r Record) Matches(query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.ID), query) {
		return true
	}
	for _, v := range r.Fields {
		if strings.Contains(strings.ToLower(v), query) {
			return true
		}
	}
	return false
}

// recordFromMap splits a raw document row into id and fields.
func recordFromMap(raw map[string]string, index int) (Record, error) {
	id := strings.TrimSpace(raw[IDField])
	if id == "" {
		return Record{}, fmt.Errorf("record %d: %w", index, ErrMissingID)
	}
	fields := make(map[string]string, len(raw))
	for k, v := range raw {
		if k != IDField {
			fields[k] = v
		}
	}
	return Record{ID: id, Fields: fields}, nil
}

// fieldNames returns "id" followed by every field name found in records, sorted.
func fieldNames(records []Record) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		for k := range r.Fields {
			seen[k] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return append([]string{IDField}, names...)
}
