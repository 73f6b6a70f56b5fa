package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ModelKey is the data key under which a read result is handed to the view
const ModelKey = "model"

// Field is one rendered column of a result row
type Field struct {
	Name  string
	Value string
}

// ResultRow is an ordered column-name to value mapping with unique names
type ResultRow []Field

// Set appends a field unless the name is already present
func (r ResultRow) Set(name, value string) ResultRow {
	for _, f := range r {
		if f.Name == name {
			return r
		}
	}
	return append(r, Field{Name: name, Value: value})
}

// Get returns the value of the named column
func (r ResultRow) Get(name string) (string, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Columns returns the column names in order
func (r ResultRow) Columns() []string {
	cols := make([]string, len(r))
	for i, f := range r {
		cols[i] = f.Name
	}
	return cols
}

// Map returns the row as an unordered map, convenient for templates
func (r ResultRow) Map() map[string]string {
	m := make(map[string]string, len(r))
	for _, f := range r {
		m[f.Name] = f.Value
	}
	return m
}

// MarshalJSON encodes the row as a JSON object keeping column order
func (r ResultRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
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

// UnmarshalJSON decodes a JSON object of string values keeping key order
func (r *ResultRow) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("result row must be a JSON object")
	}

	row := ResultRow{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var value string
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("column %q: %w", key, err)
		}
		row = row.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = row
	return nil
}

// ResultSet is the ordered sequence of rows returned by a read
type ResultSet []ResultRow

// ExecResult is what the executor hands back for either mode
type ExecResult struct {
	Mode         ExecutionMode
	Rows         ResultSet
	RowsAffected int64
}
