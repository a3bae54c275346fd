/*
 * Directo XMLCore Client SDK for Go, (C) 2022 Directo OU.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package directo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"
)

// Field is one named value inside a Record.
type Field struct {
	Name  string
	Value interface{}
}

// Record is an ordered mapping from field name to value representing one
// parsed business entity. A value is one of: string, nil, *Record, or
// []interface{} whose items are strings or *Record. Field names carrying the
// "@" prefix originated from XML attributes; the prefix is part of the name
// so attribute-origin and element-origin fields never collide.
//
// Records have no fixed schema - any field may be absent depending on what
// the server chose to emit. Use Get/GetString for lookups that tolerate
// absence.
type Record struct {
	fields []Field
	index  map[string]int
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{index: make(map[string]int)}
}

// Set stores value under name, replacing an existing field in place or
// appending a new one. Returns the record for chaining.
func (r *Record) Set(name string, value interface{}) *Record {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	if i, ok := r.index[name]; ok {
		r.fields[i].Value = value
		return r
	}
	r.index[name] = len(r.fields)
	r.fields = append(r.fields, Field{Name: name, Value: value})
	return r
}

// Get returns the value stored under name and whether the field exists.
func (r *Record) Get(name string) (interface{}, bool) {
	if r == nil || r.index == nil {
		return nil, false
	}
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.fields[i].Value, true
}

// GetString returns the field value if it is a string, or "" when the field
// is absent, nil or not a scalar.
func (r *Record) GetString(name string) string {
	v, ok := r.Get(name)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Has reports whether a field named name exists.
func (r *Record) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Len returns the number of fields.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.fields)
}

// Fields returns the fields in insertion order. The returned slice is shared
// with the record and must not be modified.
func (r *Record) Fields() []Field {
	if r == nil {
		return nil
	}
	return r.fields
}

// Equal reports structural equality of two records: same fields in the same
// order with deeply equal values.
func (r *Record) Equal(o *Record) bool {
	if r.Len() != o.Len() {
		return false
	}
	for i, f := range r.Fields() {
		of := o.Fields()[i]
		if f.Name != of.Name {
			return false
		}
		if !valueEqual(f.Value, of.Value) {
			return false
		}
	}
	return true
}

func valueEqual(a, b interface{}) bool {
	ra, aok := a.(*Record)
	rb, bok := b.(*Record)
	if aok || bok {
		return aok && bok && ra.Equal(rb)
	}
	sa, aok := a.([]interface{})
	sb, bok := b.([]interface{})
	if aok || bok {
		if !aok || !bok || len(sa) != len(sb) {
			return false
		}
		for i := range sa {
			if !valueEqual(sa[i], sb[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// String renders the record as its ordered JSON form, for debugging.
func (r *Record) String() string {
	data, err := r.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("record<%d fields>", r.Len())
	}
	return string(data)
}

// MarshalJSON encodes the record as a JSON object preserving field order, so
// rendered output and test fixtures are deterministic.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeRecordJSON(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRecordJSON(buf *bytes.Buffer, r *Record) error {
	buf.WriteByte('{')
	for i, f := range r.Fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(f.Name)
		if err != nil {
			return err
		}
		buf.Write(name)
		buf.WriteByte(':')
		if err := writeValueJSON(buf, f.Value); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeValueJSON(buf *bytes.Buffer, v interface{}) error {
	switch t := v.(type) {
	case nil:
		buf.WriteString("null")
	case *Record:
		return writeRecordJSON(buf, t)
	case []interface{}:
		buf.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValueJSON(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return err
		}
		buf.Write(data)
	}
	return nil
}

// UnmarshalJSON decodes a JSON object into the record, preserving the key
// order of the input. Nested objects become nested records, arrays become
// sequences, and all scalars are kept as their JSON text (numbers and
// booleans included), matching how the XMLCore wire format carries every
// value as text.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	rec, err := decodeJSONRecord(dec)
	if err != nil {
		return err
	}
	*r = *rec
	return nil
}

func decodeJSONRecord(dec *json.Decoder) (*Record, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}
	rec := NewRecord()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object key, got %v", keyTok)
		}
		val, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		rec.Set(key, val)
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return rec, nil
}

func decodeJSONValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			rec := NewRecord()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("expected object key, got %v", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				rec.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return rec, nil
		case '[':
			var seq []interface{}
			for dec.More() {
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				seq = append(seq, val)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return seq, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case bool:
		return t, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("unexpected JSON token %v", tok)
	}
}

// DecodeRecordJSON reads one JSON object from rd into a Record.
func DecodeRecordJSON(rd io.Reader) (*Record, error) {
	data, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	rec := NewRecord()
	if err := rec.UnmarshalJSON(bytes.TrimSpace(data)); err != nil {
		return nil, err
	}
	return rec, nil
}

// fieldNames returns the record's field names in order, used in diagnostics.
func (r *Record) fieldNames() string {
	names := make([]string, 0, r.Len())
	for _, f := range r.Fields() {
		names = append(names, f.Name)
	}
	return strings.Join(names, ",")
}
