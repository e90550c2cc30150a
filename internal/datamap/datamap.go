// Package datamap provides an insertion-order-preserving JSON object.
//
// Dataset payloads are stored as a single JSON object whose key order is part
// of the contract (products list in insertion order, newest sale first), so a
// plain map[string]json.RawMessage is not enough.
package datamap

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Map is an ordered mapping from string keys to raw JSON values.
// The zero value is not usable; call New.
type Map struct {
	keys   []string
	values map[string]json.RawMessage
}

// New returns an empty Map.
func New() *Map {
	return &Map{values: map[string]json.RawMessage{}}
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.keys)
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (json.RawMessage, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Set stores value under key. A new key is appended at the end; an existing
// key keeps its position.
func (m *Map) Set(key string, value json.RawMessage) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Prepend stores value under key at the front of the iteration order. An
// existing key is moved to the front.
func (m *Map) Prepend(key string, value json.RawMessage) {
	if _, ok := m.values[key]; ok {
		m.remove(key)
	}
	m.keys = append([]string{key}, m.keys...)
	m.values[key] = value
}

// Delete removes key and reports whether it was present.
func (m *Map) Delete(key string) bool {
	if _, ok := m.values[key]; !ok {
		return false
	}
	m.remove(key)
	delete(m.values, key)
	return true
}

func (m *Map) remove(key string) {
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			return
		}
	}
}

// Keys returns the keys in iteration order.
func (m *Map) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// MarshalJSON writes the entries as a JSON object in iteration order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(m.values[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping the key order of the document.
// JSON null is treated as an empty object.
func (m *Map) UnmarshalJSON(data []byte) error {
	m.keys = nil
	m.values = map[string]json.RawMessage{}

	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("datamap: expected JSON object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("datamap: expected object key, got %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}
		m.Set(key, value)
	}

	_, err = dec.Token() // closing brace
	return err
}
