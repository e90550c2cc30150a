package datamap

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestSetPreservesInsertionOrder(t *testing.T) {
	m := New()
	m.Set("b", json.RawMessage(`1`))
	m.Set("a", json.RawMessage(`2`))
	m.Set("c", json.RawMessage(`3`))

	want := []string{"b", "a", "c"}
	if got := m.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected keys %v, got %v", want, got)
	}
}

func TestSetExistingKeyKeepsPosition(t *testing.T) {
	m := New()
	m.Set("a", json.RawMessage(`1`))
	m.Set("b", json.RawMessage(`2`))
	m.Set("a", json.RawMessage(`3`))

	want := []string{"a", "b"}
	if got := m.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected keys %v, got %v", want, got)
	}
	v, _ := m.Get("a")
	if string(v) != "3" {
		t.Errorf("expected updated value 3, got %s", v)
	}
}

func TestPrependPutsKeyFirst(t *testing.T) {
	m := New()
	m.Set("old", json.RawMessage(`1`))
	m.Prepend("new", json.RawMessage(`2`))

	want := []string{"new", "old"}
	if got := m.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected keys %v, got %v", want, got)
	}
}

func TestDelete(t *testing.T) {
	m := New()
	m.Set("a", json.RawMessage(`1`))
	m.Set("b", json.RawMessage(`2`))

	if !m.Delete("a") {
		t.Fatal("expected delete of existing key to report true")
	}
	if m.Delete("a") {
		t.Fatal("expected delete of missing key to report false")
	}
	if m.Has("a") {
		t.Error("expected a to be gone")
	}
	if got := m.Keys(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("expected keys [b], got %v", got)
	}
}

func TestMarshalRoundTripKeepsOrder(t *testing.T) {
	m := New()
	m.Set("Widget", json.RawMessage(`{"price":9.99}`))
	m.Set("Gadget", json.RawMessage(`{"price":5}`))
	m.Prepend("First", json.RawMessage(`true`))

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	decoded := New()
	if err := json.Unmarshal(data, decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	want := []string{"First", "Widget", "Gadget"}
	if got := decoded.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected keys %v after round trip, got %v", want, got)
	}
}

func TestUnmarshalNullYieldsEmptyMap(t *testing.T) {
	m := New()
	if err := json.Unmarshal([]byte(`null`), m); err != nil {
		t.Fatalf("unmarshal null failed: %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("expected empty map, got %d entries", m.Len())
	}
}

func TestMarshalEmptyMap(t *testing.T) {
	data, err := json.Marshal(New())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("expected {}, got %s", data)
	}
}

func TestUnmarshalRejectsNonObject(t *testing.T) {
	m := New()
	if err := json.Unmarshal([]byte(`[1,2]`), m); err == nil {
		t.Error("expected error for JSON array")
	}
}
