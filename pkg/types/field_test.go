package types

import (
	"encoding/json"
	"testing"
)

func TestFieldUnmarshal(t *testing.T) {
	type payload struct {
		Name  Field[string]  `json:"name"`
		Carat Field[*string] `json:"carat"`
	}

	var got payload
	if err := json.Unmarshal([]byte(`{"name": "Ruby Ring", "carat": "2ct"}`), &got); err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	if !got.Name.Set || got.Name.Value != "Ruby Ring" {
		t.Fatalf("expected name set, got %+v", got.Name)
	}
	if !got.Carat.Set || got.Carat.Value == nil || *got.Carat.Value != "2ct" {
		t.Fatalf("expected carat set, got %+v", got.Carat)
	}

	got = payload{}
	if err := json.Unmarshal([]byte(`{"carat": null}`), &got); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !got.Carat.Set || got.Carat.Value != nil {
		t.Fatalf("expected null to be set but nil, got %+v", got.Carat)
	}
	if got.Name.Set {
		t.Fatalf("expected missing field to stay unset, got %+v", got.Name)
	}

	if err := json.Unmarshal([]byte(`{"name": 42}`), &got); err == nil {
		t.Fatalf("expected type mismatch to fail")
	}
}

func TestFieldApply(t *testing.T) {
	name := "Old"
	Field[string]{}.Apply(&name)
	if name != "Old" {
		t.Fatalf("unset field must not overwrite, got %q", name)
	}
	Some("New").Apply(&name)
	if name != "New" {
		t.Fatalf("set field must overwrite, got %q", name)
	}
}

func TestFieldMarshal(t *testing.T) {
	b, err := json.Marshal(struct {
		A Field[string] `json:"a"`
		B Field[string] `json:"b"`
	}{A: Some("x")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"a":"x","b":null}` {
		t.Fatalf("unexpected json %s", b)
	}
}
