package config

import (
	"encoding/json"
	"errors"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestFeaturesPreservesOrder(t *testing.T) {
	src := "zeta: 1\nalpha: true\nnested:\n  b: x\n  a: [1, 2.5, null]\n"

	var f Features
	if err := yaml.Unmarshal([]byte(src), &f); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	got, err := json.Marshal(&f)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := `{"zeta":1,"alpha":true,"nested":{"b":"x","a":[1,2.5,null]}}`
	if string(got) != want {
		t.Errorf("MarshalJSON = %s, want %s", got, want)
	}
}

func TestFeaturesDoesNotEscapeHTML(t *testing.T) {
	f := NewFeatures()
	f.Set("pattern", "<a & b>")

	got, err := f.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON error: %v", err)
	}
	if string(got) != `{"pattern":"<a & b>"}` {
		t.Errorf("MarshalJSON = %s", got)
	}
}

func TestFeaturesMergeSpreadSemantics(t *testing.T) {
	base := NewFeatures()
	base.Set("standalone", true)

	user := NewFeatures()
	user.Set("autoInit", false)
	user.Set("standalone", false)

	merged := base.Merge(user)
	keys := merged.Keys()
	if len(keys) != 2 || keys[0] != "standalone" || keys[1] != "autoInit" {
		t.Fatalf("Keys = %v", keys)
	}
	if v, _ := merged.Get("standalone"); v != false {
		t.Errorf("standalone = %v, want false", v)
	}
	if v, _ := base.Get("standalone"); v != true {
		t.Error("Merge must not modify the receiver")
	}
}

func TestFeaturesMergeNil(t *testing.T) {
	base := NewFeatures()
	base.Set("standalone", true)

	merged := base.Merge(nil)
	if merged.Len() != 1 {
		t.Errorf("Len = %d, want 1", merged.Len())
	}
}

func TestFeaturesRejectsUnserializable(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"nan", "x: .nan"},
		{"infinity", "x: .inf"},
		{"binary", "x: !!binary aGVsbG8="},
		{"non scalar key", "? [a]\n: 1"},
		{"merge key", "base: &b {a: 1}\nx:\n  <<: *b"},
		{"scalar root", "42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Features
			err := yaml.Unmarshal([]byte(tt.input), &f)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrNotSerializable) {
				t.Errorf("expected ErrNotSerializable, got: %v", err)
			}
		})
	}
}

func TestFeaturesAliasAndTimestamp(t *testing.T) {
	src := "shared: &s {semi: true}\nstylistic: *s\nsince: 2024-01-02\n"

	var f Features
	if err := yaml.Unmarshal([]byte(src), &f); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	got, err := json.Marshal(&f)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	want := `{"shared":{"semi":true},"stylistic":{"semi":true},"since":"2024-01-02"}`
	if string(got) != want {
		t.Errorf("MarshalJSON = %s, want %s", got, want)
	}
}

func TestCheckSerializable(t *testing.T) {
	f := NewFeatures()
	f.Set("fn", func() {})
	if _, err := f.MarshalJSON(); !errors.Is(err, ErrNotSerializable) {
		t.Errorf("expected ErrNotSerializable, got: %v", err)
	}
}

func TestFeaturesMarshalYAMLRoundTrip(t *testing.T) {
	f := NewFeatures()
	f.Set("b", 1)
	f.Set("a", []any{"x"})

	out, err := yaml.Marshal(f)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	var back Features
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	keys := back.Keys()
	if len(keys) != 2 || keys[0] != "b" || keys[1] != "a" {
		t.Errorf("round trip keys = %v", keys)
	}
}
