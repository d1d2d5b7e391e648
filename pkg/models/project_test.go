package models_test

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/nuxt/nuxt-eslint/pkg/models"
)

func TestComponentsOptionUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		set     bool
		hasDirs bool
		dirs    []string
	}{
		{"absent", "srcDir: .", false, false, nil},
		{"null", "components: null", false, false, nil},
		{"false", "components: false", false, false, nil},
		{"true", "components: true", true, false, nil},
		{"mapping without dirs", "components:\n  global: true", true, false, nil},
		{"empty dirs", "components:\n  dirs: []", true, true, nil},
		{
			"mixed dirs",
			"components:\n  dirs:\n    - ui\n    - path: blocks\n      prefix: B\n    - prefix: nopath\n    - path: 12",
			true, true, []string{"ui", "blocks"},
		},
		{
			"non-string bare dirs",
			"components:\n  dirs:\n    - 42\n    - true\n    - ~\n    - \"7\"\n    - forms",
			true, true, []string{"7", "forms"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var layer models.Layer
			if err := yaml.Unmarshal([]byte(tt.input), &layer); err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}
			c := layer.Components
			if c.Set != tt.set {
				t.Errorf("Set = %v, want %v", c.Set, tt.set)
			}
			if c.HasDirs != tt.hasDirs {
				t.Errorf("HasDirs = %v, want %v", c.HasDirs, tt.hasDirs)
			}
			if len(c.Dirs) != len(tt.dirs) {
				t.Fatalf("Dirs = %v, want %v", c.Dirs, tt.dirs)
			}
			for i := range tt.dirs {
				if c.Dirs[i] != tt.dirs[i] {
					t.Errorf("Dirs[%d] = %q, want %q", i, c.Dirs[i], tt.dirs[i])
				}
			}
		})
	}
}

func TestComponentsOptionRejectsSequence(t *testing.T) {
	var layer models.Layer
	if err := yaml.Unmarshal([]byte("components: [a, b]"), &layer); err == nil {
		t.Fatal("expected error for sequence components option")
	}
}

func TestComponentDirsConstructor(t *testing.T) {
	c := models.ComponentDirs("a", "b")
	if !c.Set || !c.HasDirs || len(c.Dirs) != 2 {
		t.Errorf("ComponentDirs() = %+v", c)
	}
	if c.IsZero() {
		t.Error("explicit option must not be zero")
	}
	if !(models.ComponentsOption{}).IsZero() {
		t.Error("empty option must be zero")
	}
}
