package models

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DirOverrides renames the conventional directories of a layer.
// Empty fields fall back to the next level (project, then default).
type DirOverrides struct {
	Pages      string `yaml:"pages,omitempty" json:"pages,omitempty"`
	Layouts    string `yaml:"layouts,omitempty" json:"layouts,omitempty"`
	Plugins    string `yaml:"plugins,omitempty" json:"plugins,omitempty"`
	Middleware string `yaml:"middleware,omitempty" json:"middleware,omitempty"`
	Modules    string `yaml:"modules,omitempty" json:"modules,omitempty"`
}

// ImportsConfig is the auto-import section of a layer or project.
type ImportsConfig struct {
	// Dirs are additional directories scanned for composables.
	Dirs []string `yaml:"dirs,omitempty" json:"dirs,omitempty"`

	// Globals are auto-imported names exposed to ESLint as globals.
	Globals []string `yaml:"globals,omitempty" json:"globals,omitempty"`
}

// Layer is one level of the project's configuration inheritance.
type Layer struct {
	SrcDir     string           `yaml:"srcDir" json:"srcDir"`
	Dir        DirOverrides     `yaml:"dir,omitempty" json:"dir,omitempty"`
	Imports    ImportsConfig    `yaml:"imports,omitempty" json:"imports,omitempty"`
	Components ComponentsOption `yaml:"components,omitempty" json:"components,omitempty"`
}

// ComponentsOption is the tri-state components option of a layer.
type ComponentsOption struct {
	// Set is true when the option is present and truthy.
	Set bool

	// HasDirs is true when an explicit dirs list was given.
	HasDirs bool

	// Dirs holds the explicit directory paths in declaration order.
	// Object entries without a string path are dropped.
	Dirs []string
}

// ComponentDirs builds an explicit components option.
func ComponentDirs(dirs ...string) ComponentsOption {
	return ComponentsOption{Set: true, HasDirs: true, Dirs: dirs}
}

// IsZero reports whether the option is absent; used by yaml omitempty.
func (c ComponentsOption) IsZero() bool {
	return !c.Set
}

// UnmarshalYAML accepts a boolean, null, or a mapping with an optional
// dirs sequence whose entries are strings or {path} mappings.
func (c *ComponentsOption) UnmarshalYAML(node *yaml.Node) error {
	*c = ComponentsOption{}

	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil
		}
		var b bool
		if err := node.Decode(&b); err != nil {
			return fmt.Errorf("components: expected boolean or mapping at line %d", node.Line)
		}
		c.Set = b
		return nil
	case yaml.MappingNode:
		c.Set = true
	default:
		return fmt.Errorf("components: expected boolean or mapping at line %d", node.Line)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "dirs" {
			continue
		}
		dirsNode := node.Content[i+1]
		if dirsNode.Kind != yaml.SequenceNode {
			return fmt.Errorf("components.dirs: expected sequence at line %d", dirsNode.Line)
		}
		c.HasDirs = true
		for _, entry := range dirsNode.Content {
			path, ok := componentDirPath(entry)
			if ok {
				c.Dirs = append(c.Dirs, path)
			}
		}
	}
	return nil
}

// MarshalYAML writes the option back in its shortest form.
func (c ComponentsOption) MarshalYAML() (any, error) {
	if !c.Set {
		return false, nil
	}
	if !c.HasDirs {
		return true, nil
	}
	return map[string][]string{"dirs": c.Dirs}, nil
}

// componentDirPath extracts the path of a dirs entry.
func componentDirPath(entry *yaml.Node) (string, bool) {
	switch entry.Kind {
	case yaml.ScalarNode:
		if entry.ShortTag() != "!!str" {
			return "", false
		}
		return entry.Value, true
	case yaml.MappingNode:
		for i := 0; i+1 < len(entry.Content); i += 2 {
			key, val := entry.Content[i], entry.Content[i+1]
			if key.Value == "path" && val.Kind == yaml.ScalarNode && val.ShortTag() == "!!str" {
				return val.Value, true
			}
		}
	}
	return "", false
}
