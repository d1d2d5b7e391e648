package project

import (
	"path/filepath"

	"github.com/nuxt/nuxt-eslint/internal/config"
	"github.com/nuxt/nuxt-eslint/pkg/models"
)

// Conventional directory names used when no override is configured.
const (
	DefaultPagesDir       = "pages"
	DefaultLayoutsDir     = "layouts"
	DefaultPluginsDir     = "plugins"
	DefaultMiddlewareDir  = "middleware"
	DefaultModulesDir     = "modules"
	DefaultComponentsDir  = "components"
	DefaultComposablesDir = "composables"
	DefaultUtilsDir       = "utils"
)

// DirsMap lists the directories of every role, relative to the project
// root except Root, which holds the absolute root itself. The field order
// is the order in which roles are serialized into the generated module.
type DirsMap struct {
	Pages       []string `json:"pages"`
	Composables []string `json:"composables"`
	Components  []string `json:"components"`
	Layouts     []string `json:"layouts"`
	Plugins     []string `json:"plugins"`
	Middleware  []string `json:"middleware"`
	Modules     []string `json:"modules"`
	Servers     []string `json:"servers"`
	Root        []string `json:"root"`
	Src         []string `json:"src"`
}

// ResolveDirs walks the layer stack in order and collects the directories
// of every role. Nothing is deduplicated and nothing touches the disk.
func ResolveDirs(cfg *config.Config) DirsMap {
	dirs := DirsMap{
		Pages:       []string{},
		Composables: []string{},
		Components:  []string{},
		Layouts:     []string{},
		Plugins:     []string{},
		Middleware:  []string{},
		Modules:     []string{},
		Servers:     []string{},
		Root:        []string{cfg.RootDir},
		Src:         []string{},
	}

	for _, layer := range cfg.Layers {
		rel := func(target string) string {
			return relativeTo(cfg.RootDir, layer.SrcDir, target)
		}
		pick := func(layerName, projectName, fallback string) string {
			return rel(firstNonEmpty(layerName, projectName, fallback))
		}

		dirs.Src = append(dirs.Src, rel(""))
		dirs.Pages = append(dirs.Pages, pick(layer.Dir.Pages, cfg.Dir.Pages, DefaultPagesDir))
		dirs.Layouts = append(dirs.Layouts, pick(layer.Dir.Layouts, cfg.Dir.Layouts, DefaultLayoutsDir))
		dirs.Plugins = append(dirs.Plugins, pick(layer.Dir.Plugins, cfg.Dir.Plugins, DefaultPluginsDir))
		dirs.Middleware = append(dirs.Middleware, pick(layer.Dir.Middleware, cfg.Dir.Middleware, DefaultMiddlewareDir))
		dirs.Modules = append(dirs.Modules, pick(layer.Dir.Modules, cfg.Dir.Modules, DefaultModulesDir))

		dirs.Composables = append(dirs.Composables, rel(DefaultComposablesDir), rel(DefaultUtilsDir))
		for _, dir := range layer.Imports.Dirs {
			if dir != "" {
				dirs.Composables = append(dirs.Composables, rel(dir))
			}
		}

		dirs.Components = append(dirs.Components, componentDirs(layer.Components, rel)...)
	}

	return dirs
}

// componentDirs applies the tri-state components option: absent means the
// default directory, an explicit dirs list contributes each entry, and any
// other truthy value contributes nothing.
func componentDirs(opt models.ComponentsOption, rel func(string) string) []string {
	if !opt.Set {
		return []string{rel(DefaultComponentsDir)}
	}
	out := make([]string, 0, len(opt.Dirs))
	for _, dir := range opt.Dirs {
		out = append(out, rel(dir))
	}
	return out
}

// relativeTo resolves target against srcDir and expresses it relative to
// root with forward slashes. The root itself becomes the empty string.
func relativeTo(root, srcDir, target string) string {
	abs := target
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(srcDir, target)
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	if rel == "." {
		return ""
	}
	return filepath.ToSlash(rel)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
