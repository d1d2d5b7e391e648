package template

import (
	"embed"
	"io/fs"
)

// Names of the embedded templates.
const (
	GeneratedConfigTemplate = "eslint.config.mjs.tmpl"
	GeneratedTypesTemplate  = "eslint.config.d.mts.tmpl"
	RootConfigTemplate      = "root.eslint.config.mjs.tmpl"
	DeclarationsTemplate    = "nuxt-eslint.d.ts.tmpl"
)

//go:embed templates/*.tmpl
var embedded embed.FS

// Templates returns the embedded template filesystem rooted at templates/.
func Templates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return sub
}

// NewEmbeddedRenderer creates a Renderer over the embedded templates.
func NewEmbeddedRenderer() Renderer {
	return NewRenderer(Templates())
}
