package template

// ConfigContext is the data of the generated eslint.config.mjs.
// All fields are exported for use with Go's text/template package.
type ConfigContext struct {
	// Imports is the rendered import statement block.
	Imports string

	// Options is the serialized resolveOptions argument.
	Options string

	// Configs are the config fragments, base fragment first.
	Configs []string

	// TypegenPath is the sibling file eslint-typegen writes to.
	TypegenPath string
}

// RootConfigContext is the data of the root eslint.config.mjs stub.
type RootConfigContext struct {
	// ImportPath is the relative specifier of the generated module,
	// always starting with ./ or ../.
	ImportPath string
}

// DeclarationsContext is the data of the collected type declarations file.
type DeclarationsContext struct {
	Declarations []string
}
