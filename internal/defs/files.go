package defs

// Generated file names, written into the build directory.
const (
	// GeneratedConfigMJS is the generated flat config module.
	GeneratedConfigMJS = "eslint.config.mjs"

	// GeneratedConfigDTS is the type-only companion of GeneratedConfigMJS.
	GeneratedConfigDTS = "eslint.config.d.mts"

	// TypegenDTS is produced by eslint-typegen when the config resolves.
	TypegenDTS = "eslint-typegen.d.ts"

	// TypesDeclarationDTS collects the prepare:types declarations.
	TypesDeclarationDTS = "nuxt-eslint.d.ts"
)

// RootConfigMJS is the bootstrap stub written into the project root.
const RootConfigMJS = "eslint.config.mjs"

// FlatConfigNames are the root config names that count as an existing
// user config. Order matches the lookup order.
var FlatConfigNames = []string{
	"eslint.config.js",
	"eslint.config.mjs",
	"eslint.config.cjs",
	"eslint.config.ts",
	"eslint.config.mts",
	"eslint.config.cts",
}

// ProjectFileYAML is the project description read by the CLI.
const ProjectFileYAML = "nuxt-eslint.yaml"

// DefaultBuildDir is the Nuxt build directory relative to the root.
const DefaultBuildDir = ".nuxt"

// TypegenReference is the declaration injected through prepare:types.
const TypegenReference = `/// <reference path="./eslint-typegen.d.ts" />`
