// Package models provides the shared data model of a Nuxt project as seen by
// nuxt-eslint: the layer stack, per-layer directory overrides and the
// component directory configuration.
//
// # Layers
//
// A project is an ordered list of [Layer] values. The first layer is the
// project itself, later layers are extended layers. Each layer carries its
// own source directory, which is where conventional directories such as
// pages/ or composables/ are resolved from.
//
// # Components
//
// [ComponentsOption] mirrors the tri-state `components` option of a layer:
//
//	components:            # absent: default components/ directory
//	components: true       # enabled, no explicit directories
//	components:
//	  dirs: [ui, { path: blocks }]
package models
