// Command nuxt-eslint generates the ESLint flat config of a Nuxt project.
package main

import (
	"os"

	"github.com/nuxt/nuxt-eslint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
