package eslintgen

import (
	"strings"

	"github.com/nuxt/nuxt-eslint/internal/addon"
)

// StringifyImports renders import lines as ES module import statements,
// one statement per specifier in first-seen order. Within a specifier,
// default and namespace imports get their own statements and named imports
// are merged into one brace list. An empty name is a side-effect import.
func StringifyImports(lines []addon.ImportLine) string {
	var order []string
	groups := make(map[string][]addon.ImportLine)
	for _, line := range lines {
		if _, ok := groups[line.From]; !ok {
			order = append(order, line.From)
		}
		groups[line.From] = append(groups[line.From], line)
	}

	var out []string
	for _, from := range order {
		var named []string
		for _, line := range groups[from] {
			switch line.Name {
			case "":
				out = append(out, "import "+quote(from)+";")
			case "default":
				out = append(out, "import "+localName(line)+" from "+quote(from)+";")
			case "*":
				out = append(out, "import * as "+localName(line)+" from "+quote(from)+";")
			default:
				if line.As != "" && line.As != line.Name {
					named = append(named, line.Name+" as "+line.As)
				} else {
					named = append(named, line.Name)
				}
			}
		}
		if len(named) > 0 {
			out = append(out, "import { "+strings.Join(named, ", ")+" } from "+quote(from)+";")
		}
	}
	return strings.Join(out, "\n")
}

func localName(line addon.ImportLine) string {
	if line.As != "" {
		return line.As
	}
	return line.Name
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
