package eslintgen

import (
	"cmp"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Resolver maps an import specifier to an absolute file path.
type Resolver interface {
	Resolve(specifier, fromDir string) (string, error)
}

// DefaultConditions are the export conditions honoured when a package
// declares an exports map, in priority order.
var DefaultConditions = []string{"import", "node", "default"}

// NodeResolver resolves bare specifiers the way Node's ESM loader does:
// node_modules directories are searched from fromDir upward, and the
// package.json exports field wins over module and main.
type NodeResolver struct {
	Conditions []string
}

// NewNodeResolver creates a resolver using DefaultConditions.
func NewNodeResolver() *NodeResolver {
	return &NodeResolver{Conditions: DefaultConditions}
}

type packageJSON struct {
	Name    string          `json:"name"`
	Main    string          `json:"main"`
	Module  string          `json:"module"`
	Exports json.RawMessage `json:"exports"`
}

// Resolve implements Resolver.
func (r *NodeResolver) Resolve(specifier, fromDir string) (string, error) {
	if specifier == "" {
		return "", fmt.Errorf("%w: empty specifier", ErrModuleNotFound)
	}
	if strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") || filepath.IsAbs(specifier) {
		target := specifier
		if !filepath.IsAbs(target) {
			target = filepath.Join(fromDir, filepath.FromSlash(specifier))
		}
		if p, ok := resolveFile(target); ok {
			return p, nil
		}
		return "", fmt.Errorf("%w: %s from %s", ErrModuleNotFound, specifier, fromDir)
	}

	name, subpath := splitSpecifier(specifier)
	dir, err := filepath.Abs(fromDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", specifier, err)
	}
	for {
		pkgDir := filepath.Join(dir, "node_modules", filepath.FromSlash(name))
		if info, statErr := os.Stat(pkgDir); statErr == nil && info.IsDir() {
			p, resolveErr := r.resolvePackage(pkgDir, subpath)
			if resolveErr != nil {
				return "", fmt.Errorf("resolve %s: %w", specifier, resolveErr)
			}
			return p, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("%w: %s from %s", ErrModuleNotFound, specifier, fromDir)
}

// resolvePackage resolves subpath ("." or "./x") inside an installed package.
func (r *NodeResolver) resolvePackage(pkgDir, subpath string) (string, error) {
	manifestPath := filepath.Join(pkgDir, "package.json")
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return r.resolveLegacy(pkgDir, subpath, nil)
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidPackage, err)
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidPackage, manifestPath, err)
	}

	if len(pkg.Exports) > 0 && string(pkg.Exports) != "null" {
		target, ok, err := r.resolveExports(pkg.Exports, subpath)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrInvalidPackage, manifestPath, err)
		}
		if ok {
			p := filepath.Join(pkgDir, filepath.FromSlash(strings.TrimPrefix(target, "./")))
			if _, statErr := os.Stat(p); statErr != nil {
				return "", fmt.Errorf("%w: %s exports %s", ErrModuleNotFound, manifestPath, target)
			}
			return p, nil
		}
		// The manifest itself is always reachable, matching what most
		// resolvers allow for tooling lookups.
		if subpath != "./package.json" {
			return "", fmt.Errorf("%w: %s not exported by %s", ErrModuleNotFound, subpath, manifestPath)
		}
	}
	return r.resolveLegacy(pkgDir, subpath, &pkg)
}

// resolveLegacy applies the pre-exports lookup: module, main, index.js for
// the package root, a plain file lookup for deep imports.
func (r *NodeResolver) resolveLegacy(pkgDir, subpath string, pkg *packageJSON) (string, error) {
	if subpath != "." {
		if p, ok := resolveFile(filepath.Join(pkgDir, filepath.FromSlash(strings.TrimPrefix(subpath, "./")))); ok {
			return p, nil
		}
		return "", fmt.Errorf("%w: %s in %s", ErrModuleNotFound, subpath, pkgDir)
	}
	var candidates []string
	if pkg != nil {
		candidates = append(candidates, pkg.Module, pkg.Main)
	}
	candidates = append(candidates, "index.js")
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if p, ok := resolveFile(filepath.Join(pkgDir, filepath.FromSlash(c))); ok {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: no entry point in %s", ErrModuleNotFound, pkgDir)
}

// resolveExports looks subpath up in an exports field. The boolean result is
// false when the field does not expose subpath.
func (r *NodeResolver) resolveExports(raw json.RawMessage, subpath string) (string, bool, error) {
	var exports any
	if err := json.Unmarshal(raw, &exports); err != nil {
		return "", false, err
	}

	if m, ok := exports.(map[string]any); ok && hasSubpathKeys(m) {
		if v, found := m[subpath]; found {
			return r.resolveTarget(v, "")
		}
		// Wildcard patterns such as "./*", most specific prefix first.
		keys := make([]string, 0, len(m))
		for key := range m {
			if strings.Contains(key, "*") {
				keys = append(keys, key)
			}
		}
		slices.SortFunc(keys, func(a, b string) int {
			return cmp.Or(
				cmp.Compare(strings.Index(b, "*"), strings.Index(a, "*")),
				cmp.Compare(len(b), len(a)),
				strings.Compare(a, b),
			)
		})
		for _, key := range keys {
			v := m[key]
			prefix, suffix, isPattern := strings.Cut(key, "*")
			if !isPattern || !strings.HasPrefix(subpath, prefix) || !strings.HasSuffix(subpath, suffix) {
				continue
			}
			if len(subpath) < len(prefix)+len(suffix) {
				continue
			}
			return r.resolveTarget(v, subpath[len(prefix):len(subpath)-len(suffix)])
		}
		return "", false, nil
	}

	// Sugar form: the whole field describes ".".
	if subpath != "." {
		return "", false, nil
	}
	return r.resolveTarget(exports, "")
}

// resolveTarget picks a concrete path from a string, condition map or
// fallback array. star replaces * in pattern targets.
func (r *NodeResolver) resolveTarget(v any, star string) (string, bool, error) {
	switch t := v.(type) {
	case string:
		if !strings.HasPrefix(t, "./") {
			return "", false, fmt.Errorf("export target %q must start with ./", t)
		}
		return strings.ReplaceAll(t, "*", star), true, nil
	case map[string]any:
		for _, cond := range r.conditions() {
			if next, ok := t[cond]; ok {
				p, found, err := r.resolveTarget(next, star)
				if err != nil || found {
					return p, found, err
				}
			}
		}
		return "", false, nil
	case []any:
		for _, next := range t {
			p, found, err := r.resolveTarget(next, star)
			if err == nil && found {
				return p, true, nil
			}
		}
		return "", false, nil
	case nil:
		return "", false, nil
	default:
		return "", false, fmt.Errorf("unsupported export target %T", v)
	}
}

func (r *NodeResolver) conditions() []string {
	if len(r.Conditions) == 0 {
		return DefaultConditions
	}
	return r.Conditions
}

func hasSubpathKeys(m map[string]any) bool {
	for k := range m {
		if strings.HasPrefix(k, ".") {
			return true
		}
	}
	return false
}

// splitSpecifier splits "pkg/sub" or "@scope/pkg/sub" into the package name
// and a "./sub" subpath ("." for the package root).
func splitSpecifier(specifier string) (name, subpath string) {
	parts := strings.Split(specifier, "/")
	n := 1
	if strings.HasPrefix(specifier, "@") && len(parts) > 1 {
		n = 2
	}
	name = strings.Join(parts[:n], "/")
	if len(parts) == n {
		return name, "."
	}
	return name, "./" + strings.Join(parts[n:], "/")
}

// resolveFile tries path as a file, with .js and .mjs extensions, and as a
// directory holding index.js.
func resolveFile(path string) (string, bool) {
	for _, candidate := range []string{path, path + ".js", path + ".mjs", filepath.Join(path, "index.js")} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// FileURL converts an absolute path to a file:// URL. The path is NFC
// normalised so the URL is stable across filesystems that store
// decomposed names.
func FileURL(path string) string {
	p := filepath.ToSlash(norm.NFC.String(path))
	if runtime.GOOS == "windows" && !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}
